package goadmin

import (
	"context"
	"errors"
	"fmt"

	core "github.com/goliatone/go-dashboard-ui/components/dashboard"
	dashboardpkg "github.com/goliatone/go-dashboard-ui/pkg/dashboard"
)

// MenuBuilder ensures console entries exist within a host admin navigation.
type MenuBuilder interface {
	EnsureMenuItem(ctx context.Context, menuCode string, item MenuItem) error
}

// MenuItem captures console link metadata.
type MenuItem struct {
	Label    string
	Route    string
	Icon     string
	Position int
}

// Config wires the console service into a host admin shell.
type Config struct {
	EnableDashboard bool
	MenuCode        string
	MenuBuilder     MenuBuilder
	Service         *dashboardpkg.Service
	BasePath        string
	// Positions start here and grow by one per route.
	FirstPosition int
}

// Admin exposes helpers for go-admin style applications.
type Admin struct {
	cfg Config
}

// New creates an Admin helper that can seed console menus.
func New(cfg Config) (*Admin, error) {
	if cfg.EnableDashboard && cfg.Service == nil {
		return nil, errors.New("goadmin: dashboard service is required when enabled")
	}
	if cfg.MenuCode == "" {
		cfg.MenuCode = "admin.main"
	}
	cfg.BasePath = core.NormalizeBasePath(cfg.BasePath)
	return &Admin{cfg: cfg}, nil
}

// Dashboard exposes the configured service when enabled.
func (a *Admin) Dashboard() *dashboardpkg.Service {
	if !a.cfg.EnableDashboard {
		return nil
	}
	return a.cfg.Service
}

// MenuItems maps the console route table onto host menu entries.
func (a *Admin) MenuItems() []MenuItem {
	if !a.cfg.EnableDashboard {
		return nil
	}
	routes := a.cfg.Service.Routes()
	items := make([]MenuItem, 0, len(routes))
	for i, route := range routes {
		path := a.cfg.BasePath + route.Path
		if route.Path == "/" && a.cfg.BasePath != "" {
			path = a.cfg.BasePath
		}
		items = append(items, MenuItem{
			Label:    route.Label,
			Route:    path,
			Icon:     route.Icon,
			Position: a.cfg.FirstPosition + i,
		})
	}
	return items
}

// Bootstrap seeds one menu entry per console route.
func (a *Admin) Bootstrap(ctx context.Context) error {
	if !a.cfg.EnableDashboard || a.cfg.MenuBuilder == nil {
		return nil
	}
	for _, item := range a.MenuItems() {
		if err := a.cfg.MenuBuilder.EnsureMenuItem(ctx, a.cfg.MenuCode, item); err != nil {
			return fmt.Errorf("goadmin: ensure menu item %s: %w", item.Label, err)
		}
	}
	return nil
}
