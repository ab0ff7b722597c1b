package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ettle/strcase"
)

const (
	defaultLayoutTemplate = "layout"
	pageTemplatePrefix    = "pages/"
	// DefaultBasePath is where transports mount the console.
	DefaultBasePath = "/admin"
)

var errMissingRenderer = errors.New("dashboard: renderer not configured")

// SnapshotSource resolves shell state for rendering. *Service satisfies it.
type SnapshotSource interface {
	Snapshot(ctx context.Context, id string) (ShellSnapshot, error)
	Routes() RouteTable
	Dataset() Dataset
}

// ControllerOptions wires the controller collaborators.
type ControllerOptions struct {
	Service        SnapshotSource
	Renderer       Renderer
	Charts         *ChartRenderer
	BasePath       string
	LayoutTemplate string
	Telemetry      Telemetry
}

// Controller turns shell snapshots into HTML.
type Controller struct {
	opts ControllerOptions
}

// NewController wires the service into a controller.
func NewController(opts ControllerOptions) *Controller {
	if opts.Charts == nil {
		opts.Charts = NewChartRenderer()
	}
	if opts.LayoutTemplate == "" {
		opts.LayoutTemplate = defaultLayoutTemplate
	}
	opts.BasePath = NormalizeBasePath(opts.BasePath)
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	return &Controller{opts: opts}
}

// BasePath returns the mount prefix links are built from.
func (c *Controller) BasePath() string { return c.opts.BasePath }

// RenderShell renders the current state of a shell.
func (c *Controller) RenderShell(ctx context.Context, shellID string, out io.Writer) error {
	if c.opts.Service == nil {
		return fmt.Errorf("dashboard: controller service not configured")
	}
	snap, err := c.opts.Service.Snapshot(ctx, shellID)
	if err != nil {
		return err
	}
	return c.RenderSnapshot(ctx, snap, out)
}

// RenderSnapshot renders the page partial, then the layout around it.
func (c *Controller) RenderSnapshot(ctx context.Context, snap ShellSnapshot, out io.Writer) error {
	if c.opts.Renderer == nil {
		return errMissingRenderer
	}
	vm, err := c.ViewModel(snap)
	if err != nil {
		return err
	}
	outlet, err := c.opts.Renderer.Render(pageTemplatePrefix+string(snap.Route.Page), vm)
	if err != nil {
		return fmt.Errorf("dashboard: render page %s: %w", snap.Route.Page, err)
	}
	vm["outlet"] = outlet
	if _, err := c.opts.Renderer.Render(c.opts.LayoutTemplate, vm, out); err != nil {
		return fmt.Errorf("dashboard: render layout: %w", err)
	}
	c.opts.Telemetry.Record(ctx, "dashboard.render", map[string]any{
		"shell_id": snap.ID,
		"page":     string(snap.Route.Page),
	})
	return nil
}

// ViewModel builds the template payload for a snapshot.
func (c *Controller) ViewModel(snap ShellSnapshot) (map[string]any, error) {
	theme := SelectTheme(snap.Theme)
	links := c.Links(snap.ID)
	var (
		routes  = DefaultRoutes()
		profile = DefaultDataset().Profile
	)
	if c.opts.Service != nil {
		routes = c.opts.Service.Routes()
		profile = c.opts.Service.Dataset().Profile
	}
	vm := map[string]any{
		"shell":          snap,
		"page":           string(snap.Route.Page),
		"page_title":     snap.Route.Label,
		"theme":          theme,
		"theme_style":    theme.CSSVariablesInline(),
		"root_class":     theme.RootClass,
		"theme_label":    strcase.ToPascal(string(theme.Name.Toggle())),
		"nav":            BuildNavigation(routes, snap.Route.Page, snap.Collapsed, profile, links.Page),
		"links":          links,
		"sidebar_class":  snap.WidthClass,
		"collapsed":      snap.Collapsed,
		"dialog_expand":  DialogExpandChart,
		"dialog_event":   DialogAddEvent,
		"dialog_admin":   DialogAddAdmin,
		"dark_mode_key":  SettingDarkMode,
		"live_metric":    LiveUsersMetric,
		"refresh_events": EventMetrics,
	}
	if err := c.attachPage(vm, snap.Page, theme.ChartTheme); err != nil {
		return nil, err
	}
	return vm, nil
}

func (c *Controller) attachPage(vm map[string]any, page PageSnapshot, chartTheme string) error {
	switch page.Key {
	case PageHome:
		home := page.Home
		vm["data"] = home
		vm["metrics"] = BuildMetricsGrid(home.Metrics)
		vm["tabs"] = tabLinks(home.Tabs, home.ActiveTab)
		chart, err := c.opts.Charts.Render(home.Chart, chartTheme)
		if err != nil {
			return err
		}
		vm["chart"] = chart
		if home.Expanded != nil {
			expanded, err := c.opts.Charts.RenderExpanded(*home.Expanded, chartTheme)
			if err != nil {
				return err
			}
			vm["expanded"] = expanded
		}
	case PageAnalytics:
		analytics := page.Analytics
		vm["data"] = analytics
		vm["metrics"] = BuildMetricsGrid(analytics.LiveMetrics)
		vm["tabs"] = tabLinks(analytics.Tabs, analytics.ActiveTab)
		panels := make([]ChartView, 0, len(analytics.Panels))
		for _, panel := range analytics.Panels {
			view, err := c.opts.Charts.Render(panel, chartTheme)
			if err != nil {
				return err
			}
			panels = append(panels, view)
		}
		vm["panels"] = panels
	case PageCalendar:
		vm["data"] = page.Calendar
	case PageUsers:
		vm["data"] = page.Users
	case PageNotifications:
		vm["data"] = page.Notifications
		vm["tabs"] = tabLinks(page.Notifications.Tabs, page.Notifications.ActiveTab)
	case PageSettings:
		vm["data"] = page.Settings
	case "":
	default:
		return fmt.Errorf("%w: %s", ErrUnknownRoute, page.Key)
	}
	return nil
}

// TabLink is a rendered tab trigger.
type TabLink struct {
	Value  string `json:"value"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

func tabLinks(tabs []string, active string) []TabLink {
	out := make([]TabLink, 0, len(tabs))
	for _, tab := range tabs {
		out = append(out, TabLink{Value: tab, Label: strcase.ToPascal(tab), Active: tab == active})
	}
	return out
}

// Links are the URLs a rendered shell posts to and listens on.
type Links struct {
	Base    string `json:"base"`
	Shell   string `json:"shell"`
	Actions string `json:"actions"`
	State   string `json:"state"`
	Events  string `json:"events"`
	Socket  string `json:"socket"`
	Static  string `json:"static"`
}

// Page maps a route path to the shell-scoped link.
func (l Links) Page(path string) string {
	path = strings.Trim(path, "/")
	if path == "" {
		return l.Shell
	}
	return l.Shell + "/" + path
}

// Links builds the URL set for a shell.
func (c *Controller) Links(shellID string) Links {
	base := c.opts.BasePath
	shell := base + "/s/" + shellID
	return Links{
		Base:    base,
		Shell:   shell,
		Actions: shell + "/actions",
		State:   shell + "/state",
		Events:  shell + "/events",
		Socket:  shell + "/ws",
		Static:  base + "/static",
	}
}

// NormalizeBasePath trims the base path to "/x" form; "/" becomes "".
func NormalizeBasePath(base string) string {
	base = strings.TrimSpace(base)
	if base == "" {
		return DefaultBasePath
	}
	base = "/" + strings.Trim(base, "/")
	if base == "/" {
		return ""
	}
	return base
}
