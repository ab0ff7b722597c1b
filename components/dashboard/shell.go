package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MountFunc builds the page view for a route.
type MountFunc func(page PageKey) (PageView, error)

// Shell is the layout state of one browser tab: sidebar, theme and the single
// mounted page view. All methods are safe for concurrent use.
type Shell struct {
	mu        sync.Mutex
	id        string
	routes    RouteTable
	mount     MountFunc
	now       func() time.Time
	collapsed bool
	theme     Theme
	route     Route
	page      PageView
	createdAt time.Time
	lastSeen  time.Time
	closed    bool
}

// ShellSnapshot is the serializable state of a shell.
type ShellSnapshot struct {
	ID         string       `json:"id"`
	Collapsed  bool         `json:"collapsed"`
	WidthClass string       `json:"width_class"`
	Theme      Theme        `json:"theme"`
	RootClass  string       `json:"root_class"`
	Route      Route        `json:"route"`
	Page       PageSnapshot `json:"page"`
	CreatedAt  time.Time    `json:"created_at"`
	LastSeen   time.Time    `json:"last_seen"`
}

// NewShell creates a shell with default layout state and mounts the page for
// entryPath.
func NewShell(id string, routes RouteTable, entryPath string, mount MountFunc, now func() time.Time) (*Shell, error) {
	if id == "" {
		return nil, fmt.Errorf("dashboard: shell id is required")
	}
	if mount == nil {
		return nil, fmt.Errorf("dashboard: shell mount func is required")
	}
	if now == nil {
		now = time.Now
	}
	route, err := routes.Resolve(entryPath)
	if err != nil {
		return nil, err
	}
	page, err := mount(route.Page)
	if err != nil {
		return nil, err
	}
	created := now()
	return &Shell{
		id:        id,
		routes:    routes,
		mount:     mount,
		now:       now,
		theme:     ThemeLight,
		route:     route,
		page:      page,
		createdAt: created,
		lastSeen:  created,
	}, nil
}

// ID returns the shell identifier.
func (s *Shell) ID() string { return s.id }

// LastSeen reports the last time the shell handled a call.
func (s *Shell) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// ToggleSidebar flips the collapsed state.
func (s *Shell) ToggleSidebar() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.touch(); err != nil {
		return false, err
	}
	s.collapsed = !s.collapsed
	return s.collapsed, nil
}

// ToggleTheme flips between light and dark.
func (s *Shell) ToggleTheme() (Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.touch(); err != nil {
		return "", err
	}
	s.theme = s.theme.Toggle()
	return s.theme, nil
}

// Navigate swaps the mounted page for the one serving path. The previous page
// is torn down before the new one mounts. Navigating to the current page keeps
// its state.
func (s *Shell) Navigate(path string) (Route, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.touch(); err != nil {
		return Route{}, err
	}
	route, err := s.routes.Resolve(path)
	if err != nil {
		return Route{}, err
	}
	if route.Page == s.route.Page && s.page != nil {
		return s.route, nil
	}
	if s.page != nil {
		s.page.Teardown()
		s.page = nil
	}
	page, err := s.mount(route.Page)
	if err != nil {
		return Route{}, err
	}
	s.route = route
	s.page = page
	return route, nil
}

// Dispatch applies an action. Shell-level kinds are handled here, the rest go
// to the mounted page.
func (s *Shell) Dispatch(ctx context.Context, action Action) error {
	switch action.Kind {
	case ActionToggleSidebar:
		_, err := s.ToggleSidebar()
		return err
	case ActionToggleTheme:
		_, err := s.ToggleTheme()
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.touch(); err != nil {
		return err
	}
	if s.page == nil {
		return fmt.Errorf("%w: no page mounted", ErrUnsupportedAction)
	}
	return s.page.Dispatch(ctx, action)
}

// Snapshot captures the shell and page state.
func (s *Shell) Snapshot() (ShellSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.touch(); err != nil {
		return ShellSnapshot{}, err
	}
	snap := ShellSnapshot{
		ID:         s.id,
		Collapsed:  s.collapsed,
		WidthClass: sidebarWidthClass(s.collapsed),
		Theme:      s.theme,
		RootClass:  s.theme.RootClass(),
		Route:      s.route,
		CreatedAt:  s.createdAt,
		LastSeen:   s.lastSeen,
	}
	if s.page != nil {
		snap.Page = s.page.Snapshot()
	}
	return snap, nil
}

// Teardown unmounts the page and stops its timers. Later calls on the shell
// return ErrShellNotFound.
func (s *Shell) Teardown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.page != nil {
		s.page.Teardown()
		s.page = nil
	}
}

func (s *Shell) touch() error {
	if s.closed {
		return fmt.Errorf("%w: %s", ErrShellNotFound, s.id)
	}
	s.lastSeen = s.now()
	return nil
}
