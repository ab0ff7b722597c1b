package dashboard

import (
	"fmt"
	"strings"
)

// PageKey identifies one page variant.
type PageKey string

const (
	PageHome          PageKey = "home"
	PageAnalytics     PageKey = "analytics"
	PageCalendar      PageKey = "calendar"
	PageUsers         PageKey = "users"
	PageNotifications PageKey = "notifications"
	PageSettings      PageKey = "settings"
)

// Route maps a parameterless path to a page variant.
type Route struct {
	Path  string  `json:"path"`
	Page  PageKey `json:"page"`
	Label string  `json:"label"`
	Icon  string  `json:"icon"`
}

// RouteTable is the ordered list of console routes. Order drives the
// navigation rail.
type RouteTable []Route

var defaultRoutes = RouteTable{
	{Path: "/", Page: PageHome, Label: "Dashboard", Icon: "layout-dashboard"},
	{Path: "/analytics", Page: PageAnalytics, Label: "Analytics", Icon: "bar-chart"},
	{Path: "/calendar", Page: PageCalendar, Label: "Calendar", Icon: "calendar"},
	{Path: "/users", Page: PageUsers, Label: "Users", Icon: "users"},
	{Path: "/notifications", Page: PageNotifications, Label: "Notifications", Icon: "bell"},
	{Path: "/settings", Page: PageSettings, Label: "Settings", Icon: "settings"},
}

// DefaultRoutes returns a copy of the built-in route table.
func DefaultRoutes() RouteTable {
	return append(RouteTable(nil), defaultRoutes...)
}

// Resolve finds the route for a path. Trailing slashes and a missing leading
// slash are tolerated.
func (t RouteTable) Resolve(path string) (Route, error) {
	normalized := normalizeRoutePath(path)
	for _, route := range t {
		if route.Path == normalized {
			return route, nil
		}
	}
	return Route{}, fmt.Errorf("%w: %s", ErrUnknownRoute, path)
}

// ForPage returns the route serving the given page.
func (t RouteTable) ForPage(page PageKey) (Route, bool) {
	for _, route := range t {
		if route.Page == page {
			return route, true
		}
	}
	return Route{}, false
}

func normalizeRoutePath(path string) string {
	path = strings.TrimSpace(path)
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = "/" + strings.Trim(path, "/")
	return strings.ToLower(path)
}
