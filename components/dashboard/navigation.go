package dashboard

const (
	sidebarExpandedWidth  = "w-[280px]"
	sidebarCollapsedWidth = "w-16"
)

// NavItem is one rendered destination of the navigation rail.
type NavItem struct {
	Label  string `json:"label"`
	Href   string `json:"href"`
	Icon   string `json:"icon"`
	Active bool   `json:"active"`
	// Tooltip is only set while the rail is collapsed and labels are hidden.
	Tooltip string `json:"tooltip,omitempty"`
}

// AccountMenuItem is an entry of the profile dropdown. The entries perform no
// action.
type AccountMenuItem struct {
	Label  string `json:"label"`
	Icon   string `json:"icon"`
	Danger bool   `json:"danger,omitempty"`
}

// NavigationView is the rendered rail.
type NavigationView struct {
	Items       []NavItem         `json:"items"`
	Collapsed   bool              `json:"collapsed"`
	WidthClass  string            `json:"width_class"`
	Profile     Profile           `json:"profile"`
	AvatarURL   string            `json:"avatar_url"`
	AccountMenu []AccountMenuItem `json:"account_menu"`
}

var accountMenu = []AccountMenuItem{
	{Label: "Profile", Icon: "user"},
	{Label: "Settings", Icon: "settings-2"},
	{Label: "Logout", Icon: "log-out", Danger: true},
}

// BuildNavigation renders the rail for the given routes. hrefFor maps a route
// path to the link the browser follows.
func BuildNavigation(routes RouteTable, active PageKey, collapsed bool, profile Profile, hrefFor func(string) string) NavigationView {
	if hrefFor == nil {
		hrefFor = func(path string) string { return path }
	}
	items := make([]NavItem, 0, len(routes))
	for _, route := range routes {
		item := NavItem{
			Label:  route.Label,
			Href:   hrefFor(route.Path),
			Icon:   route.Icon,
			Active: route.Page == active,
		}
		if collapsed {
			item.Tooltip = route.Label
		}
		items = append(items, item)
	}
	return NavigationView{
		Items:       items,
		Collapsed:   collapsed,
		WidthClass:  sidebarWidthClass(collapsed),
		Profile:     profile,
		AvatarURL:   AvatarURL(profile.AvatarSeed),
		AccountMenu: append([]AccountMenuItem(nil), accountMenu...),
	}
}

func sidebarWidthClass(collapsed bool) string {
	if collapsed {
		return sidebarCollapsedWidth
	}
	return sidebarExpandedWidth
}
