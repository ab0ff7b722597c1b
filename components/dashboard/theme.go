package dashboard

import (
	"maps"
	"slices"
	"strings"

	"github.com/go-echarts/go-echarts/v2/types"
)

// Theme is the global light/dark mode of a shell.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// darkClass is applied to the document root while the dark theme is active.
const darkClass = "dark"

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// RootClass is the class set on the document root.
func (t Theme) RootClass() string {
	if t == ThemeDark {
		return darkClass
	}
	return ""
}

// ChartTheme maps the global theme to an ECharts theme name.
func (t Theme) ChartTheme() string {
	if t == ThemeDark {
		return types.ThemeChalk
	}
	return types.ThemeWesteros
}

// ThemeSelection carries the resolved theme details handed to templates.
type ThemeSelection struct {
	Name       Theme             `json:"name"`
	RootClass  string            `json:"root_class"`
	Tokens     map[string]string `json:"tokens"`
	ChartTheme string            `json:"chart_theme"`
}

var themeTokens = map[Theme]map[string]string{
	ThemeLight: {
		"background": "#ffffff",
		"foreground": "#0f172a",
		"muted":      "#f1f5f9",
		"border":     "#e2e8f0",
		"primary":    "#2563eb",
	},
	ThemeDark: {
		"background": "#0b1120",
		"foreground": "#f8fafc",
		"muted":      "#1e293b",
		"border":     "#334155",
		"primary":    "#3b82f6",
	},
}

// SelectTheme resolves the selection for a theme. Unknown values fall back to
// light.
func SelectTheme(theme Theme) *ThemeSelection {
	if theme != ThemeDark {
		theme = ThemeLight
	}
	return &ThemeSelection{
		Name:       theme,
		RootClass:  theme.RootClass(),
		Tokens:     maps.Clone(themeTokens[theme]),
		ChartTheme: theme.ChartTheme(),
	}
}

// CSSVariables normalizes token keys into CSS variable names.
func (theme *ThemeSelection) CSSVariables() map[string]string {
	if theme == nil || len(theme.Tokens) == 0 {
		return nil
	}
	vars := make(map[string]string, len(theme.Tokens))
	for key, value := range theme.Tokens {
		name := normalizeCSSVariable(key)
		if name == "" {
			continue
		}
		vars[name] = value
	}
	return vars
}

// CSSVariablesInline renders the CSS variable map as a style string with
// stable key order.
func (theme *ThemeSelection) CSSVariablesInline() string {
	vars := theme.CSSVariables()
	if len(vars) == 0 {
		return ""
	}
	var builder strings.Builder
	for _, key := range slices.Sorted(maps.Keys(vars)) {
		value := vars[key]
		if value == "" {
			continue
		}
		builder.WriteString(key)
		builder.WriteString(": ")
		builder.WriteString(value)
		builder.WriteString("; ")
	}
	return strings.TrimSpace(builder.String())
}

func normalizeCSSVariable(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if strings.HasPrefix(name, "--") {
		return name
	}
	return "--" + name
}
