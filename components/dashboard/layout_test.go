package dashboard

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteTableResolve(t *testing.T) {
	routes := DefaultRoutes()
	cases := map[string]PageKey{
		"/":                  PageHome,
		"":                   PageHome,
		"analytics":          PageAnalytics,
		"/Calendar/":         PageCalendar,
		"/users?tab=all":     PageUsers,
		" /notifications#x ": PageNotifications,
	}
	for path, want := range cases {
		route, err := routes.Resolve(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, route.Page, path)
	}

	if _, err := routes.Resolve("/users/42"); !errors.Is(err, ErrUnknownRoute) {
		t.Fatalf("expected ErrUnknownRoute, got %v", err)
	}

	route, ok := routes.ForPage(PageSettings)
	require.True(t, ok)
	assert.Equal(t, "/settings", route.Path)
	_, ok = routes.ForPage("reports")
	assert.False(t, ok)
}

func TestBuildNavigation(t *testing.T) {
	profile := DefaultDataset().Profile
	nav := BuildNavigation(DefaultRoutes(), PageCalendar, false, profile, nil)
	require.Len(t, nav.Items, 6)
	assert.Equal(t, "/calendar", nav.Items[2].Href)
	assert.True(t, nav.Items[2].Active)
	assert.Empty(t, nav.Items[2].Tooltip)
	assert.Equal(t, "w-[280px]", nav.WidthClass)
	assert.Equal(t, AvatarURL("admin"), nav.AvatarURL)

	labels := make([]string, 0, len(nav.AccountMenu))
	for _, entry := range nav.AccountMenu {
		labels = append(labels, entry.Label)
	}
	assert.Equal(t, []string{"Profile", "Settings", "Logout"}, labels)
	assert.True(t, nav.AccountMenu[2].Danger)

	collapsed := BuildNavigation(DefaultRoutes(), PageHome, true, profile, func(p string) string { return "/x" + p })
	assert.Equal(t, "Dashboard", collapsed.Items[0].Tooltip)
	assert.Equal(t, "/x/", collapsed.Items[0].Href)
	assert.Equal(t, "w-16", collapsed.WidthClass)
}

func TestAvatarURL(t *testing.T) {
	assert.Equal(t, "https://api.dicebear.com/7.x/avataaars/svg?seed=John+Doe", AvatarURL("John Doe"))
	assert.Equal(t, "https://api.dicebear.com/7.x/avataaars/svg?seed=admin", AvatarURL(""))
}

func TestThemeSelection(t *testing.T) {
	assert.Equal(t, ThemeDark, ThemeLight.Toggle())
	assert.Equal(t, ThemeLight, ThemeDark.Toggle())
	assert.Equal(t, types.ThemeChalk, ThemeDark.ChartTheme())
	assert.Equal(t, types.ThemeWesteros, ThemeLight.ChartTheme())

	dark := SelectTheme(ThemeDark)
	assert.Equal(t, "dark", dark.RootClass)
	assert.Equal(t, "#0b1120", dark.CSSVariables()["--background"])
	assert.Contains(t, dark.CSSVariablesInline(), "--background: #0b1120;")

	fallback := SelectTheme("sepia")
	assert.Equal(t, ThemeLight, fallback.Name)
	assert.Empty(t, fallback.RootClass)

	var none *ThemeSelection
	assert.Empty(t, none.CSSVariablesInline())
}

func TestRefreshTaskStopIsIdempotent(t *testing.T) {
	var ticks atomic.Int32
	task := StartRefreshTask(context.Background(), time.Millisecond, func(time.Time) { ticks.Add(1) })
	require.Eventually(t, func() bool { return ticks.Load() > 0 }, time.Second, time.Millisecond)
	task.Stop()
	task.Stop()
	stopped := ticks.Load()
	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, stopped, ticks.Load())

	var nilTask *RefreshTask
	nilTask.Stop()
}

func TestRefreshTaskEndsWithParent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	task := StartRefreshTask(ctx, time.Hour, func(time.Time) {})
	cancel()
	select {
	case <-task.Done():
	case <-time.After(time.Second):
		t.Fatalf("task did not end with its parent context")
	}
}

func TestRegisterPageHookAppliesToNewRegistries(t *testing.T) {
	var calls atomic.Int32
	RegisterPageHook(func(reg *PageRegistry) error {
		calls.Add(1)
		return reg.Register("help", NewHomeView)
	})
	reg, err := NewPageRegistry()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, calls.Load(), int32(1))
	_, ok := reg.Factory("help")
	assert.True(t, ok)
}

func TestSlogTelemetry(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	telemetry := NewSlogTelemetry(logger)
	telemetry.Record(context.Background(), "dashboard.shell.create", map[string]any{"shell_id": "s1", "page": "home"})

	line := buf.String()
	assert.Contains(t, line, "level=DEBUG")
	assert.Contains(t, line, "msg=dashboard.shell.create")
	assert.Contains(t, line, "page=home shell_id=s1")

	buf.Reset()
	telemetry.WithLevel(slog.LevelInfo).Record(context.Background(), "dashboard.render", nil)
	assert.Contains(t, buf.String(), "level=INFO")
}
