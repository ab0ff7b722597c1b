package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPage struct {
	key       PageKey
	actions   []Action
	teardowns int
}

func (p *recordingPage) Key() PageKey           { return p.key }
func (p *recordingPage) Snapshot() PageSnapshot { return PageSnapshot{Key: p.key} }
func (p *recordingPage) Dispatch(_ context.Context, action Action) error {
	p.actions = append(p.actions, action)
	return nil
}
func (p *recordingPage) Teardown() { p.teardowns++ }

type recordingMounter struct {
	mounted []*recordingPage
}

func (m *recordingMounter) mount(page PageKey) (PageView, error) {
	view := &recordingPage{key: page}
	m.mounted = append(m.mounted, view)
	return view, nil
}

func newTestShell(t *testing.T, entry string) (*Shell, *recordingMounter) {
	t.Helper()
	mounter := &recordingMounter{}
	shell, err := NewShell("s1", DefaultRoutes(), entry, mounter.mount, fixedClock(time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	return shell, mounter
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func TestShellDefaults(t *testing.T) {
	shell, mounter := newTestShell(t, "/analytics")
	snap, err := shell.Snapshot()
	require.NoError(t, err)
	assert.False(t, snap.Collapsed)
	assert.Equal(t, "w-[280px]", snap.WidthClass)
	assert.Equal(t, ThemeLight, snap.Theme)
	assert.Empty(t, snap.RootClass)
	assert.Equal(t, PageAnalytics, snap.Route.Page)
	require.Len(t, mounter.mounted, 1)
}

func TestShellToggleSidebarIsInvolution(t *testing.T) {
	shell, _ := newTestShell(t, "/")
	collapsed, err := shell.ToggleSidebar()
	require.NoError(t, err)
	assert.True(t, collapsed)

	snap, _ := shell.Snapshot()
	assert.Equal(t, "w-16", snap.WidthClass)

	collapsed, err = shell.ToggleSidebar()
	require.NoError(t, err)
	assert.False(t, collapsed)
	snap, _ = shell.Snapshot()
	assert.Equal(t, "w-[280px]", snap.WidthClass)
}

func TestShellToggleThemeFlipsRootClass(t *testing.T) {
	shell, _ := newTestShell(t, "/")
	theme, err := shell.ToggleTheme()
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, theme)
	snap, _ := shell.Snapshot()
	assert.Equal(t, "dark", snap.RootClass)

	theme, _ = shell.ToggleTheme()
	assert.Equal(t, ThemeLight, theme)
}

func TestShellNavigateSwapsPage(t *testing.T) {
	shell, mounter := newTestShell(t, "/")
	route, err := shell.Navigate("/users")
	require.NoError(t, err)
	assert.Equal(t, PageUsers, route.Page)

	require.Len(t, mounter.mounted, 2)
	assert.Equal(t, 1, mounter.mounted[0].teardowns, "previous page must be torn down")
	assert.Equal(t, 0, mounter.mounted[1].teardowns)
}

func TestShellNavigateToCurrentPageKeepsState(t *testing.T) {
	shell, mounter := newTestShell(t, "/calendar")
	_, err := shell.Navigate("/calendar/")
	require.NoError(t, err)
	assert.Len(t, mounter.mounted, 1)
	assert.Equal(t, 0, mounter.mounted[0].teardowns)
}

func TestShellNavigateUnknownRouteKeepsPage(t *testing.T) {
	shell, mounter := newTestShell(t, "/")
	_, err := shell.Navigate("/reports")
	if !errors.Is(err, ErrUnknownRoute) {
		t.Fatalf("expected ErrUnknownRoute, got %v", err)
	}
	snap, _ := shell.Snapshot()
	assert.Equal(t, PageHome, snap.Route.Page)
	assert.Equal(t, 0, mounter.mounted[0].teardowns)
}

func TestShellLayoutStateSurvivesNavigation(t *testing.T) {
	shell, _ := newTestShell(t, "/")
	_, _ = shell.ToggleSidebar()
	_, _ = shell.ToggleTheme()
	_, err := shell.Navigate("/settings")
	require.NoError(t, err)
	snap, _ := shell.Snapshot()
	assert.True(t, snap.Collapsed)
	assert.Equal(t, ThemeDark, snap.Theme)
}

func TestShellDispatchRoutesPageActions(t *testing.T) {
	shell, mounter := newTestShell(t, "/")
	require.NoError(t, shell.Dispatch(context.Background(), Action{Kind: ActionSelectTab, Tab: "weekly"}))
	require.NoError(t, shell.Dispatch(context.Background(), Action{Kind: ActionToggleSidebar}))
	require.Len(t, mounter.mounted[0].actions, 1)
	assert.Equal(t, "weekly", mounter.mounted[0].actions[0].Tab)
}

func TestShellTeardown(t *testing.T) {
	shell, mounter := newTestShell(t, "/")
	shell.Teardown()
	shell.Teardown()
	assert.Equal(t, 1, mounter.mounted[0].teardowns)

	if _, err := shell.Snapshot(); !errors.Is(err, ErrShellNotFound) {
		t.Fatalf("expected ErrShellNotFound, got %v", err)
	}
	if _, err := shell.ToggleSidebar(); !errors.Is(err, ErrShellNotFound) {
		t.Fatalf("expected ErrShellNotFound, got %v", err)
	}
	if err := shell.Dispatch(context.Background(), Action{Kind: ActionToggleTheme}); !errors.Is(err, ErrShellNotFound) {
		t.Fatalf("expected ErrShellNotFound, got %v", err)
	}
}

func TestNewShellRejectsUnknownEntry(t *testing.T) {
	mounter := &recordingMounter{}
	if _, err := NewShell("s1", DefaultRoutes(), "/missing", mounter.mount, nil); !errors.Is(err, ErrUnknownRoute) {
		t.Fatalf("expected ErrUnknownRoute, got %v", err)
	}
	assert.Empty(t, mounter.mounted)
}

func TestShellStore(t *testing.T) {
	store := NewInMemoryShellStore()
	shell, _ := newTestShell(t, "/")
	require.NoError(t, store.Put(shell))
	assert.Error(t, store.Put(shell))
	assert.Equal(t, 1, store.Len())

	got, ok := store.Get("s1")
	require.True(t, ok)
	assert.Same(t, shell, got)

	assert.Len(t, store.Idle(shell.LastSeen().Add(time.Second)), 1)
	assert.Empty(t, store.Idle(shell.LastSeen()))

	store.Remove("s1")
	_, ok = store.Get("s1")
	assert.False(t, ok)
}
