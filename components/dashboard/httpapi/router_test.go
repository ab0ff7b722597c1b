package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-dashboard-ui/components/dashboard"
	"github.com/goliatone/go-dashboard-ui/components/dashboard/commands"
	"github.com/goliatone/go-dashboard-ui/components/dashboard/queries"
)

func newTestRouter(t *testing.T, rate int) (http.Handler, *dashboard.Service) {
	t.Helper()
	ids := 0
	svc, err := dashboard.NewService(dashboard.Options{
		NewID: func() string {
			ids++
			return "shell-" + string(rune('0'+ids))
		},
	})
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close(context.Background()) })

	handlers := &Handlers{
		Creator:  svc,
		Renderer: &stubRenderer{body: "html"},
		Events:   dashboard.NewEventHub(),
		Navigate: commands.NewNavigateCommand(svc, nil),
		Dispatch: commands.NewDispatchActionCommand(svc, nil),
		Unmount:  commands.NewUnmountShellCommand(svc, nil),
		Snapshot: queries.NewShellSnapshotQuery(svc),
	}
	return NewRouter(RouterConfig{Handlers: handlers, BasePath: "/admin", ActionRate: rate}), svc
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouterEntryCreatesShell(t *testing.T) {
	router, _ := newTestRouter(t, 0)
	rec := serve(router, httptest.NewRequest(http.MethodGet, "/admin/analytics", nil))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	assert.Equal(t, "/admin/s/shell-1/analytics", rec.Header().Get("Location"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))

	rec = serve(router, httptest.NewRequest(http.MethodGet, "/admin/missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown route, got %d", rec.Code)
	}
}

func TestRouterActionFlow(t *testing.T) {
	router, _ := newTestRouter(t, 0)
	serve(router, httptest.NewRequest(http.MethodGet, "/admin/", nil))

	form := url.Values{"kind": {"toggle_sidebar"}}
	req := httptest.NewRequest(http.MethodPost, "/admin/s/shell-1/actions", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := serve(router, req)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", rec.Code, rec.Body.String())
	}
	assert.Equal(t, "/admin/s/shell-1", rec.Header().Get("Location"))

	rec = serve(router, httptest.NewRequest(http.MethodGet, "/admin/s/shell-1/state", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var snap dashboard.ShellSnapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.True(t, snap.Collapsed)
	assert.Equal(t, "w-16", snap.WidthClass)

	rec = serve(router, httptest.NewRequest(http.MethodGet, "/admin/s/shell-1/users", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "html:shell-1", rec.Body.String())
}

func TestRouterUnmount(t *testing.T) {
	router, _ := newTestRouter(t, 0)
	serve(router, httptest.NewRequest(http.MethodGet, "/admin/", nil))

	rec := serve(router, httptest.NewRequest(http.MethodDelete, "/admin/s/shell-1", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	rec = serve(router, httptest.NewRequest(http.MethodGet, "/admin/s/shell-1/state", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after unmount, got %d", rec.Code)
	}
}

func TestRouterRateLimitsActions(t *testing.T) {
	router, _ := newTestRouter(t, 1)
	serve(router, httptest.NewRequest(http.MethodGet, "/admin/", nil))

	post := func() int {
		req := httptest.NewRequest(http.MethodPost, "/admin/s/shell-1/actions", strings.NewReader(`{"kind":"toggle_theme"}`))
		req.Header.Set("Content-Type", "application/json")
		return serve(router, req).Code
	}
	assert.Equal(t, http.StatusOK, post())
	assert.Equal(t, http.StatusTooManyRequests, post())
}

func TestRouterServesStatic(t *testing.T) {
	router, _ := newTestRouter(t, 0)
	rec := serve(router, httptest.NewRequest(http.MethodGet, "/admin/static/app.css", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
