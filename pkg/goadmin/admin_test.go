package goadmin_test

import (
	"context"
	"errors"
	"testing"

	core "github.com/goliatone/go-dashboard-ui/components/dashboard"
	dashboardpkg "github.com/goliatone/go-dashboard-ui/pkg/dashboard"
	"github.com/goliatone/go-dashboard-ui/pkg/goadmin"
)

type stubMenuBuilder struct {
	items []goadmin.MenuItem
	err   error
}

func (s *stubMenuBuilder) EnsureMenuItem(_ context.Context, _ string, item goadmin.MenuItem) error {
	if s.err != nil {
		return s.err
	}
	s.items = append(s.items, item)
	return nil
}

func newService(t *testing.T) *dashboardpkg.Service {
	t.Helper()
	service, err := dashboardpkg.NewService(core.Options{})
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}
	return service
}

func TestAdminBootstrapSeedsMenu(t *testing.T) {
	builder := &stubMenuBuilder{}
	admin, err := goadmin.New(goadmin.Config{
		EnableDashboard: true,
		Service:         newService(t),
		MenuBuilder:     builder,
		FirstPosition:   10,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := admin.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap returned error: %v", err)
	}
	if len(builder.items) != 6 {
		t.Fatalf("expected 6 menu items, got %d", len(builder.items))
	}
	first, last := builder.items[0], builder.items[5]
	if first.Route != "/admin" || first.Label != "Dashboard" || first.Position != 10 {
		t.Fatalf("unexpected first item: %+v", first)
	}
	if last.Route != "/admin/settings" || last.Position != 15 {
		t.Fatalf("unexpected last item: %+v", last)
	}
	if admin.Dashboard() == nil {
		t.Fatalf("expected dashboard service")
	}
}

func TestAdminBootstrapPropagatesErrors(t *testing.T) {
	builder := &stubMenuBuilder{err: errors.New("menu down")}
	admin, err := goadmin.New(goadmin.Config{
		EnableDashboard: true,
		Service:         newService(t),
		MenuBuilder:     builder,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := admin.Bootstrap(context.Background()); err == nil {
		t.Fatalf("expected menu error")
	}
}

func TestAdminDisabledSkipsBootstrap(t *testing.T) {
	builder := &stubMenuBuilder{}
	admin, err := goadmin.New(goadmin.Config{
		EnableDashboard: false,
		MenuBuilder:     builder,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := admin.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap returned error: %v", err)
	}
	if len(builder.items) != 0 {
		t.Fatalf("expected 0 calls, got %d", len(builder.items))
	}
	if admin.Dashboard() != nil {
		t.Fatalf("expected nil dashboard when disabled")
	}
}
