package queries

import (
	"context"
	"testing"

	dashboard "github.com/goliatone/go-dashboard-ui/components/dashboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSnapshotService struct {
	calls int
}

func (s *stubSnapshotService) Snapshot(_ context.Context, id string) (dashboard.ShellSnapshot, error) {
	s.calls++
	return dashboard.ShellSnapshot{ID: id}, nil
}

type stubRouteService struct{}

func (stubRouteService) Routes() dashboard.RouteTable { return dashboard.DefaultRoutes() }

func TestShellSnapshotQuery(t *testing.T) {
	service := &stubSnapshotService{}
	query := NewShellSnapshotQuery(service)
	snap, err := query.Query(context.Background(), ShellInput{ShellID: "shell-1"})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if service.calls != 1 {
		t.Fatalf("expected 1 call, got %d", service.calls)
	}
	assert.Equal(t, "shell-1", snap.ID)

	_, err = query.Query(context.Background(), ShellInput{})
	assert.Error(t, err)
	assert.Equal(t, 1, service.calls)
}

func TestRouteTableQuery(t *testing.T) {
	query := NewRouteTableQuery(stubRouteService{})

	all, err := query.Query(context.Background(), RouteTableInput{})
	require.NoError(t, err)
	assert.Len(t, all, 6)

	one, err := query.Query(context.Background(), RouteTableInput{Path: "/notifications/"})
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, dashboard.PageNotifications, one[0].Page)

	_, err = query.Query(context.Background(), RouteTableInput{Path: "/billing"})
	assert.ErrorIs(t, err, dashboard.ErrUnknownRoute)
}
