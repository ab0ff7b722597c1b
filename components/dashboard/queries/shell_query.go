package queries

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-dashboard-ui/components/dashboard"
)

// ShellInput addresses one shell.
type ShellInput struct {
	ShellID string
}

type snapshotService interface {
	Snapshot(ctx context.Context, id string) (dashboard.ShellSnapshot, error)
}

// ShellSnapshotQuery reads the state of a shell without touching it.
type ShellSnapshotQuery struct {
	service snapshotService
}

// NewShellSnapshotQuery builds the query.
func NewShellSnapshotQuery(service snapshotService) *ShellSnapshotQuery {
	return &ShellSnapshotQuery{service: service}
}

var _ gocommand.Querier[ShellInput, dashboard.ShellSnapshot] = (*ShellSnapshotQuery)(nil)

// Query resolves the snapshot for the shell.
func (q *ShellSnapshotQuery) Query(ctx context.Context, input ShellInput) (dashboard.ShellSnapshot, error) {
	if input.ShellID == "" {
		return dashboard.ShellSnapshot{}, errors.New("queries: shell id is required")
	}
	return q.service.Snapshot(ctx, input.ShellID)
}
