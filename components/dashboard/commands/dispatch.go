package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-dashboard-ui/components/dashboard"
)

// DispatchActionInput forwards one UI action to a shell.
type DispatchActionInput struct {
	ShellID string
	Action  dashboard.Action
}

// DispatchActionCommand applies page and shell actions.
type DispatchActionCommand struct {
	service   shellDispatcher
	telemetry Telemetry
}

// NewDispatchActionCommand creates the command.
func NewDispatchActionCommand(service shellDispatcher, telemetry Telemetry) *DispatchActionCommand {
	return &DispatchActionCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[DispatchActionInput] = (*DispatchActionCommand)(nil)

// Execute delegates to the dashboard service.
func (c *DispatchActionCommand) Execute(ctx context.Context, msg DispatchActionInput) error {
	if c.service == nil {
		return errors.New("dispatch command requires service")
	}
	if msg.ShellID == "" {
		return errMissingShell
	}
	if msg.Action.Kind == "" {
		return dashboard.ErrInvalidAction
	}
	snap, err := c.service.Dispatch(ctx, msg.ShellID, msg.Action)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.dispatch", shellPayload(msg.ShellID, map[string]any{
		"kind": string(msg.Action.Kind),
		"page": string(snap.Route.Page),
	}))
	return nil
}
