package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

type unmounter interface {
	Unmount(ctx context.Context, id string) error
}

// UnmountShellCommand tears a shell down, stopping page timers.
type UnmountShellCommand struct {
	service   unmounter
	telemetry Telemetry
}

// NewUnmountShellCommand creates the command.
func NewUnmountShellCommand(service unmounter, telemetry Telemetry) *UnmountShellCommand {
	return &UnmountShellCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ShellInput] = (*UnmountShellCommand)(nil)

// Execute delegates to the dashboard service.
func (c *UnmountShellCommand) Execute(ctx context.Context, msg ShellInput) error {
	if c.service == nil {
		return errors.New("unmount command requires service")
	}
	if msg.ShellID == "" {
		return errMissingShell
	}
	if err := c.service.Unmount(ctx, msg.ShellID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.unmount", shellPayload(msg.ShellID, nil))
	return nil
}
