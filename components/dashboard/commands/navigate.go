package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-dashboard-ui/components/dashboard"
)

// NavigateInput moves a shell to a route path.
type NavigateInput struct {
	ShellID string
	Path    string
}

type navigator interface {
	Navigate(ctx context.Context, id, path string) (dashboard.ShellSnapshot, error)
}

// NavigateCommand swaps the mounted page of a shell.
type NavigateCommand struct {
	service   navigator
	telemetry Telemetry
}

// NewNavigateCommand creates the command.
func NewNavigateCommand(service navigator, telemetry Telemetry) *NavigateCommand {
	return &NavigateCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[NavigateInput] = (*NavigateCommand)(nil)

// Execute delegates to the dashboard service.
func (c *NavigateCommand) Execute(ctx context.Context, msg NavigateInput) error {
	if c.service == nil {
		return errors.New("navigate command requires service")
	}
	if msg.ShellID == "" {
		return errMissingShell
	}
	snap, err := c.service.Navigate(ctx, msg.ShellID, msg.Path)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.navigate", shellPayload(msg.ShellID, map[string]any{
		"page": string(snap.Route.Page),
	}))
	return nil
}
