package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-dashboard-ui/components/dashboard"
)

var errMissingShell = errors.New("commands: shell id is required")

// ShellInput addresses one shell.
type ShellInput struct {
	ShellID string
}

type shellDispatcher interface {
	Dispatch(ctx context.Context, id string, action dashboard.Action) (dashboard.ShellSnapshot, error)
}

// ToggleSidebarCommand collapses or expands the navigation rail.
type ToggleSidebarCommand struct {
	service   shellDispatcher
	telemetry Telemetry
}

// NewToggleSidebarCommand creates the command.
func NewToggleSidebarCommand(service shellDispatcher, telemetry Telemetry) *ToggleSidebarCommand {
	return &ToggleSidebarCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ShellInput] = (*ToggleSidebarCommand)(nil)

// Execute flips the sidebar of the shell.
func (c *ToggleSidebarCommand) Execute(ctx context.Context, msg ShellInput) error {
	if c.service == nil {
		return errors.New("toggle sidebar command requires service")
	}
	if msg.ShellID == "" {
		return errMissingShell
	}
	snap, err := c.service.Dispatch(ctx, msg.ShellID, dashboard.Action{Kind: dashboard.ActionToggleSidebar})
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.toggle_sidebar", shellPayload(msg.ShellID, map[string]any{
		"collapsed": snap.Collapsed,
	}))
	return nil
}

// ToggleThemeCommand flips the global light/dark theme of a shell.
type ToggleThemeCommand struct {
	service   shellDispatcher
	telemetry Telemetry
}

// NewToggleThemeCommand creates the command.
func NewToggleThemeCommand(service shellDispatcher, telemetry Telemetry) *ToggleThemeCommand {
	return &ToggleThemeCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ShellInput] = (*ToggleThemeCommand)(nil)

// Execute flips the theme of the shell.
func (c *ToggleThemeCommand) Execute(ctx context.Context, msg ShellInput) error {
	if c.service == nil {
		return errors.New("toggle theme command requires service")
	}
	if msg.ShellID == "" {
		return errMissingShell
	}
	snap, err := c.service.Dispatch(ctx, msg.ShellID, dashboard.Action{Kind: dashboard.ActionToggleTheme})
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.toggle_theme", shellPayload(msg.ShellID, map[string]any{
		"theme": string(snap.Theme),
	}))
	return nil
}
