package dashboard

import (
	"context"
	"fmt"

	core "github.com/goliatone/go-dashboard-ui/components/dashboard"
	"github.com/goliatone/go-dashboard-ui/components/dashboard/commands"
	"github.com/goliatone/go-dashboard-ui/components/dashboard/httpapi"
	"github.com/goliatone/go-dashboard-ui/components/dashboard/queries"
)

// Service exposes the underlying components/dashboard.Service type.
type Service = core.Service

// Options re-export for convenience.
type Options = core.Options

// Controller re-export for convenience.
type Controller = core.Controller

// NewService proxies to the internal constructor.
func NewService(opts Options) (*Service, error) {
	return core.NewService(opts)
}

// Console bundles a service, its controller and the transport handlers.
type Console struct {
	Service    *Service
	Controller *Controller
	Events     *core.EventHub
	Handlers   *httpapi.Handlers
}

// ConsoleOptions configures NewConsole.
type ConsoleOptions struct {
	Service  Options
	BasePath string
	Charts   *core.ChartRenderer
	Renderer core.Renderer

	// AllowedOrigins are the cross-origin pages allowed to open the
	// WebSocket event stream. Same-origin pages always are.
	AllowedOrigins []string
}

// NewConsole wires the default stack: event hub, service, embedded templates,
// controller, commands and queries.
func NewConsole(opts ConsoleOptions) (*Console, error) {
	hub, ok := opts.Service.Events.(*core.EventHub)
	if !ok || hub == nil {
		hub = core.NewEventHub(core.WithAllowedOrigins(opts.AllowedOrigins...))
		opts.Service.Events = hub
	}
	svc, err := core.NewService(opts.Service)
	if err != nil {
		return nil, err
	}
	renderer := opts.Renderer
	if renderer == nil {
		renderer, err = core.NewTemplateRenderer()
		if err != nil {
			return nil, fmt.Errorf("dashboard: init renderer: %w", err)
		}
	}
	controller := core.NewController(core.ControllerOptions{
		Service:   svc,
		Renderer:  renderer,
		Charts:    opts.Charts,
		BasePath:  opts.BasePath,
		Telemetry: opts.Service.Telemetry,
	})
	telemetry := opts.Service.Telemetry
	return &Console{
		Service:    svc,
		Controller: controller,
		Events:     hub,
		Handlers: &httpapi.Handlers{
			Creator:  svc,
			Renderer: controller,
			Events:   hub,
			Navigate: commands.NewNavigateCommand(svc, telemetry),
			Dispatch: commands.NewDispatchActionCommand(svc, telemetry),
			Unmount:  commands.NewUnmountShellCommand(svc, telemetry),
			Snapshot: queries.NewShellSnapshotQuery(svc),
		},
	}, nil
}

// Close tears down every open shell.
func (c *Console) Close(ctx context.Context) {
	c.Service.Close(ctx)
}
