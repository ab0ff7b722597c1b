package gorouter

import (
	"bytes"
	"errors"
	"mime"
	"net/http"
	"net/url"
	"strings"

	json "github.com/goccy/go-json"
	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-dashboard-ui/components/dashboard"
	"github.com/goliatone/go-dashboard-ui/components/dashboard/commands"
	"github.com/goliatone/go-dashboard-ui/components/dashboard/httpapi"
	"github.com/goliatone/go-dashboard-ui/components/dashboard/queries"
)

// Subscriber hands out per-shell event streams. *dashboard.EventHub satisfies it.
type Subscriber interface {
	Subscribe(shellID string) (<-chan dashboard.ViewEvent, func())
}

// Config wires go-router with the console handlers and event hub.
type Config[T any] struct {
	Router   router.Router[T]
	API      *httpapi.Handlers
	Events   Subscriber
	BasePath string
	Routes   RouteConfig

	// Origins is handed to go-router's WebSocket config. Empty keeps the
	// same-origin policy; a non-empty list replaces it, so list the console's
	// own origin too.
	Origins []string
}

// RouteConfig customizes the relative paths of the console endpoints.
type RouteConfig struct {
	Enter     string
	EnterPage string
	Shell     string
	ShellPage string
	Actions   string
	State     string
	WebSocket string
	Assets    string
}

// Register mounts the console routes (HTML, actions, JSON state, WebSocket
// events and static assets) on a go-router router. Live events are served over
// WebSocket only on this transport.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.API == nil {
		return errors.New("gorouter: handlers are required")
	}
	if cfg.API.Creator == nil || cfg.API.Renderer == nil {
		return errors.New("gorouter: shell creator and renderer are required")
	}
	routes := defaultRouteConfig(cfg.Routes)
	base := dashboard.NormalizeBasePath(cfg.BasePath)
	api := cfg.API

	cfg.Router.Static(base+routes.Assets, ".", router.Static{
		FS:     dashboard.StaticAssets(),
		Root:   ".",
		MaxAge: 3600,
	})

	group := cfg.Router.Group(base)

	if cfg.Events != nil {
		registerWebSocket(group, cfg.Events, routes.WebSocket, cfg.Origins)
	}

	group.Get(routes.State, router.WrapHandler(func(ctx router.Context) error {
		snap, err := api.Snapshot.Query(ctx.Context(), queries.ShellInput{ShellID: ctx.Param("shell")})
		if err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, snap)
	}))

	group.Post(routes.Actions, router.WrapHandler(func(ctx router.Context) error {
		shellID := ctx.Param("shell")
		asJSON := isJSON(ctx.Header("Content-Type"))
		action, err := decodeAction(ctx.Body(), asJSON)
		if err != nil {
			return respondError(ctx, err)
		}
		if err := api.Dispatch.Execute(ctx.Context(), commands.DispatchActionInput{ShellID: shellID, Action: action}); err != nil {
			return respondError(ctx, err)
		}
		snap, err := api.Snapshot.Query(ctx.Context(), queries.ShellInput{ShellID: shellID})
		if err != nil {
			return respondError(ctx, err)
		}
		if asJSON {
			return ctx.JSON(http.StatusOK, snap)
		}
		return seeOther(ctx, api.Renderer.Links(shellID).Page(snap.Route.Path))
	}))

	group.Delete(routes.Shell, router.WrapHandler(func(ctx router.Context) error {
		if err := api.Unmount.Execute(ctx.Context(), commands.ShellInput{ShellID: ctx.Param("shell")}); err != nil {
			return respondError(ctx, err)
		}
		return ctx.NoContent(http.StatusNoContent)
	}))

	render := func(ctx router.Context, pagePath string) error {
		shellID := ctx.Param("shell")
		if err := api.Navigate.Execute(ctx.Context(), commands.NavigateInput{ShellID: shellID, Path: pagePath}); err != nil {
			return respondError(ctx, err)
		}
		var buf bytes.Buffer
		if err := api.Renderer.RenderShell(ctx.Context(), shellID, &buf); err != nil {
			return respondError(ctx, err)
		}
		ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
		ctx.SetHeader("Cache-Control", "no-store")
		return ctx.Send(buf.Bytes())
	}
	group.Get(routes.Shell, router.WrapHandler(func(ctx router.Context) error {
		return render(ctx, "/")
	}))
	group.Get(routes.ShellPage, router.WrapHandler(func(ctx router.Context) error {
		return render(ctx, "/"+ctx.Param("page"))
	}))

	enter := func(ctx router.Context, pagePath string) error {
		snap, err := api.Creator.CreateShell(ctx.Context(), pagePath)
		if err != nil {
			return respondError(ctx, err)
		}
		return seeOther(ctx, api.Renderer.Links(snap.ID).Page(snap.Route.Path))
	}
	group.Get(routes.Enter, router.WrapHandler(func(ctx router.Context) error {
		return enter(ctx, "/")
	}))
	group.Get(routes.EnterPage, router.WrapHandler(func(ctx router.Context) error {
		return enter(ctx, "/"+ctx.Param("page"))
	}))

	return nil
}

func registerWebSocket[T any](r router.Router[T], events Subscriber, path string, origins []string) {
	cfg := router.DefaultWebSocketConfig()
	cfg.Origins = append(cfg.Origins, origins...)
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		stream, cancel := events.Subscribe(ws.Param("shell"))
		defer cancel()
		for {
			select {
			case event, ok := <-stream:
				if !ok {
					return ws.Close()
				}
				if err := ws.WriteJSON(event); err != nil {
					return err
				}
			case <-ws.Context().Done():
				return ws.Close()
			}
		}
	})
}

func decodeAction(body []byte, asJSON bool) (dashboard.Action, error) {
	if asJSON {
		var action dashboard.Action
		if err := json.Unmarshal(body, &action); err != nil {
			return dashboard.Action{}, errors.Join(dashboard.ErrInvalidAction, err)
		}
		return action, nil
	}
	values, err := url.ParseQuery(string(body))
	if err != nil {
		return dashboard.Action{}, errors.Join(dashboard.ErrInvalidAction, err)
	}
	return dashboard.ParseActionForm(values)
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(contentType))
	return err == nil && mediaType == "application/json"
}

// seeOther redirects a form post back to the shell page.
func seeOther(ctx router.Context, location string) error {
	ctx.SetHeader("Location", location)
	return ctx.JSON(http.StatusSeeOther, map[string]string{"location": location})
}

func respondError(ctx router.Context, err error) error {
	return ctx.JSON(httpapi.StatusFor(err), map[string]string{"error": err.Error()})
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.Enter == "" {
		routes.Enter = "/"
	}
	if routes.EnterPage == "" {
		routes.EnterPage = "/:page"
	}
	if routes.Shell == "" {
		routes.Shell = "/s/:shell"
	}
	if routes.ShellPage == "" {
		routes.ShellPage = "/s/:shell/:page"
	}
	if routes.Actions == "" {
		routes.Actions = "/s/:shell/actions"
	}
	if routes.State == "" {
		routes.State = "/s/:shell/state"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/s/:shell/ws"
	}
	if routes.Assets == "" {
		routes.Assets = "/static"
	}
	return routes
}
