package httpapi

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"
	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-dashboard-ui/components/dashboard"
	"github.com/goliatone/go-dashboard-ui/components/dashboard/commands"
	"github.com/goliatone/go-dashboard-ui/components/dashboard/queries"
)

const maxActionBody = 64 << 10

// ShellCreator opens shells on entry. *dashboard.Service satisfies it.
type ShellCreator interface {
	CreateShell(ctx context.Context, entryPath string) (dashboard.ShellSnapshot, error)
}

// PageRenderer renders shells to HTML. *dashboard.Controller satisfies it.
type PageRenderer interface {
	RenderShell(ctx context.Context, shellID string, out io.Writer) error
	Links(shellID string) dashboard.Links
}

// EventStreamer serves live shell events. *dashboard.EventHub satisfies it.
type EventStreamer interface {
	ServeSSE(w http.ResponseWriter, r *http.Request, shellID string)
	ServeWebSocket(w http.ResponseWriter, r *http.Request, shellID string)
}

// Handlers exposes HTTP endpoints backed by shared commands and queries.
type Handlers struct {
	Creator  ShellCreator
	Renderer PageRenderer
	Events   EventStreamer
	Navigate gocommand.Commander[commands.NavigateInput]
	Dispatch gocommand.Commander[commands.DispatchActionInput]
	Unmount  gocommand.Commander[commands.ShellInput]
	Snapshot gocommand.Querier[queries.ShellInput, dashboard.ShellSnapshot]
	Logger   *slog.Logger
}

// HandleEnter opens a new shell at pagePath and redirects the browser to it.
func (h *Handlers) HandleEnter(w http.ResponseWriter, r *http.Request, pagePath string) {
	snap, err := h.Creator.CreateShell(r.Context(), pagePath)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	links := h.Renderer.Links(snap.ID)
	http.Redirect(w, r, links.Page(snap.Route.Path), http.StatusSeeOther)
}

// HandleRender navigates the shell to pagePath and renders it.
func (h *Handlers) HandleRender(w http.ResponseWriter, r *http.Request, shellID, pagePath string) {
	if err := h.Navigate.Execute(r.Context(), commands.NavigateInput{ShellID: shellID, Path: pagePath}); err != nil {
		h.writeError(w, r, err)
		return
	}
	var body strings.Builder
	if err := h.Renderer.RenderShell(r.Context(), shellID, &body); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = io.WriteString(w, body.String())
}

// HandleAction dispatches a form or JSON action. Form posts redirect back to
// the shell's page; JSON callers receive the new snapshot.
func (h *Handlers) HandleAction(w http.ResponseWriter, r *http.Request, shellID string) {
	r.Body = http.MaxBytesReader(w, r.Body, maxActionBody)
	asJSON := isJSON(r)
	action, err := decodeAction(r, asJSON)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.Dispatch.Execute(r.Context(), commands.DispatchActionInput{ShellID: shellID, Action: action}); err != nil {
		h.writeError(w, r, err)
		return
	}
	snap, err := h.Snapshot.Query(r.Context(), queries.ShellInput{ShellID: shellID})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if asJSON {
		writeJSON(w, http.StatusOK, snap)
		return
	}
	http.Redirect(w, r, h.Renderer.Links(shellID).Page(snap.Route.Path), http.StatusSeeOther)
}

// HandleState returns the shell snapshot as JSON.
func (h *Handlers) HandleState(w http.ResponseWriter, r *http.Request, shellID string) {
	snap, err := h.Snapshot.Query(r.Context(), queries.ShellInput{ShellID: shellID})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// HandleEvents streams shell events over SSE.
func (h *Handlers) HandleEvents(w http.ResponseWriter, r *http.Request, shellID string) {
	if _, err := h.Snapshot.Query(r.Context(), queries.ShellInput{ShellID: shellID}); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.Events.ServeSSE(w, r, shellID)
}

// HandleSocket streams shell events over a WebSocket.
func (h *Handlers) HandleSocket(w http.ResponseWriter, r *http.Request, shellID string) {
	if _, err := h.Snapshot.Query(r.Context(), queries.ShellInput{ShellID: shellID}); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.Events.ServeWebSocket(w, r, shellID)
}

// HandleUnmount tears the shell down.
func (h *Handlers) HandleUnmount(w http.ResponseWriter, r *http.Request, shellID string) {
	if err := h.Unmount.Execute(r.Context(), commands.ShellInput{ShellID: shellID}); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeAction(r *http.Request, asJSON bool) (dashboard.Action, error) {
	if asJSON {
		var action dashboard.Action
		if err := json.NewDecoder(r.Body).Decode(&action); err != nil {
			return dashboard.Action{}, errors.Join(dashboard.ErrInvalidAction, err)
		}
		return action, nil
	}
	if err := r.ParseForm(); err != nil {
		return dashboard.Action{}, errors.Join(dashboard.ErrInvalidAction, err)
	}
	return dashboard.ParseActionForm(r.PostForm)
}

func isJSON(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

// StatusFor maps dashboard errors onto HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, dashboard.ErrShellNotFound), errors.Is(err, dashboard.ErrUnknownRoute):
		return http.StatusNotFound
	case errors.Is(err, dashboard.ErrUnsupportedAction),
		errors.Is(err, dashboard.ErrInvalidTab),
		errors.Is(err, dashboard.ErrInvalidDate),
		errors.Is(err, dashboard.ErrInvalidAction):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError && h.Logger != nil {
		h.Logger.Error("dashboard request failed", slog.String("path", r.URL.Path), slog.Any("error", err))
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
