package dashboard

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

const subscriberBuffer = 8

// EventHub fans view events out to the subscribers of each shell. Slow
// subscribers miss events instead of blocking the publisher.
type EventHub struct {
	mu   sync.RWMutex
	subs map[string]map[int]chan ViewEvent
	next int

	origins  []string
	upgrader websocket.Upgrader
}

// EventHubOption customizes an EventHub.
type EventHubOption func(*EventHub)

// WithAllowedOrigins lets WebSocket clients from the given origins
// (scheme://host[:port]) connect in addition to same-origin pages.
func WithAllowedOrigins(origins ...string) EventHubOption {
	return func(h *EventHub) {
		for _, origin := range origins {
			if origin = normalizeOrigin(origin); origin != "" {
				h.origins = append(h.origins, origin)
			}
		}
	}
}

// NewEventHub creates an empty hub. WebSocket upgrades are same-origin only
// unless WithAllowedOrigins says otherwise.
func NewEventHub(opts ...EventHubOption) *EventHub {
	h := &EventHub{subs: make(map[string]map[int]chan ViewEvent)}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	h.upgrader = websocket.Upgrader{CheckOrigin: h.checkOrigin}
	return h
}

// AllowedOrigins lists the extra origins accepted for WebSocket upgrades.
func (h *EventHub) AllowedOrigins() []string {
	return append([]string(nil), h.origins...)
}

// checkOrigin accepts requests without an Origin header (non-browser
// clients), same-host origins and the configured allow list.
func (h *EventHub) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return false
	}
	if strings.EqualFold(u.Host, r.Host) {
		return true
	}
	origin = normalizeOrigin(origin)
	for _, allowed := range h.origins {
		if allowed == origin {
			return true
		}
	}
	return false
}

func normalizeOrigin(origin string) string {
	return strings.ToLower(strings.TrimRight(strings.TrimSpace(origin), "/"))
}

// Publish satisfies EventPublisher.
func (h *EventHub) Publish(_ context.Context, event ViewEvent) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subs[event.ShellID] {
		select {
		case ch <- event:
		default:
		}
	}
	return nil
}

// Subscribe returns a channel of events for one shell and a cancel func.
func (h *EventHub) Subscribe(shellID string) (<-chan ViewEvent, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.next
	h.next++
	ch := make(chan ViewEvent, subscriberBuffer)
	if h.subs[shellID] == nil {
		h.subs[shellID] = make(map[int]chan ViewEvent)
	}
	h.subs[shellID][id] = ch
	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[shellID][id]; ok {
			delete(h.subs[shellID], id)
			close(sub)
			if len(h.subs[shellID]) == 0 {
				delete(h.subs, shellID)
			}
		}
	}
	return ch, cancel
}

// CloseShell ends every subscription of a torn down shell.
func (h *EventHub) CloseShell(shellID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs[shellID] {
		close(ch)
	}
	delete(h.subs, shellID)
}

// Subscribers reports how many listeners a shell has.
func (h *EventHub) Subscribers(shellID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[shellID])
}

// ServeWebSocket upgrades the request and streams the shell's events as JSON.
// Cross-origin handshakes outside the allow list are refused with 403.
func (h *EventHub) ServeWebSocket(w http.ResponseWriter, r *http.Request, shellID string) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	events, cancel := h.Subscribe(shellID)
	defer cancel()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-events:
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "shell closed"))
				return
			}
			payload, err := json.Marshal(event)
			if err != nil {
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		}
	}
}

// ServeSSE streams the shell's events as Server-Sent Events.
func (h *EventHub) ServeSSE(w http.ResponseWriter, r *http.Request, shellID string) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	events, cancel := h.Subscribe(shellID)
	defer cancel()

	flusher, _ := w.(http.Flusher)
	if flusher != nil {
		flusher.Flush()
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := WriteSSE(w, event); err != nil {
				return
			}
			if flusher != nil {
				flusher.Flush()
			}
		}
	}
}

// WriteSSE writes one event frame.
func WriteSSE(w io.Writer, event ViewEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	frame := make([]byte, 0, len(payload)+32)
	frame = append(frame, "event: "...)
	frame = append(frame, event.Kind...)
	frame = append(frame, "\ndata: "...)
	frame = append(frame, payload...)
	frame = append(frame, "\n\n"...)
	_, err = w.Write(frame)
	return err
}
