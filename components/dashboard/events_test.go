package dashboard

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func metricsEvent(shellID string) ViewEvent {
	return ViewEvent{
		ShellID: shellID,
		Page:    PageAnalytics,
		Kind:    EventMetrics,
		Metrics: []Metric{{Title: LiveUsersMetric, Value: "1,240"}},
		At:      time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
	}
}

func TestWriteSSEFrame(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSSE(&buf, metricsEvent("s1")))

	frame := buf.String()
	require.True(t, strings.HasPrefix(frame, "event: metrics\ndata: "), frame)
	require.True(t, strings.HasSuffix(frame, "\n\n"))

	data := strings.TrimSuffix(strings.TrimPrefix(frame, "event: metrics\ndata: "), "\n\n")
	var decoded ViewEvent
	require.NoError(t, json.Unmarshal([]byte(data), &decoded))
	assert.Equal(t, "s1", decoded.ShellID)
	assert.Equal(t, "1,240", decoded.Metrics[0].Value)
}

func TestEventHubRoutesByShell(t *testing.T) {
	hub := NewEventHub()
	mine, cancelMine := hub.Subscribe("s1")
	defer cancelMine()
	other, cancelOther := hub.Subscribe("s2")
	defer cancelOther()

	require.NoError(t, hub.Publish(context.Background(), metricsEvent("s1")))

	select {
	case event := <-mine:
		assert.Equal(t, "s1", event.ShellID)
	default:
		t.Fatalf("expected event for s1")
	}
	select {
	case event := <-other:
		t.Fatalf("unexpected event for s2: %+v", event)
	default:
	}
}

func TestEventHubDropsForSlowSubscribers(t *testing.T) {
	hub := NewEventHub()
	events, cancel := hub.Subscribe("s1")
	defer cancel()

	for i := 0; i < subscriberBuffer+5; i++ {
		require.NoError(t, hub.Publish(context.Background(), metricsEvent("s1")))
	}
	assert.Len(t, events, subscriberBuffer)
}

func TestEventHubCancelAndCloseShell(t *testing.T) {
	hub := NewEventHub()
	first, cancelFirst := hub.Subscribe("s1")
	second, cancelSecond := hub.Subscribe("s1")
	assert.Equal(t, 2, hub.Subscribers("s1"))

	cancelFirst()
	cancelFirst()
	_, open := <-first
	assert.False(t, open)
	assert.Equal(t, 1, hub.Subscribers("s1"))

	hub.CloseShell("s1")
	_, open = <-second
	assert.False(t, open)
	assert.Equal(t, 0, hub.Subscribers("s1"))
	cancelSecond()
}

func TestEventHubServeSSE(t *testing.T) {
	hub := NewEventHub()
	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		hub.ServeSSE(rec, req, "s1")
		close(done)
	}()

	require.Eventually(t, func() bool { return hub.Subscribers("s1") == 1 }, time.Second, time.Millisecond)
	require.NoError(t, hub.Publish(context.Background(), metricsEvent("s1")))
	hub.CloseShell("s1")

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("sse stream did not end")
	}
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "event: metrics\n")
}

func TestEventHubServeWebSocket(t *testing.T) {
	hub := NewEventHub()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWebSocket(w, r, "s1")
	}))
	defer server.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Subscribers("s1") == 1 }, time.Second, time.Millisecond)
	require.NoError(t, hub.Publish(context.Background(), metricsEvent("s1")))

	var event ViewEvent
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, EventMetrics, event.Kind)
	assert.Equal(t, PageAnalytics, event.Page)
}

func TestEventHubWebSocketOriginCheck(t *testing.T) {
	hub := NewEventHub(WithAllowedOrigins("https://ops.example.com/", " "))
	assert.Equal(t, []string{"https://ops.example.com"}, hub.AllowedOrigins())

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWebSocket(w, r, "s1")
	}))
	defer server.Close()
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")

	dial := func(origin string) (*websocket.Conn, *http.Response, error) {
		header := http.Header{}
		if origin != "" {
			header.Set("Origin", origin)
		}
		return websocket.DefaultDialer.Dial(wsURL, header)
	}

	_, resp, err := dial("https://evil.example.net")
	if !errors.Is(err, websocket.ErrBadHandshake) {
		t.Fatalf("expected cross-site handshake to fail, got %v", err)
	}
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Zero(t, hub.Subscribers("s1"))

	for _, origin := range []string{server.URL, "https://OPS.example.com"} {
		conn, _, err := dial(origin)
		require.NoError(t, err, origin)
		require.Eventually(t, func() bool { return hub.Subscribers("s1") == 1 }, time.Second, time.Millisecond)
		conn.Close()
		require.Eventually(t, func() bool {
			_ = hub.Publish(context.Background(), metricsEvent("s1"))
			return hub.Subscribers("s1") == 0
		}, time.Second, 5*time.Millisecond)
	}
}

func TestEventHubCheckOrigin(t *testing.T) {
	hub := NewEventHub()
	cases := []struct {
		origin string
		want   bool
	}{
		{"", true},
		{"http://console.local:8080", true},
		{"http://other.local:8080", false},
		{"null", false},
		{"://bad", false},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "http://console.local:8080/admin/s/s1/ws", nil)
		if tc.origin != "" {
			req.Header.Set("Origin", tc.origin)
		}
		assert.Equal(t, tc.want, hub.checkOrigin(req), tc.origin)
	}
}
