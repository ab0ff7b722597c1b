package dashboard

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"
)

// EventMetrics is the ViewEvent kind published after each live refresh.
const EventMetrics = "metrics"

var analyticsTabs = tabSet{"overview", "performance", "engagement"}

// AnalyticsSnapshot is the analytics page state. Panels only holds the
// selected tab's charts.
type AnalyticsSnapshot struct {
	Tabs        []string     `json:"tabs"`
	ActiveTab   string       `json:"active_tab"`
	Panels      []ChartPanel `json:"panels"`
	LiveMetrics []Metric     `json:"live_metrics"`
	Refreshes   int          `json:"refreshes"`
}

// AnalyticsView shows tabbed chart panels and a live metrics grid refreshed
// by a background task.
type AnalyticsView struct {
	shellID   string
	panels    map[string][]ChartPanel
	activeTab string
	telemetry Telemetry
	task      *RefreshTask

	// guards the fields written by the refresh goroutine
	mu        sync.Mutex
	metrics   []Metric
	refreshes int
	rng       *rand.Rand
}

// NewAnalyticsView mounts the analytics page and starts its refresh task.
func NewAnalyticsView(mount MountContext) (PageView, error) {
	rng := mount.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	v := &AnalyticsView{
		shellID:   mount.ShellID,
		panels:    mount.Data.AnalyticsPanels,
		activeTab: analyticsTabs[0],
		telemetry: normalizeTelemetry(mount.Telemetry),
		metrics:   append([]Metric(nil), mount.Data.LiveMetrics...),
		rng:       rng,
	}
	v.task = StartRefreshTask(context.Background(), mount.RefreshInterval, func(now time.Time) {
		metrics := v.refresh()
		mount.publish(ViewEvent{
			ShellID: v.shellID,
			Page:    PageAnalytics,
			Kind:    EventMetrics,
			Metrics: metrics,
			At:      now,
		})
	})
	return v, nil
}

func (v *AnalyticsView) refresh() []Metric {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.metrics = PerturbMetrics(v.metrics, v.rng)
	v.refreshes++
	return append([]Metric(nil), v.metrics...)
}

func (v *AnalyticsView) Key() PageKey { return PageAnalytics }

func (v *AnalyticsView) Snapshot() PageSnapshot {
	v.mu.Lock()
	metrics := append([]Metric(nil), v.metrics...)
	refreshes := v.refreshes
	v.mu.Unlock()
	return PageSnapshot{Key: PageAnalytics, Analytics: &AnalyticsSnapshot{
		Tabs:        append([]string(nil), analyticsTabs...),
		ActiveTab:   v.activeTab,
		Panels:      append([]ChartPanel(nil), v.panels[v.activeTab]...),
		LiveMetrics: metrics,
		Refreshes:   refreshes,
	}}
}

func (v *AnalyticsView) Dispatch(ctx context.Context, action Action) error {
	if action.Kind != ActionSelectTab {
		return unsupported(PageAnalytics, action)
	}
	if err := analyticsTabs.validate(action.Tab); err != nil {
		return err
	}
	v.activeTab = action.Tab
	v.telemetry.Record(ctx, "dashboard.analytics.tab", map[string]any{"tab": action.Tab})
	return nil
}

// Teardown stops the refresh task and waits for it to exit.
func (v *AnalyticsView) Teardown() {
	v.task.Stop()
}

// Stopped is closed once the refresh task has exited.
func (v *AnalyticsView) Stopped() <-chan struct{} {
	return v.task.Done()
}
