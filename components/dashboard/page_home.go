package dashboard

import (
	"context"

	"github.com/ettle/strcase"
)

const homeChartsTitle = "Analytics Overview"

var homeTabs = tabSet{"daily", "weekly", "monthly"}

// HomeSnapshot is the dashboard home state.
type HomeSnapshot struct {
	Title     string      `json:"title"`
	Metrics   []Metric    `json:"metrics"`
	Tabs      []string    `json:"tabs"`
	ActiveTab string      `json:"active_tab"`
	Chart     ChartPanel  `json:"chart"`
	Expanded  *ChartPanel `json:"expanded,omitempty"`
}

// HomeView shows the metrics grid and the tabbed charts section.
type HomeView struct {
	metrics     []Metric
	charts      map[string]ChartSeries
	activeTab   string
	expandedTab string
	telemetry   Telemetry
}

// NewHomeView mounts the home page.
func NewHomeView(mount MountContext) (PageView, error) {
	return &HomeView{
		metrics:   append([]Metric(nil), mount.Data.HomeMetrics...),
		charts:    mount.Data.HomeCharts,
		activeTab: homeTabs[0],
		telemetry: normalizeTelemetry(mount.Telemetry),
	}, nil
}

func (v *HomeView) Key() PageKey { return PageHome }

func (v *HomeView) Snapshot() PageSnapshot {
	snap := &HomeSnapshot{
		Title:     homeChartsTitle,
		Metrics:   append([]Metric(nil), v.metrics...),
		Tabs:      append([]string(nil), homeTabs...),
		ActiveTab: v.activeTab,
		Chart:     v.panel(v.activeTab),
	}
	if v.expandedTab != "" {
		expanded := v.panel(v.expandedTab)
		expanded.Title = ExpandedChartTitle(v.expandedTab)
		snap.Expanded = &expanded
	}
	return PageSnapshot{Key: PageHome, Home: snap}
}

func (v *HomeView) Dispatch(ctx context.Context, action Action) error {
	switch action.Kind {
	case ActionSelectTab:
		if err := homeTabs.validate(action.Tab); err != nil {
			return err
		}
		v.activeTab = action.Tab
	case ActionExpandChart:
		v.expandedTab = v.activeTab
	case ActionOpenDialog:
		if action.Dialog != DialogExpandChart {
			return unsupported(PageHome, action)
		}
		v.expandedTab = v.activeTab
	case ActionCloseDialog:
		v.expandedTab = ""
	default:
		return unsupported(PageHome, action)
	}
	v.telemetry.Record(ctx, "dashboard.home.action", map[string]any{
		"kind": string(action.Kind),
		"tab":  v.activeTab,
	})
	return nil
}

func (v *HomeView) Teardown() {}

// daily renders as bars, the longer ranges as lines
func (v *HomeView) panel(tab string) ChartPanel {
	kind := ChartLine
	if tab == "daily" {
		kind = ChartBar
	}
	return ChartPanel{
		Title:  tab + " Data",
		Kind:   kind,
		Series: v.charts[tab],
	}
}

// ExpandedChartTitle is the dialog heading for an expanded chart tab.
func ExpandedChartTitle(tab string) string {
	return strcase.ToPascal(tab) + " Analytics"
}
