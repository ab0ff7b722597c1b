package dashboard

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// LiveUsersMetric is the metric whose value grows on every simulated refresh.
const LiveUsersMetric = "Total Users"

const maxChangeMagnitude = 20

var numberPrinter = message.NewPrinter(language.English)

// MetricCardView is the display form of a Metric.
type MetricCardView struct {
	Title         string `json:"title"`
	Value         string `json:"value"`
	ChangeLabel   string `json:"change_label"`
	Trend         Trend  `json:"trend"`
	TrendClass    string `json:"trend_class"`
	ProgressWidth string `json:"progress_width"`
	Description   string `json:"description"`
}

// MetricsGridView lays metric cards out in a responsive grid.
type MetricsGridView struct {
	Cards []MetricCardView `json:"cards"`
}

// BuildMetricCard renders one metric.
func BuildMetricCard(metric Metric) MetricCardView {
	trendClass := "text-green-500"
	if metric.Trend == TrendDown {
		trendClass = "text-red-500"
	}
	return MetricCardView{
		Title:         metric.Title,
		Value:         metric.Value,
		ChangeLabel:   formatChange(metric.Change),
		Trend:         metric.Trend,
		TrendClass:    trendClass,
		ProgressWidth: progressWidth(metric.Change),
		Description:   metric.Description,
	}
}

// BuildMetricsGrid renders every metric in order.
func BuildMetricsGrid(metrics []Metric) MetricsGridView {
	cards := make([]MetricCardView, 0, len(metrics))
	for _, metric := range metrics {
		cards = append(cards, BuildMetricCard(metric))
	}
	return MetricsGridView{Cards: cards}
}

// PerturbMetrics returns a copy of metrics after one simulated refresh. The
// LiveUsersMetric value grows by an integer in [0, 10); every metric gets a
// random trend and a change magnitude in [0, 20) signed to match it.
func PerturbMetrics(metrics []Metric, rng *rand.Rand) []Metric {
	out := make([]Metric, len(metrics))
	for i, metric := range metrics {
		if metric.Title == LiveUsersMetric {
			if current, ok := parseCount(metric.Value); ok {
				metric.Value = FormatCount(current + rng.IntN(10))
			}
		}
		magnitude := math.Floor(rng.Float64()*maxChangeMagnitude*10) / 10
		if rng.IntN(2) == 0 {
			metric.Trend = TrendUp
			metric.Change = magnitude
		} else {
			metric.Trend = TrendDown
			metric.Change = -magnitude
		}
		out[i] = metric
	}
	return out
}

// FormatCount renders an integer with thousands separators ("1,234").
func FormatCount(n int) string {
	return numberPrinter.Sprintf("%d", n)
}

func parseCount(value string) (int, bool) {
	n, err := strconv.Atoi(strings.ReplaceAll(strings.TrimSpace(value), ",", ""))
	if err != nil {
		return 0, false
	}
	return n, true
}

func formatChange(change float64) string {
	if change >= 0 {
		return fmt.Sprintf("+%.1f%%", change)
	}
	return fmt.Sprintf("%.1f%%", change)
}

func progressWidth(change float64) string {
	return strconv.FormatFloat(math.Min(math.Abs(change), 100), 'f', -1, 64) + "%"
}
