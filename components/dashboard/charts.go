package dashboard

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// ChartKind selects the go-echarts chart type of a panel.
type ChartKind string

const (
	ChartBar  ChartKind = "bar"
	ChartLine ChartKind = "line"
	ChartPie  ChartKind = "pie"
)

const (
	defaultChartHeight  = "300px"
	expandedChartHeight = "480px"
)

// ChartView is a rendered chart panel.
type ChartView struct {
	Title string    `json:"title"`
	Kind  ChartKind `json:"kind"`
	Theme string    `json:"theme"`
	// HTML is a complete go-echarts document, embedded through an iframe srcdoc.
	HTML string `json:"html"`
}

// ChartRenderer renders chart panels into HTML with go-echarts.
type ChartRenderer struct {
	cache      RenderCache
	assetsHost string
}

// ChartRendererOption customizes renderer behavior.
type ChartRendererOption func(*ChartRenderer)

// WithChartCache injects a render cache. A nil cache disables caching.
func WithChartCache(cache RenderCache) ChartRendererOption {
	return func(r *ChartRenderer) {
		r.cache = cache
	}
}

// WithChartAssetsHost rewrites the assets host so ECharts JS loads from a CDN.
func WithChartAssetsHost(host string) ChartRendererOption {
	return func(r *ChartRenderer) {
		r.assetsHost = ensureTrailingSlash(strings.TrimSpace(host))
	}
}

// NewChartRenderer builds a renderer.
func NewChartRenderer(options ...ChartRendererOption) *ChartRenderer {
	r := &ChartRenderer{}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// Render draws the panel using the given ECharts theme.
func (r *ChartRenderer) Render(panel ChartPanel, theme string) (ChartView, error) {
	return r.render(panel, theme, defaultChartHeight)
}

// RenderExpanded draws the panel at dialog size.
func (r *ChartRenderer) RenderExpanded(panel ChartPanel, theme string) (ChartView, error) {
	return r.render(panel, theme, expandedChartHeight)
}

func (r *ChartRenderer) render(panel ChartPanel, theme, height string) (ChartView, error) {
	if theme == "" {
		theme = types.ThemeWesteros
	}
	kind := ChartKind(strings.ToLower(string(panel.Kind)))
	if kind == "" {
		kind = ChartLine
	}
	renderFn := func() (string, error) {
		return r.draw(kind, panel, theme, height)
	}

	var (
		html string
		err  error
	)
	if r != nil && r.cache != nil {
		key := fmt.Sprintf("%s:%s:%s:%s", kind, theme, height, seriesHash(panel))
		html, err = r.cache.GetOrRender(key, renderFn)
	} else {
		html, err = renderFn()
	}
	if err != nil {
		return ChartView{}, err
	}
	return ChartView{Title: panel.Title, Kind: kind, Theme: theme, HTML: html}, nil
}

func (r *ChartRenderer) draw(kind ChartKind, panel ChartPanel, theme, height string) (string, error) {
	global := r.globalChartOptions(panel.Title, theme, height)
	switch kind {
	case ChartBar:
		bar := charts.NewBar()
		bar.SetGlobalOptions(global...)
		bar.SetXAxis(panel.Series.Labels)
		bar.AddSeries(panel.Title, toBarData(panel.Series))
		return renderChart(bar)
	case ChartLine:
		line := charts.NewLine()
		line.SetGlobalOptions(global...)
		line.SetXAxis(panel.Series.Labels)
		line.AddSeries(panel.Title, toLineData(panel.Series))
		line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
		return renderChart(line)
	case ChartPie:
		pie := charts.NewPie()
		pie.SetGlobalOptions(global...)
		pie.AddSeries(panel.Title, toPieData(panel.Series))
		return renderChart(pie)
	default:
		return "", fmt.Errorf("dashboard: unsupported chart type: %s", kind)
	}
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *ChartRenderer) globalChartOptions(title, theme, height string) []charts.GlobalOpts {
	initOpts := opts.Initialization{
		Theme:  theme,
		Width:  "100%",
		Height: height,
	}
	if r != nil && r.assetsHost != "" {
		initOpts.AssetsHost = r.assetsHost
	}
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(initOpts),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

// Labels and Data may differ in length; missing labels are left blank.
func seriesLabel(series ChartSeries, i int) string {
	if i < len(series.Labels) {
		return series.Labels[i]
	}
	return ""
}

func toBarData(series ChartSeries) []opts.BarData {
	data := make([]opts.BarData, len(series.Data))
	for i, value := range series.Data {
		data[i] = opts.BarData{Name: seriesLabel(series, i), Value: value}
	}
	return data
}

func toLineData(series ChartSeries) []opts.LineData {
	data := make([]opts.LineData, len(series.Data))
	for i, value := range series.Data {
		data[i] = opts.LineData{Name: seriesLabel(series, i), Value: value}
	}
	return data
}

func toPieData(series ChartSeries) []opts.PieData {
	data := make([]opts.PieData, len(series.Data))
	for i, value := range series.Data {
		name := seriesLabel(series, i)
		if name == "" {
			name = fmt.Sprintf("Slice %d", i+1)
		}
		data[i] = opts.PieData{Name: name, Value: value}
	}
	return data
}

func ensureTrailingSlash(value string) string {
	if value == "" || strings.HasSuffix(value, "/") {
		return value
	}
	return value + "/"
}
