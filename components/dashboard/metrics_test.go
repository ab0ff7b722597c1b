package dashboard

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerturbMetrics(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	base := DefaultDataset().LiveMetrics
	current := base
	for i := 0; i < 50; i++ {
		next := PerturbMetrics(current, rng)
		require.Len(t, next, len(base))

		before, _ := parseCount(current[0].Value)
		after, ok := parseCount(next[0].Value)
		require.True(t, ok)
		assert.GreaterOrEqual(t, after-before, 0)
		assert.Less(t, after-before, 10)

		for j, metric := range next {
			assert.Equal(t, base[j].Title, metric.Title)
			assert.Less(t, metric.Change, 20.0)
			assert.Greater(t, metric.Change, -20.0)
			if metric.Trend == TrendUp {
				assert.GreaterOrEqual(t, metric.Change, 0.0)
			} else {
				assert.LessOrEqual(t, metric.Change, 0.0)
			}
			if j > 0 {
				assert.Equal(t, base[j].Value, metric.Value, "only the live metric value moves")
			}
		}
		current = next
	}
	assert.Equal(t, "1,234", base[0].Value, "input is not mutated")
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "1,234", FormatCount(1234))
	assert.Equal(t, "999", FormatCount(999))
	assert.Equal(t, "1,000,000", FormatCount(1000000))

	n, ok := parseCount(" 12,345 ")
	require.True(t, ok)
	assert.Equal(t, 12345, n)
	_, ok = parseCount("4m 12s")
	assert.False(t, ok)
}

func TestBuildMetricCard(t *testing.T) {
	up := BuildMetricCard(Metric{Title: "Revenue", Value: "$1", Change: 12.5, Trend: TrendUp})
	assert.Equal(t, "+12.5%", up.ChangeLabel)
	assert.Equal(t, "text-green-500", up.TrendClass)
	assert.Equal(t, "12.5%", up.ProgressWidth)

	down := BuildMetricCard(Metric{Title: "Users", Value: "2", Change: -5.2, Trend: TrendDown})
	assert.Equal(t, "-5.2%", down.ChangeLabel)
	assert.Equal(t, "text-red-500", down.TrendClass)
	assert.Equal(t, "5.2%", down.ProgressWidth)

	assert.Equal(t, "100%", progressWidth(250))
	assert.Len(t, BuildMetricsGrid(DefaultDataset().HomeMetrics).Cards, 4)
}
