package viz

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ritik-gupta001/nexalyze/internal/ml"
)

func newTestRenderer() (*SVGRenderer, afero.Fs) {
	fs := afero.NewMemMapFs()
	return NewSVGRenderer(fs, "charts"), fs
}

func readChart(t *testing.T, fs afero.Fs, name string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, "charts/"+name)
	require.NoError(t, err)
	content := string(data)
	assert.True(t, strings.HasPrefix(content, "<svg"))
	assert.True(t, strings.HasSuffix(strings.TrimSpace(content), "</svg>"))
	return content
}

func TestSentimentChart(t *testing.T) {
	r, fs := newTestRenderer()

	url, err := r.SentimentChart("T-20260830-abcd1234", []ml.SentimentResult{
		{Positive: 0.7, Neutral: 0.2, Negative: 0.1},
		{Positive: 0.2, Neutral: 0.3, Negative: 0.5},
	}, "Delhi")
	require.NoError(t, err)
	assert.Equal(t, "/charts/T-20260830-abcd1234-sentiment.svg", url)

	content := readChart(t, fs, "T-20260830-abcd1234-sentiment.svg")
	assert.Contains(t, content, "Sentiment Analysis: Delhi")
	assert.Contains(t, content, "#2ecc71")
	assert.Contains(t, content, "#e74c3c")
}

func TestSentimentChartEmptyInput(t *testing.T) {
	r, _ := newTestRenderer()
	url, err := r.SentimentChart("T-1", nil, "Delhi")
	require.NoError(t, err)
	assert.Empty(t, url)
}

func TestTrendChart(t *testing.T) {
	r, fs := newTestRenderer()

	url, err := r.TrendChart("T-1", []float64{0.4, 0.5, 0.6}, []float64{0.65, 0.7}, "Tesla")
	require.NoError(t, err)
	assert.Equal(t, "/charts/T-1-trend.svg", url)

	content := readChart(t, fs, "T-1-trend.svg")
	assert.Contains(t, content, "Sentiment Trend &amp; Forecast: Tesla")
	assert.Contains(t, content, "stroke-dasharray") // forecast segment is dashed
}

func TestTrendChartEmptyHistory(t *testing.T) {
	r, _ := newTestRenderer()
	url, err := r.TrendChart("T-1", nil, []float64{0.5}, "Tesla")
	require.NoError(t, err)
	assert.Empty(t, url)
}

func TestDistributionChart(t *testing.T) {
	r, fs := newTestRenderer()

	data := []float64{1, 2, 2, 3, 3, 3, 4, 4, 5}
	url, err := r.DistributionChart("T-1", data, "Distribution of score")
	require.NoError(t, err)
	assert.Equal(t, "/charts/T-1-distribution.svg", url)
	readChart(t, fs, "T-1-distribution.svg")

	_, err = r.DistributionChart("T-1", nil, "empty")
	assert.Error(t, err)
}

func TestCorrelationChart(t *testing.T) {
	r, fs := newTestRenderer()

	url, err := r.CorrelationChart("T-1",
		[]string{"a", "b"},
		[][]float64{{1, -0.8}, {-0.8, 1}},
		"Correlation Matrix")
	require.NoError(t, err)
	assert.Equal(t, "/charts/T-1-correlation.svg", url)

	content := readChart(t, fs, "T-1-correlation.svg")
	assert.Contains(t, content, "1.00")
	assert.Contains(t, content, "-0.80")

	_, err = r.CorrelationChart("T-1", []string{"a"}, [][]float64{{1, 0}}, "bad")
	assert.Error(t, err)
}

func TestTimeSeriesChartSortsByTime(t *testing.T) {
	r, fs := newTestRenderer()

	times := []time.Time{
		time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC),
	}
	url, err := r.TimeSeriesChart("T-1", times, []float64{3, 1, 2}, "day", "v", "v over time")
	require.NoError(t, err)
	assert.Equal(t, "/charts/T-1-timeseries.svg", url)

	content := readChart(t, fs, "T-1-timeseries.svg")
	assert.Contains(t, content, "2026-08-01")
	assert.Contains(t, content, "2026-08-03")

	_, err = r.TimeSeriesChart("T-1", times, []float64{1}, "day", "v", "mismatch")
	assert.Error(t, err)
}

func TestBarChart(t *testing.T) {
	r, fs := newTestRenderer()

	url, err := r.BarChart("T-1", []string{"a vs b", "b vs c"}, []float64{0.9, -0.8}, "Strong Correlations")
	require.NoError(t, err)
	assert.Equal(t, "/charts/T-1-barchart.svg", url)

	content := readChart(t, fs, "T-1-barchart.svg")
	assert.Contains(t, content, "a vs b")
	assert.Contains(t, content, "#2ecc71") // positive bar
	assert.Contains(t, content, "#e74c3c") // negative bar

	_, err = r.BarChart("T-1", nil, nil, "empty")
	assert.Error(t, err)
}
