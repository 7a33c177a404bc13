package ml

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredictTrendTooFewPoints(t *testing.T) {
	engine := NewForecastEngine()

	preds, trend := engine.PredictTrend(nil, 7)
	require.Len(t, preds, 7)
	assert.Equal(t, TrendStable, trend)
	for _, p := range preds {
		assert.InDelta(t, 0.5, p, 1e-9)
	}

	preds, trend = engine.PredictTrend([]float64{0.2, 0.8}, 3)
	require.Len(t, preds, 3)
	assert.Equal(t, TrendStable, trend)
	for _, p := range preds {
		assert.InDelta(t, 0.5, p, 1e-9) // mean of the two inputs
	}
}

func TestPredictTrendDirections(t *testing.T) {
	engine := NewForecastEngine()

	_, trend := engine.PredictTrend([]float64{0.1, 0.2, 0.3, 0.4, 0.5}, 5)
	assert.Equal(t, TrendImproving, trend)

	_, trend = engine.PredictTrend([]float64{0.9, 0.7, 0.5, 0.3}, 5)
	assert.Equal(t, TrendDeclining, trend)

	_, trend = engine.PredictTrend([]float64{0.5, 0.5, 0.5, 0.5}, 5)
	assert.Equal(t, TrendStable, trend)

	// Slope inside the ±0.01 dead band reads as stable.
	_, trend = engine.PredictTrend([]float64{0.50, 0.505, 0.51}, 5)
	assert.Equal(t, TrendStable, trend)
}

func TestPredictTrendClipsToUnitInterval(t *testing.T) {
	engine := NewForecastEngine()

	preds, trend := engine.PredictTrend([]float64{0.4, 0.6, 0.8, 1.0}, 10)
	assert.Equal(t, TrendImproving, trend)
	for _, p := range preds {
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
	}
	// Extrapolating a 0.2/step slope ten steps out must hit the ceiling.
	assert.InDelta(t, 1.0, preds[9], 1e-9)
}

func TestForecastSentimentEmptyHistory(t *testing.T) {
	engine := NewForecastEngine()
	got := engine.ForecastSentiment(nil, 7)
	assert.Equal(t, "Insufficient data for reliable trend forecasting.", got)
}

func TestForecastSentimentNarratives(t *testing.T) {
	engine := NewForecastEngine()

	improving := []SentimentResult{
		{Positive: 0.2}, {Positive: 0.4}, {Positive: 0.6}, {Positive: 0.8},
	}
	got := engine.ForecastSentiment(improving, 7)
	assert.Contains(t, got, "the trend is **improving**")
	assert.Contains(t, got, "expected to improve by approximately")
	assert.Contains(t, got, "over the next 7 days")

	declining := []SentimentResult{
		{Positive: 0.8}, {Positive: 0.6}, {Positive: 0.4}, {Positive: 0.2},
	}
	got = engine.ForecastSentiment(declining, 7)
	assert.Contains(t, got, "the trend is **declining**")
	assert.Contains(t, got, "Caution advised.")

	flat := []SentimentResult{
		{Positive: 0.5}, {Positive: 0.5}, {Positive: 0.5},
	}
	got = engine.ForecastSentiment(flat, 7)
	assert.Contains(t, got, "the trend is **stable**")
	assert.True(t, strings.HasSuffix(got, "remain relatively stable over the next 7 days."))
}

func TestDetectAnomalies(t *testing.T) {
	// A single large spike among many identical values.
	data := []float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 10}
	got := DetectAnomalies(data, 2.0)
	assert.Equal(t, []int{10}, got)

	// Constant series has zero deviation, nothing to flag.
	assert.Nil(t, DetectAnomalies([]float64{3, 3, 3, 3}, 2.0))

	// Too few points.
	assert.Nil(t, DetectAnomalies([]float64{1, 100}, 2.0))
}

func TestLinearModelFit(t *testing.T) {
	var m linearModel
	require.NoError(t, m.fit([]float64{1, 3, 5, 7}))
	assert.InDelta(t, 2.0, m.slope, 1e-9)
	assert.InDelta(t, 1.0, m.intercept, 1e-9)
	assert.InDelta(t, 9.0, m.predict(4), 1e-9)
}
