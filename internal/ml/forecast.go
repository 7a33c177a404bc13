package ml

import (
	"fmt"
	"math"
	"sync"
)

// Trend labels produced by the forecast engine.
const (
	TrendImproving = "improving"
	TrendStable    = "stable"
	TrendDeclining = "declining"
)

// ForecastEngine extrapolates sentiment series with a simple linear
// regression. The regression state is shared, so fit+predict runs as one
// atomic unit behind a mutex.
type ForecastEngine struct {
	mu    sync.Mutex
	model linearModel
}

type linearModel struct {
	slope     float64
	intercept float64
}

// NewForecastEngine returns a ready engine. The regression is refit on every
// PredictTrend call; there is nothing to load from disk.
func NewForecastEngine() *ForecastEngine {
	return &ForecastEngine{}
}

// PredictTrend forecasts the next horizon values of a score series in [0,1].
// With fewer than 3 points there is no statistical basis for a slope: the
// result is horizon copies of the input mean (0.5 for an empty series) with
// trend "stable". Predictions are clipped to [0,1].
func (e *ForecastEngine) PredictTrend(scores []float64, horizon int) ([]float64, string) {
	if len(scores) < 3 {
		return flatForecast(scores, horizon), TrendStable
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.model.fit(scores); err != nil {
		return flatForecast(scores, horizon), TrendStable
	}

	predictions := make([]float64, horizon)
	for i := 0; i < horizon; i++ {
		p := e.model.predict(float64(len(scores) + i))
		predictions[i] = clip01(p)
	}

	switch {
	case e.model.slope > 0.01:
		return predictions, TrendImproving
	case e.model.slope < -0.01:
		return predictions, TrendDeclining
	default:
		return predictions, TrendStable
	}
}

// ForecastSentiment renders a human-readable forecast from a sentiment
// history, keyed on the positive-probability series.
func (e *ForecastEngine) ForecastSentiment(history []SentimentResult, horizon int) string {
	if len(history) == 0 {
		return "Insufficient data for reliable trend forecasting."
	}

	scores := make([]float64, len(history))
	for i, s := range history {
		scores[i] = s.Positive
	}

	predictions, trend := e.PredictTrend(scores, horizon)

	recent := scores
	if len(scores) >= 3 {
		recent = scores[len(scores)-3:]
	}
	currentAvg := mean(recent)
	futureAvg := mean(predictions)

	changePct := 0.0
	if currentAvg > 0 {
		changePct = (futureAvg - currentAvg) / currentAvg * 100
	}

	description := fmt.Sprintf("Based on recent sentiment analysis, the trend is **%s**. ", trend)
	switch trend {
	case TrendImproving:
		description += fmt.Sprintf("Sentiment is expected to improve by approximately %.1f%% over the next %d days. Positive outlook.", math.Abs(changePct), horizon)
	case TrendDeclining:
		description += fmt.Sprintf("Sentiment is expected to decline by approximately %.1f%% over the next %d days. Caution advised.", math.Abs(changePct), horizon)
	default:
		description += fmt.Sprintf("Sentiment is expected to remain relatively stable over the next %d days.", horizon)
	}
	return description
}

// fit performs ordinary least squares of y against x = 0..n-1.
func (m *linearModel) fit(y []float64) error {
	n := float64(len(y))
	var sumX, sumY, sumXY, sumXX float64
	for i, v := range y {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 || math.IsNaN(denom) {
		return fmt.Errorf("degenerate series: zero variance in x")
	}
	m.slope = (n*sumXY - sumX*sumY) / denom
	m.intercept = (sumY - m.slope*sumX) / n
	if math.IsNaN(m.slope) || math.IsNaN(m.intercept) {
		return fmt.Errorf("regression produced NaN coefficients")
	}
	return nil
}

func (m *linearModel) predict(x float64) float64 {
	return m.slope*x + m.intercept
}

// DetectAnomalies flags indices whose z-score magnitude exceeds threshold.
// Series with fewer than 3 points or zero standard deviation yield no
// anomalies.
func DetectAnomalies(data []float64, threshold float64) []int {
	if len(data) < 3 {
		return nil
	}
	m := mean(data)
	sd := stdPop(data, m)
	if sd == 0 {
		return nil
	}
	var anomalies []int
	for i, v := range data {
		if math.Abs((v-m)/sd) > threshold {
			anomalies = append(anomalies, i)
		}
	}
	return anomalies
}

func flatForecast(scores []float64, horizon int) []float64 {
	avg := 0.5
	if len(scores) > 0 {
		avg = mean(scores)
	}
	out := make([]float64, horizon)
	for i := range out {
		out[i] = avg
	}
	return out
}

func clip01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	var sum float64
	for _, v := range data {
		sum += v
	}
	return sum / float64(len(data))
}

// stdPop is the population standard deviation.
func stdPop(data []float64, m float64) float64 {
	if len(data) == 0 {
		return 0
	}
	var ss float64
	for _, v := range data {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(data)))
}
