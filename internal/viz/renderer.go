// Package viz renders analysis charts as SVG files served under /charts/.
// Chart generation is best-effort: callers skip a chart when rendering
// fails rather than failing the task.
package viz

import (
	"fmt"
	"log/slog"
	"math"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/ritik-gupta001/nexalyze/internal/ml"
)

const (
	colorPositive = "#2ecc71"
	colorNeutral  = "#95a5a6"
	colorNegative = "#e74c3c"
	colorPrimary  = "#3498db"
	colorForecast = "#e67e22"
)

// Renderer produces chart files and returns their public URL paths.
type Renderer interface {
	SentimentChart(taskID string, results []ml.SentimentResult, entity string) (string, error)
	TrendChart(taskID string, historical, forecast []float64, entity string) (string, error)
	DistributionChart(taskID string, data []float64, title string) (string, error)
	CorrelationChart(taskID string, labels []string, matrix [][]float64, title string) (string, error)
	TimeSeriesChart(taskID string, times []time.Time, values []float64, dateLabel, valueLabel, title string) (string, error)
	BarChart(taskID string, labels []string, values []float64, title string) (string, error)
}

// SVGRenderer writes SVG charts into a directory via afero.
type SVGRenderer struct {
	fs  afero.Fs
	dir string
}

// NewSVGRenderer builds a renderer writing into dir.
func NewSVGRenderer(fs afero.Fs, dir string) *SVGRenderer {
	return &SVGRenderer{fs: fs, dir: dir}
}

func (r *SVGRenderer) save(taskID, kind string, content []byte) (string, error) {
	if err := r.fs.MkdirAll(r.dir, 0o755); err != nil {
		return "", fmt.Errorf("create charts directory: %w", err)
	}
	filename := fmt.Sprintf("%s-%s.svg", taskID, kind)
	path := filepath.Join(r.dir, filename)
	if err := afero.WriteFile(r.fs, path, content, 0o644); err != nil {
		return "", fmt.Errorf("write chart: %w", err)
	}
	url := "/charts/" + filename
	slog.Info("chart saved", "kind", kind, "path", path, "url", url)
	return url, nil
}

// SentimentChart draws grouped per-article bars for the three sentiment
// components. Empty input yields no chart and no error.
func (r *SVGRenderer) SentimentChart(taskID string, results []ml.SentimentResult, entity string) (string, error) {
	if len(results) == 0 {
		return "", nil
	}

	c := newCanvas(800, 400)
	c.title(fmt.Sprintf("Sentiment Analysis: %s", entity))
	c.axisLabels("Article Index", "Sentiment Score")
	c.frame()

	group := c.plotWidth() / float64(len(results))
	barW := group / 4
	for i, s := range results {
		base := float64(c.marginLeft) + float64(i)*group + group/8
		r.vbar(c, base, s.Positive, barW, colorPositive)
		r.vbar(c, base+barW, s.Neutral, barW, colorNeutral)
		r.vbar(c, base+2*barW, s.Negative, barW, colorNegative)
		c.text(base+1.5*barW, float64(c.height-c.marginBottom)+14, 10, "middle", fmt.Sprintf("%d", i+1))
	}
	c.legend([]legendEntry{
		{"Positive", colorPositive},
		{"Neutral", colorNeutral},
		{"Negative", colorNegative},
	})
	return r.save(taskID, "sentiment", c.render())
}

func (r *SVGRenderer) vbar(c *svgCanvas, x, value, width float64, color string) {
	top := c.y(clamp01(value))
	c.rect(x, top, width, c.y(0)-top, color, 0.8)
}

// TrendChart draws the historical series as a solid line and the forecast as
// a dashed continuation. Empty history yields no chart and no error.
func (r *SVGRenderer) TrendChart(taskID string, historical, forecast []float64, entity string) (string, error) {
	if len(historical) == 0 {
		return "", nil
	}

	c := newCanvas(800, 400)
	c.title(fmt.Sprintf("Sentiment Trend & Forecast: %s", entity))
	c.axisLabels("Time Period", "Sentiment Score")
	c.frame()

	total := len(historical) + len(forecast)
	xAt := func(i int) float64 {
		if total == 1 {
			return c.x(0.5)
		}
		return c.x(float64(i) / float64(total-1))
	}

	var histPts []float64
	for i, v := range historical {
		histPts = append(histPts, xAt(i), c.y(clamp01(v)))
		c.circle(xAt(i), c.y(clamp01(v)), 3, colorPrimary)
	}
	c.polyline(histPts, colorPrimary, false)

	if len(forecast) > 0 {
		// Start the forecast line from the last historical point.
		pts := []float64{xAt(len(historical) - 1), c.y(clamp01(historical[len(historical)-1]))}
		for i, v := range forecast {
			x := xAt(len(historical) + i)
			pts = append(pts, x, c.y(clamp01(v)))
			c.circle(x, c.y(clamp01(v)), 3, colorForecast)
		}
		c.polyline(pts, colorForecast, true)
	}

	c.legend([]legendEntry{
		{"Historical", colorPrimary},
		{"Forecast", colorForecast},
	})
	return r.save(taskID, "trend", c.render())
}

// DistributionChart draws a histogram with up to 30 bins.
func (r *SVGRenderer) DistributionChart(taskID string, data []float64, title string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("no data to plot")
	}

	bins := 30
	if len(data) < bins {
		bins = len(data)
	}
	min, max := data[0], data[0]
	for _, v := range data {
		min = math.Min(min, v)
		max = math.Max(max, v)
	}
	counts := make([]int, bins)
	span := max - min
	for _, v := range data {
		idx := 0
		if span > 0 {
			idx = int(float64(bins) * (v - min) / span)
			if idx >= bins {
				idx = bins - 1
			}
		}
		counts[idx]++
	}
	peak := 0
	for _, n := range counts {
		if n > peak {
			peak = n
		}
	}

	c := newCanvas(800, 400)
	c.title(title)
	c.axisLabels("Value", "Frequency")
	c.frame()
	barW := c.plotWidth() / float64(bins)
	for i, n := range counts {
		h := float64(n) / float64(peak)
		x := float64(c.marginLeft) + float64(i)*barW
		c.rect(x, c.y(h), barW-1, c.y(0)-c.y(h), colorPrimary, 0.7)
	}
	return r.save(taskID, "distribution", c.render())
}

// CorrelationChart draws a heatmap of a square correlation matrix, green for
// positive and red for negative coefficients.
func (r *SVGRenderer) CorrelationChart(taskID string, labels []string, matrix [][]float64, title string) (string, error) {
	n := len(labels)
	if n == 0 || len(matrix) != n {
		return "", fmt.Errorf("correlation matrix must be square with one label per column")
	}

	c := newCanvas(700, 600)
	c.title(title)
	cell := math.Min(c.plotWidth(), c.plotHeight()) / float64(n)
	originX := float64(c.marginLeft)
	originY := float64(c.marginTop)

	for i := 0; i < n; i++ {
		if len(matrix[i]) != n {
			return "", fmt.Errorf("correlation matrix row %d is not length %d", i, n)
		}
		for j := 0; j < n; j++ {
			v := matrix[i][j]
			x := originX + float64(j)*cell
			y := originY + float64(i)*cell
			c.rect(x, y, cell-1, cell-1, heatColor(v), 1)
			c.text(x+cell/2, y+cell/2+4, 11, "middle", fmt.Sprintf("%.2f", v))
		}
		c.text(originX-6, originY+float64(i)*cell+cell/2+4, 11, "end", labels[i])
		c.text(originX+float64(i)*cell+cell/2, originY+float64(n)*cell+14, 11, "middle", labels[i])
	}
	return r.save(taskID, "correlation", c.render())
}

func heatColor(v float64) string {
	v = math.Max(-1, math.Min(1, v))
	if v >= 0 {
		rb := int(255 * (1 - v*0.7))
		return fmt.Sprintf("#%02xc8%02x", rb, rb)
	}
	gb := int(255 * (1 + v*0.7))
	return fmt.Sprintf("#e7%02x%02x", gb, gb)
}

// TimeSeriesChart plots values against their timestamps, sorted by time.
func (r *SVGRenderer) TimeSeriesChart(taskID string, times []time.Time, values []float64, dateLabel, valueLabel, title string) (string, error) {
	if len(times) == 0 || len(times) != len(values) {
		return "", fmt.Errorf("time series needs equal, non-empty times and values")
	}

	type point struct {
		t time.Time
		v float64
	}
	pts := make([]point, len(times))
	for i := range times {
		pts[i] = point{times[i], values[i]}
	}
	for i := 1; i < len(pts); i++ {
		for j := i; j > 0 && pts[j].t.Before(pts[j-1].t); j-- {
			pts[j], pts[j-1] = pts[j-1], pts[j]
		}
	}

	minV, maxV := pts[0].v, pts[0].v
	for _, p := range pts {
		minV = math.Min(minV, p.v)
		maxV = math.Max(maxV, p.v)
	}
	spanV := maxV - minV
	if spanV == 0 {
		spanV = 1
	}
	start, end := pts[0].t, pts[len(pts)-1].t
	spanT := end.Sub(start).Seconds()

	c := newCanvas(900, 400)
	c.title(title)
	c.axisLabels(dateLabel, valueLabel)
	c.frame()

	var line []float64
	for _, p := range pts {
		fx := 0.5
		if spanT > 0 {
			fx = p.t.Sub(start).Seconds() / spanT
		}
		x := c.x(fx)
		y := c.y((p.v - minV) / spanV)
		line = append(line, x, y)
		c.circle(x, y, 3, colorPositive)
	}
	c.polyline(line, colorPositive, false)
	c.text(c.x(0), float64(c.height-c.marginBottom)+14, 10, "start", start.Format("2006-01-02"))
	c.text(c.x(1), float64(c.height-c.marginBottom)+14, 10, "end", end.Format("2006-01-02"))
	return r.save(taskID, "timeseries", c.render())
}

// BarChart draws horizontal bars, green for positive values and red for
// negative, with a zero axis.
func (r *SVGRenderer) BarChart(taskID string, labels []string, values []float64, title string) (string, error) {
	if len(labels) == 0 || len(labels) != len(values) {
		return "", fmt.Errorf("bar chart needs equal, non-empty labels and values")
	}

	maxAbs := 0.0
	for _, v := range values {
		maxAbs = math.Max(maxAbs, math.Abs(v))
	}
	if maxAbs == 0 {
		maxAbs = 1
	}

	c := newCanvas(800, 60+40*len(labels))
	c.title(title)
	c.frame()
	zero := c.x(0.5)
	rowH := c.plotHeight() / float64(len(labels))
	for i, v := range values {
		color := colorPositive
		if v <= 0 {
			color = colorNegative
		}
		w := (v / maxAbs) * c.plotWidth() / 2
		y := float64(c.marginTop) + float64(i)*rowH + rowH*0.2
		if w >= 0 {
			c.rect(zero, y, w, rowH*0.6, color, 0.8)
		} else {
			c.rect(zero+w, y, -w, rowH*0.6, color, 0.8)
		}
		c.text(float64(c.marginLeft)-4, y+rowH*0.45, 11, "end", labels[i])
	}
	fmt.Fprintf(&c.body, `<line x1="%.1f" y1="%d" x2="%.1f" y2="%d" stroke="black" stroke-width="0.8"/>`+"\n",
		zero, c.marginTop, zero, c.height-c.marginBottom)
	return r.save(taskID, "barchart", c.render())
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
