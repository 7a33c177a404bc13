package tabular

import (
	"log/slog"
	"math"
)

// Correlation is a strong pairwise relationship between two numeric columns.
type Correlation struct {
	Col1        string  `json:"col1"`
	Col2        string  `json:"col2"`
	Correlation float64 `json:"correlation"`
}

// Trend is a directional drift in one numeric column.
type Trend struct {
	Column string  `json:"column"`
	Trend  string  `json:"trend"`
	Slope  float64 `json:"slope"`
}

// Patterns bundles detected relationships.
type Patterns struct {
	Correlations []Correlation `json:"correlations"`
	Trends       []Trend       `json:"trends"`
}

// Anomaly reports z-score outliers in one column. Percentage is the outlier
// share of the table's total rows.
type Anomaly struct {
	Column     string    `json:"column"`
	Count      int       `json:"count"`
	Examples   []float64 `json:"examples"`
	Percentage float64   `json:"percentage"`
}

// DetectPatterns scans numeric columns for strong correlations (|r| > 0.7
// across all pairs) and linear trends (first three numeric columns with more
// than 10 values, where the slope magnitude exceeds 1% of the sample
// standard deviation).
func DetectPatterns(t *Table) Patterns {
	p := Patterns{Correlations: []Correlation{}, Trends: []Trend{}}

	var numeric []*Column
	for i := range t.Columns {
		if t.Columns[i].Numeric() {
			numeric = append(numeric, &t.Columns[i])
		}
	}

	for i := 0; i < len(numeric); i++ {
		for j := i + 1; j < len(numeric); j++ {
			r, ok := pearson(numeric[i], numeric[j])
			if ok && math.Abs(r) > 0.7 {
				p.Correlations = append(p.Correlations, Correlation{
					Col1:        numeric[i].Name,
					Col2:        numeric[j].Name,
					Correlation: r,
				})
			}
		}
	}

	trendCols := numeric
	if len(trendCols) > 3 {
		trendCols = trendCols[:3]
	}
	for _, col := range trendCols {
		values := col.Values()
		if len(values) <= 10 {
			continue
		}
		slope := fitSlope(values)
		mean := meanOf(values)
		if math.Abs(slope) > stdSample(values, mean)*0.01 {
			direction := "increasing"
			if slope < 0 {
				direction = "decreasing"
			}
			p.Trends = append(p.Trends, Trend{Column: col.Name, Trend: direction, Slope: slope})
		}
	}

	slog.Debug("pattern scan complete", "correlations", len(p.Correlations), "trends", len(p.Trends))
	return p
}

// FindAnomalies scans the first five numeric columns for values more than 3
// sample standard deviations from the mean. Columns with 3 or fewer values
// or zero spread yield nothing; at most 3 example values are kept per column.
func FindAnomalies(t *Table) []Anomaly {
	var anomalies []Anomaly

	scanned := 0
	for i := range t.Columns {
		col := &t.Columns[i]
		if !col.Numeric() {
			continue
		}
		if scanned >= 5 {
			break
		}
		scanned++

		values := col.Values()
		if len(values) <= 3 {
			continue
		}
		mean := meanOf(values)
		std := stdSample(values, mean)
		if std <= 0 {
			continue
		}

		var examples []float64
		count := 0
		for _, v := range values {
			if math.Abs((v-mean)/std) > 3 {
				count++
				if len(examples) < 3 {
					examples = append(examples, v)
				}
			}
		}
		if count > 0 {
			pct := 0.0
			if t.Rows > 0 {
				pct = float64(count) / float64(t.Rows) * 100
			}
			anomalies = append(anomalies, Anomaly{Column: col.Name, Count: count, Examples: examples, Percentage: pct})
		}
	}
	return anomalies
}

// CorrelationMatrix computes the full pairwise correlation matrix over
// numeric columns. Degenerate pairs (constant columns, no shared rows) get 0;
// the diagonal is 1. Returns nil labels when fewer than two numeric columns
// exist.
func CorrelationMatrix(t *Table) ([]string, [][]float64) {
	var numeric []*Column
	for i := range t.Columns {
		if t.Columns[i].Numeric() {
			numeric = append(numeric, &t.Columns[i])
		}
	}
	if len(numeric) < 2 {
		return nil, nil
	}

	labels := make([]string, len(numeric))
	matrix := make([][]float64, len(numeric))
	for i, col := range numeric {
		labels[i] = col.Name
		matrix[i] = make([]float64, len(numeric))
		matrix[i][i] = 1
	}
	for i := 0; i < len(numeric); i++ {
		for j := i + 1; j < len(numeric); j++ {
			r, ok := pearson(numeric[i], numeric[j])
			if !ok {
				r = 0
			}
			matrix[i][j] = r
			matrix[j][i] = r
		}
	}
	return labels, matrix
}

// pearson correlates two columns over rows where both values are present.
func pearson(a, b *Column) (float64, bool) {
	var xs, ys []float64
	n := len(a.Missing)
	if len(b.Missing) < n {
		n = len(b.Missing)
	}
	for i := 0; i < n; i++ {
		if a.Missing[i] || b.Missing[i] {
			continue
		}
		xs = append(xs, a.Floats[i])
		ys = append(ys, b.Floats[i])
	}
	if len(xs) < 2 {
		return 0, false
	}

	mx, my := meanOf(xs), meanOf(ys)
	var cov, vx, vy float64
	for i := range xs {
		dx, dy := xs[i]-mx, ys[i]-my
		cov += dx * dy
		vx += dx * dx
		vy += dy * dy
	}
	if vx == 0 || vy == 0 {
		return 0, false
	}
	return cov / math.Sqrt(vx*vy), true
}

// fitSlope is the least-squares slope of values against index order.
func fitSlope(values []float64) float64 {
	n := float64(len(values))
	var sumX, sumY, sumXY, sumXX float64
	for i, v := range values {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / denom
}

func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
