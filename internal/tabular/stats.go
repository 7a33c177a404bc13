package tabular

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Shape is the dataset's row and column counts.
type Shape struct {
	Rows    int `json:"rows"`
	Columns int `json:"columns"`
}

// NumericSummary is the describe() block for one numeric column.
type NumericSummary struct {
	Count  float64 `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Q25    float64 `json:"25%"`
	Median float64 `json:"50%"`
	Q75    float64 `json:"75%"`
	Max    float64 `json:"max"`
}

// CategoricalSummary describes one object column.
type CategoricalSummary struct {
	Unique int    `json:"unique"`
	Top    string `json:"top"`
	Freq   int    `json:"freq"`
}

// Statistics is the full dataset profile.
type Statistics struct {
	Shape              Shape                         `json:"shape"`
	Columns            []string                      `json:"columns"`
	Dtypes             map[string]string             `json:"dtypes"`
	MissingValues      map[string]int                `json:"missing_values"`
	NumericSummary     map[string]NumericSummary     `json:"numeric_summary"`
	CategoricalSummary map[string]CategoricalSummary `json:"categorical_summary"`
}

// Describe profiles the table: shape, per-column dtypes and missing counts,
// describe-style numeric summaries, and mode/frequency for the first five
// object columns.
func Describe(t *Table) Statistics {
	stats := Statistics{
		Shape:              Shape{Rows: t.Rows, Columns: len(t.Columns)},
		Dtypes:             map[string]string{},
		MissingValues:      map[string]int{},
		NumericSummary:     map[string]NumericSummary{},
		CategoricalSummary: map[string]CategoricalSummary{},
	}

	categoricalSeen := 0
	for i := range t.Columns {
		col := &t.Columns[i]
		stats.Columns = append(stats.Columns, col.Name)
		stats.Dtypes[col.Name] = string(col.Type)
		stats.MissingValues[col.Name] = col.MissingCount()

		if col.Numeric() {
			stats.NumericSummary[col.Name] = describeColumn(col.Values())
			continue
		}
		if categoricalSeen >= 5 {
			continue
		}
		categoricalSeen++
		stats.CategoricalSummary[col.Name] = describeCategorical(col)
	}
	return stats
}

func describeColumn(values []float64) NumericSummary {
	s := NumericSummary{Count: float64(len(values))}
	if len(values) == 0 {
		return s
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	s.Q25 = quantile(sorted, 0.25)
	s.Median = quantile(sorted, 0.5)
	s.Q75 = quantile(sorted, 0.75)

	var sum float64
	for _, v := range values {
		sum += v
	}
	s.Mean = sum / float64(len(values))
	s.Std = stdSample(values, s.Mean)
	return s
}

func describeCategorical(col *Column) CategoricalSummary {
	counts := map[string]int{}
	for i, cell := range col.Strings {
		if !col.Missing[i] {
			counts[cell]++
		}
	}
	summary := CategoricalSummary{Unique: len(counts), Top: "N/A"}
	for value, n := range counts {
		if n > summary.Freq || (n == summary.Freq && value < summary.Top) {
			summary.Top = value
			summary.Freq = n
		}
	}
	return summary
}

// quantile interpolates linearly over a sorted slice.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// stdSample is the sample standard deviation (n-1 denominator). A single
// value has no spread to estimate and yields 0.
func stdSample(values []float64, mean float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var ss float64
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)-1))
}

// FormatStats renders the profile for prompts and reports: shape, column
// list, and Mean/Std/Min/Max for the first three numeric columns.
func FormatStats(stats Statistics) string {
	var lines []string
	lines = append(lines, fmt.Sprintf("Dataset Shape: %d rows × %d columns", stats.Shape.Rows, stats.Shape.Columns))
	lines = append(lines, fmt.Sprintf("\nColumns: %s", strings.Join(stats.Columns, ", ")))

	if len(stats.NumericSummary) > 0 {
		lines = append(lines, "\n### Numeric Summary:")
		shown := 0
		for _, name := range stats.Columns {
			summary, ok := stats.NumericSummary[name]
			if !ok {
				continue
			}
			if shown >= 3 {
				break
			}
			shown++
			lines = append(lines, fmt.Sprintf("\n%s:", name))
			lines = append(lines, fmt.Sprintf("  Mean: %.2f", summary.Mean))
			lines = append(lines, fmt.Sprintf("  Std: %.2f", summary.Std))
			lines = append(lines, fmt.Sprintf("  Min: %.2f", summary.Min))
			lines = append(lines, fmt.Sprintf("  Max: %.2f", summary.Max))
		}
	}
	return strings.Join(lines, "\n")
}

// SampleCSV renders the header and first n rows back as CSV text for prompt
// context.
func SampleCSV(t *Table, n int) string {
	var b strings.Builder
	names := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		names[i] = col.Name
	}
	b.WriteString(strings.Join(names, ","))
	b.WriteByte('\n')

	if n > t.Rows {
		n = t.Rows
	}
	for row := 0; row < n; row++ {
		cells := make([]string, len(t.Columns))
		for i, col := range t.Columns {
			cells[i] = col.Strings[row]
		}
		b.WriteString(strings.Join(cells, ","))
		b.WriteByte('\n')
	}
	return b.String()
}
