package tabular

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ritik-gupta001/nexalyze/models"
)

const sampleCSV = `name,age,score,city
alice,30,91.5,Delhi
bob,25,78.0,Mumbai
carol,35,,Delhi
dave,NA,88.25,
`

func TestLoadCSVTypesAndMissing(t *testing.T) {
	table, err := Load([]byte(sampleCSV), "people.csv")
	require.NoError(t, err)

	assert.Equal(t, 4, table.Rows)
	require.Len(t, table.Columns, 4)

	assert.Equal(t, TypeObject, table.Columns[0].Type)
	assert.Equal(t, TypeInt, table.Columns[1].Type)
	assert.Equal(t, TypeFloat, table.Columns[2].Type)
	assert.Equal(t, TypeObject, table.Columns[3].Type)

	assert.Equal(t, 1, table.Columns[1].MissingCount()) // NA
	assert.Equal(t, 1, table.Columns[2].MissingCount()) // empty cell
	assert.Equal(t, []float64{30, 25, 35}, table.Columns[1].Values())
}

func TestLoadRejectsUnsupportedExtensions(t *testing.T) {
	_, err := Load([]byte("{}"), "data.json")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrUnsupportedInput))

	_, err = Load([]byte("PK"), "data.xlsx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "convert data.xlsx to CSV")
	assert.False(t, errors.Is(err, models.ErrUnsupportedInput)) // allow-listed, just unimplemented
}

func TestSupportedExt(t *testing.T) {
	assert.True(t, SupportedExt("a.csv"))
	assert.True(t, SupportedExt("a.XLSX"))
	assert.True(t, SupportedExt("a.xls"))
	assert.False(t, SupportedExt("a.tsv"))
}

func TestLoadEmptyCSV(t *testing.T) {
	_, err := Load(nil, "empty.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no header row")
}

func TestDescribe(t *testing.T) {
	table, err := Load([]byte(sampleCSV), "people.csv")
	require.NoError(t, err)

	stats := Describe(table)
	assert.Equal(t, Shape{Rows: 4, Columns: 4}, stats.Shape)
	assert.Equal(t, []string{"name", "age", "score", "city"}, stats.Columns)
	assert.Equal(t, "int64", stats.Dtypes["age"])
	assert.Equal(t, "object", stats.Dtypes["name"])
	assert.Equal(t, 1, stats.MissingValues["score"])
	assert.Equal(t, 0, stats.MissingValues["name"])

	age := stats.NumericSummary["age"]
	assert.InDelta(t, 3, age.Count, 1e-9)
	assert.InDelta(t, 30, age.Mean, 1e-9)
	assert.InDelta(t, 25, age.Min, 1e-9)
	assert.InDelta(t, 35, age.Max, 1e-9)
	assert.InDelta(t, 5, age.Std, 1e-9) // sample std of 25,30,35

	city := stats.CategoricalSummary["city"]
	assert.Equal(t, 2, city.Unique)
	assert.Equal(t, "Delhi", city.Top)
	assert.Equal(t, 2, city.Freq)
}

func TestFormatStats(t *testing.T) {
	table, err := Load([]byte(sampleCSV), "people.csv")
	require.NoError(t, err)

	got := FormatStats(Describe(table))
	assert.Contains(t, got, "Dataset Shape: 4 rows × 4 columns")
	assert.Contains(t, got, "Columns: name, age, score, city")
	assert.Contains(t, got, "### Numeric Summary:")
	assert.Contains(t, got, "age:")
	assert.Contains(t, got, "  Mean: 30.00")
	assert.Contains(t, got, "  Std: 5.00")
}

func buildTrendCSV(t *testing.T) *Table {
	t.Helper()
	var b strings.Builder
	b.WriteString("x,y,z\n")
	for i := 1; i <= 12; i++ {
		fmt.Fprintf(&b, "%d,%d,5\n", i, 2*i)
	}
	table, err := Load([]byte(b.String()), "trend.csv")
	require.NoError(t, err)
	return table
}

func TestDetectPatterns(t *testing.T) {
	table := buildTrendCSV(t)
	p := DetectPatterns(table)

	require.Len(t, p.Correlations, 1)
	assert.Equal(t, "x", p.Correlations[0].Col1)
	assert.Equal(t, "y", p.Correlations[0].Col2)
	assert.InDelta(t, 1.0, p.Correlations[0].Correlation, 1e-9)

	require.Len(t, p.Trends, 2)
	assert.Equal(t, Trend{Column: "x", Trend: "increasing", Slope: 1}, roundTrend(p.Trends[0]))
	assert.Equal(t, Trend{Column: "y", Trend: "increasing", Slope: 2}, roundTrend(p.Trends[1]))
}

func roundTrend(tr Trend) Trend {
	tr.Slope = float64(int(tr.Slope + 0.5))
	return tr
}

func TestDetectPatternsNeedsEnoughRows(t *testing.T) {
	table, err := Load([]byte("x,y\n1,2\n2,4\n3,6\n"), "small.csv")
	require.NoError(t, err)

	p := DetectPatterns(table)
	assert.Len(t, p.Correlations, 1) // correlation has no row minimum beyond 2
	assert.Empty(t, p.Trends)        // trend scan needs more than 10 values
}

func TestFindAnomalies(t *testing.T) {
	var b strings.Builder
	b.WriteString("v,flat\n")
	for i := 0; i < 12; i++ {
		b.WriteString("1,7\n")
	}
	b.WriteString("20,7\n")
	table, err := Load([]byte(b.String()), "outliers.csv")
	require.NoError(t, err)

	anomalies := FindAnomalies(table)
	require.Len(t, anomalies, 1) // flat column has zero spread
	assert.Equal(t, "v", anomalies[0].Column)
	assert.Equal(t, 1, anomalies[0].Count)
	assert.Equal(t, []float64{20}, anomalies[0].Examples)
	assert.InDelta(t, 100.0/13, anomalies[0].Percentage, 1e-9)
}

func TestFindAnomaliesTooFewValues(t *testing.T) {
	table, err := Load([]byte("v\n1\n2\n100\n"), "tiny.csv")
	require.NoError(t, err)
	assert.Empty(t, FindAnomalies(table))
}

func TestDateColumn(t *testing.T) {
	table, err := Load([]byte("day,v\n2026-08-01,1\n2026-08-02,2\n"), "ts.csv")
	require.NoError(t, err)

	col, times := table.DateColumn()
	require.NotNil(t, col)
	assert.Equal(t, "day", col.Name)
	require.Len(t, times, 2)
	assert.Equal(t, 2026, times[0].Year())

	noDate, _ := Load([]byte("name,v\nalice,1\n"), "nd.csv")
	col, _ = noDate.DateColumn()
	assert.Nil(t, col)
}

func TestSampleCSV(t *testing.T) {
	table, err := Load([]byte(sampleCSV), "people.csv")
	require.NoError(t, err)

	got := SampleCSV(table, 2)
	lines := strings.Split(strings.TrimSpace(got), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "name,age,score,city", lines[0])
	assert.Equal(t, "alice,30,91.5,Delhi", lines[1])
}
