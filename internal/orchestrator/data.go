package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"path"
	"strings"
	"time"

	"github.com/ritik-gupta001/nexalyze/internal/tabular"
	"github.com/ritik-gupta001/nexalyze/models"
)

// DefaultDataInstruction is used when an upload has no instruction.
const DefaultDataInstruction = "Analyze this data, find patterns, trends, and provide insights"

// ExecuteDataAnalysis runs the data pipeline: load the dataset, profile it,
// detect patterns and anomalies, chart it, and render the report. The upload
// allow-list is checked before any task record exists; chart failures skip
// the chart without failing the task.
func (o *Orchestrator) ExecuteDataAnalysis(ctx context.Context, taskID string, content []byte, filename, instruction string) (models.Task, error) {
	if !tabular.SupportedExt(filename) {
		return models.Task{}, fmt.Errorf("%w: file type not supported, allowed: [.csv .xlsx .xls]", models.ErrUnsupportedInput)
	}
	if instruction == "" {
		instruction = DefaultDataInstruction
	}

	task := models.NewTask(taskID, models.TypeDataAnalysis)
	task.Instruction = instruction
	if err := o.store.Create(*task); err != nil {
		return *task, fmt.Errorf("create task record: %w", err)
	}

	slog.Info("starting data analysis", "task_id", taskID, "filename", filename)

	table, err := tabular.Load(content, filename)
	if err != nil {
		return *task, o.fail(task, err)
	}

	stats := tabular.Describe(table)
	statsText := tabular.FormatStats(stats)
	patterns := tabular.DetectPatterns(table)
	anomalies := tabular.FindAnomalies(table)

	analysis := o.completer.AnalyzeData(ctx, filename, statsText, tabular.SampleCSV(table, 10), instruction)

	charts := o.dataCharts(taskID, table, patterns)

	reportBody := dataReport(filename, instruction, statsText, analysis, patterns, anomalies, charts)
	reportURL, err := o.reports.Generate(taskID, fmt.Sprintf("Data Analysis: %s", filename), reportBody, charts)
	if err != nil {
		return *task, o.fail(task, fmt.Errorf("generate report: %w", err))
	}

	numericCols := 0
	for _, col := range table.Columns {
		if col.Numeric() {
			numericCols++
		}
	}

	task.Summary = analysis
	task.ReportURL = reportURL
	task.Charts = charts
	task.Metadata = map[string]any{
		"filename":           filename,
		"rows":               stats.Shape.Rows,
		"columns":            stats.Shape.Columns,
		"numeric_columns":    numericCols,
		"correlations_found": len(patterns.Correlations),
		"charts_generated":   len(charts),
	}
	if err := o.complete(task); err != nil {
		return *task, err
	}

	slog.Info("data analysis completed", "task_id", taskID, "charts", len(charts))
	return *task, nil
}

// dataCharts renders the dataset charts: distribution of the first numeric
// column, the correlation heatmap, a time series when a date column exists,
// and a bar chart of the strongest correlations.
func (o *Orchestrator) dataCharts(taskID string, table *tabular.Table, patterns tabular.Patterns) []string {
	var charts []string
	appendChart := func(url string, err error, kind string) {
		if err != nil {
			slog.Error("chart failed", "task_id", taskID, "kind", kind, "error", err)
			return
		}
		if url != "" {
			charts = append(charts, url)
		}
	}

	var firstNumeric *tabular.Column
	for i := range table.Columns {
		if table.Columns[i].Numeric() {
			firstNumeric = &table.Columns[i]
			break
		}
	}

	if firstNumeric != nil {
		url, err := o.charts.DistributionChart(taskID, firstNumeric.Values(), fmt.Sprintf("Distribution: %s", firstNumeric.Name))
		appendChart(url, err, "distribution")
	}

	if labels, matrix := tabular.CorrelationMatrix(table); len(labels) >= 2 {
		url, err := o.charts.CorrelationChart(taskID, labels, matrix, "Correlation Matrix")
		appendChart(url, err, "correlation")
	}

	if dateCol, times := table.DateColumn(); dateCol != nil && firstNumeric != nil {
		ts, vs := alignSeries(dateCol, times, firstNumeric)
		if len(ts) > 0 {
			url, err := o.charts.TimeSeriesChart(taskID, ts, vs, dateCol.Name, firstNumeric.Name,
				fmt.Sprintf("Trend: %s over time", firstNumeric.Name))
			appendChart(url, err, "timeseries")
		}
	}

	if len(patterns.Correlations) > 0 {
		top := patterns.Correlations
		if len(top) > 5 {
			top = top[:5]
		}
		labels := make([]string, len(top))
		values := make([]float64, len(top))
		for i, c := range top {
			labels[i] = fmt.Sprintf("%s-%s", c.Col1, c.Col2)
			values[i] = c.Correlation
		}
		url, err := o.charts.BarChart(taskID, labels, values, "Top Correlations")
		appendChart(url, err, "barchart")
	}

	return charts
}

// alignSeries pairs a date column's parsed times with a numeric column,
// keeping only rows where both values are present.
func alignSeries(dateCol *tabular.Column, times []time.Time, value *tabular.Column) ([]time.Time, []float64) {
	var ts []time.Time
	var vs []float64
	k := 0
	for row := range dateCol.Missing {
		if dateCol.Missing[row] {
			continue
		}
		t := times[k]
		k++
		if row >= len(value.Missing) || value.Missing[row] {
			continue
		}
		ts = append(ts, t)
		vs = append(vs, value.Floats[row])
	}
	return ts, vs
}

func dataReport(filename, instruction, statsText, analysis string, patterns tabular.Patterns, anomalies []tabular.Anomaly, charts []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `# Data Analysis Report: %s

## Analysis Request
%s

## Dataset Overview
%s

## Intelligent Analysis & Insights
%s

## Patterns & Trends Detected
`, filename, instruction, statsText, analysis)

	if len(patterns.Correlations) > 0 {
		b.WriteString("\n### Strong Correlations Found:\n")
		top := patterns.Correlations
		if len(top) > 5 {
			top = top[:5]
		}
		for _, c := range top {
			strength := "Moderate"
			switch {
			case math.Abs(c.Correlation) > 0.8:
				strength = "Very Strong"
			case math.Abs(c.Correlation) > 0.6:
				strength = "Strong"
			}
			direction := "Negative"
			if c.Correlation > 0 {
				direction = "Positive"
			}
			fmt.Fprintf(&b, "- **%s** ↔ **%s**: %s %s correlation (%.3f)\n", c.Col1, c.Col2, strength, direction, c.Correlation)
		}
	}

	if len(patterns.Trends) > 0 {
		b.WriteString("\n### Trends Identified:\n")
		trends := patterns.Trends
		if len(trends) > 5 {
			trends = trends[:5]
		}
		for _, tr := range trends {
			fmt.Fprintf(&b, "- **%s**: %s\n", tr.Column, tr.Trend)
		}
	}

	if len(anomalies) > 0 {
		b.WriteString("\n### Data Quality & Anomalies:\n")
		top := anomalies
		if len(top) > 5 {
			top = top[:5]
		}
		for _, a := range top {
			fmt.Fprintf(&b, "- **%s**: %d outliers detected (%.1f%% of data)\n", a.Column, a.Count, a.Percentage)
		}
	}

	fmt.Fprintf(&b, "\n## Visualizations Generated\n%d charts created for comprehensive analysis:\n", len(charts))
	for i, chart := range charts {
		name := strings.TrimSuffix(path.Base(chart), ".svg")
		name = strings.ReplaceAll(name, "_", " ")
		fmt.Fprintf(&b, "%d. %s\n", i+1, name)
	}
	return b.String()
}
