package report

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ritik-gupta001/nexalyze/models"
)

func newTestGenerator() (*Generator, afero.Fs) {
	fs := afero.NewMemMapFs()
	g := NewGenerator(fs, "reports")
	g.now = func() time.Time {
		return time.Date(2026, 8, 30, 10, 30, 0, 0, time.UTC)
	}
	return g, fs
}

func TestGenerateDecoratedReport(t *testing.T) {
	g, fs := newTestGenerator()

	url, err := g.Generate("T-20260830-abcd1234", "Analysis Report: Delhi", "body text", []string{"/charts/T-1-sentiment.svg"})
	require.NoError(t, err)
	assert.Equal(t, "/reports/T-20260830-abcd1234-report.md", url)

	data, err := afero.ReadFile(fs, "reports/T-20260830-abcd1234-report.md")
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "# Analysis Report: Delhi\n")
	assert.Contains(t, content, "**Generated:** 2026-08-30 10:30:00\n")
	assert.Contains(t, content, "---\n\nbody text")
	assert.Contains(t, content, "## Visualizations")
	assert.Contains(t, content, "![T-1-sentiment.svg](/charts/T-1-sentiment.svg)")
}

func TestGenerateDegradesToRawContent(t *testing.T) {
	g, fs := newTestGenerator()

	// Empty title fails decoration; the raw body is still written.
	url, err := g.Generate("T-1", "", "raw body", nil)
	require.NoError(t, err)
	assert.Equal(t, "/reports/T-1-report.md", url)

	data, err := afero.ReadFile(fs, "reports/T-1-report.md")
	require.NoError(t, err)
	assert.Equal(t, "raw body", string(data))
}

func TestGenerateWriteFailure(t *testing.T) {
	g := NewGenerator(afero.NewReadOnlyFs(afero.NewMemMapFs()), "reports")
	_, err := g.Generate("T-1", "title", "body", nil)
	assert.Error(t, err)
}

func TestExecutiveSummary(t *testing.T) {
	got := ExecutiveSummary(models.TypeNewsInsight, "Delhi", []string{"finding one", "finding two"})

	assert.Contains(t, got, "## Executive Summary\n")
	assert.Contains(t, got, "**Analysis Type:** News Insight\n")
	assert.Contains(t, got, "**Subject:** Delhi\n")
	assert.Contains(t, got, "- finding one\n- finding two\n")

	noEntity := ExecutiveSummary(models.TypeDataAnalysis, "", nil)
	assert.NotContains(t, noEntity, "**Subject:**")
	assert.Contains(t, noEntity, "**Analysis Type:** Data Analysis\n")
}

func TestFormatSentimentSummary(t *testing.T) {
	got := FormatSentimentSummary(models.SentimentSummary{
		Positive:   0.612,
		Neutral:    0.25,
		Negative:   0.138,
		Overall:    "positive",
		Confidence: 0.612,
	})

	assert.Contains(t, got, "**Overall Sentiment:** positive\n")
	assert.Contains(t, got, "- Positive: 61.2%\n")
	assert.Contains(t, got, "- Neutral: 25.0%\n")
	assert.Contains(t, got, "- Negative: 13.8%\n")
	assert.Contains(t, got, "- Confidence: 61.2%\n")
}
