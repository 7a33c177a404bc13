// Package report writes the final task reports served under /reports/.
package report

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/ritik-gupta001/nexalyze/models"
)

// Generator renders markdown reports into a directory via afero.
type Generator struct {
	fs  afero.Fs
	dir string
	now func() time.Time
}

// NewGenerator builds a generator writing into dir.
func NewGenerator(fs afero.Fs, dir string) *Generator {
	return &Generator{fs: fs, dir: dir, now: time.Now}
}

// Generate writes the decorated report: title, generation timestamp, the
// body, and a visualization section when charts exist. If decoration fails
// it degrades to writing the raw body; only a failed write is an error.
func (g *Generator) Generate(taskID, title, content string, charts []string) (string, error) {
	decorated, err := g.decorate(title, content, charts)
	if err != nil {
		slog.Warn("report decoration failed, writing raw content", "task_id", taskID, "error", err)
		decorated = content
	}
	return g.write(taskID, decorated)
}

func (g *Generator) decorate(title, content string, charts []string) (string, error) {
	if title == "" {
		return "", fmt.Errorf("report title is empty")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "**Generated:** %s\n\n", g.now().Format("2006-01-02 15:04:05"))
	b.WriteString("---\n\n")
	b.WriteString(content)

	if len(charts) > 0 {
		b.WriteString("\n\n## Visualizations\n\n")
		for _, url := range charts {
			fmt.Fprintf(&b, "![%s](%s)\n\n", filepath.Base(url), url)
		}
	}
	return b.String(), nil
}

func (g *Generator) write(taskID, content string) (string, error) {
	if err := g.fs.MkdirAll(g.dir, 0o755); err != nil {
		return "", fmt.Errorf("create reports directory: %w", err)
	}
	filename := fmt.Sprintf("%s-report.md", taskID)
	path := filepath.Join(g.dir, filename)
	if err := afero.WriteFile(g.fs, path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	url := "/reports/" + filename
	slog.Info("report generated", "path", path, "url", url)
	return url, nil
}

// ExecutiveSummary renders the summary section with the analysis type in
// title case and one bullet per finding.
func ExecutiveSummary(taskType models.TaskType, entity string, findings []string) string {
	var b strings.Builder
	b.WriteString("## Executive Summary\n\n")
	fmt.Fprintf(&b, "**Analysis Type:** %s\n\n", titleCase(string(taskType)))
	if entity != "" {
		fmt.Fprintf(&b, "**Subject:** %s\n\n", entity)
	}
	b.WriteString("**Key Findings:**\n\n")
	for _, finding := range findings {
		fmt.Fprintf(&b, "- %s\n", finding)
	}
	b.WriteString("\n")
	return b.String()
}

// FormatSentimentSummary renders the sentiment block with one-decimal
// percentages.
func FormatSentimentSummary(s models.SentimentSummary) string {
	var b strings.Builder
	b.WriteString("## Sentiment Analysis\n\n")
	fmt.Fprintf(&b, "**Overall Sentiment:** %s\n\n", s.Overall)
	fmt.Fprintf(&b, "- Positive: %.1f%%\n", s.Positive*100)
	fmt.Fprintf(&b, "- Neutral: %.1f%%\n", s.Neutral*100)
	fmt.Fprintf(&b, "- Negative: %.1f%%\n", s.Negative*100)
	fmt.Fprintf(&b, "- Confidence: %.1f%%\n\n", s.Confidence*100)
	return b.String()
}

// titleCase uppercases the first letter of each underscore-separated word.
func titleCase(s string) string {
	words := strings.Split(strings.ReplaceAll(s, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
