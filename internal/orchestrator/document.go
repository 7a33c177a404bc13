package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ritik-gupta001/nexalyze/internal/docs"
	"github.com/ritik-gupta001/nexalyze/models"
)

// DefaultDocInstruction is used when an upload has no instruction.
const DefaultDocInstruction = "Analyze and extract key insights from this document"

// ExecuteDocumentAnalysis runs the document pipeline: extract text, slice
// sections, analyze and summarize, and render the report. Unsupported file
// extensions are rejected before any task record exists. Documents carry no
// sentiment.
func (o *Orchestrator) ExecuteDocumentAnalysis(ctx context.Context, taskID string, content []byte, filename, instruction string) (models.Task, error) {
	if !o.docs.Supported(filename) {
		return models.Task{}, fmt.Errorf("%w: file type not supported, allowed: %v", models.ErrUnsupportedInput, o.docs.Extensions())
	}
	if instruction == "" {
		instruction = DefaultDocInstruction
	}

	task := models.NewTask(taskID, models.TypeDocumentAnalysis)
	task.Instruction = instruction
	if err := o.store.Create(*task); err != nil {
		return *task, fmt.Errorf("create task record: %w", err)
	}

	slog.Info("starting document analysis", "task_id", taskID, "filename", filename)

	text, err := o.docs.Extract(content, filename)
	if err != nil {
		return *task, o.fail(task, err)
	}

	sections := docs.ExtractSections(text)

	analysis := o.completer.AnalyzeDocument(ctx, filename, clipText(text, 4000), instruction)
	summary := o.completer.Summarize(ctx, clipText(text, 3000), 300)

	wordCount := len(strings.Fields(text))
	reportBody := documentReport(filename, instruction, summary, analysis, text, sections)

	reportURL, err := o.reports.Generate(taskID, fmt.Sprintf("Document Analysis: %s", filename), reportBody, nil)
	if err != nil {
		return *task, o.fail(task, fmt.Errorf("generate report: %w", err))
	}

	task.Summary = analysis
	task.ReportURL = reportURL
	task.Metadata = map[string]any{
		"filename":    filename,
		"text_length": len(text),
		"word_count":  wordCount,
	}
	if err := o.complete(task); err != nil {
		return *task, err
	}

	slog.Info("document analysis completed", "task_id", taskID)
	return *task, nil
}

func documentReport(filename, instruction, summary, analysis, text string, sections docs.Sections) string {
	var b strings.Builder
	fmt.Fprintf(&b, `# Document Analysis: %s

## Instruction
%s

## Summary
%s

## Detailed Analysis
%s

## Document Statistics
- Total Length: %s characters
- Estimated Words: %s
- Estimated Pages: %d
`, filename, instruction, summary, analysis, comma(len(text)), comma(len(strings.Fields(text))), len(text)/3000)

	b.WriteString("\n## Document Structure\n")
	for _, s := range []struct {
		name    string
		content string
	}{
		{"full_text", sections.FullText},
		{"abstract", sections.Abstract},
		{"introduction", sections.Introduction},
		{"methodology", sections.Methodology},
		{"results", sections.Results},
		{"conclusion", sections.Conclusion},
	} {
		fmt.Fprintf(&b, "\n### %s\n%s...\n", s.name, clipText(s.content, 200))
	}
	return b.String()
}
