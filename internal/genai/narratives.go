package genai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// AnalyzeNews produces a narrative analysis of formatted articles about an
// entity. With no model it composes a templated narrative keyed on the entity
// class (city, technology, finance, or general).
func (c *Completer) AnalyzeNews(ctx context.Context, entity, articles, intent, focus string) string {
	if intent == "" {
		intent = fmt.Sprintf("Analyze news about %s", entity)
	}
	if c.Enabled() {
		prompt := fmt.Sprintf(newsAnalysisPrompt, entity, intent, focus, clip(articles, 3000), focusInstructions(focus))
		analysis, err := c.generate(ctx, "You are an expert news analyst who provides insightful, context-aware analysis tailored to user needs.", prompt)
		if err == nil {
			return analysis
		}
		slog.Error("news analysis failed", "error", err)
	}
	return fallbackNewsAnalysis(entity, articles)
}

// fallbackNewsAnalysis is the model-free narrative. Article titles are pulled
// from "Title:" lines of the formatted article block; at most five appear.
func fallbackNewsAnalysis(entity, articles string) string {
	lower := strings.ToLower(entity)

	isCity := containsAny(lower, "delhi", "mumbai", "bangalore", "chennai", "kolkata", "hyderabad", "pune")
	isTech := containsAny(lower, "ai", "artificial intelligence", "tech", "technology", "startup")
	isFinance := containsAny(lower, "stock", "market", "finance", "investment")

	var titles []string
	for _, line := range strings.Split(articles, "\n") {
		if strings.HasPrefix(line, "Title:") {
			titles = append(titles, strings.TrimSpace(strings.TrimPrefix(line, "Title:")))
		}
	}
	if len(titles) > 5 {
		titles = titles[:5]
	}

	var b strings.Builder
	switch {
	case isCity:
		fmt.Fprintf(&b, `**Executive Summary of Key Developments in %s Regarding Recent News**

%s, traditionally known for its rich history and vibrant culture, is making headlines for its strategic moves towards addressing climate change and enhancing the city's infrastructure and quality of life. Based on recent developments:

### Key Highlights:

`, entity, entity)
		for i, title := range titles {
			fmt.Fprintf(&b, "%d. **%s**: This development represents significant progress in the city's ongoing transformation and modernization efforts.\n\n", i+1, title)
		}
		fmt.Fprintf(&b, `
### Infrastructure & Development:
The initiatives showcase %s's commitment to sustainable urban development, improved public transportation, and addressing environmental concerns. These strategic investments are expected to enhance quality of life for residents while positioning the city for future growth.

### Impact Assessment:
- **Short-term**: Implementation of new policies and projects will create jobs and improve civic amenities
- **Long-term**: Enhanced infrastructure and cleaner environment will attract investment and talent
- **Challenges**: Execution timelines and budget management remain critical factors
`, entity)

	case isTech:
		fmt.Fprintf(&b, `**Technology Sector Analysis: %s**

The %s landscape is experiencing rapid evolution with significant developments across innovation, investment, and regulation.

### Major Developments:

`, entity, entity)
		for i, title := range titles {
			fmt.Fprintf(&b, "%d. **%s**\n\n", i+1, title)
		}
		b.WriteString(`
### Industry Trends:
- **Innovation**: Breakthrough advancements pushing technological boundaries
- **Investment**: Strong capital inflows indicating market confidence
- **Regulation**: Increasing scrutiny requiring balanced policy frameworks
- **Adoption**: Growing enterprise and consumer adoption driving scale

### Strategic Implications:
The sector faces both opportunities and challenges. While innovation accelerates, regulatory frameworks and ethical considerations require careful navigation. Organizations must balance rapid advancement with responsible development.
`)

	case isFinance:
		fmt.Fprintf(&b, `**Market Analysis: %s**

Recent market activity surrounding %s shows dynamic movements across multiple indicators.

### Key Market Events:

`, entity, entity)
		for i, title := range titles {
			fmt.Fprintf(&b, "%d. **%s**\n\n", i+1, title)
		}
		b.WriteString(`
### Market Dynamics:
- **Performance Metrics**: Strong indicators across key business segments
- **Analyst Outlook**: Mixed perspectives reflecting both opportunities and risks
- **Competitive Position**: Strategic initiatives enhancing market positioning
- **Risk Factors**: Macroeconomic conditions and sector-specific challenges warrant monitoring

### Investment Perspective:
While fundamentals appear solid, investors should consider both growth potential and associated risks. Diversification and thorough due diligence remain essential.
`)

	default:
		fmt.Fprintf(&b, `**Comprehensive Analysis: %s**

Recent developments surrounding %s present a complex landscape of opportunities and challenges.

### Recent Developments:

`, entity, entity)
		for i, title := range titles {
			fmt.Fprintf(&b, "%d. **%s**\n\n", i+1, title)
		}
		b.WriteString(`
### Strategic Assessment:
The situation requires careful monitoring as multiple factors influence outcomes. Key stakeholders should focus on:

- **Strategic Planning**: Adapting to evolving circumstances
- **Risk Management**: Identifying and mitigating potential challenges
- **Opportunity Capture**: Leveraging favorable conditions for growth
- **Stakeholder Engagement**: Maintaining clear communication and alignment

### Forward Outlook:
While the path forward contains uncertainties, proactive management and strategic execution will be critical for positive outcomes.
`)
	}
	return b.String()
}

// AnalyzeDocument produces insights for an extracted document. The fallback
// is a bare excerpt of the first 500 bytes.
func (c *Completer) AnalyzeDocument(ctx context.Context, filename, content, instruction string) string {
	if c.Enabled() {
		prompt := fmt.Sprintf(documentInsightPrompt, filename, clip(content, 4000), instruction)
		analysis, err := c.generate(ctx, "You are a document analysis expert.", prompt)
		if err == nil {
			return analysis
		}
		slog.Error("document analysis failed", "error", err)
	}
	return fmt.Sprintf("Document analysis: %s...", clip(content, 500))
}

// AnalyzeData produces insights over dataset statistics and a sample. The
// fallback echoes both back.
func (c *Completer) AnalyzeData(ctx context.Context, filename, stats, sample, instruction string) string {
	if c.Enabled() {
		prompt := fmt.Sprintf(dataInsightPrompt, filename, stats, sample, instruction)
		analysis, err := c.generate(ctx, "You are a data scientist.", prompt)
		if err == nil {
			return analysis
		}
		slog.Error("data analysis failed", "error", err)
	}
	return fmt.Sprintf("Data analysis: %s\n%s", stats, sample)
}

// Summarize condenses content to at most maxLength characters. The fallback
// is truncation with an ellipsis.
func (c *Completer) Summarize(ctx context.Context, content string, maxLength int) string {
	if c.Enabled() {
		prompt := fmt.Sprintf(summarizationPrompt, clip(content, 4000))
		summary, err := c.generate(ctx, "You are a professional summarizer.", prompt)
		if err == nil {
			return summary
		}
		slog.Error("summarization failed", "error", err)
	}
	if len(content) > maxLength {
		return clip(content, maxLength) + "..."
	}
	return content
}

// ComposeReport writes the final report body. analysisType selects the
// focus-specific section heading; the fallback is a fixed template.
func (c *Completer) ComposeReport(ctx context.Context, taskDescription, dataSummary, sentimentData, forecastData, analysisType string) string {
	if c.Enabled() {
		sentiment := sentimentData
		if sentiment == "" {
			sentiment = "N/A"
		}
		forecast := forecastData
		if forecast == "" {
			forecast = "N/A"
		}
		prompt := fmt.Sprintf(reportGenerationPrompt, taskDescription, analysisType, dataSummary, sentiment, forecast, sectionNameForFocus(analysisType))
		report, err := c.generate(ctx, "You are a professional research analyst who creates insightful, actionable reports.", prompt)
		if err == nil {
			slog.Info("report composed", "focus", analysisType)
			return report
		}
		slog.Error("report composition failed", "error", err)
	}
	return fallbackReport(taskDescription, dataSummary, sentimentData, forecastData)
}

func fallbackReport(task, summary, sentiment, forecast string) string {
	if sentiment == "" {
		sentiment = "Not available"
	}
	if forecast == "" {
		forecast = "Not available"
	}
	return fmt.Sprintf(`# Research Report

## Task
%s

## Summary
%s

## Sentiment Analysis
%s

## Predictions
%s

## Conclusion
Analysis completed successfully. See above for detailed findings.
`, task, summary, sentiment, forecast)
}
