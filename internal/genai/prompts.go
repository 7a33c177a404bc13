package genai

// Prompt templates for interpretation, summarization, and report composition.
// All placeholders are fmt verbs filled positionally by the callers.

const taskInterpreterPrompt = `You are an intelligent task interpreter for an AI research agent.

Given a user's natural language query, extract and structure the task into a JSON format.

User Query: %s

Analyze the query carefully to understand:
- What the user wants to know (the intent)
- What topic/entity they're asking about
- What timeframe they're interested in
- What type of analysis they need

Output ONLY a valid JSON object:
{
    "task_type": "news_insight" | "document_analysis" | "data_analysis" | "general_research",
    "entity": "Main entity/company/topic being asked about",
    "user_intent": "What the user wants to learn or achieve",
    "analysis_focus": "highlights" | "sentiment" | "trends" | "comprehensive" | "summary",
    "actions": ["action1", "action2", ...],
    "time_range": "today" | "last_3_days" | "last_7_days" | "last_30_days",
    "parameters": {
        "any_additional_params": "value"
    }
}

Examples:
- "today's big news highlights" -> analysis_focus: "highlights", time_range: "today"
- "sentiment on Tesla stock" -> analysis_focus: "sentiment", entity: "Tesla"
- "AI industry trends" -> analysis_focus: "trends", entity: "AI industry"

Output ONLY the JSON, no explanation.`

const summarizationPrompt = `Summarize the following content concisely and professionally:

Content:
%s

Provide a clear, structured summary highlighting:
1. Main points
2. Key insights
3. Important details

Summary:`

const reportGenerationPrompt = `You are a professional research analyst. Generate a comprehensive, intelligent report.

User's Request: %s
Analysis Type: %s

Data Summary:
%s

Sentiment Analysis:
%s

Predictions/Trends:
%s

Generate a well-structured report that:
1. Directly addresses what the user asked for
2. Provides actionable insights, not generic observations
3. Highlights unique findings and patterns
4. Offers specific recommendations based on data
5. Uses clear, professional language

Structure:
# Executive Summary
(2-3 key takeaways that directly answer the user's question)

# Key Findings
(Specific, data-driven insights)

# Detailed Analysis
(In-depth analysis with context)

# %s
(Sentiment/Trends/Predictions as applicable)

# Recommendations
(Actionable next steps)

Use markdown formatting. Be insightful, not generic.

Report:`

const newsAnalysisPrompt = `You are an intelligent news analyst. Analyze the following news.

Topic: %s
User's Request: %s
Analysis Type: %s

IMPORTANT CONTEXT:
- If the topic is a CITY/LOCATION (like Delhi, Mumbai, Bangalore, etc.), analyze it as LOCAL/REGIONAL NEWS about that place
- If the topic is a COMPANY/STOCK, analyze it as BUSINESS/MARKET NEWS about that entity
- If the topic is TECHNOLOGY/AI/INDUSTRY, analyze it as SECTOR/INDUSTRY NEWS

News Articles:
%s

Provide analysis that DIRECTLY addresses what the user asked for:

%s

Be specific and relevant. Avoid generic business jargon when analyzing city news.
For city/location news, focus on: infrastructure, quality of life, development, local issues, civic matters.
For company news, focus on: market performance, strategy, financials, competitive position.

Analysis:`

const documentInsightPrompt = `Analyze the following document extract:

Document: %s
Content:
%s

Task: %s

Provide detailed insights following the instruction. Be thorough and structure your response clearly.

Analysis:`

const dataInsightPrompt = `Analyze the following dataset:

Dataset: %s
Summary Statistics:
%s

Sample Data:
%s

Task: %s

Provide:
1. Data overview
2. Key patterns identified
3. Anomalies or outliers
4. Correlations
5. Recommendations
6. Actionable insights

Analysis:`

// focusInstructions returns the analysis-focus block embedded in the news
// prompt. Unknown focus values get the comprehensive block.
func focusInstructions(focus string) string {
	switch focus {
	case "highlights":
		return `Focus on:
- Top 3-5 most important news items
- Breaking developments or major announcements
- Brief, impactful summaries of each highlight
- Why each item matters`
	case "sentiment":
		return `Focus on:
- Overall market/public sentiment (positive/negative/neutral)
- Sentiment drivers and catalysts
- Changes in sentiment over time
- What's driving positive or negative perception`
	case "trends":
		return `Focus on:
- Emerging patterns and trends
- Directional momentum
- Comparison to historical patterns
- Future trajectory predictions`
	default:
		return `Provide:
- Executive summary of key developments
- Sentiment overview
- Emerging trends and patterns
- Notable events and their implications
- Forward-looking insights`
	}
}

// sectionNameForFocus maps an analysis focus to the report section heading it
// produces.
func sectionNameForFocus(focus string) string {
	switch focus {
	case "highlights":
		return "Key Highlights"
	case "sentiment":
		return "Sentiment Deep Dive"
	case "trends":
		return "Trend Analysis"
	case "comprehensive":
		return "Sentiment & Predictions"
	default:
		return "Additional Insights"
	}
}
