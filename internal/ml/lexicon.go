package ml

import "strings"

// Lexicon word sets for the dependency-free sentiment fallback. Kept as named
// constants so tests can assert membership directly.
var (
	// PositiveWords covers success/growth, quality/performance,
	// development/investment, and infrastructure vocabulary.
	PositiveWords = []string{
		// Success & Growth
		"success", "successful", "growth", "growing", "expansion", "increase", "rising", "gains",
		"profit", "revenue", "milestone", "achievement", "breakthrough", "innovation", "progress",
		"improvement", "advance", "boost", "surge", "soar", "record", "peak", "high",
		// Quality & Performance
		"excellent", "outstanding", "exceptional", "impressive", "strong", "robust", "solid",
		"good", "great", "positive", "optimistic", "confident", "favorable", "promising",
		"effective", "efficient", "productive", "valuable", "beneficial", "advantage",
		// Development & Investment
		"development", "investment", "funding", "capital", "initiative", "launch", "unveil",
		"opportunity", "potential", "prospects", "momentum", "confidence", "optimism",
		// Infrastructure & Quality of Life
		"modernization", "upgrade", "enhancement", "infrastructure", "facilities",
		"connectivity", "accessibility", "sustainable", "green", "clean", "eco-friendly",
	}

	// NegativeWords covers decline, risk, and crisis vocabulary.
	NegativeWords = []string{
		// Problems & Decline
		"decline", "decrease", "fall", "drop", "plunge", "crash", "collapse", "failure",
		"loss", "losses", "deficit", "debt", "crisis", "recession", "downturn", "slump",
		"weak", "poor", "disappointing", "missed", "below", "underperform",
		// Challenges & Issues
		"concern", "concerns", "worry", "worries", "risk", "risks", "threat", "challenge",
		"problem", "problems", "issue", "issues", "difficulty", "struggle", "setback",
		"delay", "postpone", "cancel", "suspend", "halt", "stop",
		// Negative conditions
		"pollution", "congestion", "corruption", "scandal", "controversy", "violation",
		"shortage", "scarcity", "emergency", "disaster", "damage",
		"bad", "terrible", "awful", "horrible", "worst", "negative", "criticism",
	}

	// NeutralModifiers covers hedging and attribution vocabulary.
	NeutralModifiers = []string{
		"mixed", "varied", "stable", "steady", "unchanged", "maintained", "continued",
		"moderate", "gradual", "cautious", "awaiting", "expected", "projected",
		"analysts", "experts", "officials", "sources", "reports", "according",
	}
)

// LexiconScore scores text with case-insensitive substring membership against
// the three word sets plus two contextual adjustments. It is deterministic:
// the same text always yields bit-identical output.
func LexiconScore(text string) SentimentResult {
	lower := strings.ToLower(text)

	posCount := countMatches(lower, PositiveWords)
	negCount := countMatches(lower, NegativeWords)
	neutralCount := countMatches(lower, NeutralModifiers)

	// Contrastive markers signal mixed sentiment.
	if strings.Contains(lower, "despite") || strings.Contains(lower, "however") || strings.Contains(lower, "but") {
		neutralCount += 2
	}
	if strings.Contains(lower, "record") && (strings.Contains(lower, "high") || strings.Contains(lower, "growth")) {
		posCount += 2
	}
	if strings.Contains(lower, "sharp correction") || strings.Contains(lower, "profit-taking") {
		negCount++
	}

	total := posCount + negCount + neutralCount
	if total < 1 {
		total = 1
	}

	posProb := float64(posCount) / float64(total)
	negProb := float64(negCount) / float64(total)
	neutralProb := float64(neutralCount) / float64(total)
	if neutralProb < 0.1 {
		neutralProb = 0.1 // floor so no text reads as purely polarized
	}

	sum := posProb + negProb + neutralProb
	if sum > 0 {
		posProb /= sum
		negProb /= sum
		neutralProb /= sum
	} else {
		posProb, negProb, neutralProb = 0.33, 0.33, 0.34
	}

	label, confidence := argmaxSentiment(posProb, negProb, neutralProb)
	return SentimentResult{
		Positive:   posProb,
		Negative:   negProb,
		Neutral:    neutralProb,
		Label:      label,
		Confidence: confidence,
	}
}

func countMatches(lower string, words []string) int {
	count := 0
	for _, w := range words {
		if strings.Contains(lower, w) {
			count++
		}
	}
	return count
}
