// Package ml implements the statistical engines behind the analysis
// pipelines: sentiment scoring with a lexicon fallback, linear trend
// forecasting with a flat-line fallback, and z-score anomaly detection.
package ml

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/spf13/afero"
)

// SentimentResult is a probability distribution over the three sentiment
// classes for one text. Positive+Neutral+Negative sums to 1; Label is the
// argmax and Confidence the winning probability.
type SentimentResult struct {
	Positive   float64 `json:"positive"`
	Neutral    float64 `json:"neutral"`
	Negative   float64 `json:"negative"`
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// ErrNoVocabulary is returned by the classifier when a text shares no tokens
// with the training corpus; there is no statistical basis for a posterior and
// the caller falls back to lexicon scoring.
var ErrNoVocabulary = errors.New("text shares no vocabulary with training corpus")

// demonstration corpus the classifier is fit on at first startup. Not a real
// training set; fitting it at call time is part of the fallback contract.
var (
	demoTexts = []string{
		"excellent great amazing wonderful fantastic",
		"terrible awful horrible bad worst",
		"good nice positive happy satisfied",
		"poor negative disappointed unhappy",
		"okay average neutral fine normal",
	}
	demoLabels = []int{2, 0, 2, 0, 1} // 0=negative, 1=neutral, 2=positive
)

var classLabels = [3]string{"negative", "neutral", "positive"}

// SentimentEngine wraps a trainable classifier and delegates to the lexicon
// fallback on any prediction-time error. The underlying model is shared, so
// predictions are serialized behind a mutex.
type SentimentEngine struct {
	mu    sync.Mutex
	model *bayesModel
	fs    afero.Fs
	path  string
}

// NewSentimentEngine loads the persisted model from path, or trains a fresh
// one on the demonstration corpus and persists it when the file is missing or
// unreadable. An engine may be constructed per test for isolation.
func NewSentimentEngine(fs afero.Fs, path string) (*SentimentEngine, error) {
	model, err := loadOrCreateModel(fs, path)
	if err != nil {
		return nil, fmt.Errorf("load or create sentiment model: %w", err)
	}
	return &SentimentEngine{model: model, fs: fs, path: path}, nil
}

// Predict scores one text. It never fails outward: classifier errors are
// recovered via lexicon scoring.
func (e *SentimentEngine) Predict(text string) SentimentResult {
	e.mu.Lock()
	result, err := e.model.predict(text)
	e.mu.Unlock()
	if err != nil {
		return LexiconScore(text)
	}
	return result
}

// BatchPredict scores texts independently, preserving order.
func (e *SentimentEngine) BatchPredict(texts []string) []SentimentResult {
	results := make([]SentimentResult, len(texts))
	for i, t := range texts {
		results[i] = e.Predict(t)
	}
	return results
}

// Aggregate averages per-text results component-wise and re-derives the label
// and confidence from the averaged vector (not by majority vote). An empty
// input yields the neutral default distribution.
func Aggregate(results []SentimentResult) SentimentResult {
	if len(results) == 0 {
		return SentimentResult{Positive: 0.33, Neutral: 0.34, Negative: 0.33, Label: "neutral", Confidence: 0.34}
	}
	var agg SentimentResult
	for _, r := range results {
		agg.Positive += r.Positive
		agg.Neutral += r.Neutral
		agg.Negative += r.Negative
	}
	n := float64(len(results))
	agg.Positive /= n
	agg.Neutral /= n
	agg.Negative /= n
	agg.Label, agg.Confidence = argmaxSentiment(agg.Positive, agg.Negative, agg.Neutral)
	return agg
}

// argmaxSentiment resolves ties with priority positive > negative > neutral.
func argmaxSentiment(pos, neg, neu float64) (string, float64) {
	max := math.Max(pos, math.Max(neg, neu))
	switch {
	case pos == max:
		return "positive", pos
	case neg == max:
		return "negative", neg
	default:
		return "neutral", neu
	}
}

// bayesModel is a multinomial naive Bayes classifier over unigrams and
// bigrams with Laplace smoothing.
type bayesModel struct {
	Version     int                `json:"version"`
	ClassDocs   [3]int             `json:"class_docs"`
	ClassTotals [3]float64         `json:"class_totals"`
	TokenCounts [3]map[string]int  `json:"token_counts"`
	Vocabulary  map[string]struct{} `json:"-"`
}

const modelVersion = 1

func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
	tokens := make([]string, 0, len(fields)*2)
	tokens = append(tokens, fields...)
	for i := 0; i+1 < len(fields); i++ {
		tokens = append(tokens, fields[i]+" "+fields[i+1])
	}
	return tokens
}

func trainModel() *bayesModel {
	m := &bayesModel{Version: modelVersion}
	for c := range m.TokenCounts {
		m.TokenCounts[c] = make(map[string]int)
	}
	m.Vocabulary = make(map[string]struct{})
	for i, text := range demoTexts {
		c := demoLabels[i]
		m.ClassDocs[c]++
		for _, tok := range tokenize(text) {
			m.TokenCounts[c][tok]++
			m.ClassTotals[c]++
			m.Vocabulary[tok] = struct{}{}
		}
	}
	return m
}

func (m *bayesModel) rebuildVocabulary() {
	m.Vocabulary = make(map[string]struct{})
	for c := range m.TokenCounts {
		for tok := range m.TokenCounts[c] {
			m.Vocabulary[tok] = struct{}{}
		}
	}
}

func (m *bayesModel) valid() bool {
	if m.Version != modelVersion {
		return false
	}
	total := 0
	for _, d := range m.ClassDocs {
		total += d
	}
	return total > 0 && len(m.Vocabulary) > 0
}

// predict computes class posteriors over the tokens the model knows.
func (m *bayesModel) predict(text string) (SentimentResult, error) {
	known := make([]string, 0, 8)
	for _, tok := range tokenize(text) {
		if _, ok := m.Vocabulary[tok]; ok {
			known = append(known, tok)
		}
	}
	if len(known) == 0 {
		return SentimentResult{}, ErrNoVocabulary
	}

	totalDocs := float64(m.ClassDocs[0] + m.ClassDocs[1] + m.ClassDocs[2])
	vocabSize := float64(len(m.Vocabulary))

	var logProbs [3]float64
	for c := 0; c < 3; c++ {
		logProbs[c] = math.Log(float64(m.ClassDocs[c]) / totalDocs)
		for _, tok := range known {
			count := float64(m.TokenCounts[c][tok])
			logProbs[c] += math.Log((count + 1) / (m.ClassTotals[c] + vocabSize))
		}
	}

	// Softmax over log posteriors.
	maxLog := math.Max(logProbs[0], math.Max(logProbs[1], logProbs[2]))
	var sum float64
	var probs [3]float64
	for c := 0; c < 3; c++ {
		probs[c] = math.Exp(logProbs[c] - maxLog)
		sum += probs[c]
	}
	for c := 0; c < 3; c++ {
		probs[c] /= sum
	}

	label, confidence := argmaxSentiment(probs[2], probs[0], probs[1])
	return SentimentResult{
		Negative:   probs[0],
		Neutral:    probs[1],
		Positive:   probs[2],
		Label:      label,
		Confidence: confidence,
	}, nil
}
