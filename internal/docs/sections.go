package docs

import "strings"

// Sections holds the common scholarly sections sliced out of a document.
// Missing sections stay empty; FullText is always the input.
type Sections struct {
	FullText     string `json:"full_text"`
	Abstract     string `json:"abstract"`
	Introduction string `json:"introduction"`
	Methodology  string `json:"methodology"`
	Results      string `json:"results"`
	Conclusion   string `json:"conclusion"`
}

// ExtractSections slices sections by anchor keywords. Each section runs from
// its anchor to the next expected anchor, or to a fixed cap (500 bytes for
// the abstract, 1000 otherwise) when the next anchor is absent.
func ExtractSections(text string) Sections {
	s := Sections{FullText: text}
	lower := strings.ToLower(text)

	s.Abstract = sliceSection(text, lower, "abstract", "introduction", 500)
	s.Introduction = sliceSection(text, lower, "introduction", "method", 1000)
	s.Methodology = sliceSection(text, lower, "method", "result", 1000)
	s.Results = sliceSection(text, lower, "result", "conclusion", 1000)
	s.Conclusion = sliceSection(text, lower, "conclusion", "", 1000)
	return s
}

func sliceSection(text, lower, anchor, next string, maxLen int) string {
	start := strings.Index(lower, anchor)
	if start < 0 {
		return ""
	}
	end := -1
	if next != "" {
		if rel := strings.Index(lower[start:], next); rel >= 0 {
			end = start + rel
		}
	}
	if end < 0 {
		end = start + maxLen
	}
	if end > len(text) {
		end = len(text)
	}
	return strings.TrimSpace(text[start:end])
}
