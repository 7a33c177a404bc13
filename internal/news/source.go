// Package news provides article retrieval for the news-insight pipeline.
// The default source synthesizes demo articles; a live source backed by a
// NewsAPI-compatible endpoint can be swapped in via configuration.
package news

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Article is one retrieved news item.
type Article struct {
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	Source        string    `json:"source"`
	PublishedAt   time.Time `json:"published_at"`
	URL           string    `json:"url"`
	SentimentHint string    `json:"sentiment_hint,omitempty"`
}

// Source retrieves articles about an entity within a time range.
type Source interface {
	Search(ctx context.Context, entity, timeRange string, maxResults int) ([]Article, error)
}

var timeRangeDigits = regexp.MustCompile(`(\d+)`)

// ParseTimeRange extracts the day count from a range label like
// "last_7_days". Labels without a number ("today") default to 7.
func ParseTimeRange(timeRange string) int {
	if m := timeRangeDigits.FindString(timeRange); m != "" {
		if n, err := strconv.Atoi(m); err == nil {
			return n
		}
	}
	return 7
}

// FormatArticles renders articles as the numbered text block consumed by
// narrative analysis. Content is truncated to 300 bytes per article.
func FormatArticles(articles []Article) string {
	var b strings.Builder
	for i, a := range articles {
		fmt.Fprintf(&b, "Article %d:\n", i+1)
		fmt.Fprintf(&b, "Title: %s\n", a.Title)
		fmt.Fprintf(&b, "Source: %s\n", a.Source)
		fmt.Fprintf(&b, "Date: %s\n", a.PublishedAt.Format("2006-01-02"))
		content := a.Content
		if len(content) > 300 {
			content = content[:300]
		}
		fmt.Fprintf(&b, "Content: %s...\n", content)
		b.WriteString("\n")
	}
	return b.String()
}
