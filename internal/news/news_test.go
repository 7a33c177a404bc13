package news

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeRange(t *testing.T) {
	assert.Equal(t, 7, ParseTimeRange("last_7_days"))
	assert.Equal(t, 3, ParseTimeRange("last_3_days"))
	assert.Equal(t, 30, ParseTimeRange("last_30_days"))
	assert.Equal(t, 7, ParseTimeRange("today"))
	assert.Equal(t, 7, ParseTimeRange(""))
}

func TestMockSourceDeterministicWithSeed(t *testing.T) {
	ctx := context.Background()

	a, err := NewSeededMockSource(42).Search(ctx, "Delhi", "last_7_days", 5)
	require.NoError(t, err)
	b, err := NewSeededMockSource(42).Search(ctx, "Delhi", "last_7_days", 5)
	require.NoError(t, err)

	require.Len(t, a, 5)
	for i := range a {
		assert.Equal(t, a[i].Title, b[i].Title)
		assert.Equal(t, a[i].Source, b[i].Source)
	}
}

func TestMockSourceEntityClasses(t *testing.T) {
	ctx := context.Background()
	src := NewSeededMockSource(1)

	city, err := src.Search(ctx, "Mumbai infrastructure", "last_7_days", 10)
	require.NoError(t, err)
	assert.Len(t, city, 10)
	for _, a := range city {
		// City templates interpolate only the first word of the entity.
		assert.Contains(t, a.Title+a.Content, "Mumbai")
		assert.NotContains(t, a.Title, "Mumbai infrastructure")
	}

	tech, err := src.Search(ctx, "AI startups", "last_7_days", 10)
	require.NoError(t, err)
	assert.Len(t, tech, 3) // tech pool has three templates

	fin, err := src.Search(ctx, "stock market outlook", "last_7_days", 2)
	require.NoError(t, err)
	assert.Len(t, fin, 2) // capped at maxResults

	gen, err := src.Search(ctx, "monsoon preparedness", "last_7_days", 10)
	require.NoError(t, err)
	assert.Len(t, gen, 3)
	assert.Contains(t, gen[0].Title+gen[1].Title+gen[2].Title, "monsoon preparedness")
}

func TestMockSourceArticleFields(t *testing.T) {
	src := NewSeededMockSource(7)
	articles, err := src.Search(context.Background(), "Delhi", "last_3_days", 4)
	require.NoError(t, err)
	require.Len(t, articles, 4)

	cutoff := time.Now().AddDate(0, 0, -4)
	for _, a := range articles {
		assert.NotEmpty(t, a.Title)
		assert.NotEmpty(t, a.Content)
		assert.NotEmpty(t, a.Source)
		assert.Contains(t, a.URL, "https://example.com/news-")
		assert.Equal(t, "neutral", a.SentimentHint)
		assert.True(t, a.PublishedAt.After(cutoff))
	}
}

func TestFormatArticles(t *testing.T) {
	articles := []Article{
		{
			Title:       "Metro opens",
			Source:      "City Desk",
			PublishedAt: time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC),
			Content:     strings.Repeat("x", 400),
		},
	}
	got := FormatArticles(articles)

	assert.Contains(t, got, "Article 1:\n")
	assert.Contains(t, got, "Title: Metro opens\n")
	assert.Contains(t, got, "Source: City Desk\n")
	assert.Contains(t, got, "Date: 2026-08-20\n")
	assert.Contains(t, got, "Content: "+strings.Repeat("x", 300)+"...\n")
	assert.NotContains(t, got, strings.Repeat("x", 301))
}

func TestLiveSourceSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/everything", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		assert.Equal(t, "Delhi", r.URL.Query().Get("q"))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": "ok",
			"articles": []map[string]any{
				{
					"title":       "Metro opens",
					"content":     strings.Repeat("body ", 80),
					"url":         "https://example.com/a",
					"publishedAt": "2026-08-20T10:00:00Z",
					"source":      map[string]string{"name": "City Desk"},
				},
			},
		})
	}))
	defer srv.Close()

	src := NewLiveSource("test-key", srv.URL)
	articles, err := src.Search(context.Background(), "Delhi", "last_7_days", 5)
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "Metro opens", articles[0].Title)
	assert.Equal(t, "City Desk", articles[0].Source)
}

func TestLiveSourceErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "error", "message": "apiKeyInvalid"})
	}))
	defer srv.Close()

	src := NewLiveSource("bad", srv.URL)
	_, err := src.Search(context.Background(), "Delhi", "last_7_days", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apiKeyInvalid")
}
