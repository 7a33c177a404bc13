package news

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"
)

const liveContentLimit = 4000

// LiveSource queries a NewsAPI-compatible endpoint and enriches thin results
// by scraping article pages with readability extraction.
type LiveSource struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewLiveSource builds a source against baseURL (a NewsAPI v2 "everything"
// style endpoint). The API key is sent as the X-Api-Key header.
func NewLiveSource(apiKey, baseURL string) *LiveSource {
	return &LiveSource{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type apiResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Articles []struct {
		Title       string    `json:"title"`
		Description string    `json:"description"`
		Content     string    `json:"content"`
		URL         string    `json:"url"`
		PublishedAt time.Time `json:"publishedAt"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

// Search queries the endpoint for entity articles published within the time
// range. Scrape failures degrade to the API-provided snippet.
func (s *LiveSource) Search(ctx context.Context, entity, timeRange string, maxResults int) ([]Article, error) {
	days := ParseTimeRange(timeRange)
	from := time.Now().AddDate(0, 0, -days).Format("2006-01-02")

	q := url.Values{}
	q.Set("q", entity)
	q.Set("from", from)
	q.Set("sortBy", "publishedAt")
	q.Set("pageSize", fmt.Sprintf("%d", maxResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/everything?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create news request: %w", err)
	}
	req.Header.Set("X-Api-Key", s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query news endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news endpoint returned status %d", resp.StatusCode)
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode news response: %w", err)
	}
	if payload.Status != "ok" {
		return nil, fmt.Errorf("news endpoint error: %s", payload.Message)
	}

	articles := make([]Article, 0, len(payload.Articles))
	for _, a := range payload.Articles {
		content := a.Content
		if content == "" {
			content = a.Description
		}
		if len(content) < 300 && a.URL != "" {
			if full, err := s.scrape(ctx, a.URL); err == nil && len(full) > len(content) {
				content = full
			} else if err != nil {
				slog.Debug("article scrape failed", "url", a.URL, "error", err)
			}
		}
		articles = append(articles, Article{
			Title:       a.Title,
			Content:     content,
			Source:      a.Source.Name,
			PublishedAt: a.PublishedAt,
			URL:         a.URL,
		})
		if len(articles) >= maxResults {
			break
		}
	}
	return articles, nil
}

func (s *LiveSource) scrape(ctx context.Context, rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("invalid article URL: %s", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create scrape request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; nexalyze/1.0)")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch article: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	page, err := readability.FromReader(resp.Body, parsed)
	if err != nil {
		return "", fmt.Errorf("extract article content: %w", err)
	}

	content := strings.TrimSpace(page.TextContent)
	if len(content) > liveContentLimit {
		content = content[:liveContentLimit]
	}
	return content, nil
}
