// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/shakeelsaga/sourcefolio/internal/httputil"
	"github.com/shakeelsaga/sourcefolio/pkg/types"
)

// newsAPIBase is the NewsAPI "everything" endpoint. Declared as a var so
// tests can substitute an httptest server.
var newsAPIBase = "https://newsapi.org/v2/everything"

// NewsAPI looks up recent articles. It requires an API key; without one the
// session skips the news phase entirely and never constructs this adapter.
type NewsAPI struct {
	Client    *http.Client
	UserAgent string
	APIKey    string

	// Limiter paces the pagination loop so multi-page fetches stay inside
	// the free-tier request budget. Nil disables pacing.
	Limiter *rate.Limiter
}

// NewNewsAPI returns an adapter with a one-request-per-second page limiter.
func NewNewsAPI(client *http.Client, userAgent, apiKey string) *NewsAPI {
	return &NewsAPI{
		Client:    client,
		UserAgent: userAgent,
		APIKey:    apiKey,
		Limiter:   rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

// Lookup returns articles matching term published within the last
// windowDays days, most recent first. It paginates until a page comes back
// short or maxPages is reached. Rate limits surface as
// httputil.ErrRateLimited; no results is an empty slice.
func (n *NewsAPI) Lookup(ctx context.Context, term string, pageSize, maxPages, windowDays int) ([]types.NewsArticle, error) {
	if pageSize <= 0 {
		pageSize = 20
	}
	if maxPages <= 0 {
		maxPages = 1
	}
	if windowDays <= 0 {
		windowDays = 7
	}

	now := time.Now()
	from := now.AddDate(0, 0, -windowDays).Format("2006-01-02")
	to := now.Format("2006-01-02")

	var articles []types.NewsArticle
	for page := 1; page <= maxPages; page++ {
		if n.Limiter != nil {
			if err := n.Limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		params := url.Values{
			"q":        {term},
			"from":     {from},
			"to":       {to},
			"sortBy":   {"publishedAt"},
			"language": {"en"},
			"pageSize": {fmt.Sprintf("%d", pageSize)},
			"page":     {fmt.Sprintf("%d", page)},
			"apiKey":   {n.APIKey},
		}

		var nr newsAPIResponse
		if err := httputil.GetJSON(ctx, n.Client, newsAPIBase+"?"+params.Encode(), n.UserAgent, &nr); err != nil {
			return nil, fmt.Errorf("newsapi request: %w", err)
		}
		if nr.Status != "ok" {
			return nil, fmt.Errorf("newsapi error %s: %s", nr.Code, nr.Message)
		}

		for _, a := range nr.Articles {
			art := types.NewsArticle{
				Title:       a.Title,
				Description: a.Description,
				URL:         a.URL,
				Source:      a.Source.Name,
				PublishedAt: a.PublishedAt,
			}
			if art.Title == "" {
				art.Title = "No title available"
			}
			if art.Description == "" {
				art.Description = "No description available"
			}
			if art.Source == "" {
				art.Source = "Unknown"
			}
			articles = append(articles, art)
		}

		// A short page means the provider has nothing further.
		if len(nr.Articles) < pageSize {
			break
		}
	}
	return articles, nil
}

// ValidateKey reports whether apiKey is accepted by the provider. A 429 also
// counts as valid: the key works, the quota is just exhausted.
func ValidateKey(ctx context.Context, client *http.Client, userAgent, apiKey string) bool {
	if apiKey == "" {
		return false
	}
	params := url.Values{"q": {"test"}, "pageSize": {"1"}, "apiKey": {apiKey}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, newsAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return false
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusTooManyRequests
}

// NewsAPI JSON structures.
type newsAPIResponse struct {
	Status       string           `json:"status"`
	Code         string           `json:"code"`
	Message      string           `json:"message"`
	TotalResults int              `json:"totalResults"`
	Articles     []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Source      newsAPISource `json:"source"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	URL         string        `json:"url"`
	PublishedAt string        `json:"publishedAt"`
}

type newsAPISource struct {
	Name string `json:"name"`
}
