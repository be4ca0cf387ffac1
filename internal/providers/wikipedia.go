// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/shakeelsaga/sourcefolio/internal/httputil"
	"github.com/shakeelsaga/sourcefolio/pkg/types"
)

// wikipediaAPIBase is the MediaWiki action API endpoint. Declared as a var
// so tests can substitute an httptest server.
var wikipediaAPIBase = "https://en.wikipedia.org/w/api.php"

// candidateLimit bounds the number of disambiguation candidates requested.
const candidateLimit = 50

// Wikipedia looks up encyclopedia articles through the MediaWiki API.
type Wikipedia struct {
	Client    *http.Client
	UserAgent string
}

// keywordRe strips characters that confuse MediaWiki title lookup. Keeps
// parentheses so disambiguated titles like "Mercury (planet)" pass through.
var keywordRe = regexp.MustCompile(`[^a-zA-Z0-9\s()+-]`)

// CleanKeyword normalizes a term for title lookup.
func CleanKeyword(term string) string {
	return strings.TrimSpace(keywordRe.ReplaceAllString(term, ""))
}

// Lookup fetches the article for term. At DetailSummary only the lead
// section is returned; at DetailFull the whole plain-text extract.
//
// A missing page returns ErrNotFound. A disambiguation page returns
// *AmbiguousError carrying the linked candidate titles. A page that exists
// but has no prose returns an article with an empty Body; the caller treats
// that the same as any other empty result.
func (w *Wikipedia) Lookup(ctx context.Context, term string, detail types.DetailLevel) (*types.WikiArticle, error) {
	term = CleanKeyword(term)
	if term == "" {
		return nil, ErrNotFound
	}

	params := url.Values{
		"action":        {"query"},
		"format":        {"json"},
		"formatversion": {"2"},
		"redirects":     {"1"},
		"prop":          {"extracts|info|pageprops"},
		"inprop":        {"url"},
		"ppprop":        {"disambiguation"},
		"explaintext":   {"1"},
		"titles":        {term},
	}
	if detail != types.DetailFull {
		params.Set("exintro", "1")
	}

	var qr wikiQueryResponse
	if err := httputil.GetJSON(ctx, w.Client, wikipediaAPIBase+"?"+params.Encode(), w.UserAgent, &qr); err != nil {
		return nil, fmt.Errorf("wikipedia query: %w", err)
	}
	if qr.Error != nil {
		return nil, fmt.Errorf("wikipedia API error: %s", qr.Error.Info)
	}
	if len(qr.Query.Pages) == 0 {
		return nil, ErrNotFound
	}

	page := qr.Query.Pages[0]
	if page.Missing || page.Invalid {
		return nil, ErrNotFound
	}
	if page.PageProps != nil && page.PageProps.Disambiguation != nil {
		candidates, err := w.disambiguationCandidates(ctx, page.Title)
		if err != nil {
			return nil, err
		}
		return nil, &AmbiguousError{Term: term, Candidates: candidates}
	}

	return &types.WikiArticle{
		Title: page.Title,
		Body:  strings.TrimSpace(page.Extract),
		URL:   page.FullURL,
	}, nil
}

// disambiguationCandidates lists the main-namespace links of a
// disambiguation page, which are the plausible intended titles.
func (w *Wikipedia) disambiguationCandidates(ctx context.Context, title string) ([]string, error) {
	params := url.Values{
		"action":        {"query"},
		"format":        {"json"},
		"formatversion": {"2"},
		"prop":          {"links"},
		"plnamespace":   {"0"},
		"pllimit":       {fmt.Sprintf("%d", candidateLimit)},
		"titles":        {title},
	}

	var qr wikiQueryResponse
	if err := httputil.GetJSON(ctx, w.Client, wikipediaAPIBase+"?"+params.Encode(), w.UserAgent, &qr); err != nil {
		return nil, fmt.Errorf("wikipedia links query: %w", err)
	}
	if len(qr.Query.Pages) == 0 {
		return nil, nil
	}

	var candidates []string
	for _, link := range qr.Query.Pages[0].Links {
		if link.Title != "" {
			candidates = append(candidates, link.Title)
		}
	}
	return candidates, nil
}

// MediaWiki API JSON structures (formatversion=2).
type wikiQueryResponse struct {
	Error *wikiError `json:"error"`
	Query wikiQuery  `json:"query"`
}

type wikiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

type wikiQuery struct {
	Pages []wikiPage `json:"pages"`
}

type wikiPage struct {
	Title     string         `json:"title"`
	Missing   bool           `json:"missing"`
	Invalid   bool           `json:"invalid"`
	Extract   string         `json:"extract"`
	FullURL   string         `json:"fullurl"`
	PageProps *wikiPageProps `json:"pageprops"`
	Links     []wikiLink     `json:"links"`
}

// wikiPageProps marks disambiguation pages. The property is present with an
// empty value, so it decodes as a non-nil pointer.
type wikiPageProps struct {
	Disambiguation *string `json:"disambiguation"`
}

type wikiLink struct {
	Title string `json:"title"`
}
