// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/shakeelsaga/sourcefolio/internal/httputil"
	"github.com/shakeelsaga/sourcefolio/pkg/types"
)

// openLibraryBase is the OpenLibrary search endpoint. Declared as a var so
// tests can substitute an httptest server.
var openLibraryBase = "https://openlibrary.org/search.json"

// OpenLibrary looks up books in the OpenLibrary catalog.
type OpenLibrary struct {
	Client    *http.Client
	UserAgent string
}

// Lookup returns up to limit books matching term. No results is an empty
// slice, never an error.
func (o *OpenLibrary) Lookup(ctx context.Context, term string, limit int) ([]types.Book, error) {
	if limit <= 0 {
		limit = 5
	}

	params := url.Values{
		"q":      {term},
		"limit":  {fmt.Sprintf("%d", limit)},
		"fields": {"title,author_name,first_publish_year,isbn,key,cover_edition_key,cover_i"},
	}

	var sr openLibraryResponse
	if err := httputil.GetJSON(ctx, o.Client, openLibraryBase+"?"+params.Encode(), o.UserAgent, &sr); err != nil {
		return nil, fmt.Errorf("openlibrary search: %w", err)
	}

	books := make([]types.Book, 0, limit)
	for _, doc := range sr.Docs {
		if len(books) == limit {
			break
		}
		b := types.Book{
			Title:            doc.Title,
			Author:           formatAuthors(doc.AuthorName),
			FirstPublishYear: doc.FirstPublishYear,
		}
		if len(doc.ISBN) > 0 {
			b.ISBN = doc.ISBN[0]
		}
		if doc.Key != "" {
			b.Link = "https://openlibrary.org" + doc.Key
		}
		if doc.CoverEditionKey != "" {
			b.EditionLink = "https://openlibrary.org/books/" + doc.CoverEditionKey
		}
		if doc.CoverID != 0 {
			b.CoverImage = fmt.Sprintf("https://covers.openlibrary.org/b/id/%d-L.jpg", doc.CoverID)
		}
		books = append(books, b)
	}
	return books, nil
}

// formatAuthors joins the author list, falling back to "Unknown".
func formatAuthors(names []string) string {
	joined := strings.TrimSpace(strings.Join(names, ", "))
	if joined == "" {
		return "Unknown"
	}
	return joined
}

// OpenLibrary API JSON structures.
type openLibraryResponse struct {
	NumFound int              `json:"numFound"`
	Docs     []openLibraryDoc `json:"docs"`
}

type openLibraryDoc struct {
	Title            string   `json:"title"`
	AuthorName       []string `json:"author_name"`
	FirstPublishYear int      `json:"first_publish_year"`
	ISBN             []string `json:"isbn"`
	Key              string   `json:"key"`
	CoverEditionKey  string   `json:"cover_edition_key"`
	CoverID          int      `json:"cover_i"`
}
