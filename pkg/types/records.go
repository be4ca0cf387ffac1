// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the sourcefolio session:
// the per-provider records, the per-keyword result bucket, and configuration.
package types

// DetailLevel selects how much of a Wikipedia article is fetched.
type DetailLevel string

const (
	// DetailSummary fetches only the lead section of the article.
	DetailSummary DetailLevel = "summary"

	// DetailFull fetches the complete article extract.
	DetailFull DetailLevel = "full"
)

// WikiArticle is one encyclopedia lookup result.
type WikiArticle struct {
	// Title is the canonical page title (after redirect resolution).
	Title string `json:"title"`

	// Body is the extract text: the lead section for DetailSummary,
	// the whole article for DetailFull. May be empty for pages that
	// exist but carry no prose.
	Body string `json:"body"`

	// URL is the canonical page URL.
	URL string `json:"url"`
}

// Book is one catalog lookup result from OpenLibrary.
type Book struct {
	Title            string `json:"title"`
	Author           string `json:"author"`
	FirstPublishYear int    `json:"first_publish_year,omitempty"`
	ISBN             string `json:"isbn,omitempty"`

	// Link is the work page on openlibrary.org.
	Link string `json:"link,omitempty"`

	// EditionLink points at the cover edition, when one is known.
	EditionLink string `json:"edition_link,omitempty"`

	// CoverImage is the large cover image URL, when one is known.
	CoverImage string `json:"cover_image,omitempty"`
}

// NewsArticle is one news lookup result, in provider order (most recent first).
type NewsArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	PublishedAt string `json:"published_at"`
}
