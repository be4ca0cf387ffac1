// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Bucket aggregates everything collected for one keyword. Each provider
// slot distinguishes "never attempted" from "attempted, found nothing":
// the Attempted flag flips the first time a lookup for that provider
// completes, whether or not it produced data.
type Bucket struct {
	// Detail is the Wikipedia detail level chosen at session setup.
	Detail DetailLevel `json:"detail"`

	// Wiki is the encyclopedia slot. Nil until a lookup succeeds.
	Wiki          *WikiArticle `json:"wiki,omitempty"`
	WikiAttempted bool         `json:"wiki_attempted"`

	// Books is the catalog slot, bounded by the provider page limit.
	Books          []Book `json:"books,omitempty"`
	BooksAttempted bool   `json:"books_attempted"`

	// News is the news slot, aggregated across provider pages.
	News          []NewsArticle `json:"news,omitempty"`
	NewsAttempted bool          `json:"news_attempted"`
}

// HasData reports whether the bucket holds anything worth exporting:
// a non-empty article body, at least one book, or at least one article.
func (b *Bucket) HasData() bool {
	if b.Wiki != nil && b.Wiki.Body != "" {
		return true
	}
	return len(b.Books) > 0 || len(b.News) > 0
}

// Merge fills b's unset slots from other. Slots already attempted in b win;
// this is the collision rule for rebinding a keyword onto an existing entry,
// so no collected work is discarded on either side.
func (b *Bucket) Merge(other *Bucket) {
	if other == nil {
		return
	}
	if !b.WikiAttempted && other.WikiAttempted {
		b.Wiki = other.Wiki
		b.WikiAttempted = true
	}
	if !b.BooksAttempted && other.BooksAttempted {
		b.Books = other.Books
		b.BooksAttempted = true
	}
	if !b.NewsAttempted && other.NewsAttempted {
		b.News = other.News
		b.NewsAttempted = true
	}
}
