package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOpenLibrary() *OpenLibrary {
	return &OpenLibrary{Client: &http.Client{Timeout: 5 * time.Second}, UserAgent: "test/0.1"}
}

func TestOpenLibraryLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "shakespeare", r.URL.Query().Get("q"))
		w.Write([]byte(`{"numFound":2,"docs":[
			{"title":"Hamlet","author_name":["William Shakespeare"],"first_publish_year":1603,
			 "isbn":["0140714545","9780140714548"],"key":"/works/OL362427W",
			 "cover_edition_key":"OL24209370M","cover_i":8257991},
			{"title":"Macbeth","author_name":[]}
		]}`))
	}))
	defer srv.Close()
	swapBase(t, &openLibraryBase, srv.URL)

	books, err := testOpenLibrary().Lookup(context.Background(), "shakespeare", 5)
	require.NoError(t, err)
	require.Len(t, books, 2)

	assert.Equal(t, "Hamlet", books[0].Title)
	assert.Equal(t, "William Shakespeare", books[0].Author)
	assert.Equal(t, 1603, books[0].FirstPublishYear)
	assert.Equal(t, "0140714545", books[0].ISBN)
	assert.Equal(t, "https://openlibrary.org/works/OL362427W", books[0].Link)
	assert.Equal(t, "https://openlibrary.org/books/OL24209370M", books[0].EditionLink)
	assert.Equal(t, "https://covers.openlibrary.org/b/id/8257991-L.jpg", books[0].CoverImage)

	assert.Equal(t, "Unknown", books[1].Author)
	assert.Empty(t, books[1].Link)
}

func TestOpenLibraryLookupAppliesLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"numFound":3,"docs":[{"title":"A"},{"title":"B"},{"title":"C"}]}`))
	}))
	defer srv.Close()
	swapBase(t, &openLibraryBase, srv.URL)

	books, err := testOpenLibrary().Lookup(context.Background(), "q", 2)
	require.NoError(t, err)
	assert.Len(t, books, 2)
}

func TestOpenLibraryLookupNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"numFound":0,"docs":[]}`))
	}))
	defer srv.Close()
	swapBase(t, &openLibraryBase, srv.URL)

	books, err := testOpenLibrary().Lookup(context.Background(), "asdkjqwe123nonsense", 5)
	require.NoError(t, err, "no results is not an error for the catalog")
	assert.Empty(t, books)
}

func TestOpenLibraryLookupServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()
	swapBase(t, &openLibraryBase, srv.URL)

	_, err := testOpenLibrary().Lookup(context.Background(), "q", 5)
	require.Error(t, err)
}

func TestFormatAuthors(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		want  string
	}{
		{"none", nil, "Unknown"},
		{"blank", []string{"  "}, "Unknown"},
		{"one", []string{"Jane Doe"}, "Jane Doe"},
		{"several", []string{"A", "B"}, "A, B"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatAuthors(tt.names))
		})
	}
}
