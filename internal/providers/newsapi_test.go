package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shakeelsaga/sourcefolio/internal/httputil"
)

func testNewsAPI(apiKey string) *NewsAPI {
	// No limiter in tests: pagination pacing would just slow the suite down.
	return &NewsAPI{
		Client:    &http.Client{Timeout: 5 * time.Second},
		UserAgent: "test/0.1",
		APIKey:    apiKey,
	}
}

func TestNewsAPILookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "shakespeare", q.Get("q"))
		assert.Equal(t, "secret-key", q.Get("apiKey"))
		assert.Equal(t, "publishedAt", q.Get("sortBy"))
		assert.Equal(t, "en", q.Get("language"))
		w.Write([]byte(`{"status":"ok","totalResults":2,"articles":[
			{"source":{"name":"The Guardian"},"title":"New First Folio found",
			 "description":"A rare copy surfaced.","url":"https://example.com/a",
			 "publishedAt":"2026-08-27T10:00:00Z"},
			{"source":{},"title":"","description":"","url":"https://example.com/b",
			 "publishedAt":"2026-08-26T09:00:00Z"}
		]}`))
	}))
	defer srv.Close()
	swapBase(t, &newsAPIBase, srv.URL)

	got, err := testNewsAPI("secret-key").Lookup(context.Background(), "shakespeare", 20, 1, 7)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "New First Folio found", got[0].Title)
	assert.Equal(t, "The Guardian", got[0].Source)
	// Placeholder fill-ins for absent fields.
	assert.Equal(t, "No title available", got[1].Title)
	assert.Equal(t, "No description available", got[1].Description)
	assert.Equal(t, "Unknown", got[1].Source)
}

func TestNewsAPILookupPaginatesUntilShortPage(t *testing.T) {
	var pages []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		pages = append(pages, page)
		if page == "1" {
			// Full page: exactly pageSize articles.
			w.Write([]byte(`{"status":"ok","articles":[
				{"title":"a","url":"u1"},{"title":"b","url":"u2"}
			]}`))
			return
		}
		// Short page ends pagination.
		w.Write([]byte(`{"status":"ok","articles":[{"title":"c","url":"u3"}]}`))
	}))
	defer srv.Close()
	swapBase(t, &newsAPIBase, srv.URL)

	got, err := testNewsAPI("k").Lookup(context.Background(), "q", 2, 5, 7)
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Equal(t, []string{"1", "2"}, pages)
}

func TestNewsAPILookupStopsAtMaxPages(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`{"status":"ok","articles":[{"title":"a","url":"u"},{"title":"b","url":"u"}]}`))
	}))
	defer srv.Close()
	swapBase(t, &newsAPIBase, srv.URL)

	got, err := testNewsAPI("k").Lookup(context.Background(), "q", 2, 3, 7)
	require.NoError(t, err)
	assert.Len(t, got, 6)
	assert.Equal(t, 3, hits)
}

func TestNewsAPILookupRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()
	swapBase(t, &newsAPIBase, srv.URL)

	_, err := testNewsAPI("k").Lookup(context.Background(), "q", 20, 1, 7)
	require.Error(t, err)
	assert.True(t, errors.Is(err, httputil.ErrRateLimited))
}

func TestNewsAPILookupProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"error","code":"apiKeyInvalid","message":"Your API key is invalid"}`))
	}))
	defer srv.Close()
	swapBase(t, &newsAPIBase, srv.URL)

	_, err := testNewsAPI("bad").Lookup(context.Background(), "q", 20, 1, 7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apiKeyInvalid")
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   bool
	}{
		{"accepted", http.StatusOK, true},
		{"quota exhausted still valid", http.StatusTooManyRequests, true},
		{"unauthorized", http.StatusUnauthorized, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, `{}`)
			}))
			defer srv.Close()
			swapBase(t, &newsAPIBase, srv.URL)

			client := &http.Client{Timeout: 5 * time.Second}
			assert.Equal(t, tt.want, ValidateKey(context.Background(), client, "test/0.1", "some-key"))
		})
	}
}

func TestValidateKeyBlank(t *testing.T) {
	client := &http.Client{Timeout: time.Second}
	assert.False(t, ValidateKey(context.Background(), client, "", ""))
}
