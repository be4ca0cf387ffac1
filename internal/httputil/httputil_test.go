package httputil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shakeelsaga/sourcefolio/pkg/types"
)

func testClient() *http.Client {
	return NewClient(types.HTTPConfig{Timeout: 5 * time.Second, UserAgent: "test/0.1"})
}

func TestGetJSONDecodesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		w.Write([]byte(`{"name":"mercury","count":3}`))
	}))
	defer srv.Close()

	var got struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	err := GetJSON(context.Background(), testClient(), srv.URL, "test-agent", &got)
	require.NoError(t, err)
	assert.Equal(t, "mercury", got.Name)
	assert.Equal(t, 3, got.Count)
}

func TestGetJSONRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	var v map[string]any
	err := GetJSON(context.Background(), testClient(), srv.URL, "", &v)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRateLimited))
}

func TestGetJSONStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	var v map[string]any
	err := GetJSON(context.Background(), testClient(), srv.URL, "", &v)
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadGateway, se.StatusCode)
}

func TestGetJSONMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"broken":`))
	}))
	defer srv.Close()

	var v map[string]any
	err := GetJSON(context.Background(), testClient(), srv.URL, "", &v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing response")
}
