// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by the provider adapters.
// All remote calls in sourcefolio are single attempts: retry is an operator
// decision made in the recovery loop, never an automatic one here.
package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/shakeelsaga/sourcefolio/pkg/types"
)

// ErrRateLimited marks an HTTP 429 from a provider. The recovery loop
// surfaces it to the operator instead of backing off silently.
var ErrRateLimited = errors.New("rate limit exceeded")

// StatusError reports a non-2xx response that is not a rate limit.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d from %s", e.StatusCode, e.URL)
}

// NewClient returns an http.Client with the configured request timeout.
// The client timeout is a transport safety net under the executor's own
// wall-clock deadline; the two are independent.
func NewClient(cfg types.HTTPConfig) *http.Client {
	return &http.Client{Timeout: cfg.Timeout}
}

// GetJSON issues a GET to rawURL and decodes the JSON response body into v.
// 429 maps to ErrRateLimited; other non-2xx statuses map to *StatusError.
func GetJSON(ctx context.Context, client *http.Client, rawURL, userAgent string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%s: %w", rawURL, ErrRateLimited)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("parsing response from %s: %w", rawURL, err)
	}
	return nil
}
