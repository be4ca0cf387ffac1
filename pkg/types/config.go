// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for the provider adapters.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "sourcefolio/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SessionConfig holds settings for one interactive research session.
type SessionConfig struct {
	HTTPConfig `yaml:",inline"`

	// FetchDeadline is the hard wall-clock budget for one provider call.
	// A call still running when it elapses is abandoned (default 15s).
	FetchDeadline time.Duration `json:"fetch_deadline" yaml:"fetch_deadline"`

	// BookLimit is the maximum number of catalog results kept per keyword
	// (default 5).
	BookLimit int `json:"book_limit" yaml:"book_limit"`

	// NewsPageSize is the number of articles requested per news page
	// (default 20).
	NewsPageSize int `json:"news_page_size" yaml:"news_page_size"`

	// NewsMaxPages caps pagination in the news adapter (default 1).
	NewsMaxPages int `json:"news_max_pages" yaml:"news_max_pages"`

	// NewsWindowDays is the recency window for news searches (default 7).
	NewsWindowDays int `json:"news_window_days" yaml:"news_window_days"`

	// OutputDir is where exported PDF/CSV reports are written (default ".").
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// DefaultSessionConfig returns the reference defaults.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		HTTPConfig: HTTPConfig{
			Timeout:   10 * time.Second,
			UserAgent: "sourcefolio/0.1 (https://github.com/shakeelsaga/sourcefolio)",
		},
		FetchDeadline:  15 * time.Second,
		BookLimit:      5,
		NewsPageSize:   20,
		NewsMaxPages:   1,
		NewsWindowDays: 7,
		OutputDir:      ".",
	}
}
