// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session drives one interactive research run: keyword entry,
// detail-level selection, the credential preflight, the per-keyword
// provider phases with operator-driven recovery, and finally export. The
// whole session runs on a single control goroutine; the only internal
// concurrency is the bounded executor isolating one in-flight remote call.
package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/shakeelsaga/sourcefolio/internal/config"
	"github.com/shakeelsaga/sourcefolio/internal/ledger"
	"github.com/shakeelsaga/sourcefolio/internal/ui"
	"github.com/shakeelsaga/sourcefolio/pkg/types"
)

// EncyclopediaProvider is the Wikipedia lookup boundary.
type EncyclopediaProvider interface {
	Lookup(ctx context.Context, term string, detail types.DetailLevel) (*types.WikiArticle, error)
}

// CatalogProvider is the OpenLibrary lookup boundary.
type CatalogProvider interface {
	Lookup(ctx context.Context, term string, limit int) ([]types.Book, error)
}

// NewsProvider is the NewsAPI lookup boundary.
type NewsProvider interface {
	Lookup(ctx context.Context, term string, pageSize, maxPages, windowDays int) ([]types.NewsArticle, error)
}

// CredentialStore is the persisted credential boundary.
type CredentialStore interface {
	APIKey(service string) string
	SaveAPIKey(service, key string) error
}

// Deps wires the session's collaborators. Everything the session reaches
// outside itself for goes through here, which is what makes the control
// loop testable without a network or a terminal.
type Deps struct {
	Encyclopedia EncyclopediaProvider
	Catalog      CatalogProvider

	// NewsFactory builds the news adapter for a validated credential. The
	// adapter is only constructed when a credential exists.
	NewsFactory func(apiKey string) NewsProvider

	// ValidateKey checks a candidate news credential against the provider.
	ValidateKey func(ctx context.Context, apiKey string) bool

	Credentials CredentialStore

	ExportPDF func(entries []ledger.Entry, path string) error
	ExportCSV func(entries []ledger.Entry, path string) error

	// Exit terminates the process; the operator's Exit choice is global
	// and immediate. Defaults to os.Exit.
	Exit func(code int)

	// Now stamps export filenames. Defaults to time.Now.
	Now func() time.Time
}

// Session is the orchestrator for one interactive run (possibly several
// research rounds, if the operator keeps going).
type Session struct {
	cfg    types.SessionConfig
	ui     ui.Port
	log    *log.Logger
	deps   Deps
	ledger *ledger.Ledger
	exit   func(code int)
	now    func() time.Time
}

// New constructs a session.
func New(cfg types.SessionConfig, port ui.Port, logger *log.Logger, deps Deps) *Session {
	s := &Session{
		cfg:  cfg,
		ui:   port,
		log:  logger,
		deps: deps,
		exit: deps.Exit,
		now:  deps.Now,
	}
	if s.exit == nil {
		s.exit = os.Exit
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Run executes research rounds until the operator declines another one.
func (s *Session) Run(ctx context.Context) error {
	for {
		again, err := s.runRound(ctx)
		if err != nil {
			return err
		}
		if !again {
			s.farewell()
			return nil
		}
	}
}

// runRound is one pass from keyword entry to export. It reports whether
// the operator asked for another round.
func (s *Session) runRound(ctx context.Context) (bool, error) {
	s.splash()

	keys, err := s.promptKeywords()
	if err != nil {
		return false, err
	}
	if len(keys) == 0 {
		s.ui.Warn("No keywords entered.")
		return s.ui.Confirm("Do you want to try again?", true)
	}

	details, err := s.promptDetailLevels(keys)
	if err != nil {
		return false, err
	}

	s.ledger = ledger.New()
	for i, key := range keys {
		if err := s.ledger.Create(key, details[i]); err != nil {
			return false, fmt.Errorf("seeding ledger: %w", err)
		}
	}
	s.previewSelection(keys, details)

	news := s.newsPreflight(ctx)

	s.ui.Info("\nStarting data collection...\n")
	s.log.Info("collection started", "keys", len(keys), "news", news != nil)

	// Slot indices stay stable while renames and merges mutate the ledger
	// underneath; a slot vacated by a merge reads as "".
	for i := 0; i < s.ledger.Slots(); i++ {
		key := s.ledger.KeyAt(i)
		if key == "" {
			continue
		}
		s.processKey(ctx, key, news)
	}

	if !s.ledger.HasData() {
		s.ui.Warn("\nNo data was collected for any of the keywords.")
		return s.ui.Confirm("Do you want to perform another research?", true)
	}

	s.ui.Success("\nData collection done!")
	s.previewData()

	if err := s.exportRound(); err != nil {
		return false, err
	}
	return s.ui.Confirm("Do you want to perform another research?", false)
}

// processKey runs the three provider phases for one keyword, in fixed
// order. Each phase may rename the keyword; the next phase continues under
// the new name. A rename that merges into another live keyword ends this
// entry's processing, since the merge target has its own slot in the loop.
// A nil news provider skips the news phase entirely: no slot attempt, no
// recovery prompt.
func (s *Session) processKey(ctx context.Context, key string, news NewsProvider) {
	key, ok := runPhase(ctx, s, key, phase[*types.WikiArticle]{
		name:     "Wikipedia",
		describe: func(k string) string { return describeFetch("Wikipedia", k) },
		emptyMsg: func(k string) string {
			return fmt.Sprintf("No definitive Wikipedia page found for '%s'.", k)
		},
		fetch: func(ctx context.Context, k string, b *types.Bucket) (*types.WikiArticle, error) {
			return s.deps.Encyclopedia.Lookup(ctx, k, b.Detail)
		},
		isEmpty: func(a *types.WikiArticle) bool { return a == nil || a.Body == "" },
		store: func(b *types.Bucket, a *types.WikiArticle) {
			b.Wiki = a
			b.WikiAttempted = true
		},
		markAttempted: func(b *types.Bucket) { b.WikiAttempted = true },
	})
	if !ok {
		return
	}

	key, ok = runPhase(ctx, s, key, phase[[]types.Book]{
		name:     "books",
		describe: func(k string) string { return describeFetch("book", k) },
		emptyMsg: func(k string) string {
			return fmt.Sprintf("Could not find any book for '%s'.", k)
		},
		fetch: func(ctx context.Context, k string, b *types.Bucket) ([]types.Book, error) {
			return s.deps.Catalog.Lookup(ctx, k, s.cfg.BookLimit)
		},
		isEmpty: func(books []types.Book) bool { return len(books) == 0 },
		store: func(b *types.Bucket, books []types.Book) {
			b.Books = books
			b.BooksAttempted = true
		},
		markAttempted: func(b *types.Bucket) { b.BooksAttempted = true },
	})
	if !ok || news == nil {
		return
	}

	runPhase(ctx, s, key, phase[[]types.NewsArticle]{
		name:     "news",
		describe: func(k string) string { return describeFetch("news", k) },
		emptyMsg: func(k string) string {
			return fmt.Sprintf("Could not find any News article for '%s'.", k)
		},
		fetch: func(ctx context.Context, k string, b *types.Bucket) ([]types.NewsArticle, error) {
			return news.Lookup(ctx, k, s.cfg.NewsPageSize, s.cfg.NewsMaxPages, s.cfg.NewsWindowDays)
		},
		isEmpty: func(articles []types.NewsArticle) bool { return len(articles) == 0 },
		store: func(b *types.Bucket, articles []types.NewsArticle) {
			b.News = articles
			b.NewsAttempted = true
		},
		markAttempted: func(b *types.Bucket) { b.NewsAttempted = true },
	})
}

// newsPreflight resolves the news credential for this round: offer an
// existing key (use / replace / remove), or prompt for a new one, validating
// against the live endpoint. Returns nil when the round runs without news.
func (s *Session) newsPreflight(ctx context.Context) NewsProvider {
	existing := s.deps.Credentials.APIKey(config.NewsAPIKeyName)

	if existing != "" {
		masked := existing
		if len(masked) > 4 {
			masked = "..." + masked[len(masked)-4:]
		}
		s.ui.Info("Found existing NewsAPI key: %s", masked)

		choice, err := s.ui.Select("What would you like to do?", []string{
			"Use this key",
			"Enter a different key",
			"Remove the key (skip news)",
		}, 0)
		if err != nil {
			return nil
		}
		switch choice {
		case 0:
			if !s.deps.ValidateKey(ctx, existing) {
				s.ui.Warn("The existing API key is no longer valid.")
			} else {
				s.ui.Success("API key is valid.\n")
				return s.deps.NewsFactory(existing)
			}
		case 2:
			if err := s.deps.Credentials.SaveAPIKey(config.NewsAPIKeyName, ""); err != nil {
				s.log.Error("removing credential", "err", err)
			}
			s.ui.Info("API key removed. News fetching will be skipped.\n")
			return nil
		}
	}

	for {
		key, err := s.ui.PromptText("Please enter your NewsAPI key (or leave blank to skip news fetching):")
		if err != nil || key == "" {
			s.ui.Info("No API key entered. News fetching will be skipped.\n")
			return nil
		}
		if s.deps.ValidateKey(ctx, key) {
			if err := s.deps.Credentials.SaveAPIKey(config.NewsAPIKeyName, key); err != nil {
				s.log.Error("saving credential", "err", err)
			}
			s.ui.Success("NewsAPI key is valid and has been saved.\n")
			return s.deps.NewsFactory(key)
		}
		s.ui.Errorf("The provided API key is invalid. Please try again.")
	}
}

func (s *Session) splash() {
	s.ui.Panel("Welcome to SourceFolio!\n\n" +
		"This tool gathers research from Wikipedia, OpenLibrary and NewsAPI:\n" +
		"definitions, recommended books and recent news for your keywords.")
}

func (s *Session) promptKeywords() ([]string, error) {
	answer, err := s.ui.PromptText("Enter your research keywords (separated by commas):")
	if err != nil {
		return nil, err
	}
	return ParseKeywords(answer), nil
}

// promptDetailLevels resolves the Wikipedia detail mode: uniform summary,
// uniform full, or a per-keyword choice.
func (s *Session) promptDetailLevels(keys []string) ([]types.DetailLevel, error) {
	choice, err := s.ui.Select("Select Wikipedia data mode:", []string{
		"Summary only",
		"Full details",
		"Manual (choose per keyword)",
	}, 0)
	if err != nil {
		return nil, err
	}

	details := make([]types.DetailLevel, len(keys))
	switch choice {
	case 0:
		for i := range details {
			details[i] = types.DetailSummary
		}
	case 1:
		for i := range details {
			details[i] = types.DetailFull
		}
	default:
		s.ui.Print("\nFor each keyword, choose the detail level.\n")
		for i, key := range keys {
			idx, err := s.ui.Select(key+":", []string{"Summary", "Detailed"}, 0)
			if err != nil {
				return nil, err
			}
			if idx == 1 {
				details[i] = types.DetailFull
			} else {
				details[i] = types.DetailSummary
			}
		}
	}
	return details, nil
}

func (s *Session) previewSelection(keys []string, details []types.DetailLevel) {
	s.ui.Rule("Preview")
	for i, key := range keys {
		mode := "Summary"
		if details[i] == types.DetailFull {
			mode = "Detailed"
		}
		s.ui.Print("Keyword: %s → Mode: %s", key, mode)
	}
	s.ui.Rule("")
}

const snippetLen = 250

// previewData prints the collected data summary before export.
func (s *Session) previewData() {
	s.ui.Rule("Data Preview")
	for _, entry := range s.ledger.Snapshot() {
		s.ui.Info("Keyword: %s", entry.Key)
		b := entry.Bucket

		if b.Wiki != nil && b.Wiki.Body != "" {
			snippet := b.Wiki.Body
			if len(snippet) > snippetLen {
				snippet = snippet[:snippetLen] + "..."
			}
			s.ui.Print("  Wikipedia: %s", b.Wiki.Title)
			s.ui.Print("    %s", snippet)
			s.ui.Print("    %s", b.Wiki.URL)
		} else {
			s.ui.Print("  Wikipedia: no data available")
		}

		if len(b.Books) > 0 {
			s.ui.Print("  Books (%d results)", len(b.Books))
			for _, book := range firstN(b.Books, 3) {
				s.ui.Print("    - %s by %s", book.Title, book.Author)
			}
			if len(b.Books) > 3 {
				s.ui.Print("    ... more results")
			}
		} else {
			s.ui.Print("  Books: no results found")
		}

		if len(b.News) > 0 {
			s.ui.Print("  News (%d articles)", len(b.News))
			for _, article := range firstN(b.News, 3) {
				s.ui.Print("    - %s (%s)", article.Title, article.Source)
			}
			if len(b.News) > 3 {
				s.ui.Print("    ... more articles")
			}
		} else {
			s.ui.Print("  News: no articles found")
		}
		s.ui.Rule("")
	}
}

// exportRound runs the export menu over the final ledger snapshot. No
// network activity happens past this point.
func (s *Session) exportRound() error {
	s.ui.Rule("Export")
	choice, err := s.ui.Select("Choose export format:", []string{"PDF", "CSV", "Both", "Skip"}, 0)
	if err != nil {
		return err
	}
	if choice == 3 {
		s.ui.Print("Export skipped.")
		return nil
	}

	entries := s.ledger.Snapshot()
	stamp := s.now().Format("20060102_150405")

	if choice == 0 || choice == 2 {
		path := filepath.Join(s.cfg.OutputDir, fmt.Sprintf("research_output_%s.pdf", stamp))
		if err := s.deps.ExportPDF(entries, path); err != nil {
			s.ui.Errorf("PDF export failed: %v", err)
			s.log.Error("pdf export", "err", err)
		} else {
			s.ui.Success("PDF exported successfully to %s", path)
		}
	}
	if choice == 1 || choice == 2 {
		path := filepath.Join(s.cfg.OutputDir, fmt.Sprintf("research_output_%s.csv", stamp))
		if err := s.deps.ExportCSV(entries, path); err != nil {
			s.ui.Errorf("CSV export failed: %v", err)
			s.log.Error("csv export", "err", err)
		} else {
			s.ui.Success("CSV exported successfully to %s", path)
		}
	}
	return nil
}

func firstN[T any](items []T, n int) []T {
	if len(items) < n {
		return items
	}
	return items[:n]
}
