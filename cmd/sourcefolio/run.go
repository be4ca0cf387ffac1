// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/shakeelsaga/sourcefolio/internal/config"
	"github.com/shakeelsaga/sourcefolio/internal/export"
	"github.com/shakeelsaga/sourcefolio/internal/httputil"
	"github.com/shakeelsaga/sourcefolio/internal/logging"
	"github.com/shakeelsaga/sourcefolio/internal/providers"
	"github.com/shakeelsaga/sourcefolio/internal/session"
	"github.com/shakeelsaga/sourcefolio/internal/ui"
	"github.com/shakeelsaga/sourcefolio/pkg/types"
)

// runCmd is an explicit alias for the root behavior, so scripts can spell
// out `sourcefolio run`.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start an interactive research session",
	RunE:  runSession,
}

func init() {
	runCmd.Flags().Duration("fetch-deadline", 0, "wall-clock budget per provider call (default 15s)")
	runCmd.Flags().String("output-dir", "", "directory for exported reports (default .)")
	rootCmd.AddCommand(runCmd)
}

func runSession(cmd *cobra.Command, args []string) error {
	cfg := sessionConfig(cmd)

	logger, closeLog := logging.Open()
	defer closeLog()

	store, err := config.NewStore()
	if err != nil {
		return fmt.Errorf("opening credential store: %w", err)
	}

	client := httputil.NewClient(cfg.HTTPConfig)
	term := ui.NewTerminal(os.Stdin, os.Stdout)

	deps := session.Deps{
		Encyclopedia: &providers.Wikipedia{Client: client, UserAgent: cfg.UserAgent},
		Catalog:      &providers.OpenLibrary{Client: client, UserAgent: cfg.UserAgent},
		NewsFactory: func(apiKey string) session.NewsProvider {
			return providers.NewNewsAPI(client, cfg.UserAgent, apiKey)
		},
		ValidateKey: func(ctx context.Context, apiKey string) bool {
			return providers.ValidateKey(ctx, client, cfg.UserAgent, apiKey)
		},
		Credentials: store,
		ExportPDF:   export.PDF,
		ExportCSV:   export.CSV,
	}

	s := session.New(cfg, term, logger, deps)

	// Ctrl-C ends the session cleanly instead of dumping a stack trace. A
	// dedicated channel keeps normal session end from tripping the farewell:
	// the relay is stopped and the channel closed before Run returns.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer func() {
		signal.Stop(sigCh)
		close(sigCh)
	}()
	go watchInterrupt(sigCh, os.Stdout, os.Exit)

	logger.Info("session starting", "version", version)
	return s.Run(context.Background())
}

// watchInterrupt prints the farewell and terminates the process when an
// interrupt arrives. A closed channel means the session ended normally.
func watchInterrupt(sigCh <-chan os.Signal, out io.Writer, exit func(int)) {
	if _, ok := <-sigCh; !ok {
		return
	}
	fmt.Fprintln(out, "\nExiting. Thank you for using SourceFolio!")
	exit(0)
}

// sessionConfig resolves the session settings: defaults, then config
// file / environment via viper, then command-line flags.
func sessionConfig(cmd *cobra.Command) types.SessionConfig {
	cfg := types.DefaultSessionConfig()

	if v := viper.GetDuration("fetch_deadline"); v > 0 {
		cfg.FetchDeadline = v
	}
	if v := viper.GetDuration("http_timeout"); v > 0 {
		cfg.Timeout = v
	}
	if v := viper.GetString("user_agent"); v != "" {
		cfg.UserAgent = v
	}
	if v := viper.GetInt("book_limit"); v > 0 {
		cfg.BookLimit = v
	}
	if v := viper.GetInt("news_page_size"); v > 0 {
		cfg.NewsPageSize = v
	}
	if v := viper.GetInt("news_max_pages"); v > 0 {
		cfg.NewsMaxPages = v
	}
	if v := viper.GetInt("news_window_days"); v > 0 {
		cfg.NewsWindowDays = v
	}
	if v := viper.GetString("output_dir"); v != "" {
		cfg.OutputDir = v
	}

	if v, _ := cmd.Flags().GetDuration("fetch-deadline"); v > 0 {
		cfg.FetchDeadline = v
	}
	if v, _ := cmd.Flags().GetString("output-dir"); v != "" {
		cfg.OutputDir = v
	}

	// The executor deadline is the outer bound; the HTTP client timeout
	// must not outlive it.
	if cfg.Timeout > cfg.FetchDeadline {
		cfg.Timeout = cfg.FetchDeadline
	}
	return cfg
}
