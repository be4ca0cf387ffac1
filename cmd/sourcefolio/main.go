// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the sourcefolio CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd launches the interactive research session. Subcommands cover the
// non-interactive surfaces: credential management and version.
var rootCmd = &cobra.Command{
	Use:   "sourcefolio",
	Short: "Interactive research assistant for keywords",
	Long: `sourcefolio gathers research material for a set of keywords: a Wikipedia
definition, book recommendations from OpenLibrary, and recent news from
NewsAPI. The session is interactive; when a lookup comes back empty,
ambiguous, or broken, you decide whether to rename the keyword, retry,
or skip.

Collected data can be exported as a PDF report, a CSV file, or both.`,
	RunE: runSession,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./sourcefolio.yaml or ~/.config/sourcefolio/config.yaml)")
	rootCmd.Flags().Duration("fetch-deadline", 0, "wall-clock budget per provider call (default 15s)")
	rootCmd.Flags().String("output-dir", "", "directory for exported reports (default .)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("sourcefolio")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "sourcefolio"))
		}
	}

	viper.SetEnvPrefix("SOURCEFOLIO")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
