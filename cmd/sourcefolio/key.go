// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shakeelsaga/sourcefolio/internal/config"
	"github.com/shakeelsaga/sourcefolio/internal/httputil"
	"github.com/shakeelsaga/sourcefolio/internal/providers"
	"github.com/shakeelsaga/sourcefolio/pkg/types"
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage the stored NewsAPI key",
}

var keyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show whether a NewsAPI key is stored (masked)",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := config.NewStore()
		if err != nil {
			return err
		}
		key := store.APIKey(config.NewsAPIKeyName)
		if key == "" {
			fmt.Println("No NewsAPI key stored.")
			return nil
		}
		fmt.Printf("NewsAPI key: %s\n", maskKey(key))
		return nil
	},
}

var keySetCmd = &cobra.Command{
	Use:   "set <api-key>",
	Short: "Validate and store a NewsAPI key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := config.NewStore()
		if err != nil {
			return err
		}
		cfg := types.DefaultSessionConfig()
		client := httputil.NewClient(cfg.HTTPConfig)
		if !providers.ValidateKey(context.Background(), client, cfg.UserAgent, args[0]) {
			return fmt.Errorf("the provided API key is invalid")
		}
		if err := store.SaveAPIKey(config.NewsAPIKeyName, args[0]); err != nil {
			return err
		}
		fmt.Println("NewsAPI key saved.")
		return nil
	},
}

var keyRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove the stored NewsAPI key",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := config.NewStore()
		if err != nil {
			return err
		}
		if err := store.SaveAPIKey(config.NewsAPIKeyName, ""); err != nil {
			return err
		}
		fmt.Println("NewsAPI key removed.")
		return nil
	},
}

var keyValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the stored NewsAPI key against the live endpoint",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := config.NewStore()
		if err != nil {
			return err
		}
		key := store.APIKey(config.NewsAPIKeyName)
		if key == "" {
			return fmt.Errorf("no NewsAPI key stored")
		}
		cfg := types.DefaultSessionConfig()
		client := httputil.NewClient(cfg.HTTPConfig)
		if !providers.ValidateKey(context.Background(), client, cfg.UserAgent, key) {
			return fmt.Errorf("stored API key %s is not valid", maskKey(key))
		}
		fmt.Printf("NewsAPI key %s is valid.\n", maskKey(key))
		return nil
	},
}

func maskKey(key string) string {
	if len(key) > 4 {
		return "..." + key[len(key)-4:]
	}
	return key
}

func init() {
	keyCmd.AddCommand(keyShowCmd, keySetCmd, keyRemoveCmd, keyValidateCmd)
	rootCmd.AddCommand(keyCmd)
}
