// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config persists the credential store: a whole-file JSON map under
// the operator's home directory (~/.sourcefolio/config.json). A missing or
// corrupt file is never fatal; it reads as "no credential", which in turn
// disables the news phase for the session.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// NewsAPIKeyName is the credential key for the news provider.
const NewsAPIKeyName = "NEWS_API_KEY"

const (
	configDirName  = ".sourcefolio"
	configFileName = "config.json"
)

// Store reads and writes the credential file.
type Store struct {
	path string
}

// NewStore returns a store rooted at ~/.sourcefolio/config.json.
func NewStore() (*Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolving home directory: %w", err)
	}
	return &Store{path: filepath.Join(home, configDirName, configFileName)}, nil
}

// NewStoreAt returns a store backed by an explicit file path. Tests use this.
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

// APIKey returns the stored credential for service, or "" if there is none.
func (s *Store) APIKey(service string) string {
	return s.load()[service]
}

// SaveAPIKey stores the credential for service, creating the config
// directory on first use. An empty key removes the entry.
func (s *Store) SaveAPIKey(service, key string) error {
	values := s.load()
	if key == "" {
		delete(values, service)
	} else {
		values[service] = key
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// load reads the whole config file. Missing or unparseable files read as
// empty; the credential store must never take a session down.
func (s *Store) load() map[string]string {
	values := make(map[string]string)
	data, err := os.ReadFile(s.path)
	if err != nil {
		return values
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return make(map[string]string)
	}
	return values
}
