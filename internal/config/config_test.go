// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return NewStoreAt(filepath.Join(t.TempDir(), "nested", "config.json"))
}

func TestSaveAndLoadAPIKey(t *testing.T) {
	s := testStore(t)
	require.NoError(t, s.SaveAPIKey(NewsAPIKeyName, "abc123"))
	assert.Equal(t, "abc123", s.APIKey(NewsAPIKeyName))
}

func TestMissingFileReadsAsNoCredential(t *testing.T) {
	s := testStore(t)
	assert.Equal(t, "", s.APIKey(NewsAPIKeyName))
}

func TestCorruptFileReadsAsNoCredential(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s := NewStoreAt(path)
	assert.Equal(t, "", s.APIKey(NewsAPIKeyName))
}

func TestEmptyKeyRemovesEntry(t *testing.T) {
	s := testStore(t)
	require.NoError(t, s.SaveAPIKey(NewsAPIKeyName, "abc123"))
	require.NoError(t, s.SaveAPIKey(NewsAPIKeyName, ""))
	assert.Equal(t, "", s.APIKey(NewsAPIKeyName))
}

func TestSaveKeepsOtherEntries(t *testing.T) {
	s := testStore(t)
	require.NoError(t, s.SaveAPIKey(NewsAPIKeyName, "news-key"))
	require.NoError(t, s.SaveAPIKey("OTHER_SERVICE", "other-key"))
	require.NoError(t, s.SaveAPIKey(NewsAPIKeyName, ""))

	assert.Equal(t, "other-key", s.APIKey("OTHER_SERVICE"))
	assert.Equal(t, "", s.APIKey(NewsAPIKeyName))
}
