package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rnakata/phraseloop/internal/assetcache"
	"github.com/rnakata/phraseloop/internal/blob"
	"github.com/rnakata/phraseloop/internal/storage"
	"github.com/rnakata/phraseloop/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCacheTrimCommand_RunE_InvalidConfig(t *testing.T) {
	cfgPath := setupBrokenConfigFile(t)
	setConfigFile(t, cfgPath)

	cmd := newCacheTrimCommand()
	cmd.SetArgs([]string{})
	err := cmd.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "configuration")
}

func TestNewCacheTrimCommand_RunE_EvictsExpiredEntries(t *testing.T) {
	ctx := context.Background()

	tmpDir := t.TempDir()
	cfgPath := testutil.SetupTestConfig(t, tmpDir)
	setConfigFile(t, cfgPath)

	// Seed one fresh and one long-expired cached clip
	store, err := storage.OpenSQLite(filepath.Join(tmpDir, "phraseloop.db"), "phraseloop")
	require.NoError(t, err)
	audioDir := filepath.Join(tmpDir, "audio")
	cache := assetcache.New(store, blob.NewFakeStore(), audioDir)

	_, err = cache.Ensure(ctx, "clip-fresh", "https://cdn.test.invalid/clip-fresh.mp3")
	require.NoError(t, err)
	stalePath, err := cache.Ensure(ctx, "clip-stale", "https://cdn.test.invalid/clip-stale.mp3")
	require.NoError(t, err)

	// Backdate the stale clip's recency in the manifest
	manifest, err := cache.Entries(ctx)
	require.NoError(t, err)
	entry := manifest["clip-stale"]
	entry.LastUsedAt = time.Now().Add(-30 * 24 * time.Hour)
	manifest["clip-stale"] = entry
	contents, err := json.Marshal(manifest)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "audio:manifest", contents))
	require.NoError(t, store.Close())

	cmd := newCacheTrimCommand()
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	_, err = os.Stat(stalePath)
	assert.True(t, os.IsNotExist(err))

	store, err = storage.OpenSQLite(filepath.Join(tmpDir, "phraseloop.db"), "phraseloop")
	require.NoError(t, err)
	defer func() {
		require.NoError(t, store.Close())
	}()
	entries, err := assetcache.New(store, blob.NewFakeStore(), audioDir).Entries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries, "clip-fresh")
}

func TestNewCacheListCommand_RunE_EmptyCache(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := testutil.SetupTestConfig(t, tmpDir)
	setConfigFile(t, cfgPath)

	cmd := newCacheListCommand()
	cmd.SetArgs([]string{})
	assert.NoError(t, cmd.Execute())
}
