package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func setConfigFile(t *testing.T, path string) {
	t.Helper()
	original := configFile
	configFile = path
	t.Cleanup(func() {
		configFile = original
	})
}

func setupBrokenConfigFile(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("storage: [unclosed"), 0644))
	return path
}
