// Package testutil provides shared test helpers for creating config files and
// seeded storage fixtures.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rnakata/phraseloop/internal/session"
	"github.com/rnakata/phraseloop/internal/storage"
	"github.com/stretchr/testify/require"
)

// SetupTestConfig creates a config file and the directories it points at for
// testing. Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	return SetupTestConfigWithAPI(t, tmpDir, "https://api.test.invalid")
}

// SetupTestConfigWithAPI is SetupTestConfig with the service base URL pointed
// at the given address, typically an httptest server.
func SetupTestConfigWithAPI(t *testing.T, tmpDir, baseURL string) string {
	t.Helper()

	audioDir := filepath.Join(tmpDir, "audio")
	require.NoError(t, os.MkdirAll(audioDir, 0755))

	configContent := fmt.Sprintf(`storage:
  path: %s
api:
  base_url: %s
cache:
  directory: %s
network:
  probe_url: %s
  transport: wifi
`,
		filepath.Join(tmpDir, "phraseloop.db"),
		baseURL,
		audioDir,
		baseURL,
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// SeedSession persists an in-flight session snapshot into the given store so
// tests can exercise the resume path.
func SeedSession(t *testing.T, kv storage.KeyValueStore, deck, mode string, cards []session.Card, lastUpdated time.Time) *session.PersistedSession {
	t.Helper()

	persisted := session.NewPersistedSession(deck, mode, cards, lastUpdated)
	require.NoError(t, session.NewStore(kv).Save(context.Background(), persisted))
	return persisted
}
