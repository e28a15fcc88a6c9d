package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name              string
		configContent     string
		useExplicitPath   bool
		env               map[string]string
		wantErr           bool
		wantErrorContains []string
		want              *Config
	}{
		{
			name: "valid config file with custom values",
			configContent: `
storage:
  path: custom/store.db
api:
  base_url: https://api.example.com
session:
  debounce_ms: 250
  staleness_hours: 12
  fetch_limit: 20
queue:
  max_size: 50
  max_retries: 5
cache:
  directory: custom/audio
  max_entries: 80
  max_age_days: 14
prefetch:
  interval_hours: 6
  background_restricted: true
network:
  probe_url: https://probe.example.com/204
  transport: wifi
`,
			useExplicitPath: true,
			want: &Config{
				Storage: StorageConfig{
					Path: "custom/store.db",
				},
				API: APIConfig{
					BaseURL: "https://api.example.com",
				},
				Session: SessionConfig{
					DebounceMs:     250,
					StalenessHours: 12,
					FetchLimit:     20,
				},
				Queue: QueueConfig{
					MaxSize:    50,
					MaxRetries: 5,
				},
				Cache: CacheConfig{
					Directory:  "custom/audio",
					MaxEntries: 80,
					MaxAgeDays: 14,
				},
				Prefetch: PrefetchConfig{
					IntervalHours:        6,
					BackgroundRestricted: true,
				},
				Network: NetworkConfig{
					ProbeURL:  "https://probe.example.com/204",
					Transport: "wifi",
				},
			},
		},
		{
			name: "partial config with missing fields uses defaults",
			configContent: `
api:
  base_url: https://api.example.com
`,
			useExplicitPath: true,
			want: &Config{
				Storage: StorageConfig{
					Path: filepath.Join("data", "phraseloop.db"),
				},
				API: APIConfig{
					BaseURL: "https://api.example.com",
				},
				Session: SessionConfig{
					DebounceMs:     500,
					StalenessHours: 24,
					FetchLimit:     10,
				},
				Queue: QueueConfig{
					MaxSize:    100,
					MaxRetries: 3,
				},
				Cache: CacheConfig{
					Directory:  filepath.Join("data", "audio"),
					MaxEntries: 40,
					MaxAgeDays: 7,
				},
				Prefetch: PrefetchConfig{
					IntervalHours: 24,
				},
				Network: NetworkConfig{
					ProbeURL: "https://connectivity.phraseloop.app/generate_204",
				},
			},
		},
		{
			name: "no config file uses defaults with environment overrides",
			env: map[string]string{
				"PHRASELOOP_API_URL":           "https://env.example.com",
				"PHRASELOOP_NETWORK_TRANSPORT": "cellular",
			},
			want: &Config{
				Storage: StorageConfig{
					Path: filepath.Join("data", "phraseloop.db"),
				},
				API: APIConfig{
					BaseURL: "https://env.example.com",
				},
				Session: SessionConfig{
					DebounceMs:     500,
					StalenessHours: 24,
					FetchLimit:     10,
				},
				Queue: QueueConfig{
					MaxSize:    100,
					MaxRetries: 3,
				},
				Cache: CacheConfig{
					Directory:  filepath.Join("data", "audio"),
					MaxEntries: 40,
					MaxAgeDays: 7,
				},
				Prefetch: PrefetchConfig{
					IntervalHours: 24,
				},
				Network: NetworkConfig{
					ProbeURL:  "https://connectivity.phraseloop.app/generate_204",
					Transport: "cellular",
				},
			},
		},
		{
			name:            "invalid YAML format",
			configContent:   "storage: [unclosed",
			useExplicitPath: true,
			wantErr:         true,
			wantErrorContains: []string{
				"configuration file found but could not be read",
			},
		},
		{
			name: "missing api base url fails validation",
			configContent: `
storage:
  path: custom/store.db
`,
			useExplicitPath: true,
			wantErr:         true,
			wantErrorContains: []string{
				"invalid configuration",
				"base_url",
			},
		},
		{
			name: "malformed api base url fails validation",
			configContent: `
api:
  base_url: not-a-url
`,
			useExplicitPath: true,
			wantErr:         true,
			wantErrorContains: []string{
				"invalid configuration",
				"base_url",
			},
		},
		{
			name: "unknown network transport fails validation",
			configContent: `
api:
  base_url: https://api.example.com
network:
  transport: ethernet
`,
			useExplicitPath: true,
			wantErr:         true,
			wantErrorContains: []string{
				"invalid configuration",
				"transport",
			},
		},
		{
			name: "non-positive queue size fails validation",
			configContent: `
api:
  base_url: https://api.example.com
queue:
  max_size: 0
`,
			useExplicitPath: true,
			wantErr:         true,
			wantErrorContains: []string{
				"invalid configuration",
				"max_size",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()

			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			var configPath string
			if tt.useExplicitPath {
				configPath = filepath.Join(tempDir, "config.yml")
				err := os.WriteFile(configPath, []byte(tt.configContent), 0644)
				require.NoError(t, err)
			} else {
				originalDir, err := os.Getwd()
				require.NoError(t, err)
				defer func() {
					err := os.Chdir(originalDir)
					require.NoError(t, err)
				}()

				err = os.Chdir(tempDir)
				require.NoError(t, err)
			}

			got, err := Load(configPath)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
				for _, wantMsg := range tt.wantErrorContains {
					assert.Contains(t, err.Error(), wantMsg)
				}
				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSessionConfig_Durations(t *testing.T) {
	cfg := SessionConfig{DebounceMs: 500, StalenessHours: 24}
	assert.Equal(t, "500ms", cfg.Debounce().String())
	assert.Equal(t, "24h0m0s", cfg.Staleness().String())
}
