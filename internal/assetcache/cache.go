// Package assetcache maintains a bounded on-device cache of downloaded audio
// clips, with a manifest in the key-value store and least-recently-used
// eviction.
package assetcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/rnakata/phraseloop/internal/blob"
	"github.com/rnakata/phraseloop/internal/storage"
)

const manifestKey = "audio:manifest"

const (
	// DefaultMaxEntries caps the manifest size after a trim pass.
	DefaultMaxEntries = 40

	// DefaultMaxAge is how long an unused entry survives a trim pass.
	DefaultMaxAge = 7 * 24 * time.Hour
)

// Entry is one cached asset in the manifest, keyed by sanitized asset id.
type Entry struct {
	LocalPath  string    `json:"localPath"`
	LastUsedAt time.Time `json:"lastUsedAt"`
}

// Cache materializes remote audio assets into local files and bounds their
// disk footprint. The interactive player and the background prefetcher both
// funnel through this API, so download-once checks and eviction are applied
// consistently regardless of caller.
type Cache struct {
	kv     storage.KeyValueStore
	blobs  blob.Store
	dir    string
	now    func() time.Time
	logger *slog.Logger
}

// New creates a Cache storing files under dir.
func New(kv storage.KeyValueStore, blobs blob.Store, dir string) *Cache {
	return &Cache{
		kv:     kv,
		blobs:  blobs,
		dir:    dir,
		now:    time.Now,
		logger: slog.Default(),
	}
}

// SanitizeID maps a caller-supplied asset id through a whitelist filter so it
// is always a safe path component. Anything outside [A-Za-z0-9_-] becomes an
// underscore.
func SanitizeID(id string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, id)
}

func (c *Cache) localPath(id, assetURL string) string {
	ext := ".mp3"
	if parsed, err := url.Parse(assetURL); err == nil {
		if e := path.Ext(parsed.Path); e != "" {
			ext = e
		}
	}
	return filepath.Join(c.dir, SanitizeID(id)+ext)
}

// Ensure returns a local path for the asset, downloading it first if no
// local file exists (download-once semantics). Ensure does not update
// recency; callers record actual use through Touch so prefetching does not
// bias eviction order.
func (c *Cache) Ensure(ctx context.Context, id, assetURL string) (string, error) {
	localPath := c.localPath(id, assetURL)

	exists, err := c.blobs.Exists(localPath)
	if err != nil {
		return "", fmt.Errorf("blobs.Exists() > %w", err)
	}
	if exists {
		return localPath, nil
	}

	if err := c.blobs.Download(ctx, assetURL, localPath); err != nil {
		return "", fmt.Errorf("blobs.Download() > %w", err)
	}

	manifest, err := c.loadManifest(ctx)
	if err != nil {
		return "", fmt.Errorf("c.loadManifest() > %w", err)
	}
	manifest[SanitizeID(id)] = Entry{LocalPath: localPath, LastUsedAt: c.now()}
	if err := c.saveManifest(ctx, manifest); err != nil {
		return "", fmt.Errorf("c.saveManifest() > %w", err)
	}
	return localPath, nil
}

// Touch records a use of the asset, refreshing its recency in the manifest.
// Callers invoke it before each playback.
func (c *Cache) Touch(ctx context.Context, id, localPath string) error {
	manifest, err := c.loadManifest(ctx)
	if err != nil {
		return fmt.Errorf("c.loadManifest() > %w", err)
	}
	manifest[SanitizeID(id)] = Entry{LocalPath: localPath, LastUsedAt: c.now()}
	if err := c.saveManifest(ctx, manifest); err != nil {
		return fmt.Errorf("c.saveManifest() > %w", err)
	}
	return nil
}

// Trim enforces the cache bounds in two phases: first every entry older than
// maxAge (or with a corrupt empty path) is removed along with its file, then
// the oldest remaining entries are evicted one at a time until at most
// maxEntries are left. File deletions are best-effort; a missing file is not
// an error.
func (c *Cache) Trim(ctx context.Context, maxEntries int, maxAge time.Duration) error {
	manifest, err := c.loadManifest(ctx)
	if err != nil {
		return fmt.Errorf("c.loadManifest() > %w", err)
	}

	now := c.now()
	for key, entry := range manifest {
		if entry.LocalPath == "" {
			delete(manifest, key)
			continue
		}
		if now.Sub(entry.LastUsedAt) > maxAge {
			c.removeEntry(manifest, key)
		}
	}

	for len(manifest) > maxEntries {
		oldestKey := ""
		var oldestAt time.Time
		for key, entry := range manifest {
			if oldestKey == "" || entry.LastUsedAt.Before(oldestAt) {
				oldestKey = key
				oldestAt = entry.LastUsedAt
			}
		}
		c.removeEntry(manifest, oldestKey)
	}

	if err := c.saveManifest(ctx, manifest); err != nil {
		return fmt.Errorf("c.saveManifest() > %w", err)
	}
	return nil
}

// Entries returns the manifest contents.
func (c *Cache) Entries(ctx context.Context) (map[string]Entry, error) {
	return c.loadManifest(ctx)
}

func (c *Cache) removeEntry(manifest map[string]Entry, key string) {
	entry := manifest[key]
	if entry.LocalPath != "" {
		if err := c.blobs.Delete(entry.LocalPath); err != nil {
			c.logger.Warn("failed to delete evicted audio file",
				slog.String("path", entry.LocalPath),
				slog.Any("error", err),
			)
		}
	}
	delete(manifest, key)
}

func (c *Cache) loadManifest(ctx context.Context) (map[string]Entry, error) {
	contents, err := c.kv.Get(ctx, manifestKey)
	if errors.Is(err, storage.ErrNotFound) {
		return map[string]Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("kv.Get(%s) > %w", manifestKey, err)
	}

	var manifest map[string]Entry
	if err := json.Unmarshal(contents, &manifest); err != nil {
		c.logger.Warn("discarding corrupt audio manifest", slog.Any("error", err))
		return map[string]Entry{}, nil
	}
	if manifest == nil {
		manifest = map[string]Entry{}
	}
	return manifest, nil
}

func (c *Cache) saveManifest(ctx context.Context, manifest map[string]Entry) error {
	contents, err := json.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("json.Marshal() > %w", err)
	}
	if err := c.kv.Set(ctx, manifestKey, contents); err != nil {
		return fmt.Errorf("kv.Set(%s) > %w", manifestKey, err)
	}
	return nil
}
