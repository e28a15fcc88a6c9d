// Package blob abstracts downloading remote resources to local files and
// managing the resulting files, so the cache engines stay host-agnostic.
package blob

import "context"

// Store downloads remote resources to local paths and manages local files.
type Store interface {
	// Download fetches url and writes the body to destPath.
	Download(ctx context.Context, url, destPath string) error
	Exists(path string) (bool, error)
	// Delete removes a local file. A missing file is not an error.
	Delete(path string) error
}
