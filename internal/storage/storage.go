// Package storage manages the uploaded image files that stories reference
// through their imageUrl field.  Files are addressed by a generated filename;
// the public URL is composed by the caller from configuration.  Two backends
// exist: plain local disk and an S3-compatible object store.
package storage

import (
	"context"
	"errors"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/google/uuid"
)

// ErrAssetNotFound reports a delete or lookup against a filename that is not
// in the store.  Deletion is expected to be idempotent, so callers usually
// treat this as a non-fatal outcome rather than a failure.
var ErrAssetNotFound = errors.New("asset not found")

// AssetStore is the interface both backends implement.
type AssetStore interface {
	// Save stores the bytes read from r under filename.
	Save(ctx context.Context, filename string, r io.Reader) error
	// Remove deletes the named file, returning ErrAssetNotFound when it is
	// already absent.
	Remove(ctx context.Context, filename string) error
}

// NewFilename generates a unique storage name for an upload, keeping the
// original extension so the served file gets a sensible content type.
func NewFilename(original string) string {
	ext := strings.ToLower(path.Ext(original))
	return uuid.NewString() + ext
}

// FilenameFromURL extracts the final path component of an asset URL,
// dropping any directories and query parameters.  The result is safe to use
// as a store key: it can never escape upward through the path.
func FilenameFromURL(raw string) string {
	if raw == "" {
		return ""
	}
	if u, err := url.Parse(raw); err == nil && u.Path != "" {
		raw = u.Path
	}
	name := path.Base(raw)
	if name == "." || name == "/" {
		return ""
	}
	return name
}
