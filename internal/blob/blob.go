// Package blob abstracts the photo storage service.
//
// The core only ever sees a URL: handlers push an uploaded image into a
// Store and put the returned URL on the athlete's profile. The default
// implementation writes to a local directory that the server exposes at
// /uploads/; a cloud-backed Store could replace it without touching any
// handler.
package blob

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rs/xid"
)

// Store persists opaque binary blobs and makes them reachable by URL.
type Store interface {
	// Put stores the blob read from r and returns the URL it is served
	// under. name is only consulted for its extension.
	Put(ctx context.Context, name string, r io.Reader) (string, error)
}

// LocalStore is a Store writing files into a directory on disk.
type LocalStore struct {
	dir     string
	baseURL string
}

// NewLocalStore creates a LocalStore rooted at dir, serving files under
// baseURL (e.g. "/uploads"). The directory is created if missing.
func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("blob: creating upload dir %s: %w", dir, err)
	}
	return &LocalStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Put writes the blob under a fresh xid-based filename, keeping the
// original extension, and returns its public URL.
func (s *LocalStore) Put(ctx context.Context, name string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	filename := xid.New().String() + ext

	f, err := os.Create(filepath.Join(s.dir, filename))
	if err != nil {
		return "", fmt.Errorf("blob: creating file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("blob: writing file: %w", err)
	}

	return path.Join(s.baseURL, filename), nil
}
