// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package filestore persists uploaded book images on local disk.
//
// # Architecture
//
// The store writes under a configured root directory and hands back paths
// relative to that root; only the relative path is persisted on the book row,
// so the root can move between environments without data migration.
package filestore

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/taibuivan/libris/internal/platform/apperr"
)

// booksSubdir is where book cover images live under the root.
const booksSubdir = "books"

// sniffLen is how many leading bytes content detection may inspect.
const sniffLen = 512

// imageExtensions maps detected MIME types onto file extensions.
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ErrNotAnImage is returned when the uploaded bytes are not a recognized
// image format.
var ErrNotAnImage = apperr.BadRequest("Uploaded file is not a valid image.")

// Store writes files below a fixed root directory.
type Store struct {
	root string
}

// New creates a Store rooted at dir, creating the directory tree if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(dir, booksSubdir), 0o755); err != nil {
		return nil, fmt.Errorf("filestore: failed to create %s: %w", dir, err)
	}
	return &Store{root: dir}, nil
}

// SaveBookImage stores the image bytes from reader and returns the path
// relative to the store root, e.g. "books/0192ab….jpg".
//
// The content is sniffed; non-image payloads are rejected with [ErrNotAnImage].
func (store *Store) SaveBookImage(reader io.Reader) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("filestore: failed to read upload: %w", err)
	}

	head := data
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}
	extension, ok := imageExtensions[http.DetectContentType(head)]
	if !ok {
		return "", ErrNotAnImage
	}

	name, err := uuid.NewV7()
	if err != nil {
		name = uuid.New()
	}

	relativePath := filepath.Join(booksSubdir, name.String()+extension)
	if err := os.WriteFile(filepath.Join(store.root, relativePath), data, 0o644); err != nil {
		return "", fmt.Errorf("filestore: failed to write image: %w", err)
	}

	return filepath.ToSlash(relativePath), nil
}

// Remove deletes a previously stored file by its relative path.
// A missing file is not an error.
func (store *Store) Remove(relativePath string) error {
	err := os.Remove(filepath.Join(store.root, relativePath))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("filestore: failed to remove %s: %w", relativePath, err)
	}
	return nil
}
