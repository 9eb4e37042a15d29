// Package storage keeps uploaded images on a filesystem and serves them
// under the /uploads URL prefix.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/Sirpyerre/social-network/internal/core/domain"
)

// URLPrefix is the public path uploaded files are served from.
const URLPrefix = "/uploads"

// sniffLen is how much of an upload is read to detect its type.
const sniffLen = 3072

var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// LocalStore writes uploads under a root directory, one subdirectory per
// media kind.
type LocalStore struct {
	fs   afero.Fs
	root string
}

// NewLocalStore roots the store at dir on the OS filesystem.
func NewLocalStore(dir string) *LocalStore {
	return NewStore(afero.NewOsFs(), dir)
}

// NewStore roots the store at dir on fsys.
func NewStore(fsys afero.Fs, dir string) *LocalStore {
	return &LocalStore{fs: fsys, root: filepath.Clean(dir)}
}

// Root is the directory files are written to.
func (s *LocalStore) Root() string { return s.root }

// Save detects the image type from content, writes it under a fresh unique
// name and returns its public reference, e.g. /uploads/posts/post-<uuid>.png.
func (s *LocalStore) Save(_ context.Context, kind domain.MediaKind, r io.Reader) (string, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]

	ext, ok := allowedTypes[mimetype.Detect(head).String()]
	if !ok {
		return "", domain.ErrUnsupportedMedia
	}

	dir := filepath.Join(s.root, string(kind))
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := fmt.Sprintf("%s-%s%s", kind.FilePrefix(), uuid.NewString(), ext)
	full := filepath.Join(dir, name)

	f, err := s.fs.Create(full)
	if err != nil {
		return "", fmt.Errorf("create upload: %w", err)
	}

	// Read at most one byte past the limit so oversized bodies are rejected
	// without buffering them.
	limit := kind.MaxBytes() - int64(n)
	written, err := io.Copy(f, io.MultiReader(bytes.NewReader(head), io.LimitReader(r, limit+1)))
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = s.fs.Remove(full)
		return "", fmt.Errorf("write upload: %w", err)
	}
	if written > kind.MaxBytes() {
		_ = s.fs.Remove(full)
		return "", domain.ErrMediaTooLarge
	}

	return path.Join(URLPrefix, string(kind), name), nil
}

// Delete removes the file behind ref. A file that is already gone is not an
// error.
func (s *LocalStore) Delete(_ context.Context, ref string) error {
	full, err := s.resolve(ref)
	if err != nil {
		return err
	}
	if err := s.fs.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete upload: %w", err)
	}
	return nil
}

// resolve maps a public reference back to a path inside root, refusing
// anything that would escape it.
func (s *LocalStore) resolve(ref string) (string, error) {
	rel, ok := strings.CutPrefix(ref, URLPrefix+"/")
	if !ok {
		return "", fmt.Errorf("not an upload reference: %q", ref)
	}
	if rel == "" || strings.Contains(rel, "..") {
		return "", fmt.Errorf("invalid upload reference: %q", ref)
	}
	return filepath.Join(s.root, filepath.FromSlash(path.Clean(rel))), nil
}
