package repo

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"

	perr "codemix/internal/platform/errors"
	"codemix/internal/services/learning/domain"
)

// File keeps the snapshot in one file, replaced atomically on save
type File struct {
	mu    sync.Mutex
	path  string
	codec Codec
}

// NewFile stores at path; the codec follows the extension
func NewFile(path string) *File {
	return &File{path: path, codec: CodecOf(path)}
}

// Kind implements Storage
func (f *File) Kind() string { return "file:" + string(f.codec) }

// Path is the snapshot location
func (f *File) Path() string { return f.path }

// Load implements Storage
func (f *File) Load(_ context.Context) (*domain.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "read snapshot")
	}
	return f.codec.Decode(b)
}

// Save implements Storage
func (f *File) Save(_ context.Context, s *domain.Snapshot) error {
	b, err := f.codec.Encode(s)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "create snapshot dir")
	}
	tmp, err := os.CreateTemp(dir, ".snapshot-*")
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "create temp snapshot")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "write snapshot")
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "sync snapshot")
	}
	if err := tmp.Close(); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "close snapshot")
	}
	return os.Rename(tmp.Name(), f.path)
}
