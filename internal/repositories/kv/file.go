package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/orgball2608/reels-client/pkg/config"
	"github.com/orgball2608/reels-client/pkg/logger"
)

// FileRepository keeps all entries in a single JSON document. Every write
// replaces the document through a temp file and a rename so a crash never
// leaves half a session behind.
type FileRepository struct {
	path   string
	logger logger.Logger
	mu     sync.Mutex
}

func NewFile(path string, log logger.Logger) *FileRepository {
	return &FileRepository{
		path:   path,
		logger: log.WithComponent("FileKV"),
	}
}

func NewFileRepository(cfg *config.Config, log logger.Logger) *FileRepository {
	return NewFile(cfg.Storage.Path, log)
}

var _ Repository = (*FileRepository)(nil)

func (r *FileRepository) Get(_ context.Context, key string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return "", err
	}
	v, ok := doc[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (r *FileRepository) SetAll(_ context.Context, entries map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.loadForWrite()
	if err != nil {
		return err
	}
	for k, v := range entries {
		doc[k] = v
	}
	return r.save(doc)
}

func (r *FileRepository) DeleteAll(_ context.Context, keys []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.loadForWrite()
	if err != nil {
		return err
	}
	for _, k := range keys {
		delete(doc, k)
	}
	return r.save(doc)
}

// errCorrupt marks a document that exists but does not decode.
var errCorrupt = errors.New("corrupt store document")

// loadForWrite starts over from an empty document when the current one is
// corrupt, so a damaged file never blocks a later login or logout.
func (r *FileRepository) loadForWrite() (map[string]string, error) {
	doc, err := r.load()
	if errors.Is(err, errCorrupt) {
		r.logger.Warn("Discarding unreadable store document", "path", r.path, "error", err)
		return map[string]string{}, nil
	}
	return doc, err
}

func (r *FileRepository) load() (map[string]string, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", r.path, err)
	}
	if len(data) == 0 {
		return map[string]string{}, nil
	}

	doc := map[string]string{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errCorrupt, r.path, err)
	}
	return doc, nil
}

func (r *FileRepository) save(doc map[string]string) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".kv-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		r.logger.Warn("Failed to restrict store permissions", "path", tmpName, "error", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", r.path, err)
	}
	return nil
}
