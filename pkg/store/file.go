package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/matzehuels/servicescan/pkg/collector"
)

// FileStore keeps runs as JSON files in a directory, one file per run.
type FileStore struct {
	mu  sync.RWMutex
	dir string
}

var _ Store = (*FileStore)(nil)

// DefaultDir returns ~/.config/servicescan/runs.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "servicescan", "runs"), nil
}

// NewFileStore creates a file store in dir. An empty dir uses DefaultDir.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create run dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the directory holding the run files.
func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) runPath(runID string) string {
	return filepath.Join(s.dir, runID+".json")
}

func (s *FileStore) Save(ctx context.Context, res *collector.Result) error {
	if res.RunID == "" || strings.ContainsAny(res.RunID, `/\`) {
		return fmt.Errorf("invalid run id %q", res.RunID)
	}
	data, err := json.MarshalIndent(toDocument(res), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal run: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.runPath(res.RunID)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write run file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename run file: %w", err)
	}
	return nil
}

func (s *FileStore) Get(ctx context.Context, runID string) (*collector.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, err := s.read(s.runPath(runID))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return fromDocument(doc), nil
}

// Recent reads every run file. Unreadable files are skipped.
func (s *FileStore) Recent(ctx context.Context, limit int) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read run dir: %w", err)
	}

	var out []Summary
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		doc, err := s.read(filepath.Join(s.dir, e.Name()))
		if err != nil {
			continue
		}
		out = append(out, summaryOf(doc))
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CollectedAt.After(out[j].CollectedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *FileStore) Close(context.Context) error { return nil }

func (s *FileStore) read(path string) (runDocument, error) {
	var doc runDocument
	data, err := os.ReadFile(path)
	if err != nil {
		return doc, err
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("parse run file: %w", err)
	}
	return doc, nil
}
