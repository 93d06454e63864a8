// Package store persists what a static render pass learns about the site so a
// later per-request render can address items without walking every
// collection again.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/natefinch/atomic"

	"github.com/goliatone/go-contentkit/pkg/content"
	"github.com/goliatone/go-contentkit/pkg/slug"
)

// SnapshotVersion is the format version written by this package.
const SnapshotVersion = 1

// ErrSnapshotNotFound is returned by Load when nothing was saved yet.
var ErrSnapshotNotFound = errors.New("store: snapshot not found")

// Snapshot is the precomputed state of a static pass.
type Snapshot struct {
	Version         int                               `json:"version"`
	CreatedAt       time.Time                         `json:"createdAt"`
	Tables          slug.Tables                       `json:"tables"`
	Navigations     []content.Navigation              `json:"navigations,omitempty"`
	NavigationItems map[string]content.NavigationItem `json:"navigationItems,omitempty"`
	Redirects       []content.Redirect                `json:"redirects,omitempty"`
	Routes          []string                          `json:"routes,omitempty"`
}

// Store loads and saves snapshots.
type Store interface {
	Load(ctx context.Context) (Snapshot, error)
	Save(ctx context.Context, snapshot Snapshot) error
}

// FileStore keeps the snapshot in a JSON file replaced atomically on save.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the snapshot file location.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the snapshot file.
func (s *FileStore) Load(ctx context.Context) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Snapshot{}, ErrSnapshotNotFound
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("store: read %s: %w", s.path, err)
	}
	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return Snapshot{}, fmt.Errorf("store: decode %s: %w", s.path, err)
	}
	if snapshot.Version != SnapshotVersion {
		return Snapshot{}, fmt.Errorf("store: unsupported snapshot version %d", snapshot.Version)
	}
	return snapshot, nil
}

// Save writes the snapshot, creating parent directories as needed.
func (s *FileStore) Save(ctx context.Context, snapshot Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(stamp(snapshot), "", "  ")
	if err != nil {
		return fmt.Errorf("store: encode snapshot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("store: create directory: %w", err)
	}
	if err := atomic.WriteFile(s.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("store: write %s: %w", s.path, err)
	}
	return nil
}

// MemoryStore keeps the snapshot in memory.
type MemoryStore struct {
	mu       sync.RWMutex
	snapshot *Snapshot
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(context.Context) (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return Snapshot{}, ErrSnapshotNotFound
	}
	return *s.snapshot, nil
}

func (s *MemoryStore) Save(_ context.Context, snapshot Snapshot) error {
	// The stored copy shares no maps with the caller.
	data, err := json.Marshal(stamp(snapshot))
	if err != nil {
		return fmt.Errorf("store: encode snapshot: %w", err)
	}
	var copied Snapshot
	if err := json.Unmarshal(data, &copied); err != nil {
		return fmt.Errorf("store: decode snapshot: %w", err)
	}
	s.mu.Lock()
	s.snapshot = &copied
	s.mu.Unlock()
	return nil
}

func stamp(snapshot Snapshot) Snapshot {
	snapshot.Version = SnapshotVersion
	if snapshot.CreatedAt.IsZero() {
		snapshot.CreatedAt = time.Now().UTC()
	}
	return snapshot
}
