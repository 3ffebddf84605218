package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"shoplens/internal/analytics"
	"shoplens/internal/records"
)

// Store holds the cleaned dataset and its derived snapshot, keyed by the
// content fingerprint of the raw files. Refresh recomputes only when the
// fingerprint changed, which gives the memoization contract: identical input
// is never recomputed. Safe for concurrent readers.
type Store struct {
	dir      string
	rowLimit int
	logger   *slog.Logger

	mu          sync.RWMutex
	fingerprint string
	data        records.Dataset
	snapshot    *analytics.Snapshot
}

// NewStore creates a store reading collections from dir with the given
// uniform row cap (0 = unbounded).
func NewStore(dir string, rowLimit int, logger *slog.Logger) *Store {
	return &Store{dir: dir, rowLimit: rowLimit, logger: logger}
}

// Refresh reloads the raw collections and rebuilds the snapshot when the
// content fingerprint changed. It reports whether a recomputation happened.
func (s *Store) Refresh(ctx context.Context) (bool, error) {
	raw, fingerprint, err := Load(s.dir, s.rowLimit)
	if err != nil {
		return false, fmt.Errorf("failed to load dataset: %w", err)
	}

	s.mu.RLock()
	unchanged := s.snapshot != nil && s.fingerprint == fingerprint
	s.mu.RUnlock()
	if unchanged {
		s.logger.Debug("dataset unchanged, keeping cached snapshot",
			slog.String("fingerprint", fingerprint[:12]))
		return false, nil
	}

	data := raw.Clean()
	snapshot := analytics.BuildSnapshot(ctx, s.logger, data)

	s.mu.Lock()
	s.fingerprint = fingerprint
	s.data = data
	s.snapshot = snapshot
	s.mu.Unlock()

	s.logger.Info("dataset snapshot recomputed",
		slog.String("fingerprint", fingerprint[:12]),
		slog.Int("orders", len(data.Orders)),
		slog.Int("sessions", len(data.Sessions)),
		slog.Int("pageviews", len(data.Pageviews)))
	return true, nil
}

// Snapshot returns the current snapshot, nil before the first Refresh.
func (s *Store) Snapshot() *analytics.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Dataset returns the current cleaned dataset.
func (s *Store) Dataset() records.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

// Fingerprint returns the fingerprint of the currently loaded input.
func (s *Store) Fingerprint() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fingerprint
}
