// Package memory is an in-process storage.DatasetRepository.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/datainsight-lab/datainsight/internal/core/storage"
)

// Store keeps datasets in a map. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*storage.Entry
}

// New creates an empty store.
func New() *Store {
	return &Store{entries: make(map[string]*storage.Entry)}
}

func (s *Store) Save(_ context.Context, entry *storage.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[entry.ID]; exists {
		return fmt.Errorf("%w: %s", storage.ErrDuplicate, entry.ID)
	}
	cp := *entry
	s.entries[entry.ID] = &cp
	return nil
}

func (s *Store) Get(_ context.Context, id string) (*storage.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, id)
	}
	cp := *e
	return &cp, nil
}

func (s *Store) List(_ context.Context) ([]storage.Metadata, error) {
	s.mu.RLock()
	out := make([]storage.Metadata, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e.Metadata)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[id]; !ok {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, id)
	}
	delete(s.entries, id)
	return nil
}

func (s *Store) DeleteOlderThan(_ context.Context, cutoff time.Time) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed []string
	for id, e := range s.entries {
		if e.CreatedAt.Before(cutoff) {
			delete(s.entries, id)
			removed = append(removed, id)
		}
	}
	sort.Strings(removed)
	return removed, nil
}

func (s *Store) SetInsights(_ context.Context, id, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, id)
	}
	e.Insights = text
	return nil
}

func (s *Store) Ping(context.Context) error { return nil }
