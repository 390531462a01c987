// Package catalog is the read-through front of the dataset repository:
// an LRU of decoded datasets, deduplicated loads and retention sweeps.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/datainsight-lab/datainsight/internal/core/dataset"
	"github.com/datainsight-lab/datainsight/internal/core/storage"
)

// DefaultCacheCapacity is the number of decoded datasets kept in memory.
const DefaultCacheCapacity = 64

// Catalog creates, loads and removes datasets.
type Catalog struct {
	repo      storage.DatasetRepository
	cache     *LRUCache
	loadGroup singleflight.Group

	nowFn func() time.Time
	idFn  func() string
}

// New creates a catalog over repo.
func New(repo storage.DatasetRepository, cacheCapacity int) *Catalog {
	if repo == nil {
		panic("catalog: repository must not be nil")
	}
	if cacheCapacity <= 0 {
		cacheCapacity = DefaultCacheCapacity
	}
	return &Catalog{
		repo:  repo,
		cache: NewLRUCache(cacheCapacity),
		nowFn: func() time.Time { return time.Now().UTC() },
		idFn:  func() string { return uuid.New().String() },
	}
}

// Create stores a new dataset under a fresh ID.
func (c *Catalog) Create(ctx context.Context, name, source string, ds *dataset.Dataset) (*storage.Entry, error) {
	entry := storage.NewEntry(c.idFn(), name, source, c.nowFn(), ds)
	if err := c.repo.Save(ctx, entry); err != nil {
		return nil, fmt.Errorf("saving dataset: %w", err)
	}
	c.cache.Put(entry)

	slog.Info("[Catalog] Dataset created",
		"dataset_id", entry.ID,
		"source", source,
		"rows", entry.Rows,
		"columns", entry.Columns,
	)
	return entry, nil
}

// Get returns a dataset from cache or repository.
// Concurrent misses for the same ID share one repository load.
func (c *Catalog) Get(ctx context.Context, id string) (*storage.Entry, error) {
	if e := c.cache.Get(id); e != nil {
		return e, nil
	}

	result, err, shared := c.loadGroup.Do(id, func() (interface{}, error) {
		if e := c.cache.Get(id); e != nil {
			return e, nil
		}
		e, err := c.repo.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		c.cache.Put(e)
		return e, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		slog.Debug("[Catalog] Shared dataset load", "dataset_id", id)
	}

	cp := *result.(*storage.Entry)
	return &cp, nil
}

// List returns metadata of every dataset, newest first.
func (c *Catalog) List(ctx context.Context) ([]storage.Metadata, error) {
	return c.repo.List(ctx)
}

// Delete removes a dataset.
func (c *Catalog) Delete(ctx context.Context, id string) error {
	defer c.cache.Invalidate(id)
	if err := c.repo.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("[Catalog] Dataset deleted", "dataset_id", id)
	return nil
}

// SetInsights stores the latest insights text for a dataset.
func (c *Catalog) SetInsights(ctx context.Context, id, text string) error {
	defer c.cache.Invalidate(id)
	return c.repo.SetInsights(ctx, id, text)
}

// Expire removes datasets created before cutoff.
func (c *Catalog) Expire(ctx context.Context, cutoff time.Time) ([]string, error) {
	ids, err := c.repo.DeleteOlderThan(ctx, cutoff)
	for _, id := range ids {
		c.cache.Invalidate(id)
	}
	return ids, err
}

// Ping checks the repository.
func (c *Catalog) Ping(ctx context.Context) error {
	return c.repo.Ping(ctx)
}
