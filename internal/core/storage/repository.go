package storage

import (
	"context"
	"errors"
	"time"

	"github.com/datainsight-lab/datainsight/internal/core/dataset"
)

var (
	// ErrNotFound is returned when no dataset has the requested ID.
	ErrNotFound = errors.New("dataset not found")

	// ErrDuplicate is returned when a dataset with the same ID already exists.
	ErrDuplicate = errors.New("dataset already exists")
)

// Metadata describes a stored dataset without its records.
type Metadata struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Source    string    `json:"source"` // csv | json | xlsx | sample
	Rows      int       `json:"rows"`
	Columns   int       `json:"columns"`
	CreatedAt time.Time `json:"created_at"`
}

// Entry is a stored dataset with its metadata and the latest insights text.
type Entry struct {
	Metadata
	Data     *dataset.Dataset `json:"-"`
	Insights string           `json:"insights,omitempty"`
}

// NewEntry fills the row and column counts from the dataset.
func NewEntry(id, name, source string, createdAt time.Time, ds *dataset.Dataset) *Entry {
	return &Entry{
		Metadata: Metadata{
			ID:        id,
			Name:      name,
			Source:    source,
			Rows:      ds.Len(),
			Columns:   len(ds.Columns()),
			CreatedAt: createdAt,
		},
		Data: ds,
	}
}

// DatasetRepository defines the interface for storing and retrieving datasets.
type DatasetRepository interface {
	// Save stores a new dataset. Returns ErrDuplicate if the ID is taken.
	Save(ctx context.Context, entry *Entry) error

	// Get returns the dataset with the given ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*Entry, error)

	// List returns metadata for every dataset, newest first.
	List(ctx context.Context) ([]Metadata, error)

	// Delete removes a dataset. Returns ErrNotFound if it does not exist.
	Delete(ctx context.Context, id string) error

	// DeleteOlderThan removes datasets created before cutoff and returns their IDs.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) ([]string, error)

	// SetInsights replaces the stored insights text of a dataset.
	SetInsights(ctx context.Context, id, text string) error

	// Ping checks that the backing store is reachable.
	Ping(ctx context.Context) error
}
