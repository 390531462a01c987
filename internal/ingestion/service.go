package ingestion

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/datainsight-lab/datainsight/internal/catalog"
	"github.com/datainsight-lab/datainsight/internal/core/dataset"
	"github.com/datainsight-lab/datainsight/internal/core/storage"
)

// Service turns uploads and generated samples into catalog datasets.
type Service struct {
	catalog          *catalog.Catalog
	maxBodySizeBytes int64
	maxRows          int
}

func NewService(cat *catalog.Catalog, maxBodySizeMB, maxRows int) *Service {
	if cat == nil {
		panic("ingestion: catalog must not be nil")
	}
	if maxBodySizeMB <= 0 {
		maxBodySizeMB = 50
	}
	if maxRows <= 0 {
		maxRows = DefaultMaxRows
	}
	return &Service{
		catalog:          cat,
		maxBodySizeBytes: int64(maxBodySizeMB) * 1024 * 1024,
		maxRows:          maxRows,
	}
}

// RegisterRoutes registers the ingestion routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.POST("/v1/datasets", s.UploadHandler)
	r.POST("/v1/datasets/sample", s.SampleHandler)
}

// Ingest parses r and stores the result under a fresh ID.
func (s *Service) Ingest(ctx context.Context, name string, format Format, r io.Reader) (*storage.Entry, error) {
	ds, err := Parse(r, format, s.maxRows)
	if err != nil {
		return nil, err
	}
	entry, err := s.catalog.Create(ctx, name, string(format), ds)
	if err != nil {
		return nil, err
	}
	slog.Info("[Ingestion] Dataset uploaded", "dataset_id", entry.ID, "name", name, "format", format, "rows", entry.Rows)
	return entry, nil
}

// Sample generates and stores the synthetic sales dataset.
func (s *Service) Sample(ctx context.Context, rows int, seed uint64) (*storage.Entry, error) {
	if rows <= 0 {
		rows = dataset.DefaultSampleRows
	}
	if rows > s.maxRows {
		return nil, tooManyRows(s.maxRows)
	}
	name := fmt.Sprintf("amostra_%d_%d", rows, seed)
	return s.catalog.Create(ctx, name, "sample", dataset.Sample(rows, seed))
}
