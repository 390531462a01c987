package export

import (
	"bytes"
	"context"
	"fmt"

	"github.com/datainsight-lab/datainsight/internal/catalog"
)

// File is an encoded export ready to be served.
type File struct {
	Name      string
	MediaType string
	Body      []byte
}

// Service encodes catalog datasets for download.
type Service struct {
	catalog *catalog.Catalog
}

// NewService creates a new export service.
func NewService(cat *catalog.Catalog) *Service {
	if cat == nil {
		panic("export: catalog must not be nil")
	}
	return &Service{catalog: cat}
}

// Export loads the dataset and encodes it. The XLSX workbook carries the
// dataset's latest insights text.
func (s *Service) Export(ctx context.Context, id string, format Format) (*File, error) {
	entry, err := s.catalog.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := Write(&buf, entry.Data, format, entry.Insights); err != nil {
		return nil, fmt.Errorf("exporting dataset %s as %s: %w", id, format, err)
	}
	return &File{
		Name:      FileName(entry.Name, format),
		MediaType: format.MediaType(),
		Body:      buf.Bytes(),
	}, nil
}

// FileName derives a download name from the dataset name.
func FileName(name string, format Format) string {
	clean := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			clean = append(clean, r)
		default:
			clean = append(clean, '_')
		}
	}
	if len(clean) == 0 {
		clean = []rune("dataset")
	}
	return string(clean) + "." + string(format)
}
