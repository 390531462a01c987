package v1

import (
	"time"

	"github.com/datainsight-lab/datainsight/internal/core/dataset"
	"github.com/datainsight-lab/datainsight/internal/core/storage"
)

// DefaultPreviewRows is the number of records echoed back with a dataset.
const DefaultPreviewRows = 5

// DatasetResponse describes one stored dataset.
type DatasetResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Source      string           `json:"source"`
	Rows        int              `json:"rows"`
	CreatedAt   time.Time        `json:"created_at"`
	Schema      []dataset.Column `json:"schema"`
	Preview     []dataset.Record `json:"preview,omitempty"`
	HasInsights bool             `json:"has_insights"`
}

// NewDatasetResponse builds the response for an entry with up to preview records.
func NewDatasetResponse(e *storage.Entry, preview int) DatasetResponse {
	resp := DatasetResponse{
		ID:          e.ID,
		Name:        e.Name,
		Source:      e.Source,
		Rows:        e.Rows,
		CreatedAt:   e.CreatedAt,
		HasInsights: e.Insights != "",
	}
	if e.Data != nil {
		resp.Schema = e.Data.Columns()
		if preview > 0 {
			resp.Preview = e.Data.Head(preview)
		}
	}
	return resp
}

// DatasetListResponse lists stored datasets, newest first.
type DatasetListResponse struct {
	Datasets []storage.Metadata `json:"datasets"`
	Count    int                `json:"count"`
}
