package v1

import (
	"fmt"

	"github.com/datainsight-lab/datainsight/internal/core/aggregation"
	"github.com/datainsight-lab/datainsight/internal/core/chart"
	httperr "github.com/datainsight-lab/datainsight/internal/core/errors"
	"github.com/datainsight-lab/datainsight/internal/render"
)

// AggregateRequest asks for a grouped reduction of a dataset.
type AggregateRequest struct {
	GroupBy     string `json:"group_by"`
	ValueColumn string `json:"value_column,omitempty"`
	Op          string `json:"op,omitempty"`
	TopN        int    `json:"top_n,omitempty"`
}

// Validate checks the request shape. Column checks happen against the dataset.
func (r *AggregateRequest) Validate() error {
	if r.GroupBy == "" {
		return fmt.Errorf("group_by is required")
	}
	if r.Op == "" {
		r.Op = aggregation.OpSum
		if r.ValueColumn == "" {
			r.Op = aggregation.OpCount
		}
	}
	if !aggregation.ValidOperator(r.Op) {
		return fmt.Errorf("unsupported op %q", r.Op)
	}
	if r.TopN < 0 {
		return fmt.Errorf("top_n must not be negative")
	}
	return nil
}

// ChartRequest is a chart spec plus an optional backend order for this request only.
type ChartRequest struct {
	chart.Spec
	Backends []string `json:"backends,omitempty"`
}

// ValidateResponse reports a successful validation.
type ValidateResponse struct {
	Valid bool `json:"valid"`
}

// ChartResponse is the outcome of one orchestrated render.
// Body holds text, or base64 when Encoding says so.
type ChartResponse struct {
	State     render.State      `json:"state"`
	Backend   string            `json:"backend,omitempty"`
	MediaType string            `json:"media_type,omitempty"`
	Encoding  string            `json:"encoding,omitempty"`
	Body      string            `json:"body,omitempty"`
	Failures  []render.Failure  `json:"failures,omitempty"`
	View      *aggregation.View `json:"view,omitempty"`
}

// NewChartResponse flattens an outcome for the wire.
func NewChartResponse(out render.Outcome, view *aggregation.View) ChartResponse {
	resp := ChartResponse{
		State:    out.State,
		Backend:  out.Backend,
		Failures: out.Failures,
		View:     view,
	}
	if out.Artifact != nil {
		resp.MediaType = out.Artifact.MediaType
		resp.Encoding = out.Artifact.Encoding
		resp.Body = out.Artifact.String()
	}
	return resp
}

// DashboardRequest names the presets to render. Empty means every preset.
type DashboardRequest struct {
	Presets []string `json:"presets,omitempty"`
}

// DashboardChart is one slot of a dashboard: a chart or the error that stopped it.
type DashboardChart struct {
	Preset string                 `json:"preset"`
	Title  string                 `json:"title"`
	Chart  *ChartResponse         `json:"chart,omitempty"`
	Error  *httperr.ErrorResponse `json:"error,omitempty"`
}

// DashboardResponse keeps the requested preset order.
type DashboardResponse struct {
	DatasetID string           `json:"dataset_id"`
	Charts    []DashboardChart `json:"charts"`
}

// PresetListResponse lists loaded presets.
type PresetListResponse struct {
	Presets []chart.Preset `json:"presets"`
}

// BackendStatus is one registry slot.
type BackendStatus struct {
	Name     string `json:"name"`
	Position int    `json:"position"`
	Enabled  bool   `json:"enabled"`
}

// BackendsResponse lists the fallback chain in order.
type BackendsResponse struct {
	Backends []BackendStatus `json:"backends"`
}
