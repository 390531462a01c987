// Package charting runs the chart pipeline: load a dataset, validate the
// spec, reduce the data to a view and walk the backend fallback chain.
package charting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/datainsight-lab/datainsight/internal/catalog"
	"github.com/datainsight-lab/datainsight/internal/core/aggregation"
	"github.com/datainsight-lab/datainsight/internal/core/chart"
	"github.com/datainsight-lab/datainsight/internal/core/dataset"
	"github.com/datainsight-lab/datainsight/internal/core/storage"
	"github.com/datainsight-lab/datainsight/internal/render"
)

// DefaultMaxConcurrency bounds the charts a dashboard renders at once.
const DefaultMaxConcurrency = 4

// ErrInvalidAggregate marks aggregate requests that do not fit the dataset.
var ErrInvalidAggregate = errors.New("invalid aggregate request")

// OutcomeRecorder observes the terminal state of each orchestrated render.
type OutcomeRecorder interface {
	RecordOutcome(ctx context.Context, kind, state, backend string)
}

type nopOutcomeRecorder struct{}

func (nopOutcomeRecorder) RecordOutcome(context.Context, string, string, string) {}

// Result is a rendered chart together with the view it was drawn from.
type Result struct {
	Outcome render.Outcome
	View    *aggregation.View
}

// Service wires the catalog, presets and orchestrator together.
type Service struct {
	catalog        *catalog.Catalog
	presets        chart.PresetRepository
	orchestrator   *render.Orchestrator
	outcomes       OutcomeRecorder
	maxConcurrency int
}

// NewService creates a charting service. outcomes may be nil.
func NewService(
	cat *catalog.Catalog,
	presets chart.PresetRepository,
	orchestrator *render.Orchestrator,
	outcomes OutcomeRecorder,
	maxConcurrency int,
) *Service {
	if cat == nil {
		panic("charting: catalog must not be nil")
	}
	if presets == nil {
		panic("charting: preset repository must not be nil")
	}
	if orchestrator == nil {
		panic("charting: orchestrator must not be nil")
	}
	if outcomes == nil {
		outcomes = nopOutcomeRecorder{}
	}
	if maxConcurrency <= 0 {
		maxConcurrency = DefaultMaxConcurrency
	}
	return &Service{
		catalog:        cat,
		presets:        presets,
		orchestrator:   orchestrator,
		outcomes:       outcomes,
		maxConcurrency: maxConcurrency,
	}
}

// Validate checks spec against a stored dataset.
func (s *Service) Validate(ctx context.Context, datasetID string, spec chart.Spec) error {
	entry, err := s.catalog.Get(ctx, datasetID)
	if err != nil {
		return err
	}
	return chart.Validate(spec, entry.Data)
}

// Aggregate groups a stored dataset. top_n > 0 keeps the largest groups.
func (s *Service) Aggregate(ctx context.Context, datasetID, groupBy, valueCol, op string, topN int) (*aggregation.View, error) {
	entry, err := s.catalog.Get(ctx, datasetID)
	if err != nil {
		return nil, err
	}
	view, err := aggregation.Aggregate(entry.Data, groupBy, valueCol, op)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAggregate, err)
	}
	if topN > 0 {
		view = aggregation.TopN(view, topN)
	}
	return view, nil
}

// Render draws spec from a stored dataset. backends optionally restricts
// and reorders the chain for this call.
func (s *Service) Render(ctx context.Context, datasetID string, spec chart.Spec, backends []string) (*Result, error) {
	entry, err := s.catalog.Get(ctx, datasetID)
	if err != nil {
		return nil, err
	}
	return s.RenderDataset(ctx, entry.Data, spec, backends)
}

// RenderDataset validates spec, builds the view and orchestrates the backends.
// An invalid spec returns an *chart.InvalidSpecificationError and no backend
// is attempted. All backends failing is an outcome, not an error.
func (s *Service) RenderDataset(ctx context.Context, ds *dataset.Dataset, spec chart.Spec, backends []string) (*Result, error) {
	if err := chart.Validate(spec, ds); err != nil {
		return nil, err
	}

	orch := s.orchestrator
	if len(backends) > 0 {
		reg, err := orch.Registry().Select(backends)
		if err != nil {
			return nil, err
		}
		orch = orch.WithRegistry(reg)
	}

	view, err := BuildView(ds, spec)
	if err != nil {
		return nil, err
	}

	out := orch.Render(ctx, view, spec)
	s.outcomes.RecordOutcome(ctx, string(spec.Kind), string(out.State), out.Backend)
	if !out.Succeeded() {
		slog.Warn("[Charting] No backend could draw the chart",
			"kind", spec.Kind,
			"x_field", spec.XField,
			"failures", len(out.Failures),
		)
	}
	return &Result{Outcome: out, View: view}, nil
}

// Summary describes a stored dataset.
func (s *Service) Summary(ctx context.Context, datasetID string) (*dataset.Summary, error) {
	entry, err := s.catalog.Get(ctx, datasetID)
	if err != nil {
		return nil, err
	}
	summary := dataset.Summarize(entry.Data)
	return &summary, nil
}

// Presets lists the loaded presets.
func (s *Service) Presets(ctx context.Context) ([]chart.Preset, error) {
	return s.presets.List(ctx)
}

// Backends returns the registry in fallback order.
func (s *Service) Backends() []render.Backend {
	return s.orchestrator.Registry().Backends()
}

// Datasets lists stored datasets, newest first.
func (s *Service) Datasets(ctx context.Context) ([]storage.Metadata, error) {
	return s.catalog.List(ctx)
}

// Dataset returns one stored dataset.
func (s *Service) Dataset(ctx context.Context, datasetID string) (*storage.Entry, error) {
	return s.catalog.Get(ctx, datasetID)
}

// DeleteDataset removes a stored dataset.
func (s *Service) DeleteDataset(ctx context.Context, datasetID string) error {
	return s.catalog.Delete(ctx, datasetID)
}
