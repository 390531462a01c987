package charting

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	v1 "github.com/datainsight-lab/datainsight/internal/api/v1"
	"github.com/datainsight-lab/datainsight/internal/core/chart"
	"github.com/datainsight-lab/datainsight/internal/core/dataset"
	httperr "github.com/datainsight-lab/datainsight/internal/core/errors"
)

// Dashboard renders the named presets against one dataset, concurrently
// and in the order given. No names means every loaded preset. A preset
// that is unknown or does not fit the dataset fails only its own slot.
func (s *Service) Dashboard(ctx context.Context, datasetID string, names []string) (*v1.DashboardResponse, error) {
	entry, err := s.catalog.Get(ctx, datasetID)
	if err != nil {
		return nil, err
	}

	if len(names) == 0 {
		presets, err := s.presets.List(ctx)
		if err != nil {
			return nil, err
		}
		for _, p := range presets {
			names = append(names, p.Name)
		}
	}

	charts := make([]v1.DashboardChart, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrency)
	for i, name := range names {
		g.Go(func() error {
			charts[i] = s.dashboardSlot(gctx, entry.Data, name)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.Debug("[Charting] Dashboard rendered", "dataset_id", datasetID, "charts", len(charts))
	return &v1.DashboardResponse{DatasetID: datasetID, Charts: charts}, nil
}

func (s *Service) dashboardSlot(ctx context.Context, ds *dataset.Dataset, name string) v1.DashboardChart {
	slot := v1.DashboardChart{Preset: name}

	preset, err := s.presets.Get(ctx, name)
	if err != nil {
		slot.Error = &httperr.ErrorResponse{
			ErrorType: httperr.HttpPresetNotFoundError,
			Message:   err.Error(),
		}
		return slot
	}
	slot.Title = preset.Spec.DisplayTitle()

	result, err := s.RenderDataset(ctx, ds, preset.Spec, nil)
	if err != nil {
		slot.Error = slotError(err)
		return slot
	}
	resp := v1.NewChartResponse(result.Outcome, nil)
	slot.Chart = &resp
	return slot
}

func slotError(err error) *httperr.ErrorResponse {
	var specErr *chart.InvalidSpecificationError
	if errors.As(err, &specErr) {
		return &httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidSpecification,
			Message:   specErr.Error(),
			Details:   specErr.Details(),
		}
	}
	return &httperr.ErrorResponse{
		ErrorType: httperr.HttpInternalError,
		Message:   err.Error(),
	}
}
