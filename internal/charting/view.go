package charting

import (
	"github.com/datainsight-lab/datainsight/internal/core/aggregation"
	"github.com/datainsight-lab/datainsight/internal/core/chart"
	"github.com/datainsight-lab/datainsight/internal/core/dataset"
)

// BuildView reduces ds to the view a validated spec draws.
// Histograms bin x_field, scatter keeps one point per record, and every
// other kind groups by x_field and applies the requested top_n.
func BuildView(ds *dataset.Dataset, spec chart.Spec) (*aggregation.View, error) {
	switch spec.Kind {
	case chart.KindHistogram:
		return aggregation.Histogram(ds, spec.XField, spec.Bins())
	case chart.KindScatter:
		return aggregation.Points(ds, spec.XField, spec.YField)
	}

	view, err := aggregation.Aggregate(ds, spec.XField, spec.YField, spec.Op())
	if err != nil {
		return nil, err
	}
	if n := spec.TopN(); n > 0 {
		view = aggregation.TopN(view, n)
	}
	return view, nil
}
