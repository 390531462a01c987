package charting

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/datainsight-lab/datainsight/internal/catalog"
	"github.com/datainsight-lab/datainsight/internal/core/chart"
	"github.com/datainsight-lab/datainsight/internal/core/config"
	"github.com/datainsight-lab/datainsight/internal/core/dataset"
	"github.com/datainsight-lab/datainsight/internal/core/storage/memory"
	"github.com/datainsight-lab/datainsight/internal/render"
)

func salesDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New([]string{"regiao", "vendas", "lucro"}, []dataset.Record{
		{"regiao": "Sul", "vendas": 100, "lucro": 10.5},
		{"regiao": "Norte", "vendas": 150, "lucro": 20.0},
		{"regiao": "Sul", "vendas": 200, "lucro": -5.0},
	})
	require.NoError(t, err)
	return ds
}

type testEnv struct {
	svc       *Service
	catalog   *catalog.Catalog
	datasetID string
}

// newTestEnv builds a service over an in-memory catalog holding salesDataset.
// disabled backends are registered as unavailable stubs.
func newTestEnv(t *testing.T, outcomes OutcomeRecorder, disabled ...string) *testEnv {
	t.Helper()
	cat := catalog.New(memory.New(), 4)
	entry, err := cat.Create(context.Background(), "vendas", "csv", salesDataset(t))
	require.NoError(t, err)

	reg, err := NewRegistry(config.RenderConfig{Order: config.Backends, Disabled: disabled})
	require.NoError(t, err)

	presets, err := chart.NewFileSystemPresetRepository("", []chart.Preset{
		{Name: "vendas_por_regiao", Spec: chart.Spec{Kind: chart.KindBar, XField: "regiao", YField: "vendas"}},
		{Name: "lucro_por_regiao", Spec: chart.Spec{Kind: chart.KindPie, XField: "regiao", YField: "lucro"}},
		{Name: "por_mes", Spec: chart.Spec{Kind: chart.KindLine, XField: "mes", YField: "vendas"}},
	})
	require.NoError(t, err)

	svc := NewService(cat, presets, render.NewOrchestrator(reg), outcomes, 2)
	return &testEnv{svc: svc, catalog: cat, datasetID: entry.ID}
}
