package insights

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/datainsight-lab/datainsight/internal/catalog"
	"github.com/datainsight-lab/datainsight/internal/core/storage"
	"github.com/datainsight-lab/datainsight/internal/core/storage/memory"
	insightsmocks "github.com/datainsight-lab/datainsight/internal/mocks/insights"
)

func newTestService(t *testing.T, gen Generator, timeout time.Duration) (*Service, *catalog.Catalog, string) {
	t.Helper()
	cat := catalog.New(memory.New(), 4)
	entry, err := cat.Create(context.Background(), "vendas", "csv", promptDataset(t))
	require.NoError(t, err)
	return NewService(cat, gen, timeout), cat, entry.ID
}

func TestNewService_PanicsOnNilCatalog(t *testing.T) {
	assert.Panics(t, func() { NewService(nil, nil, 0) })
}

func TestService_GenerateStoresText(t *testing.T) {
	gen := insightsmocks.NewGenerator(t)
	gen.EXPECT().Model().Return("gemini-test").Maybe()
	gen.EXPECT().Generate(mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, "Total de registros: 4") && strings.Contains(p, DefaultQuestion)
	})).Return("Sul concentra as vendas.", nil).Once()

	svc, cat, id := newTestService(t, gen, time.Second)
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.nowFn = func() time.Time { return fixed }

	insight, err := svc.Generate(context.Background(), id, "")
	require.NoError(t, err)
	assert.Equal(t, id, insight.DatasetID)
	assert.Equal(t, "gemini-test", insight.Model)
	assert.Equal(t, "Sul concentra as vendas.", insight.Text)
	assert.Equal(t, fixed, insight.GeneratedAt)

	entry, err := cat.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Sul concentra as vendas.", entry.Insights)

	latest, err := svc.Latest(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Sul concentra as vendas.", latest)
}

func TestService_Generate_NotConfigured(t *testing.T) {
	svc, _, id := newTestService(t, nil, 0)
	assert.False(t, svc.Enabled())

	_, err := svc.Generate(context.Background(), id, "")
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestService_Generate_UnknownDataset(t *testing.T) {
	gen := insightsmocks.NewGenerator(t)
	svc, _, _ := newTestService(t, gen, time.Second)

	_, err := svc.Generate(context.Background(), "missing", "")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestService_Generate_Timeout(t *testing.T) {
	gen := insightsmocks.NewGenerator(t)
	gen.EXPECT().Generate(mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, _ string) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		}).Once()

	svc, cat, id := newTestService(t, gen, 10*time.Millisecond)
	_, err := svc.Generate(context.Background(), id, "")
	require.ErrorIs(t, err, ErrTimeout)

	entry, err := cat.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Empty(t, entry.Insights)
}

func TestService_Generate_UpstreamFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"provider error", errors.New("connection reset")},
		{"already classified", ErrUpstream},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := insightsmocks.NewGenerator(t)
			gen.EXPECT().Model().Return("gemini-test").Maybe()
			gen.EXPECT().Generate(mock.Anything, mock.Anything).Return("", tt.err).Once()

			svc, _, id := newTestService(t, gen, time.Second)
			_, err := svc.Generate(context.Background(), id, "")
			require.ErrorIs(t, err, ErrUpstream)
		})
	}
}
