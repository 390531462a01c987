package charting

import (
	"fmt"
	"log/slog"

	"github.com/datainsight-lab/datainsight/internal/core/config"
	"github.com/datainsight-lab/datainsight/internal/render"
	"github.com/datainsight-lab/datainsight/internal/render/ascii"
	"github.com/datainsight-lab/datainsight/internal/render/echarts"
	"github.com/datainsight-lab/datainsight/internal/render/htmlchart"
	"github.com/datainsight-lab/datainsight/internal/render/raster"
	"github.com/datainsight-lab/datainsight/internal/render/vegalite"
)

// NewRegistry builds the fallback chain in configured order. Disabled
// backends are registered as stubs that always report unavailable.
func NewRegistry(cfg config.RenderConfig) (*render.Registry, error) {
	order := cfg.Order
	if len(order) == 0 {
		order = config.Backends
	}

	backends := make([]render.Backend, 0, len(order))
	for _, name := range order {
		if cfg.IsDisabled(name) {
			slog.Info("[Charting] Backend disabled by configuration", "backend", name)
			backends = append(backends, render.Unavailable(name, "disabled by configuration"))
			continue
		}
		b, err := newBackend(name, cfg)
		if err != nil {
			return nil, err
		}
		backends = append(backends, b)
	}
	return render.NewRegistry(backends...)
}

func newBackend(name string, cfg config.RenderConfig) (render.Backend, error) {
	switch name {
	case echarts.Name:
		return echarts.New(echarts.Config{AssetsHost: cfg.EChartsAssetsHost}), nil
	case vegalite.Name:
		return vegalite.New(0, 0), nil
	case raster.Name:
		return raster.New(cfg.PNGWidth, cfg.PNGHeight), nil
	case htmlchart.Name:
		return htmlchart.New(), nil
	case ascii.Name:
		return ascii.New(cfg.ASCIIWidth), nil
	default:
		return nil, fmt.Errorf("%w: %s", render.ErrUnknownBackend, name)
	}
}
