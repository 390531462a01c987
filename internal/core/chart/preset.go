package chart

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/datainsight-lab/datainsight/internal/core/aggregation"
	"gopkg.in/yaml.v3"
)

// ErrPresetNotFound is returned when no preset has the requested name.
var ErrPresetNotFound = errors.New("chart preset not found")

// Preset is a named, reusable chart request.
// Presets are loaded at startup from YAML files and fingerprinted so that
// clients can detect a changed definition.
type Preset struct {
	Name        string `json:"name"`
	Spec        Spec   `json:"spec"`
	Fingerprint string `json:"fingerprint"`
}

// rawPreset is the on-disk YAML shape.
type rawPreset struct {
	Name   string `yaml:"name"`
	Title  string `yaml:"title"`
	Kind   string `yaml:"kind"`
	XField string `yaml:"x_field"`
	YField string `yaml:"y_field"`
	Op     string `yaml:"op"`
	TopN   int    `yaml:"top_n"`
	Bins   int    `yaml:"bins"`
}

func (r rawPreset) spec() Spec {
	s := Spec{Kind: Kind(r.Kind), XField: r.XField, YField: r.YField, Title: r.Title}
	extra := map[string]any{}
	if r.Op != "" {
		extra[HintOp] = r.Op
	}
	if r.TopN > 0 {
		extra[HintTopN] = r.TopN
	}
	if r.Bins > 0 {
		extra[HintBins] = r.Bins
	}
	if len(extra) > 0 {
		s.Extra = extra
	}
	return s
}

// PresetRepository defines the interface for loading chart presets.
type PresetRepository interface {
	// Get returns the preset with the given name, or ErrPresetNotFound.
	Get(ctx context.Context, name string) (*Preset, error)

	// List returns all presets in load order.
	List(ctx context.Context) ([]Preset, error)
}

// FileSystemPresetRepository loads chart presets from *.yaml files in a directory.
// Each file holds exactly one preset at the top level. Files are read once, in
// name order; when the directory holds none, the fallback presets are served.
type FileSystemPresetRepository struct {
	dir     string
	order   []string
	presets map[string]Preset
}

// NewFileSystemPresetRepository creates a repository and eagerly loads all presets
// from dir. Returns an error if any preset file is malformed or invalid.
func NewFileSystemPresetRepository(dir string, fallback []Preset) (*FileSystemPresetRepository, error) {
	repo := &FileSystemPresetRepository{
		dir:     dir,
		presets: make(map[string]Preset),
	}
	if dir != "" {
		if err := repo.load(); err != nil {
			return nil, err
		}
	}
	if len(repo.order) == 0 {
		for _, p := range fallback {
			if err := repo.add(p); err != nil {
				return nil, err
			}
		}
	}
	return repo, nil
}

func (r *FileSystemPresetRepository) load() error {
	info, err := os.Stat(r.dir)
	if os.IsNotExist(err) {
		return nil // no presets directory: fall back to built-ins
	}
	if err != nil {
		return fmt.Errorf("chart preset dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("chart preset path %q is not a directory", r.dir)
	}

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return fmt.Errorf("reading chart preset dir: %w", err)
	}

	for _, e := range entries {
		if e.IsDir() || (!strings.HasSuffix(e.Name(), ".yaml") && !strings.HasSuffix(e.Name(), ".yml")) {
			continue
		}

		path := filepath.Join(r.dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading preset file %s: %w", path, err)
		}

		var raw rawPreset
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("parsing preset file %s: %w", path, err)
		}
		if raw.Name == "" {
			continue // skip empty / comment-only files
		}

		p := Preset{
			Name:        raw.Name,
			Spec:        raw.spec(),
			Fingerprint: fmt.Sprintf("%x", sha256.Sum256(data)),
		}
		if err := r.add(p); err != nil {
			return err
		}
	}
	return nil
}

func (r *FileSystemPresetRepository) add(p Preset) error {
	if !p.Spec.Kind.Valid() {
		return fmt.Errorf("preset %q: unsupported kind %q", p.Name, p.Spec.Kind)
	}
	if p.Spec.XField == "" {
		return fmt.Errorf("preset %q: x_field must not be empty", p.Name)
	}
	if op, ok := p.Spec.Extra[HintOp].(string); ok && !aggregation.ValidOperator(op) {
		return fmt.Errorf("preset %q: unsupported op %q", p.Name, op)
	}
	if _, exists := r.presets[p.Name]; exists {
		return fmt.Errorf("preset %q: duplicate preset name (check multiple YAML files)", p.Name)
	}
	if p.Fingerprint == "" {
		p.Fingerprint = fingerprintSpec(p)
	}

	r.presets[p.Name] = p
	r.order = append(r.order, p.Name)
	return nil
}

// Get returns the preset with the given name, or ErrPresetNotFound.
func (r *FileSystemPresetRepository) Get(_ context.Context, name string) (*Preset, error) {
	p, ok := r.presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrPresetNotFound, name)
	}
	return &p, nil
}

// List returns all presets in load order.
func (r *FileSystemPresetRepository) List(_ context.Context) ([]Preset, error) {
	out := make([]Preset, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.presets[name])
	}
	return out, nil
}

func fingerprintSpec(p Preset) string {
	data, err := yaml.Marshal(p)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%x", sha256.Sum256(data))
}

// DefaultPresets are the charts of the stock sales dashboard.
func DefaultPresets() []Preset {
	return []Preset{
		{Name: "vendas_por_regiao", Spec: Spec{Kind: KindBar, XField: "regiao", YField: "vendas", Title: "Vendas por Região"}},
		{Name: "lucro_por_categoria", Spec: Spec{Kind: KindPie, XField: "categoria", YField: "lucro", Title: "Lucro por Categoria"}},
		{Name: "vendas_por_mes", Spec: Spec{Kind: KindLine, XField: "mes", YField: "vendas", Title: "Vendas por Mês"}},
		{Name: "vendas_x_lucro", Spec: Spec{Kind: KindScatter, XField: "vendas", YField: "lucro", Title: "Vendas x Lucro"}},
		{Name: "distribuicao_satisfacao", Spec: Spec{Kind: KindHistogram, XField: "satisfacao", Title: "Distribuição de Satisfação", Extra: map[string]any{HintBins: 5}}},
		{Name: "top_vendedores", Spec: Spec{Kind: KindBar, XField: "vendedor", YField: "vendas", Title: "Top 10 Vendedores", Extra: map[string]any{HintTopN: 10}}},
	}
}
