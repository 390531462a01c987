package config

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/datainsight-lab/datainsight/internal/core/chart"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is stripped from environment variables; "__" separates levels.
const EnvPrefix = "DATAINSIGHT_"

// Backends lists every render backend name, in default priority order.
var Backends = []string{"echarts", "vegalite", "png", "html", "ascii"}

// Config represents the top-level application config plus resolved presets.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Storage   StorageConfig   `koanf:"storage"`
	Render    RenderConfig    `koanf:"render"`
	Ingestion IngestionConfig `koanf:"ingestion"`
	Presets   PresetsConfig   `koanf:"presets"`
	Insights  InsightsConfig  `koanf:"insights"`

	// PresetLoading is populated by Load after parsing preset files.
	PresetLoading PresetLoadingConfig `koanf:"-"`
}

type ServerConfig struct {
	Port           int    `koanf:"port"`
	Host           string `koanf:"host"`
	Mode           string `koanf:"mode"` // debug | release
	MaxConcurrency int    `koanf:"max_concurrency"`
}

type LoggingConfig struct {
	Level  string `koanf:"level"`  // debug | info | warn | error
	Format string `koanf:"format"` // text | json
}

type StorageConfig struct {
	Type          string        `koanf:"type"` // memory | postgres
	DSN           string        `koanf:"dsn"`
	MaxOpenConns  int           `koanf:"max_open_conns"`
	MaxIdleConns  int           `koanf:"max_idle_conns"`
	AutoMigrate   bool          `koanf:"auto_migrate"`
	CacheSize     int           `koanf:"cache_size"`
	Retention     time.Duration `koanf:"retention"` // 0 keeps datasets forever
	SweepInterval time.Duration `koanf:"sweep_interval"`
}

type RenderConfig struct {
	Order    []string `koanf:"order"`
	Disabled []string `koanf:"disabled"`

	ASCIIWidth        int    `koanf:"ascii_width"`
	PNGWidth          int    `koanf:"png_width"`
	PNGHeight         int    `koanf:"png_height"`
	EChartsAssetsHost string `koanf:"echarts_assets_host"`
}

// IsDisabled reports whether a backend was switched off.
func (c RenderConfig) IsDisabled(name string) bool {
	return slices.Contains(c.Disabled, name)
}

type IngestionConfig struct {
	MaxUploadMB int `koanf:"max_upload_mb"`
	MaxRows     int `koanf:"max_rows"`
}

// MaxUploadBytes is the request body cap for uploads.
func (c IngestionConfig) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

type PresetsConfig struct {
	Dir string `koanf:"dir"`
}

type InsightsConfig struct {
	Enabled bool          `koanf:"enabled"`
	APIKey  string        `koanf:"api_key"`
	Model   string        `koanf:"model"`
	BaseURL string        `koanf:"base_url"`
	Timeout time.Duration `koanf:"timeout"`
}

// Configured reports whether insights can be served at all.
func (c InsightsConfig) Configured() bool {
	return c.Enabled && strings.TrimSpace(c.APIKey) != ""
}

type PresetLoadingConfig struct {
	Dir     string
	Presets []chart.Preset
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d (must be 1-65535)", c.Server.Port)
	}
	if strings.TrimSpace(c.Server.Host) == "" {
		return fmt.Errorf("server.host is required")
	}
	if c.Server.Mode != "debug" && c.Server.Mode != "release" {
		return fmt.Errorf("invalid server.mode %q (must be debug or release)", c.Server.Mode)
	}
	if c.Server.MaxConcurrency <= 0 {
		return fmt.Errorf("server.max_concurrency must be > 0")
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging.level %q", c.Logging.Level)
	}
	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return fmt.Errorf("invalid logging.format %q (must be text or json)", c.Logging.Format)
	}

	switch c.Storage.Type {
	case "memory":
	case "postgres":
		if strings.TrimSpace(c.Storage.DSN) == "" {
			return fmt.Errorf("storage.dsn is required for postgres")
		}
		if c.Storage.MaxOpenConns <= 0 {
			return fmt.Errorf("storage.max_open_conns must be > 0")
		}
		if c.Storage.MaxIdleConns <= 0 {
			return fmt.Errorf("storage.max_idle_conns must be > 0")
		}
	default:
		return fmt.Errorf("unsupported storage.type %q", c.Storage.Type)
	}
	if c.Storage.CacheSize <= 0 {
		return fmt.Errorf("storage.cache_size must be > 0")
	}
	if c.Storage.Retention < 0 {
		return fmt.Errorf("storage.retention must be >= 0")
	}
	if c.Storage.Retention > 0 && c.Storage.SweepInterval <= 0 {
		return fmt.Errorf("storage.sweep_interval must be > 0 when retention is set")
	}

	if len(c.Render.Order) == 0 {
		return fmt.Errorf("render.order must list at least one backend")
	}
	seen := make(map[string]bool, len(c.Render.Order))
	for _, name := range c.Render.Order {
		if !slices.Contains(Backends, name) {
			return fmt.Errorf("unknown backend %q in render.order (known: %s)", name, strings.Join(Backends, ", "))
		}
		if seen[name] {
			return fmt.Errorf("backend %q listed twice in render.order", name)
		}
		seen[name] = true
	}
	for _, name := range c.Render.Disabled {
		if !slices.Contains(Backends, name) {
			return fmt.Errorf("unknown backend %q in render.disabled", name)
		}
	}
	if c.Render.ASCIIWidth <= 0 {
		return fmt.Errorf("render.ascii_width must be > 0")
	}
	if c.Render.PNGWidth <= 0 || c.Render.PNGHeight <= 0 {
		return fmt.Errorf("render.png_width and render.png_height must be > 0")
	}

	if c.Ingestion.MaxUploadMB <= 0 {
		return fmt.Errorf("ingestion.max_upload_mb must be > 0")
	}
	if c.Ingestion.MaxRows <= 0 {
		return fmt.Errorf("ingestion.max_rows must be > 0")
	}

	if c.Insights.Enabled {
		if strings.TrimSpace(c.Insights.Model) == "" {
			return fmt.Errorf("insights.model is required when insights are enabled")
		}
		if strings.TrimSpace(c.Insights.BaseURL) == "" {
			return fmt.Errorf("insights.base_url is required when insights are enabled")
		}
		if c.Insights.Timeout <= 0 {
			return fmt.Errorf("insights.timeout must be > 0")
		}
	}

	return nil
}

// Load parses config from defaults, file and env, validates it, then loads presets.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]interface{}{
		"server.port":                8080,
		"server.host":                "0.0.0.0",
		"server.mode":                "release",
		"server.max_concurrency":     4,
		"logging.level":              "info",
		"logging.format":             "text",
		"storage.type":               "memory",
		"storage.dsn":                "",
		"storage.max_open_conns":     10,
		"storage.max_idle_conns":     10,
		"storage.auto_migrate":       true,
		"storage.cache_size":         64,
		"storage.retention":          "0s",
		"storage.sweep_interval":     "10m",
		"render.order":               Backends,
		"render.disabled":            []string{},
		"render.ascii_width":         20,
		"render.png_width":           800,
		"render.png_height":          500,
		"render.echarts_assets_host": "",
		"ingestion.max_upload_mb":    10,
		"ingestion.max_rows":         100000,
		"presets.dir":                "",
		"insights.enabled":           false,
		"insights.api_key":           "",
		"insights.model":             "gemini-1.5-flash",
		"insights.base_url":          "https://generativelanguage.googleapis.com/v1beta",
		"insights.timeout":           "30s",
	}
	for key, value := range defaults {
		k.Set(key, value)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.Insights.APIKey == "" {
		cfg.Insights.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	repo, err := chart.NewFileSystemPresetRepository(cfg.Presets.Dir, chart.DefaultPresets())
	if err != nil {
		return nil, fmt.Errorf("failed to load presets: %w", err)
	}
	presets, err := repo.List(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to list presets: %w", err)
	}
	cfg.PresetLoading = PresetLoadingConfig{
		Dir:     cfg.Presets.Dir,
		Presets: presets,
	}

	return &cfg, nil
}
