package adapter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/mmcdole/pictable/internal/records"
	"github.com/mmcdole/pictable/internal/source"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Source  SourceConfig  `mapstructure:"source"`
	Table   TableConfig   `mapstructure:"table"`
	Preview PreviewConfig `mapstructure:"preview"`
	Viewer  ViewerConfig  `mapstructure:"viewer"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// SourceConfig holds the record endpoint configuration
type SourceConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// TableConfig holds pagination defaults
type TableConfig struct {
	PageSize  int   `mapstructure:"page_size"`  // -1 shows every row
	PageSizes []int `mapstructure:"page_sizes"` // rows-per-page choices, -1 = All
}

// PreviewConfig holds thumbnail preview settings
type PreviewConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Width   int  `mapstructure:"width"`   // cells
	Height  int  `mapstructure:"height"`  // cells
	Workers int  `mapstructure:"workers"` // concurrent downloads
}

// ViewerConfig holds the external image viewer
type ViewerConfig struct {
	Command string   `mapstructure:"command"` // empty for the system default
	Args    []string `mapstructure:"args"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			URL:     source.DefaultURL,
			Timeout: 30 * time.Second,
		},
		Table: TableConfig{
			PageSize:  records.DefaultPageSize,
			PageSizes: append([]int(nil), records.DefaultPageSizes...),
		},
		Preview: PreviewConfig{
			Enabled: true,
			Width:   24,
			Height:  12,
			Workers: 4,
		},
		Viewer: ViewerConfig{
			Args: []string{},
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "pictable", "pictable.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "pictable", "pictable.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "pictable")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "pictable")
	}
}

// LoadConfig loads configuration from the default locations and environment
func LoadConfig() (*Config, error) {
	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(defaultConfigPath())
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	return unmarshal(v)
}

// LoadConfigFile loads configuration from an explicit file plus environment
func LoadConfigFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	return unmarshal(v)
}

// newViper returns a viper instance seeded with defaults so every key can
// also be set from the environment (PICTABLE_SOURCE_URL, ...)
func newViper() *viper.Viper {
	v := viper.New()
	def := DefaultConfig()

	v.SetDefault("source.url", def.Source.URL)
	v.SetDefault("source.timeout", def.Source.Timeout)
	v.SetDefault("table.page_size", def.Table.PageSize)
	v.SetDefault("table.page_sizes", def.Table.PageSizes)
	v.SetDefault("preview.enabled", def.Preview.Enabled)
	v.SetDefault("preview.width", def.Preview.Width)
	v.SetDefault("preview.height", def.Preview.Height)
	v.SetDefault("preview.workers", def.Preview.Workers)
	v.SetDefault("viewer.command", def.Viewer.Command)
	v.SetDefault("viewer.args", def.Viewer.Args)
	v.SetDefault("logging.file", def.Logging.File)
	v.SetDefault("logging.level", def.Logging.Level)

	v.SetEnvPrefix("PICTABLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func unmarshal(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	cfg.Normalize()
	return cfg, nil
}

// Normalize replaces out-of-range values with defaults
func (c *Config) Normalize() {
	def := DefaultConfig()

	if strings.TrimSpace(c.Source.URL) == "" {
		c.Source.URL = def.Source.URL
	}
	if c.Source.Timeout <= 0 {
		c.Source.Timeout = def.Source.Timeout
	}

	sizes := make([]int, 0, len(c.Table.PageSizes))
	seen := make(map[int]bool)
	for _, n := range c.Table.PageSizes {
		if records.ValidPageSize(n) && !seen[n] {
			seen[n] = true
			sizes = append(sizes, n)
		}
	}
	if len(sizes) == 0 {
		sizes = def.Table.PageSizes
	}
	c.Table.PageSizes = sizes

	if !records.ValidPageSize(c.Table.PageSize) {
		c.Table.PageSize = sizes[0]
	}

	if c.Preview.Width <= 0 {
		c.Preview.Width = def.Preview.Width
	}
	if c.Preview.Height <= 0 {
		c.Preview.Height = def.Preview.Height
	}
	if c.Preview.Workers <= 0 {
		c.Preview.Workers = def.Preview.Workers
	}

	if c.Logging.File == "" {
		c.Logging.File = def.Logging.File
	}
}
