package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"imagepdf/internal/compression"
	"imagepdf/internal/document"
)

const (
	DefaultSizeLimitMB  = 10.0
	DefaultOverheadMB   = 0.6
	DefaultOutputDir    = "~/Downloads"
	DefaultDatabasePath = "file::memory:"
	AppName             = "ImagePDF"
)

const (
	EnvPageFormat   = "IMAGEPDF_PAGE_FORMAT"
	EnvSizeLimitMB  = "IMAGEPDF_SIZE_LIMIT_MB"
	EnvOverheadMB   = "IMAGEPDF_OVERHEAD_MB"
	EnvMaxDimension = "IMAGEPDF_MAX_DIMENSION"
	EnvOutputDir    = "IMAGEPDF_OUTPUT_DIR"
	EnvLogLevel     = "IMAGEPDF_LOG_LEVEL"
	EnvLogFormat    = "IMAGEPDF_LOG_FORMAT"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds application configuration
type Config struct {
	WorkingDir   string             `yaml:"-"`
	DatabasePath string             `yaml:"-"`
	OutputDir    string             `yaml:"output_dir"`
	PageFormat   string             `yaml:"page_format"`
	SizeLimitMB  float64            `yaml:"size_limit_mb"`
	OverheadMB   float64            `yaml:"overhead_mb"`
	Policy       compression.Policy `yaml:"policy"`
	LogLevel     string             `yaml:"log_level"`
	LogFormat    string             `yaml:"log_format"`
	Logger       *slog.Logger       `yaml:"-"`
}

// New creates a configuration from defaults, a .env file in the working
// directory and IMAGEPDF_* environment variables.
func New() *Config {
	cfg, err := Load("")
	if err != nil {
		cfg = Default()
		cfg.Logger.Error("Failed to load configuration, using defaults", "error", err)
	}
	return cfg
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{
		DatabasePath: DefaultDatabasePath,
		OutputDir:    expand(DefaultOutputDir),
		PageFormat:   document.DefaultPageFormat,
		SizeLimitMB:  DefaultSizeLimitMB,
		OverheadMB:   DefaultOverheadMB,
		Policy:       compression.DefaultPolicy(),
		LogLevel:     "info",
		LogFormat:    "text",
	}
	cfg.setupDirectories()
	cfg.Logger = NewLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	return cfg
}

// Load layers, lowest to highest priority: defaults, the YAML file at path
// (skipped when path is empty), .env, then environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	// A missing .env is normal.
	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	cfg.OutputDir = expand(cfg.OutputDir)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.Logger = NewLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	return cfg, nil
}

// Validate checks the values a conversion depends on.
func (c *Config) Validate() error {
	if _, err := document.LookupPageFormat(c.PageFormat); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.SizeLimitMB <= 0 {
		return fmt.Errorf("%w: size limit must be positive, got %v", ErrInvalidConfig, c.SizeLimitMB)
	}
	if c.OverheadMB < 0 {
		return fmt.Errorf("%w: overhead must not be negative, got %v", ErrInvalidConfig, c.OverheadMB)
	}
	if err := c.Policy.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// OverheadBytes returns the reserved container overhead in bytes
func (c *Config) OverheadBytes() int64 {
	return compression.MegabytesToBytes(c.OverheadMB)
}

func (c *Config) setupDirectories() {
	c.WorkingDir = filepath.Join(os.TempDir(), "imagepdf")
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(expand(path))
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("%w: parse %s: %v", ErrInvalidConfig, path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvPageFormat); v != "" {
		c.PageFormat = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv(EnvOutputDir); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.LogFormat = v
	}

	if err := envFloat(EnvSizeLimitMB, &c.SizeLimitMB); err != nil {
		return err
	}
	if err := envFloat(EnvOverheadMB, &c.OverheadMB); err != nil {
		return err
	}
	if v := os.Getenv(EnvMaxDimension); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidConfig, EnvMaxDimension, v)
		}
		c.Policy.MaxDimension = n
	}
	return nil
}

func envFloat(key string, dst *float64) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("%w: %s=%q", ErrInvalidConfig, key, v)
	}
	*dst = f
	return nil
}

func expand(path string) string {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	return expanded
}

// NewLogger builds a slog logger writing text or JSON to w.
func NewLogger(level, format string, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	switch strings.ToLower(format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// ParseLevel maps debug, info, warn and error to slog levels. Unknown
// values mean info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
