// Package config loads the html2pptx YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-html2pptx/internal/fileutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxAddrLength     = 255
	MaxURLLength      = 2048 // Browser limit
	MaxDurationLength = 20
	MaxPathLength     = 4096 // Linux PATH_MAX
	MaxThemeLength    = 64
)

// Value limits.
const (
	MaxBodyLimit         = 100 << 20
	MaxViewportDimension = 8192
)

// Defaults.
const (
	DefaultAddr          = ":5000"
	DefaultAllowedOrigin = "*"
	DefaultDomain        = "http://localhost:5000"
	DefaultBodyLimit     = 5 << 20
	DefaultGlobalRate    = 100
	DefaultAddSlideRate  = 30
	DefaultExportRate    = 10
	DefaultTimeout       = "60s"
	DefaultWidth         = 1280
	DefaultHeight        = 720
	DefaultTransition    = "fade"
	DefaultDirection     = "left"
	DefaultTheme         = "default"
	DefaultLogLevel      = "info"
)

// configDirName is the directory under the user config dir searched for
// named configs.
const configDirName = "go-html2pptx"

// Config holds all html2pptx settings.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Render RenderConfig `yaml:"render"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig defines the HTTP server.
type ServerConfig struct {
	Addr          string    `yaml:"addr"`
	AllowedOrigin string    `yaml:"allowedOrigin"` // "*" allows any origin
	Domain        string    `yaml:"domain"`        // public base URL for robots.txt and sitemap.xml
	BodyLimit     int64     `yaml:"bodyLimit"`     // bytes
	RateLimit     RateLimit `yaml:"rateLimit"`
}

// RateLimit sets per-client request budgets, in requests per minute.
// Zero disables the limit.
type RateLimit struct {
	Global   int `yaml:"global"`
	AddSlide int `yaml:"addSlide"`
	Export   int `yaml:"export"`
}

// RenderConfig defines capture and export settings.
type RenderConfig struct {
	Timeout       string `yaml:"timeout"` // Go duration, e.g. "60s"
	Workers       int    `yaml:"workers"` // 0 = auto
	DefaultWidth  int    `yaml:"defaultWidth"`
	DefaultHeight int    `yaml:"defaultHeight"`
	Transition    string `yaml:"transition"` // "fade", "push", "none"
	Direction     string `yaml:"direction"`  // push only: "left", "right", "up", "down"
	Theme         string `yaml:"theme"`      // Markdown slide theme
	ThemesDir     string `yaml:"themesDir"`  // optional directory of {name}.css themes
}

// LogConfig defines logging.
type LogConfig struct {
	Level string `yaml:"level"` // "debug", "info", "warn", "error"
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:          DefaultAddr,
			AllowedOrigin: DefaultAllowedOrigin,
			Domain:        DefaultDomain,
			BodyLimit:     DefaultBodyLimit,
			RateLimit: RateLimit{
				Global:   DefaultGlobalRate,
				AddSlide: DefaultAddSlideRate,
				Export:   DefaultExportRate,
			},
		},
		Render: RenderConfig{
			Timeout:       DefaultTimeout,
			DefaultWidth:  DefaultWidth,
			DefaultHeight: DefaultHeight,
			Transition:    DefaultTransition,
			Direction:     DefaultDirection,
			Theme:         DefaultTheme,
		},
		Log: LogConfig{Level: DefaultLogLevel},
	}
}

// applyDefaults restores defaults for fields a config file set to their zero
// value. Rate limits and workers are exempt: zero is meaningful there.
func (c *Config) applyDefaults() {
	d := DefaultConfig()
	setDefault(&c.Server.Addr, d.Server.Addr)
	setDefault(&c.Server.AllowedOrigin, d.Server.AllowedOrigin)
	setDefault(&c.Server.Domain, d.Server.Domain)
	setDefault(&c.Server.BodyLimit, d.Server.BodyLimit)
	setDefault(&c.Render.Timeout, d.Render.Timeout)
	setDefault(&c.Render.DefaultWidth, d.Render.DefaultWidth)
	setDefault(&c.Render.DefaultHeight, d.Render.DefaultHeight)
	setDefault(&c.Render.Transition, d.Render.Transition)
	setDefault(&c.Render.Direction, d.Render.Direction)
	setDefault(&c.Render.Theme, d.Render.Theme)
	setDefault(&c.Log.Level, d.Log.Level)
}

func setDefault[T comparable](field *T, def T) {
	var zero T
	if *field == zero {
		*field = def
	}
}

// RenderTimeout parses Render.Timeout.
func (c *Config) RenderTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.Render.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: render.timeout %q: %v", ErrInvalidValue, c.Render.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: render.timeout must be positive, got %s", ErrInvalidValue, d)
	}
	return d, nil
}

// Validate checks field lengths and value ranges.
// Called automatically by LoadConfig, but available for configs built in code.
func (c *Config) Validate() error {
	if err := validateFieldLength("server.addr", c.Server.Addr, MaxAddrLength); err != nil {
		return err
	}
	if err := validateFieldLength("server.allowedOrigin", c.Server.AllowedOrigin, MaxURLLength); err != nil {
		return err
	}
	if err := validateFieldLength("server.domain", c.Server.Domain, MaxURLLength); err != nil {
		return err
	}
	if c.Server.BodyLimit <= 0 || c.Server.BodyLimit > MaxBodyLimit {
		return fmt.Errorf("%w: server.bodyLimit must be between 1 and %d, got %d", ErrInvalidValue, MaxBodyLimit, c.Server.BodyLimit)
	}

	rates := []struct {
		name  string
		value int
	}{
		{"server.rateLimit.global", c.Server.RateLimit.Global},
		{"server.rateLimit.addSlide", c.Server.RateLimit.AddSlide},
		{"server.rateLimit.export", c.Server.RateLimit.Export},
	}
	for _, r := range rates {
		if r.value < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %d", ErrInvalidValue, r.name, r.value)
		}
	}

	if err := validateFieldLength("render.timeout", c.Render.Timeout, MaxDurationLength); err != nil {
		return err
	}
	if _, err := c.RenderTimeout(); err != nil {
		return err
	}
	if c.Render.Workers < 0 {
		return fmt.Errorf("%w: render.workers must not be negative, got %d", ErrInvalidValue, c.Render.Workers)
	}
	if err := validateFieldLength("render.theme", c.Render.Theme, MaxThemeLength); err != nil {
		return err
	}
	if err := validateFieldLength("render.themesDir", c.Render.ThemesDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateViewport("render.defaultWidth", c.Render.DefaultWidth); err != nil {
		return err
	}
	if err := validateViewport("render.defaultHeight", c.Render.DefaultHeight); err != nil {
		return err
	}

	switch strings.ToLower(c.Render.Transition) {
	case "fade", "push", "none":
	default:
		return fmt.Errorf("%w: render.transition %q (must be fade, push, or none)", ErrInvalidValue, c.Render.Transition)
	}
	switch strings.ToLower(c.Render.Direction) {
	case "left", "right", "up", "down":
	default:
		return fmt.Errorf("%w: render.direction %q (must be left, right, up, or down)", ErrInvalidValue, c.Render.Direction)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level %q (must be debug, info, warn, or error)", ErrInvalidValue, c.Log.Level)
	}

	return nil
}

func validateViewport(field string, v int) error {
	if v < 1 || v > MaxViewportDimension {
		return fmt.Errorf("%w: %s must be between 1 and %d, got %d", ErrInvalidValue, field, MaxViewportDimension, v)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields missing from the file take their defaults.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes and validates a YAML configuration. The document is decoded
// over DefaultConfig, so omitted fields keep their defaults.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := decodeStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-html2pptx/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, configDirName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
