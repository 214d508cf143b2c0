package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alnah/go-html2pptx/internal/config"
)

const envPrefix = "HTML2PPTX_"

// envConfig holds configuration from environment variables.
// Provides container-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath    string // HTML2PPTX_CONFIG: config file name or path
	Addr          string // HTML2PPTX_ADDR: listen address
	AllowedOrigin string // HTML2PPTX_ALLOWED_ORIGIN: CORS origin
	Domain        string // HTML2PPTX_DOMAIN: public base URL
	Timeout       string // HTML2PPTX_TIMEOUT: render timeout
	Workers       string // HTML2PPTX_WORKERS: browser instances
	Transition    string // HTML2PPTX_TRANSITION: fade, push, none
	Direction     string // HTML2PPTX_DIRECTION: push direction
	Theme         string // HTML2PPTX_THEME: Markdown slide theme
	ThemesDir     string // HTML2PPTX_THEMES_DIR: custom themes directory
	LogLevel      string // HTML2PPTX_LOG_LEVEL: debug, info, warn, error
}

// knownEnvVars lists valid HTML2PPTX_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"HTML2PPTX_CONFIG":         true,
	"HTML2PPTX_ADDR":           true,
	"HTML2PPTX_ALLOWED_ORIGIN": true,
	"HTML2PPTX_DOMAIN":         true,
	"HTML2PPTX_TIMEOUT":        true,
	"HTML2PPTX_WORKERS":        true,
	"HTML2PPTX_TRANSITION":     true,
	"HTML2PPTX_DIRECTION":      true,
	"HTML2PPTX_THEME":          true,
	"HTML2PPTX_THEMES_DIR":     true,
	"HTML2PPTX_LOG_LEVEL":      true,
}

// loadEnvConfig reads the recognized HTML2PPTX_* values.
func loadEnvConfig(getenv func(string) string) *envConfig {
	return &envConfig{
		ConfigPath:    getenv("HTML2PPTX_CONFIG"),
		Addr:          getenv("HTML2PPTX_ADDR"),
		AllowedOrigin: getenv("HTML2PPTX_ALLOWED_ORIGIN"),
		Domain:        getenv("HTML2PPTX_DOMAIN"),
		Timeout:       getenv("HTML2PPTX_TIMEOUT"),
		Workers:       getenv("HTML2PPTX_WORKERS"),
		Transition:    getenv("HTML2PPTX_TRANSITION"),
		Direction:     getenv("HTML2PPTX_DIRECTION"),
		Theme:         getenv("HTML2PPTX_THEME"),
		ThemesDir:     getenv("HTML2PPTX_THEMES_DIR"),
		LogLevel:      getenv("HTML2PPTX_LOG_LEVEL"),
	}
}

// warnUnknownEnvVars writes a warning for each unrecognized HTML2PPTX_*
// variable, catching typos like HTML2PPTX_WORKER.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, kv := range environ {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig overlays set environment values onto cfg.
// Priority: CLI flags > env vars > config file > defaults
// (CLI flags are applied afterwards).
func applyEnvConfig(env *envConfig, cfg *config.Config) error {
	setIf(&cfg.Server.Addr, env.Addr)
	setIf(&cfg.Server.AllowedOrigin, env.AllowedOrigin)
	setIf(&cfg.Server.Domain, env.Domain)
	setIf(&cfg.Render.Timeout, env.Timeout)
	setIf(&cfg.Render.Transition, env.Transition)
	setIf(&cfg.Render.Direction, env.Direction)
	setIf(&cfg.Render.Theme, env.Theme)
	setIf(&cfg.Render.ThemesDir, env.ThemesDir)
	setIf(&cfg.Log.Level, env.LogLevel)

	if env.Workers != "" {
		n, err := strconv.Atoi(env.Workers)
		if err != nil {
			return fmt.Errorf("%w: HTML2PPTX_WORKERS=%q is not an integer", config.ErrInvalidValue, env.Workers)
		}
		cfg.Render.Workers = n
	}
	return nil
}

func setIf(field *string, v string) {
	if v != "" {
		*field = v
	}
}
