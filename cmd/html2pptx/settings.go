package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-html2pptx"
	"github.com/alnah/go-html2pptx/internal/assets"
	"github.com/alnah/go-html2pptx/internal/config"
)

// loadSettings resolves the effective configuration for a command:
// file (from --config or HTML2PPTX_CONFIG), then env, then flags.
func loadSettings(common commonFlags, render renderFlags, env *Environment) (*config.Config, error) {
	warnUnknownEnvVars(env.Stderr, env.Environ())
	envCfg := loadEnvConfig(env.Getenv)

	name := common.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		cfg, err = config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	if err := applyEnvConfig(envCfg, cfg); err != nil {
		return nil, err
	}
	mergeRenderFlags(render, cfg)
	if common.verbose {
		cfg.Log.Level = "debug"
	}
	if common.quiet {
		cfg.Log.Level = "error"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Render.Workers > html2pptx.MaxPoolSize {
		return nil, fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, cfg.Render.Workers, html2pptx.MaxPoolSize)
	}
	return cfg, nil
}

// mergeRenderFlags applies explicitly set render flags to cfg (CLI wins).
func mergeRenderFlags(f renderFlags, cfg *config.Config) {
	if f.workers != 0 {
		cfg.Render.Workers = f.workers
	}
	if f.timeout != "" {
		cfg.Render.Timeout = f.timeout
	}
	if f.width != 0 {
		cfg.Render.DefaultWidth = f.width
	}
	if f.height != 0 {
		cfg.Render.DefaultHeight = f.height
	}
	if f.theme != "" {
		cfg.Render.Theme = f.theme
	}
	if f.themesDir != "" {
		cfg.Render.ThemesDir = f.themesDir
	}
}

// markdownConverter builds a converter styled with the configured theme.
func markdownConverter(cfg *config.Config) (*html2pptx.GoldmarkConverter, error) {
	resolver, err := assets.NewResolver(cfg.Render.ThemesDir)
	if err != nil {
		return nil, err
	}
	css, err := resolver.LoadTheme(cfg.Render.Theme)
	if err != nil {
		return nil, err
	}
	return html2pptx.NewGoldmarkConverter(html2pptx.WithStylesheet(css)), nil
}

// newLogger returns a timestamped logger at the configured level.
func newLogger(w io.Writer, level string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           lvl,
		Prefix:          "html2pptx",
	})
}
