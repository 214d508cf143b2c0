package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/alnah/go-html2pptx"
	"github.com/alnah/go-html2pptx/internal/config"
	"github.com/alnah/go-html2pptx/internal/server"
)

// runServe starts the HTTP surface and blocks until ctx is canceled.
func runServe(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseServeFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return usageError(fmt.Errorf("serve takes no arguments, got %q", positional))
	}

	cfg, err := loadSettings(flags.common, flags.render, env)
	if err != nil {
		return err
	}
	if flags.addr != "" {
		cfg.Server.Addr = flags.addr
	}

	srv, closeFn, err := buildServer(cfg, env)
	if err != nil {
		return err
	}
	defer closeFn()

	return srv.Run(ctx, cfg.Server.Addr)
}

// buildServer wires the renderer pool, studio, metrics and router from cfg.
// The returned func closes the pool.
func buildServer(cfg *config.Config, env *Environment) (*server.Server, func(), error) {
	logger := newLogger(env.Stderr, cfg.Log.Level)

	timeout, err := cfg.RenderTimeout()
	if err != nil {
		return nil, nil, err
	}
	transition, err := html2pptx.ParseTransition(cfg.Render.Transition, cfg.Render.Direction)
	if err != nil {
		return nil, nil, err
	}

	markdown, err := markdownConverter(cfg)
	if err != nil {
		return nil, nil, err
	}

	size := html2pptx.ResolvePoolSize(cfg.Render.Workers)
	pool := env.newPool(size, timeout)
	logger.Info("renderer pool", "workers", size, "timeout", timeout)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := server.NewMetrics(reg)

	studio := html2pptx.NewStudio(pool,
		html2pptx.WithLogger(logger.WithPrefix("studio")),
		html2pptx.WithMarkdownConverter(markdown),
		html2pptx.WithRenderObserver(metrics.ObserveRender),
		html2pptx.WithAssembleOptions(assembleOptions(transition)...),
	)

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := server.New(studio, server.Settings{
		AllowedOrigin: cfg.Server.AllowedOrigin,
		Domain:        cfg.Server.Domain,
		BodyLimit:     cfg.Server.BodyLimit,
		GlobalRate:    cfg.Server.RateLimit.Global,
		AddSlideRate:  cfg.Server.RateLimit.AddSlide,
		ExportRate:    cfg.Server.RateLimit.Export,
		DefaultWidth:  cfg.Render.DefaultWidth,
		DefaultHeight: cfg.Render.DefaultHeight,
	}, server.WithLogger(logger.WithPrefix("http")), server.WithMetrics(metrics))

	closeFn := func() {
		if err := pool.Close(); err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn("closing renderers", "err", err)
		}
	}
	return srv, closeFn, nil
}

// assembleOptions maps a parsed transition to export options.
// A nil spec disables transitions.
func assembleOptions(spec *html2pptx.TransitionSpec) []html2pptx.AssembleOption {
	if spec == nil {
		return []html2pptx.AssembleOption{html2pptx.WithoutTransitions()}
	}
	return []html2pptx.AssembleOption{html2pptx.WithTransition(*spec)}
}
