package html2pptx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/png" // register PNG for DecodeConfig
	"os"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-html2pptx/internal/process"
)

// Renderer rasterizes HTML fragments.
type Renderer interface {
	Capture(ctx context.Context, req RenderRequest) (*Raster, error)
	Close() error
}

// Compile-time interface check.
var _ Renderer = (*RodRenderer)(nil)

// Capture timing.
const (
	// DefaultRenderTimeout bounds one capture from page creation to screenshot.
	DefaultRenderTimeout = 60 * time.Second

	// settleDelay lets web fonts, images and CSS animations reach a stable
	// frame after the network goes quiet.
	settleDelay = 3 * time.Second

	// networkIdleWindow is how long the page must make no requests to count
	// as idle.
	networkIdleWindow = 500 * time.Millisecond
)

// RodRenderer captures HTML with headless Chrome via go-rod.
// The browser is launched on first use and kept for the renderer's lifetime;
// every capture runs in its own incognito context, so cookies, storage and
// scripts never leak between slides. Captures on one renderer are serialized.
// Rod downloads Chromium on first run if no browser is found.
type RodRenderer struct {
	timeout time.Duration
	settle  time.Duration

	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
}

// NewRodRenderer creates a renderer with the given per-capture timeout.
// A non-positive timeout selects DefaultRenderTimeout.
func NewRodRenderer(timeout time.Duration) *RodRenderer {
	if timeout <= 0 {
		timeout = DefaultRenderTimeout
	}
	return &RodRenderer{timeout: timeout, settle: settleDelay}
}

// ensureBrowser lazily launches and connects to the browser.
// Callers hold r.mu.
func (r *RodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %w: %v", ErrRenderEngine, ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		killLauncher(l)
		return fmt.Errorf("%w: %w: %v", ErrRenderEngine, ErrBrowserConnect, err)
	}

	r.launcher = l
	r.browser = browser
	return nil
}

// Close shuts the browser down and kills its process group so no Chrome
// helper processes outlive the renderer.
func (r *RodRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	if r.launcher != nil {
		killLauncher(r.launcher)
		r.launcher = nil
	}
	return err
}

func killLauncher(l *launcher.Launcher) {
	if pid := l.PID(); pid > 0 {
		process.KillProcessGroup(pid)
	}
	l.Kill()
	l.Cleanup()
}

// Capture renders req.HTML at the requested viewport and returns a viewport
// PNG at DeviceScaleFactor resolution.
func (r *RodRenderer) Capture(ctx context.Context, req RenderRequest) (*Raster, error) {
	width, height, err := req.viewport()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, classifyRenderError(err, nil)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	incognito, err := r.browser.Incognito()
	if err != nil {
		return nil, classifyRenderError(err, ErrPageCreate)
	}
	defer func() { _ = incognito.Close() }()

	page, err := incognito.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, classifyRenderError(err, ErrPageCreate)
	}
	defer func() { _ = page.Close() }()
	page = page.Context(ctx)

	err = page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             width,
		Height:            height,
		DeviceScaleFactor: DeviceScaleFactor,
		Mobile:            false,
	})
	if err != nil {
		return nil, classifyRenderError(err, ErrPageCreate)
	}

	waitIdle := page.WaitRequestIdle(networkIdleWindow, nil, nil, nil)
	if err := page.SetDocumentContent(hostDocument(req.HTML)); err != nil {
		return nil, classifyRenderError(err, ErrPageLoad)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, classifyRenderError(err, ErrPageLoad)
	}
	waitIdle()

	if err := sleepContext(ctx, r.settle); err != nil {
		return nil, classifyRenderError(err, ErrPageLoad)
	}

	png, err := page.Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, classifyRenderError(err, ErrScreenshot)
	}

	return decodeRaster(png)
}

// decodeRaster reads the PNG header for the raster's pixel size.
func decodeRaster(png []byte) (*Raster, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(png))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRaster, err)
	}
	if format != "png" {
		return nil, fmt.Errorf("%w: format %q, want png", ErrInvalidRaster, format)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidRaster, cfg.Width, cfg.Height)
	}
	return &Raster{PNG: png, Width: cfg.Width, Height: cfg.Height}, nil
}

// classifyRenderError maps a browser failure onto the render error taxonomy.
// Deadline errors become ErrRenderTimeout; everything else wraps
// ErrRenderEngine and, when given, the stage sentinel.
func classifyRenderError(err error, stage error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrRenderTimeout, err)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	if stage == nil {
		return fmt.Errorf("%w: %v", ErrRenderEngine, err)
	}
	return fmt.Errorf("%w: %w: %v", ErrRenderEngine, stage, err)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
