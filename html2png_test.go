package html2pptx

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestHostDocument(t *testing.T) {
	t.Parallel()

	doc := hostDocument(`<div class="slide-container">Hi</div>`)

	for _, want := range []string{
		"<!DOCTYPE html>",
		"* { margin: 0; padding: 0; box-sizing: border-box; }",
		"overflow: hidden;",
		"background-color: transparent;",
		"width: 100% !important;",
		`<body><div class="slide-container">Hi</div></body>`,
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("host document missing %q", want)
		}
	}
	if strings.Contains(doc, "flex") {
		t.Error("host document must not use flexible layout")
	}
}

func TestRenderRequest_Viewport(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		req          RenderRequest
		wantW, wantH int
		wantErr      bool
	}{
		{name: "defaults", req: RenderRequest{}, wantW: 1280, wantH: 720},
		{name: "explicit", req: RenderRequest{Width: 1920, Height: 1080}, wantW: 1920, wantH: 1080},
		{name: "width only", req: RenderRequest{Width: 800}, wantW: 800, wantH: 720},
		{name: "upper bound", req: RenderRequest{Width: MaxViewportDimension, Height: 1}, wantW: 8192, wantH: 1},
		{name: "negative", req: RenderRequest{Width: -1}, wantErr: true},
		{name: "too tall", req: RenderRequest{Height: MaxViewportDimension + 1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w, h, err := tt.req.viewport()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidViewport) {
					t.Errorf("viewport() error = %v, want ErrInvalidViewport", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("viewport() unexpected error: %v", err)
			}
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("viewport() = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestRodRenderer_CaptureRejectsBadViewportWithoutBrowser(t *testing.T) {
	t.Parallel()

	r := NewRodRenderer(0)
	_, err := r.Capture(context.Background(), RenderRequest{HTML: "<p>x</p>", Width: 0, Height: -10})
	if !errors.Is(err, ErrInvalidViewport) {
		t.Errorf("Capture() error = %v, want ErrInvalidViewport", err)
	}
	if r.browser != nil {
		t.Error("browser launched for an invalid request")
	}
}

func TestRodRenderer_CaptureCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRodRenderer(time.Second)
	_, err := r.Capture(ctx, RenderRequest{HTML: "<p>x</p>"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Capture() error = %v, want context.Canceled", err)
	}
	if r.browser != nil {
		t.Error("browser launched for a canceled context")
	}
}

func TestNewRodRenderer_DefaultTimeout(t *testing.T) {
	t.Parallel()

	if got := NewRodRenderer(0).timeout; got != DefaultRenderTimeout {
		t.Errorf("timeout = %v, want %v", got, DefaultRenderTimeout)
	}
	if got := NewRodRenderer(5 * time.Second).timeout; got != 5*time.Second {
		t.Errorf("timeout = %v, want 5s", got)
	}
	if got := NewRodRenderer(0).settle; got != 3*time.Second {
		t.Errorf("settle = %v, want 3s", got)
	}
}

func TestRodRenderer_CloseWithoutBrowser(t *testing.T) {
	t.Parallel()

	if err := NewRodRenderer(0).Close(); err != nil {
		t.Errorf("Close() unexpected error: %v", err)
	}
}

func TestClassifyRenderError(t *testing.T) {
	t.Parallel()

	cause := errors.New("cdp: target crashed")

	tests := []struct {
		name    string
		err     error
		stage   error
		wantIs  []error
		wantNot []error
	}{
		{
			name:    "deadline is timeout",
			err:     fmt.Errorf("waiting: %w", context.DeadlineExceeded),
			stage:   ErrPageLoad,
			wantIs:  []error{ErrRenderTimeout},
			wantNot: []error{ErrRenderEngine},
		},
		{
			name:    "cancel passes through",
			err:     context.Canceled,
			stage:   ErrPageLoad,
			wantIs:  []error{context.Canceled},
			wantNot: []error{ErrRenderEngine, ErrRenderTimeout},
		},
		{
			name:   "stage failure wraps both",
			err:    cause,
			stage:  ErrScreenshot,
			wantIs: []error{ErrRenderEngine, ErrScreenshot},
		},
		{
			name:    "no stage",
			err:     cause,
			wantIs:  []error{ErrRenderEngine},
			wantNot: []error{ErrRenderTimeout},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := classifyRenderError(tt.err, tt.stage)
			for _, want := range tt.wantIs {
				if !errors.Is(got, want) {
					t.Errorf("classifyRenderError() = %v, want errors.Is %v", got, want)
				}
			}
			for _, bad := range tt.wantNot {
				if errors.Is(got, bad) {
					t.Errorf("classifyRenderError() = %v, must not match %v", got, bad)
				}
			}
		})
	}
}

func TestDecodeRaster(t *testing.T) {
	t.Parallel()

	t.Run("reads PNG dimensions", func(t *testing.T) {
		t.Parallel()

		r, err := decodeRaster(testRaster(t, 64, 48).PNG)
		if err != nil {
			t.Fatalf("decodeRaster() unexpected error: %v", err)
		}
		if r.Width != 64 || r.Height != 48 {
			t.Errorf("decodeRaster() = %dx%d, want 64x48", r.Width, r.Height)
		}
	})

	t.Run("rejects garbage", func(t *testing.T) {
		t.Parallel()

		_, err := decodeRaster([]byte("GIF89a"))
		if !errors.Is(err, ErrInvalidRaster) {
			t.Errorf("decodeRaster() error = %v, want ErrInvalidRaster", err)
		}
	})
}

func TestSleepContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := sleepContext(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Errorf("sleepContext() error = %v, want context.Canceled", err)
	}
	if err := sleepContext(context.Background(), 0); err != nil {
		t.Errorf("sleepContext(0) unexpected error: %v", err)
	}
}
