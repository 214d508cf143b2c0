package server

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"sync"

	"github.com/disintegration/imaging"

	"github.com/alnah/go-html2pptx"
)

// fakeRenderer paints a solid PNG at twice the requested viewport.
type fakeRenderer struct {
	mu    sync.Mutex
	err   error
	calls int
}

func (f *fakeRenderer) Capture(ctx context.Context, req html2pptx.RenderRequest) (*html2pptx.Raster, error) {
	f.mu.Lock()
	f.calls++
	err := f.err
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	w, h := req.Width, req.Height
	if w == 0 {
		w = html2pptx.DefaultViewportWidth
	}
	if h == 0 {
		h = html2pptx.DefaultViewportHeight
	}
	if w < 1 || h < 1 || w > html2pptx.MaxViewportDimension || h > html2pptx.MaxViewportDimension {
		return nil, fmt.Errorf("%w: %dx%d", html2pptx.ErrInvalidViewport, w, h)
	}

	w, h = w*html2pptx.DeviceScaleFactor, h*html2pptx.DeviceScaleFactor
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, imaging.New(w, h, color.NRGBA{B: 200, A: 255}), imaging.PNG); err != nil {
		return nil, err
	}
	return &html2pptx.Raster{PNG: buf.Bytes(), Width: w, Height: h}, nil
}

func (f *fakeRenderer) Close() error { return nil }

func (f *fakeRenderer) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}
