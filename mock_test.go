package html2pptx

import (
	"bytes"
	"context"
	"image/color"
	"sync"
	"time"

	"github.com/disintegration/imaging"
)

// fakeRenderer implements Renderer without a browser. It returns a solid
// PNG at DeviceScaleFactor times the requested viewport.
type fakeRenderer struct {
	mu       sync.Mutex
	calls    []RenderRequest
	err      error
	closeErr error
	closed   bool
	delay    time.Duration
}

func (f *fakeRenderer) Capture(ctx context.Context, req RenderRequest) (*Raster, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	err, delay := f.err, f.delay
	f.mu.Unlock()

	if delay > 0 {
		if err := sleepContext(ctx, delay); err != nil {
			return nil, classifyRenderError(err, ErrPageLoad)
		}
	}
	if err != nil {
		return nil, err
	}
	w, h, err := req.viewport()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	img := imaging.New(w*DeviceScaleFactor, h*DeviceScaleFactor, color.NRGBA{G: 128, A: 255})
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, err
	}
	return &Raster{PNG: buf.Bytes(), Width: w * DeviceScaleFactor, Height: h * DeviceScaleFactor}, nil
}

func (f *fakeRenderer) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return f.closeErr
}

func (f *fakeRenderer) Calls() []RenderRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]RenderRequest(nil), f.calls...)
}

// singleSource hands out one renderer.
type singleSource struct {
	r Renderer
}

func (s singleSource) Acquire() (Renderer, error) { return s.r, nil }
func (singleSource) Release(Renderer)             {}
