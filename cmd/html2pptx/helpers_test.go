package main

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/disintegration/imaging"

	"github.com/alnah/go-html2pptx"
)

// fakeRenderer paints a solid PNG whose red channel is the length of the
// rendered HTML, so tests can tell slides apart after concurrent renders.
type fakeRenderer struct {
	mu     sync.Mutex
	err    error
	seen   []html2pptx.RenderRequest
	closed bool
}

func (f *fakeRenderer) Capture(ctx context.Context, req html2pptx.RenderRequest) (*html2pptx.Raster, error) {
	f.mu.Lock()
	f.seen = append(f.seen, req)
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
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, imaging.New(w, h, color.NRGBA{R: uint8(len(req.HTML)), A: 255}), imaging.PNG); err != nil {
		return nil, err
	}
	return &html2pptx.Raster{PNG: buf.Bytes(), Width: w, Height: h}, nil
}

func (f *fakeRenderer) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeRenderer) requests() []html2pptx.RenderRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]html2pptx.RenderRequest(nil), f.seen...)
}

// testEnv returns an environment with captured output, a fixed environment
// variable set, and renderers backed by fake.
func testEnv(fake *fakeRenderer, vars map[string]string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	env := &Environment{
		Now:    func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
		Stdout: stdout,
		Stderr: stderr,
		Getenv: func(k string) string { return vars[k] },
		Environ: func() []string {
			out := make([]string, 0, len(vars))
			for k, v := range vars {
				out = append(out, k+"="+v)
			}
			return out
		},
		NewRenderer: func(time.Duration) html2pptx.Renderer { return fake },
	}
	return env, stdout, stderr
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

// slideShades returns the red channel of each slide's picture, in slide order.
func slideShades(t *testing.T, path string) []int {
	t.Helper()

	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("opening %s: %v", path, err)
	}
	defer zr.Close()

	files := map[string]*zip.File{}
	for _, f := range zr.File {
		files[f.Name] = f
	}

	var shades []int
	for i := 1; ; i++ {
		rels, ok := files[fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", i)]
		if !ok {
			return shades
		}
		rc, err := rels.Open()
		if err != nil {
			t.Fatal(err)
		}
		var b bytes.Buffer
		_, _ = b.ReadFrom(rc)
		rc.Close()

		start := strings.Index(b.String(), "../media/")
		if start < 0 {
			t.Fatalf("slide %d has no media relationship", i)
		}
		name := b.String()[start+len("../") : start+strings.Index(b.String()[start:], `"`)]
		img, err := files["ppt/"+name].Open()
		if err != nil {
			t.Fatal(err)
		}
		decoded, err := imaging.Decode(img)
		img.Close()
		if err != nil {
			t.Fatalf("decoding %s: %v", name, err)
		}
		r, _, _, _ := decoded.At(0, 0).RGBA()
		shades = append(shades, int(r>>8))
	}
}

func readZipEntry(t *testing.T, path, name string) string {
	t.Helper()

	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("opening %s: %v", path, err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		defer rc.Close()
		var b bytes.Buffer
		if _, err := b.ReadFrom(rc); err != nil {
			t.Fatal(err)
		}
		return b.String()
	}
	t.Fatalf("%s has no entry %s", path, name)
	return ""
}

// sameShades compares shades allowing for resampling rounding.
func sameShades(got, want []int) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if d := got[i] - want[i]; d < -1 || d > 1 {
			return false
		}
	}
	return true
}
