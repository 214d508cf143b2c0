package html2pptx

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
)

// solidPNG returns a w x h PNG filled with c.
func solidPNG(t testing.TB, w, h int, c color.Color) []byte {
	t.Helper()

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, imaging.New(w, h, c), imaging.PNG); err != nil {
		t.Fatalf("encoding test PNG: %v", err)
	}
	return buf.Bytes()
}

// testRaster returns a Raster of the given size.
func testRaster(t testing.TB, w, h int) Raster {
	t.Helper()
	return Raster{PNG: solidPNG(t, w, h, color.NRGBA{R: 30, G: 60, B: 90, A: 255}), Width: w, Height: h}
}

// pngSize decodes the dimensions of a PNG.
func pngSize(t testing.TB, data []byte) (int, int) {
	t.Helper()

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding PNG: %v", err)
	}
	b := img.Bounds()
	return b.Dx(), b.Dy()
}
