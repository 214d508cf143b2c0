package html2pptx

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"

	"github.com/disintegration/imaging"
)

// Preview thumbnails fit inside this box.
const (
	PreviewMaxWidth  = 400
	PreviewMaxHeight = 225
)

// Preview returns a PNG thumbnail of raster that fits inside
// PreviewMaxWidth x PreviewMaxHeight with the raster's aspect ratio.
// Rasters already inside the box are not upscaled.
func Preview(raster []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(raster))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRaster, err)
	}

	thumb := imaging.Fit(img, PreviewMaxWidth, PreviewMaxHeight, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression)); err != nil {
		return nil, fmt.Errorf("encoding preview: %w", err)
	}
	return buf.Bytes(), nil
}

// DataURI encodes PNG bytes as a data: URI.
func DataURI(png []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}
