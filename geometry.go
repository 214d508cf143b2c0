package html2pptx

import (
	"fmt"
	"math"
)

// Slide bounding box in inches. 13.333x7.5 is PowerPoint's 16:9 page.
const (
	MaxSlideWidth  = 13.333
	MaxSlideHeight = 7.5
)

// MinSlideSize is the smallest page edge a presentation may declare, in
// inches. minSizeSlack absorbs the rounding in MaxSlideWidth, so a raster
// whose short edge fits exactly one inch is accepted.
const (
	MinSlideSize = 1.0
	minSizeSlack = 1e-4
)

// ReferenceDPI is the pixel density rasters are resampled to for embedding.
const ReferenceDPI = 96

// widescreenRatio splits the width-bound branch from the height-bound one.
// A raster of exactly 16:9 is height-bound.
const widescreenRatio = 16.0 / 9.0

// ComputeSlideSize returns the slide size for a raster of the given pixel
// dimensions. The result keeps the raster's aspect ratio: rasters wider than
// 16:9 take the full width, all others take the full height.
func ComputeSlideSize(imgWidth, imgHeight int) (Geometry, error) {
	if imgWidth <= 0 || imgHeight <= 0 {
		return Geometry{}, fmt.Errorf("%w: raster %dx%d", ErrInvalidGeometry, imgWidth, imgHeight)
	}

	ratio := float64(imgWidth) / float64(imgHeight)
	if ratio > widescreenRatio {
		return Geometry{Width: MaxSlideWidth, Height: MaxSlideWidth / ratio}, nil
	}
	return Geometry{Width: MaxSlideHeight * ratio, Height: MaxSlideHeight}, nil
}

// ComputeSlideSizeWithin fits the raster inside an arbitrary box. The branch
// point is the box's own ratio, so neither bound is ever exceeded.
func ComputeSlideSizeWithin(imgWidth, imgHeight int, box Geometry) (Geometry, error) {
	if imgWidth <= 0 || imgHeight <= 0 {
		return Geometry{}, fmt.Errorf("%w: raster %dx%d", ErrInvalidGeometry, imgWidth, imgHeight)
	}
	if !(box.Width > 0) || !(box.Height > 0) || math.IsInf(box.Width, 0) || math.IsInf(box.Height, 0) {
		return Geometry{}, fmt.Errorf("%w: bounding box %vx%v", ErrInvalidGeometry, box.Width, box.Height)
	}

	ratio := float64(imgWidth) / float64(imgHeight)
	if ratio > box.Width/box.Height {
		return Geometry{Width: box.Width, Height: box.Width / ratio}, nil
	}
	return Geometry{Width: box.Height * ratio, Height: box.Height}, nil
}

// slideGeometry derives the geometry and target pixel size for a raster and
// rejects anything that would resample to an empty image or fall below the
// minimum page size.
func slideGeometry(r Raster) (Geometry, int, int, error) {
	g, err := ComputeSlideSize(r.Width, r.Height)
	if err != nil {
		return Geometry{}, 0, 0, err
	}
	if g.Width < MinSlideSize-minSizeSlack || g.Height < MinSlideSize-minSizeSlack {
		return Geometry{}, 0, 0, fmt.Errorf("%w: raster %dx%d gives a %.3fx%.3f in slide, below the %.0f in minimum",
			ErrInvalidGeometry, r.Width, r.Height, g.Width, g.Height, MinSlideSize)
	}
	w, h := g.TargetPixels()
	if w < 1 || h < 1 {
		return Geometry{}, 0, 0, fmt.Errorf("%w: raster %dx%d resamples to %dx%d pixels", ErrInvalidGeometry, r.Width, r.Height, w, h)
	}
	return g, w, h, nil
}

func inchesToPixels(in float64) int {
	return int(math.Round(in * ReferenceDPI))
}
