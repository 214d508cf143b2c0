package html2pptx

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/alnah/go-html2pptx/internal/pptx"
)

// buildStage names a step of slide construction in error messages.
type buildStage string

const (
	stageDecode   buildStage = "decode"
	stageGeometry buildStage = "geometry"
	stageResize   buildStage = "resize"
	stageEmbed    buildStage = "embed"
)

// preparedSlide is a raster resampled for embedding, with its geometry.
// Preparing touches no document state.
type preparedSlide struct {
	geometry Geometry
	png      []byte
}

// prepareSlide decodes the raster, derives its geometry, and resamples it to
// exactly the target pixel size with a Lanczos filter.
func prepareSlide(r Raster) (*preparedSlide, error) {
	img, err := imaging.Decode(bytes.NewReader(r.PNG))
	if err != nil {
		return nil, stageError(stageDecode, fmt.Errorf("%w: %v", ErrInvalidRaster, err))
	}
	b := img.Bounds()
	if r.Width != 0 || r.Height != 0 {
		if b.Dx() != r.Width || b.Dy() != r.Height {
			return nil, stageError(stageDecode, fmt.Errorf("%w: declared %dx%d, decoded %dx%d",
				ErrInvalidRaster, r.Width, r.Height, b.Dx(), b.Dy()))
		}
	}

	g, tw, th, err := slideGeometry(Raster{Width: b.Dx(), Height: b.Dy()})
	if err != nil {
		return nil, stageError(stageGeometry, err)
	}

	data, err := resample(img, tw, th)
	if err != nil {
		return nil, stageError(stageResize, err)
	}
	return &preparedSlide{geometry: g, png: data}, nil
}

func resample(img image.Image, width, height int) ([]byte, error) {
	resized := imaging.Resize(img, width, height, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encoding resampled raster: %w", err)
	}
	return buf.Bytes(), nil
}

// embedSlide adds one full-bleed picture slide to doc. The document page
// size is overwritten with this slide's geometry. A nil transition leaves
// the slide without one. Callers prepare the slide first so that a failure
// never leaves a partial slide in doc.
func embedSlide(doc *pptx.Presentation, prep *preparedSlide, transition *TransitionSpec) (*pptx.Slide, error) {
	cx, cy := prep.geometry.EMU()
	if cx <= 0 || cy <= 0 {
		return nil, stageError(stageEmbed, fmt.Errorf("%w: %dx%d EMU", ErrInvalidGeometry, cx, cy))
	}
	if err := doc.SetSlideSize(cx, cy); err != nil {
		return nil, stageError(stageEmbed, fmt.Errorf("%w: %v", ErrInvalidGeometry, err))
	}

	slide := doc.AddSlide()
	if _, err := slide.AddPicture(prep.png, 0, 0, cx, cy); err != nil {
		return nil, stageError(stageEmbed, err)
	}
	if transition != nil {
		// unsupported kinds are ignored
		slide.SetTransition(transition.toPPTX())
	}
	return slide, nil
}

func stageError(stage buildStage, err error) error {
	return fmt.Errorf("%s: %w", stage, err)
}
