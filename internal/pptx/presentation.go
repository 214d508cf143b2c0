package pptx

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"time"
)

// Default page size, 10x7.5 inches (4:3), matching a fresh PowerPoint document.
const (
	DefaultSlideWidth  EMU = 9144000
	DefaultSlideHeight EMU = 6858000
)

// Slide size bounds from ST_SlideSizeCoordinate.
const (
	MinSlideDimension EMU = 914400
	MaxSlideDimension EMU = 51206400
)

// Presentation is an in-memory PresentationML package.
// It is not safe for concurrent use; build one per goroutine.
type Presentation struct {
	width, height EMU
	slides        []*Slide

	// Creator is written to the core properties.
	Creator string
	// Now stamps the core properties; nil means time.Now.
	Now func() time.Time
}

// New returns an empty presentation with the default page size.
func New() *Presentation {
	return &Presentation{
		width:   DefaultSlideWidth,
		height:  DefaultSlideHeight,
		Creator: "html2pptx",
	}
}

// SetSlideSize sets the document-wide page size. The format stores one size
// for the whole package, so the last call wins for every slide. Each edge
// must lie in [MinSlideDimension, MaxSlideDimension].
func (p *Presentation) SetSlideSize(cx, cy EMU) error {
	if !validSlideDimension(cx) || !validSlideDimension(cy) {
		return fmt.Errorf("%w: %dx%d outside [%d, %d] EMU", ErrInvalidSize, cx, cy, MinSlideDimension, MaxSlideDimension)
	}
	p.width, p.height = cx, cy
	return nil
}

func validSlideDimension(e EMU) bool {
	return e >= MinSlideDimension && e <= MaxSlideDimension
}

// SlideSize returns the document-wide page size.
func (p *Presentation) SlideSize() (cx, cy EMU) {
	return p.width, p.height
}

// AddSlide appends a blank slide and returns it.
func (p *Presentation) AddSlide() *Slide {
	s := newSlide()
	p.slides = append(p.slides, s)
	return s
}

// Slides returns the slides in presentation order.
func (p *Presentation) Slides() []*Slide {
	return slices.Clone(p.slides)
}

// Bytes serializes the package into memory.
func (p *Presentation) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write serializes the package as a zip archive to w.
func (p *Presentation) Write(w io.Writer) error {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	pw := newPackageWriter(w)
	if err := pw.writePresentation(p, now().UTC()); err != nil {
		_ = pw.close()
		return fmt.Errorf("%w: %v", ErrWritePackage, err)
	}
	if err := pw.close(); err != nil {
		return fmt.Errorf("%w: %v", ErrWritePackage, err)
	}
	return nil
}
