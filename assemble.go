package html2pptx

import (
	"fmt"
	"time"

	"github.com/alnah/go-html2pptx/internal/pptx"
)

// defaultCreator is written to the package core properties.
const defaultCreator = "html2pptx"

// assembleConfig holds Assemble options.
type assembleConfig struct {
	transition *TransitionSpec
	creator    string
	now        func() time.Time
}

// AssembleOption configures Assemble.
type AssembleOption func(*assembleConfig)

// WithTransition applies spec to every slide.
func WithTransition(spec TransitionSpec) AssembleOption {
	return func(c *assembleConfig) {
		c.transition = &spec
	}
}

// WithoutTransitions builds slides with no transition.
func WithoutTransitions() AssembleOption {
	return func(c *assembleConfig) {
		c.transition = nil
	}
}

// WithCreator sets the author recorded in the document properties.
func WithCreator(name string) AssembleOption {
	return func(c *assembleConfig) {
		c.creator = name
	}
}

// WithClock sets the clock used for the document timestamps.
func WithClock(now func() time.Time) AssembleOption {
	return func(c *assembleConfig) {
		c.now = now
	}
}

// Assemble builds a presentation from rasters in order and returns the
// serialized package. Every slide gets a fade transition unless configured
// otherwise.
//
// The page size starts at the first slide's geometry and is overwritten by
// each slide in turn, so the exported size is the last slide's. Each picture
// still fills its own computed box.
//
// Every raster is decoded and resampled before the document is created; any
// failure aborts the whole assembly and no bytes are returned.
func Assemble(rasters []Raster, opts ...AssembleOption) ([]byte, error) {
	cfg := assembleConfig{creator: defaultCreator}
	fade := FadeTransition()
	cfg.transition = &fade
	for _, opt := range opts {
		opt(&cfg)
	}

	prepared := make([]*preparedSlide, len(rasters))
	for i, r := range rasters {
		prep, err := prepareSlide(r)
		if err != nil {
			return nil, fmt.Errorf("slide %d: %w", i+1, err)
		}
		prepared[i] = prep
	}

	doc := pptx.New()
	doc.Creator = cfg.creator
	doc.Now = cfg.now

	if len(prepared) > 0 {
		cx, cy := prepared[0].geometry.EMU()
		if err := doc.SetSlideSize(cx, cy); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidGeometry, err)
		}
	}

	for i, prep := range prepared {
		if _, err := embedSlide(doc, prep, cfg.transition); err != nil {
			return nil, fmt.Errorf("slide %d: %w", i+1, err)
		}
	}

	data, err := doc.Bytes()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return data, nil
}
