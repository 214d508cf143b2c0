package html2pptx

import (
	"fmt"
	"time"

	"github.com/alnah/go-html2pptx/internal/pptx"
)

// Viewport defaults and limits, in CSS pixels.
const (
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 720
	MaxViewportDimension  = 8192

	// DeviceScaleFactor is applied to every capture; rasters are always
	// twice the viewport in each dimension.
	DeviceScaleFactor = 2
)

// RenderRequest is one HTML fragment to rasterize.
// Zero Width or Height selects the default viewport dimension.
type RenderRequest struct {
	HTML   string
	Width  int
	Height int
}

// viewport resolves defaults and validates the requested size.
func (r RenderRequest) viewport() (width, height int, err error) {
	width, height = r.Width, r.Height
	if width == 0 {
		width = DefaultViewportWidth
	}
	if height == 0 {
		height = DefaultViewportHeight
	}
	if width < 1 || width > MaxViewportDimension || height < 1 || height > MaxViewportDimension {
		return 0, 0, fmt.Errorf("%w: %dx%d (each side must be 1-%d)", ErrInvalidViewport, width, height, MaxViewportDimension)
	}
	return width, height, nil
}

// Raster is a captured PNG with its pixel dimensions.
type Raster struct {
	PNG    []byte
	Width  int
	Height int
}

// Geometry is a slide size in inches.
type Geometry struct {
	Width  float64
	Height float64
}

// EMU converts the geometry to document units. Edges within rounding of
// the minimum page size are raised to it.
func (g Geometry) EMU() (cx, cy pptx.EMU) {
	return pageEdge(g.Width), pageEdge(g.Height)
}

func pageEdge(in float64) pptx.EMU {
	e := pptx.Inches(in)
	if e < pptx.MinSlideDimension && in >= MinSlideSize-minSizeSlack {
		return pptx.MinSlideDimension
	}
	return e
}

// TargetPixels returns the pixel size a raster is resampled to before
// embedding, at the reference density.
func (g Geometry) TargetPixels() (width, height int) {
	return inchesToPixels(g.Width), inchesToPixels(g.Height)
}

// TransitionKind selects a slide entrance effect.
type TransitionKind string

// Supported transitions.
const (
	TransitionFade TransitionKind = "fade"
	TransitionPush TransitionKind = "push"
)

// Direction is the travel direction of a push transition.
type Direction string

// Push directions.
const (
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
	DirectionUp    Direction = "up"
	DirectionDown  Direction = "down"
)

// DefaultTransitionDuration is recorded on fade transitions. Slides advance
// on click; the value does not drive playback.
const DefaultTransitionDuration = 1000 * time.Millisecond

// TransitionSpec describes a slide's entrance. Speed is always medium and
// slides always advance on click.
type TransitionSpec struct {
	Kind      TransitionKind
	Direction Direction // push only
	Duration  time.Duration
}

// FadeTransition is the transition applied to every slide by default.
func FadeTransition() TransitionSpec {
	return TransitionSpec{Kind: TransitionFade, Duration: DefaultTransitionDuration}
}

// ParseTransition maps a CLI or config name to a spec. Unknown names and
// push directions wrap ErrUnknownTransition.
// "none" and "" return a nil spec, meaning no transition.
func ParseTransition(kind, direction string) (*TransitionSpec, error) {
	switch TransitionKind(kind) {
	case "", "none":
		return nil, nil
	case TransitionFade:
		spec := FadeTransition()
		return &spec, nil
	case TransitionPush:
		spec := TransitionSpec{Kind: TransitionPush, Direction: Direction(direction), Duration: DefaultTransitionDuration}
		if err := spec.toPPTX().Validate(); err != nil {
			return nil, err
		}
		return &spec, nil
	}
	return nil, fmt.Errorf("%w: %q", pptx.ErrUnknownEffect, kind)
}

func (s TransitionSpec) toPPTX() pptx.Transition {
	return pptx.Transition{
		Effect:    pptx.Effect(s.Kind),
		Direction: pptx.Direction(s.Direction),
		Duration:  s.Duration,
	}
}
