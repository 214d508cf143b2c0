package html2pptx

import (
	"errors"

	"github.com/alnah/go-html2pptx/internal/pptx"
)

// Sentinel errors for library operations.
var (
	// ErrNotFound reports a deck or slide identifier that does not exist.
	ErrNotFound = errors.New("not found")

	// Rendering errors. Every browser failure wraps ErrRenderEngine together
	// with one of the more specific sentinels below.
	ErrRenderTimeout  = errors.New("render timed out")
	ErrRenderEngine   = errors.New("render engine failure")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrScreenshot     = errors.New("failed to capture screenshot")

	// ErrPoolClosed reports an Acquire on a closed RendererPool.
	ErrPoolClosed = errors.New("renderer pool is closed")

	// Input validation errors.
	ErrInvalidViewport  = errors.New("invalid viewport")
	ErrEmptyContent     = errors.New("slide content cannot be empty")
	ErrAmbiguousContent = errors.New("slide content must be either html or markdown, not both")
	ErrInvalidRaster    = errors.New("invalid raster image")
	ErrInvalidGeometry  = errors.New("invalid slide geometry")
	ErrMarkdown         = errors.New("markdown conversion failed")

	// ErrUnknownTransition reports a transition name or push direction
	// outside the supported set.
	ErrUnknownTransition = pptx.ErrUnknownEffect

	// ErrSerialization reports a failure writing the presentation package.
	ErrSerialization = errors.New("presentation serialization failed")
)
