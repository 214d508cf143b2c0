package pptx

import "errors"

// Sentinel errors for package operations.
var (
	ErrInvalidSize   = errors.New("invalid slide size")
	ErrEmptyImage    = errors.New("image data cannot be empty")
	ErrWritePackage  = errors.New("failed to write package")
	ErrUnknownEffect = errors.New("unsupported transition effect")
)
