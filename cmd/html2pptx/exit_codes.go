package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/alnah/go-html2pptx"
	"github.com/alnah/go-html2pptx/internal/assets"
	"github.com/alnah/go-html2pptx/internal/config"
	"github.com/alnah/go-html2pptx/internal/hints"
)

// Exit codes for the html2pptx CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Success
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or input content
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// Sentinel errors for CLI operations.
var (
	ErrUsage              = errors.New("invalid usage")
	ErrNoInput            = errors.New("no input specified")
	ErrUnsupportedInput   = errors.New("input must be .html, .htm, .md or .markdown")
	ErrReadInput          = errors.New("failed to read input file")
	ErrWriteOutput        = errors.New("failed to write presentation")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

func usageError(err error) error {
	return fmt.Errorf("%w: %w", ErrUsage, err)
}

// exitCodeFor returns the exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, html2pptx.ErrRenderEngine) ||
		errors.Is(err, html2pptx.ErrRenderTimeout) ||
		errors.Is(err, html2pptx.ErrBrowserConnect) ||
		errors.Is(err, html2pptx.ErrPageCreate) ||
		errors.Is(err, html2pptx.ErrPageLoad) ||
		errors.Is(err, html2pptx.ErrScreenshot) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, assets.ErrThemeRead) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnsupportedInput) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, html2pptx.ErrInvalidViewport) ||
		errors.Is(err, html2pptx.ErrEmptyContent) ||
		errors.Is(err, html2pptx.ErrInvalidGeometry) ||
		errors.Is(err, html2pptx.ErrMarkdown) ||
		errors.Is(err, html2pptx.ErrUnknownTransition) ||
		errors.Is(err, assets.ErrThemeNotFound) ||
		errors.Is(err, assets.ErrInvalidThemeName) ||
		errors.Is(err, assets.ErrInvalidBasePath) ||
		errors.Is(err, assets.ErrPathTraversal) {
		return ExitUsage
	}

	return ExitGeneral
}

// hintFor returns an actionable hint to append to err's message, or "".
func hintFor(err error, getenv func(string) string) string {
	switch {
	case errors.Is(err, html2pptx.ErrRenderTimeout):
		return hints.ForTimeout()
	case errors.Is(err, html2pptx.ErrBrowserConnect):
		return hints.ForBrowserConnect(hints.Env{Getenv: getenv, InContainer: hints.InContainer})
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound()
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	case errors.Is(err, html2pptx.ErrInvalidGeometry):
		return hints.ForGeometry()
	case errors.Is(err, assets.ErrThemeNotFound):
		return hints.ForTheme(assets.Names())
	}
	return ""
}
