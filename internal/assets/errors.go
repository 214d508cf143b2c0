package assets

import "errors"

// Sentinel errors for theme loading.
var (
	// ErrThemeNotFound indicates no theme has the requested name.
	ErrThemeNotFound = errors.New("theme not found")

	// ErrInvalidThemeName indicates the name contains path separators,
	// dots, or is empty.
	ErrInvalidThemeName = errors.New("invalid theme name")

	// ErrInvalidBasePath indicates the themes directory is not a readable directory.
	ErrInvalidBasePath = errors.New("invalid themes directory")

	// ErrThemeRead indicates an I/O error while reading a theme file.
	ErrThemeRead = errors.New("failed to read theme")

	// ErrPathTraversal indicates a theme path resolved outside its directory.
	ErrPathTraversal = errors.New("path traversal detected")
)
