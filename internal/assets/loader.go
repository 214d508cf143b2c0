package assets

// Loader returns theme CSS by name (without the .css extension).
// Implementations return ErrThemeNotFound for unknown names and
// ErrInvalidThemeName for unsafe ones.
type Loader interface {
	LoadTheme(name string) (string, error)
}
