package assets

import "errors"

// Resolver looks themes up in a custom directory first and falls back to
// the built-in themes when the directory has no file of that name.
type Resolver struct {
	custom   Loader // nil without a themes directory
	embedded Loader
}

// NewResolver creates a Resolver. An empty dir selects built-in themes only.
func NewResolver(dir string) (*Resolver, error) {
	r := &Resolver{embedded: NewEmbeddedLoader()}
	if dir != "" {
		fsLoader, err := NewFilesystemLoader(dir)
		if err != nil {
			return nil, err
		}
		r.custom = fsLoader
	}
	return r, nil
}

// LoadTheme returns the named theme.
// Only not-found falls back; validation and read errors are returned as is.
func (r *Resolver) LoadTheme(name string) (string, error) {
	if r.custom == nil {
		return r.embedded.LoadTheme(name)
	}

	css, err := r.custom.LoadTheme(name)
	if err == nil {
		return css, nil
	}
	if !errors.Is(err, ErrThemeNotFound) {
		return "", err
	}
	return r.embedded.LoadTheme(name)
}

// HasCustomLoader reports whether a themes directory is configured.
func (r *Resolver) HasCustomLoader() bool {
	return r.custom != nil
}

// Compile-time interface check.
var _ Loader = (*Resolver)(nil)
