package assets

// DefaultTheme is the theme used when none is configured.
const DefaultTheme = "default"

var defaultLoader = NewEmbeddedLoader()

// LoadTheme returns a built-in theme by name.
func LoadTheme(name string) (string, error) {
	return defaultLoader.LoadTheme(name)
}

// Names lists the built-in themes.
func Names() []string {
	return defaultLoader.Names()
}
