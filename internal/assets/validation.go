package assets

import (
	"fmt"
	"strings"
)

// ValidateName checks that a theme name is safe to use as a file name.
// Dots are rejected along with separators so a name can never change the
// .css extension or climb out of the themes directory.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidThemeName)
	}
	if strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidThemeName, name)
	}
	return nil
}
