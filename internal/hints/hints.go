// Package hints turns common CLI failures into one-line suggestions.
// Every hint renders as "\n  hint: <text>" so it can follow an error message.
package hints

import (
	"strings"

	"github.com/alnah/go-html2pptx/internal/fileutil"
)

// ciVars are set by the CI systems we know about.
var ciVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}

// InCI reports whether any known CI variable is set.
func InCI(getenv func(string) string) bool {
	for _, v := range ciVars {
		if getenv(v) != "" {
			return true
		}
	}
	return false
}

// InContainer reports whether Docker's /.dockerenv marker exists.
func InContainer() bool {
	return fileutil.FileExists("/.dockerenv")
}

// Env is the part of the process environment browser hints depend on.
type Env struct {
	Getenv      func(string) string
	InContainer func() bool
}

// ForBrowserConnect suggests the rod variables that usually fix a failed
// browser launch. It returns "" when both are already set.
func ForBrowserConnect(env Env) string {
	var tips []string
	sandboxed := env.Getenv("ROD_NO_SANDBOX") != "1"
	if sandboxed && (InCI(env.Getenv) || (env.InContainer != nil && env.InContainer())) {
		tips = append(tips, "set ROD_NO_SANDBOX=1 inside containers and CI")
	}
	if env.Getenv("ROD_BROWSER_BIN") == "" {
		tips = append(tips, "set ROD_BROWSER_BIN to use an installed Chrome")
	}
	return format(strings.Join(tips, "; "))
}

// ForTimeout suggests a longer render timeout.
func ForTimeout() string {
	return format("slow pages or remote assets may need a longer --timeout")
}

// ForConfigNotFound explains where named configs are looked up.
func ForConfigNotFound() string {
	return format("pass a path with --config, or put {name}.yaml in the working directory or ~/.config/go-html2pptx/")
}

// ForOutputDirectory is the hint for failed deck writes.
func ForOutputDirectory() string {
	return format("check the output directory exists and is writable")
}

// ForGeometry returns a hint for captures too narrow or short to place on a slide.
func ForGeometry() string {
	return format("avoid extremely wide or tall viewports; the short side must survive scaling to the slide")
}

// ForTheme lists the built-in themes.
func ForTheme(builtin []string) string {
	if len(builtin) == 0 {
		return format("check --theme and --themes-dir")
	}
	return format("built-in themes: " + strings.Join(builtin, ", ") + "; custom themes go in --themes-dir as {name}.css")
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
