package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// renderFlags holds capture settings shared by serve and convert.
type renderFlags struct {
	workers   int
	timeout   string
	width     int
	height    int
	theme     string
	themesDir string
}

// serveFlags holds all flags for the serve command.
type serveFlags struct {
	common commonFlags
	render renderFlags
	addr   string
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common     commonFlags
	render     renderFlags
	output     string
	transition string
	direction  string
}

func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "debug logging and timings")
}

func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.IntVarP(&f.workers, "workers", "w", 0, "browser instances (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-slide render timeout (e.g., 30s, 2m)")
	fs.IntVar(&f.width, "width", 0, "viewport width in CSS pixels")
	fs.IntVar(&f.height, "height", 0, "viewport height in CSS pixels")
	fs.StringVar(&f.theme, "theme", "", "Markdown slide theme")
	fs.StringVar(&f.themesDir, "themes-dir", "", "directory of custom {name}.css themes")
}

// parseServeFlags parses serve command flags and returns positional args.
func parseServeFlags(args []string, usage io.Writer) (*serveFlags, []string, error) {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &serveFlags{}

	fs.StringVarP(&f.addr, "addr", "a", "", "listen address (e.g., :5000)")
	addCommonFlags(fs, &f.common)
	addRenderFlags(fs, &f.render)
	fs.Usage = func() { printServeUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, usageError(err)
	}
	return f, fs.Args(), nil
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, usage io.Writer) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &convertFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output .pptx file")
	fs.StringVar(&f.transition, "transition", "", "slide transition: fade, push, none")
	fs.StringVar(&f.direction, "direction", "", "push direction: left, right, up, down")
	addCommonFlags(fs, &f.common)
	addRenderFlags(fs, &f.render)
	fs.Usage = func() { printConvertUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, usageError(err)
	}
	return f, fs.Args(), nil
}
