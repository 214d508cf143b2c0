package main

import (
	"fmt"
	"io"
)

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2pptx <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  serve      Run the web studio and HTTP API")
	fmt.Fprintln(w, "  convert    Render HTML or Markdown files into a .pptx deck")
	fmt.Fprintln(w, "  doctor     Check Chrome and environment")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'html2pptx help <command>' for details on a specific command.")
}

func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "  -w, --workers <n>         Browser instances (0 = auto, max 8)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Per-slide render timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "      --width <px>          Viewport width (default 1280)")
	fmt.Fprintln(w, "      --height <px>         Viewport height (default 720)")
	fmt.Fprintln(w, "      --theme <name>        Markdown theme: default, dark, minimal, or custom")
	fmt.Fprintln(w, "      --themes-dir <dir>    Directory of custom {name}.css themes")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "General:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Debug logging and timings")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  HTML2PPTX_CONFIG, HTML2PPTX_ADDR, HTML2PPTX_ALLOWED_ORIGIN, HTML2PPTX_DOMAIN,")
	fmt.Fprintln(w, "  HTML2PPTX_TIMEOUT, HTML2PPTX_WORKERS, HTML2PPTX_TRANSITION, HTML2PPTX_DIRECTION,")
	fmt.Fprintln(w, "  HTML2PPTX_THEME, HTML2PPTX_THEMES_DIR, HTML2PPTX_LOG_LEVEL,")
	fmt.Fprintln(w, "  ROD_BROWSER_BIN, ROD_NO_SANDBOX")
}

func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2pptx serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run the web studio and HTTP API until interrupted.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Server:")
	fmt.Fprintln(w, "  -a, --addr <addr>         Listen address (default :5000)")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2pptx convert <file-or-dir>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render each .html, .htm, .md or .markdown file into one slide, in")
	fmt.Fprintln(w, "argument order. Directories contribute their files sorted by name.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output .pptx file")
	fmt.Fprintln(w, "      --transition <s>      Transition: fade, push, none (default fade)")
	fmt.Fprintln(w, "      --direction <s>       Push direction: left, right, up, down")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2pptx doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that Chrome is installed and the environment can run it.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "serve":
		printServeUsage(env.Stdout)
	case "convert":
		printConvertUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: html2pptx version")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: html2pptx help [command]")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
