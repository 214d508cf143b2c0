package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/go-rod/rod/lib/launcher"
	flag "github.com/spf13/pflag"

	"github.com/alnah/go-html2pptx"
	"github.com/alnah/go-html2pptx/internal/hints"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `json:"status"` // "ready", "warnings", "errors"
	Chrome   chromeInfo `json:"chrome"`
	Env      envInfo    `json:"environment"`
	System   systemInfo `json:"system"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
	GOMAXPROCS   int  `json:"gomaxprocs"`
	Workers      int  `json:"workers"` // pool size when --workers is 0
}

// doctor runs the checks. Its lookups are swappable in tests.
type doctor struct {
	getenv        func(string) string
	lookPath      func() (string, bool)
	chromeVersion func(path string) (string, error)
	tempDir       func() string
	isContainer   func() bool
}

func newDoctor(env *Environment) *doctor {
	return &doctor{
		getenv:        env.Getenv,
		lookPath:      launcher.LookPath,
		chromeVersion: chromeVersion,
		tempDir:       os.TempDir,
		isContainer:   hints.InContainer,
	}
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	jsonOutput := fs.Bool("json", false, "machine-readable output")
	fs.Usage = func() { printDoctorUsage(env.Stderr) }
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		return ExitUsage
	}

	result := newDoctor(env).run()

	if *jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

func (d *doctor) run() *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  d.getenv("ROD_NO_SANDBOX"),
			BrowserBin: d.getenv("ROD_BROWSER_BIN"),
		},
	}

	d.checkChrome(result)
	d.checkEnvironment(result)
	d.checkSystem(result)

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}
	return result
}

func (d *doctor) checkChrome(result *doctorResult) {
	chromePath := result.Env.BrowserBin
	if chromePath == "" {
		var found bool
		chromePath, found = d.lookPath()
		if !found {
			result.Errors = append(result.Errors,
				"Chrome/Chromium not found. Install Chrome or set ROD_BROWSER_BIN")
			return
		}
	}

	if _, err := os.Stat(chromePath); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Chrome not found at %s", chromePath))
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = chromePath
	result.Chrome.Sandbox = result.Env.NoSandbox != "1"

	version, err := d.chromeVersion(chromePath)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Could not get Chrome version: %v", err))
		return
	}
	result.Chrome.Version = version
}

func chromeVersion(path string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	out, err := exec.CommandContext(ctx, path, "--version").Output() // #nosec G204 -- browser path from env or rod lookup
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

func (d *doctor) checkEnvironment(result *doctorResult) {
	result.Env.Container, result.Env.ContainerHint = d.containerSignal()
	result.Env.CI = hints.InCI(d.getenv)

	if (result.Env.Container || result.Env.CI) && result.Env.NoSandbox != "1" {
		result.Warnings = append(result.Warnings,
			"Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1")
	}
}

// containerSignal reports whether we run in a container and which signal said so.
func (d *doctor) containerSignal() (bool, string) {
	switch {
	case d.getenv("HTML2PPTX_CONTAINER") == "1":
		return true, "HTML2PPTX_CONTAINER=1"
	case d.isContainer():
		return true, "/.dockerenv"
	case d.getenv("container") != "":
		return true, "container=" + d.getenv("container")
	case d.getenv("KUBERNETES_SERVICE_HOST") != "":
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies the browser can write its profile and reports pool sizing.
func (d *doctor) checkSystem(result *doctorResult) {
	result.System.GOMAXPROCS = runtime.GOMAXPROCS(0)
	result.System.Workers = html2pptx.ResolvePoolSize(0)

	tmpDir := d.tempDir()
	f, err := os.CreateTemp(tmpDir, "html2pptx-doctor-*")
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Temp directory not writable: %s", tmpDir))
		return
	}
	_ = f.Close()
	_ = os.Remove(filepath.Clean(f.Name()))
	result.System.TempWritable = true
}

// printDoctorResult writes the human-readable report.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintf(w, "html2pptx doctor\n\n")

	section(w, "Chrome/Chromium")
	if r.Chrome.Found {
		item(w, "OK", "Found at %s", r.Chrome.Path)
		if r.Chrome.Version != "" {
			item(w, "OK", "Version: %s", r.Chrome.Version)
		}
		sandbox := "enabled"
		if !r.Chrome.Sandbox {
			sandbox = "disabled (ROD_NO_SANDBOX=1)"
		}
		item(w, "OK", "Sandbox: %s", sandbox)
	} else {
		item(w, "ERROR", "Not found")
	}

	section(w, "Environment")
	item(w, "OK", "Platform: %s/%s", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		item(w, "OK", "Container: detected (%s)", r.Env.ContainerHint)
	}
	if r.Env.CI {
		item(w, "OK", "CI: detected")
	}

	section(w, "System")
	if r.System.TempWritable {
		item(w, "OK", "Temp directory: writable")
	} else {
		item(w, "ERROR", "Temp directory: not writable")
	}
	item(w, "OK", "Workers: %d (GOMAXPROCS %d)", r.System.Workers, r.System.GOMAXPROCS)

	if len(r.Warnings) > 0 {
		section(w, "Warnings:")
		for _, warn := range r.Warnings {
			item(w, "WARN", "%s", warn)
		}
	}
	if len(r.Errors) > 0 {
		section(w, "Errors:")
		for _, e := range r.Errors {
			item(w, "ERROR", "%s", e)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, statusLine[r.Status])
}

var statusLine = map[string]string{
	"ready":    "Status: Ready to render",
	"warnings": "Status: Ready with warnings",
	"errors":   "Status: Not ready (see errors above)",
}

// section starts a report block, separated from the previous one.
func section(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n", title)
}

func item(w io.Writer, level, format string, args ...any) {
	fmt.Fprintf(w, "  [%s] %s\n", level, fmt.Sprintf(format, args...))
}
