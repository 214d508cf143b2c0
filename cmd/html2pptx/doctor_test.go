package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestDoctor(t *testing.T, vars map[string]string, chrome string) *doctor {
	t.Helper()

	return &doctor{
		getenv:        func(k string) string { return vars[k] },
		lookPath:      func() (string, bool) { return chrome, chrome != "" },
		chromeVersion: func(string) (string, error) { return "Chromium 131.0.0.0", nil },
		tempDir:       t.TempDir,
		isContainer:   func() bool { return false },
	}
}

// fakeChrome returns the path of an existing file standing in for the browser.
func fakeChrome(t *testing.T) string {
	t.Helper()
	return writeFile(t, t.TempDir(), "chromium", "#!/bin/sh\n")
}

func TestDoctor_Run(t *testing.T) {
	t.Parallel()

	chrome := fakeChrome(t)

	tests := []struct {
		name       string
		vars       map[string]string
		chrome     string
		setup      func(d *doctor)
		wantStatus string
		check      func(t *testing.T, r *doctorResult)
	}{
		{
			name:       "ready",
			chrome:     chrome,
			wantStatus: "ready",
			check: func(t *testing.T, r *doctorResult) {
				if !r.Chrome.Found || r.Chrome.Path != chrome || r.Chrome.Version != "Chromium 131.0.0.0" || !r.Chrome.Sandbox {
					t.Errorf("Chrome = %+v", r.Chrome)
				}
				if !r.System.TempWritable || r.System.Workers < 1 {
					t.Errorf("System = %+v", r.System)
				}
			},
		},
		{
			name:       "chrome missing",
			wantStatus: "errors",
			check: func(t *testing.T, r *doctorResult) {
				if r.Chrome.Found || len(r.Errors) != 1 || !strings.Contains(r.Errors[0], "ROD_BROWSER_BIN") {
					t.Errorf("result = %+v", r)
				}
			},
		},
		{
			name:       "browser bin does not exist",
			vars:       map[string]string{"ROD_BROWSER_BIN": "/nonexistent/chrome"},
			chrome:     chrome,
			wantStatus: "errors",
		},
		{
			name:       "browser bin wins over lookup",
			vars:       map[string]string{"ROD_BROWSER_BIN": chrome, "ROD_NO_SANDBOX": "1"},
			wantStatus: "ready",
			check: func(t *testing.T, r *doctorResult) {
				if r.Chrome.Path != chrome || r.Chrome.Sandbox {
					t.Errorf("Chrome = %+v", r.Chrome)
				}
			},
		},
		{
			name:   "version failure warns",
			chrome: chrome,
			setup: func(d *doctor) {
				d.chromeVersion = func(string) (string, error) { return "", errors.New("exit status 1") }
			},
			wantStatus: "warnings",
		},
		{
			name:       "container without no-sandbox warns",
			vars:       map[string]string{"KUBERNETES_SERVICE_HOST": "10.0.0.1"},
			chrome:     chrome,
			wantStatus: "warnings",
			check: func(t *testing.T, r *doctorResult) {
				if !r.Env.Container || r.Env.ContainerHint != "KUBERNETES_SERVICE_HOST" {
					t.Errorf("Env = %+v", r.Env)
				}
			},
		},
		{
			name:       "ci with no-sandbox is ready",
			vars:       map[string]string{"GITHUB_ACTIONS": "true", "ROD_NO_SANDBOX": "1"},
			chrome:     chrome,
			wantStatus: "ready",
			check: func(t *testing.T, r *doctorResult) {
				if !r.Env.CI {
					t.Error("CI not detected")
				}
			},
		},
		{
			name:   "dockerenv",
			chrome: chrome,
			setup: func(d *doctor) {
				d.isContainer = func() bool { return true }
			},
			wantStatus: "warnings",
			check: func(t *testing.T, r *doctorResult) {
				if r.Env.ContainerHint != "/.dockerenv" {
					t.Errorf("ContainerHint = %q", r.Env.ContainerHint)
				}
			},
		},
		{
			name:   "temp not writable",
			chrome: chrome,
			setup: func(d *doctor) {
				d.tempDir = func() string { return filepath.Join(os.DevNull, "sub") }
			},
			wantStatus: "errors",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := newTestDoctor(t, tt.vars, tt.chrome)
			if tt.setup != nil {
				tt.setup(d)
			}
			r := d.run()
			if r.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q (warnings %v, errors %v)", r.Status, tt.wantStatus, r.Warnings, r.Errors)
			}
			if tt.check != nil {
				tt.check(t, r)
			}
		})
	}
}

func TestPrintDoctorResult(t *testing.T) {
	t.Parallel()

	d := newTestDoctor(t, map[string]string{"HTML2PPTX_CONTAINER": "1"}, fakeChrome(t))
	var buf bytes.Buffer
	printDoctorResult(&buf, d.run())

	out := buf.String()
	for _, want := range []string{
		"html2pptx doctor",
		"[OK] Version: Chromium 131.0.0.0",
		"Container: detected (HTML2PPTX_CONTAINER=1)",
		"[WARN] Container/CI detected",
		"Status: Ready with warnings",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunDoctorCmd_Flags(t *testing.T) {
	t.Parallel()

	env, stdout, _ := testEnv(&fakeRenderer{}, nil)
	if code := runDoctorCmd([]string{"--help"}, env); code != ExitSuccess {
		t.Errorf("--help exit code = %d, want %d", code, ExitSuccess)
	}
	if code := runDoctorCmd([]string{"--bogus"}, env); code != ExitUsage {
		t.Errorf("--bogus exit code = %d, want %d", code, ExitUsage)
	}
	if stdout.Len() != 0 {
		t.Errorf("flag errors should not run checks, stdout = %q", stdout)
	}
}

func TestDoctorResult_JSON(t *testing.T) {
	t.Parallel()

	r := newTestDoctor(t, nil, "").run()
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatal(err)
	}

	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got["status"] != "errors" {
		t.Errorf("status = %v, want errors", got["status"])
	}
	for _, key := range []string{"chrome", "environment", "system", "errors"} {
		if _, ok := got[key]; !ok {
			t.Errorf("JSON missing %q: %s", key, data)
		}
	}
}
