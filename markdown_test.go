package html2pptx

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestGoldmarkConverter_ToHTML(t *testing.T) {
	t.Parallel()

	conv := NewGoldmarkConverter()

	tests := []struct {
		name     string
		input    string
		contains []string
		excludes []string
	}{
		{
			name:     "heading in slide container",
			input:    "# Quarterly results",
			contains: []string{`class="slide-container markdown-slide"`, "<h1>Quarterly results</h1>"},
		},
		{
			name:     "table",
			input:    "| a | b |\n|---|---|\n| 1 | 2 |",
			contains: []string{"<table>", "<td>1</td>"},
		},
		{
			name:     "strikethrough",
			input:    "~~old~~",
			contains: []string{"<del>old</del>"},
		},
		{
			name:     "code highlighted inline",
			input:    "```go\nfunc main() {}\n```",
			contains: []string{"<pre", "style="},
			excludes: []string{`class="chroma"`},
		},
		{
			name:     "raw html dropped",
			input:    "<script>alert(1)</script>\n\ntext",
			contains: []string{"text"},
			excludes: []string{"<script>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := conv.ToHTML(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("ToHTML() unexpected error: %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q:\n%s", want, got)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(got, bad) {
					t.Errorf("output contains %q:\n%s", bad, got)
				}
			}
		})
	}
}

func TestGoldmarkConverter_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGoldmarkConverter().ToHTML(ctx, "# hi")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ToHTML() error = %v, want context.Canceled", err)
	}
}

func TestGoldmarkConverter_Stylesheet(t *testing.T) {
	t.Parallel()

	got, err := NewGoldmarkConverter().ToHTML(context.Background(), "text")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "<style>") || !strings.Contains(got, "font-size: 28px") {
		t.Errorf("default theme missing from output:\n%s", got)
	}

	custom := ".markdown-slide { color: rebeccapurple; }"
	got, err = NewGoldmarkConverter(WithStylesheet(custom)).ToHTML(context.Background(), "text")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, custom) || strings.Contains(got, "font-size: 28px") {
		t.Errorf("custom stylesheet not applied alone:\n%s", got)
	}
}
