package html2pptx

import (
	"bytes"
	"context"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/alnah/go-html2pptx/internal/assets"
)

// markdownSlideTemplate wraps rendered Markdown in a themed slide container.
const markdownSlideTemplate = `<style>
%s</style>
<div class="slide-container markdown-slide">
%s</div>`

// MarkdownConverter turns Markdown into an HTML slide fragment.
type MarkdownConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// Compile-time interface check.
var _ MarkdownConverter = (*GoldmarkConverter)(nil)

// GoldmarkConverter converts Markdown using goldmark.
type GoldmarkConverter struct {
	md         goldmark.Markdown
	stylesheet string
}

// MarkdownOption configures a GoldmarkConverter.
type MarkdownOption func(*GoldmarkConverter)

// WithStylesheet replaces the theme CSS applied to Markdown slides.
// Rules should target the .markdown-slide container.
func WithStylesheet(css string) MarkdownOption {
	return func(c *GoldmarkConverter) {
		c.stylesheet = css
	}
}

// NewGoldmarkConverter creates a converter with GFM extensions, footnotes, and
// syntax highlighting. Highlighting uses inline styles since slides carry no
// external stylesheet.
// The default theme applies unless WithStylesheet says otherwise.
func NewGoldmarkConverter(opts ...MarkdownOption) *GoldmarkConverter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(false),
				),
			),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
			// raw HTML in Markdown is dropped; use an html slide for markup
		),
	)
	c := &GoldmarkConverter{md: md}
	c.stylesheet, _ = assets.LoadTheme(assets.DefaultTheme) // embedded; cannot fail
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ToHTML converts Markdown content to a slide fragment.
// Goldmark has no context support, so conversion runs in a goroutine and the
// call returns early when ctx is done.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrMarkdown, err)}
			return
		}
		done <- result{html: fmt.Sprintf(markdownSlideTemplate, c.stylesheet, buf.String())}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}
