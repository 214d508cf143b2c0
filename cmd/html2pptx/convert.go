package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-html2pptx"
	"github.com/alnah/go-html2pptx/internal/fileutil"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

const defaultOutput = html2pptx.DefaultFilename + ".pptx"

// slideSource is one input file, in deck order.
type slideSource struct {
	Path     string
	Markdown bool
}

// runConvert renders every input into one slide and writes the deck.
func runConvert(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	cfg, err := loadSettings(flags.common, flags.render, env)
	if err != nil {
		return err
	}
	if flags.transition != "" {
		cfg.Render.Transition = flags.transition
	}
	if flags.direction != "" {
		cfg.Render.Direction = flags.direction
	}
	transition, err := html2pptx.ParseTransition(cfg.Render.Transition, cfg.Render.Direction)
	if err != nil {
		return err
	}
	timeout, err := cfg.RenderTimeout()
	if err != nil {
		return err
	}

	sources, err := discoverSources(positional)
	if err != nil {
		return err
	}
	output := resolveOutputPath(flags.output, sources)

	markdown, err := markdownConverter(cfg)
	if err != nil {
		return err
	}

	logger := newLogger(env.Stderr, cfg.Log.Level)
	size := min(html2pptx.ResolvePoolSize(cfg.Render.Workers), len(sources))
	pool := env.newPool(size, timeout)
	defer func() {
		if err := pool.Close(); err != nil {
			logger.Warn("closing renderers", "err", err)
		}
	}()

	studio := html2pptx.NewStudio(pool,
		html2pptx.WithLogger(logger),
		html2pptx.WithMarkdownConverter(markdown),
		html2pptx.WithAssembleOptions(assembleOptions(transition)...),
	)

	start := env.Now()
	data, err := buildDeck(ctx, studio, sources, cfg.Render.DefaultWidth, cfg.Render.DefaultHeight, size)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(output), dirPermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	if err := fileutil.WriteFileAtomic(output, data, filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	switch {
	case flags.common.quiet:
	case flags.common.verbose:
		fmt.Fprintf(env.Stdout, "Created %s (%d slides, %v)\n", output, len(sources), env.Now().Sub(start).Round(time.Millisecond))
	default:
		fmt.Fprintf(env.Stdout, "Created %s (%d slides)\n", output, len(sources))
	}
	return nil
}

// buildDeck renders sources concurrently into a fresh deck, restores input
// order, and exports it. The first failure cancels the remaining renders.
func buildDeck(ctx context.Context, studio *html2pptx.Studio, sources []slideSource, width, height, workers int) ([]byte, error) {
	deck := studio.CreateDeck()
	defer func() { _ = studio.DeleteDeck(deck.ID) }()

	ids := make([]string, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, src := range sources {
		g.Go(func() error {
			content, err := os.ReadFile(src.Path) // #nosec G304 -- user-provided input path
			if err != nil {
				return fmt.Errorf("%w: %s: %v", ErrReadInput, src.Path, err)
			}

			in := html2pptx.SlideInput{Width: width, Height: height}
			if src.Markdown {
				in.Markdown = string(content)
			} else {
				in.HTML = string(content)
			}

			view, err := studio.AddSlide(gctx, deck.ID, in)
			if err != nil {
				return fmt.Errorf("%s: %w", src.Path, err)
			}
			ids[i] = view.ID
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := studio.ReorderSlides(deck.ID, ids); err != nil {
		return nil, err
	}
	return studio.Export(deck.ID)
}

// discoverSources expands args into slide sources. Directories contribute
// their supported files sorted by name; files are taken as given.
func discoverSources(args []string) ([]slideSource, error) {
	if len(args) == 0 {
		return nil, ErrNoInput
	}

	var sources []slideSource
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReadInput, err)
		}

		if !info.IsDir() {
			kind, ok := sourceKind(arg)
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrUnsupportedInput, arg)
			}
			sources = append(sources, slideSource{Path: arg, Markdown: kind})
			continue
		}

		// os.ReadDir returns entries sorted by filename.
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReadInput, err)
		}
		found := 0
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			kind, ok := sourceKind(e.Name())
			if !ok {
				continue
			}
			sources = append(sources, slideSource{Path: filepath.Join(arg, e.Name()), Markdown: kind})
			found++
		}
		if found == 0 {
			return nil, fmt.Errorf("%w: no slides in %s", ErrNoInput, arg)
		}
	}
	return sources, nil
}

// sourceKind reports whether path is markdown, and whether it is supported at all.
func sourceKind(path string) (markdown, ok bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return false, true
	case ".md", ".markdown":
		return true, true
	}
	return false, false
}

// resolveOutputPath picks the deck path: the flag if given, the single
// input's name with a .pptx extension, or presentation.pptx.
func resolveOutputPath(flagOutput string, sources []slideSource) string {
	if flagOutput != "" {
		if !strings.EqualFold(filepath.Ext(flagOutput), ".pptx") {
			return flagOutput + ".pptx"
		}
		return flagOutput
	}
	if len(sources) == 1 {
		return fileutil.ReplaceExt(sources[0].Path, ".pptx")
	}
	return defaultOutput
}
