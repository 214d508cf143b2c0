package html2pptx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-html2pptx/internal/deck"
)

// DefaultFilename names exports when the caller gives no filename.
const DefaultFilename = "presentation"

// RendererSource hands out renderers for exclusive use.
// RendererPool implements it.
type RendererSource interface {
	Acquire() (Renderer, error)
	Release(Renderer)
}

// Compile-time interface check.
var _ RendererSource = (*RendererPool)(nil)

// RenderObserver is called after every capture with its duration and result.
type RenderObserver func(d time.Duration, err error)

// SlideInput is the content of a new slide: exactly one of HTML or Markdown.
type SlideInput struct {
	HTML     string
	Markdown string
	Width    int
	Height   int
}

// SlideView describes a stored slide.
type SlideView struct {
	ID      string `json:"id"`
	Preview string `json:"preview"` // data: URI
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

// DeckSummary lists a deck's slides in order.
type DeckSummary struct {
	ID     string      `json:"id"`
	Slides []SlideView `json:"slides"`
}

// Studio runs deck operations: it renders slides, keeps decks in a store,
// and exports them as presentations.
type Studio struct {
	store     *deck.Store
	renderers RendererSource
	markdown  MarkdownConverter
	logger    *log.Logger
	observe   RenderObserver
	assemble  []AssembleOption
}

// StudioOption configures a Studio.
type StudioOption func(*Studio)

// WithStore sets the deck store. Defaults to an empty in-memory store.
func WithStore(s *deck.Store) StudioOption {
	return func(st *Studio) {
		st.store = s
	}
}

// WithLogger sets the logger. Defaults to a discarding logger.
func WithLogger(l *log.Logger) StudioOption {
	return func(st *Studio) {
		st.logger = l
	}
}

// WithMarkdownConverter replaces the goldmark converter.
func WithMarkdownConverter(c MarkdownConverter) StudioOption {
	return func(st *Studio) {
		st.markdown = c
	}
}

// WithRenderObserver registers a callback for capture timing.
func WithRenderObserver(fn RenderObserver) StudioOption {
	return func(st *Studio) {
		st.observe = fn
	}
}

// WithAssembleOptions passes options to every export.
func WithAssembleOptions(opts ...AssembleOption) StudioOption {
	return func(st *Studio) {
		st.assemble = append(st.assemble, opts...)
	}
}

// NewStudio creates a Studio that renders with renderers.
func NewStudio(renderers RendererSource, opts ...StudioOption) *Studio {
	st := &Studio{
		renderers: renderers,
	}
	for _, opt := range opts {
		opt(st)
	}
	if st.store == nil {
		st.store = deck.NewStore()
	}
	if st.markdown == nil {
		st.markdown = NewGoldmarkConverter()
	}
	if st.logger == nil {
		st.logger = log.New(io.Discard)
	}
	return st
}

// CreateDeck registers an empty deck.
func (st *Studio) CreateDeck() DeckSummary {
	id := st.store.Create()
	st.logger.Debug("deck created", "deck", id)
	return DeckSummary{ID: id, Slides: []SlideView{}}
}

// DeleteDeck removes a deck and its slides.
func (st *Studio) DeleteDeck(deckID string) error {
	if err := st.store.Delete(deckID); err != nil {
		return notFound(deckID, err)
	}
	st.logger.Debug("deck deleted", "deck", deckID)
	return nil
}

// Deck returns the deck's slides in order.
func (st *Studio) Deck(deckID string) (DeckSummary, error) {
	sum := DeckSummary{ID: deckID, Slides: []SlideView{}}
	err := st.store.View(deckID, func(d *deck.Deck) error {
		for _, s := range d.Slides() {
			sum.Slides = append(sum.Slides, slideView(s))
		}
		return nil
	})
	if err != nil {
		return DeckSummary{}, notFound(deckID, err)
	}
	return sum, nil
}

// AddSlide renders in and appends it to the deck. Rendering happens without
// the deck lock, so other operations on the deck proceed meanwhile; the
// slide is appended only once it is fully rendered and validated.
func (st *Studio) AddSlide(ctx context.Context, deckID string, in SlideInput) (SlideView, error) {
	if !st.store.Exists(deckID) {
		return SlideView{}, notFound(deckID, deck.ErrNotFound)
	}
	fragment, err := st.fragment(ctx, in)
	if err != nil {
		return SlideView{}, err
	}

	raster, err := st.capture(ctx, RenderRequest{HTML: fragment, Width: in.Width, Height: in.Height})
	if err != nil {
		return SlideView{}, err
	}
	if _, _, _, err := slideGeometry(*raster); err != nil {
		return SlideView{}, err
	}
	preview, err := Preview(raster.PNG)
	if err != nil {
		return SlideView{}, err
	}

	s := deck.Slide{
		ID:      st.store.NewID(),
		Raster:  raster.PNG,
		Preview: preview,
		Width:   raster.Width,
		Height:  raster.Height,
	}
	err = st.store.Update(deckID, func(d *deck.Deck) error {
		d.Append(s)
		return nil
	})
	if err != nil {
		// deck deleted while rendering
		return SlideView{}, notFound(deckID, err)
	}

	st.logger.Info("slide added", "deck", deckID, "slide", s.ID, "width", s.Width, "height", s.Height)
	return slideView(s), nil
}

// fragment validates the input and returns the HTML to render.
func (st *Studio) fragment(ctx context.Context, in SlideInput) (string, error) {
	hasHTML := strings.TrimSpace(in.HTML) != ""
	hasMarkdown := strings.TrimSpace(in.Markdown) != ""

	switch {
	case hasHTML && hasMarkdown:
		return "", ErrAmbiguousContent
	case hasHTML:
		return in.HTML, nil
	case hasMarkdown:
		return st.markdown.ToHTML(ctx, in.Markdown)
	}
	return "", ErrEmptyContent
}

func (st *Studio) capture(ctx context.Context, req RenderRequest) (*Raster, error) {
	r, err := st.renderers.Acquire()
	if err != nil {
		return nil, err
	}
	defer st.renderers.Release(r)

	start := time.Now()
	raster, err := r.Capture(ctx, req)
	elapsed := time.Since(start)

	if st.observe != nil {
		st.observe(elapsed, err)
	}
	if err != nil {
		st.logger.Warn("render failed", "err", err, "duration", elapsed.Round(time.Millisecond))
		return nil, err
	}
	st.logger.Debug("rendered", "width", raster.Width, "height", raster.Height, "duration", elapsed.Round(time.Millisecond))
	return raster, nil
}

// DeleteSlide removes a slide from a deck. An unknown slide id is not an
// error and leaves the deck unchanged; an unknown deck is ErrNotFound.
func (st *Studio) DeleteSlide(deckID, slideID string) error {
	var removed bool
	err := st.store.Update(deckID, func(d *deck.Deck) error {
		removed = d.Remove(slideID)
		return nil
	})
	if err != nil {
		return notFound(deckID, err)
	}
	st.logger.Debug("slide deleted", "deck", deckID, "slide", slideID, "removed", removed)
	return nil
}

// ReorderSlides sets the deck's slide order to ids. Unknown ids are
// ignored, duplicates keep their first position, and unlisted slides are
// removed from the deck.
func (st *Studio) ReorderSlides(deckID string, ids []string) error {
	err := st.store.Update(deckID, func(d *deck.Deck) error {
		d.Reorder(ids)
		return nil
	})
	if err != nil {
		return notFound(deckID, err)
	}
	return nil
}

// Export assembles the deck into a presentation. The deck is locked for the
// whole assembly, so concurrent edits wait for the export to finish.
func (st *Studio) Export(deckID string) ([]byte, error) {
	var data []byte
	err := st.store.View(deckID, func(d *deck.Deck) error {
		slides := d.Slides()
		rasters := make([]Raster, len(slides))
		for i, s := range slides {
			rasters[i] = Raster{PNG: s.Raster, Width: s.Width, Height: s.Height}
		}

		var err error
		data, err = Assemble(rasters, st.assemble...)
		return err
	})
	if err != nil {
		return nil, notFound(deckID, err)
	}
	st.logger.Info("deck exported", "deck", deckID, "bytes", len(data))
	return data, nil
}

// ExportPair exports two decks concurrently, each into its own document.
// Both decks must exist.
func (st *Studio) ExportPair(deckA, deckB string) ([]byte, []byte, error) {
	for _, id := range []string{deckA, deckB} {
		if !st.store.Exists(id) {
			return nil, nil, notFound(id, deck.ErrNotFound)
		}
	}

	var a, b []byte
	var g errgroup.Group
	g.Go(func() error {
		var err error
		a, err = st.Export(deckA)
		return err
	})
	g.Go(func() error {
		var err error
		b, err = st.Export(deckB)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

func slideView(s deck.Slide) SlideView {
	return SlideView{
		ID:      s.ID,
		Preview: DataURI(s.Preview),
		Width:   s.Width,
		Height:  s.Height,
	}
}

// notFound translates the store's not-found error; other errors pass through.
func notFound(deckID string, err error) error {
	if errors.Is(err, deck.ErrNotFound) {
		return fmt.Errorf("%w: deck %s", ErrNotFound, deckID)
	}
	return err
}

// ExportFilename returns the attachment name for a single export.
func ExportFilename(name string) string {
	return SanitizeFilename(name) + ".pptx"
}

// PairFilenames returns the attachment names for a paired export.
func PairFilenames(name string) (string, string) {
	base := SanitizeFilename(name)
	return base + "_1.pptx", base + "_2.pptx"
}

// SanitizeFilename strips path separators, reserved characters and control
// characters from name. An empty result becomes DefaultFilename.
func SanitizeFilename(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || strings.ContainsRune(`/\:*?"<>|`, r) {
			return -1
		}
		return r
	}, name)
	cleaned = strings.TrimSpace(cleaned)
	cleaned = strings.TrimSuffix(cleaned, ".pptx")
	cleaned = strings.Trim(cleaned, ". ")
	if cleaned == "" {
		return DefaultFilename
	}
	return cleaned
}
