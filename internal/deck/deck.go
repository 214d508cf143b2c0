// Package deck holds slide decks in process memory.
//
// A Store maps deck ids to decks. Each deck carries its own lock; Update and
// View run a callback while holding it, so mutations and exports of one deck
// never interleave while different decks proceed independently.
package deck

import (
	"errors"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// ErrNotFound reports an unknown deck id.
var ErrNotFound = errors.New("deck not found")

// Nominal page size of a new deck, in inches (16:9). Informational only;
// exported geometry is derived per slide.
const (
	NominalWidth  = 10.0
	NominalHeight = 5.625
)

// Slide is one rendered slide owned by a deck.
type Slide struct {
	ID      string
	Raster  []byte // full-resolution PNG
	Preview []byte // thumbnail PNG
	Width   int    // raster pixels
	Height  int
}

// Deck is an ordered list of slides. Its methods assume the caller holds the
// deck lock, which Store.Update and Store.View take care of.
type Deck struct {
	ID            string
	NominalWidth  float64
	NominalHeight float64

	mu      sync.Mutex
	slides  []Slide
	deleted bool // set under mu once the store has dropped the deck
}

// Slides returns a copy of the slide list in deck order.
func (d *Deck) Slides() []Slide {
	return slices.Clone(d.slides)
}

// Len returns the number of slides.
func (d *Deck) Len() int {
	return len(d.slides)
}

// Append adds s at the end of the deck.
func (d *Deck) Append(s Slide) {
	d.slides = append(d.slides, s)
}

// Remove deletes the slide with the given id and reports whether one existed.
// Removing an absent id leaves the deck unchanged.
func (d *Deck) Remove(slideID string) bool {
	before := len(d.slides)
	d.slides = slices.DeleteFunc(d.slides, func(s Slide) bool { return s.ID == slideID })
	return len(d.slides) != before
}

// Reorder replaces the slide order with ids. Ids that name no slide are
// ignored, repeated ids keep their first position, and slides whose ids are
// not listed are dropped from the deck.
func (d *Deck) Reorder(ids []string) {
	byID := make(map[string]Slide, len(d.slides))
	for _, s := range d.slides {
		byID[s.ID] = s
	}

	seen := make(map[string]bool, len(ids))
	ordered := make([]Slide, 0, len(ids))
	for _, id := range ids {
		s, ok := byID[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		ordered = append(ordered, s)
	}
	d.slides = ordered
}

// Store is a concurrency-safe registry of decks.
type Store struct {
	mu    sync.RWMutex
	decks map[string]*Deck
	newID func() string
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the uuid generator used for deck and slide ids.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		s.newID = fn
	}
}

// NewStore returns an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		decks: make(map[string]*Deck),
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewID returns a fresh identifier for a deck or slide.
func (s *Store) NewID() string {
	return s.newID()
}

// Create registers an empty deck and returns its id.
func (s *Store) Create() string {
	d := &Deck{
		ID:            s.newID(),
		NominalWidth:  NominalWidth,
		NominalHeight: NominalHeight,
	}

	s.mu.Lock()
	s.decks[d.ID] = d
	s.mu.Unlock()

	return d.ID
}

// Delete removes a deck and all its slides. It waits for a running Update
// or View on the deck; later ones report ErrNotFound.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	d, ok := s.decks[id]
	if !ok {
		s.mu.Unlock()
		return ErrNotFound
	}
	delete(s.decks, id)
	s.mu.Unlock()

	d.mu.Lock()
	d.deleted = true
	d.slides = nil
	d.mu.Unlock()
	return nil
}

// Exists reports whether id names a deck.
func (s *Store) Exists(id string) bool {
	_, err := s.get(id)
	return err == nil
}

// Len returns the number of decks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.decks)
}

// Update runs fn with the deck's lock held.
func (s *Store) Update(id string, fn func(*Deck) error) error {
	d, err := s.get(id)
	if err != nil {
		return err
	}
	return d.update(fn)
}

// View runs fn with the deck's lock held. fn must not modify the deck.
func (s *Store) View(id string, fn func(*Deck) error) error {
	return s.Update(id, fn)
}

// update runs fn under the deck lock. A deck deleted between the store
// lookup and the lock is reported as not found.
func (d *Deck) update(fn func(*Deck) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.deleted {
		return ErrNotFound
	}
	return fn(d)
}

func (s *Store) get(id string) (*Deck, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.decks[id]
	if !ok {
		return nil, ErrNotFound
	}
	return d, nil
}
