// Package server exposes deck operations over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/alnah/go-html2pptx"
)

// Service is the set of deck operations the HTTP surface drives.
// *html2pptx.Studio implements it.
type Service interface {
	CreateDeck() html2pptx.DeckSummary
	Deck(deckID string) (html2pptx.DeckSummary, error)
	DeleteDeck(deckID string) error
	AddSlide(ctx context.Context, deckID string, in html2pptx.SlideInput) (html2pptx.SlideView, error)
	DeleteSlide(deckID, slideID string) error
	ReorderSlides(deckID string, ids []string) error
	Export(deckID string) ([]byte, error)
	ExportPair(deckA, deckB string) ([]byte, []byte, error)
}

// Compile-time interface check.
var _ Service = (*html2pptx.Studio)(nil)

// Settings tunes the HTTP surface. Rates are requests per minute per
// client; zero disables the limit.
type Settings struct {
	AllowedOrigin string // "*" allows any origin
	Domain        string // public base URL for robots.txt and sitemap.xml
	BodyLimit     int64  // bytes

	GlobalRate   int
	AddSlideRate int
	ExportRate   int

	// Viewport used when an add-slide request omits width or height.
	DefaultWidth  int
	DefaultHeight int
}

// Default values for Settings fields left zero.
const (
	DefaultBodyLimit = 5 << 20
	DefaultDomain    = "http://localhost:5000"
)

const shutdownTimeout = 30 * time.Second

// Server routes HTTP requests to a Service.
type Server struct {
	svc      Service
	settings Settings
	logger   *log.Logger
	metrics  *Metrics
	engine   *gin.Engine
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and error logger. Defaults to a discarding logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithMetrics records request metrics and serves them at /metrics.
// Without it, a private registry is used.
func WithMetrics(m *Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// New builds the router for svc.
func New(svc Service, settings Settings, opts ...Option) *Server {
	if settings.BodyLimit <= 0 {
		settings.BodyLimit = DefaultBodyLimit
	}
	if settings.Domain == "" {
		settings.Domain = DefaultDomain
	}
	if settings.AllowedOrigin == "" {
		settings.AllowedOrigin = "*"
	}

	s := &Server{svc: svc, settings: settings}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	if s.metrics == nil {
		s.metrics = NewMetrics(nil)
	}
	s.engine = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	// Trust no proxy headers; client identity for rate limits is the peer address.
	_ = r.SetTrustedProxies(nil)

	r.Use(
		gin.Recovery(),
		s.logRequests(),
		s.metrics.Middleware(),
		securityHeaders(),
		cors.New(corsConfig(s.settings.AllowedOrigin)),
		rateLimit(newLimiterSet(s.settings.GlobalRate)),
	)

	r.GET("/", s.index)
	r.GET("/robots.txt", s.robots)
	r.GET("/sitemap.xml", s.sitemap)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	api := r.Group("/api", limitBody(s.settings.BodyLimit))
	api.POST("/presentations", s.createDeck)
	api.GET("/presentations/:id", s.getDeck)
	api.DELETE("/presentations/:id", s.deleteDeck)
	api.POST("/presentations/:id/slides", rateLimit(newLimiterSet(s.settings.AddSlideRate)), s.addSlide)
	api.DELETE("/presentations/:id/slides/:slideId", s.deleteSlide)
	api.POST("/presentations/:id/slides/reorder", s.reorderSlides)

	exportLimit := rateLimit(newLimiterSet(s.settings.ExportRate))
	api.POST("/presentations/:id/export", exportLimit, s.export)
	api.POST("/export-both", exportLimit, s.exportBoth)

	return r
}

func corsConfig(origin string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowHeaders: []string{"Content-Type"},
		// Browsers need this to read the attachment name of an export.
		ExposeHeaders: []string{"Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if origin == "*" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = []string{origin}
	}
	return cfg
}

// Run serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving %s: %w", addr, err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
