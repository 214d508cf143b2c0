package main

import (
	"io"
	"os"
	"time"

	"github.com/alnah/go-html2pptx"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now         func() time.Time
	Stdout      io.Writer
	Stderr      io.Writer
	Getenv      func(string) string
	Environ     func() []string
	NewRenderer func(timeout time.Duration) html2pptx.Renderer
}

// DefaultEnv returns the production environment backed by headless Chrome.
func DefaultEnv() *Environment {
	return &Environment{
		Now:     time.Now,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Getenv:  os.Getenv,
		Environ: os.Environ,
		NewRenderer: func(timeout time.Duration) html2pptx.Renderer {
			return html2pptx.NewRodRenderer(timeout)
		},
	}
}

// newPool builds a renderer pool of n workers using env's renderer factory.
func (env *Environment) newPool(n int, timeout time.Duration) *html2pptx.RendererPool {
	return html2pptx.NewRendererPoolFunc(n, func() html2pptx.Renderer {
		return env.NewRenderer(timeout)
	})
}
