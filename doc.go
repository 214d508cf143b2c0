// Package html2pptx turns HTML fragments into slide decks.
//
// Each slide is rendered by headless Chrome into a PNG, the slide is sized to
// the image's aspect ratio, and the image is embedded full-bleed in a
// PowerPoint (PresentationML) package with a fade transition.
//
// # Quick Start
//
//	pool := html2pptx.NewRendererPool(2)
//	defer pool.Close()
//
//	r, err := pool.Acquire()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	raster, err := r.Capture(ctx, html2pptx.RenderRequest{HTML: "<h1>Hello</h1>"})
//	pool.Release(r)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	data, err := html2pptx.Assemble([]html2pptx.Raster{*raster})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("deck.pptx", data, 0o644)
//
// # Pipeline
//
//  1. Capture: the fragment is wrapped in a host document that fills the
//     viewport, loaded in a fresh incognito context, left to settle, and
//     screenshotted at 2x device scale.
//  2. Geometry: ComputeSlideSize fits the raster's aspect ratio inside a
//     13.333x7.5 inch box.
//  3. Build: the raster is resampled with Lanczos to 96 pixels per inch and
//     placed at the origin, filling the slide.
//  4. Assemble: slides are written in order into a fresh document.
//
// The format stores one page size per document. Each slide sets it as it is
// built, so the exported page size is the last slide's geometry.
//
// # Decks
//
// Studio keeps decks in memory and exposes the create, add, delete, reorder
// and export operations used by the HTTP server and the CLI.
package html2pptx
