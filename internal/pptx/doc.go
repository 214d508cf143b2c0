// Package pptx is a small PresentationML writer for image-per-slide decks.
//
// It models just enough of the format to produce a package that opens in
// PowerPoint, Keynote and LibreOffice: one slide master, one blank layout, a
// theme, and a list of slides whose shape trees hold pictures. Slide roots are
// kept as an ordered list of typed nodes so that transitions can be inserted
// and removed by kind without touching raw XML.
//
// Measurements are English Metric Units (EMU): 914400 per inch. The package
// has a single page size shared by every slide; SetSlideSize overwrites it.
package pptx
