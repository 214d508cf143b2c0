package pptx

import (
	"archive/zip"
	"embed"
	"encoding/xml"
	"fmt"
	"io"
	"time"
)

// XML namespaces.
const (
	nsPresentationML = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsDrawingML      = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsRelationships  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsPackageRels    = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsContentTypes   = "http://schemas.openxmlformats.org/package/2006/content-types"
	nsCoreProps      = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	nsExtendedProps  = "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties"
	nsDocPropsVTypes = "http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes"
)

// Relationship types.
const (
	relOfficeDocument = nsRelationships + "/officeDocument"
	relCoreProps      = nsPackageRels + "/metadata/core-properties"
	relExtendedProps  = nsRelationships + "/extended-properties"
	relSlideMaster    = nsRelationships + "/slideMaster"
	relSlideLayout    = nsRelationships + "/slideLayout"
	relSlide          = nsRelationships + "/slide"
	relTheme          = nsRelationships + "/theme"
	relPresProps      = nsRelationships + "/presProps"
	relViewProps      = nsRelationships + "/viewProps"
	relTableStyles    = nsRelationships + "/tableStyles"
	relImage          = nsRelationships + "/image"
)

// Content types.
const (
	ctRelationships = "application/vnd.openxmlformats-package.relationships+xml"
	ctXML           = "application/xml"
	ctPNG           = "image/png"
	ctPresentation  = "application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"
	ctSlide         = "application/vnd.openxmlformats-officedocument.presentationml.slide+xml"
	ctSlideMaster   = "application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"
	ctSlideLayout   = "application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"
	ctTheme         = "application/vnd.openxmlformats-officedocument.theme+xml"
	ctPresProps     = "application/vnd.openxmlformats-officedocument.presentationml.presProps+xml"
	ctViewProps     = "application/vnd.openxmlformats-officedocument.presentationml.viewProps+xml"
	ctTableStyles   = "application/vnd.openxmlformats-officedocument.presentationml.tableStyles+xml"
	ctCoreProps     = "application/vnd.openxmlformats-package.core-properties+xml"
	ctExtendedProps = "application/vnd.openxmlformats-officedocument.extended-properties+xml"
)

// MediaType is the MIME type of a serialized presentation.
const MediaType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

const xmlProlog = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// Notes page size, 7.5x10 inches.
const (
	notesWidth  EMU = 6858000
	notesHeight EMU = 9144000
)

// Slide ids start at 256; master ids live above 2^31.
const (
	firstSlideID  = 256
	slideMasterID = 2147483648
)

// Static parts shared by every package.
//
//go:embed parts/*.xml
var staticParts embed.FS

var staticPartFiles = []struct {
	name, src string
}{
	{"ppt/slideMasters/slideMaster1.xml", "parts/slideMaster1.xml"},
	{"ppt/slideMasters/_rels/slideMaster1.xml.rels", "parts/slideMaster1.xml.rels.xml"},
	{"ppt/slideLayouts/slideLayout1.xml", "parts/slideLayout1.xml"},
	{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", "parts/slideLayout1.xml.rels.xml"},
	{"ppt/theme/theme1.xml", "parts/theme1.xml"},
	{"ppt/presProps.xml", "parts/presProps.xml"},
	{"ppt/viewProps.xml", "parts/viewProps.xml"},
	{"ppt/tableStyles.xml", "parts/tableStyles.xml"},
}

// packageWriter streams package parts into a zip archive.
type packageWriter struct {
	zw *zip.Writer
}

func newPackageWriter(w io.Writer) *packageWriter {
	return &packageWriter{zw: zip.NewWriter(w)}
}

func (pw *packageWriter) close() error { return pw.zw.Close() }

func (pw *packageWriter) writePresentation(p *Presentation, now time.Time) error {
	n := len(p.slides)

	if err := pw.writeXML("[Content_Types].xml", contentTypesFor(n)); err != nil {
		return err
	}
	if err := pw.writeXML("_rels/.rels", rootRels()); err != nil {
		return err
	}
	if err := pw.writeXML("docProps/core.xml", corePropsFor(p.Creator, now)); err != nil {
		return err
	}
	if err := pw.writeXML("docProps/app.xml", appPropsFor(n)); err != nil {
		return err
	}
	if err := pw.writeXML("ppt/presentation.xml", presentationFor(p)); err != nil {
		return err
	}
	if err := pw.writeXML("ppt/_rels/presentation.xml.rels", presentationRels(n)); err != nil {
		return err
	}
	for _, f := range staticPartFiles {
		data, err := staticParts.ReadFile(f.src)
		if err != nil {
			return fmt.Errorf("reading %s: %w", f.src, err)
		}
		if err := pw.writeBytes(f.name, data); err != nil {
			return err
		}
	}

	media := 0
	for i, s := range p.slides {
		num := i + 1
		rels := relationships{
			Xmlns: nsPackageRels,
			Rels: []relationship{
				{ID: "rId1", Type: relSlideLayout, Target: "../slideLayouts/slideLayout1.xml"},
			},
		}
		for j, pic := range s.common.pictures {
			media++
			name := fmt.Sprintf("image%d.png", media)
			if err := pw.writeBytes("ppt/media/"+name, pic.Data); err != nil {
				return err
			}
			rels.Rels = append(rels.Rels, relationship{ID: pictureRelID(j), Type: relImage, Target: "../media/" + name})
		}
		if err := pw.writeXML(fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", num), rels); err != nil {
			return err
		}
		if err := pw.writeSlide(fmt.Sprintf("ppt/slides/slide%d.xml", num), s); err != nil {
			return err
		}
	}
	return nil
}

func (pw *packageWriter) create(name string) (io.Writer, error) {
	w, err := pw.zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return w, nil
}

func (pw *packageWriter) writeBytes(name string, data []byte) error {
	w, err := pw.create(name)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

func (pw *packageWriter) writeXML(name string, v any) error {
	w, err := pw.create(name)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, xmlProlog); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err := xml.NewEncoder(w).Encode(v); err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	return nil
}

func (pw *packageWriter) writeSlide(name string, s *Slide) error {
	w, err := pw.create(name)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, xmlProlog); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err := s.encode(xml.NewEncoder(w)); err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	return nil
}
