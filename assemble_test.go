package html2pptx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"
)

// openPackage returns the parts of a serialized presentation.
func openPackage(t *testing.T, data []byte) map[string][]byte {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("zip.NewReader() unexpected error: %v", err)
	}
	parts := make(map[string][]byte, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("opening %s: %v", f.Name, err)
		}
		b, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			t.Fatalf("reading %s: %v", f.Name, err)
		}
		parts[f.Name] = b
	}
	return parts
}

type presentationDoc struct {
	SldSz struct {
		CX int64 `xml:"cx,attr"`
		CY int64 `xml:"cy,attr"`
	} `xml:"sldSz"`
}

type slideDoc struct {
	Pics []struct {
		Off struct {
			X int64 `xml:"x,attr"`
			Y int64 `xml:"y,attr"`
		} `xml:"spPr>xfrm>off"`
		Ext struct {
			CX int64 `xml:"cx,attr"`
			CY int64 `xml:"cy,attr"`
		} `xml:"spPr>xfrm>ext"`
	} `xml:"cSld>spTree>pic"`
	Transitions []struct {
		Speed    string    `xml:"spd,attr"`
		AdvClick string    `xml:"advClick,attr"`
		Fade     *struct{} `xml:"fade"`
	} `xml:"transition"`
}

func unmarshalPart(t *testing.T, parts map[string][]byte, name string, v any) {
	t.Helper()

	data, ok := parts[name]
	if !ok {
		t.Fatalf("missing part %s", name)
	}
	if err := xml.Unmarshal(data, v); err != nil {
		t.Fatalf("xml.Unmarshal(%s) unexpected error: %v", name, err)
	}
}

func TestAssemble_LastSlideSetsPageSize(t *testing.T) {
	t.Parallel()

	sizes := [][2]int{{2560, 1440}, {1440, 2560}, {1920, 1080}}
	rasters := make([]Raster, len(sizes))
	for i, s := range sizes {
		rasters[i] = testRaster(t, s[0], s[1])
	}

	data, err := Assemble(rasters)
	if err != nil {
		t.Fatalf("Assemble() unexpected error: %v", err)
	}
	parts := openPackage(t, data)

	last, err := ComputeSlideSize(1920, 1080)
	if err != nil {
		t.Fatalf("ComputeSlideSize() unexpected error: %v", err)
	}
	wantCX, wantCY := last.EMU()

	var pres presentationDoc
	unmarshalPart(t, parts, "ppt/presentation.xml", &pres)
	if pres.SldSz.CX != int64(wantCX) || pres.SldSz.CY != int64(wantCY) {
		t.Errorf("sldSz = %dx%d, want third slide's %dx%d", pres.SldSz.CX, pres.SldSz.CY, wantCX, wantCY)
	}

	for i, s := range sizes {
		g, err := ComputeSlideSize(s[0], s[1])
		if err != nil {
			t.Fatalf("ComputeSlideSize() unexpected error: %v", err)
		}
		cx, cy := g.EMU()

		var slide slideDoc
		unmarshalPart(t, parts, fmt.Sprintf("ppt/slides/slide%d.xml", i+1), &slide)
		if len(slide.Pics) != 1 {
			t.Fatalf("slide %d has %d pictures, want 1", i+1, len(slide.Pics))
		}
		pic := slide.Pics[0]
		if pic.Off.X != 0 || pic.Off.Y != 0 {
			t.Errorf("slide %d picture offset = (%d,%d), want origin", i+1, pic.Off.X, pic.Off.Y)
		}
		if pic.Ext.CX != int64(cx) || pic.Ext.CY != int64(cy) {
			t.Errorf("slide %d picture = %dx%d, want %dx%d", i+1, pic.Ext.CX, pic.Ext.CY, cx, cy)
		}

		if len(slide.Transitions) != 1 || slide.Transitions[0].Fade == nil {
			t.Errorf("slide %d transitions = %+v, want one fade", i+1, slide.Transitions)
		} else if tr := slide.Transitions[0]; tr.Speed != "med" || tr.AdvClick != "1" {
			t.Errorf("slide %d transition spd=%q advClick=%q", i+1, tr.Speed, tr.AdvClick)
		}

		wantW, wantH := g.TargetPixels()
		gotW, gotH := pngSize(t, parts[fmt.Sprintf("ppt/media/image%d.png", i+1)])
		if gotW != wantW || gotH != wantH {
			t.Errorf("slide %d image = %dx%d, want %dx%d", i+1, gotW, gotH, wantW, wantH)
		}
	}

	// the portrait slide keeps its own box even though the page size moved on
	var second slideDoc
	unmarshalPart(t, parts, "ppt/slides/slide2.xml", &second)
	if second.Pics[0].Ext.CX == pres.SldSz.CX {
		t.Error("portrait slide picture width equals the final page width")
	}
}

func TestAssemble_Empty(t *testing.T) {
	t.Parallel()

	data, err := Assemble(nil)
	if err != nil {
		t.Fatalf("Assemble() unexpected error: %v", err)
	}
	parts := openPackage(t, data)
	if _, ok := parts["ppt/slides/slide1.xml"]; ok {
		t.Error("empty deck produced a slide")
	}
}

func TestAssemble_Options(t *testing.T) {
	t.Parallel()

	rasters := []Raster{testRaster(t, 64, 36)}

	t.Run("without transitions", func(t *testing.T) {
		t.Parallel()

		data, err := Assemble(rasters, WithoutTransitions())
		if err != nil {
			t.Fatalf("Assemble() unexpected error: %v", err)
		}
		parts := openPackage(t, data)
		if strings.Contains(string(parts["ppt/slides/slide1.xml"]), "transition") {
			t.Error("slide has a transition")
		}
	})

	t.Run("push transition", func(t *testing.T) {
		t.Parallel()

		data, err := Assemble(rasters, WithTransition(TransitionSpec{Kind: TransitionPush, Direction: DirectionUp}))
		if err != nil {
			t.Fatalf("Assemble() unexpected error: %v", err)
		}
		parts := openPackage(t, data)
		if !strings.Contains(string(parts["ppt/slides/slide1.xml"]), `<p:push dir="u">`) {
			t.Error("slide missing push transition")
		}
	})

	t.Run("creator and clock", func(t *testing.T) {
		t.Parallel()

		now := time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)
		data, err := Assemble(rasters, WithCreator("tester"), WithClock(func() time.Time { return now }))
		if err != nil {
			t.Fatalf("Assemble() unexpected error: %v", err)
		}
		core := string(openPackage(t, data)["docProps/core.xml"])
		if !strings.Contains(core, "tester") || !strings.Contains(core, "2026-10-15T09:30:00Z") {
			t.Errorf("core properties = %s", core)
		}
	})
}

func TestAssemble_FailsWhole(t *testing.T) {
	t.Parallel()

	rasters := []Raster{
		testRaster(t, 64, 36),
		{PNG: []byte("broken"), Width: 64, Height: 36},
	}
	data, err := Assemble(rasters)
	if !errors.Is(err, ErrInvalidRaster) {
		t.Errorf("Assemble() error = %v, want ErrInvalidRaster", err)
	}
	if data != nil {
		t.Error("Assemble() returned bytes on failure")
	}
	if !strings.Contains(err.Error(), "slide 2") {
		t.Errorf("error %q does not name the failing slide", err)
	}
}

func TestAssemble_IndependentDocuments(t *testing.T) {
	t.Parallel()

	a, err := Assemble([]Raster{testRaster(t, 64, 36)})
	if err != nil {
		t.Fatalf("Assemble() unexpected error: %v", err)
	}
	b, err := Assemble([]Raster{testRaster(t, 36, 64), testRaster(t, 36, 64)})
	if err != nil {
		t.Fatalf("Assemble() unexpected error: %v", err)
	}

	pa, pb := openPackage(t, a), openPackage(t, b)
	if _, ok := pa["ppt/slides/slide2.xml"]; ok {
		t.Error("first document gained a slide from the second")
	}
	var da, db presentationDoc
	unmarshalPart(t, pa, "ppt/presentation.xml", &da)
	unmarshalPart(t, pb, "ppt/presentation.xml", &db)
	if da.SldSz == db.SldSz {
		t.Error("documents share a page size")
	}
}
