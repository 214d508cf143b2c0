package html2pptx_test

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/alnah/go-html2pptx"
)

// solidRenderer stands in for headless Chrome: it paints the viewport gray
// at DeviceScaleFactor resolution.
type solidRenderer struct{}

func (solidRenderer) Capture(_ context.Context, req html2pptx.RenderRequest) (*html2pptx.Raster, error) {
	w, h := req.Width*html2pptx.DeviceScaleFactor, req.Height*html2pptx.DeviceScaleFactor
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, imaging.New(w, h, color.Gray{Y: 200}), imaging.PNG); err != nil {
		return nil, err
	}
	return &html2pptx.Raster{PNG: buf.Bytes(), Width: w, Height: h}, nil
}

func (solidRenderer) Close() error { return nil }

// Example builds a two-slide deck through a Studio. Production code passes
// a RendererPool of RodRenderers instead of the stand-in renderer.
func Example() {
	pool := html2pptx.NewRendererPoolFunc(1, func() html2pptx.Renderer { return solidRenderer{} })
	defer pool.Close()

	studio := html2pptx.NewStudio(pool)
	deck := studio.CreateDeck()
	ctx := context.Background()

	slides := []html2pptx.SlideInput{
		{HTML: `<div class="slide-container"><h1>Hello</h1></div>`, Width: 1280, Height: 720},
		{Markdown: "# Agenda\n\n- one\n- two", Width: 720, Height: 720},
	}
	for _, in := range slides {
		view, err := studio.AddSlide(ctx, deck.ID, in)
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		fmt.Printf("slide %dx%d, preview %t\n", view.Width, view.Height, strings.HasPrefix(view.Preview, "data:image/png;base64,"))
	}

	data, err := studio.Export(deck.ID)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("zip:", bytes.HasPrefix(data, []byte("PK")))
	// Output:
	// slide 2560x1440, preview true
	// slide 1440x1440, preview true
	// zip: true
}

// ExampleComputeSlideSize shows how rasters are fitted to the 16:9 box.
func ExampleComputeSlideSize() {
	for _, px := range [][2]int{{2560, 1440}, {1000, 2000}, {4000, 1000}} {
		g, err := html2pptx.ComputeSlideSize(px[0], px[1])
		if err != nil {
			fmt.Println("error:", err)
			continue
		}
		fmt.Printf("%dx%d -> %.3f x %.3f in\n", px[0], px[1], g.Width, g.Height)
	}
	// Output:
	// 2560x1440 -> 13.333 x 7.500 in
	// 1000x2000 -> 3.750 x 7.500 in
	// 4000x1000 -> 13.333 x 3.333 in
}

// ExampleAssemble builds a package directly from rasters, without a push
// transition on the slides.
func ExampleAssemble() {
	var rasters []html2pptx.Raster
	for _, size := range [][2]int{{320, 180}, {200, 300}} {
		var buf bytes.Buffer
		_ = imaging.Encode(&buf, imaging.New(size[0], size[1], color.White), imaging.PNG)
		rasters = append(rasters, html2pptx.Raster{PNG: buf.Bytes(), Width: size[0], Height: size[1]})
	}

	data, err := html2pptx.Assemble(rasters, html2pptx.WithoutTransitions())
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	var slides int
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "ppt/slides/slide") {
			slides++
		}
	}
	fmt.Println("slides:", slides)
	// Output: slides: 2
}

func ExamplePairFilenames() {
	a, b := html2pptx.PairFilenames("../Q3 review")
	fmt.Println(a, b)
	fmt.Println(html2pptx.ExportFilename(""))
	// Output:
	// Q3 review_1.pptx Q3 review_2.pptx
	// presentation.pptx
}

func ExampleParseTransition() {
	spec, err := html2pptx.ParseTransition("push", "up")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(spec.Kind, spec.Direction)

	none, _ := html2pptx.ParseTransition("none", "")
	fmt.Println(none == nil)
	// Output:
	// push up
	// true
}
