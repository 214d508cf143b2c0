package pptx

import (
	"encoding/xml"
	"fmt"
	"slices"
)

// NodeKind identifies a direct child of a slide root.
type NodeKind int

const (
	// KindCommonSlideData is p:cSld, the slide's shape tree.
	KindCommonSlideData NodeKind = iota + 1
	// KindTransition is p:transition.
	KindTransition
)

func (k NodeKind) String() string {
	switch k {
	case KindCommonSlideData:
		return "cSld"
	case KindTransition:
		return "transition"
	}
	return fmt.Sprintf("NodeKind(%d)", int(k))
}

// Node is a direct child of a slide root. Implementations live in this package.
type Node interface {
	Kind() NodeKind
	xmlValue() any
}

// Picture is an image placed on a slide.
type Picture struct {
	ID     int
	Name   string
	Data   []byte // PNG bytes
	X, Y   EMU
	CX, CY EMU
}

// Slide is one slide of a Presentation. Its root holds an ordered list of
// typed nodes; p:cSld is always present and comes first.
type Slide struct {
	nodes  []Node
	common *commonSlideData
}

func newSlide() *Slide {
	common := &commonSlideData{}
	return &Slide{
		nodes:  []Node{common},
		common: common,
	}
}

// Nodes returns the slide root's children in document order.
func (s *Slide) Nodes() []Node {
	return slices.Clone(s.nodes)
}

// Count returns the number of root children of the given kind.
func (s *Slide) Count(kind NodeKind) int {
	n := 0
	for _, node := range s.nodes {
		if node.Kind() == kind {
			n++
		}
	}
	return n
}

// Remove deletes every root child of the given kind and reports how many were removed.
// Removing a kind that is absent is not an error.
func (s *Slide) Remove(kind NodeKind) int {
	before := len(s.nodes)
	s.nodes = slices.DeleteFunc(s.nodes, func(n Node) bool { return n.Kind() == kind })
	return before - len(s.nodes)
}

// InsertAfter places n immediately after the first child of kind anchor,
// or as the first child when no such child exists.
func (s *Slide) InsertAfter(anchor NodeKind, n Node) {
	idx := slices.IndexFunc(s.nodes, func(node Node) bool { return node.Kind() == anchor })
	s.nodes = slices.Insert(s.nodes, idx+1, n)
}

// SetTransition attaches t to the slide, replacing any transition already
// present, so repeated calls leave exactly one p:transition. The new node
// goes right after p:cSld. An unsupported effect leaves the slide untouched
// and returns false.
func (s *Slide) SetTransition(t Transition) bool {
	if t.Validate() != nil {
		return false
	}
	s.Remove(KindTransition)
	s.InsertAfter(KindCommonSlideData, &transitionNode{spec: t})
	return true
}

// Transition returns the slide's transition, if any.
func (s *Slide) Transition() (Transition, bool) {
	for _, n := range s.nodes {
		if tn, ok := n.(*transitionNode); ok {
			return tn.spec, true
		}
	}
	return Transition{}, false
}

// AddPicture places a PNG image on the slide at (x, y) with size (cx, cy).
func (s *Slide) AddPicture(png []byte, x, y, cx, cy EMU) (*Picture, error) {
	if len(png) == 0 {
		return nil, ErrEmptyImage
	}
	if cx <= 0 || cy <= 0 {
		return nil, fmt.Errorf("%w: picture extent %dx%d", ErrInvalidSize, cx, cy)
	}
	// id 1 belongs to the shape tree's group properties
	id := len(s.common.pictures) + 2
	pic := &Picture{
		ID:   id,
		Name: fmt.Sprintf("Picture %d", id-1),
		Data: png,
		X:    x,
		Y:    y,
		CX:   cx,
		CY:   cy,
	}
	s.common.pictures = append(s.common.pictures, pic)
	return pic, nil
}

// Pictures returns the pictures on the slide in z-order.
func (s *Slide) Pictures() []*Picture {
	return slices.Clone(s.common.pictures)
}

// encode writes the slide part. Picture relationship ids start at rId2;
// rId1 is the slide layout.
func (s *Slide) encode(enc *xml.Encoder) error {
	start := xml.StartElement{
		Name: xml.Name{Local: "p:sld"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "xmlns:a"}, Value: nsDrawingML},
			{Name: xml.Name{Local: "xmlns:r"}, Value: nsRelationships},
			{Name: xml.Name{Local: "xmlns:p"}, Value: nsPresentationML},
		},
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	for _, n := range s.nodes {
		if err := enc.Encode(n.xmlValue()); err != nil {
			return fmt.Errorf("encoding %s: %w", n.Kind(), err)
		}
	}
	if err := enc.EncodeToken(start.End()); err != nil {
		return err
	}
	return enc.Flush()
}

// commonSlideData is p:cSld with a single flat shape tree of pictures.
type commonSlideData struct {
	pictures []*Picture
}

func (*commonSlideData) Kind() NodeKind { return KindCommonSlideData }

type cSldXML struct {
	XMLName xml.Name  `xml:"p:cSld"`
	SpTree  spTreeXML `xml:"p:spTree"`
}

type spTreeXML struct {
	NvGrpSpPr nvGrpSpPrXML `xml:"p:nvGrpSpPr"`
	GrpSpPr   grpSpPrXML   `xml:"p:grpSpPr"`
	Pics      []picXML     `xml:"p:pic"`
}

type nvGrpSpPrXML struct {
	CNvPr      cNvPrXML `xml:"p:cNvPr"`
	CNvGrpSpPr struct{} `xml:"p:cNvGrpSpPr"`
	NvPr       struct{} `xml:"p:nvPr"`
}

type cNvPrXML struct {
	ID   int    `xml:"id,attr"`
	Name string `xml:"name,attr"`
}

type grpSpPrXML struct {
	Xfrm groupXfrmXML `xml:"a:xfrm"`
}

type groupXfrmXML struct {
	Off   pointXML  `xml:"a:off"`
	Ext   extentXML `xml:"a:ext"`
	ChOff pointXML  `xml:"a:chOff"`
	ChExt extentXML `xml:"a:chExt"`
}

type pointXML struct {
	X EMU `xml:"x,attr"`
	Y EMU `xml:"y,attr"`
}

type extentXML struct {
	CX EMU `xml:"cx,attr"`
	CY EMU `xml:"cy,attr"`
}

type picXML struct {
	NvPicPr  nvPicPrXML  `xml:"p:nvPicPr"`
	BlipFill blipFillXML `xml:"p:blipFill"`
	SpPr     spPrXML     `xml:"p:spPr"`
}

type nvPicPrXML struct {
	CNvPr    cNvPrXML    `xml:"p:cNvPr"`
	CNvPicPr cNvPicPrXML `xml:"p:cNvPicPr"`
	NvPr     struct{}    `xml:"p:nvPr"`
}

type cNvPicPrXML struct {
	PicLocks picLocksXML `xml:"a:picLocks"`
}

type picLocksXML struct {
	NoChangeAspect int `xml:"noChangeAspect,attr"`
}

type blipFillXML struct {
	Blip    blipXML    `xml:"a:blip"`
	Stretch stretchXML `xml:"a:stretch"`
}

type blipXML struct {
	Embed string `xml:"r:embed,attr"`
}

type stretchXML struct {
	FillRect struct{} `xml:"a:fillRect"`
}

type spPrXML struct {
	Xfrm     xfrmXML     `xml:"a:xfrm"`
	PrstGeom prstGeomXML `xml:"a:prstGeom"`
}

type xfrmXML struct {
	Off pointXML  `xml:"a:off"`
	Ext extentXML `xml:"a:ext"`
}

type prstGeomXML struct {
	Prst  string   `xml:"prst,attr"`
	AvLst struct{} `xml:"a:avLst"`
}

func (c *commonSlideData) xmlValue() any {
	v := cSldXML{
		SpTree: spTreeXML{
			NvGrpSpPr: nvGrpSpPrXML{CNvPr: cNvPrXML{ID: 1, Name: ""}},
		},
	}
	for i, p := range c.pictures {
		v.SpTree.Pics = append(v.SpTree.Pics, picXML{
			NvPicPr: nvPicPrXML{
				CNvPr:    cNvPrXML{ID: p.ID, Name: p.Name},
				CNvPicPr: cNvPicPrXML{PicLocks: picLocksXML{NoChangeAspect: 1}},
			},
			BlipFill: blipFillXML{
				Blip: blipXML{Embed: pictureRelID(i)},
			},
			SpPr: spPrXML{
				Xfrm:     xfrmXML{Off: pointXML{X: p.X, Y: p.Y}, Ext: extentXML{CX: p.CX, CY: p.CY}},
				PrstGeom: prstGeomXML{Prst: "rect"},
			},
		})
	}
	return v
}

func pictureRelID(i int) string {
	return fmt.Sprintf("rId%d", i+2)
}
