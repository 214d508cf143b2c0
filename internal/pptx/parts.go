package pptx

import (
	"encoding/xml"
	"fmt"
	"time"
)

type relationships struct {
	XMLName xml.Name       `xml:"Relationships"`
	Xmlns   string         `xml:"xmlns,attr"`
	Rels    []relationship `xml:"Relationship"`
}

type relationship struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

func rootRels() relationships {
	return relationships{
		Xmlns: nsPackageRels,
		Rels: []relationship{
			{ID: "rId1", Type: relOfficeDocument, Target: "ppt/presentation.xml"},
			{ID: "rId2", Type: relCoreProps, Target: "docProps/core.xml"},
			{ID: "rId3", Type: relExtendedProps, Target: "docProps/app.xml"},
		},
	}
}

// Presentation-level relationship ids. Slides follow from slideRelBase+1.
const slideRelBase = 5

func presentationRels(slideCount int) relationships {
	r := relationships{
		Xmlns: nsPackageRels,
		Rels: []relationship{
			{ID: "rId1", Type: relSlideMaster, Target: "slideMasters/slideMaster1.xml"},
			{ID: "rId2", Type: relPresProps, Target: "presProps.xml"},
			{ID: "rId3", Type: relViewProps, Target: "viewProps.xml"},
			{ID: "rId4", Type: relTheme, Target: "theme/theme1.xml"},
			{ID: "rId5", Type: relTableStyles, Target: "tableStyles.xml"},
		},
	}
	for i := range slideCount {
		r.Rels = append(r.Rels, relationship{
			ID:     slideRelID(i),
			Type:   relSlide,
			Target: fmt.Sprintf("slides/slide%d.xml", i+1),
		})
	}
	return r
}

func slideRelID(i int) string {
	return fmt.Sprintf("rId%d", slideRelBase+i+1)
}

type contentTypes struct {
	XMLName   xml.Name     `xml:"Types"`
	Xmlns     string       `xml:"xmlns,attr"`
	Defaults  []ctDefault  `xml:"Default"`
	Overrides []ctOverride `xml:"Override"`
}

type ctDefault struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type ctOverride struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

func contentTypesFor(slideCount int) contentTypes {
	ct := contentTypes{
		Xmlns: nsContentTypes,
		Defaults: []ctDefault{
			{Extension: "rels", ContentType: ctRelationships},
			{Extension: "xml", ContentType: ctXML},
			{Extension: "png", ContentType: ctPNG},
		},
		Overrides: []ctOverride{
			{PartName: "/ppt/presentation.xml", ContentType: ctPresentation},
			{PartName: "/ppt/slideMasters/slideMaster1.xml", ContentType: ctSlideMaster},
			{PartName: "/ppt/slideLayouts/slideLayout1.xml", ContentType: ctSlideLayout},
			{PartName: "/ppt/theme/theme1.xml", ContentType: ctTheme},
			{PartName: "/ppt/presProps.xml", ContentType: ctPresProps},
			{PartName: "/ppt/viewProps.xml", ContentType: ctViewProps},
			{PartName: "/ppt/tableStyles.xml", ContentType: ctTableStyles},
			{PartName: "/docProps/core.xml", ContentType: ctCoreProps},
			{PartName: "/docProps/app.xml", ContentType: ctExtendedProps},
		},
	}
	for i := 1; i <= slideCount; i++ {
		ct.Overrides = append(ct.Overrides, ctOverride{
			PartName:    fmt.Sprintf("/ppt/slides/slide%d.xml", i),
			ContentType: ctSlide,
		})
	}
	return ct
}

type presentationXML struct {
	XMLName         xml.Name        `xml:"p:presentation"`
	XmlnsA          string          `xml:"xmlns:a,attr"`
	XmlnsR          string          `xml:"xmlns:r,attr"`
	XmlnsP          string          `xml:"xmlns:p,attr"`
	SaveSubsetFonts int             `xml:"saveSubsetFonts,attr"`
	SldMasterIDLst  sldMasterIDList `xml:"p:sldMasterIdLst"`
	SldIDLst        *sldIDList      `xml:"p:sldIdLst"`
	SldSz           slideSizeXML    `xml:"p:sldSz"`
	NotesSz         extentXML       `xml:"p:notesSz"`
}

type sldMasterIDList struct {
	Masters []idRef `xml:"p:sldMasterId"`
}

type sldIDList struct {
	Slides []idRef `xml:"p:sldId"`
}

type idRef struct {
	ID  int    `xml:"id,attr"`
	RID string `xml:"r:id,attr"`
}

type slideSizeXML struct {
	CX EMU `xml:"cx,attr"`
	CY EMU `xml:"cy,attr"`
}

func presentationFor(p *Presentation) presentationXML {
	v := presentationXML{
		XmlnsA:          nsDrawingML,
		XmlnsR:          nsRelationships,
		XmlnsP:          nsPresentationML,
		SaveSubsetFonts: 1,
		SldMasterIDLst:  sldMasterIDList{Masters: []idRef{{ID: slideMasterID, RID: "rId1"}}},
		SldSz:           slideSizeXML{CX: p.width, CY: p.height},
		NotesSz:         extentXML{CX: notesWidth, CY: notesHeight},
	}
	// sldIdLst may not be empty, so it is omitted for a deck without slides
	if len(p.slides) > 0 {
		v.SldIDLst = &sldIDList{}
		for i := range p.slides {
			v.SldIDLst.Slides = append(v.SldIDLst.Slides, idRef{ID: firstSlideID + i, RID: slideRelID(i)})
		}
	}
	return v
}

type corePropsXML struct {
	XMLName        xml.Name  `xml:"cp:coreProperties"`
	XmlnsCP        string    `xml:"xmlns:cp,attr"`
	XmlnsDC        string    `xml:"xmlns:dc,attr"`
	XmlnsDCTerms   string    `xml:"xmlns:dcterms,attr"`
	XmlnsXSI       string    `xml:"xmlns:xsi,attr"`
	Creator        string    `xml:"dc:creator"`
	LastModifiedBy string    `xml:"cp:lastModifiedBy"`
	Created        w3cdtfXML `xml:"dcterms:created"`
	Modified       w3cdtfXML `xml:"dcterms:modified"`
}

type w3cdtfXML struct {
	Type  string `xml:"xsi:type,attr"`
	Value string `xml:",chardata"`
}

func corePropsFor(creator string, now time.Time) corePropsXML {
	stamp := w3cdtfXML{Type: "dcterms:W3CDTF", Value: now.Format(time.RFC3339)}
	return corePropsXML{
		XmlnsCP:        nsCoreProps,
		XmlnsDC:        "http://purl.org/dc/elements/1.1/",
		XmlnsDCTerms:   "http://purl.org/dc/terms/",
		XmlnsXSI:       "http://www.w3.org/2001/XMLSchema-instance",
		Creator:        creator,
		LastModifiedBy: creator,
		Created:        stamp,
		Modified:       stamp,
	}
}

type appPropsXML struct {
	XMLName            xml.Name `xml:"Properties"`
	Xmlns              string   `xml:"xmlns,attr"`
	XmlnsVT            string   `xml:"xmlns:vt,attr"`
	Application        string   `xml:"Application"`
	PresentationFormat string   `xml:"PresentationFormat"`
	Slides             int      `xml:"Slides"`
	Notes              int      `xml:"Notes"`
	HiddenSlides       int      `xml:"HiddenSlides"`
	AppVersion         string   `xml:"AppVersion"`
}

func appPropsFor(slideCount int) appPropsXML {
	return appPropsXML{
		Xmlns:              nsExtendedProps,
		XmlnsVT:            nsDocPropsVTypes,
		Application:        "html2pptx",
		PresentationFormat: "Custom",
		Slides:             slideCount,
		AppVersion:         "16.0000",
	}
}
