package server

import (
	"encoding/base64"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alnah/go-html2pptx"
)

// PPTXContentType is the MIME type of exported presentations.
const PPTXContentType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

type addSlideRequest struct {
	HTML     string `json:"html"`
	Markdown string `json:"markdown"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

type reorderRequest struct {
	SlideIDs []string `json:"slideIds"`
}

type exportRequest struct {
	Filename string `json:"filename"`
}

type exportBothRequest struct {
	PresentationID  string `json:"presentationId"`
	PresentationID2 string `json:"presentationId2"`
	Filename        string `json:"filename"`
}

type exportBothResponse struct {
	PPTX1     string `json:"pptx1"` // base64
	PPTX2     string `json:"pptx2"`
	Filename1 string `json:"filename1"`
	Filename2 string `json:"filename2"`
}

var success = gin.H{"success": true}

func (s *Server) createDeck(c *gin.Context) {
	sum := s.svc.CreateDeck()
	c.JSON(http.StatusOK, gin.H{"id": sum.ID})
}

func (s *Server) getDeck(c *gin.Context) {
	sum, err := s.svc.Deck(c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

func (s *Server) deleteDeck(c *gin.Context) {
	if err := s.svc.DeleteDeck(c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, success)
}

func (s *Server) addSlide(c *gin.Context) {
	var req addSlideRequest
	if !bindJSON(c, &req, false) {
		return
	}
	if req.Width == 0 {
		req.Width = s.settings.DefaultWidth
	}
	if req.Height == 0 {
		req.Height = s.settings.DefaultHeight
	}

	view, err := s.svc.AddSlide(c.Request.Context(), c.Param("id"), html2pptx.SlideInput{
		HTML:     req.HTML,
		Markdown: req.Markdown,
		Width:    req.Width,
		Height:   req.Height,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) deleteSlide(c *gin.Context) {
	if err := s.svc.DeleteSlide(c.Param("id"), c.Param("slideId")); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, success)
}

func (s *Server) reorderSlides(c *gin.Context) {
	var req reorderRequest
	if !bindJSON(c, &req, false) {
		return
	}
	if err := s.svc.ReorderSlides(c.Param("id"), req.SlideIDs); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, success)
}

func (s *Server) export(c *gin.Context) {
	var req exportRequest
	if !bindJSON(c, &req, true) {
		return
	}
	data, err := s.svc.Export(c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}

	name := html2pptx.ExportFilename(req.Filename)
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	c.Data(http.StatusOK, PPTXContentType, data)
}

func (s *Server) exportBoth(c *gin.Context) {
	var req exportBothRequest
	if !bindJSON(c, &req, false) {
		return
	}
	a, b, err := s.svc.ExportPair(req.PresentationID, req.PresentationID2)
	if err != nil {
		if errors.Is(err, html2pptx.ErrNotFound) {
			abortError(c, http.StatusNotFound, "one or both presentations not found")
			return
		}
		s.fail(c, err)
		return
	}

	name1, name2 := html2pptx.PairFilenames(req.Filename)
	c.JSON(http.StatusOK, exportBothResponse{
		PPTX1:     base64.StdEncoding.EncodeToString(a),
		PPTX2:     base64.StdEncoding.EncodeToString(b),
		Filename1: name1,
		Filename2: name2,
	})
}

// bindJSON decodes the request body into v. With optional set, an empty
// body leaves v at its zero value. On failure the response is written and
// false is returned.
func bindJSON(c *gin.Context, v any, optional bool) bool {
	err := c.ShouldBindJSON(v)
	if err == nil || (optional && errors.Is(err, io.EOF)) {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		abortError(c, http.StatusRequestEntityTooLarge, "request body too large")
		return false
	}
	abortError(c, http.StatusBadRequest, "invalid JSON body: "+err.Error())
	return false
}

// fail maps err to a status and writes the error body.
func (s *Server) fail(c *gin.Context, err error) {
	status := statusFor(err)
	_ = c.Error(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	abortError(c, status, msg)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, html2pptx.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, html2pptx.ErrInvalidViewport),
		errors.Is(err, html2pptx.ErrEmptyContent),
		errors.Is(err, html2pptx.ErrAmbiguousContent),
		errors.Is(err, html2pptx.ErrInvalidGeometry),
		errors.Is(err, html2pptx.ErrMarkdown):
		return http.StatusBadRequest
	case errors.Is(err, html2pptx.ErrRenderTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, html2pptx.ErrRenderEngine):
		return http.StatusBadGateway
	case errors.Is(err, html2pptx.ErrPoolClosed):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func abortError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
