package ui

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"mideck/app"
	"mideck/domain/core"
	"mideck/domain/deck"
)

// pageData is what page.html renders.
type pageData struct {
	*app.PageView
	Content       template.HTML
	DemoPanel     *demoData
	EDFPanel      *edfData
	AccuracyPanel *accuracyData
}

type demoData struct {
	PageID string
	View   *app.DemoView
	Plot   intervalPlot
}

type edfData struct {
	PageID string
	View   *app.EDFView
}

type accuracyData struct {
	PageID string
	View   *app.AccuracyView
	Plot   linePlot
}

// errorData is what error.html renders. Both control bars are disabled.
type errorData struct {
	Deck    app.DeckInfo
	Status  int
	Title   string
	Message string
	Upper   deck.Controls
	Lower   deck.Controls
	Pages   []deck.PageDescriptor
	Home    string
}

type fragmentError struct {
	Message string
}

func newPageData(view *app.PageView) pageData {
	data := pageData{
		PageView: view,
		Content:  template.HTML(view.Body),
	}
	id := view.Page.Identifier
	if view.Demo != nil {
		data.DemoPanel = newDemoData(id, view.Demo)
	}
	if view.EDF != nil {
		data.EDFPanel = &edfData{PageID: id, View: view.EDF}
	}
	if view.Accuracy != nil {
		data.AccuracyPanel = newAccuracyData(id, view.Accuracy)
	}
	return data
}

func newDemoData(pageID string, view *app.DemoView) *demoData {
	return &demoData{PageID: pageID, View: view, Plot: newIntervalPlot(view.Chart)}
}

func newAccuracyData(pageID string, view *app.AccuracyView) *accuracyData {
	return &accuracyData{PageID: pageID, View: view, Plot: newLinePlot(view.Series)}
}

// renderTemplate executes a template into a buffer first so a failing
// template never leaves a half-written response.
func (s *Server) renderTemplate(c *gin.Context, status int, name string, data interface{}) {
	if buf, ok := s.execute(c, name, data); ok {
		s.write(c, status, name, buf)
	}
}

// renderPage renders page.html with an ETag of the rendered bytes and
// answers a matching If-None-Match with 304.
func (s *Server) renderPage(c *gin.Context, data pageData) {
	const name = "page.html"
	buf, ok := s.execute(c, name, data)
	if !ok {
		return
	}

	etag := core.NewHash(buf.Bytes()).ETag()
	c.Header("ETag", etag)
	if c.GetHeader("If-None-Match") == etag {
		c.Status(http.StatusNotModified)
		return
	}
	s.write(c, http.StatusOK, name, buf)
}

func (s *Server) execute(c *gin.Context, name string, data interface{}) (*bytes.Buffer, bool) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.Error("template %s (%T): %v", name, data, err)
		c.String(http.StatusInternalServerError, "template rendering failed")
		return nil, false
	}
	return &buf, true
}

func (s *Server) write(c *gin.Context, status int, name string, buf *bytes.Buffer) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if _, err := buf.WriteTo(c.Writer); err != nil {
		s.logger.Warn("write %s: %v", name, err)
	}
}
