package ui

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"mideck/app"
	"mideck/domain/core"
	"mideck/domain/deck"
	"mideck/domain/demo"
	"mideck/internal/api"
	apperrors "mideck/internal/errors"
	"mideck/internal/metrics"
	"mideck/ui/middleware"
)

func pagePath(identifier string) string {
	return "/pages/" + url.PathEscape(identifier)
}

// handleIndex sends viewers to the first page.
func (s *Server) handleIndex(c *gin.Context) {
	c.Redirect(http.StatusFound, pagePath(s.presentation.Catalog().First().Identifier))
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"pages":  s.presentation.Catalog().Len(),
	})
}

// handlePage renders a full page. Slider, EDF and metric state come from the
// query string so every request stands alone.
func (s *Server) handlePage(c *gin.Context) {
	id := c.Param("id")
	q := c.Request.URL.Query()

	state := app.PageState{
		EDF:    demo.EDFSetting(q.Get("setting")),
		Metric: demo.AccuracyMetric(q.Get("metric")),
	}
	// slider params only matter on the demo page
	if page, ok := s.presentation.Catalog().Lookup(id); ok && page.Kind == deck.KindDemo {
		in, err := api.ParseInputs(q)
		if err != nil {
			s.renderError(c, id, err)
			return
		}
		state.Inputs = &in
	}

	view, err := s.presentation.Page(c.Request.Context(), id, state)
	if err != nil {
		s.renderError(c, id, err)
		return
	}

	s.metrics.RecordPageView(id)
	if view.Demo != nil {
		s.metrics.RecordSimulation(metrics.OutcomeOK, view.Demo.Result.HalfWidth())
	}
	s.renderPage(c, newPageData(view))
}

// handleSimulationFragment re-renders the demo readout and chart.
func (s *Server) handleSimulationFragment(c *gin.Context) {
	id := c.Param("id")
	if !s.knownPage(c, id) {
		return
	}

	in, err := api.ParseInputs(c.Request.URL.Query())
	var view *app.DemoView
	if err == nil {
		view, err = s.presentation.Demo(c.Request.Context(), in)
	}
	if err != nil {
		s.metrics.RecordSimulation(metrics.OutcomeFor(err), 0)
		s.renderFragmentError(c, err)
		return
	}

	s.metrics.RecordSimulation(metrics.OutcomeOK, view.Result.HalfWidth())
	s.renderTemplate(c, http.StatusOK, "demo_result", newDemoData(id, view))
}

// handleEDFFragment re-renders the degrees-of-freedom readout.
func (s *Server) handleEDFFragment(c *gin.Context) {
	id := c.Param("id")
	if !s.knownPage(c, id) {
		return
	}

	setting := demo.EDFSetting(c.DefaultQuery("setting", string(demo.DefaultEDFSetting)))
	view, err := s.presentation.EDF(setting)
	if err != nil {
		s.renderFragmentError(c, err)
		return
	}
	s.renderTemplate(c, http.StatusOK, "edf_result", &edfData{PageID: id, View: view})
}

// handleAccuracyFragment re-renders the MAE/MSE chart.
func (s *Server) handleAccuracyFragment(c *gin.Context) {
	id := c.Param("id")
	if !s.knownPage(c, id) {
		return
	}

	metric := demo.AccuracyMetric(c.DefaultQuery("metric", string(demo.MetricMAE)))
	view, err := s.presentation.Accuracy(c.Request.Context(), metric)
	if err != nil {
		s.renderFragmentError(c, err)
		return
	}
	s.renderTemplate(c, http.StatusOK, "accuracy_result", newAccuracyData(id, view))
}

func (s *Server) handleNoRoute(c *gin.Context) {
	s.renderError(c, c.Request.URL.Path, apperrors.New(apperrors.CodeNotFound, "no such page"))
}

func (s *Server) knownPage(c *gin.Context, id string) bool {
	if _, err := s.presentation.Navigate(id); err != nil {
		s.metrics.RecordNavigationMiss()
		s.renderFragmentError(c, err)
		return false
	}
	return true
}

func (s *Server) logFailure(c *gin.Context, id string, err error, status int) {
	reqID := middleware.GetRequestID(c)
	switch {
	case errors.Is(err, core.ErrPageNotFound):
		s.logger.Warn("page %q not found [%s]", id, reqID)
	case status >= http.StatusInternalServerError:
		s.logger.Error("%s %s [%s]: %v", c.Request.Method, c.Request.URL.Path, reqID, err)
	default:
		s.logger.Warn("%s %s [%s]: %v", c.Request.Method, c.Request.URL.Path, reqID, err)
	}
}

// renderError draws the error page with both control bars disabled and a
// link back to the first page.
func (s *Server) renderError(c *gin.Context, id string, err error) {
	appErr := apperrors.FromDomain(err)
	status := apperrors.HTTPStatus(appErr.Code)
	s.logFailure(c, id, err, status)
	if errors.Is(err, core.ErrPageNotFound) {
		s.metrics.RecordNavigationMiss()
	}

	title := "Something went wrong"
	switch status {
	case http.StatusNotFound:
		title = "Page not found"
	case http.StatusBadRequest:
		title = "Invalid request"
	}

	none := deck.Navigation{}
	s.renderTemplate(c, status, "error.html", errorData{
		Deck:    s.presentation.Info(),
		Status:  status,
		Title:   title,
		Message: appErr.Message,
		Upper:   none.Controls(deck.PlacementUpper),
		Lower:   none.Controls(deck.PlacementLower),
		Pages:   s.presentation.Catalog().Pages(),
		Home:    s.presentation.Catalog().First().Identifier,
	})
}

func (s *Server) renderFragmentError(c *gin.Context, err error) {
	appErr := apperrors.FromDomain(err)
	status := apperrors.HTTPStatus(appErr.Code)
	s.logFailure(c, c.Param("id"), err, status)
	s.renderTemplate(c, status, "fragment_error", fragmentError{Message: appErr.Message})
}
