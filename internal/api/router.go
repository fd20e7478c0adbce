// Package api serves the deck and the conceptual demo as JSON.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"mideck/adapters/excel"
	"mideck/app"
	"mideck/domain/deck"
	"mideck/domain/demo"
	"mideck/internal"
	apperrors "mideck/internal/errors"
	"mideck/internal/metrics"
)

// Prefix is where the API is mounted.
const Prefix = "/api/v1"

// Handler holds the dependencies of the JSON endpoints.
type Handler struct {
	presentation *app.PresentationService
	metrics      *metrics.Metrics
	logger       *internal.Logger
}

// NewHandler creates the API handler. m may be nil.
func NewHandler(presentation *app.PresentationService, m *metrics.Metrics, logger *internal.Logger) *Handler {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Handler{
		presentation: presentation,
		metrics:      m,
		logger:       logger.With("api"),
	}
}

// Router returns the chi router with every route under Prefix.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route(Prefix, func(r chi.Router) {
		r.Get("/pages", h.handlePages)
		r.Get("/pages/{id}/navigation", h.handleNavigation)
		r.Get("/simulation", h.handleSimulation)
		r.Get("/sweep", h.handleSweep)
		r.Get("/sweep.xlsx", h.handleSweepWorkbook)
		r.Get("/edf/{setting}", h.handleEDF)
		r.Get("/accuracy/{metric}", h.handleAccuracy)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		h.writeError(w, r, apperrors.New(apperrors.CodeNotFound, "no such endpoint"))
	})
	return r
}

type pagesResponse struct {
	Deck  app.DeckInfo          `json:"deck"`
	Pages []deck.PageDescriptor `json:"pages"`
}

func (h *Handler) handlePages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, pagesResponse{
		Deck:  h.presentation.Info(),
		Pages: h.presentation.Catalog().Pages(),
	})
}

type navigationResponse struct {
	Navigation deck.Navigation `json:"navigation"`
	Position   string          `json:"position"`
	Upper      deck.Controls   `json:"upper"`
	Lower      deck.Controls   `json:"lower"`
}

func (h *Handler) handleNavigation(w http.ResponseWriter, r *http.Request) {
	nav, err := h.presentation.Navigate(chi.URLParam(r, "id"))
	if err != nil {
		h.metrics.RecordNavigationMiss()
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, navigationResponse{
		Navigation: nav,
		Position:   nav.Position(),
		Upper:      nav.Controls(deck.PlacementUpper),
		Lower:      nav.Controls(deck.PlacementLower),
	})
}

type simulationResponse struct {
	Result        demo.SimulationResult `json:"result"`
	HalfWidth     float64               `json:"half_width"`
	EstimateLabel string                `json:"estimate_label"`
	IntervalLabel string                `json:"interval_label"`
	Chart         demo.ChartSpec        `json:"chart"`
	Seed          uint64                `json:"seed"`
	SeedPolicy    app.SeedPolicy        `json:"seed_policy"`
}

func (h *Handler) handleSimulation(w http.ResponseWriter, r *http.Request) {
	in, err := ParseInputs(r.URL.Query())
	if err != nil {
		h.metrics.RecordSimulation(metrics.OutcomeInvalid, 0)
		h.writeError(w, r, err)
		return
	}

	sim := h.presentation.Simulation()
	res, err := sim.Simulate(r.Context(), in)
	if err != nil {
		h.metrics.RecordSimulation(metrics.OutcomeFor(err), 0)
		h.writeError(w, r, err)
		return
	}
	h.metrics.RecordSimulation(metrics.OutcomeOK, res.HalfWidth())

	writeJSON(w, http.StatusOK, simulationResponse{
		Result:        res,
		HalfWidth:     res.HalfWidth(),
		EstimateLabel: res.EstimateLabel(),
		IntervalLabel: res.IntervalLabel(),
		Chart:         demo.NewChartSpec(res),
		Seed:          sim.Seed(),
		SeedPolicy:    sim.Policy(),
	})
}

func (h *Handler) sweep(r *http.Request) (*demo.Sweep, error) {
	in, err := ParseInputs(r.URL.Query())
	if err != nil {
		return nil, err
	}
	p := demo.Parameter(r.URL.Query().Get("parameter"))
	if p == "" {
		p = demo.ParamNumImputations
	}
	return h.presentation.Simulation().Sweep(r.Context(), in, p)
}

func (h *Handler) handleSweep(w http.ResponseWriter, r *http.Request) {
	sw, err := h.sweep(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sw)
}

func (h *Handler) handleSweepWorkbook(w http.ResponseWriter, r *http.Request) {
	sw, err := h.sweep(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="sweep_%s.xlsx"`, sw.Parameter))
	if err := excel.WriteSweep(w, sw); err != nil {
		h.logger.Error("write sweep workbook: %v", err)
	}
}

func (h *Handler) handleEDF(w http.ResponseWriter, r *http.Request) {
	view, err := h.presentation.EDF(demo.EDFSetting(chi.URLParam(r, "setting")))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) handleAccuracy(w http.ResponseWriter, r *http.Request) {
	view, err := h.presentation.Accuracy(r.Context(), demo.AccuracyMetric(chi.URLParam(r, "metric")))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// ParseInputs reads the four slider values from a query string. Missing keys
// keep their defaults; values that are not integers are rejected. Range checks
// are left to the simulation.
func ParseInputs(q url.Values) (demo.SimulationInputs, error) {
	in := demo.DefaultInputs()
	fields := []struct {
		key string
		dst *int
	}{
		{string(demo.ParamSampleSize), &in.SampleSize},
		{string(demo.ParamMissingPercent), &in.MissingPercent},
		{string(demo.ParamNumImputations), &in.NumImputations},
		{string(demo.ParamModelComplexity), &in.ModelComplexity},
	}
	for _, f := range fields {
		raw := q.Get(f.key)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return in, apperrors.InvalidInput(fmt.Sprintf("%s must be an integer, got %q", f.key, raw))
		}
		*f.dst = v
	}
	return in, nil
}

type errorResponse struct {
	Error *apperrors.AppError `json:"error"`
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := apperrors.FromDomain(err)
	status := apperrors.HTTPStatus(appErr.Code)
	if status >= http.StatusInternalServerError {
		h.logger.Error("%s %s [%s]: %v", r.Method, r.URL.Path, middleware.GetReqID(r.Context()), err)
	} else {
		h.logger.Warn("%s %s: %v", r.Method, r.URL.Path, err)
	}
	writeJSON(w, status, errorResponse{Error: appErr})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
