package ui

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mideck/app"
	"mideck/internal"
	"mideck/internal/api"
	"mideck/internal/metrics"
	"mideck/ui/middleware"
)

//go:embed templates/*.html static/css/*.css static/js/*.js
var embeddedFiles embed.FS

// Options are the dependencies of the HTML shell. Metrics, Gatherer and API
// are optional.
type Options struct {
	Presentation *app.PresentationService
	Metrics      *metrics.Metrics
	Gatherer     prometheus.Gatherer
	API          http.Handler
	Logger       *internal.Logger
}

// Server is the gin web shell around the deck.
type Server struct {
	router       *gin.Engine
	templates    *template.Template
	presentation *app.PresentationService
	metrics      *metrics.Metrics
	gatherer     prometheus.Gatherer
	api          http.Handler
	logger       *internal.Logger
}

// NewServer parses the templates and registers every route.
func NewServer(opts Options) (*Server, error) {
	if opts.Presentation == nil {
		return nil, fmt.Errorf("presentation service is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = internal.DefaultLogger
	}

	templates, err := template.New("").Funcs(funcMap()).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		router:       gin.New(),
		templates:    templates,
		presentation: opts.Presentation,
		metrics:      opts.Metrics,
		gatherer:     opts.Gatherer,
		api:          opts.API,
		logger:       logger.With("ui"),
	}

	if err := s.setupMiddleware(); err != nil {
		return nil, err
	}
	s.setupRoutes()
	return s, nil
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"f4":    func(v float64) string { return fmt.Sprintf("%.4f", v) },
		"upper": strings.ToUpper,
		"half":  func(v float64) float64 { return v / 2 },
	}
}

// setupMiddleware configures Gin middleware and the static file tree
func (s *Server) setupMiddleware() error {
	s.router.Use(gin.Logger(), gin.Recovery(), middleware.RequestID())

	staticFS, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		return fmt.Errorf("failed to create static filesystem: %w", err)
	}
	s.router.StaticFS("/static", http.FS(staticFS))
	return nil
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.GET("/healthz", s.handleHealth)

	pages := s.router.Group("/pages/:id")
	pages.GET("", s.handlePage)
	pages.GET("/simulation", s.handleSimulationFragment)
	pages.GET("/edf", s.handleEDFFragment)
	pages.GET("/accuracy", s.handleAccuracyFragment)

	if s.gatherer != nil {
		s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
	}
	if s.api != nil {
		s.router.Any(api.Prefix+"/*path", gin.WrapH(s.api))
	}
	s.router.NoRoute(s.handleNoRoute)
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves on addr until ctx is cancelled.
func (s *Server) Start(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return internal.RunServer(ctx, srv, shutdownTimeout, s.logger)
}
