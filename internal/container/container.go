package container

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"mideck/adapters/rng"
	"mideck/app"
	"mideck/domain/deck"
	"mideck/internal"
	"mideck/internal/api"
	"mideck/internal/config"
	"mideck/internal/content"
	"mideck/internal/errors"
	"mideck/internal/metrics"
	"mideck/slides"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Deck
	Manifest *deck.Manifest
	Catalog  *deck.Catalog
	Content  *content.Store

	// Services
	Simulation   *app.SimulationService
	Presentation *app.PresentationService

	// Observability; both nil when metrics are disabled
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics
}

// New creates a new dependency injection container
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	c := &Container{
		Config: cfg,
		Logger: internal.NewLogger(cfg.LogLevel()),
	}

	if cfg.Metrics.Enabled {
		c.Registry = prometheus.NewRegistry()
		c.Registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		c.Metrics = metrics.New(c.Registry)
	}

	return c, nil
}

// Init loads the deck and wires the services. Every page body is rendered
// once here so a broken manifest or a missing markdown file stops startup.
func (c *Container) Init(ctx context.Context) error {
	fsys, manifestFile, pagesDir, err := c.deckSource()
	if err != nil {
		return err
	}

	data, err := fs.ReadFile(fsys, manifestFile)
	if err != nil {
		return errors.Wrap(errors.ConfigInvalid(err.Error()), "failed to read deck manifest")
	}
	manifest, catalog, err := deck.LoadCatalog(data)
	if err != nil {
		return errors.Wrap(errors.ConfigInvalid(err.Error()), "failed to load deck")
	}

	store := content.NewStore(fsys, pagesDir)
	if err := store.Preload(ctx, catalog); err != nil {
		return errors.Wrap(errors.ConfigInvalid(err.Error()), "failed to render deck content")
	}

	policy, err := app.ParseSeedPolicy(c.Config.Demo.SeedPolicy)
	if err != nil {
		return errors.Wrap(errors.ConfigInvalid(err.Error()), "failed to configure demo")
	}

	c.Manifest = manifest
	c.Catalog = catalog
	c.Content = store
	c.Simulation = app.NewSimulationService(rng.NewPCGAdapter(), c.Config.Demo.Seed, policy)
	c.Presentation = app.NewPresentationService(manifest, catalog, store, c.Simulation)

	c.Logger.With("container").Info("loaded deck %q: %d pages, seed %d (%s)",
		manifest.Title, catalog.Len(), c.Config.Demo.Seed, policy)
	return nil
}

// deckSource picks the embedded deck or, with DECK_MANIFEST set, a manifest on
// disk whose pages live in a pages/ directory beside it.
func (c *Container) deckSource() (fs.FS, string, string, error) {
	path := c.Config.Deck.Manifest
	if path == "" {
		return slides.FS, slides.ManifestFile, slides.PagesDir, nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, "", "", errors.ConfigInvalid(fmt.Sprintf("DECK_MANIFEST: %v", err))
	}
	return os.DirFS(filepath.Dir(path)), filepath.Base(path), slides.PagesDir, nil
}

// APIHandler builds the JSON API router over the container's services.
func (c *Container) APIHandler() *api.Handler {
	return api.NewHandler(c.Presentation, c.Metrics, c.Logger)
}

// Shutdown releases resources. Nothing is held open today.
func (c *Container) Shutdown(ctx context.Context) error {
	c.Logger.With("container").Debug("shutdown")
	return nil
}
