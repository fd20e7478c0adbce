package main

import (
	"context"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"mideck/internal"
	"mideck/internal/config"
	"mideck/internal/container"
	"mideck/ui"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	gin.SetMode(appConfig.Server.GinMode)

	if err := run(appConfig); err != nil {
		os.Exit(1)
	}
}

func run(appConfig *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appContainer, err := container.New(appConfig)
	if err != nil {
		log.Printf("Failed to create application container: %v", err)
		return err
	}
	defer appContainer.Shutdown(context.Background())

	if err := appContainer.Init(ctx); err != nil {
		log.Printf("Failed to initialize container: %v", err)
		return err
	}

	opts := ui.Options{
		Presentation: appContainer.Presentation,
		Metrics:      appContainer.Metrics,
		API:          appContainer.APIHandler().Router(),
		Logger:       appContainer.Logger,
	}
	if appContainer.Registry != nil {
		opts.Gatherer = appContainer.Registry
	}
	server, err := ui.NewServer(opts)
	if err != nil {
		log.Printf("Failed to initialize server: %v", err)
		return err
	}

	logger := appContainer.Logger.With("main")
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return server.Start(gctx, ":"+appConfig.Server.Port, appConfig.Server.ShutdownTimeout)
	})

	// pprof registers on http.DefaultServeMux
	if appConfig.Profiling.Enabled {
		g.Go(func() error {
			logger.Info("profiling: go tool pprof -http=:0 http://localhost:%s/debug/pprof/profile?seconds=30", appConfig.Profiling.Port)
			srv := &http.Server{
				Addr:              ":" + appConfig.Profiling.Port,
				Handler:           http.DefaultServeMux,
				ReadHeaderTimeout: 10 * time.Second,
			}
			return internal.RunServer(gctx, srv, appConfig.Server.ShutdownTimeout, appContainer.Logger.With("pprof"))
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("server stopped: %v", err)
		return err
	}
	logger.Info("shutdown complete")
	return nil
}
