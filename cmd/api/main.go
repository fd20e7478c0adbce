// Command api serves only the JSON API, without the HTML shell.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"mideck/internal"
	"mideck/internal/config"
	"mideck/internal/container"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := container.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create application container: %v", err)
	}
	if err := c.Init(ctx); err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.API.Port,
		Handler:           c.APIHandler().Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return internal.RunServer(gctx, srv, cfg.Server.ShutdownTimeout, c.Logger.With("api"))
	})

	err = g.Wait()
	if shutdownErr := c.Shutdown(context.Background()); shutdownErr != nil && err == nil {
		err = shutdownErr
	}
	if err != nil {
		c.Logger.Error("api server stopped: %v", err)
		os.Exit(1)
	}
}
