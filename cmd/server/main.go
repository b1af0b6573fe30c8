package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pdf-to-speech/internal/config"
	"pdf-to-speech/internal/handler"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Wiring
	container, err := config.NewContainer(ctx)
	if err != nil {
		log.Printf("Failed to initialize: %v", err)
		os.Exit(1)
	}
	defer container.Close()

	// Handlers
	conversionHandler := handler.NewConversionHandler(
		container.ConversionService,
		container.Config.GetMaxFileSize(),
		container.Logger,
	)

	// Router
	router := handler.NewRouter(
		conversionHandler,
		container.Config.GetCORSAllowedOrigins(),
		handler.RequestLogger(container.Logger),
		handler.Recoverer(container.Logger),
	)

	server := &http.Server{
		Addr:              ":" + container.Config.GetServerPort(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		container.Logger.Info("Server listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if container.Janitor != nil {
		g.Go(func() error {
			return container.Janitor.Run(gctx)
		})
	}

	// Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		container.Logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		container.Logger.Error("Server stopped with error", err)
		_ = container.Close()
		os.Exit(1)
	}
	container.Logger.Info("Server exited")
}
