package main

import (
	"context"
	"embed"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/klabast/wb-services/aktivitaeten/internal/app"
	"github.com/klabast/wb-services/aktivitaeten/internal/commands"
	"github.com/klabast/wb-services/aktivitaeten/internal/i18n"
	"github.com/klabast/wb-services/aktivitaeten/internal/logging"
)

//go:embed static/*
var staticFiles embed.FS

func main() {
	// Check for subcommands
	if len(os.Args) > 1 && os.Args[1] == "shell" {
		commands.RunShell(os.Args[2:])
		return
	}

	cfg, err := app.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Parse flags
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger := logging.Init(cfg.LogLevel, cfg.LogFormat)
	if err := run(cfg, logger); err != nil {
		logger.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *app.Config, logger *slog.Logger) error {
	backend, err := cfg.NewAPIClient(logger)
	if err != nil {
		return err
	}

	client, err := app.New(backend, app.Options{
		Logger:         logger,
		Language:       i18n.Parse(cfg.Lang),
		MessageTimeout: cfg.MessageTimeout,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loopDone := make(chan error, 1)
	go func() {
		loopDone <- client.Run(ctx)
	}()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           app.NewServer(client, staticFiles, logger).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("Starting Aktivitäten on http://localhost:%d", cfg.Port))
		logger.Info("Activities API", "url", cfg.APIURL)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	stop()
	return <-loopDone
}
