package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"log/slog"

	"github.com/joho/godotenv"

	"github.com/GintGld/vam-seed/internal/app"
	"github.com/GintGld/vam-seed/internal/config"
	"github.com/GintGld/vam-seed/internal/lib/logger/setup"
	"github.com/GintGld/vam-seed/internal/lib/logger/sl"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg := config.MustLoad()

	log := setup.Logger(cfg.Env, os.Stdout)

	log.Info("starting vam stub", slog.String("env", cfg.Env))
	log.Debug("debug messages are enabled")

	if err := os.MkdirAll(filepath.Dir(cfg.StoragePath), 0755); err != nil {
		log.Error("failed to create storage dir", sl.Err(err))
		os.Exit(1)
	}

	httpApplication, err := app.New(
		log,
		cfg.Stub.Address,
		cfg.StoragePath,
	)
	if err != nil {
		log.Error("failed to init app", sl.Err(err))
		os.Exit(1)
	}

	// Run server
	go func() {
		httpApplication.Router.MustRun()
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)

	<-stop

	if err := httpApplication.Stop(); err != nil {
		log.Error("failed to stop", sl.Err(err))
	}
	log.Info("Gracefully stopped")
}
