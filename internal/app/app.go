package app

import (
	"fmt"
	"log/slog"

	routerApp "github.com/GintGld/vam-seed/internal/app/router"
	"github.com/GintGld/vam-seed/internal/storage/sqlite"
)

type App struct {
	Router  *routerApp.App
	storage *sqlite.Storage
}

// New opens and migrates storage, then builds router.
func New(
	log *slog.Logger,
	address string,
	storagePath string,
) (*App, error) {
	const op = "app.New"

	storage, err := sqlite.New(storagePath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := storage.Migrate(); err != nil {
		storage.Stop()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &App{
		Router:  routerApp.New(log, storage, address),
		storage: storage,
	}, nil
}

// Stop shuts down router and closes storage.
func (a *App) Stop() error {
	if err := a.Router.Stop(); err != nil {
		return err
	}
	return a.storage.Stop()
}
