package router

import (
	"log/slog"
	"net"

	"github.com/gofiber/fiber/v2"

	assetsSrv "github.com/GintGld/vam-seed/internal/service/assets"

	videoCtr "github.com/GintGld/vam-seed/internal/controller/video"
	refCtr "github.com/GintGld/vam-seed/internal/controller/videoreference"
	seqCtr "github.com/GintGld/vam-seed/internal/controller/videosequence"
	"github.com/GintGld/vam-seed/internal/models"
)

type App struct {
	log     *slog.Logger
	address string
	app     *fiber.App
}

// New returns configured router.App
func New(
	log *slog.Logger,
	storage assetsSrv.AssetStorage,
	address string,
) *App {
	// Create services
	assets := assetsSrv.New(
		log,
		storage,
	)

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	// Both "videosequence" and "videosequences" are served
	api := fiber.New()
	for _, plural := range []bool{false, true} {
		api.Mount("/"+models.ResourceSequence.Path(plural), seqCtr.New(assets))
		api.Mount("/"+models.ResourceVideo.Path(plural), videoCtr.New(assets))
		api.Mount("/"+models.ResourceReference.Path(plural), refCtr.New(assets))
	}

	app.Mount("/v1", api)

	return &App{
		log:     log,
		address: address,
		app:     app,
	}
}

func (a *App) MustRun() {
	if err := a.Run(); err != nil {
		panic(err)
	}
}

func (a *App) Run() error {
	a.log.Info("http server started", slog.String("address", a.address))

	return a.app.Listen(a.address)
}

// Serve accepts connections on ln.
func (a *App) Serve(ln net.Listener) error {
	a.log.Info("http server started", slog.String("address", ln.Addr().String()))

	return a.app.Listener(ln)
}

// Fiber returns underlying fiber application.
func (a *App) Fiber() *fiber.App {
	return a.app
}

func (a *App) Stop() error {
	return a.app.Shutdown()
}
