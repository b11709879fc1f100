package video

import (
	"context"
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/GintGld/vam-seed/internal/controller/request"
	"github.com/GintGld/vam-seed/internal/models"
	"github.com/GintGld/vam-seed/internal/service"
)

// New returns fiber app that will
// handle video requests
func New(srv Videos) *fiber.App {
	videoCtr := videoController{
		srv: srv,
	}

	app := fiber.New()

	app.Get("/:id", videoCtr.video)
	app.Post("/", videoCtr.newVideo)
	app.Put("/:id", videoCtr.updateVideo)
	app.Delete("/:id", videoCtr.deleteVideo)

	return app
}

type videoController struct {
	srv Videos
}

type Videos interface {
	NewVideo(ctx context.Context, form url.Values) (models.Video, error)
	Video(ctx context.Context, id string) (models.Video, error)
	UpdateVideo(ctx context.Context, id string, form url.Values) (models.Video, error)
	DeleteVideo(ctx context.Context, id string) error
}

// newVideo creates video inside existing sequence
func (videoCtr *videoController) newVideo(c *fiber.Ctx) error {
	form, err := request.Form(c)
	if err != nil {
		return request.Error(c, fiber.StatusBadRequest, "invalid form")
	}

	v, err := videoCtr.srv.NewVideo(context.TODO(), form)
	if err != nil {
		return videoCtr.fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(v)
}

func (videoCtr *videoController) video(c *fiber.Ctx) error {
	v, err := videoCtr.srv.Video(context.TODO(), c.Params("id"))
	if err != nil {
		return videoCtr.fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(v)
}

func (videoCtr *videoController) updateVideo(c *fiber.Ctx) error {
	form, err := request.Form(c)
	if err != nil {
		return request.Error(c, fiber.StatusBadRequest, "invalid form")
	}

	v, err := videoCtr.srv.UpdateVideo(context.TODO(), c.Params("id"), form)
	if err != nil {
		return videoCtr.fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(v)
}

func (videoCtr *videoController) deleteVideo(c *fiber.Ctx) error {
	if err := videoCtr.srv.DeleteVideo(context.TODO(), c.Params("id")); err != nil {
		return videoCtr.fail(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// fail maps service error to response.
// Missing parent is a bad request, missing video is 404.
func (videoCtr *videoController) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return request.Error(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrSequenceNotFound):
		return request.Error(c, fiber.StatusBadRequest, "video sequence not found")
	case errors.Is(err, service.ErrVideoNotFound):
		return request.Error(c, fiber.StatusNotFound, "video not found")
	}
	return c.SendStatus(fiber.StatusInternalServerError)
}
