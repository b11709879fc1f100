package videoreference

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
// handle video reference requests
func New(srv References) *fiber.App {
	refCtr := referenceController{
		srv: srv,
	}

	app := fiber.New()

	app.Get("/:id", refCtr.reference)
	app.Post("/", refCtr.newReference)
	app.Put("/:id", refCtr.updateReference)
	app.Delete("/:id", refCtr.deleteReference)

	return app
}

type referenceController struct {
	srv References
}

type References interface {
	NewReference(ctx context.Context, form url.Values) (models.VideoReference, error)
	Reference(ctx context.Context, id string) (models.VideoReference, error)
	UpdateReference(ctx context.Context, id string, form url.Values) (models.VideoReference, error)
	DeleteReference(ctx context.Context, id string) error
}

// newReference creates reference of existing video
func (refCtr *referenceController) newReference(c *fiber.Ctx) error {
	form, err := request.Form(c)
	if err != nil {
		return request.Error(c, fiber.StatusBadRequest, "invalid form")
	}

	vr, err := refCtr.srv.NewReference(context.TODO(), form)
	if err != nil {
		return refCtr.fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(vr)
}

func (refCtr *referenceController) reference(c *fiber.Ctx) error {
	vr, err := refCtr.srv.Reference(context.TODO(), c.Params("id"))
	if err != nil {
		return refCtr.fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(vr)
}

func (refCtr *referenceController) updateReference(c *fiber.Ctx) error {
	form, err := request.Form(c)
	if err != nil {
		return request.Error(c, fiber.StatusBadRequest, "invalid form")
	}

	vr, err := refCtr.srv.UpdateReference(context.TODO(), c.Params("id"), form)
	if err != nil {
		return refCtr.fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(vr)
}

func (refCtr *referenceController) deleteReference(c *fiber.Ctx) error {
	if err := refCtr.srv.DeleteReference(context.TODO(), c.Params("id")); err != nil {
		return refCtr.fail(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// fail maps service error to response.
// Missing parent is a bad request, missing reference is 404.
func (refCtr *referenceController) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return request.Error(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrVideoNotFound):
		return request.Error(c, fiber.StatusBadRequest, "video not found")
	case errors.Is(err, service.ErrReferenceNotFound):
		return request.Error(c, fiber.StatusNotFound, "video reference not found")
	}
	return c.SendStatus(fiber.StatusInternalServerError)
}
