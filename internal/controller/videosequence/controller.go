package videosequence

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
// handle video sequence requests
func New(srv Sequences) *fiber.App {
	seqCtr := sequenceController{
		srv: srv,
	}

	app := fiber.New()

	app.Get("/names", seqCtr.names)
	app.Get("/cameras", seqCtr.cameras)
	app.Get("/name/:name", seqCtr.sequenceByName)
	app.Get("/:id", seqCtr.sequence)
	app.Post("/", seqCtr.newSequence)
	app.Put("/:id", seqCtr.updateSequence)
	app.Delete("/:id", seqCtr.deleteSequence)

	return app
}

type sequenceController struct {
	srv Sequences
}

type Sequences interface {
	NewSequence(ctx context.Context, form url.Values) (models.VideoSequence, error)
	Sequence(ctx context.Context, id string) (models.VideoSequence, error)
	SequenceByName(ctx context.Context, name string) (models.VideoSequence, error)
	UpdateSequence(ctx context.Context, id string, form url.Values) (models.VideoSequence, error)
	DeleteSequence(ctx context.Context, id string) error
	SequenceNames(ctx context.Context) ([]string, error)
	Cameras(ctx context.Context) ([]string, error)
}

// newSequence creates video sequence from form fields
func (seqCtr *sequenceController) newSequence(c *fiber.Ctx) error {
	form, err := request.Form(c)
	if err != nil {
		return request.Error(c, fiber.StatusBadRequest, "invalid form")
	}

	vs, err := seqCtr.srv.NewSequence(context.TODO(), form)
	if err != nil {
		return seqCtr.fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(vs)
}

// sequence returns video sequence by uuid
func (seqCtr *sequenceController) sequence(c *fiber.Ctx) error {
	vs, err := seqCtr.srv.Sequence(context.TODO(), c.Params("id"))
	if err != nil {
		return seqCtr.fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(vs)
}

// sequenceByName returns video sequence by its name
func (seqCtr *sequenceController) sequenceByName(c *fiber.Ctx) error {
	name, err := request.Param(c, "name")
	if err != nil {
		return request.Error(c, fiber.StatusBadRequest, "bad name")
	}

	vs, err := seqCtr.srv.SequenceByName(context.TODO(), name)
	if err != nil {
		return seqCtr.fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(vs)
}

// updateSequence applies form fields to video sequence
func (seqCtr *sequenceController) updateSequence(c *fiber.Ctx) error {
	form, err := request.Form(c)
	if err != nil {
		return request.Error(c, fiber.StatusBadRequest, "invalid form")
	}

	vs, err := seqCtr.srv.UpdateSequence(context.TODO(), c.Params("id"), form)
	if err != nil {
		return seqCtr.fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(vs)
}

// deleteSequence deletes video sequence with its videos
func (seqCtr *sequenceController) deleteSequence(c *fiber.Ctx) error {
	if err := seqCtr.srv.DeleteSequence(context.TODO(), c.Params("id")); err != nil {
		return seqCtr.fail(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// names returns all video sequence names
func (seqCtr *sequenceController) names(c *fiber.Ctx) error {
	names, err := seqCtr.srv.SequenceNames(context.TODO())
	if err != nil {
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.Status(fiber.StatusOK).JSON(names)
}

// cameras returns all known camera ids
func (seqCtr *sequenceController) cameras(c *fiber.Ctx) error {
	cameras, err := seqCtr.srv.Cameras(context.TODO())
	if err != nil {
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.Status(fiber.StatusOK).JSON(cameras)
}

func (seqCtr *sequenceController) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return request.Error(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrSequenceExists):
		return request.Error(c, fiber.StatusConflict, "video sequence exists")
	case errors.Is(err, service.ErrSequenceNotFound):
		return request.Error(c, fiber.StatusNotFound, "video sequence not found")
	}
	return c.SendStatus(fiber.StatusInternalServerError)
}
