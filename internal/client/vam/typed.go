package vam

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/GintGld/vam-seed/internal/models"
)

// CreateSequence creates new video sequence.
func (c *Client) CreateSequence(ctx context.Context, vs models.VideoSequence) (models.VideoSequence, error) {
	const op = "Client.CreateSequence"

	form, err := vs.Form()
	if err != nil {
		return models.VideoSequence{}, fmt.Errorf("%s: %w", op, err)
	}

	return created[models.VideoSequence](ctx, c, op, models.ResourceSequence, form, seqUUID)
}

// CreateVideo creates new video inside the sequence with given uuid.
// sequenceUUID overrides v.VideoSequenceUUID.
func (c *Client) CreateVideo(ctx context.Context, sequenceUUID string, v models.Video) (models.Video, error) {
	const op = "Client.CreateVideo"

	if sequenceUUID == "" {
		return models.Video{}, fmt.Errorf("%s: %w", op, ErrMissingParent)
	}
	v.VideoSequenceUUID = sequenceUUID

	form, err := v.Form()
	if err != nil {
		return models.Video{}, fmt.Errorf("%s: %w", op, err)
	}

	return created[models.Video](ctx, c, op, models.ResourceVideo, form, videoUUID)
}

// CreateReference creates new reference of the video with given uuid.
// videoUUID overrides vr.VideoUUID.
func (c *Client) CreateReference(ctx context.Context, videoUUID string, vr models.VideoReference) (models.VideoReference, error) {
	const op = "Client.CreateReference"

	if videoUUID == "" {
		return models.VideoReference{}, fmt.Errorf("%s: %w", op, ErrMissingParent)
	}
	vr.VideoUUID = videoUUID

	form, err := vr.Form()
	if err != nil {
		return models.VideoReference{}, fmt.Errorf("%s: %w", op, err)
	}

	return created[models.VideoReference](ctx, c, op, models.ResourceReference, form, refUUID)
}

// UpdateSequence sends non-empty fields of vs as an update.
func (c *Client) UpdateSequence(ctx context.Context, id string, vs models.VideoSequence) (models.VideoSequence, error) {
	const op = "Client.UpdateSequence"

	form, err := vs.Form()
	if err != nil {
		return models.VideoSequence{}, fmt.Errorf("%s: %w", op, err)
	}

	return updated[models.VideoSequence](ctx, c, op, models.ResourceSequence, id, form)
}

// UpdateVideo sends non-empty fields of v as an update.
func (c *Client) UpdateVideo(ctx context.Context, id string, v models.Video) (models.Video, error) {
	const op = "Client.UpdateVideo"

	form, err := v.Form()
	if err != nil {
		return models.Video{}, fmt.Errorf("%s: %w", op, err)
	}

	return updated[models.Video](ctx, c, op, models.ResourceVideo, id, form)
}

// UpdateReference sends non-empty fields of vr as an update.
func (c *Client) UpdateReference(ctx context.Context, id string, vr models.VideoReference) (models.VideoReference, error) {
	const op = "Client.UpdateReference"

	form, err := vr.Form()
	if err != nil {
		return models.VideoReference{}, fmt.Errorf("%s: %w", op, err)
	}

	return updated[models.VideoReference](ctx, c, op, models.ResourceReference, id, form)
}

// Sequence returns video sequence by uuid.
func (c *Client) Sequence(ctx context.Context, id string) (models.VideoSequence, error) {
	return fetch[models.VideoSequence](ctx, c, "Client.Sequence", c.url(models.ResourceSequence, id))
}

// SequenceByName returns video sequence by its unique name.
func (c *Client) SequenceByName(ctx context.Context, name string) (models.VideoSequence, error) {
	return fetch[models.VideoSequence](ctx, c, "Client.SequenceByName", c.url(models.ResourceSequence, "name", name))
}

// Video returns video by uuid.
func (c *Client) Video(ctx context.Context, id string) (models.Video, error) {
	return fetch[models.Video](ctx, c, "Client.Video", c.url(models.ResourceVideo, id))
}

// Reference returns video reference by uuid.
func (c *Client) Reference(ctx context.Context, id string) (models.VideoReference, error) {
	return fetch[models.VideoReference](ctx, c, "Client.Reference", c.url(models.ResourceReference, id))
}

func seqUUID(vs models.VideoSequence) string  { return vs.UUID }
func videoUUID(v models.Video) string         { return v.UUID }
func refUUID(vr models.VideoReference) string { return vr.UUID }

func created[T any](
	ctx context.Context,
	c *Client,
	op string,
	rt models.ResourceType,
	form url.Values,
	id func(T) string,
) (T, error) {
	res, resp, err := sendTyped[T](ctx, c, op, request{
		method: http.MethodPost,
		url:    c.url(rt),
		form:   form,
	})
	if err != nil {
		return res, fmt.Errorf("%s: %w", op, err)
	}

	if id(res) == "" {
		return res, fmt.Errorf("%s: %w", op, resp.decodeErr(ErrMissingUUID))
	}

	c.log.Info(
		"created resource",
		slog.String("op", op),
		slog.String("type", string(rt)),
		slog.String("uuid", id(res)),
	)

	return res, nil
}

func updated[T any](
	ctx context.Context,
	c *Client,
	op string,
	rt models.ResourceType,
	id string,
	form url.Values,
) (T, error) {
	res, _, err := sendTyped[T](ctx, c, op, request{
		method: http.MethodPut,
		url:    c.url(rt, id),
		form:   form,
	})
	if err != nil {
		return res, fmt.Errorf("%s: %w", op, err)
	}

	return res, nil
}

func fetch[T any](ctx context.Context, c *Client, op, u string) (T, error) {
	res, _, err := sendTyped[T](ctx, c, op, request{
		method: http.MethodGet,
		url:    u,
		read:   true,
	})
	if err != nil {
		return res, fmt.Errorf("%s: %w", op, err)
	}

	return res, nil
}

// sendTyped works like send but also returns raw response.
func sendTyped[T any](ctx context.Context, c *Client, op string, req request) (T, *response, error) {
	var res T

	resp, err := c.do(ctx, op, req)
	if err != nil {
		return res, nil, err
	}

	res, err = decode[T](c, op, req, resp)
	return res, resp, err
}
