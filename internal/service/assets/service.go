package assets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/GintGld/vam-seed/internal/lib/logger/sl"
	"github.com/GintGld/vam-seed/internal/models"
	"github.com/GintGld/vam-seed/internal/service"
	"github.com/GintGld/vam-seed/internal/storage"
)

type Assets struct {
	log     *slog.Logger
	storage AssetStorage
}

type AssetStorage interface {
	SaveSequence(ctx context.Context, vs models.VideoSequence) (models.VideoSequence, error)
	Sequence(ctx context.Context, id string) (models.VideoSequence, error)
	SequenceByName(ctx context.Context, name string) (models.VideoSequence, error)
	UpdateSequence(ctx context.Context, vs models.VideoSequence) (models.VideoSequence, error)
	DeleteSequence(ctx context.Context, id string) error
	SequenceNames(ctx context.Context) ([]string, error)
	Cameras(ctx context.Context) ([]string, error)

	SaveVideo(ctx context.Context, v models.Video) (models.Video, error)
	Video(ctx context.Context, id string) (models.Video, error)
	UpdateVideo(ctx context.Context, v models.Video) (models.Video, error)
	DeleteVideo(ctx context.Context, id string) error

	SaveReference(ctx context.Context, vr models.VideoReference) (models.VideoReference, error)
	Reference(ctx context.Context, id string) (models.VideoReference, error)
	UpdateReference(ctx context.Context, vr models.VideoReference) (models.VideoReference, error)
	DeleteReference(ctx context.Context, id string) error
}

func New(
	log *slog.Logger,
	storage AssetStorage,
) *Assets {
	return &Assets{
		log:     log,
		storage: storage,
	}
}

// NewSequence registers new video sequence.
func (a *Assets) NewSequence(ctx context.Context, form url.Values) (models.VideoSequence, error) {
	const op = "Assets.NewSequence"

	log := a.log.With(slog.String("op", op))

	var vs models.VideoSequence
	if err := parse(&vs, form); err != nil {
		log.Warn("invalid video sequence", sl.Err(err))
		return models.VideoSequence{}, fmt.Errorf("%s: %w", op, err)
	}

	saved, err := a.storage.SaveSequence(ctx, vs)
	if err != nil {
		if errors.Is(err, storage.ErrSequenceExists) {
			log.Warn("video sequence exists", slog.String("name", vs.Name))
		} else {
			log.Error("failed to save video sequence", sl.Err(err))
		}
		return models.VideoSequence{}, fmt.Errorf("%s: %w", op, mapErr(err))
	}

	log.Info(
		"registered video sequence",
		slog.String("uuid", saved.UUID),
		slog.String("name", saved.Name),
		slog.String("camera", saved.CameraID),
	)

	return saved, nil
}

// Sequence returns video sequence by uuid.
func (a *Assets) Sequence(ctx context.Context, id string) (models.VideoSequence, error) {
	const op = "Assets.Sequence"

	vs, err := a.storage.Sequence(ctx, id)
	if err != nil {
		a.logFetch(op, id, err)
		return models.VideoSequence{}, fmt.Errorf("%s: %w", op, mapErr(err))
	}

	return vs, nil
}

// SequenceByName returns video sequence by name.
func (a *Assets) SequenceByName(ctx context.Context, name string) (models.VideoSequence, error) {
	const op = "Assets.SequenceByName"

	vs, err := a.storage.SequenceByName(ctx, name)
	if err != nil {
		a.logFetch(op, name, err)
		return models.VideoSequence{}, fmt.Errorf("%s: %w", op, mapErr(err))
	}

	return vs, nil
}

// UpdateSequence applies form fields to existing sequence.
func (a *Assets) UpdateSequence(ctx context.Context, id string, form url.Values) (models.VideoSequence, error) {
	const op = "Assets.UpdateSequence"

	log := a.log.With(slog.String("op", op), slog.String("uuid", id))

	vs, err := a.storage.Sequence(ctx, id)
	if err != nil {
		a.logFetch(op, id, err)
		return models.VideoSequence{}, fmt.Errorf("%s: %w", op, mapErr(err))
	}

	if err := parse(&vs, form); err != nil {
		log.Warn("invalid video sequence", sl.Err(err))
		return models.VideoSequence{}, fmt.Errorf("%s: %w", op, err)
	}

	vs, err = a.storage.UpdateSequence(ctx, vs)
	if err != nil {
		log.Error("failed to update video sequence", sl.Err(err))
		return models.VideoSequence{}, fmt.Errorf("%s: %w", op, mapErr(err))
	}

	log.Info("updated video sequence")

	return vs, nil
}

// DeleteSequence deletes sequence with its videos and references.
func (a *Assets) DeleteSequence(ctx context.Context, id string) error {
	const op = "Assets.DeleteSequence"

	return a.delete(op, id, a.storage.DeleteSequence(ctx, id))
}

// SequenceNames returns names of all video sequences.
func (a *Assets) SequenceNames(ctx context.Context) ([]string, error) {
	const op = "Assets.SequenceNames"

	names, err := a.storage.SequenceNames(ctx)
	if err != nil {
		a.log.Error("failed to get names", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return names, nil
}

// Cameras returns all known camera ids.
func (a *Assets) Cameras(ctx context.Context) ([]string, error) {
	const op = "Assets.Cameras"

	cameras, err := a.storage.Cameras(ctx)
	if err != nil {
		a.log.Error("failed to get cameras", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return cameras, nil
}

// NewVideo registers new video. Its sequence must exist.
func (a *Assets) NewVideo(ctx context.Context, form url.Values) (models.Video, error) {
	const op = "Assets.NewVideo"

	log := a.log.With(slog.String("op", op))

	var v models.Video
	if err := parse(&v, form); err != nil {
		log.Warn("invalid video", sl.Err(err))
		return models.Video{}, fmt.Errorf("%s: %w", op, err)
	}

	saved, err := a.storage.SaveVideo(ctx, v)
	if err != nil {
		if errors.Is(err, storage.ErrSequenceNotFound) {
			log.Warn("video sequence not found", slog.String("sequence", v.VideoSequenceUUID))
		} else {
			log.Error("failed to save video", sl.Err(err))
		}
		return models.Video{}, fmt.Errorf("%s: %w", op, mapErr(err))
	}

	log.Info(
		"registered video",
		slog.String("uuid", saved.UUID),
		slog.String("name", saved.Name),
		slog.String("sequence", saved.VideoSequenceUUID),
	)

	return saved, nil
}

// Video returns video by uuid.
func (a *Assets) Video(ctx context.Context, id string) (models.Video, error) {
	const op = "Assets.Video"

	v, err := a.storage.Video(ctx, id)
	if err != nil {
		a.logFetch(op, id, err)
		return models.Video{}, fmt.Errorf("%s: %w", op, mapErr(err))
	}

	return v, nil
}

// UpdateVideo applies form fields to existing video.
func (a *Assets) UpdateVideo(ctx context.Context, id string, form url.Values) (models.Video, error) {
	const op = "Assets.UpdateVideo"

	log := a.log.With(slog.String("op", op), slog.String("uuid", id))

	v, err := a.storage.Video(ctx, id)
	if err != nil {
		a.logFetch(op, id, err)
		return models.Video{}, fmt.Errorf("%s: %w", op, mapErr(err))
	}

	if err := parse(&v, form); err != nil {
		log.Warn("invalid video", sl.Err(err))
		return models.Video{}, fmt.Errorf("%s: %w", op, err)
	}

	v, err = a.storage.UpdateVideo(ctx, v)
	if err != nil {
		log.Error("failed to update video", sl.Err(err))
		return models.Video{}, fmt.Errorf("%s: %w", op, mapErr(err))
	}

	log.Info("updated video")

	return v, nil
}

// DeleteVideo deletes video with its references.
func (a *Assets) DeleteVideo(ctx context.Context, id string) error {
	const op = "Assets.DeleteVideo"

	return a.delete(op, id, a.storage.DeleteVideo(ctx, id))
}

// NewReference registers new video reference. Its video must exist.
func (a *Assets) NewReference(ctx context.Context, form url.Values) (models.VideoReference, error) {
	const op = "Assets.NewReference"

	log := a.log.With(slog.String("op", op))

	var vr models.VideoReference
	if err := parse(&vr, form); err != nil {
		log.Warn("invalid video reference", sl.Err(err))
		return models.VideoReference{}, fmt.Errorf("%s: %w", op, err)
	}

	saved, err := a.storage.SaveReference(ctx, vr)
	if err != nil {
		if errors.Is(err, storage.ErrVideoNotFound) {
			log.Warn("video not found", slog.String("video", vr.VideoUUID))
		} else {
			log.Error("failed to save video reference", sl.Err(err))
		}
		return models.VideoReference{}, fmt.Errorf("%s: %w", op, mapErr(err))
	}

	log.Info(
		"registered video reference",
		slog.String("uuid", saved.UUID),
		slog.String("uri", saved.URI),
		slog.String("video", saved.VideoUUID),
	)

	return saved, nil
}

// Reference returns video reference by uuid.
func (a *Assets) Reference(ctx context.Context, id string) (models.VideoReference, error) {
	const op = "Assets.Reference"

	vr, err := a.storage.Reference(ctx, id)
	if err != nil {
		a.logFetch(op, id, err)
		return models.VideoReference{}, fmt.Errorf("%s: %w", op, mapErr(err))
	}

	return vr, nil
}

// UpdateReference applies form fields to existing reference.
func (a *Assets) UpdateReference(ctx context.Context, id string, form url.Values) (models.VideoReference, error) {
	const op = "Assets.UpdateReference"

	log := a.log.With(slog.String("op", op), slog.String("uuid", id))

	vr, err := a.storage.Reference(ctx, id)
	if err != nil {
		a.logFetch(op, id, err)
		return models.VideoReference{}, fmt.Errorf("%s: %w", op, mapErr(err))
	}

	if err := parse(&vr, form); err != nil {
		log.Warn("invalid video reference", sl.Err(err))
		return models.VideoReference{}, fmt.Errorf("%s: %w", op, err)
	}

	vr, err = a.storage.UpdateReference(ctx, vr)
	if err != nil {
		log.Error("failed to update video reference", sl.Err(err))
		return models.VideoReference{}, fmt.Errorf("%s: %w", op, mapErr(err))
	}

	log.Info("updated video reference")

	return vr, nil
}

// DeleteReference deletes video reference.
func (a *Assets) DeleteReference(ctx context.Context, id string) error {
	const op = "Assets.DeleteReference"

	return a.delete(op, id, a.storage.DeleteReference(ctx, id))
}

type entity interface {
	ApplyForm(url.Values) error
	Validate() error
}

// parse applies form to e and validates result.
func parse(e entity, form url.Values) error {
	if err := e.ApplyForm(form); err != nil {
		return fmt.Errorf("%w: %w", service.ErrInvalidInput, err)
	}
	if err := e.Validate(); err != nil {
		return fmt.Errorf("%w: %w", service.ErrInvalidInput, err)
	}
	return nil
}

func (a *Assets) logFetch(op, key string, err error) {
	log := a.log.With(slog.String("op", op), slog.String("key", key))

	if isNotFound(err) {
		log.Warn("not found")
		return
	}
	log.Error("failed to get", sl.Err(err))
}

func (a *Assets) delete(op, id string, err error) error {
	log := a.log.With(slog.String("op", op), slog.String("uuid", id))

	if err != nil {
		if isNotFound(err) {
			log.Warn("not found")
		} else {
			log.Error("failed to delete", sl.Err(err))
		}
		return fmt.Errorf("%s: %w", op, mapErr(err))
	}

	log.Info("deleted")

	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, storage.ErrSequenceNotFound) ||
		errors.Is(err, storage.ErrVideoNotFound) ||
		errors.Is(err, storage.ErrReferenceNotFound)
}

// mapErr translates storage errors to service ones.
func mapErr(err error) error {
	switch {
	case errors.Is(err, storage.ErrSequenceExists):
		return service.ErrSequenceExists
	case errors.Is(err, storage.ErrSequenceNotFound):
		return service.ErrSequenceNotFound
	case errors.Is(err, storage.ErrVideoNotFound):
		return service.ErrVideoNotFound
	case errors.Is(err, storage.ErrReferenceNotFound):
		return service.ErrReferenceNotFound
	}
	return err
}
