// Package catalog implements name based lookups
// of video sequences on top of the VAM client.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/GintGld/vam-seed/internal/client/vam"
	"github.com/GintGld/vam-seed/internal/lib/logger/sl"
	"github.com/GintGld/vam-seed/internal/models"
)

const maxSuggestions = 3

type Catalog struct {
	log    *slog.Logger
	client Client
}

type Client interface {
	SequenceByName(ctx context.Context, name string) (models.VideoSequence, error)
	UpdateSequence(ctx context.Context, id string, vs models.VideoSequence) (models.VideoSequence, error)
	Names(ctx context.Context, rt models.ResourceType) ([]string, error)
	Cameras(ctx context.Context) ([]string, error)
}

// NotFoundError is returned when no sequence has the name.
type NotFoundError struct {
	Name string
	// Suggestions are existing names close to Name.
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("video sequence %q not found", e.Name)
	}
	return fmt.Sprintf("video sequence %q not found, did you mean %s?", e.Name, strings.Join(e.Suggestions, ", "))
}

func (e *NotFoundError) Unwrap() error {
	return vam.ErrNotFound
}

func New(
	log *slog.Logger,
	client Client,
) *Catalog {
	return &Catalog{
		log:    log,
		client: client,
	}
}

// Sequence returns video sequence by name.
// Unknown name gives *NotFoundError with close names.
func (c *Catalog) Sequence(ctx context.Context, name string) (models.VideoSequence, error) {
	const op = "Catalog.Sequence"

	log := c.log.With(slog.String("op", op), slog.String("name", name))

	vs, err := c.client.SequenceByName(ctx, name)
	if err == nil {
		return vs, nil
	}
	if !errors.Is(err, vam.ErrNotFound) {
		log.Error("failed to get video sequence", sl.Err(err))
		return models.VideoSequence{}, fmt.Errorf("%s: %w", op, err)
	}

	nfErr := &NotFoundError{Name: name}

	names, err := c.Names(ctx)
	if err != nil {
		// suggestions are optional
		log.Warn("failed to get names for suggestions", sl.Err(err))
	} else {
		nfErr.Suggestions = closest(names, name, maxSuggestions)
	}

	log.Debug("video sequence not found", slog.Any("suggestions", nfErr.Suggestions))

	return models.VideoSequence{}, fmt.Errorf("%s: %w", op, nfErr)
}

// Names returns sorted unique video sequence names.
func (c *Catalog) Names(ctx context.Context) ([]string, error) {
	const op = "Catalog.Names"

	names, err := c.client.Names(ctx, models.ResourceSequence)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return sortUnique(names), nil
}

// Cameras returns sorted unique camera ids.
func (c *Catalog) Cameras(ctx context.Context) ([]string, error) {
	const op = "Catalog.Cameras"

	cameras, err := c.client.Cameras(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return sortUnique(cameras), nil
}

// Rename finds sequence by name and applies non-empty
// fields of changes to it.
func (c *Catalog) Rename(ctx context.Context, name string, changes models.VideoSequence) (models.VideoSequence, error) {
	const op = "Catalog.Rename"

	log := c.log.With(slog.String("op", op), slog.String("name", name))

	vs, err := c.Sequence(ctx, name)
	if err != nil {
		return models.VideoSequence{}, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := c.client.UpdateSequence(ctx, vs.UUID, changes)
	if err != nil {
		log.Error("failed to update video sequence", sl.Err(err))
		return models.VideoSequence{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("video sequence updated", slog.String("uuid", updated.UUID), slog.String("new_name", updated.Name))

	return updated, nil
}

func sortUnique(s []string) []string {
	out := slices.Clone(s)
	slices.Sort(out)
	return slices.Compact(out)
}
