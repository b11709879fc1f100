package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/GintGld/vam-seed/internal/client/vam"
	"github.com/GintGld/vam-seed/internal/config"
	"github.com/GintGld/vam-seed/internal/lib/show"
	ptr "github.com/GintGld/vam-seed/internal/lib/utils/pointers"
	"github.com/GintGld/vam-seed/internal/models"
	"github.com/GintGld/vam-seed/internal/service/catalog"
	"github.com/GintGld/vam-seed/internal/service/seed"
)

var ErrUsage = errors.New("invalid usage")

type cli struct {
	cfg     *config.Config
	log     *slog.Logger
	out     io.Writer
	client  *vam.Client
	catalog *catalog.Catalog
}

// run executes command from args.
func run(ctx context.Context, cfg *config.Config, log *slog.Logger, out io.Writer, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: command is required", ErrUsage)
	}

	client, err := vam.New(log, cfg.BaseURL, cfg.Timeout, vam.WithPluralPaths(cfg.Plural()))
	if err != nil {
		return err
	}

	c := &cli{
		cfg:     cfg,
		log:     log,
		out:     out,
		client:  client,
		catalog: catalog.New(log, client),
	}

	cmd, args := args[0], args[1:]

	switch cmd {
	case "seed":
		return c.seed(ctx)
	case "tutorial":
		return c.tutorial(ctx)
	case "names":
		return c.names(ctx)
	case "cameras":
		return c.cameras(ctx)
	case "get":
		if len(args) != 1 {
			return fmt.Errorf("%w: get <name>", ErrUsage)
		}
		return c.get(ctx, args[0])
	case "delete":
		if len(args) != 2 {
			return fmt.Errorf("%w: delete <type> <uuid>", ErrUsage)
		}
		return c.delete(ctx, args[0], args[1])
	}

	return fmt.Errorf("%w: unknown command %q", ErrUsage, cmd)
}

func (c *cli) seed(ctx context.Context) error {
	plan := seed.DemoPlan()
	if c.cfg.PlanPath != "" {
		var err error
		if plan, err = seed.LoadPlan(c.cfg.PlanPath); err != nil {
			return err
		}
	}

	report, err := seed.New(c.log, c.client, c.cfg.Workers).Run(ctx, plan)

	for _, sr := range report.Sequences {
		if sr.Sequence.UUID == "" {
			continue
		}
		if showErr := show.JSON(c.out, "Created "+sr.Sequence.Name, sr); showErr != nil {
			return showErr
		}
	}

	return err
}

// tutorial creates a small tree, renames its sequence
// and shows every lookup on it.
func (c *cli) tutorial(ctx context.Context) error {
	vs, err := c.client.CreateSequence(ctx, models.VideoSequence{
		Name:        "A Unique name",
		CameraID:    "Doc Ricketts",
		Description: ptr.Pointer("Some optional text"),
	})
	if err != nil {
		return err
	}
	if err := c.show("POST", c.client.Endpoint(models.ResourceSequence), vs); err != nil {
		return err
	}

	v, err := c.client.CreateVideo(ctx, vs.UUID, models.Video{
		Name:           "A unique video name",
		Start:          time.Now().UTC(),
		DurationMillis: ptr.Pointer((15 * time.Minute).Milliseconds()),
		Description:    ptr.Pointer("some description"),
	})
	if err != nil {
		return err
	}
	if err := c.show("POST", c.client.Endpoint(models.ResourceVideo), v); err != nil {
		return err
	}

	vr, err := c.client.CreateReference(ctx, v.UUID, models.VideoReference{
		URI:         "http://url.or.uri/to/video.mp4",
		Description: ptr.Pointer("foo"),
		Container:   ptr.Pointer("quicktime mov"),
		VideoCodec:  ptr.Pointer("h.264"),
		AudioCodec:  ptr.Pointer("aac"),
		Width:       ptr.Pointer(1920),
		Height:      ptr.Pointer(1080),
		FrameRate:   ptr.Pointer[float64](17),
		SizeBytes:   ptr.Pointer[int64](50 * 1024 * 1024 * 1024),
	})
	if err != nil {
		return err
	}
	if err := c.show("POST", c.client.Endpoint(models.ResourceReference), vr); err != nil {
		return err
	}

	vs, err = c.client.UpdateSequence(ctx, vs.UUID, models.VideoSequence{
		Name:        "Changed name",
		CameraID:    "Ventana",
		Description: ptr.Pointer("modified description"),
	})
	if err != nil {
		return err
	}
	if err := c.show("PUT", c.client.Endpoint(models.ResourceSequence, vs.UUID), vs); err != nil {
		return err
	}

	byID, err := c.client.Sequence(ctx, vs.UUID)
	if err != nil {
		return err
	}
	if err := c.show("GET", c.client.Endpoint(models.ResourceSequence, vs.UUID), byID); err != nil {
		return err
	}

	byName, err := c.catalog.Sequence(ctx, vs.Name)
	if err != nil {
		return err
	}
	if err := c.show("GET", c.client.Endpoint(models.ResourceSequence, "name", vs.Name), byName); err != nil {
		return err
	}

	if err := c.names(ctx); err != nil {
		return err
	}

	return c.cameras(ctx)
}

func (c *cli) names(ctx context.Context) error {
	names, err := c.catalog.Names(ctx)
	if err != nil {
		return err
	}

	return c.show("GET", c.client.Endpoint(models.ResourceSequence, "names"), names)
}

func (c *cli) cameras(ctx context.Context) error {
	cameras, err := c.catalog.Cameras(ctx)
	if err != nil {
		return err
	}

	return c.show("GET", c.client.Endpoint(models.ResourceSequence, "cameras"), cameras)
}

func (c *cli) get(ctx context.Context, name string) error {
	vs, err := c.catalog.Sequence(ctx, name)
	if err != nil {
		return err
	}

	return c.show("GET", c.client.Endpoint(models.ResourceSequence, "name", name), vs)
}

func (c *cli) delete(ctx context.Context, resource, id string) error {
	rt, err := models.ParseResourceType(resource)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	if err := c.client.Delete(ctx, rt, id); err != nil {
		return err
	}

	_, err = fmt.Fprintf(c.out, "--- DELETE: %s\n", c.client.Endpoint(rt, id))
	return err
}

func (c *cli) show(method, url string, v any) error {
	return show.JSON(c.out, method+": "+url, v)
}
