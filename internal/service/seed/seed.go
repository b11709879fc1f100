// Package seed creates sequence, video and reference trees in a VAM.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/GintGld/vam-seed/internal/lib/logger/sl"
	chans "github.com/GintGld/vam-seed/internal/lib/utils/channels"
	"github.com/GintGld/vam-seed/internal/models"
)

type Seeder struct {
	log     *slog.Logger
	creator Creator
	workers int
}

type Creator interface {
	CreateSequence(ctx context.Context, vs models.VideoSequence) (models.VideoSequence, error)
	CreateVideo(ctx context.Context, sequenceUUID string, v models.Video) (models.Video, error)
	CreateReference(ctx context.Context, videoUUID string, vr models.VideoReference) (models.VideoReference, error)
}

// Report holds created objects in plan order.
type Report struct {
	Sequences []SequenceReport `json:"sequences"`
}

type SequenceReport struct {
	Sequence models.VideoSequence `json:"sequence"`
	Videos   []VideoReport        `json:"videos,omitempty"`
	// Err is the failure that stopped this tree.
	Err error `json:"-"`
}

type VideoReport struct {
	Video      models.Video            `json:"video"`
	References []models.VideoReference `json:"references,omitempty"`
}

// Size returns number of created objects.
func (r Report) Size() (sequences, videos, references int) {
	for _, sr := range r.Sequences {
		if sr.Sequence.UUID != "" {
			sequences++
		}
		for _, vr := range sr.Videos {
			videos++
			references += len(vr.References)
		}
	}
	return
}

// New returns seeder creating up to
// workers sequence trees at once.
func New(
	log *slog.Logger,
	creator Creator,
	workers int,
) *Seeder {
	if workers < 1 {
		workers = 1
	}

	return &Seeder{
		log:     log,
		creator: creator,
		workers: workers,
	}
}

// Run creates all trees of the plan.
//
// Inside a tree objects are created one by one, since
// children need uuids of their parents. A failure stops
// only its own tree. Errors of all trees are joined.
func (s *Seeder) Run(ctx context.Context, plan Plan) (Report, error) {
	const op = "Seeder.Run"

	log := s.log.With(slog.String("op", op))

	seqs, videos, refs := plan.Size()
	log.Info(
		"seeding",
		slog.Int("sequences", seqs),
		slog.Int("videos", videos),
		slog.Int("references", refs),
		slog.Int("workers", s.workers),
	)

	type job struct {
		idx  int
		tree SequencePlan
	}

	jobs := make([]job, len(plan.Sequences))
	for i, sp := range plan.Sequences {
		jobs[i] = job{idx: i, tree: sp}
	}

	report := Report{
		Sequences: make([]SequenceReport, len(plan.Sequences)),
	}

	ch := chans.Feed(ctx, jobs)

	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range ch {
				// each worker writes only its own index
				report.Sequences[j.idx] = s.tree(ctx, j.tree)
			}
		}()
	}
	wg.Wait()

	var errs []error
	for i, sr := range report.Sequences {
		if sr.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", plan.Sequences[i].Name, sr.Err))
		}
	}
	if err := ctx.Err(); err != nil {
		errs = append(errs, err)
	}

	seqs, videos, refs = report.Size()
	log.Info(
		"seeding finished",
		slog.Int("sequences", seqs),
		slog.Int("videos", videos),
		slog.Int("references", refs),
		slog.Int("failed", len(errs)),
	)

	if err := errors.Join(errs...); err != nil {
		return report, fmt.Errorf("%s: %w", op, err)
	}

	return report, nil
}

// tree creates sequence, then each video
// followed by its references.
func (s *Seeder) tree(ctx context.Context, sp SequencePlan) SequenceReport {
	log := s.log.With(slog.String("sequence", sp.Name))

	var sr SequenceReport

	vs, err := s.creator.CreateSequence(ctx, sp.VideoSequence)
	if err != nil {
		log.Error("failed to create video sequence", sl.Err(err))
		sr.Sequence = sp.VideoSequence
		sr.Err = err
		return sr
	}
	sr.Sequence = vs

	for _, vp := range sp.Videos {
		v, err := s.creator.CreateVideo(ctx, vs.UUID, vp.Video)
		if err != nil {
			log.Error("failed to create video", slog.String("video", vp.Name), sl.Err(err))
			sr.Err = err
			return sr
		}

		vRep := VideoReport{Video: v}
		for _, ref := range vp.References {
			vr, err := s.creator.CreateReference(ctx, v.UUID, ref)
			if err != nil {
				log.Error("failed to create video reference", slog.String("uri", ref.URI), sl.Err(err))
				sr.Videos = append(sr.Videos, vRep)
				sr.Err = err
				return sr
			}
			vRep.References = append(vRep.References, vr)
		}
		sr.Videos = append(sr.Videos, vRep)
	}

	log.Debug("tree created", slog.String("uuid", vs.UUID), slog.Int("videos", len(sr.Videos)))

	return sr
}
