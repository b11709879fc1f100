package seed_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GintGld/vam-seed/internal/app/apptest"
	"github.com/GintGld/vam-seed/internal/client/vam"
	"github.com/GintGld/vam-seed/internal/lib/logger/sl"
	"github.com/GintGld/vam-seed/internal/models"
	"github.com/GintGld/vam-seed/internal/service/seed"
)

func TestDemoPlanAgainstStub(t *testing.T) {
	srv := apptest.Start(t)

	client, err := vam.New(sl.Discard(), srv.URL, 5*time.Second)
	require.NoError(t, err)

	plan := seed.DemoPlan()
	require.NoError(t, plan.Validate())

	report, err := seed.New(sl.Discard(), client, 3).Run(context.Background(), plan)
	require.NoError(t, err)

	seqs, videos, refs := report.Size()
	assert.Equal(t, 3, seqs)
	assert.Equal(t, 5, videos)
	assert.Equal(t, 10, refs)

	// report keeps plan order
	require.Len(t, report.Sequences, 3)
	assert.Equal(t, "T0097", report.Sequences[0].Sequence.Name)
	assert.Equal(t, "V1234", report.Sequences[1].Sequence.Name)
	assert.Equal(t, "V9931", report.Sequences[2].Sequence.Name)

	first := report.Sequences[0].Videos[0]
	assert.Equal(t, "T0097-01", first.Video.Name)
	assert.Equal(t, report.Sequences[0].Sequence.UUID, first.Video.VideoSequenceUUID)
	assert.Equal(t, 59.97, *first.References[0].FrameRate)

	names, err := client.Names(context.Background(), models.ResourceSequence)
	require.NoError(t, err)
	assert.Equal(t, []string{"T0097", "V1234", "V9931"}, names)

	cameras, err := client.Cameras(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Tiburon", "Ventana"}, cameras)

	// seeding again fails on unique names, nothing else is created
	_, err = seed.New(sl.Discard(), client, 1).Run(context.Background(), plan)
	var statusErr *vam.StatusError
	assert.True(t, errors.As(err, &statusErr))
}

// fakeCreator fails videos with given name.
type fakeCreator struct {
	mu        sync.Mutex
	failVideo string
	created   []string
}

func (f *fakeCreator) add(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, name)
}

func (f *fakeCreator) CreateSequence(_ context.Context, vs models.VideoSequence) (models.VideoSequence, error) {
	f.add(vs.Name)
	vs.UUID = gofakeit.UUID()
	return vs, nil
}

func (f *fakeCreator) CreateVideo(_ context.Context, sequenceUUID string, v models.Video) (models.Video, error) {
	if v.Name == f.failVideo {
		return models.Video{}, errors.New("boom")
	}
	f.add(v.Name)
	v.UUID = gofakeit.UUID()
	v.VideoSequenceUUID = sequenceUUID
	return v, nil
}

func (f *fakeCreator) CreateReference(_ context.Context, videoUUID string, vr models.VideoReference) (models.VideoReference, error) {
	f.add(vr.URI)
	vr.UUID = gofakeit.UUID()
	vr.VideoUUID = videoUUID
	return vr, nil
}

func TestFailureStopsOnlyItsTree(t *testing.T) {
	creator := &fakeCreator{failVideo: "T0097-02"}

	report, err := seed.New(sl.Discard(), creator, 2).Run(context.Background(), seed.DemoPlan())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "T0097")
	assert.Contains(t, err.Error(), "boom")

	t0097 := report.Sequences[0]
	require.Error(t, t0097.Err)
	require.Len(t, t0097.Videos, 1)
	assert.Equal(t, "T0097-01", t0097.Videos[0].Video.Name)
	assert.Len(t, t0097.Videos[0].References, 2)

	assert.NotContains(t, creator.created, "T0097-01HD")
	assert.NoError(t, report.Sequences[1].Err)
	assert.NoError(t, report.Sequences[2].Err)
	assert.Contains(t, creator.created, "V9931-01")
}

func TestCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := seed.New(sl.Discard(), &fakeCreator{}, 1).Run(ctx, seed.DemoPlan())
	assert.ErrorIs(t, err, context.Canceled)
}
