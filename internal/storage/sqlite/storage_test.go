package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ptr "github.com/GintGld/vam-seed/internal/lib/utils/pointers"
	"github.com/GintGld/vam-seed/internal/models"
	"github.com/GintGld/vam-seed/internal/storage"
	"github.com/GintGld/vam-seed/internal/storage/sqlite"
)

func newStorage(t *testing.T) *sqlite.Storage {
	t.Helper()

	s, err := sqlite.New(filepath.Join(t.TempDir(), "vam.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Stop() })

	require.NoError(t, s.Migrate())
	// second run must be a no-op
	require.NoError(t, s.Migrate())

	return s
}

func randomSequence() models.VideoSequence {
	return models.VideoSequence{
		Name:     gofakeit.Regex("[A-Z][0-9]{6}"),
		CameraID: gofakeit.FirstName(),
	}
}

func TestSequenceLifecycle(t *testing.T) {
	s := newStorage(t)
	ctx := context.Background()

	vs := randomSequence()
	vs.Description = ptr.Pointer("Some optional text")

	saved, err := s.SaveSequence(ctx, vs)
	require.NoError(t, err)
	require.NotEmpty(t, saved.UUID)

	got, err := s.Sequence(ctx, saved.UUID)
	require.NoError(t, err)
	assert.Equal(t, vs.Name, got.Name)
	assert.Equal(t, vs.CameraID, got.CameraID)
	assert.Equal(t, "Some optional text", *got.Description)

	byName, err := s.SequenceByName(ctx, vs.Name)
	require.NoError(t, err)
	assert.Equal(t, saved.UUID, byName.UUID)

	_, err = s.SaveSequence(ctx, vs)
	assert.ErrorIs(t, err, storage.ErrSequenceExists)

	got.CameraID = "Ventana"
	got.Description = nil
	_, err = s.UpdateSequence(ctx, got)
	require.NoError(t, err)

	got, err = s.Sequence(ctx, saved.UUID)
	require.NoError(t, err)
	assert.Equal(t, "Ventana", got.CameraID)
	assert.Nil(t, got.Description)

	require.NoError(t, s.DeleteSequence(ctx, saved.UUID))
	_, err = s.Sequence(ctx, saved.UUID)
	assert.ErrorIs(t, err, storage.ErrSequenceNotFound)
	assert.ErrorIs(t, s.DeleteSequence(ctx, saved.UUID), storage.ErrSequenceNotFound)
}

func TestUpdateSequenceNameConflict(t *testing.T) {
	s := newStorage(t)
	ctx := context.Background()

	first, err := s.SaveSequence(ctx, randomSequence())
	require.NoError(t, err)
	second, err := s.SaveSequence(ctx, randomSequence())
	require.NoError(t, err)

	second.Name = first.Name
	_, err = s.UpdateSequence(ctx, second)
	assert.ErrorIs(t, err, storage.ErrSequenceExists)

	_, err = s.UpdateSequence(ctx, models.VideoSequence{UUID: "missing", Name: "x", CameraID: "y"})
	assert.ErrorIs(t, err, storage.ErrSequenceNotFound)
}

func TestNamesAndCameras(t *testing.T) {
	s := newStorage(t)
	ctx := context.Background()

	for _, vs := range []models.VideoSequence{
		{Name: "V9931", CameraID: "Ventana"},
		{Name: "T0097", CameraID: "Tiburon"},
		{Name: "V1234", CameraID: "Ventana"},
	} {
		_, err := s.SaveSequence(ctx, vs)
		require.NoError(t, err)
	}

	names, err := s.SequenceNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"T0097", "V1234", "V9931"}, names)

	cameras, err := s.Cameras(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Tiburon", "Ventana"}, cameras)
}

func TestVideoRequiresSequence(t *testing.T) {
	s := newStorage(t)
	ctx := context.Background()

	_, err := s.SaveVideo(ctx, models.Video{
		Name:              "T0097-01",
		VideoSequenceUUID: "dangling",
		Start:             time.Now(),
	})
	assert.ErrorIs(t, err, storage.ErrSequenceNotFound)

	_, err = s.SaveReference(ctx, models.VideoReference{
		VideoUUID: "dangling",
		URI:       "urn:T0097-01HD",
	})
	assert.ErrorIs(t, err, storage.ErrVideoNotFound)
}

func TestTreeAndCascade(t *testing.T) {
	s := newStorage(t)
	ctx := context.Background()

	vs, err := s.SaveSequence(ctx, randomSequence())
	require.NoError(t, err)

	start := time.Date(2016, 4, 5, 0, 1, 0, 0, time.UTC)
	v, err := s.SaveVideo(ctx, models.Video{
		Name:              "T0097-01",
		VideoSequenceUUID: vs.UUID,
		Start:             start,
		DurationMillis:    ptr.Pointer[int64](900000),
	})
	require.NoError(t, err)

	gotVideo, err := s.Video(ctx, v.UUID)
	require.NoError(t, err)
	assert.True(t, start.Equal(gotVideo.Start))
	assert.Equal(t, int64(900000), *gotVideo.DurationMillis)
	assert.Equal(t, vs.UUID, gotVideo.VideoSequenceUUID)

	vr, err := s.SaveReference(ctx, models.VideoReference{
		VideoUUID: v.UUID,
		URI:       "http://www.mbari.org/foo/bar/T0097_20160405T000100Z.mov",
		Container: ptr.Pointer("video/quicktime"),
		Width:     ptr.Pointer(1920),
		Height:    ptr.Pointer(1080),
		FrameRate: ptr.Pointer(59.97),
		SizeBytes: ptr.Pointer[int64](50 * 1024 * 1024 * 1024),
	})
	require.NoError(t, err)

	gotRef, err := s.Reference(ctx, vr.UUID)
	require.NoError(t, err)
	assert.Equal(t, 59.97, *gotRef.FrameRate)
	assert.Equal(t, int64(50*1024*1024*1024), *gotRef.SizeBytes)
	assert.Nil(t, gotRef.VideoCodec)

	gotRef.Description = ptr.Pointer("D5 Tape")
	_, err = s.UpdateReference(ctx, gotRef)
	require.NoError(t, err)

	require.NoError(t, s.DeleteSequence(ctx, vs.UUID))

	_, err = s.Video(ctx, v.UUID)
	assert.ErrorIs(t, err, storage.ErrVideoNotFound)
	_, err = s.Reference(ctx, vr.UUID)
	assert.ErrorIs(t, err, storage.ErrReferenceNotFound)
}
