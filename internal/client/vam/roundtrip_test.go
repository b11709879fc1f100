package vam_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GintGld/vam-seed/internal/app/apptest"
	"github.com/GintGld/vam-seed/internal/client/vam"
	ptr "github.com/GintGld/vam-seed/internal/lib/utils/pointers"
	"github.com/GintGld/vam-seed/internal/models"
)

func randomSequence() models.VideoSequence {
	return models.VideoSequence{
		Name:        gofakeit.Regex("[A-Z][0-9]{6}"),
		CameraID:    gofakeit.FirstName(),
		Description: ptr.Pointer(gofakeit.Sentence(5)),
	}
}

func TestExampleScenario(t *testing.T) {
	srv := apptest.Start(t)
	c := newClient(t, srv.URL)
	ctx := context.Background()

	vs, err := c.CreateSequence(ctx, models.VideoSequence{Name: "T0097", CameraID: "Tiburon"})
	require.NoError(t, err)
	assert.NotEmpty(t, vs.UUID)
	assert.Equal(t, "T0097", vs.Name)
	assert.Equal(t, "Tiburon", vs.CameraID)

	v, err := c.CreateVideo(ctx, vs.UUID, models.Video{
		Name:           "T0097-01",
		Start:          time.Date(2016, 4, 5, 0, 1, 0, 0, time.UTC),
		DurationMillis: ptr.Pointer[int64](900000),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, v.UUID)
	assert.Equal(t, vs.UUID, v.VideoSequenceUUID)

	vr, err := c.CreateReference(ctx, v.UUID, models.VideoReference{
		URI:       "http://example/T0097.mov",
		Width:     ptr.Pointer(1920),
		Height:    ptr.Pointer(1080),
		FrameRate: ptr.Pointer(59.97),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, vr.UUID)
	assert.Equal(t, v.UUID, vr.VideoUUID)
	assert.Equal(t, 1920, *vr.Width)
	assert.Equal(t, 1080, *vr.Height)
	assert.Equal(t, 59.97, *vr.FrameRate)

	// generic API keeps frame rate as float too
	obj, err := c.ByID(ctx, models.ResourceReference, vr.UUID)
	require.NoError(t, err)
	assert.Equal(t, json.Number("59.97"), obj["frame_rate"])
}

func TestCreateThenFetch(t *testing.T) {
	srv := apptest.Start(t)
	c := newClient(t, srv.URL)
	ctx := context.Background()

	vs, err := c.CreateSequence(ctx, randomSequence())
	require.NoError(t, err)

	gotVS, err := c.Sequence(ctx, vs.UUID)
	require.NoError(t, err)
	assert.Equal(t, withoutMeta(vs), withoutMeta(gotVS))

	v, err := c.CreateVideo(ctx, vs.UUID, models.Video{
		Name:           "T0097-02",
		Start:          time.Date(2016, 4, 5, 0, 1, 15, 0, time.UTC),
		DurationMillis: ptr.Pointer[int64](15 * 60 * 1000),
		Description:    ptr.Pointer("This video is cool"),
	})
	require.NoError(t, err)

	gotV, err := c.Video(ctx, v.UUID)
	require.NoError(t, err)
	v.LastUpdated, gotV.LastUpdated = nil, nil
	assert.Equal(t, v, gotV)

	vr, err := c.CreateReference(ctx, v.UUID, models.VideoReference{
		URI:         "urn:T0097-01HD",
		Width:       ptr.Pointer(1920),
		Height:      ptr.Pointer(1080),
		FrameRate:   ptr.Pointer(29.97),
		SizeBytes:   ptr.Pointer[int64](50 * 1024 * 1024 * 1024),
		Description: ptr.Pointer("D5 Tape"),
	})
	require.NoError(t, err)

	gotVR, err := c.Reference(ctx, vr.UUID)
	require.NoError(t, err)
	vr.LastUpdated, gotVR.LastUpdated = nil, nil
	assert.Equal(t, vr, gotVR)

	byName, err := c.SequenceByName(ctx, vs.Name)
	require.NoError(t, err)
	assert.Equal(t, vs.UUID, byName.UUID)
}

func TestFractionalStartRoundTrip(t *testing.T) {
	srv := apptest.Start(t)
	c := newClient(t, srv.URL)
	ctx := context.Background()

	vs, err := c.CreateSequence(ctx, randomSequence())
	require.NoError(t, err)

	start := time.Date(2024, 5, 1, 12, 34, 56, 123456000, time.UTC)

	v, err := c.CreateVideo(ctx, vs.UUID, models.Video{
		Name:  "T0097-03",
		Start: start,
	})
	require.NoError(t, err)
	assert.True(t, start.Equal(v.Start), v.Start)

	got, err := c.Video(ctx, v.UUID)
	require.NoError(t, err)
	assert.True(t, start.Equal(got.Start), got.Start)

	obj, err := c.ByID(ctx, models.ResourceVideo, v.UUID)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01T12:34:56.123456Z", obj["start_timestamp"])
}

func TestDanglingParent(t *testing.T) {
	srv := apptest.Start(t)
	c := newClient(t, srv.URL)
	ctx := context.Background()

	v, err := c.CreateVideo(ctx, gofakeit.UUID(), models.Video{
		Name:  "orphan",
		Start: time.Now(),
	})
	require.Error(t, err)
	assert.Empty(t, v.UUID)

	var statusErr *vam.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadRequest, statusErr.StatusCode)
	assert.Equal(t, "video sequence not found", statusErr.Message)

	_, err = c.CreateReference(ctx, gofakeit.UUID(), models.VideoReference{URI: "urn:orphan"})
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, "video not found", statusErr.Message)
}

func TestCreateIsNotIdempotent(t *testing.T) {
	srv := apptest.Start(t)
	c := newClient(t, srv.URL)
	ctx := context.Background()

	vs, err := c.CreateSequence(ctx, randomSequence())
	require.NoError(t, err)

	video := models.Video{
		Name:  "T0097-01",
		Start: time.Date(2016, 4, 5, 0, 1, 0, 0, time.UTC),
	}

	first, err := c.CreateVideo(ctx, vs.UUID, video)
	require.NoError(t, err)
	second, err := c.CreateVideo(ctx, vs.UUID, video)
	require.NoError(t, err)

	assert.NotEqual(t, first.UUID, second.UUID)

	// sequence names are unique, so repeating is an error, not an upsert
	_, err = c.CreateSequence(ctx, vs)
	var statusErr *vam.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusConflict, statusErr.StatusCode)
}

func TestUpdateNamesCamerasDelete(t *testing.T) {
	srv := apptest.Start(t)
	c := newClient(t, srv.URL, vam.WithPluralPaths(true))
	ctx := context.Background()

	vs, err := c.CreateSequence(ctx, models.VideoSequence{
		Name:        "A Unique name",
		CameraID:    "Doc Ricketts",
		Description: ptr.Pointer("Some optional text"),
	})
	require.NoError(t, err)

	updated, err := c.UpdateSequence(ctx, vs.UUID, models.VideoSequence{
		Name:        "Changed name",
		CameraID:    "Ventana",
		Description: ptr.Pointer("modified description"),
	})
	require.NoError(t, err)
	assert.Equal(t, vs.UUID, updated.UUID)
	assert.Equal(t, "Changed name", updated.Name)

	obj, err := c.ByName(ctx, models.ResourceSequence, "Changed name")
	require.NoError(t, err)
	assert.Equal(t, "modified description", obj["description"])

	_, err = c.Create(ctx, models.ResourceSequence, url.Values{
		"name":      {"T0097"},
		"camera_id": {"Tiburon"},
	})
	require.NoError(t, err)

	names, err := c.Names(ctx, models.ResourceSequence)
	require.NoError(t, err)
	assert.Equal(t, []string{"Changed name", "T0097"}, names)

	cameras, err := c.Cameras(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Tiburon", "Ventana"}, cameras)

	require.NoError(t, c.Delete(ctx, models.ResourceSequence, vs.UUID))

	_, err = c.Sequence(ctx, vs.UUID)
	assert.ErrorIs(t, err, vam.ErrNotFound)
}

func TestUpdateVideoAndReference(t *testing.T) {
	srv := apptest.Start(t)
	c := newClient(t, srv.URL)
	ctx := context.Background()

	vs, err := c.CreateSequence(ctx, randomSequence())
	require.NoError(t, err)
	v, err := c.CreateVideo(ctx, vs.UUID, models.Video{Name: "V1234-01", Start: time.Now()})
	require.NoError(t, err)
	vr, err := c.CreateReference(ctx, v.UUID, models.VideoReference{URI: "urn:V1234-01"})
	require.NoError(t, err)

	gotV, err := c.UpdateVideo(ctx, v.UUID, models.Video{DurationMillis: ptr.Pointer[int64](45 * 60 * 1000)})
	require.NoError(t, err)
	assert.Equal(t, "V1234-01", gotV.Name)
	assert.Equal(t, 45*time.Minute, gotV.Duration())

	gotVR, err := c.UpdateReference(ctx, vr.UUID, models.VideoReference{Container: ptr.Pointer("video/mp4")})
	require.NoError(t, err)
	assert.Equal(t, "urn:V1234-01", gotVR.URI)
	assert.Equal(t, "video/mp4", *gotVR.Container)

	_, err = c.UpdateVideo(ctx, gofakeit.UUID(), models.Video{Name: "x"})
	assert.ErrorIs(t, err, vam.ErrNotFound)
}

func withoutMeta(vs models.VideoSequence) models.VideoSequence {
	vs.LastUpdated = nil
	return vs
}
