package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GintGld/vam-seed/internal/app/apptest"
	"github.com/GintGld/vam-seed/internal/client/vam"
	"github.com/GintGld/vam-seed/internal/config"
	"github.com/GintGld/vam-seed/internal/lib/logger/sl"
	"github.com/GintGld/vam-seed/internal/lib/show"
	"github.com/GintGld/vam-seed/internal/lib/utils/writer"
	"github.com/GintGld/vam-seed/internal/models"
	"github.com/GintGld/vam-seed/internal/service/catalog"
)

func testConfig(baseURL string, paths string) *config.Config {
	return &config.Config{
		Env: "local",
		Endpoint: config.Endpoint{
			BaseURL: baseURL,
			Timeout: 5 * time.Second,
			Paths:   paths,
		},
		Seed: config.Seed{Workers: 2},
	}
}

func runCmd(t *testing.T, cfg *config.Config, args ...string) (string, error) {
	t.Helper()

	show.NoColor = true
	w := writer.New()
	err := run(context.Background(), cfg, sl.Discard(), w, args)

	return w.String(), err
}

func TestUsage(t *testing.T) {
	cfg := testConfig("http://localhost:1/v1/", config.PathsSingular)

	for _, args := range [][]string{
		{},
		{"unknown"},
		{"get"},
		{"delete", "video"},
		{"delete", "dive", "abc"},
	} {
		_, err := runCmd(t, cfg, args...)
		assert.ErrorIs(t, err, ErrUsage, args)
	}
}

func TestSeedAndLookups(t *testing.T) {
	srv := apptest.Start(t)
	cfg := testConfig(srv.URL, config.PathsSingular)

	out, err := runCmd(t, cfg, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "--- Created T0097")
	assert.Contains(t, out, "--- Created V9931")

	out, err = runCmd(t, cfg, "names")
	require.NoError(t, err)
	assert.Contains(t, out, "--- GET: "+srv.URL+"videosequence/names")
	assert.Contains(t, out, "V1234")

	out, err = runCmd(t, cfg, "cameras")
	require.NoError(t, err)
	assert.Contains(t, out, "Tiburon")

	out, err = runCmd(t, cfg, "get", "V1234")
	require.NoError(t, err)
	assert.Contains(t, out, "Ventana")

	_, err = runCmd(t, cfg, "get", "v1235")
	var nfErr *catalog.NotFoundError
	require.True(t, errors.As(err, &nfErr))
	assert.Equal(t, []string{"V1234"}, nfErr.Suggestions)
}

func TestSeedPlanFile(t *testing.T) {
	srv := apptest.Start(t)
	cfg := testConfig(srv.URL, config.PathsPlural)

	cfg.PlanPath = filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(cfg.PlanPath, []byte(`
sequences:
  - name: D1001
    camera_id: Doc Ricketts
`), 0644))

	out, err := runCmd(t, cfg, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "--- Created D1001")
	assert.NotContains(t, out, "T0097")
}

func TestTutorialAndDelete(t *testing.T) {
	srv := apptest.Start(t)
	cfg := testConfig(srv.URL, config.PathsPlural)

	out, err := runCmd(t, cfg, "tutorial")
	require.NoError(t, err)
	assert.Contains(t, out, "--- POST: "+srv.URL+"videosequences\n")
	assert.Contains(t, out, "--- GET: "+srv.URL+"videosequences/name/Changed%20name")
	assert.Contains(t, out, "modified description")

	client, err := vam.New(sl.Discard(), srv.URL, time.Second)
	require.NoError(t, err)

	vs, err := client.SequenceByName(context.Background(), "Changed name")
	require.NoError(t, err)

	out, err = runCmd(t, cfg, "delete", "videosequences", vs.UUID)
	require.NoError(t, err)
	assert.Contains(t, out, "--- DELETE: ")

	_, err = client.Sequence(context.Background(), vs.UUID)
	assert.ErrorIs(t, err, vam.ErrNotFound)

	names, err := client.Names(context.Background(), models.ResourceSequence)
	require.NoError(t, err)
	assert.Empty(t, names)

	// rename collides with the sequence left by the previous run
	_, err = runCmd(t, cfg, "tutorial")
	assert.NoError(t, err)
	_, err = runCmd(t, cfg, "tutorial")
	assert.Error(t, err)
}
