// Package apptest runs the local VAM double for tests.
package apptest

import (
	"net"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/GintGld/vam-seed/internal/app"
	"github.com/GintGld/vam-seed/internal/lib/logger/sl"
)

type Server struct {
	// URL is API base, e.g. http://127.0.0.1:PORT/v1/
	URL string

	app *app.App
}

// Start serves fresh storage on a random local port.
// Server is stopped on test cleanup.
func Start(t testing.TB) *Server {
	t.Helper()

	a, err := app.New(sl.Discard(), "", filepath.Join(t.TempDir(), "vam.db"))
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	go a.Router.Serve(ln)

	t.Cleanup(func() {
		_ = a.Stop()
	})

	return &Server{
		URL: "http://" + ln.Addr().String() + "/v1/",
		app: a,
	}
}
