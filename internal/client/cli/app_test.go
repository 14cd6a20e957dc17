package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/ssrdocs/internal/client/client"
	"github.com/dmitrijs2005/ssrdocs/internal/client/config"
)

func newTestApp(t *testing.T) *App {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/login", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(client.LoginResult{
			Token:    "tok-1",
			Username: "mperez",
			Projects: []string{"SSR042"},
		})
	})
	mux.HandleFunc("GET /api/progress", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]client.Record{
			{ProjectCode: "SSR042", ProjectName: "Acueducto", Completed: 1, Total: 2, Percent: 50.0, Pending: []string{"Presupuesto"}},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		ServerEndpointAddr: srv.URL,
		CachePath:          filepath.Join(t.TempDir(), "cache.db"),
		RequestTimeout:     5 * time.Second,
	}
	app, err := NewApp(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.repos.DB.Close() })
	return app
}

func TestProgress_CachesRecords(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	_, err := app.api.Login(ctx, "mperez", "1234")
	require.NoError(t, err)

	require.NoError(t, app.Progress(ctx, nil))

	cached, err := app.repos.Records.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, cached, 1)
	assert.Equal(t, "SSR042", cached[0].ProjectCode)
	assert.Equal(t, "Presupuesto", cached[0].Pending)
	assert.InDelta(t, 50.0, cached[0].Percent, 0.001)
}

func TestLogout_ClearsCache(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	_, err := app.api.Login(ctx, "mperez", "1234")
	require.NoError(t, err)
	require.NoError(t, app.Progress(ctx, nil))

	require.NoError(t, app.Logout(ctx))
	assert.False(t, app.isLoggedIn())

	cached, err := app.repos.Records.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, cached)
}

func TestCached_EmptyCache(t *testing.T) {
	app := newTestApp(t)

	require.NoError(t, app.Cached(context.Background()))
}
