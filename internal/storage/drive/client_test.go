package drive

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/dmitrijs2005/ssrdocs/internal/common"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "test-token"})
	return NewClient(ts, WithBaseURL(srv.URL))
}

func TestSearchChildren_BuildsFolderQuery(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		assert.Equal(t, "true", r.URL.Query().Get("supportsAllDrives"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"files": []map[string]any{
				{"id": "f1", "name": "SSR042 Los Alamos", "mimeType": folderMimeType},
			},
		})
	})

	got, err := c.SearchChildren(context.Background(), "base", "SSR042")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "f1", got[0].ID)
	assert.Equal(t, "base", got[0].ParentID)
	assert.Equal(t,
		"'base' in parents and mimeType='application/vnd.google-apps.folder' and trashed=false and name contains 'SSR042'",
		gotQuery)
}

func TestSearchChildren_EscapesQuotes(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		_ = json.NewEncoder(w).Encode(map[string]any{"files": []any{}})
	})

	_, err := c.SearchChildren(context.Background(), "base", "o'higgins")
	require.NoError(t, err)
	assert.Contains(t, gotQuery, `name contains 'o\'higgins'`)
}

func TestListFiles_PaginatesAndParsesMetadata(t *testing.T) {
	page := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		page++
		if page == 1 {
			assert.Empty(t, r.URL.Query().Get("pageToken"))
			_ = json.NewEncoder(w).Encode(map[string]any{
				"nextPageToken": "p2",
				"files": []map[string]any{
					{"id": "a", "name": "plano_general_rev3.pdf", "mimeType": "application/pdf",
						"size": "2048", "modifiedTime": "2025-02-10T12:30:00Z", "webViewLink": "https://view/a"},
				},
			})
			return
		}
		assert.Equal(t, "p2", r.URL.Query().Get("pageToken"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"files": []map[string]any{
				{"id": "b", "name": "memoria.docx", "mimeType": "application/docx"},
			},
		})
	})

	got, err := c.ListFiles(context.Background(), "folder1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2048), got[0].Size)
	assert.Equal(t, "https://view/a", got[0].ViewLink)
	assert.Equal(t, 2025, got[0].Modified.Year())
	assert.Zero(t, got[1].Size)
	assert.True(t, got[1].Modified.IsZero())
}

func TestList_ServerErrorWrapsUnavailable(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "backend down", http.StatusBadGateway)
	})

	_, err := c.ListFiles(context.Background(), "folder1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrUnavailable))
}

func TestDownload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/files/gone" {
			http.NotFound(w, r)
			return
		}
		assert.Equal(t, "media", r.URL.Query().Get("alt"))
		_, _ = w.Write([]byte("contenido"))
	})

	rc, err := c.Download(context.Background(), "file1")
	require.NoError(t, err)
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "contenido", string(b))

	_, err = c.Download(context.Background(), "gone")
	assert.True(t, errors.Is(err, common.ErrNotFound))
}
