// Package drive implements the storage.Store contract against the Google
// Drive v3 REST API. Only the three read operations the platform needs are
// covered: folder search, listing, and content download.
package drive

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/dmitrijs2005/ssrdocs/internal/common"
	"github.com/dmitrijs2005/ssrdocs/internal/storage"
)

const (
	defaultBaseURL = "https://www.googleapis.com/drive/v3"

	folderMimeType = "application/vnd.google-apps.folder"

	listFields = "nextPageToken, files(id, name, mimeType, size, modifiedTime, webViewLink, parents)"
)

// Client talks to the Drive API with an OAuth2-authenticated HTTP client.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, used in tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// NewClient builds a Client from an OAuth2 token source (typically a
// service-account based one with the drive.readonly scope).
func NewClient(ts oauth2.TokenSource, opts ...Option) *Client {
	c := &Client{
		httpClient: oauth2.NewClient(context.Background(), ts),
		baseURL:    defaultBaseURL,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type driveFile struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	MimeType     string   `json:"mimeType"`
	Size         string   `json:"size"`
	ModifiedTime string   `json:"modifiedTime"`
	WebViewLink  string   `json:"webViewLink"`
	Parents      []string `json:"parents"`
}

type listResponse struct {
	NextPageToken string      `json:"nextPageToken"`
	Files         []driveFile `json:"files"`
}

// escapeQueryValue escapes a value for embedding in a Drive query string.
func escapeQueryValue(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	return strings.ReplaceAll(v, `'`, `\'`)
}

func (c *Client) list(ctx context.Context, query string) ([]driveFile, error) {
	var out []driveFile
	pageToken := ""

	for {
		params := url.Values{}
		params.Set("q", query)
		params.Set("fields", listFields)
		params.Set("supportsAllDrives", "true")
		params.Set("includeItemsFromAllDrives", "true")
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/files?"+params.Encode(), nil)
		if err != nil {
			return nil, err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrUnavailable, err)
		}

		var lr listResponse
		err = func() error {
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
				return fmt.Errorf("%w: drive list: %s: %s", common.ErrUnavailable, resp.Status, string(b))
			}
			return json.NewDecoder(resp.Body).Decode(&lr)
		}()
		if err != nil {
			return nil, err
		}

		out = append(out, lr.Files...)
		if lr.NextPageToken == "" {
			return out, nil
		}
		pageToken = lr.NextPageToken
	}
}

func (c *Client) SearchChildren(ctx context.Context, parentID, nameFilter string) ([]storage.Folder, error) {
	query := fmt.Sprintf("'%s' in parents and mimeType='%s' and trashed=false",
		escapeQueryValue(parentID), folderMimeType)
	if nameFilter != "" {
		query += fmt.Sprintf(" and name contains '%s'", escapeQueryValue(nameFilter))
	}

	files, err := c.list(ctx, query)
	if err != nil {
		return nil, err
	}

	folders := make([]storage.Folder, 0, len(files))
	for _, f := range files {
		folders = append(folders, storage.Folder{ID: f.ID, Name: f.Name, ParentID: parentID})
	}
	return folders, nil
}

func (c *Client) ListFolders(ctx context.Context, parentID string) ([]storage.Folder, error) {
	return c.SearchChildren(ctx, parentID, "")
}

func (c *Client) ListFiles(ctx context.Context, parentID string) ([]storage.File, error) {
	query := fmt.Sprintf("'%s' in parents and mimeType!='%s' and trashed=false",
		escapeQueryValue(parentID), folderMimeType)

	files, err := c.list(ctx, query)
	if err != nil {
		return nil, err
	}

	out := make([]storage.File, 0, len(files))
	for _, f := range files {
		rf := storage.File{
			ID:       f.ID,
			Name:     f.Name,
			MimeType: f.MimeType,
			ViewLink: f.WebViewLink,
		}
		if f.Size != "" {
			if n, err := strconv.ParseInt(f.Size, 10, 64); err == nil {
				rf.Size = n
			}
		}
		if f.ModifiedTime != "" {
			if ts, err := time.Parse(time.RFC3339, f.ModifiedTime); err == nil {
				rf.Modified = ts
			}
		}
		out = append(out, rf)
	}
	return out, nil
}

func (c *Client) Download(ctx context.Context, fileID string) (io.ReadCloser, error) {
	u := fmt.Sprintf("%s/files/%s?alt=media&supportsAllDrives=true", c.baseURL, url.PathEscape(fileID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return nil, common.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: drive download: %s", common.ErrUnavailable, resp.Status)
	}
	return resp.Body, nil
}

var _ storage.Store = (*Client)(nil)
