// Package client implements the HTTP API client the CLI talks to the server
// with, plus the local cache bootstrap.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/ssrdocs/internal/common"
)

// Project is one authorized project as the server reports it.
type Project struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Record mirrors the server's completion record payload.
type Record struct {
	ProjectCode string   `json:"project_code"`
	ProjectName string   `json:"project_name"`
	Completed   int      `json:"completed"`
	Total       int      `json:"total"`
	Percent     float64  `json:"percent"`
	Pending     []string `json:"pending,omitempty"`
}

// File mirrors the server's file listing payload.
type File struct {
	Name     string    `json:"name"`
	MimeType string    `json:"mime_type,omitempty"`
	Size     int64     `json:"size,omitempty"`
	Modified time.Time `json:"modified,omitzero"`
	ViewLink string    `json:"view_link,omitempty"`
}

// LoginResult is the server's answer to a successful login.
type LoginResult struct {
	Token    string   `json:"token"`
	Username string   `json:"username"`
	Projects []string `json:"projects"`
	Admin    bool     `json:"admin"`
}

// Client talks to the ssrdocs server. It keeps the bearer token from the
// last successful Login and sends it on every subsequent request.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Login authenticates and stores the returned token on the client.
func (c *Client) Login(ctx context.Context, usuario, pin string) (*LoginResult, error) {
	body, err := json.Marshal(map[string]string{"usuario": usuario, "pin": pin})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/login", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var res LoginResult
	if err := c.do(req, &res); err != nil {
		return nil, err
	}
	c.token = res.Token
	return &res, nil
}

// Logout drops the stored token.
func (c *Client) Logout() {
	c.token = ""
}

// LoggedIn reports whether a token is stored.
func (c *Client) LoggedIn() bool {
	return c.token != ""
}

// Projects lists the authorized projects.
func (c *Client) Projects(ctx context.Context) ([]Project, error) {
	var out []Project
	if err := c.getJSON(ctx, "/api/projects", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Progress returns the batch completion records, one per authorized project.
func (c *Client) Progress(ctx context.Context) ([]Record, error) {
	var out []Record
	if err := c.getJSON(ctx, "/api/progress", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ProjectProgress returns the completion record for one project.
func (c *Client) ProjectProgress(ctx context.Context, code string) (*Record, error) {
	var out Record
	if err := c.getJSON(ctx, "/api/projects/"+code+"/progress", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Files returns the file snapshot for one project.
func (c *Client) Files(ctx context.Context, code string) ([]File, error) {
	var out []File
	if err := c.getJSON(ctx, "/api/projects/"+code+"/files", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ExportSummary downloads the summary CSV.
func (c *Client) ExportSummary(ctx context.Context) ([]byte, error) {
	return c.getRaw(ctx, "/api/progress/export")
}

// ExportPending downloads the pending deliverables CSV.
func (c *Client) ExportPending(ctx context.Context) ([]byte, error) {
	return c.getRaw(ctx, "/api/progress/pending")
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) getRaw(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (c *Client) do(req *http.Request, out any) error {
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set(common.AccessTokenHeaderName, "Bearer "+c.token)
	}
}

func statusError(status int) error {
	switch status {
	case http.StatusUnauthorized:
		return common.ErrUnauthorized
	case http.StatusForbidden:
		return common.ErrForbidden
	case http.StatusNotFound:
		return common.ErrNotFound
	case http.StatusBadGateway, http.StatusServiceUnavailable:
		return common.ErrUnavailable
	default:
		return fmt.Errorf("%w: unexpected status %d", common.ErrInternal, status)
	}
}
