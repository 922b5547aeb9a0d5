package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/handiism/quran-reels/internal/model"
)

// SessionHeader carries the per-process console session id.
const SessionHeader = "X-Console-Session"

// API routes of the rendering backend.
const (
	RouteConfig       = "/api/config"
	RouteProgress     = "/api/progress"
	RouteGenerate     = "/api/generate"
	RoutePreview      = "/api/preview"
	RouteRefreshFonts = "/api/refresh-fonts"
)

// ErrStatus is matched by every *StatusError.
var ErrStatus = errors.New("unexpected HTTP status")

// StatusError reports a non-2xx response.
type StatusError struct {
	Code   int
	Status string
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("HTTP %d: %s", e.Code, e.Body)
	}
	return fmt.Sprintf("HTTP %d: %s", e.Code, e.Status)
}

// Is makes errors.Is(err, ErrStatus) true for status errors.
func (e *StatusError) Is(target error) bool {
	return target == ErrStatus
}

// Client talks to the rendering backend.
//
// Client provides:
//   - Typed calls for every API route
//   - User-Agent and session headers on every request
//   - File download with progress tracking for finished videos
//
// Example usage:
//
//	client := NewClient("http://127.0.0.1:5000")
//
//	snap, err := client.Progress(ctx)
//	resp, err := client.Generate(ctx, req)
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	sessionID  string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a client for the backend at baseURL.
//
// The client is configured with:
//   - 60 second timeout
//   - "QuranReelsConsole" User-Agent header
//   - a random session id sent in SessionHeader
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		userAgent: "QuranReelsConsole",
		sessionID: uuid.NewString(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend origin without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// SessionID returns the id sent with every request.
func (c *Client) SessionID() string { return c.sessionID }

// URL resolves a route against the backend origin.
func (c *Client) URL(route string) string {
	return c.baseURL + route
}

// OutputURL returns the absolute URL of a finished video.
func (c *Client) OutputURL(filename string) string {
	return c.baseURL + model.OutputsVideoRoute + url.PathEscape(filename)
}

// ProgressWriter wraps a writer to track download progress.
//
// Example:
//
//	pw := &ProgressWriter{
//	    Writer: file,
//	    Total:  contentLength,
//	    OnUpdate: func(written, total int64) {
//	        fmt.Printf("%d / %d bytes\n", written, total)
//	    },
//	}
//	io.Copy(pw, response.Body)
type ProgressWriter struct {
	// Writer is the underlying writer to write data to.
	Writer io.Writer

	// Total is the expected total bytes (from Content-Length header).
	Total int64

	// Written is the current number of bytes written.
	Written int64

	// OnUpdate is called after each Write with current progress.
	OnUpdate func(written, total int64)
}

// Write implements io.Writer, tracking progress and calling OnUpdate.
func (pw *ProgressWriter) Write(p []byte) (int, error) {
	n, err := pw.Writer.Write(p)
	pw.Written += int64(n)
	if pw.OnUpdate != nil {
		pw.OnUpdate(pw.Written, pw.Total)
	}
	return n, err
}

// Config fetches GET /api/config.
func (c *Client) Config(ctx context.Context) (*model.ServerConfig, error) {
	var cfg model.ServerConfig
	if err := c.getJSON(ctx, RouteConfig, &cfg); err != nil {
		return nil, fmt.Errorf("fetch config: %w", err)
	}
	return &cfg, nil
}

// Progress fetches the current job snapshot from GET /api/progress.
func (c *Client) Progress(ctx context.Context) (*model.ProgressSnapshot, error) {
	var snap model.ProgressSnapshot
	if err := c.getJSON(ctx, RouteProgress, &snap); err != nil {
		return nil, fmt.Errorf("fetch progress: %w", err)
	}
	return &snap, nil
}

// Generate starts a generation job.
//
// A server refusal (success=false, with or without an error status) is
// returned as a response, not an error, so the caller can show the server's
// message. Transport failures and undecodable bodies are errors.
func (c *Client) Generate(ctx context.Context, req *model.GenerationRequest) (*model.GenerateResponse, error) {
	resp, err := c.postJSON(ctx, RouteGenerate, req)
	if err != nil {
		return nil, fmt.Errorf("start generation: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("start generation: %w", err)
	}

	var out model.GenerateResponse
	if err := json.Unmarshal(body, &out); err != nil {
		if !isSuccess(resp.StatusCode) {
			return nil, fmt.Errorf("start generation: %w", statusError(resp, body))
		}
		return nil, fmt.Errorf("start generation: decode response: %w", err)
	}
	if !isSuccess(resp.StatusCode) {
		out.Success = false
	}
	return &out, nil
}

// Preview starts a single-ayah preview job. Only the HTTP status is checked.
func (c *Client) Preview(ctx context.Context, req *model.PreviewRequest) error {
	resp, err := c.postJSON(ctx, RoutePreview, req)
	if err != nil {
		return fmt.Errorf("start preview: %w", err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("start preview: %w", statusError(resp, body))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// RefreshFonts asks the backend to rescan its font directory.
func (c *Client) RefreshFonts(ctx context.Context) (*model.RefreshFontsResponse, error) {
	resp, err := c.postJSON(ctx, RouteRefreshFonts, struct{}{})
	if err != nil {
		return nil, fmt.Errorf("refresh fonts: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("refresh fonts: %w", err)
	}
	if !isSuccess(resp.StatusCode) {
		return nil, fmt.Errorf("refresh fonts: %w", statusError(resp, body))
	}

	var out model.RefreshFontsResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("refresh fonts: decode response: %w", err)
	}
	return &out, nil
}

// GetFileSize returns the size of a file at the given URL via HEAD request.
//
// Returns an error if:
//   - The request fails
//   - The server doesn't return a Content-Length header
func (c *Client) GetFileSize(ctx context.Context, url string) (int64, error) {
	req, err := c.newRequest(ctx, http.MethodHead, url, nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return 0, statusError(resp, nil)
	}
	if resp.ContentLength < 0 {
		return 0, fmt.Errorf("no Content-Length header for %s", url)
	}

	return resp.ContentLength, nil
}

// DownloadFile downloads a file to the specified path with optional progress callback.
//
// The file is created (or truncated if it exists) and the content is streamed
// directly to disk. Pass a nil onProgress to disable progress tracking.
func (c *Client) DownloadFile(ctx context.Context, url, destPath string, onProgress func(written, total int64)) error {
	req, err := c.newRequest(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return statusError(resp, body)
	}

	file, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer file.Close()

	var writer io.Writer = file
	if onProgress != nil {
		writer = &ProgressWriter{
			Writer:   file,
			Total:    resp.ContentLength,
			OnUpdate: onProgress,
		}
	}

	_, err = io.Copy(writer, resp.Body)
	return err
}

func (c *Client) getJSON(ctx context.Context, route string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, c.URL(route), nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return statusError(resp, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, route string, payload any) (*http.Response, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, c.URL(route), bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.httpClient.Do(req)
}

func (c *Client) newRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(SessionHeader, c.sessionID)
	return req, nil
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}

func statusError(resp *http.Response, body []byte) *StatusError {
	return &StatusError{
		Code:   resp.StatusCode,
		Status: resp.Status,
		Body:   strings.TrimSpace(string(body)),
	}
}
