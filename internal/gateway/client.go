// Package gateway talks to the media-library backend.
//
// Every operation is a JSON POST to /api/<op>. The backend answers with an
// envelope carrying a success flag and either a payload or an error string.
// A success=false answer becomes an errors.GatewayFailure; anything that
// prevents a usable answer (network, HTTP status, malformed body) becomes an
// errors.TransportFailure.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mlibctl/internal/errors"
	"mlibctl/internal/log"

	"github.com/google/uuid"
)

// Gateway is the backend as the dialogs see it
type Gateway interface {
	GetExportFolders(ctx context.Context, q FolderQuery) (*FoldersResponse, error)
	ExportFile(ctx context.Context, uid, path string, opts ExportOptions) (*Response, error)
	UpdateTag(ctx context.Context, tag Tag) (*Response, error)
	GetAllTags(ctx context.Context) ([]Tag, error)
	GetFile(ctx context.Context, uid string) (*File, error)
}

// Operation names, also used as URL path segments
const (
	OpGetExportFolders = "getExportFolders"
	OpExportFile       = "exportFile"
	OpUpdateTag        = "updateTag"
	OpGetAllTags       = "getAllTags"
	OpGetFile          = "getFile"
)

// RequestIDHeader carries a per-request id for correlating client and
// server logs.
const RequestIDHeader = "X-Request-ID"

const maxResponseBytes = 8 << 20

// Client is the HTTP implementation of Gateway
type Client struct {
	baseURL *url.URL
	apiKey  string
	http    *http.Client
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithAPIKey sends key as the apiKey query parameter
func WithAPIKey(key string) ClientOption {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithTimeout bounds every request
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.http = hc
	}
}

// NewClient creates a client for the backend at serverURL
func NewClient(serverURL string, opts ...ClientOption) (*Client, error) {
	if strings.TrimSpace(serverURL) == "" {
		return nil, errors.NewInvalidInputError("server", "url is required")
	}
	u, err := url.Parse(strings.TrimRight(serverURL, "/"))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid server url %q", serverURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.NewInvalidInputError("server", fmt.Sprintf("unsupported scheme %q", u.Scheme))
	}

	c := &Client{
		baseURL: u,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) endpoint(op string) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/api/" + op
	if c.apiKey != "" {
		q := u.Query()
		q.Set("apiKey", c.apiKey)
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// call posts body to op and decodes the answer into out. out must embed
// Response so the success flag can be checked.
func (c *Client) call(ctx context.Context, op string, body interface{}, out envelope) error {
	reqID := uuid.NewString()
	logger := log.LogWithFields(log.F("op", op), log.F("request_id", reqID))

	payload, err := json.Marshal(body)
	if err != nil {
		return errors.Wrapf(err, "encode %s request", op)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(op), bytes.NewReader(payload))
	if err != nil {
		return errors.NewTransportError(op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, reqID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.WithError(err).Error("backend request failed")
		return errors.NewTransportError(op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return errors.NewTransportError(op, err)
	}
	logger.Debugf("backend answered %d in %s", resp.StatusCode, time.Since(start))

	// An error status is a transport failure even when the body carries an
	// envelope; only a 2xx answer with success false is the backend's verdict.
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := fmt.Errorf("unexpected status %s", resp.Status)
		logger.WithError(err).Error("backend request failed")
		return errors.NewTransportError(op, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		logger.WithError(err).Error("malformed backend response")
		return errors.NewTransportError(op, fmt.Errorf("decode response: %w", err))
	}
	if !out.envelope().Success {
		return errors.NewGatewayError(op, out.envelope().Error)
	}
	return nil
}

type envelope interface {
	envelope() *Response
}

func (r *Response) envelope() *Response { return r }

// GetExportFolders lists export folders. With q.Recursive the whole tree is
// returned, otherwise the immediate children of q.Path.
func (c *Client) GetExportFolders(ctx context.Context, q FolderQuery) (*FoldersResponse, error) {
	var out FoldersResponse
	if err := c.call(ctx, OpGetExportFolders, q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExportFile asks the backend to export the file uid into path
func (c *Client) ExportFile(ctx context.Context, uid, path string, opts ExportOptions) (*Response, error) {
	var out Response
	req := exportRequest{UID: uid, Path: path, Options: opts}
	if err := c.call(ctx, OpExportFile, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateTag saves tag
func (c *Client) UpdateTag(ctx context.Context, tag Tag) (*Response, error) {
	var out Response
	if err := c.call(ctx, OpUpdateTag, tagRequest{Tag: tag}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetAllTags returns every tag known to the backend
func (c *Client) GetAllTags(ctx context.Context) ([]Tag, error) {
	var out tagsResponse
	if err := c.call(ctx, OpGetAllTags, struct{}{}, &out); err != nil {
		return nil, err
	}
	return out.Tags, nil
}

// GetFile fetches one media record
func (c *Client) GetFile(ctx context.Context, uid string) (*File, error) {
	var out fileResponse
	if err := c.call(ctx, OpGetFile, fileRequest{UID: uid}, &out); err != nil {
		return nil, err
	}
	if out.File == nil {
		return nil, errors.NotFoundf("file %s not found", uid)
	}
	return out.File, nil
}
