// Package opsramp is the client for the platform's reporting API.
// It is stateless aside from the token it borrows per call from the
// token source; retry policy belongs to the cycle engine.
package opsramp

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/xid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jannisp/hourglass/internal/core"
)

// Client creates and deletes analysis reports. It implements core.ReportAPI.
type Client struct {
	baseURL  string
	tenantID string
	settings ReportSettings

	tokens     core.TokenSource
	httpClient *http.Client
	log        zerolog.Logger
}

type Option func(*Client)

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.log = logger
	}
}

// New builds a report client on top of the given token source and HTTP
// client.
func New(creds core.Credentials, settings ReportSettings, tokens core.TokenSource, httpClient *http.Client, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(creds.BaseURL, "/"),
		tenantID:   creds.TenantID,
		settings:   settings,
		tokens:     tokens,
		httpClient: httpClient,
		log:        log.Logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewHTTPClient builds the HTTP client shared by the token manager and the
// report client. insecureSkipVerify disables certificate validation for
// gateway appliances with self-signed certificates; it must come from
// explicit configuration.
func NewHTTPClient(timeout time.Duration, insecureSkipVerify bool) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if insecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

func (c *Client) analysesURL() string {
	return fmt.Sprintf("%s/reporting/api/v3/tenants/%s/analyses", c.baseURL, c.tenantID)
}

func (c *Client) analysisURL(id string) string {
	return c.analysesURL() + "/" + id
}

type createResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CreateReport triggers an analysis job covering the given window and
// returns its handle.
func (c *Client) CreateReport(ctx context.Context, window core.ReportWindow) (core.ReportHandle, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return core.ReportHandle{}, err
	}

	payload := BuildPayload(c.tenantID, c.settings, window)
	data, err := json.Marshal(payload)
	if err != nil {
		return core.ReportHandle{}, fmt.Errorf("marshalling payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.analysesURL(), bytes.NewReader(data))
	if err != nil {
		return core.ReportHandle{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.decorate(req, token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return core.ReportHandle{}, &core.NetworkError{Op: "creating report", Wrapped: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return core.ReportHandle{}, apiError(resp)
	}

	var created createResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return core.ReportHandle{}, fmt.Errorf("decoding create response: %w", err)
	}
	if created.Name == "" {
		created.Name = window.Name
	}

	c.log.Info().
		Str("id", created.ID).
		Msgf("created analysis %q", created.Name)

	return core.ReportHandle{ID: created.ID, Name: created.Name}, nil
}

// DeleteReport removes an analysis by ID. A 404 means the report is already
// gone and counts as success, which makes cleanup retries idempotent.
func (c *Client) DeleteReport(ctx context.Context, id string) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "DELETE", c.analysisURL(id), nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	c.decorate(req, token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &core.NetworkError{Op: "deleting report", Wrapped: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNotFound {
		c.log.Info().Str("id", id).Msg("analysis already deleted")
		return nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apiError(resp)
	}

	c.log.Info().Str("id", id).Msgf("deleted analysis (HTTP %d)", resp.StatusCode)
	return nil
}

func (c *Client) decorate(req *http.Request, token core.Token) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token.Value)
	req.Header.Set("X-Request-ID", xid.New().String())
}

func apiError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &core.APIError{Status: resp.StatusCode, Body: "<unreadable body>"}
	}
	return &core.APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
}
