// Package auth owns the OAuth client-credentials token lifecycle.
//
// Tokens are refreshed lazily at the call site rather than by a background
// timer: every consumer goes through Token(), which performs the exchange
// only when the cached token is within the refresh margin of its expiry.
// With the long, predictable gaps between hourly calls this guarantees a
// fresh token before any dependent request, including the case where the
// cycle slept for nearly the whole token lifetime.
package auth

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jannisp/hourglass/internal/core"
)

// TokenRoute is the platform's OAuth token endpoint, relative to the API root.
const TokenRoute = "/tenancy/auth/oauth/token"

// Manager caches the current bearer token and replaces it transparently
// before it expires. It implements core.TokenSource.
//
// Manager is not safe for concurrent use; the cycle engine issues all calls
// from a single goroutine. Guard the cache before introducing parallel
// report creation.
type Manager struct {
	endpoint     string
	clientID     string
	clientSecret string
	margin       time.Duration

	httpClient *http.Client
	now        func() time.Time
	log        zerolog.Logger

	current core.Token
}

type Option func(*Manager)

// WithNow overrides the time source. Used in tests.
func WithNow(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(m *Manager) {
		m.log = logger
	}
}

// NewManager builds a token manager for the given credentials. The caller
// provides the HTTP client so transport settings (timeout, TLS trust) are
// decided in one place.
func NewManager(creds core.Credentials, margin time.Duration, httpClient *http.Client, opts ...Option) *Manager {
	m := &Manager{
		endpoint:     strings.TrimSuffix(creds.BaseURL, "/") + TokenRoute,
		clientID:     creds.ClientID,
		clientSecret: creds.ClientSecret,
		margin:       margin,
		httpClient:   httpClient,
		now:          time.Now,
		log:          log.Logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Token returns a valid bearer token, performing the exchange on first use
// and again whenever the cached token crosses the refresh threshold. The
// common path is a pure cache read with no network call.
func (m *Manager) Token(ctx context.Context) (core.Token, error) {
	if !m.current.Stale(m.now(), m.margin) {
		return m.current, nil
	}

	token, err := m.exchange(ctx)
	if err != nil {
		return core.Token{}, err
	}

	// the previous token is dropped here, never pooled
	m.current = token
	return token, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (m *Manager) exchange(ctx context.Context) (core.Token, error) {
	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {m.clientID},
		"client_secret": {m.clientSecret},
	}

	req, err := http.NewRequestWithContext(ctx, "POST", m.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return core.Token{}, &core.AuthError{Reason: "creating token request", Wrapped: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	m.log.Info().Msg("requesting new OAuth token")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return core.Token{}, &core.AuthError{Reason: "token request failed", Wrapped: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return core.Token{}, &core.AuthError{
			Status: resp.StatusCode,
			Reason: strings.TrimSpace(string(body)),
		}
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return core.Token{}, &core.AuthError{Reason: "decoding token response", Wrapped: err}
	}
	if tr.AccessToken == "" {
		return core.Token{}, &core.AuthError{Reason: "token response contains no access_token"}
	}

	lifetime := core.NominalTokenLifetime
	if tr.ExpiresIn > 0 {
		lifetime = time.Duration(tr.ExpiresIn) * time.Second
	}

	issued := m.now()
	token := core.Token{
		Value:     tr.AccessToken,
		IssuedAt:  issued,
		ExpiresAt: issued.Add(lifetime),
	}

	m.log.Info().
		Time("expires_at", token.ExpiresAt).
		Msgf("token acquired (expires in %s)", lifetime)

	return token, nil
}
