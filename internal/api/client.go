// Package api is the HTTP client for the SIVEC backend. It owns the two
// cross-cutting behaviors every call shares: attaching the stored bearer
// token to outgoing requests, and wiping local credentials whenever the
// server answers 401 — before the error ever reaches the caller.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/AnubisPsy/Mobile-SIVEC/internal/apierror"
	"github.com/AnubisPsy/Mobile-SIVEC/internal/dto"
)

// TokenSource supplies the persisted session token and wipes it on an
// authorization failure. An empty token is not an error at this layer.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
	Limpiar(ctx context.Context) error
}

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	breaker *circuitBreaker
	log     zerolog.Logger
}

func New(baseURL string, timeout time.Duration, tokens TokenSource, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		breaker: newCircuitBreaker(BreakerConfig{}),
		log:     log,
	}
}

// NewWithBreaker is used by tests to tighten breaker thresholds.
func NewWithBreaker(baseURL string, timeout time.Duration, tokens TokenSource, log zerolog.Logger, cfg BreakerConfig) *Client {
	c := New(baseURL, timeout, tokens, log)
	c.breaker = newCircuitBreaker(cfg)
	return c
}

// EstadoBackend exposes the breaker state for the shell's status line.
func (c *Client) EstadoBackend() string { return c.breaker.currentState().String() }

// do issues one request through the breaker and decodes the envelope into
// out (when non-nil).
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	return c.breaker.execute(func() (error, bool) {
		return c.roundTrip(ctx, method, path, body, out)
	})
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body, out any) (error, bool) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("sivec: marshal request: %w", err), false
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("sivec: create request: %w", err), false
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	if token, err := c.tokens.Token(ctx); err != nil {
		c.log.Warn().Err(err).Msg("no se pudo leer el token almacenado")
	} else if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("sivec: backend inaccesible: %w", err), true
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("solicitud al backend")

	// Global policy: a 401 means the stored credentials are no longer good.
	// Wipe them before the caller's error handler runs.
	if resp.StatusCode == http.StatusUnauthorized {
		if err := c.tokens.Limpiar(ctx); err != nil {
			c.log.Warn().Err(err).Msg("no se pudieron limpiar las credenciales tras 401")
		}
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("sivec: leer respuesta: %w", err), true
	}

	var env dto.Respuesta
	if len(payload) > 0 {
		// A non-envelope body (proxy error page, etc.) falls through to the
		// status check below.
		_ = json.Unmarshal(payload, &env)
	}

	if resp.StatusCode >= 400 || !env.Success {
		msg := env.Message
		if msg == "" {
			msg = env.Error
		}
		return apierror.New(resp.StatusCode, msg), resp.StatusCode >= 500
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("sivec: respuesta invalida: %w", err), false
		}
	}
	return nil, false
}
