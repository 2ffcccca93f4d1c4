package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/pb40development/bim-portal-sub001/config"
	"github.com/rs/zerolog/log"
)

// Client is the low-level typed binding to the BIM portal REST API. It knows
// endpoints and wire formats but nothing about token lifecycles; callers pass
// the bearer token explicitly (empty string for anonymous access).
type Client struct {
	BaseURL string
	HTTP    *http.Client

	limiter *RateLimiter
}

// New builds a Client from the resolved configuration. The request timeout
// bounds whole calls, the connect timeout bounds dialing and the TLS
// handshake.
func New(cfg config.Config) *Client {
	dialer := &net.Dialer{Timeout: cfg.ConnectTimeout}
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         dialer.DialContext,
		TLSHandshakeTimeout: cfg.ConnectTimeout,
	}
	return &Client{
		BaseURL: strings.TrimRight(cfg.BaseURL, "/"),
		HTTP: &http.Client{
			Timeout:   cfg.RequestTimeout,
			Transport: transport,
		},
		limiter: NewRateLimiter(cfg.ExportRateLimit),
	}
}

// --- HTTP helpers (kept private) ---

// newRequest creates an HTTP request against the portal. A non-nil body is
// JSON-encoded; a non-empty token is attached as a bearer header.
func (c *Client) newRequest(ctx context.Context, method, path, token string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			log.Error().Err(err).Str("path", path).Msg("Failed to encode request body")
			return nil, fmt.Errorf("failed to encode request body for %s: %w", path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		log.Error().Err(err).Str("method", method).Str("path", path).Msg("Failed to create HTTP request object")
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}
	return req, nil
}

// do sends the request and returns a response with a 2xx status. Any non-2xx
// response is drained and classified (binary payloads survive as
// AmbiguousBinaryError); network failures map to TransportError.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Msg("Sending HTTP request")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		log.Error().Err(err).Str("method", req.Method).Str("url", req.URL.String()).Msg("HTTP request failed")
		return nil, wrapTransportError(req.URL.Path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			log.Error().Err(readErr).Str("url", req.URL.String()).Msg("Failed to read error response body")
			body = nil
		}
		classified := classifyResponse(req.URL.Path, resp.StatusCode, resp.Header.Get("Content-Type"), body)
		log.Debug().Str("method", req.Method).Str("url", req.URL.String()).
			Int("status", resp.StatusCode).Msg("HTTP request returned non-OK status")
		return nil, classified
	}

	return resp, nil
}

// readResponseBody reads and closes the response body.
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error().Err(err).Str("url", resp.Request.URL.String()).Msg("Failed to read response body")
		return nil, err
	}
	return body, nil
}

// getJSON performs a GET and decodes the JSON answer into out.
func (c *Client) getJSON(ctx context.Context, path, token string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, token, nil)
	if err != nil {
		return err
	}
	return c.doJSON(req, out)
}

// postJSON performs a POST with a JSON body and decodes the JSON answer into
// out. A nil out discards the response body.
func (c *Client) postJSON(ctx context.Context, path, token string, in, out any) error {
	req, err := c.newRequest(ctx, http.MethodPost, path, token, in)
	if err != nil {
		return err
	}
	return c.doJSON(req, out)
}

func (c *Client) doJSON(req *http.Request, out any) error {
	resp, err := c.do(req)
	if err != nil {
		return err
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return fmt.Errorf("failed to read response from %s: %w", req.URL.Path, err)
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		log.Error().Err(err).Str("body_preview", string(body[:min(len(body), 200)])).
			Str("path", req.URL.Path).Msg("Failed to parse response JSON")
		return fmt.Errorf("failed to parse response from %s: %w", req.URL.Path, err)
	}
	return nil
}

// getBytes performs a GET and returns the raw response body. Export endpoints
// use this; their payload is binary, never JSON. Reads are throttled when an
// export rate limit is configured.
func (c *Client) getBytes(ctx context.Context, path, token string) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, token, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(c.limiter.Wrap(resp.Body))
	if err != nil {
		log.Error().Err(err).Str("url", resp.Request.URL.String()).Msg("Failed to read response body")
		return nil, err
	}
	return body, nil
}

// min helper function
func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
