package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// TransportKind distinguishes the two ways a request can fail before the
// server produces a status code.
type TransportKind string

const (
	TransportTimeout          TransportKind = "timeout"
	TransportConnectionFailed TransportKind = "connection_failed"
)

// TransportError reports a network-level failure (timeout or connection
// problem) for a single request.
type TransportError struct {
	Kind     TransportKind
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	if e.Kind == TransportTimeout {
		return fmt.Sprintf("request to %s timed out: %v", e.Endpoint, e.Err)
	}
	return fmt.Sprintf("connection to %s failed: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// APIError is a well-formed non-2xx answer from the portal.
type APIError struct {
	Status   int
	Endpoint string
	Message  string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s returned status %d: %s", e.Endpoint, e.Status, e.Message)
}

// AmbiguousBinaryError marks a non-2xx response whose content type indicates a
// binary payload. The portal's export endpoints sometimes report a perfectly
// good document this way, so the body is preserved untouched and the caller
// decides whether it is the requested artifact or a binary-rendered error.
type AmbiguousBinaryError struct {
	Endpoint    string
	Status      int
	ContentType string
	Body        []byte
}

func (e *AmbiguousBinaryError) Error() string {
	return fmt.Sprintf("%s returned status %d with binary content type %s (%d bytes)",
		e.Endpoint, e.Status, e.ContentType, len(e.Body))
}

// binaryContentTypes are the payload types export endpoints are known to send
// under an error status.
var binaryContentTypes = map[string]bool{
	"application/pdf":          true,
	"application/zip":          true,
	"application/octet-stream": true,
}

func isBinaryContentType(contentType string) bool {
	mediaType := contentType
	if i := strings.Index(mediaType, ";"); i >= 0 {
		mediaType = mediaType[:i]
	}
	return binaryContentTypes[strings.ToLower(strings.TrimSpace(mediaType))]
}

// classifyResponse turns a non-2xx response into its error value. It must run
// before any JSON decoding: feeding a binary body to the JSON decoder would
// lose the payload, so binary content types short-circuit into
// AmbiguousBinaryError with the bytes intact.
func classifyResponse(endpoint string, status int, contentType string, body []byte) error {
	if isBinaryContentType(contentType) {
		return &AmbiguousBinaryError{
			Endpoint:    endpoint,
			Status:      status,
			ContentType: contentType,
			Body:        body,
		}
	}
	return &APIError{Status: status, Endpoint: endpoint, Message: apiMessage(status, body)}
}

// apiMessage extracts a human-readable message from a JSON error body,
// falling back to the standard status text.
func apiMessage(status int, body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Detail  string `json:"detail"`
	}
	if len(body) > 0 && json.Unmarshal(body, &payload) == nil {
		switch {
		case payload.Message != "":
			return payload.Message
		case payload.Error != "":
			return payload.Error
		case payload.Detail != "":
			return payload.Detail
		}
	}
	return http.StatusText(status)
}

// wrapTransportError maps a failed http.Client call onto the TransportError
// taxonomy.
func wrapTransportError(endpoint string, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &TransportError{Kind: TransportTimeout, Endpoint: endpoint, Err: err}
	}
	return &TransportError{Kind: TransportConnectionFailed, Endpoint: endpoint, Err: err}
}

// IsUnauthorized reports whether err is an API error carrying an unauthorized
// or forbidden status. The portal answers with both depending on whether the
// token is missing or merely stale, so they are treated alike.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) &&
		(apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden)
}

// IsAmbiguousBinary reports whether err is an AmbiguousBinaryError and
// returns it for inspection.
func IsAmbiguousBinary(err error) (*AmbiguousBinaryError, bool) {
	var binErr *AmbiguousBinaryError
	if errors.As(err, &binErr) {
		return binErr, true
	}
	return nil, false
}
