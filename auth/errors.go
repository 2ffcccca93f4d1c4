package auth

import "fmt"

// Reason classifies why an authentication attempt failed.
type Reason string

const (
	// ReasonMissingCredentials means no username or password is configured,
	// so no login was attempted.
	ReasonMissingCredentials Reason = "missing_credentials"
	// ReasonLoginRejected means the portal turned down the configured
	// credentials.
	ReasonLoginRejected Reason = "login_rejected"
	// ReasonReauthFailed means an existing session could not be renewed:
	// the refresh was rejected and so was the fallback login.
	ReasonReauthFailed Reason = "reauth_failed"
	// ReasonUnauthorized means the portal kept rejecting the token even
	// after a fresh login.
	ReasonUnauthorized Reason = "unauthorized"
)

// AuthenticationError reports a failed authentication flow.
type AuthenticationError struct {
	Reason Reason
	Err    error
}

func (e *AuthenticationError) Error() string {
	switch e.Reason {
	case ReasonMissingCredentials:
		return "no credentials configured; set BIM_PORTAL_USERNAME and BIM_PORTAL_PASSWORD"
	case ReasonLoginRejected:
		return fmt.Sprintf("login rejected by the portal: %v", e.Err)
	case ReasonReauthFailed:
		return fmt.Sprintf("session renewal failed, refresh and fallback login were both rejected: %v", e.Err)
	case ReasonUnauthorized:
		return fmt.Sprintf("portal rejected the token even after re-authentication: %v", e.Err)
	default:
		return fmt.Sprintf("authentication failed: %v", e.Err)
	}
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

// Is makes two authentication errors match on their reason, so callers can
// test against a bare &AuthenticationError{Reason: ...} sentinel.
func (e *AuthenticationError) Is(target error) bool {
	other, ok := target.(*AuthenticationError)
	return ok && other.Reason == e.Reason
}
