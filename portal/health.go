package portal

import (
	"context"
	"errors"
	"fmt"

	"github.com/pb40development/bim-portal-sub001/auth"
	"github.com/pb40development/bim-portal-sub001/client"
)

// Health is the result of a portal health check. Exactly one of three
// states holds: unreachable, reachable with failed authentication, or
// reachable with a working session. Err carries the underlying failure for
// the first two states.
type Health struct {
	Reachable bool
	AuthOK    bool
	Err       error
}

func (h Health) String() string {
	switch {
	case !h.Reachable:
		return fmt.Sprintf("portal unreachable: %v", h.Err)
	case h.AuthOK:
		return "portal reachable, authentication ok"
	default:
		return fmt.Sprintf("portal reachable, authentication failed: %v", h.Err)
	}
}

// HealthCheck probes the portal. Reachability is tested with an anonymous
// project search; any response from the service counts, even an error
// status. Authentication is then probed with an organisation lookup through
// the session manager. The check itself never fails, the outcome is encoded
// in the returned struct.
func (c *Client) HealthCheck(ctx context.Context) Health {
	if _, err := c.api.SearchProjects(ctx, "", nil); err != nil && !isServiceResponse(err) {
		return Health{Err: err}
	}

	h := Health{Reachable: true}
	if !c.auth.HasCredentials() {
		h.Err = &auth.AuthenticationError{Reason: auth.ReasonMissingCredentials}
		return h
	}

	err := c.auth.Do(ctx, func(ctx context.Context, token string) error {
		if userID, ok := c.auth.CurrentUserID(); ok {
			_, opErr := c.api.OrganisationsOfUser(ctx, token, userID)
			return opErr
		}
		_, opErr := c.api.Organisations(ctx, token)
		return opErr
	})
	if err != nil {
		h.Err = err
		return h
	}

	h.AuthOK = true
	return h
}

// isServiceResponse reports whether err proves the portal answered, as
// opposed to a transport failure where nothing came back.
func isServiceResponse(err error) bool {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return true
	}
	var binErr *client.AmbiguousBinaryError
	return errors.As(err, &binErr)
}
