package auth

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pb40development/bim-portal-sub001/client"
	"github.com/rs/zerolog/log"
)

// tokenState is the complete in-memory session state. It is only ever
// replaced as a whole, under the service mutex, so readers never observe a
// half-updated pair.
type tokenState struct {
	accessToken  string
	refreshToken string
	expiresAt    time.Time // zero when the token carries no usable expiry
	userID       uuid.UUID
	hasUserID    bool
}

// jwtClaims holds the claims the session manager cares about. Different
// portal deployments have used different names for the user id claim.
type jwtClaims struct {
	Exp     int64  `json:"exp"`
	Sub     string `json:"sub"`
	UserID  string `json:"userId"`
	UserID2 string `json:"user_id"`
	ID      string `json:"id"`
}

// decodeClaims extracts the claims from the payload segment of a JWT. The
// signature is not verified; the token is only inspected, never trusted.
func decodeClaims(token string) (*jwtClaims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("token does not look like a JWT")
	}
	payload, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(parts[1], "="))
	if err != nil {
		return nil, fmt.Errorf("failed to decode JWT payload: %w", err)
	}
	var claims jwtClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, fmt.Errorf("failed to parse JWT claims: %w", err)
	}
	return &claims, nil
}

// newTokenState builds the session state from a token response. The exp
// claim wins over the validTill field; when the token has neither, the state
// is left without an expiry and counts as stale on every use.
func newTokenState(tokens *client.TokenResponse) tokenState {
	state := tokenState{
		accessToken:  tokens.Token,
		refreshToken: tokens.RefreshToken,
	}

	claims, err := decodeClaims(tokens.Token)
	if err != nil {
		log.Debug().Err(err).Msg("Access token payload could not be decoded")
	} else {
		if claims.Exp > 0 {
			state.expiresAt = time.Unix(claims.Exp, 0)
		}
		for _, candidate := range []string{claims.Sub, claims.UserID, claims.UserID2, claims.ID} {
			if id, parseErr := uuid.Parse(candidate); parseErr == nil {
				state.userID = id
				state.hasUserID = true
				break
			}
		}
	}

	if state.expiresAt.IsZero() && tokens.ValidTill != "" {
		if ts, parseErr := time.Parse(time.RFC3339, tokens.ValidTill); parseErr == nil {
			state.expiresAt = ts
		} else {
			log.Debug().Err(parseErr).Msgf("Failed to parse validTill timestamp: %s", tokens.ValidTill)
		}
	}

	return state
}

// validWithin reports whether the access token is present and not due to
// expire within the given margin.
func (t tokenState) validWithin(margin time.Duration) bool {
	if t.accessToken == "" || t.expiresAt.IsZero() {
		return false
	}
	return time.Now().Add(margin).Before(t.expiresAt)
}
