package auth

import (
	"context"

	"github.com/pb40development/bim-portal-sub001/client"
)

// TokenAPI defines the contract for any component that can perform the wire
// side of the token lifecycle. client.Client satisfies it.
type TokenAPI interface {
	Login(ctx context.Context, mail, password string) (*client.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*client.TokenResponse, error)
	Logout(ctx context.Context, token string) error
}
