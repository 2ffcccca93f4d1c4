package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/uuid"
)

const (
	loginPath         = "/infrastruktur/api/v1/public/auth/login"
	refreshTokenPath  = "/infrastruktur/api/v1/public/auth/refresh-token"
	logoutPath        = "/infrastruktur/api/v1/public/auth/logout"
	organisationsPath = "/infrastruktur/api/v1/public/organisation"
)

// Login exchanges mail and password for a token pair.
func (c *Client) Login(ctx context.Context, mail, password string) (*TokenResponse, error) {
	var tokens TokenResponse
	err := c.postJSON(ctx, loginPath, "", LoginRequest{Mail: mail, Password: password}, &tokens)
	if err != nil {
		return nil, err
	}
	return &tokens, nil
}

// RefreshToken trades a refresh token for a fresh token pair.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	var tokens TokenResponse
	err := c.postJSON(ctx, refreshTokenPath, "", RefreshRequest{RefreshToken: refreshToken}, &tokens)
	if err != nil {
		return nil, err
	}
	return &tokens, nil
}

// Logout invalidates the bearer token on the server side.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.postJSON(ctx, logoutPath, token, nil, nil)
}

// Organisations lists the organisations registered on the portal.
func (c *Client) Organisations(ctx context.Context, token string) ([]Organisation, error) {
	var orgs []Organisation
	if err := c.getJSON(ctx, organisationsPath, token, &orgs); err != nil {
		return nil, err
	}
	return orgs, nil
}

// OrganisationsOfUser lists the organisations the given user is a member of.
func (c *Client) OrganisationsOfUser(ctx context.Context, token string, userID uuid.UUID) ([]Organisation, error) {
	path := fmt.Sprintf("%s/my?userId=%s", organisationsPath, url.QueryEscape(userID.String()))
	var orgs []Organisation
	if err := c.getJSON(ctx, path, token, &orgs); err != nil {
		return nil, err
	}
	return orgs, nil
}
