// Package portal is the high-level client for the BIM portal. It composes
// the low-level API bindings with the session manager, so callers get
// transparent login, token refresh and retry without touching tokens
// themselves. Anonymous use is supported; configured credentials widen the
// visible result sets to organisation-internal resources.
package portal

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pb40development/bim-portal-sub001/auth"
	"github.com/pb40development/bim-portal-sub001/client"
	"github.com/pb40development/bim-portal-sub001/config"
)

// The merkmale service rejects empty search strings, so property searches
// without a term fall back to the broadest accepted query.
const defaultPropertySearch = "a"

// Client is the enhanced portal client.
type Client struct {
	api  *client.Client
	auth *auth.Service
	cfg  config.Config
}

// New builds a portal client from the given configuration.
func New(cfg config.Config) *Client {
	api := client.New(cfg)
	return &Client{
		api:  api,
		auth: auth.NewService(api, cfg),
		cfg:  cfg,
	}
}

// HasCredentials reports whether the client is configured for
// authenticated access.
func (c *Client) HasCredentials() bool {
	return c.auth.HasCredentials()
}

// Login verifies the configured credentials by establishing a session.
func (c *Client) Login(ctx context.Context) error {
	_, err := c.auth.EnsureValidToken(ctx)
	return err
}

// Logout ends the session, best effort on the remote side.
func (c *Client) Logout(ctx context.Context) error {
	return c.auth.Logout(ctx)
}

// CurrentUserID returns the user id of the active session, if any.
func (c *Client) CurrentUserID() (uuid.UUID, bool) {
	return c.auth.CurrentUserID()
}

// run executes op through the session manager when credentials are
// configured, and anonymously otherwise. Public resources do not require a
// token.
func (c *Client) run(ctx context.Context, op func(ctx context.Context, token string) error) error {
	if c.auth.HasCredentials() {
		return c.auth.Do(ctx, op)
	}
	return op(ctx, "")
}

func searchRequest(term string) *client.SearchRequest {
	if term == "" {
		return nil
	}
	return &client.SearchRequest{SearchString: term}
}

// artifactBytes adjudicates export responses. The classifier flags binary
// bodies on non-2xx statuses as ambiguous; on export endpoints that body IS
// the requested document, so it is returned as a success.
func artifactBytes(data []byte, err error) ([]byte, error) {
	if err != nil {
		if bin, ok := client.IsAmbiguousBinary(err); ok {
			return bin.Body, nil
		}
		return nil, err
	}
	return data, nil
}

func formatAllowed(format client.ExportFormat, allowed []client.ExportFormat) bool {
	for _, f := range allowed {
		if f == format {
			return true
		}
	}
	return false
}

// SearchProjects lists AIA projects matching the term. An empty term lists
// everything visible to the caller.
func (c *Client) SearchProjects(ctx context.Context, term string) ([]client.ProjectSummary, error) {
	var out []client.ProjectSummary
	err := c.run(ctx, func(ctx context.Context, token string) error {
		var opErr error
		out, opErr = c.api.SearchProjects(ctx, token, searchRequest(term))
		return opErr
	})
	return out, err
}

// GetProject fetches the full project detail.
func (c *Client) GetProject(ctx context.Context, guid uuid.UUID) (*client.Project, error) {
	var out *client.Project
	err := c.run(ctx, func(ctx context.Context, token string) error {
		var opErr error
		out, opErr = c.api.GetProject(ctx, token, guid)
		return opErr
	})
	return out, err
}

// ExportProject renders a project in the requested format and returns the
// document bytes.
func (c *Client) ExportProject(ctx context.Context, guid uuid.UUID, format client.ExportFormat) ([]byte, error) {
	var out []byte
	err := c.run(ctx, func(ctx context.Context, token string) error {
		data, opErr := c.api.ExportProject(ctx, token, guid, format)
		out, opErr = artifactBytes(data, opErr)
		return opErr
	})
	return out, err
}

// SearchLoins lists LOINs matching the term.
func (c *Client) SearchLoins(ctx context.Context, term string) ([]client.LoinSummary, error) {
	var out []client.LoinSummary
	err := c.run(ctx, func(ctx context.Context, token string) error {
		var opErr error
		out, opErr = c.api.SearchLoins(ctx, token, searchRequest(term))
		return opErr
	})
	return out, err
}

// GetLoin fetches the full LOIN detail.
func (c *Client) GetLoin(ctx context.Context, guid uuid.UUID) (*client.Loin, error) {
	var out *client.Loin
	err := c.run(ctx, func(ctx context.Context, token string) error {
		var opErr error
		out, opErr = c.api.GetLoin(ctx, token, guid)
		return opErr
	})
	return out, err
}

// ExportLoin renders a LOIN in the requested format.
func (c *Client) ExportLoin(ctx context.Context, guid uuid.UUID, format client.ExportFormat) ([]byte, error) {
	var out []byte
	err := c.run(ctx, func(ctx context.Context, token string) error {
		data, opErr := c.api.ExportLoin(ctx, token, guid, format)
		out, opErr = artifactBytes(data, opErr)
		return opErr
	})
	return out, err
}

// SearchDomainModels lists domain specific models matching the term.
func (c *Client) SearchDomainModels(ctx context.Context, term string) ([]client.DomainModelSummary, error) {
	var out []client.DomainModelSummary
	err := c.run(ctx, func(ctx context.Context, token string) error {
		var opErr error
		out, opErr = c.api.SearchDomainModels(ctx, token, searchRequest(term))
		return opErr
	})
	return out, err
}

// GetDomainModel fetches the full domain model detail.
func (c *Client) GetDomainModel(ctx context.Context, guid uuid.UUID) (*client.DomainModel, error) {
	var out *client.DomainModel
	err := c.run(ctx, func(ctx context.Context, token string) error {
		var opErr error
		out, opErr = c.api.GetDomainModel(ctx, token, guid)
		return opErr
	})
	return out, err
}

// ExportDomainModel renders a domain model in the requested format.
func (c *Client) ExportDomainModel(ctx context.Context, guid uuid.UUID, format client.ExportFormat) ([]byte, error) {
	var out []byte
	err := c.run(ctx, func(ctx context.Context, token string) error {
		data, opErr := c.api.ExportDomainModel(ctx, token, guid, format)
		out, opErr = artifactBytes(data, opErr)
		return opErr
	})
	return out, err
}

// SearchContextInfo lists context information documents matching the term.
func (c *Client) SearchContextInfo(ctx context.Context, term string) ([]client.ContextInfoSummary, error) {
	var out []client.ContextInfoSummary
	err := c.run(ctx, func(ctx context.Context, token string) error {
		var opErr error
		out, opErr = c.api.SearchContextInfo(ctx, token, searchRequest(term))
		return opErr
	})
	return out, err
}

// GetContextInfo fetches the full context information detail.
func (c *Client) GetContextInfo(ctx context.Context, guid uuid.UUID) (*client.ContextInfo, error) {
	var out *client.ContextInfo
	err := c.run(ctx, func(ctx context.Context, token string) error {
		var opErr error
		out, opErr = c.api.GetContextInfo(ctx, token, guid)
		return opErr
	})
	return out, err
}

// ExportContextInfo renders a context information document. Only the
// document formats pdf and openOffice exist for this resource.
func (c *Client) ExportContextInfo(ctx context.Context, guid uuid.UUID, format client.ExportFormat) ([]byte, error) {
	if !formatAllowed(format, client.DocumentFormats) {
		return nil, fmt.Errorf("context information cannot be exported as %s, only pdf and openOffice", format)
	}
	var out []byte
	err := c.run(ctx, func(ctx context.Context, token string) error {
		data, opErr := c.api.ExportContextInfo(ctx, token, guid, format)
		out, opErr = artifactBytes(data, opErr)
		return opErr
	})
	return out, err
}

// SearchTemplates lists AIA templates matching the term.
func (c *Client) SearchTemplates(ctx context.Context, term string) ([]client.TemplateSummary, error) {
	var out []client.TemplateSummary
	err := c.run(ctx, func(ctx context.Context, token string) error {
		var opErr error
		out, opErr = c.api.SearchTemplates(ctx, token, searchRequest(term))
		return opErr
	})
	return out, err
}

// GetTemplate fetches the full template detail.
func (c *Client) GetTemplate(ctx context.Context, guid uuid.UUID) (*client.Template, error) {
	var out *client.Template
	err := c.run(ctx, func(ctx context.Context, token string) error {
		var opErr error
		out, opErr = c.api.GetTemplate(ctx, token, guid)
		return opErr
	})
	return out, err
}

// ExportTemplate renders a template. Only the document formats pdf and
// openOffice exist for this resource.
func (c *Client) ExportTemplate(ctx context.Context, guid uuid.UUID, format client.ExportFormat) ([]byte, error) {
	if !formatAllowed(format, client.DocumentFormats) {
		return nil, fmt.Errorf("templates cannot be exported as %s, only pdf and openOffice", format)
	}
	var out []byte
	err := c.run(ctx, func(ctx context.Context, token string) error {
		data, opErr := c.api.ExportTemplate(ctx, token, guid, format)
		out, opErr = artifactBytes(data, opErr)
		return opErr
	})
	return out, err
}

// SearchProperties lists properties from the merkmale service.
func (c *Client) SearchProperties(ctx context.Context, term string) ([]client.PropertySummary, error) {
	if term == "" {
		term = defaultPropertySearch
	}
	var out []client.PropertySummary
	err := c.run(ctx, func(ctx context.Context, token string) error {
		var opErr error
		out, opErr = c.api.SearchProperties(ctx, token, &client.SearchRequest{SearchString: term})
		return opErr
	})
	return out, err
}

// GetProperty fetches the full property detail.
func (c *Client) GetProperty(ctx context.Context, guid uuid.UUID) (*client.Property, error) {
	var out *client.Property
	err := c.run(ctx, func(ctx context.Context, token string) error {
		var opErr error
		out, opErr = c.api.GetProperty(ctx, token, guid)
		return opErr
	})
	return out, err
}

// SearchPropertyGroups lists property groups from the merkmale service.
func (c *Client) SearchPropertyGroups(ctx context.Context, term string) ([]client.PropertySummary, error) {
	if term == "" {
		term = defaultPropertySearch
	}
	var out []client.PropertySummary
	err := c.run(ctx, func(ctx context.Context, token string) error {
		var opErr error
		out, opErr = c.api.SearchPropertyGroups(ctx, token, &client.SearchRequest{SearchString: term})
		return opErr
	})
	return out, err
}

// GetPropertyGroup fetches the full property group detail.
func (c *Client) GetPropertyGroup(ctx context.Context, guid uuid.UUID) (*client.PropertyGroup, error) {
	var out *client.PropertyGroup
	err := c.run(ctx, func(ctx context.Context, token string) error {
		var opErr error
		out, opErr = c.api.GetPropertyGroup(ctx, token, guid)
		return opErr
	})
	return out, err
}

// Organisations lists the organisations registered on the portal.
func (c *Client) Organisations(ctx context.Context) ([]client.Organisation, error) {
	var out []client.Organisation
	err := c.run(ctx, func(ctx context.Context, token string) error {
		var opErr error
		out, opErr = c.api.Organisations(ctx, token)
		return opErr
	})
	return out, err
}

// MyOrganisations lists the organisations the logged-in user belongs to.
// This call requires credentials; the user id comes from the token claims.
func (c *Client) MyOrganisations(ctx context.Context) ([]client.Organisation, error) {
	var out []client.Organisation
	err := c.auth.Do(ctx, func(ctx context.Context, token string) error {
		userID, ok := c.auth.CurrentUserID()
		if !ok {
			return fmt.Errorf("access token carries no user id claim")
		}
		var opErr error
		out, opErr = c.api.OrganisationsOfUser(ctx, token, userID)
		return opErr
	})
	return out, err
}

// AIAFilters lists the filter groups of the AIA service.
func (c *Client) AIAFilters(ctx context.Context) ([]client.FilterGroup, error) {
	var out []client.FilterGroup
	err := c.run(ctx, func(ctx context.Context, token string) error {
		var opErr error
		out, opErr = c.api.AIAFilters(ctx, token)
		return opErr
	})
	return out, err
}

// PropertyFilters lists the filter groups of the merkmale service.
func (c *Client) PropertyFilters(ctx context.Context) ([]client.FilterGroup, error) {
	var out []client.FilterGroup
	err := c.run(ctx, func(ctx context.Context, token string) error {
		var opErr error
		out, opErr = c.api.PropertyFilters(ctx, token)
		return opErr
	})
	return out, err
}
