package client

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

const templatesPath = "/aia/api/v1/public/aiaTemplate"

// SearchTemplates runs a filtered search over the public AIA templates.
func (c *Client) SearchTemplates(ctx context.Context, token string, req *SearchRequest) ([]TemplateSummary, error) {
	if req == nil {
		req = &SearchRequest{}
	}
	var templates []TemplateSummary
	if err := c.postJSON(ctx, templatesPath, token, req, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

// GetTemplate fetches the detail view of a single AIA template.
func (c *Client) GetTemplate(ctx context.Context, token string, guid uuid.UUID) (*Template, error) {
	var template Template
	if err := c.getJSON(ctx, fmt.Sprintf("%s/%s", templatesPath, guid), token, &template); err != nil {
		return nil, err
	}
	return &template, nil
}

// ExportTemplate downloads one rendition of an AIA template. Only PDF and
// OpenOffice are offered here.
func (c *Client) ExportTemplate(ctx context.Context, token string, guid uuid.UUID, format ExportFormat) ([]byte, error) {
	return c.getBytes(ctx, fmt.Sprintf("%s/%s/%s", templatesPath, guid, format), token)
}
