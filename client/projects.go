package client

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

const projectsPath = "/aia/api/v1/public/aiaProject"

// SearchProjects runs a filtered search over the public AIA projects.
// A nil request returns everything the caller may see.
func (c *Client) SearchProjects(ctx context.Context, token string, req *SearchRequest) ([]ProjectSummary, error) {
	if req == nil {
		req = &SearchRequest{}
	}
	var projects []ProjectSummary
	if err := c.postJSON(ctx, projectsPath, token, req, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// GetProject fetches the detail view of a single AIA project.
func (c *Client) GetProject(ctx context.Context, token string, guid uuid.UUID) (*Project, error) {
	var project Project
	if err := c.getJSON(ctx, fmt.Sprintf("%s/%s", projectsPath, guid), token, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// ExportProject downloads one rendition of an AIA project. All formats are
// available for projects.
func (c *Client) ExportProject(ctx context.Context, token string, guid uuid.UUID, format ExportFormat) ([]byte, error) {
	return c.getBytes(ctx, fmt.Sprintf("%s/%s/%s", projectsPath, guid, format), token)
}
