package client

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

const domainModelsPath = "/aia/api/v1/public/domainSpecificModel"

// SearchDomainModels runs a filtered search over the public domain specific
// models.
func (c *Client) SearchDomainModels(ctx context.Context, token string, req *SearchRequest) ([]DomainModelSummary, error) {
	if req == nil {
		req = &SearchRequest{}
	}
	var models []DomainModelSummary
	if err := c.postJSON(ctx, domainModelsPath, token, req, &models); err != nil {
		return nil, err
	}
	return models, nil
}

// GetDomainModel fetches the detail view of a single domain specific model.
func (c *Client) GetDomainModel(ctx context.Context, token string, guid uuid.UUID) (*DomainModel, error) {
	var model DomainModel
	if err := c.getJSON(ctx, fmt.Sprintf("%s/%s", domainModelsPath, guid), token, &model); err != nil {
		return nil, err
	}
	return &model, nil
}

// ExportDomainModel downloads one rendition of a domain specific model. All
// formats are available for domain models.
func (c *Client) ExportDomainModel(ctx context.Context, token string, guid uuid.UUID, format ExportFormat) ([]byte, error) {
	return c.getBytes(ctx, fmt.Sprintf("%s/%s/%s", domainModelsPath, guid, format), token)
}
