package client

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

const contextInfoPath = "/aia/api/v1/public/contextInfo"

// SearchContextInfo runs a filtered search over the public context
// information documents.
func (c *Client) SearchContextInfo(ctx context.Context, token string, req *SearchRequest) ([]ContextInfoSummary, error) {
	if req == nil {
		req = &SearchRequest{}
	}
	var infos []ContextInfoSummary
	if err := c.postJSON(ctx, contextInfoPath, token, req, &infos); err != nil {
		return nil, err
	}
	return infos, nil
}

// GetContextInfo fetches the detail view of a single context information
// document.
func (c *Client) GetContextInfo(ctx context.Context, token string, guid uuid.UUID) (*ContextInfo, error) {
	var info ContextInfo
	if err := c.getJSON(ctx, fmt.Sprintf("%s/%s", contextInfoPath, guid), token, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// ExportContextInfo downloads one rendition of a context information
// document. Only PDF and OpenOffice are offered here.
func (c *Client) ExportContextInfo(ctx context.Context, token string, guid uuid.UUID, format ExportFormat) ([]byte, error) {
	return c.getBytes(ctx, fmt.Sprintf("%s/%s/%s", contextInfoPath, guid, format), token)
}
