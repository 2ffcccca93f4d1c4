package client

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

const loinsPath = "/aia/api/v1/public/loin"

// SearchLoins runs a filtered search over the public levels of information
// need.
func (c *Client) SearchLoins(ctx context.Context, token string, req *SearchRequest) ([]LoinSummary, error) {
	if req == nil {
		req = &SearchRequest{}
	}
	var loins []LoinSummary
	if err := c.postJSON(ctx, loinsPath, token, req, &loins); err != nil {
		return nil, err
	}
	return loins, nil
}

// GetLoin fetches the detail view of a single LOIN.
func (c *Client) GetLoin(ctx context.Context, token string, guid uuid.UUID) (*Loin, error) {
	var loin Loin
	if err := c.getJSON(ctx, fmt.Sprintf("%s/%s", loinsPath, guid), token, &loin); err != nil {
		return nil, err
	}
	return &loin, nil
}

// ExportLoin downloads one rendition of a LOIN. All formats are available
// for LOINs.
func (c *Client) ExportLoin(ctx context.Context, token string, guid uuid.UUID, format ExportFormat) ([]byte, error) {
	return c.getBytes(ctx, fmt.Sprintf("%s/%s/%s", loinsPath, guid, format), token)
}
