package client

import "context"

const (
	aiaFiltersPath      = "/aia/api/v1/public/filter"
	propertyFiltersPath = "/merkmale/api/v1/public/filter"
)

// AIAFilters lists the filter groups usable with the AIA search endpoints.
func (c *Client) AIAFilters(ctx context.Context, token string) ([]FilterGroup, error) {
	var groups []FilterGroup
	if err := c.getJSON(ctx, aiaFiltersPath, token, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// PropertyFilters lists the filter groups usable with the property search
// endpoints.
func (c *Client) PropertyFilters(ctx context.Context, token string) ([]FilterGroup, error) {
	var groups []FilterGroup
	if err := c.getJSON(ctx, propertyFiltersPath, token, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}
