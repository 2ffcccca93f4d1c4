package client

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

const (
	propertiesPath     = "/merkmale/api/v1/public/property"
	propertyGroupsPath = "/merkmale/api/v1/public/propertygroup"
)

// SearchProperties runs a filtered search over the public properties.
// The endpoint rejects an empty search string, so callers must set one.
func (c *Client) SearchProperties(ctx context.Context, token string, req *SearchRequest) ([]PropertySummary, error) {
	if req == nil {
		req = &SearchRequest{}
	}
	var properties []PropertySummary
	if err := c.postJSON(ctx, propertiesPath, token, req, &properties); err != nil {
		return nil, err
	}
	return properties, nil
}

// GetProperty fetches the detail view of a single property.
func (c *Client) GetProperty(ctx context.Context, token string, guid uuid.UUID) (*Property, error) {
	var property Property
	if err := c.getJSON(ctx, fmt.Sprintf("%s/%s", propertiesPath, guid), token, &property); err != nil {
		return nil, err
	}
	return &property, nil
}

// SearchPropertyGroups runs a filtered search over the public property
// groups. Like the property search, an empty search string is rejected.
func (c *Client) SearchPropertyGroups(ctx context.Context, token string, req *SearchRequest) ([]PropertySummary, error) {
	if req == nil {
		req = &SearchRequest{}
	}
	var groups []PropertySummary
	if err := c.postJSON(ctx, propertyGroupsPath, token, req, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// GetPropertyGroup fetches the detail view of a single property group.
func (c *Client) GetPropertyGroup(ctx context.Context, token string, guid uuid.UUID) (*PropertyGroup, error) {
	var group PropertyGroup
	if err := c.getJSON(ctx, fmt.Sprintf("%s/%s", propertyGroupsPath, guid), token, &group); err != nil {
		return nil, err
	}
	return &group, nil
}
