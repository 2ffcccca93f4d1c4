package client

import "github.com/google/uuid"

// LoginRequest carries the credentials sent to the login endpoint.
type LoginRequest struct {
	Mail     string `json:"mail"`
	Password string `json:"password"`
}

// RefreshRequest trades a long-lived refresh token for a fresh token pair.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// TokenResponse is returned by both the login and the refresh-token endpoint.
// ValidTill is informational; the authoritative expiry lives in the JWT
// exp claim.
type TokenResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	ValidTill    string `json:"validTill,omitempty"`
}

// SearchRequest narrows a search endpoint to entries matching the search
// string. The property endpoints reject an empty search string.
type SearchRequest struct {
	SearchString string `json:"searchString,omitempty"`
}

// Organisation contains information about an organisation registered on the
// portal.
type Organisation struct {
	GUID        uuid.UUID `json:"guid"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
}

// ProjectSummary is one row of an AIA project search result.
type ProjectSummary struct {
	GUID        uuid.UUID `json:"guid"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
}

// Project holds the full detail view of an AIA project.
type Project struct {
	GUID          uuid.UUID `json:"guid"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	VersionNumber int       `json:"versionNumber,omitempty"`
}

// LoinSummary is one row of a LOIN search result.
type LoinSummary struct {
	GUID        uuid.UUID `json:"guid"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
}

// Loin holds the full detail view of a level of information need.
type Loin struct {
	GUID          uuid.UUID `json:"guid"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	VersionNumber int       `json:"versionNumber,omitempty"`
}

// DomainModelSummary is one row of a domain specific model search result.
type DomainModelSummary struct {
	GUID        uuid.UUID `json:"guid"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
}

// DomainModel holds the full detail view of a domain specific model.
type DomainModel struct {
	GUID          uuid.UUID `json:"guid"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	VersionNumber int       `json:"versionNumber,omitempty"`
}

// ContextInfoSummary is one row of a context information search result.
type ContextInfoSummary struct {
	GUID        uuid.UUID `json:"guid"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
}

// ContextInfo holds the full detail view of a context information document.
type ContextInfo struct {
	GUID          uuid.UUID `json:"guid"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	VersionNumber int       `json:"versionNumber,omitempty"`
}

// TemplateSummary is one row of an AIA template search result.
type TemplateSummary struct {
	GUID        uuid.UUID `json:"guid"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
}

// Template holds the full detail view of an AIA template.
type Template struct {
	GUID          uuid.UUID `json:"guid"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	VersionNumber int       `json:"versionNumber,omitempty"`
}

// PropertySummary is one row of a property or property group search result.
// Both search endpoints answer with the same shape.
type PropertySummary struct {
	GUID        uuid.UUID `json:"guid"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	DataType    string    `json:"dataType,omitempty"`
	Category    string    `json:"category,omitempty"`
}

// Property holds the full detail view of a single property.
type Property struct {
	GUID             uuid.UUID `json:"guid"`
	Name             string    `json:"name"`
	Description      string    `json:"description,omitempty"`
	DataType         string    `json:"dataType,omitempty"`
	Category         string    `json:"category,omitempty"`
	OrganisationName string    `json:"organisationName,omitempty"`
	VersionNumber    int       `json:"versionNumber,omitempty"`
}

// PropertyGroup holds the full detail view of a property group.
type PropertyGroup struct {
	GUID          uuid.UUID `json:"guid"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	VersionNumber int       `json:"versionNumber,omitempty"`
}

// Filter is one selectable value inside a filter group.
type Filter struct {
	GUID uuid.UUID `json:"guid"`
	Name string    `json:"name"`
}

// FilterGroup bundles related search filters, for example organisations or
// project phases. The wire field holding the contained filters is singular.
type FilterGroup struct {
	GUID   uuid.UUID `json:"guid"`
	Name   string    `json:"name"`
	Filter []Filter  `json:"filter,omitempty"`
}
