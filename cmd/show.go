package cmd

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pb40development/bim-portal-sub001/auth"
	"github.com/pb40development/bim-portal-sub001/client"
	"github.com/pb40development/bim-portal-sub001/pkg/clierr"
	"github.com/pb40development/bim-portal-sub001/pkg/validation"
)

// showCmd creates a new cobra.Command for fetching one resource by its GUID.
func showCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [kind] [guid]",
		Short: "Show information about a single resource",
		Long: "Fetch one resource by its GUID; the kind is one of project, loin, domain_model, " +
			"context, template, property, or property_group",
		Args: cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			if err := showResource(cmd, args[0], args[1]); err != nil {
				printCommandError(cmd, err)
			}
		},
	}

	return cmd
}

func showResource(cmd *cobra.Command, kind, rawGUID string) error {
	if !isValidResourceKind(kind) {
		return clierr.New(clierr.Validation,
			"Unknown resource kind: "+kind+". Use one of: project, loin, domain_model, context, template, property, property_group.", nil)
	}

	guid, err := validation.ParseGUID(rawGUID)
	if err != nil {
		return clierr.New(clierr.Validation, "Invalid GUID: "+rawGUID, err)
	}

	pc, _ := newPortalClient()
	ctx := cmd.Context()

	switch kind {
	case "project":
		p, err := pc.GetProject(ctx, guid)
		if err != nil {
			return fetchError(kind, err)
		}
		printResourceInfo(cmd, "Project Information:", p.GUID, p.Name, p.Description, p.VersionNumber)
	case "loin":
		l, err := pc.GetLoin(ctx, guid)
		if err != nil {
			return fetchError(kind, err)
		}
		printResourceInfo(cmd, "LOIN Information:", l.GUID, l.Name, l.Description, l.VersionNumber)
	case "domain_model":
		m, err := pc.GetDomainModel(ctx, guid)
		if err != nil {
			return fetchError(kind, err)
		}
		printResourceInfo(cmd, "Domain Model Information:", m.GUID, m.Name, m.Description, m.VersionNumber)
	case "context":
		c, err := pc.GetContextInfo(ctx, guid)
		if err != nil {
			return fetchError(kind, err)
		}
		printResourceInfo(cmd, "Context Information:", c.GUID, c.Name, c.Description, c.VersionNumber)
	case "template":
		tpl, err := pc.GetTemplate(ctx, guid)
		if err != nil {
			return fetchError(kind, err)
		}
		printResourceInfo(cmd, "Template Information:", tpl.GUID, tpl.Name, tpl.Description, tpl.VersionNumber)
	case "property":
		p, err := pc.GetProperty(ctx, guid)
		if err != nil {
			return fetchError(kind, err)
		}
		printResourceInfo(cmd, "Property Information:", p.GUID, p.Name, p.Description, p.VersionNumber)
		if p.DataType != "" {
			cmd.Printf("Data type: %s\n", p.DataType)
		}
		if p.Category != "" {
			cmd.Printf("Category: %s\n", p.Category)
		}
		if p.OrganisationName != "" {
			cmd.Printf("Organisation: %s\n", p.OrganisationName)
		}
	case "property_group":
		g, err := pc.GetPropertyGroup(ctx, guid)
		if err != nil {
			return fetchError(kind, err)
		}
		printResourceInfo(cmd, "Property Group Information:", g.GUID, g.Name, g.Description, g.VersionNumber)
	}

	return nil
}

// printResourceInfo displays the fields shared by all resource detail views.
func printResourceInfo(cmd *cobra.Command, heading string, guid uuid.UUID, name, description string, version int) {
	cmd.Println(heading)
	cmd.Printf("GUID: %s\n", guid)
	cmd.Printf("Name: %s\n", name)
	if description != "" {
		cmd.Printf("Description: %s\n", strings.ReplaceAll(description, "\n", " "))
	}
	if version != 0 {
		cmd.Printf("Version: %d\n", version)
	}
}

// fetchError classifies a failed detail fetch for the command layer.
func fetchError(kind string, err error) error {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return clierr.New(clierr.NotFound, "No "+resourceKinds[kind]+" found with the specified GUID.", err)
	}
	var authErr *auth.AuthenticationError
	if errors.As(err, &authErr) {
		return clierr.New(clierr.Auth, "Authentication with the BIM portal failed. Please check your credentials.", err)
	}
	return clierr.New(clierr.Internal, "Failed to fetch the "+resourceKinds[kind]+" from the BIM portal.", err)
}
