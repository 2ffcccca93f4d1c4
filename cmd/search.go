package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pb40development/bim-portal-sub001/client"
)

// searchCmd creates a new cobra.Command for searching the portal.
func searchCmd() *cobra.Command {
	var searchTerm string

	cmd := &cobra.Command{
		Use:   "search [kind]",
		Short: "Search the BIM portal for resources",
		Long: "Search the BIM portal for resources of one kind: project, loin, domain_model, " +
			"context, template, property, or property_group",
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			searchResources(cmd, args[0], searchTerm)
		},
	}

	// Define the flag for the command
	cmd.Flags().StringVarP(&searchTerm, "term", "t", "", "Search term to filter by; an empty term lists everything visible")

	return cmd
}

func searchResources(cmd *cobra.Command, kind, term string) {
	if !isValidResourceKind(kind) {
		cmd.PrintErrln("Error: Unknown resource kind. Use one of: project, loin, domain_model, context, template, property, property_group.")
		return
	}

	log.Info().Msgf("Searching the portal for kind=%s term=%q", kind, term)

	pc, _ := newPortalClient()
	ctx := cmd.Context()

	var rows []summaryRow
	var err error

	switch kind {
	case "project":
		var summaries []client.ProjectSummary
		summaries, err = pc.SearchProjects(ctx, term)
		for _, s := range summaries {
			rows = append(rows, summaryRow{s.GUID.String(), s.Name, s.Description})
		}
	case "loin":
		var summaries []client.LoinSummary
		summaries, err = pc.SearchLoins(ctx, term)
		for _, s := range summaries {
			rows = append(rows, summaryRow{s.GUID.String(), s.Name, s.Description})
		}
	case "domain_model":
		var summaries []client.DomainModelSummary
		summaries, err = pc.SearchDomainModels(ctx, term)
		for _, s := range summaries {
			rows = append(rows, summaryRow{s.GUID.String(), s.Name, s.Description})
		}
	case "context":
		var summaries []client.ContextInfoSummary
		summaries, err = pc.SearchContextInfo(ctx, term)
		for _, s := range summaries {
			rows = append(rows, summaryRow{s.GUID.String(), s.Name, s.Description})
		}
	case "template":
		var summaries []client.TemplateSummary
		summaries, err = pc.SearchTemplates(ctx, term)
		for _, s := range summaries {
			rows = append(rows, summaryRow{s.GUID.String(), s.Name, s.Description})
		}
	case "property":
		var summaries []client.PropertySummary
		summaries, err = pc.SearchProperties(ctx, term)
		for _, s := range summaries {
			rows = append(rows, summaryRow{s.GUID.String(), s.Name, s.Description})
		}
	case "property_group":
		var summaries []client.PropertySummary
		summaries, err = pc.SearchPropertyGroups(ctx, term)
		for _, s := range summaries {
			rows = append(rows, summaryRow{s.GUID.String(), s.Name, s.Description})
		}
	}

	if err != nil {
		log.Error().Err(err).Msgf("Failed to search the portal for kind=%s", kind)
		cmd.PrintErrln("Error: Failed to search the BIM portal. Please check the logs for details.")
		return
	}

	if len(rows) == 0 {
		cmd.Println("No resources found matching the search criteria.")
		return
	}

	renderSummaryTable(cmd, rows)

	log.Info().Msgf("Found %d result(s) for kind=%s.", len(rows), kind)
}
