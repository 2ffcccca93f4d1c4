package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pb40development/bim-portal-sub001/client"
)

// filtersCmd creates a new cobra.Command for listing the portal's search filters.
func filtersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filters [area]",
		Short: "List the search filters of the BIM portal",
		Long:  "List the filter groups for one area of the portal: aia or properties",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			listFilters(cmd, args[0])
		},
	}

	return cmd
}

func listFilters(cmd *cobra.Command, area string) {
	pc, _ := newPortalClient()
	ctx := cmd.Context()

	var groups []client.FilterGroup
	var err error
	switch area {
	case "aia":
		groups, err = pc.AIAFilters(ctx)
	case "properties":
		groups, err = pc.PropertyFilters(ctx)
	default:
		cmd.PrintErrln("Error: Unknown filter area. Use one of: aia, properties.")
		return
	}
	if err != nil {
		log.Error().Err(err).Msgf("Failed to list the %s filters.", area)
		cmd.PrintErrln("Error: Failed to list the filters. Please check the logs for details.")
		return
	}

	if len(groups) == 0 {
		cmd.Println("No filters found.")
		return
	}

	for _, group := range groups {
		cmd.Printf("%s (%s)\n", group.Name, group.GUID)
		for _, filter := range group.Filter {
			cmd.Printf("  - %s (%s)\n", filter.Name, filter.GUID)
		}
	}
}
