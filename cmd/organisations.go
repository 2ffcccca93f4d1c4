package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pb40development/bim-portal-sub001/client"
)

// organisationsCmd creates a new cobra.Command for listing organisations.
func organisationsCmd() *cobra.Command {
	var onlyMine bool

	cmd := &cobra.Command{
		Use:   "organisations",
		Short: "List organisations registered on the BIM portal",
		Run: func(cmd *cobra.Command, args []string) {
			listOrganisations(cmd, onlyMine)
		},
	}

	// Define the flag for the command
	cmd.Flags().BoolVarP(&onlyMine, "mine", "m", false, "List only the organisations the logged-in user belongs to")

	return cmd
}

func listOrganisations(cmd *cobra.Command, onlyMine bool) {
	pc, _ := newPortalClient()
	ctx := cmd.Context()

	var organisations []client.Organisation
	var err error
	if onlyMine {
		organisations, err = pc.MyOrganisations(ctx)
	} else {
		organisations, err = pc.Organisations(ctx)
	}
	if err != nil {
		log.Error().Err(err).Msg("Failed to list organisations.")
		if onlyMine {
			cmd.PrintErrln("Error: Failed to list your organisations. Make sure credentials are configured and valid.")
		} else {
			cmd.PrintErrln("Error: Failed to list organisations. Please check the logs for details.")
		}
		return
	}

	if len(organisations) == 0 {
		cmd.Println("No organisations found.")
		return
	}

	rows := make([]summaryRow, 0, len(organisations))
	for _, org := range organisations {
		rows = append(rows, summaryRow{org.GUID.String(), org.Name, org.Description})
	}
	renderSummaryTable(cmd, rows)

	log.Info().Msgf("Listed %d organisation(s).", len(organisations))
}
