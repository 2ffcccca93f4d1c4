package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pb40development/bim-portal-sub001/config"
	"github.com/pb40development/bim-portal-sub001/pkg/clierr"
	"github.com/pb40development/bim-portal-sub001/portal"
)

// resourceKinds maps the resource kind names accepted on the command line to
// a human readable label used in messages. The first five kinds have export
// renditions on the portal, properties and property groups do not.
var resourceKinds = map[string]string{
	"project":        "AIA project",
	"loin":           "level of information need",
	"domain_model":   "domain specific model",
	"context":        "context information document",
	"template":       "AIA template",
	"property":       "property",
	"property_group": "property group",
}

// isValidResourceKind checks if a given resource kind is known. Kind names
// are case-sensitive, matching the portal's own vocabulary.
func isValidResourceKind(kind string) bool {
	_, ok := resourceKinds[kind]
	return ok
}

// newPortalClient builds a portal client from the resolved configuration.
func newPortalClient() (*portal.Client, config.Config) {
	cfg := config.Load()
	return portal.New(cfg), cfg
}

// summaryRow is one line of a result table, regardless of the resource kind.
type summaryRow struct {
	guid        string
	name        string
	description string
}

// renderSummaryTable prints search results as a table on the command's
// output stream.
func renderSummaryTable(cmd *cobra.Command, rows []summaryRow) {
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"Row ID", "GUID", "Name", "Description"})

	// Table appearance settings
	table.SetColMinWidth(2, 40)                      // Set minimum width for the Name column
	table.SetAlignment(tablewriter.ALIGN_LEFT)       // Align all columns to the left
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT) // Align headers to the left
	table.SetAutoWrapText(false)                     // Disable text wrapping in all columns
	table.SetRowLine(false)                          // Disable row line breaks

	for i, row := range rows {
		// Clean the text fields to remove line breaks that would break the table layout
		name := strings.ReplaceAll(row.name, "\n", " ")
		description := strings.ReplaceAll(row.description, "\n", " ")
		table.Append([]string{
			fmt.Sprintf("%d", i+1), // Row ID
			row.guid,               // GUID
			name,                   // Name
			truncate(description, 80),
		})
	}

	table.Render()
}

// truncate shortens s to at most n runes, appending an ellipsis when cut.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// formatBytes renders a byte count in a human readable form using binary units.
func formatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%ciB", float64(b)/float64(div), "KMGTPE"[exp])
}

// printCommandError shows a classified error to the user and logs the cause.
func printCommandError(cmd *cobra.Command, err error) {
	var cliErr *clierr.Error
	if errors.As(err, &cliErr) {
		log.Error().Err(cliErr.Err).Str("type", string(cliErr.Type)).Msg(cliErr.Message)
		cmd.PrintErrln("Error:", cliErr.Message)
		return
	}
	log.Error().Err(err).Msg("Command failed.")
	cmd.PrintErrln("Error:", err)
}
