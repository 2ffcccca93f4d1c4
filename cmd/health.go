package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// healthCmd creates a new cobra.Command that checks whether the portal is
// reachable and whether the configured credentials work. The process exits
// with code 1 when the portal is unreachable or configured credentials are
// rejected.
func healthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check the connection to the BIM portal",
		Run: func(cmd *cobra.Command, args []string) {
			pc, _ := newPortalClient()

			health := pc.HealthCheck(cmd.Context())
			cmd.Println(health.String())

			if !health.Reachable {
				os.Exit(1)
			}
			if !health.AuthOK && pc.HasCredentials() {
				os.Exit(1)
			}
		},
	}

	return cmd
}
