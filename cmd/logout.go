package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// logoutCmd creates a new cobra.Command for ending the portal session.
// A fresh process holds no cached token, so a session is opened first and
// then invalidated on the server.
func logoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "End the session with the BIM portal",
		Run: func(cmd *cobra.Command, args []string) {
			runLogout(cmd)
		},
	}

	return cmd
}

func runLogout(cmd *cobra.Command) {
	pc, _ := newPortalClient()

	if !pc.HasCredentials() {
		cmd.Println("No credentials are configured, so there is no session to end.")
		return
	}

	if err := pc.Login(cmd.Context()); err != nil {
		log.Error().Err(err).Msg("Logout failed.")
		cmd.PrintErrln("Error: Failed to open a session with the BIM portal. Please check your credentials.")
		return
	}

	if err := pc.Logout(cmd.Context()); err != nil {
		log.Error().Err(err).Msg("Logout failed.")
		cmd.PrintErrln("Error: Failed to log out from the BIM portal.")
		return
	}

	cmd.Println("Logged out from the BIM portal.")
}
