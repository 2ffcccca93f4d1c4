package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pb40development/bim-portal-sub001/config"
	"github.com/pb40development/bim-portal-sub001/portal"
)

// loginCmd creates a new cobra.Command for opening a session with the portal.
// It returns a pointer to the created cobra.Command.
func loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the BIM portal",
		Long:  "Log in to the BIM portal using the configured credentials, prompting for them if none are set",
		Run: func(cmd *cobra.Command, args []string) {
			runLogin(cmd)
		},
	}

	return cmd
}

func runLogin(cmd *cobra.Command) {
	cfg := config.Load()

	if !cfg.HasCredentials() {
		cmd.Println("Please enter the mail address and password of your BIM portal account.")
		cfg.Username = promptForInput("Mail address: ")
		cfg.Password = promptForPassword("Password: ")
	}

	if !validateCredentials(cfg.Username, cfg.Password) {
		cmd.PrintErrln("Error: Mail address and password cannot be empty.")
		return
	}

	pc := portal.New(cfg)
	if err := pc.Login(cmd.Context()); err != nil {
		log.Error().Err(err).Msg("Login failed.")
		cmd.PrintErrln("Error: Failed to log in to the BIM portal. Please check your credentials and try again.")
		return
	}

	cmd.Println("Login was successful.")
	if userID, ok := pc.CurrentUserID(); ok {
		cmd.Printf("Logged in with user ID %s.\n", userID)
	}
}

// promptForInput prompts the user for input and returns the trimmed string.
// It takes a prompt string as an argument.
func promptForInput(prompt string) string {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print(prompt)
	input, err := reader.ReadString('\n')
	if err != nil {
		fmt.Println("Error: Failed to read input.")
		os.Exit(1)
	}
	return strings.TrimSpace(input)
}

// promptForPassword prompts the user for a password securely and returns the trimmed string.
// It takes a prompt string as an argument.
func promptForPassword(prompt string) string {
	fmt.Print(prompt)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		fmt.Println("Error: Failed to read password.")
		os.Exit(1)
	}
	fmt.Println() // Print a newline for better formatting
	return strings.TrimSpace(string(password))
}

// validateCredentials checks if the username and password are not empty.
// It takes the username and password strings as arguments and returns a boolean.
func validateCredentials(username, password string) bool {
	return username != "" && password != ""
}
