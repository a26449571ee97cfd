package cmd

import (
	"fmt"

	"github.com/bookerang/bookerang/internal/bookscmd"
	"github.com/spf13/cobra"
)

func newSignupCmd() *cobra.Command {
	var username, firstName, lastName string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a Bookerang account",
		Example: `  # Create an account, then sign in with login
  bookerang signup --username frank --first-name Frank --last-name Herbert`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" {
				return fmt.Errorf("--username is required")
			}

			password, err := readPassword(cmd, "Password: ")
			if err != nil {
				return err
			}
			confirm, err := readPassword(cmd, "Confirm password: ")
			if err != nil {
				return err
			}
			if password != confirm {
				return fmt.Errorf("passwords do not match")
			}

			client, _, err := bookscmd.NewClient()
			if err != nil {
				return err
			}
			if err := client.Signup(cmd.Context(), username, password, firstName, lastName); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Account created. Sign in with: bookerang login")
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Username for the new account (required)")
	cmd.Flags().StringVar(&firstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "Last name")

	return cmd
}
