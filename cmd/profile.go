package cmd

import (
	"fmt"

	"github.com/bookerang/bookerang/internal/bookscmd"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update your profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := bookscmd.NewClient()
			if err != nil {
				return err
			}
			profile, err := client.Profile(cmd.Context())
			if err != nil {
				return err
			}

			out, err := yaml.Marshal(profile)
			if err != nil {
				return fmt.Errorf("failed to render profile: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.AddCommand(newProfileUpdateCmd())

	return cmd
}

func newProfileUpdateCmd() *cobra.Command {
	var phone string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update your phone number",
		Example: `  bookerang profile update --phone 555-0123`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := bookscmd.NewClient()
			if err != nil {
				return err
			}
			profile, err := client.UpdateProfile(cmd.Context(), phone)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile updated for %s.\n", profile.Username)
			return nil
		},
	}

	cmd.Flags().StringVar(&phone, "phone", "", "Phone number other members use to coordinate handoffs")

	return cmd
}
