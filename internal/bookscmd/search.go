package bookscmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewSearchCmd creates the search command backed by the server-side search
// endpoint.
func NewSearchCmd() *cobra.Command {
	var availableOnly bool

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search books on the server",
		Example: `  # Search by title or author
  bookerang books search dune

  # Only available copies
  bookerang books search dune --available-only`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) > 0 {
				query = args[0]
			}

			client, _, err := NewClient()
			if err != nil {
				return err
			}
			list, err := client.SearchBooks(cmd.Context(), query, availableOnly)
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}

			PrintBooks(cmd.OutOrStdout(), list)
			return nil
		},
	}

	cmd.Flags().BoolVar(&availableOnly, "available-only", false, "Only show books that are available")

	return cmd
}

// NewMineCmd creates the mine command listing the user's own books.
func NewMineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "List your own books",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := NewClient()
			if err != nil {
				return err
			}
			list, err := client.UserBooks(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to fetch your books: %w", err)
			}
			PrintBooks(cmd.OutOrStdout(), list)
			return nil
		},
	}
}
