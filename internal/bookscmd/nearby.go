package bookscmd

import (
	"fmt"

	"github.com/bookerang/bookerang/internal/books"
	"github.com/spf13/cobra"
)

// NewNearbyCmd creates the nearby command for browsing neighborhood books.
func NewNearbyCmd() *cobra.Command {
	var radius int
	var query string
	var availableOnly bool

	cmd := &cobra.Command{
		Use:   "nearby",
		Short: "List books offered near you",
		Long: `Lists the books neighbors are offering within the given radius.

The --query and --available-only flags narrow the fetched list locally,
without contacting the server again.`,
		Example: `  # Books within the default radius
  bookerang books nearby

  # Available Herbert books within 1km
  bookerang books nearby --radius 1000 --query herbert --available-only`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := NewClient()
			if err != nil {
				return err
			}
			if radius == 0 {
				radius = cfg.Radius
			}

			list, err := client.NearbyBooks(cmd.Context(), radius)
			if err != nil {
				return fmt.Errorf("failed to fetch nearby books: %w", err)
			}

			filters := books.SearchFilters{Query: query, ShowAvailableOnly: availableOnly}
			if filters.Active() {
				list = books.Filter(list, filters)
			}

			PrintBooks(cmd.OutOrStdout(), list)
			return nil
		},
	}

	cmd.Flags().IntVar(&radius, "radius", 0, "Search radius in meters (defaults to the configured radius)")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Filter by title or author, case-insensitive")
	cmd.Flags().BoolVar(&availableOnly, "available-only", false, "Only show books that are available")

	return cmd
}
