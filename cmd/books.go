package cmd

import (
	"github.com/bookerang/bookerang/internal/bookscmd"
	"github.com/spf13/cobra"
)

func newBooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "books",
		Short: "Browse, search, list, and borrow books",
	}

	cmd.AddCommand(bookscmd.NewNearbyCmd())
	cmd.AddCommand(bookscmd.NewSearchCmd())
	cmd.AddCommand(bookscmd.NewMineCmd())
	cmd.AddCommand(bookscmd.NewAddCmd())
	cmd.AddCommand(bookscmd.NewBorrowCmd())
	cmd.AddCommand(bookscmd.NewApproveCmd())
	cmd.AddCommand(bookscmd.NewRejectCmd())
	cmd.AddCommand(bookscmd.NewExportCmd())

	return cmd
}
