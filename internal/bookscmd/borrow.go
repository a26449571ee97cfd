package bookscmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewBorrowCmd creates the borrow command.
func NewBorrowCmd() *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "borrow BOOK_ID",
		Short: "Request to borrow a book",
		Example: `  # Borrow with the default message
  bookerang books borrow 42

  # Borrow with a personal note
  bookerang books borrow 42 --message "Back in two weeks, promise"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bookID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid book id %q", args[0])
			}

			client, _, err := NewClient()
			if err != nil {
				return err
			}
			if err := client.Borrow(cmd.Context(), bookID, message); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Borrow request sent.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "Message to send with the request")

	return cmd
}

// NewApproveCmd creates the approve command for pending borrow requests.
func NewApproveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "approve BOOK_ID",
		Short: "Approve a borrow request on one of your books",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return respondToRequest(cmd, args[0], "approve")
		},
	}
}

// NewRejectCmd creates the reject command for pending borrow requests.
func NewRejectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reject BOOK_ID",
		Short: "Reject a borrow request on one of your books",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return respondToRequest(cmd, args[0], "reject")
		},
	}
}

func respondToRequest(cmd *cobra.Command, rawID, action string) error {
	bookID, err := strconv.Atoi(rawID)
	if err != nil {
		return fmt.Errorf("invalid book id %q", rawID)
	}

	client, _, err := NewClient()
	if err != nil {
		return err
	}

	if action == "approve" {
		err = client.Approve(cmd.Context(), bookID)
	} else {
		err = client.Reject(cmd.Context(), bookID)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Request %sd.\n", action)
	return nil
}
