package bookscmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bookerang/bookerang/internal/capture"
	"github.com/spf13/cobra"
)

// NewAddCmd creates the add command for listing a book, optionally with a
// photo taken through the capture flow.
func NewAddCmd() *cobra.Command {
	var title, author, photoPath, cameraPath string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "List one of your books",
		Long: `Lists a book so neighbors can find and borrow it.

A photo can be attached either from a file with --photo, or interactively
with --camera, which reads frames from the given image source and lets you
retake until you are happy with the shot.`,
		Example: `  # List a book with an existing photo
  bookerang books add --title Dune --author "Frank Herbert" --photo dune.jpg

  # Photograph the book as part of listing it
  bookerang books add --title Dune --author "Frank Herbert" --camera /dev/video0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if title == "" {
				return fmt.Errorf("--title is required")
			}
			if author == "" {
				return fmt.Errorf("--author is required")
			}
			if photoPath != "" && cameraPath != "" {
				return fmt.Errorf("--photo and --camera are mutually exclusive")
			}

			var photo []byte
			var photoName string
			var err error
			switch {
			case photoPath != "":
				photo, err = os.ReadFile(photoPath)
				if err != nil {
					return fmt.Errorf("failed to read photo: %w", err)
				}
				photoName = filepath.Base(photoPath)
			case cameraPath != "":
				photo, err = capturePhoto(cmd, cameraPath)
				if err != nil {
					return err
				}
				photoName = "book-photo.jpg"
			}

			client, _, err := NewClient()
			if err != nil {
				return err
			}
			book, err := client.AddBook(cmd.Context(), title, author, photo, photoName)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %q by %s (id %d)\n", book.Title, book.Author, book.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Book title (required)")
	cmd.Flags().StringVar(&author, "author", "", "Book author (required)")
	cmd.Flags().StringVar(&photoPath, "photo", "", "Path to a photo of the book")
	cmd.Flags().StringVar(&cameraPath, "camera", "", "Image source to photograph the book with")

	return cmd
}

// capturePhoto runs the interactive photograph loop: grab a frame, show what
// was captured, and let the user retake or confirm.
func capturePhoto(cmd *cobra.Command, source string) ([]byte, error) {
	machine := capture.NewMachine(capture.NewFileDevice(source), nil)
	defer machine.Close()

	reader := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	if err := machine.Start(cmd.Context()); err != nil {
		return nil, fmt.Errorf("%s: %w", capture.Message(err), err)
	}

	for {
		if err := machine.Capture(); err != nil {
			return nil, err
		}
		fmt.Fprintf(out, "Captured a %d byte photo. Keep it? [y/n/q] ", len(machine.Still()))

		answer, err := reader.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("failed to read answer: %w", err)
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			payload, err := machine.Confirm()
			if err != nil {
				return nil, err
			}
			return payload, nil
		case "n", "no":
			if err := machine.Retake(cmd.Context()); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("capture cancelled")
		}
	}
}
