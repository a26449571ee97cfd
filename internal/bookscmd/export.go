package bookscmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bookerang/bookerang/internal/books"
	"github.com/bookerang/bookerang/internal/export"
	"github.com/spf13/cobra"
)

// NewExportCmd creates the export command for snapshotting a book list to
// disk.
func NewExportCmd() *cobra.Command {
	var radius int
	var mine bool
	var coversDir string

	cmd := &cobra.Command{
		Use:   "export OUTPUT",
		Short: "Export a book list to a parquet or JSONL file",
		Long: `Fetches a book list and writes it to the given file. The format is
chosen by extension: .parquet or .jsonl.

With --covers, each book's cover image is downloaded alongside the list,
named by book id. Placeholder covers are skipped.`,
		Example: `  # Snapshot nearby books to parquet
  bookerang books export nearby.parquet

  # Snapshot your own books with their covers
  bookerang books export mine.jsonl --mine --covers covers/`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := NewClient()
			if err != nil {
				return err
			}
			if radius == 0 {
				radius = cfg.Radius
			}

			var list []books.Book
			if mine {
				list, err = client.UserBooks(cmd.Context())
			} else {
				list, err = client.NearbyBooks(cmd.Context(), radius)
			}
			if err != nil {
				return fmt.Errorf("failed to fetch books: %w", err)
			}

			if err := export.Save(args[0], list); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d books to %s\n", len(list), args[0])

			if coversDir == "" {
				return nil
			}
			if err := os.MkdirAll(coversDir, 0755); err != nil {
				return fmt.Errorf("failed to create covers directory: %w", err)
			}
			saved := 0
			for _, b := range list {
				if !b.HasCover() {
					continue
				}
				data, err := client.DownloadCover(cmd.Context(), b.Cover)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Skipping cover for book %d: %v\n", b.ID, err)
					continue
				}
				name := filepath.Join(coversDir, strconv.Itoa(b.ID)+".jpg")
				if err := os.WriteFile(name, data, 0644); err != nil {
					return fmt.Errorf("failed to write cover: %w", err)
				}
				saved++
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %d covers to %s\n", saved, coversDir)
			return nil
		},
	}

	cmd.Flags().IntVar(&radius, "radius", 0, "Search radius in meters (defaults to the configured radius)")
	cmd.Flags().BoolVar(&mine, "mine", false, "Export your own books instead of nearby books")
	cmd.Flags().StringVar(&coversDir, "covers", "", "Directory to download cover images into")

	return cmd
}
