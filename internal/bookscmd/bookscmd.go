// Package bookscmd holds the book-facing CLI subcommands.
package bookscmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/bookerang/bookerang/internal/api"
	"github.com/bookerang/bookerang/internal/books"
	"github.com/bookerang/bookerang/internal/config"
	"github.com/bookerang/bookerang/internal/session"
)

// NewClient builds an API client from the effective configuration and the
// stored session.
func NewClient() (*api.Client, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, config.Config{}, err
	}

	sessionPath := cfg.SessionFile
	if sessionPath == "" {
		sessionPath, err = session.DefaultPath()
		if err != nil {
			return nil, config.Config{}, err
		}
	}

	client := api.NewClient(cfg.APIBaseURL, session.New(sessionPath), cfg.CacheTTL)
	return client, cfg, nil
}

// PrintBooks renders a book list as an aligned table.
func PrintBooks(w io.Writer, list []books.Book) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No books found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tAUTHOR\tOWNER\tDISTANCE\tSTATUS")
	for _, b := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			b.ID, b.Title, b.Author, b.OwnerName, b.Distance, b.DisplayState())
	}
	tw.Flush()
}
