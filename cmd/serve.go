package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bookerang/bookerang/internal/bookscmd"
	"github.com/bookerang/bookerang/internal/handlers"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the local web interface",
		Long: `Starts the Bookerang web interface on the specified port.

The web interface proxies the Bookerang server: browse and search nearby
books, request borrows, respond to requests on your own books, and add a
listing with a photo.`,
		Example: `  # Start server on default port 8888
  bookerang serve

  # Start server on custom port
  bookerang serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := bookscmd.NewClient()
			if err != nil {
				return err
			}
			handler := handlers.New(client)

			// Set up routes
			mux := http.NewServeMux()
			mux.HandleFunc("/api/login", handler.HandleLogin)
			mux.HandleFunc("/api/logout", handler.HandleLogout)
			mux.HandleFunc("/api/profile", handler.HandleProfile)
			mux.HandleFunc("/api/books", handler.HandleBooks)
			mux.HandleFunc("/api/books/add", handler.HandleAddBook)
			mux.HandleFunc("/api/books/", handler.HandleBookAction)
			mux.HandleFunc("/api/books/mine", handler.HandleMyBooks)
			mux.HandleFunc("/api/search", handler.HandleSearch)
			mux.HandleFunc("/api/capture", handler.HandleCaptureSessions)
			mux.HandleFunc("/api/capture/", handler.HandleCaptureDetail)
			mux.HandleFunc("/", handler.HandleStatic)
			mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
				if _, err := w.Write([]byte("OK")); err != nil {
					slog.Error("Unable to write healthcheck", "err", err)
				}
			})

			addr := ":" + port
			server := &http.Server{
				Addr:    addr,
				Handler: mux,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Bookerang interface available", "addr", addr, "url", "http://localhost"+addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8888", "Port to listen on")

	return cmd
}
