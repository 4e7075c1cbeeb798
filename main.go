package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"lounge-inventory/app"
	"lounge-inventory/db"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.Fatal(err)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lounge-inventory",
		Short: "Automated restock service for the airport lounge",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			loadEnv()
		},
		// Running the bare binary serves, like the subcommand.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}

	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newSeedCommand())
	return cmd
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and the evaluation scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the schema and insert the reference stocklist",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := db.InitDB(); err != nil {
				return err
			}
			defer db.CloseDB()

			ctx := context.Background()
			if err := db.Migrate(ctx); err != nil {
				return err
			}
			return db.Seed(ctx)
		},
	}
}

// loadEnv loads .env in development (ignores error if file doesn't exist).
// In production, variables should be set directly.
func loadEnv() {
	if os.Getenv("ENV") == "production" {
		return
	}
	if err := godotenv.Overload(".env"); err != nil {
		log.Printf("Warning: .env file not found, using system environment variables")
	} else {
		log.Printf("Loaded environment variables from .env (overriding system variables)")
	}
}

func runServe() error {
	scheduler, err := app.Initialize()
	if err != nil {
		return err
	}
	defer db.CloseDB()

	// Listen on 0.0.0.0 to accept connections from all interfaces
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	// Remove leading colon if present
	if len(port) > 0 && port[0] == ':' {
		port = port[1:]
	}
	server := &http.Server{Addr: "0.0.0.0:" + port}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		scheduler.Stop()
		return err
	case <-ctx.Done():
	}

	log.Printf("Shutting down")
	scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
