package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/a01110946/extraction-validation-engine/internal/aci"
	"github.com/a01110946/extraction-validation-engine/internal/config"
	"github.com/a01110946/extraction-validation-engine/internal/server"
	"github.com/a01110946/extraction-validation-engine/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the validation and geometry HTTP API",
	Long: `Start the HTTP API exposing validation, geometry generation and
extraction persistence.

Configuration comes from the environment (a .env file is honored):
  API_HOST, API_PORT            listen address (default 0.0.0.0:8000)
  DATABASE_PATH                 SQLite file (default extractions.db)
  DEFAULT_COLUMN_HEIGHT_MM      visualization height (default 3000)
  DEFAULT_EXPOSURE              ACI exposure condition`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	exposure, err := aci.ParseExposure(cfg.DefaultExposure)
	if err != nil {
		return err
	}

	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer st.Close()

	srv := &http.Server{
		Addr:    cfg.ListenAddr(),
		Handler: server.New(st, cfg.DefaultColumnHeightMM, exposure).Handler(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s (db: %s)", cfg.ListenAddr(), cfg.DatabasePath)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		log.Print("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}

	return nil
}
