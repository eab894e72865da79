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

	"github.com/alyansheikhh/reportcard/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the report card HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}

		srv := api.NewServer(cfg.Class)
		s := &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           srv.Routes(cfg.CORSOrigins),
			ReadHeaderTimeout: 5 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			log.Printf("reportcard %s listening on %s (class %q, %s grading)",
				version, cfg.HTTPAddr, cfg.Class.ClassName, cfg.Class.Scheme)
			errCh <- s.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-ctx.Done():
		}

		log.Println("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides REPORTCARD_HTTP_ADDR, default :8080)")
}
