package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/codekitchen/internal/api"
	"github.com/abhisek/codekitchen/internal/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the game as a JSON API for a web front-end",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		d, err := openDeps(cfg, logStdout)
		if err != nil {
			return err
		}
		defer d.Close()
		logger := d.logger

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// Nobody renders a celebration here; drain acknowledgments so the
		// controller never drops one.
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case ack := <-d.ctrl.Acknowledgements():
					logger.Debug("acknowledgment delivered",
						"session_id", ack.Handle, "challenge_id", ack.ChallengeID, "next_id", ack.NextID)
				}
			}
		}()

		srv := &http.Server{
			Addr:         cfg.Addr,
			Handler:      api.NewServer(d.ctrl, d.store.EventRepo(), cfg.AllowedOrigins, logger).Router(),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  120 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Info("server listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("listen: %w", err)
			}
		case <-ctx.Done():
		}
		stop()

		logger.Info("shutting down gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		logger.Info("server stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides "+config.EnvAddr+")")
}
