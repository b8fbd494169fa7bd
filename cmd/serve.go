package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"tictactoe/config"
	"tictactoe/game"
	"tictactoe/server"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve moves from the trained agent over HTTP",
	Long: `Starts an HTTP server backed by the trained model.

  POST /move    {"board":[0,1,-1,...]} answers {"row":r,"col":c,"player":"X"}
                for the side to move
  GET  /stats   table statistics
  GET  /healthz liveness`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", config.Default().Addr, "HTTP listen address")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := loadAgent(cfg.ModelPath, game.X, newRand(resolveSeed()))
	if err != nil {
		return err
	}

	h := server.New(a, log.Logger)
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           h.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr).Msg("move server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
		close(errs)
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	<-errs
	log.Info().Msg("move server stopped")
	return nil
}
