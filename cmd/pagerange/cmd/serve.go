package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go-pagerange/internal/config"
	"go-pagerange/internal/server"

	"github.com/spf13/cobra"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Port = servePort
		}
		if verbose {
			cfg.LogLevel = "debug"
		}
		logger := cfg.NewLogger()

		srv, err := server.New(cfg, logger)
		if err != nil {
			return err
		}
		server.CleanDirs(cfg.UploadDir, cfg.OutputDir)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		go srv.RunJanitor(ctx)

		apiServer := srv.HTTPServer()
		errCh := make(chan error, 1)
		go func() {
			logger.WithField("addr", apiServer.Addr).Info("starting server")
			errCh <- apiServer.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := apiServer.Shutdown(shutdownCtx); err != nil {
				logger.WithError(err).Warn("server forced to shutdown")
			}
		}
		srv.Cleanup()
		logger.Info("server exiting")
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "listen port (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
