// Package main API.
//
// go-pagerange provides a REST API for page range selection and page actions
// (select, rotate, remove, stamp, merge) on uploaded PDF files.
//
//	Schemes: http
//	BasePath: /
//	Version: 1.0.0
//	Host: localhost:8080
//
//	Consumes:
//	- application/json
//	- multipart/form-data
//
//	Produces:
//	- application/json
//	- application/pdf
//
// swagger:meta
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-pagerange/internal/config"
	"go-pagerange/internal/server"

	"github.com/sirupsen/logrus"
)

func gracefulShutdown(apiServer *http.Server, logger *logrus.Logger, done chan bool, cleanupFunc func()) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Listen for the interrupt signal.
	<-ctx.Done()

	logger.Info("shutting down gracefully, press Ctrl+C again to force")

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctx); err != nil {
		logger.WithError(err).Warn("server forced to shutdown")
	}

	if cleanupFunc != nil {
		logger.Info("cleaning directories")
		cleanupFunc()
	}

	logger.Info("server exiting")

	// Notify the main goroutine that the shutdown is complete
	done <- true
}

func main() {
	// CONFIG_FILE names an optional TOML file; `pagerange serve --config`
	// takes it as a flag.
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	logger := cfg.NewLogger()

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to set up server")
	}
	// Leftovers from a previous run belong to no session.
	server.CleanDirs(cfg.UploadDir, cfg.OutputDir)

	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()
	go srv.RunJanitor(janitorCtx)

	apiServer := srv.HTTPServer()
	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, logger, done, srv.Cleanup)

	logger.WithField("addr", apiServer.Addr).Info("starting server")
	err = apiServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		panic(fmt.Sprintf("http server error: %s", err))
	}

	// Wait for the graceful shutdown to complete
	<-done
	logger.Info("graceful shutdown complete")
}
