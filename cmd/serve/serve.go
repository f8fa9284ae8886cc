// Package serve starts the HTTP API over the report store
package serve

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crediq/bureau-xml/cmd/root"
	"crediq/bureau-xml/internal/api"
	"crediq/bureau-xml/internal/banknames"
	"crediq/bureau-xml/internal/bureauparser"
	"crediq/bureau-xml/internal/config"
	"crediq/bureau-xml/internal/store"

	"github.com/spf13/cobra"
)

var (
	host    string
	port    int
	dataDir string
)

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve parsed reports over an HTTP API",
	Long: `Start an HTTP server that accepts bureau report XML uploads, parses
them and persists the results in a local SQLite store.

Endpoints:
  POST   /api/reports       upload and parse a report
  GET    /api/reports       list stored reports (limit/offset)
  GET    /api/reports/{id}  fetch one stored report
  DELETE /api/reports/{id}  delete a stored report
  GET    /api/stats         aggregate statistics
  GET    /health            liveness check

Example:
  bureau-xml serve --port 8080`,
	Run: serveFunc,
}

func init() {
	Cmd.Flags().StringVar(&host, "host", "", "Host to bind (overrides config)")
	Cmd.Flags().IntVar(&port, "port", 0, "Port to listen on (overrides config)")
	Cmd.Flags().StringVar(&dataDir, "data-dir", "", "Data directory for the report store (overrides config)")
}

func serveFunc(cmd *cobra.Command, args []string) {
	cfg, err := config.InitializeConfig()
	if err != nil {
		root.Log.Fatalf("Error loading configuration: %v", err)
	}

	if host == "" {
		host = cfg.Server.Host
	}
	if port == 0 {
		port = cfg.Server.Port
	}
	if dataDir == "" {
		dataDir = cfg.Data.Directory
	}

	reportStore, err := store.New(dataDir)
	if err != nil {
		root.Log.Fatalf("Error opening report store: %v", err)
	}
	defer func() {
		if err := reportStore.Close(); err != nil {
			root.Log.Warnf("Error closing report store: %v", err)
		}
	}()

	bankStore := banknames.NewStore(cfg.BankNames.File)
	if err := bankStore.Load(); err != nil {
		root.Log.Warnf("Error loading bank name mappings: %v", err)
	}

	server := api.NewServer(reportStore, &bureauparser.Adapter{BankNames: bankStore})

	// Serve in the background so we can catch shutdown signals.
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe(host, port)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			root.Log.Fatalf("HTTP server error: %v", err)
		}
	case sig := <-sigCh:
		root.Log.Infof("Received signal %v, shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			root.Log.Warnf("Error during shutdown: %v", err)
		}
	}
}
