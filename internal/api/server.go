// Package api exposes parsed bureau reports over HTTP: upload XML for
// parsing and persistence, then list, fetch, delete and aggregate the
// stored reports.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"crediq/bureau-xml/internal/bureauparser"
	"crediq/bureau-xml/internal/parser"
	"crediq/bureau-xml/internal/store"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Server wires the parser and the report store behind an HTTP router.
type Server struct {
	parser parser.Parser
	store  *store.Store
	router *mux.Router
	http   *http.Server
}

// NewServer creates a server over the given store. A nil reportParser
// falls back to the default bureau parser.
func NewServer(reportStore *store.Store, reportParser parser.Parser) *Server {
	if reportParser == nil {
		reportParser = bureauparser.NewAdapter()
	}

	s := &Server{
		parser: reportParser,
		store:  reportStore,
		router: mux.NewRouter().StrictSlash(true),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(jsonContentTypeMiddleware)

	s.router.HandleFunc("/health", s.Health).Methods("GET")
	s.router.HandleFunc("/api/reports", s.UploadReport).Methods("POST")
	s.router.HandleFunc("/api/reports", s.ListReports).Methods("GET")
	s.router.HandleFunc("/api/reports/{id}", s.GetReport).Methods("GET")
	s.router.HandleFunc("/api/reports/{id}", s.DeleteReport).Methods("DELETE")
	s.router.HandleFunc("/api/stats", s.GetStats).Methods("GET")
}

// Router returns the underlying router, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// ListenAndServe starts the HTTP server on host:port and blocks until
// it stops.
func (s *Server) ListenAndServe(host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	s.http = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.WithField("addr", addr).Info("Starting HTTP server")
	return s.http.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func jsonContentTypeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}
