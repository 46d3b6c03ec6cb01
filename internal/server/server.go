// Package server wires the chi router, middleware stack, and HTTP lifecycle
// for the artwork tracker API.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/veleda/arttrack/internal/database"
	"github.com/veleda/arttrack/internal/handler"
	"github.com/veleda/arttrack/internal/logger"
	"github.com/veleda/arttrack/internal/metrics"
	"github.com/veleda/arttrack/internal/repository"
	"github.com/veleda/arttrack/internal/sync"
)

type Server struct {
	httpServer *http.Server
}

// NewServer builds the router and returns a ready-to-start server
func NewServer(port int, apiKey string, dbPool database.Pool, creators repository.Creator, items repository.Item, syncService sync.Service) *Server {
	r := chi.NewRouter()

	// Middleware executes in the order registered, outermost first
	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.MetricsMiddleware)
	r.Use(loggingMiddleware)

	// Health and observability routes, unversioned
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/creators", func(r chi.Router) {
			r.Get("/", handler.HandleListCreators(creators))
			r.Post("/", handler.HandleAddCreator(creators))
			r.Delete("/", handler.HandleDeleteCreator(creators))
			r.Get("/get", handler.HandleGetCreator(creators))
		})

		r.Route("/items", func(r chi.Router) {
			r.Get("/", handler.HandleListItems(items))
			r.Post("/seen", handler.HandleMarkItemSeen(items))
			r.Post("/seen-all", handler.HandleMarkAllSeen(items))
			r.Post("/favorite", handler.HandleToggleFavorite(items))
			r.Get("/new-count", handler.HandleCountNew(items))
		})

		r.Route("/sync", func(r chi.Router) {
			r.Post("/check", handler.HandleCheckForUpdates(syncService))
			r.Post("/scrape", handler.HandleScrapeFull(syncService))
			r.Post("/scrape-incremental", handler.HandleScrapeIncremental(syncService))
			r.Post("/all", handler.HandleScrapeAll(syncService))
			r.Post("/reconcile", handler.HandleReconcileFollowing(syncService))
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Handler exposes the router, used by tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Health and metrics endpoints would drown the log
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		ctx := logger.WithRequestID(r.Context(), logger.GenerateRequestID())
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}
