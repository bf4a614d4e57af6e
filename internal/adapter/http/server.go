package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/couchcryptid/user-locations/internal/domain"
	"github.com/couchcryptid/user-locations/internal/render"
	"github.com/couchcryptid/user-locations/internal/view"
)

// ViewState is the view the server renders and mutates.
type ViewState interface {
	Snapshot() view.Page
	Search(query string) view.Page
	Sort(field domain.Field) (view.Page, error)
}

// Server serves the locations page, its JSON rendition, and health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	view       ViewState
	logger     *slog.Logger
}

// NewServer creates an HTTP server. allowedOrigins configures CORS for the /api routes.
func NewServer(addr string, v ViewState, ready sharedobs.ReadinessChecker, allowedOrigins []string, logger *slog.Logger) *Server {
	router := mux.NewRouter()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      router,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		view:   v,
		logger: logger,
	}

	router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	router.HandleFunc("/sort/{field}", s.handleSortForm).Methods(http.MethodPost)

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
	api := router.PathPrefix("/api").Subrouter()
	api.Use(c.Handler)
	api.HandleFunc("/locations", s.handleLocations).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/sort/{field}", s.handleSortAPI).Methods(http.MethodPost, http.MethodOptions)

	router.HandleFunc("/healthz", sharedobs.LivenessHandler()).Methods(http.MethodGet)
	router.HandleFunc("/readyz", sharedobs.ReadinessHandler(ready)).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// handleIndex renders the page. A q parameter, even an empty one, replaces the search query first.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page := s.pageFor(r)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.HTML(w, page); err != nil {
		s.logger.Error("render page failed", "error", err)
	}
}

func (s *Server) handleSortForm(w http.ResponseWriter, r *http.Request) {
	if _, err := s.view.Sort(domain.Field(mux.Vars(r)["field"])); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleLocations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.pageFor(r))
}

func (s *Server) handleSortAPI(w http.ResponseWriter, r *http.Request) {
	page, err := s.view.Sort(domain.Field(mux.Vars(r)["field"]))
	if errors.Is(err, domain.ErrUnknownField) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) pageFor(r *http.Request) view.Page {
	if q := r.URL.Query(); q.Has("q") {
		return s.view.Search(q.Get("q"))
	}
	return s.view.Snapshot()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
