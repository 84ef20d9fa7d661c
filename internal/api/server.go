package api

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MJE43/war-sim-go/internal/preset"
	"github.com/MJE43/war-sim-go/internal/sim"
	"github.com/MJE43/war-sim-go/internal/store"
)

// Server handles HTTP requests for the simulation engine.
type Server struct {
	db      store.DB
	sim     *sim.Simulator
	presets []preset.Preset
	logger  *log.Logger
}

// NewServer creates a new API server. db may be nil, in which case batches
// are not persisted and the batch endpoints report not found.
func NewServer(db store.DB) *Server {
	return &Server{
		db:      db,
		sim:     sim.NewSimulator(),
		presets: preset.Builtin(),
		logger:  log.New(os.Stderr, "", log.LstdFlags),
	}
}

// Routes sets up the HTTP routes.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	r.Use(middleware.Timeout(5 * time.Minute))
	r.Use(middleware.Heartbeat("/health"))

	// Routes
	r.Post("/simulate", s.handleSimulate)
	r.Post("/game", s.handleGame)
	r.Get("/variants", s.handleVariants)
	r.Get("/presets", s.handlePresets)
	r.Get("/batches", s.handleListBatches)
	r.Get("/batches/{id}", s.handleGetBatch)
	r.Get("/batches/{id}/lengths", s.handleGetLengths)

	return r
}

// writeJSON writes a JSON response.
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes a structured error response.
func (s *Server) writeError(w http.ResponseWriter, status int, errType, message string, details map[string]any) {
	s.writeJSON(w, status, ErrorResponse{
		Type:    errType,
		Message: message,
		Details: details,
	})
}
