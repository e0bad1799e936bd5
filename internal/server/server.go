// Package server exposes the reconciled match data over a JSON HTTP API.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Volkonik97/esport-arena-tracker/internal/domain"
	"github.com/Volkonik97/esport-arena-tracker/internal/reconcile"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// MatchProvider is what the handlers need from the match service.
type MatchProvider interface {
	Overview(ctx context.Context) (reconcile.Buckets, error)
	FullSchedule(ctx context.Context) (reconcile.Buckets, error)
	TournamentMatches(ctx context.Context, humanName string) (reconcile.Buckets, error)
}

// TournamentProvider is what the handlers need from the tournament service.
type TournamentProvider interface {
	Active(ctx context.Context) ([]domain.Tournament, error)
	Standings(ctx context.Context, humanName string) ([]domain.Standing, error)
}

type Server struct {
	matches     MatchProvider
	tournaments TournamentProvider
	logger      zerolog.Logger
}

func New(matches MatchProvider, tournaments TournamentProvider, logger zerolog.Logger) *Server {
	return &Server{matches: matches, tournaments: tournaments, logger: logger}
}

func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()
	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	api.HandleFunc("/matches", s.handleMatches).Methods(http.MethodGet)
	api.HandleFunc("/schedule", s.handleSchedule).Methods(http.MethodGet)
	api.HandleFunc("/tournaments", s.handleTournaments).Methods(http.MethodGet)
	api.HandleFunc("/tournaments/{name}/matches", s.handleTournamentMatches).Methods(http.MethodGet)
	api.HandleFunc("/tournaments/{name}/standings", s.handleStandings).Methods(http.MethodGet)
	return router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().Unix(),
	})
}

func (s *Server) handleMatches(w http.ResponseWriter, r *http.Request) {
	buckets, err := s.matches.Overview(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, buckets)
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	buckets, err := s.matches.FullSchedule(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, buckets)
}

func (s *Server) handleTournaments(w http.ResponseWriter, r *http.Request) {
	tournaments, err := s.tournaments.Active(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"tournaments": tournaments})
}

// An unresolvable competition name is a normal miss: the response is 200
// with empty buckets, never an error.
func (s *Server) handleTournamentMatches(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	buckets, err := s.matches.TournamentMatches(r.Context(), name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, buckets)
}

func (s *Server) handleStandings(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	standings, err := s.tournaments.Standings(r.Context(), name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"standings": standings})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	s.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}
