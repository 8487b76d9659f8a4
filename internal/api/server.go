package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"encore/internal/config"
	"encore/internal/game"
	"encore/internal/store/memory"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// StateStore persists campaign snapshots between turns.
type StateStore interface {
	PutState(ctx context.Context, state game.GameState) error
	GetState(ctx context.Context, id string) (game.GameState, error)
}

type Server struct {
	cfg   config.Config
	log   *slog.Logger
	game  *game.Service
	state StateStore
	mux   *chi.Mux

	// One lock per campaign: a turn's reads and writes must not interleave
	// with another advance of the same game.
	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

func New(cfg config.Config, logger *slog.Logger, gameSvc *game.Service, state StateStore) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:   cfg,
		log:   logger,
		game:  gameSvc,
		state: state,
		mux:   chi.NewRouter(),
		locks: make(map[string]*sync.Mutex),
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	r := s.mux
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/games", s.handleCreateGame)
		r.Get("/games/{id}", s.handleGameState)
		r.Post("/games/{id}/artists", s.handleSignArtist)
		r.Post("/games/{id}/advance", s.handleAdvance)
		r.Post("/games/{id}/tour", s.handleTourPreview)
	})
}

func (s *Server) gameLock(id string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	mu, ok := s.locks[id]
	if !ok {
		mu = &sync.Mutex{}
		s.locks[id] = mu
	}
	return mu
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Seed int64 `json:"seed"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	state := s.game.NewGame(in.Seed)
	if err := s.state.PutState(r.Context(), state); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, state)
}

func (s *Server) handleGameState(w http.ResponseWriter, r *http.Request) {
	state, err := s.state.GetState(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleSignArtist(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	mu := s.gameLock(id)
	mu.Lock()
	defer mu.Unlock()

	state, err := s.state.GetState(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	var in game.Artist
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	next, artist, err := s.game.SignArtist(r.Context(), state, in)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := s.state.PutState(r.Context(), next); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"state": next, "artist": artist})
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	mu := s.gameLock(id)
	mu.Lock()
	defer mu.Unlock()

	state, err := s.state.GetState(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	var in struct {
		Actions []game.Action `json:"actions"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	next, summary, result, err := s.game.AdvanceTurn(r.Context(), state, in.Actions)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := s.state.PutState(r.Context(), next); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	out := map[string]any{"state": next, "summary": summary}
	if result != nil {
		out["result"] = result
	}
	writeJSON(w, http.StatusOK, out)
}

// handleTourPreview is a pure calculation: it books nothing and moves no
// money, it just prices a tour against the current campaign state.
func (s *Server) handleTourPreview(w http.ResponseWriter, r *http.Request) {
	state, err := s.state.GetState(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	var in struct {
		ArtistID        string `json:"artist_id"`
		VenueCapacity   int    `json:"venue_capacity"`
		Cities          int    `json:"cities"`
		MarketingBudget int64  `json:"marketing_budget"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	artist, err := s.game.Artist(r.Context(), in.ArtistID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	breakdown, err := s.game.TourBreakdown(game.TourInput{
		VenueTier:       state.VenueTier,
		VenueCapacity:   in.VenueCapacity,
		Cities:          in.Cities,
		MarketingBudget: in.MarketingBudget,
		Reputation:      state.Reputation,
		Popularity:      artist.Popularity,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, breakdown)
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrCampaignCompleted):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, game.ErrInsufficientFunds),
		errors.Is(err, game.ErrTierLocked),
		errors.Is(err, game.ErrIllegalCombination),
		errors.Is(err, game.ErrInvalidSongCount),
		errors.Is(err, game.ErrInvalidTourInput),
		errors.Is(err, game.ErrRosterFull):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, game.ErrArtistNotFound),
		errors.Is(err, game.ErrProjectNotFound),
		errors.Is(err, memory.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": strings.TrimSpace(message)})
}
