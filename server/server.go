package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"tictactoe/agent"
	"tictactoe/engine"
	"tictactoe/game"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

const maxBody = 4 * 1024

// Server answers move requests from a trained agent. Lookups materialise
// table entries, so the agent is guarded by a mutex.
type Server struct {
	mu     sync.Mutex
	agent  *agent.Agent
	logger zerolog.Logger
}

// New puts the agent in inference mode and wraps it.
func New(a *agent.Agent, logger zerolog.Logger) *Server {
	a.SetTraining(false)
	return &Server{agent: a, logger: logger}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	r.Get("/healthz", s.handleHealth)
	r.Get("/stats", s.handleStats)
	r.Post("/move", s.handleMove)
	return r
}

type moveRequest struct {
	Board []int `json:"board"`
}

type moveResponse struct {
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Player string `json:"player"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	stats := s.agent.Stats()
	s.mu.Unlock()
	s.writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var payload moveRequest
	defer r.Body.Close()
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(&payload); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	state, err := parseBoard(payload.Board)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	board := game.BoardFromState(state)
	if outcome := board.Outcome(); outcome.Terminal() {
		s.writeError(w, http.StatusConflict, fmt.Sprintf("game is over: %s", outcome))
		return
	}

	mark := board.ToMove()
	s.mu.Lock()
	action, err := engine.NewAgentPlayer(s.agent, mark).Move(state, board.LegalActions())
	s.mu.Unlock()
	if errors.Is(err, engine.ErrNoAction) {
		s.writeError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, moveResponse{Row: action.Row, Col: action.Col, Player: mark.String()})
}

// parseBoard accepts 9 cells of -1, 0 or 1 that could arise from legal play.
func parseBoard(cells []int) (game.State, error) {
	var state game.State
	if len(cells) != len(state) {
		return state, fmt.Errorf("board must have %d cells, got %d", len(state), len(cells))
	}
	balance := 0
	for i, c := range cells {
		if c < -1 || c > 1 {
			return state, fmt.Errorf("cell %d has invalid value %d", i, c)
		}
		state[i] = game.Mark(c)
		balance += c
	}
	if balance != 0 && balance != 1 {
		return state, errors.New("board is not reachable: X moves first and players alternate")
	}
	return state, nil
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info().
			Str("method", r.Method).
			Str("url", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request completed")
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
