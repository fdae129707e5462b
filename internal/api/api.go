// Package api exposes the scenario catalog and session manager over REST.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/salesdojo/salesdojo/internal/catalog"
	"github.com/salesdojo/salesdojo/internal/models"
	"github.com/salesdojo/salesdojo/internal/session"
)

// Server provides the REST API handlers.
type Server struct {
	catalog  catalog.Catalog
	sessions *session.Manager
	log      *slog.Logger
}

// NewServer creates a new API server.
func NewServer(cat catalog.Catalog, mgr *session.Manager, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		catalog:  cat,
		sessions: mgr,
		log:      log,
	}
}

// Router returns an http.Handler for the API routes.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/scenarios", s.listScenarios)
	mux.HandleFunc("GET /api/v1/scenarios/{id}", s.getScenario)

	mux.HandleFunc("POST /api/v1/sessions/start", s.startSession)
	mux.HandleFunc("GET /api/v1/sessions", s.listSessions)
	mux.HandleFunc("GET /api/v1/sessions/{id}", s.getSession)
	mux.HandleFunc("POST /api/v1/sessions/{id}/message", s.postMessage)
	mux.HandleFunc("POST /api/v1/sessions/{id}/end", s.endSession)

	return corsMiddleware(mux)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeSessionError maps session manager errors to HTTP statuses. Lookup
// misses are 404, ending twice is 409, responder failures are upstream
// errors.
func (s *Server) writeSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrSessionNotFound), errors.Is(err, session.ErrScenarioNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, session.ErrSessionEnded):
		writeError(w, http.StatusConflict, err.Error())
	default:
		s.log.Error("session operation failed", "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
	}
}

// --- Scenarios ---

func (s *Server) listScenarios(w http.ResponseWriter, r *http.Request) {
	scenarios, err := s.catalog.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, scenarios)
}

func (s *Server) getScenario(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	sc, err := s.catalog.Get(r.Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Scenario not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sc)
}

// --- Sessions ---

type startRequest struct {
	ScenarioID string `json:"scenarioId"`
}

type startResponse struct {
	SessionID      string           `json:"sessionId"`
	Scenario       *models.Scenario `json:"scenario"`
	InitialContext initialContext   `json:"initialContext"`
}

type initialContext struct {
	ProspectName string      `json:"prospectName"`
	ProspectRole string      `json:"prospectRole"`
	Company      string      `json:"company"`
	Mood         models.Mood `json:"mood"`
}

func (s *Server) startSession(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.ScenarioID == "" {
		writeError(w, http.StatusBadRequest, "scenarioId is required")
		return
	}

	state, err := s.sessions.Start(r.Context(), req.ScenarioID)
	if err != nil {
		s.writeSessionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, startResponse{
		SessionID: state.SessionID,
		Scenario:  state.Scenario,
		InitialContext: initialContext{
			ProspectName: state.Scenario.ProspectName,
			ProspectRole: state.Scenario.ProspectRole,
			Company:      state.Scenario.Company,
			Mood:         state.Mood,
		},
	})
}

func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sessions.List())
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	state, err := s.sessions.Get(id)
	if err != nil {
		s.writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

type messageRequest struct {
	Message string `json:"message"`
}

type messageResponse struct {
	ProspectResponse string       `json:"prospectResponse"`
	Phase            models.Phase `json:"phase"`
	Mood             models.Mood  `json:"mood"`
	KeyTopics        []string     `json:"keyTopics"`
}

func (s *Server) postMessage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	result, err := s.sessions.Turn(r.Context(), id, req.Message)
	if err != nil {
		s.writeSessionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{
		ProspectResponse: result.Reply,
		Phase:            result.State.Phase,
		Mood:             result.State.Mood,
		KeyTopics:        result.State.Topics,
	})
}

func (s *Server) endSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	summary, err := s.sessions.End(r.Context(), id)
	if err != nil {
		s.writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
