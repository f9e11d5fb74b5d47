package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/playgrid/playgrid/game/service"
	"github.com/playgrid/playgrid/player"
	"github.com/playgrid/playgrid/transport/websocket"
)

// Server represents the HTTP surface: the REST projections and the WebSocket
// entry point.
type Server struct {
	service     service.GameService
	store       *player.Store
	leaderboard *player.Aggregator
	hub         *websocket.Hub
	ws          *websocket.Handler
	router      *mux.Router
}

// NewServer creates a new API server.
func NewServer(
	gameService service.GameService,
	store *player.Store,
	leaderboard *player.Aggregator,
	hub *websocket.Hub,
	ws *websocket.Handler,
) *Server {
	s := &Server{
		service:     gameService,
		store:       store,
		leaderboard: leaderboard,
		hub:         hub,
		ws:          ws,
		router:      mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	// Accounts
	api.HandleFunc("/register", s.handleRegister).Methods("POST")
	api.HandleFunc("/login", s.handleLogin).Methods("POST")

	// Read-only session projections
	api.HandleFunc("/sessions", s.handleListSessions).Methods("GET")

	// Public projections
	s.router.HandleFunc("/leaderboard", s.handleLeaderboard).Methods("GET")
	s.router.HandleFunc("/stats", s.handleStats).Methods("GET")
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")

	// WebSocket
	s.router.HandleFunc("/ws", s.ws.ServeWS)

	// Static files (if needed)
	s.router.PathPrefix("/").Handler(http.FileServer(http.Dir("./static/")))
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// Account Handlers

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email,omitempty"`
}

func (c *credentials) validate() string {
	c.Username = strings.TrimSpace(c.Username)
	if c.Username == "" {
		return "username is required"
	}
	if len(c.Password) < 4 {
		return "password must be at least 4 characters"
	}
	return ""
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	record, err := s.store.Register(r.Context(), req.Username, req.Password, req.Email)
	if err != nil {
		if errors.Is(err, player.ErrUsernameTaken) {
			respondError(w, http.StatusConflict, "username already taken")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// New accounts appear on the leaderboard right away.
	if err := s.leaderboard.Republish(r.Context()); err != nil {
		log.Printf("Failed to republish leaderboard after registration: %v", err)
	}

	respondJSON(w, http.StatusCreated, record)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, err := s.store.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, player.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	record, err := s.store.Get(r.Context(), req.Username)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"token":  token,
		"player": record,
	})
}

// Projection Handlers

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions := s.service.Sessions(r.Context())

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(sessions),
		"sessions": sessions,
	})
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	top, err := s.leaderboard.Snapshot(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"leaderboard": top,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	players, err := s.store.CountPlayers(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	games, err := s.store.CountGames(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"players":         players,
		"games":           games,
		"active_sessions": len(s.service.Sessions(r.Context())),
		"online":          s.hub.ClientCount(),
	})
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
