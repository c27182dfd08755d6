package stub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/fieldday-games/bingohunt/internal/middleware"
	"github.com/fieldday-games/bingohunt/internal/model"
)

var (
	errInvalidPhone = errors.New("phone number must be exactly 10 digits")
	errNameRequired = errors.New("name is required")
)

// errorBody is the wire error envelope
type errorBody struct {
	Error string `json:"error"`
}

// NewHandler builds the stub API's HTTP handler
func NewHandler(store *Store, logger *slog.Logger) http.Handler {
	h := &handlers{store: store}

	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.Recovery(logger, panicHandler))
	api.Use(middleware.Logging(logger))

	api.HandleFunc("/register/", h.register).Methods(http.MethodPost)
	api.HandleFunc("/player/{id}/", h.getPlayer).Methods(http.MethodGet)
	api.HandleFunc("/player/{id}/scans/", h.getPlayerScans).Methods(http.MethodGet)
	api.HandleFunc("/board/{id}/", h.getBoard).Methods(http.MethodGet)
	api.HandleFunc("/scan/", h.submitScan).Methods(http.MethodPost)
	api.HandleFunc("/game-state/", h.gameState).Methods(http.MethodGet)
	api.HandleFunc("/winners/", h.getWinners).Methods(http.MethodGet)
	api.HandleFunc("/tasks/", h.getTasks).Methods(http.MethodGet)

	return r
}

type handlers struct {
	store *Store
}

type registerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func (h *handlers) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid request body"})
		return
	}

	player, err := h.store.Register(req.Name, req.Phone)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, player)
}

func (h *handlers) getPlayer(w http.ResponseWriter, r *http.Request) {
	player, err := h.store.Player(pathPlayerID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, player)
}

func (h *handlers) getBoard(w http.ResponseWriter, r *http.Request) {
	board, err := h.store.Board(pathPlayerID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, board)
}

func (h *handlers) getPlayerScans(w http.ResponseWriter, r *http.Request) {
	scans, err := h.store.PlayerScans(pathPlayerID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	if scans == nil {
		scans = []model.ScanRecord{}
	}
	writeJSON(w, http.StatusOK, scans)
}

type scanRequest struct {
	ScannerID model.PlayerID `json:"scanner_id"`
	TargetID  model.PlayerID `json:"target_id"`
	TaskID    int            `json:"task_id"`
}

func (h *handlers) submitScan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid request body"})
		return
	}

	result, err := h.store.SubmitScan(req.ScannerID, req.TargetID, req.TaskID)
	if err != nil {
		writeError(w, err)
		return
	}
	if result.NewWins == nil {
		result.NewWins = []model.WinType{}
	}
	writeJSON(w, http.StatusCreated, result)
}

func (h *handlers) gameState(w http.ResponseWriter, r *http.Request) {
	status := h.store.Status()
	writeJSON(w, http.StatusOK, status)
}

func (h *handlers) getWinners(w http.ResponseWriter, r *http.Request) {
	winners := h.store.Winners()
	if winners == nil {
		winners = []model.Winner{}
	}
	writeJSON(w, http.StatusOK, winners)
}

func (h *handlers) getTasks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Tasks())
}

func pathPlayerID(r *http.Request) model.PlayerID {
	return model.PlayerID(mux.Vars(r)["id"])
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// writeError maps a store error to its wire status and envelope
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: "Player not found"})
	case errors.Is(err, model.ErrTaskNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: "Task not found on this board"})
	case errors.Is(err, model.ErrSelfScan):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "You cannot scan your own code"})
	case errors.Is(err, model.ErrDuplicateScan):
		writeJSON(w, http.StatusConflict, errorBody{Error: "This task has already been completed"})
	case errors.Is(err, model.ErrGameEnded):
		writeJSON(w, http.StatusForbidden, errorBody{Error: "The game has ended"})
	case errors.Is(err, errInvalidPhone):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Phone number must be exactly 10 digits"})
	case errors.Is(err, errNameRequired):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Name is required"})
	default:
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Internal server error"})
	}
}

func panicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Internal server error"})
}

// ServerConfig holds the stub server's listen configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DefaultServerConfig returns sensible listen defaults
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Port:            8000,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Server wraps the HTTP server with graceful shutdown
type Server struct {
	server *http.Server
	logger *slog.Logger
	config ServerConfig
}

// NewServer creates a stub API server
func NewServer(handler http.Handler, config ServerConfig, logger *slog.Logger) *Server {
	addr := fmt.Sprintf("%s:%d", config.Host, config.Port)
	return &Server{
		server: &http.Server{
			Addr:         addr,
			Handler:      handler,
			ReadTimeout:  config.ReadTimeout,
			WriteTimeout: config.WriteTimeout,
		},
		logger: logger,
		config: config,
	}
}

// Start begins listening for HTTP requests
func (s *Server) Start() error {
	s.logger.Info("starting stub game server", slog.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down stub game server")

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	return nil
}

// Addr returns the server's listen address
func (s *Server) Addr() string {
	return s.server.Addr
}
