package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Dan9191/simulador-financeiro/internal/middleware"
	"github.com/Dan9191/simulador-financeiro/internal/models"
	"github.com/Dan9191/simulador-financeiro/internal/validator"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Simulator is the calculation behind POST /simulacao
type Simulator interface {
	Simulate(ctx context.Context, req models.SimulationRequest) (models.SimulationResult, error)
}

type Handler struct {
	svc Simulator
	log *logrus.Logger
}

func NewHandler(svc Simulator, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Router wires the simulation API routes
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(h.log))
	r.Use(middleware.CORS)
	r.HandleFunc("/simulacao", h.Simulate).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)
	return r
}

// Simulate handles a financing simulation request
func (h *Handler) Simulate(w http.ResponseWriter, r *http.Request) {
	var req models.SimulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid request body"})
		return
	}

	result, err := h.svc.Simulate(r.Context(), req)
	if err != nil {
		var fieldErrs validator.FieldErrors
		if errors.As(err, &fieldErrs) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"detail": fieldErrs})
			return
		}
		h.log.Errorf("Simulation failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Health reports liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
