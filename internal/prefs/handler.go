package prefs

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/inamate/inamate/editor-go/internal/auth"
	"github.com/inamate/inamate/editor-go/internal/toolbar"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts the handlers under r, which must already require auth.
func (h *Handler) Routes(r *mux.Router) {
	r.HandleFunc("/prefs/toolbar", h.Get).Methods("GET")
	r.HandleFunc("/prefs/toolbar", h.Patch).Methods("PATCH")
	r.HandleFunc("/prefs/toolbar", h.Reset).Methods("DELETE")
	r.HandleFunc("/prefs/toolbar/{profile}", h.GetProfile).Methods("GET")
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.service.Toolbar(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		h.internalError(w, "get toolbar prefs", err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.service.Toolbar(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		h.internalError(w, "get toolbar prefs", err)
		return
	}

	switch mux.Vars(r)["profile"] {
	case "desktop":
		writeJSON(w, http.StatusOK, cfg.Desktop)
	case "mobile":
		writeJSON(w, http.StatusOK, cfg.Mobile)
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown profile"})
	}
}

func (h *Handler) Patch(w http.ResponseWriter, r *http.Request) {
	var patch toolbar.ConfigPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	cfg, err := h.service.Update(r.Context(), auth.UserIDFromContext(r.Context()), patch)
	if err != nil {
		if errors.Is(err, ErrInvalidProfile) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		h.internalError(w, "update toolbar prefs", err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.service.Reset(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		h.internalError(w, "reset toolbar prefs", err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (h *Handler) internalError(w http.ResponseWriter, msg string, err error) {
	h.service.logger.Error(msg, "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
