package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/charmbracelet/log"

	"rabbitcare/internal/game"
)

// Handler serves the save API. Every response uses the
// {success, data?, error?} envelope.
type Handler struct {
	store  *SaveStore
	clock  game.Clock
	logger *log.Logger
}

func NewHandler(store *SaveStore, clock game.Clock, logger *log.Logger) *Handler {
	if clock == nil {
		clock = game.RealClock{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Handler{store: store, clock: clock, logger: logger}
}

// Register mounts the save API routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/game/{id}", h.getState)
	mux.HandleFunc("POST /api/game/{id}", h.putState)
	mux.HandleFunc("DELETE /api/game/{id}", h.deleteState)
}

func (h *Handler) getState(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeErr(w, http.StatusBadRequest, "missing device id")
		return
	}

	st, err := h.store.Get(id, game.EpochMS(h.clock.Now()))
	if err != nil {
		h.logger.Error("get save failed", "id", id, "err", err)
		writeErr(w, http.StatusInternalServerError, "storage error")
		return
	}
	writeData(w, st)
}

func (h *Handler) putState(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeErr(w, http.StatusBadRequest, "missing device id")
		return
	}

	var st game.State
	if err := json.NewDecoder(r.Body).Decode(&st); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid state payload")
		return
	}

	nowMS := game.EpochMS(h.clock.Now())
	saved, err := h.store.Put(id, game.Normalize(st, nowMS), nowMS)
	if err != nil {
		h.logger.Error("put save failed", "id", id, "err", err)
		writeErr(w, http.StatusInternalServerError, "storage error")
		return
	}
	writeData(w, saved)
}

func (h *Handler) deleteState(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeErr(w, http.StatusBadRequest, "missing device id")
		return
	}

	if err := h.store.Delete(id); err != nil {
		h.logger.Error("delete save failed", "id", id, "err", err)
		writeErr(w, http.StatusInternalServerError, "storage error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func writeData(w http.ResponseWriter, v any) {
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": v})
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"success": false, "error": msg})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
