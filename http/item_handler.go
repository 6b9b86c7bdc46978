package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"recycle-sorter/domain"
	"recycle-sorter/service"
)

const maxBodyBytes = 1 << 16

type ItemHandler struct {
	service *service.SortingService
	logger  *slog.Logger
}

func NewItemHandler(service *service.SortingService, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{service: service, logger: logger}
}

// Items serves /items: POST classifies, GET lists, DELETE clears.
func (h *ItemHandler) Items(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.ClassifyItem(w, r)
	case http.MethodGet:
		h.ListItems(w, r)
	case http.MethodDelete:
		h.ResetItems(w, r)
	default:
		w.Header().Set("Allow", "GET, POST, DELETE")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *ItemHandler) ClassifyItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	contentType := r.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
		return
	}

	var input domain.ClassifyInput
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&input); err != nil {
		h.logger.Debug("decoding request body", "error", err)
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, h.logger, http.StatusBadRequest, domain.InvalidInputMessage)
			return
		}
		writeError(w, h.logger, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.service.Classify(r.Context(), input)
	if errors.Is(err, domain.ErrInvalidInput) {
		writeError(w, h.logger, http.StatusBadRequest, domain.InvalidInputMessage)
		return
	}
	if err != nil {
		h.logger.Error("classifying item", "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, h.logger, http.StatusCreated, entry)
}

func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("listing items", "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, entries)
}

func (h *ItemHandler) ResetItems(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Reset(r.Context()); err != nil {
		h.logger.Error("resetting items", "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "internal server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
