package handler

import (
	"log/slog"
	"net/http"

	"github.com/skillswap/skillswap/internal/auth"
	"github.com/skillswap/skillswap/internal/handler/dto"
	"github.com/skillswap/skillswap/internal/service"
)

// TagHandler handles HTTP requests for tag operations.
type TagHandler struct {
	svc    *service.TagService
	logger *slog.Logger
}

// NewTagHandler creates a new TagHandler.
func NewTagHandler(svc *service.TagService, logger *slog.Logger) *TagHandler {
	return &TagHandler{svc: svc, logger: logger}
}

// List handles GET /tag.
func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	tags, err := h.svc.List(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, tags)
}

// Get handles GET /tag/{id}.
func (h *TagHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeInvalidID(w)
		return
	}

	tag, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, tag)
}

// Create handles POST /tag.
func (h *TagHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.TagRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	tag, err := h.svc.Create(r.Context(), auth.IdentityFromContext(r.Context()), service.TagInput{Title: req.Title})
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, tag)
}

// FindOrCreate handles POST /tag/find-or-create.
func (h *TagHandler) FindOrCreate(w http.ResponseWriter, r *http.Request) {
	var req dto.TagRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	tag, created, err := h.svc.FindOrCreate(r.Context(), auth.IdentityFromContext(r.Context()), service.TagInput{Title: req.Title})
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.FindOrCreateTagResponse{Tag: tag, Created: created})
}

// Update handles PUT /tag/{id}.
func (h *TagHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeInvalidID(w)
		return
	}

	var req dto.TagRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	tag, err := h.svc.Update(r.Context(), auth.IdentityFromContext(r.Context()), id, service.TagInput{Title: req.Title})
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, tag)
}

// Delete handles DELETE /tag/{id}.
func (h *TagHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeInvalidID(w)
		return
	}

	if err := h.svc.Delete(r.Context(), auth.IdentityFromContext(r.Context()), id); err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
