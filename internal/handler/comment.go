package handler

import (
	"log/slog"
	"net/http"

	"github.com/skillswap/skillswap/internal/auth"
	"github.com/skillswap/skillswap/internal/handler/dto"
	"github.com/skillswap/skillswap/internal/repository"
	"github.com/skillswap/skillswap/internal/service"
)

// CommentHandler handles HTTP requests for comment operations.
type CommentHandler struct {
	svc    *service.CommentService
	logger *slog.Logger
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(svc *service.CommentService, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{svc: svc, logger: logger}
}

// List handles GET /comment.
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	skillID, err := positiveQueryInt(q, "skill_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_QUERY", err.Error())
		return
	}
	ownerID, err := positiveQueryInt(q, "user_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_QUERY", err.Error())
		return
	}

	comments, err := h.svc.List(r.Context(), repository.CommentFilter{SkillID: skillID, OwnerID: ownerID})
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, comments)
}

// Get handles GET /comment/{id}.
func (h *CommentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeInvalidID(w)
		return
	}

	comment, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, comment)
}

// Create handles POST /comment.
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCommentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	comment, err := h.svc.Create(r.Context(), auth.IdentityFromContext(r.Context()), service.CreateCommentInput{
		Message: req.Message,
		SkillID: req.SkillID,
	})
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	h.logger.Info("comment_created", "comment_id", comment.ID, "skill_id", comment.SkillID, "user_id", auth.UserIDFromContext(r.Context()))

	writeJSON(w, http.StatusCreated, comment)
}

// Update handles PUT /comment/{id}.
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeInvalidID(w)
		return
	}

	var req dto.UpdateCommentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	comment, err := h.svc.Update(r.Context(), auth.IdentityFromContext(r.Context()), id, service.UpdateCommentInput{
		Message: req.Message,
	})
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, comment)
}

// Delete handles DELETE /comment/{id}.
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeInvalidID(w)
		return
	}

	if err := h.svc.Delete(r.Context(), auth.IdentityFromContext(r.Context()), id); err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	h.logger.Info("comment_deleted", "comment_id", id, "user_id", auth.UserIDFromContext(r.Context()))

	w.WriteHeader(http.StatusNoContent)
}
