package handler

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/skillswap/skillswap/internal/auth"
	"github.com/skillswap/skillswap/internal/handler/dto"
	"github.com/skillswap/skillswap/internal/model"
	"github.com/skillswap/skillswap/internal/repository"
	"github.com/skillswap/skillswap/internal/service"
)

// SkillHandler handles HTTP requests for skill operations.
type SkillHandler struct {
	svc    *service.SkillService
	logger *slog.Logger
}

// NewSkillHandler creates a new SkillHandler.
func NewSkillHandler(svc *service.SkillService, logger *slog.Logger) *SkillHandler {
	return &SkillHandler{svc: svc, logger: logger}
}

// List handles GET /skill.
func (h *SkillHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseSkillFilter(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_QUERY", err.Error())
		return
	}

	skills, err := h.svc.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, skills)
}

// Get handles GET /skill/{id}.
func (h *SkillHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeInvalidID(w)
		return
	}

	skill, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, skill)
}

// Stats handles GET /skill/stats.
func (h *SkillHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// Create handles POST /skill.
func (h *SkillHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateSkillRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	skill, err := h.svc.Create(r.Context(), auth.IdentityFromContext(r.Context()), service.CreateSkillInput{
		Title:       req.Title,
		Description: req.Description,
		Type:        model.SkillType(req.Type),
		TagIDs:      req.TagIDs,
	})
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	h.logger.Info("skill_created", "skill_id", skill.ID, "user_id", skill.OwnerID)

	writeJSON(w, http.StatusCreated, skill)
}

// Update handles PUT /skill/{id}.
func (h *SkillHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeInvalidID(w)
		return
	}

	var req dto.UpdateSkillRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	input := service.UpdateSkillInput{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		TagIDs:      req.TagIDs,
	}
	if req.Type != nil {
		t := model.SkillType(*req.Type)
		input.Type = &t
	}

	skill, err := h.svc.Update(r.Context(), auth.IdentityFromContext(r.Context()), id, input)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	h.logger.Info("skill_updated", "skill_id", skill.ID, "user_id", auth.UserIDFromContext(r.Context()))

	writeJSON(w, http.StatusOK, skill)
}

// Delete handles DELETE /skill/{id}.
func (h *SkillHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeInvalidID(w)
		return
	}

	if err := h.svc.Delete(r.Context(), auth.IdentityFromContext(r.Context()), id); err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	h.logger.Info("skill_deleted", "skill_id", id, "user_id", auth.UserIDFromContext(r.Context()))

	w.WriteHeader(http.StatusNoContent)
}

// parseSkillFilter reads type, completed, user_id, tag_ids and search.
func parseSkillFilter(q url.Values) (repository.SkillFilter, error) {
	var filter repository.SkillFilter

	if v := q.Get("type"); v != "" {
		t := model.SkillType(v)
		if !t.IsValid() {
			return filter, errQuery("type must be either OFFER or REQUEST")
		}
		filter.Type = &t
	}

	if v := q.Get("completed"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return filter, errQuery("completed must be true or false")
		}
		filter.Completed = &b
	}

	ownerID, err := positiveQueryInt(q, "user_id")
	if err != nil {
		return filter, err
	}
	filter.OwnerID = ownerID

	if v := q.Get("tag_ids"); v != "" {
		for _, part := range strings.Split(v, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil || id <= 0 {
				return filter, errQuery("tag_ids must be a comma separated list of positive integers")
			}
			filter.TagIDs = append(filter.TagIDs, id)
		}
	}

	filter.Search = strings.TrimSpace(q.Get("search"))

	return filter, nil
}

type errQuery string

func (e errQuery) Error() string { return string(e) }

// positiveQueryInt returns nil when key is absent.
func positiveQueryInt(q url.Values, key string) (*int64, error) {
	v := q.Get(key)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return nil, errQuery(key + " must be a positive integer")
	}
	return &n, nil
}
