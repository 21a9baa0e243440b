package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"golang.org/x/sync/errgroup"

	"github.com/skillswap/skillswap/internal/cache"
	"github.com/skillswap/skillswap/internal/metrics"
	"github.com/skillswap/skillswap/internal/model"
	"github.com/skillswap/skillswap/internal/repository"
)

const (
	maxSkillTitleLength       = 200
	maxSkillDescriptionLength = 5000
)

// SkillService handles skill business logic.
type SkillService struct {
	store    SkillStore
	cache    StatsCache
	statsTTL time.Duration
	metrics  metrics.Recorder
	logger   *slog.Logger
}

// NewSkillService creates a new SkillService. statsCache may be nil.
func NewSkillService(store SkillStore, statsCache StatsCache, statsTTL time.Duration, recorder metrics.Recorder, logger *slog.Logger) *SkillService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SkillService{
		store:    store,
		cache:    statsCache,
		statsTTL: statsTTL,
		metrics:  recorder,
		logger:   logger,
	}
}

// CreateSkillInput defines input for creating a skill.
// There is no owner field: the owner is always the caller.
type CreateSkillInput struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Type        model.SkillType `json:"type"`
	TagIDs      []int64         `json:"tag_ids"`
}

func (in *CreateSkillInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Type = model.SkillType(strings.TrimSpace(string(in.Type)))
}

// Validate checks required fields and the skill type.
func (in CreateSkillInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title,
			validation.Required.Error("Title is required"),
			validation.Length(1, maxSkillTitleLength),
		),
		validation.Field(&in.Description,
			validation.Required.Error("Description is required"),
			validation.Length(1, maxSkillDescriptionLength),
		),
		validation.Field(&in.Type,
			validation.Required.Error("Type is required"),
			validation.In(model.SkillTypeOffer, model.SkillTypeRequest).Error("Type must be either OFFER or REQUEST"),
		),
		validation.Field(&in.TagIDs, positiveIDs),
	)
}

// UpdateSkillInput defines a partial skill update. Nil fields are unchanged.
type UpdateSkillInput struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Type        *model.SkillType `json:"type"`
	Completed   *bool            `json:"completed"`
	TagIDs      *[]int64         `json:"tag_ids"`
}

func (in *UpdateSkillInput) normalize() {
	if in.Title != nil {
		v := strings.TrimSpace(*in.Title)
		in.Title = &v
	}
	if in.Description != nil {
		v := strings.TrimSpace(*in.Description)
		in.Description = &v
	}
	if in.Type != nil {
		v := model.SkillType(strings.TrimSpace(string(*in.Type)))
		in.Type = &v
	}
}

// Validate checks the fields that are present.
func (in UpdateSkillInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title,
			validation.NilOrNotEmpty.Error("Title cannot be empty"),
			validation.Length(1, maxSkillTitleLength),
		),
		validation.Field(&in.Description,
			validation.NilOrNotEmpty.Error("Description cannot be empty"),
			validation.Length(1, maxSkillDescriptionLength),
		),
		validation.Field(&in.Type,
			validation.NilOrNotEmpty.Error("Type cannot be empty"),
			validation.In(model.SkillTypeOffer, model.SkillTypeRequest).Error("Type must be either OFFER or REQUEST"),
		),
		validation.Field(&in.TagIDs, positiveIDs),
	)
}

func (in UpdateSkillInput) patch() model.SkillPatch {
	return model.SkillPatch{
		Title:       in.Title,
		Description: in.Description,
		Type:        in.Type,
		Completed:   in.Completed,
		TagIDs:      in.TagIDs,
	}
}

// Create stores a new skill owned by identity.
func (s *SkillService) Create(ctx context.Context, identity *model.Identity, input CreateSkillInput) (*model.Skill, error) {
	if identity == nil {
		return nil, ErrAuthRequired
	}

	input.normalize()
	if err := input.Validate(); err != nil {
		return nil, newValidationError(err)
	}

	skill := &model.Skill{
		Title:       input.Title,
		Description: input.Description,
		Type:        input.Type,
		OwnerID:     identity.UserID,
	}

	if err := s.store.CreateSkill(ctx, skill, input.TagIDs); err != nil {
		return nil, mapStorageErr(err, "create skill", nil, ErrSkillTagMissing)
	}

	s.metrics.IncSkillCreated()
	s.invalidateStats(ctx)

	return s.Get(ctx, skill.ID)
}

// Get returns a skill with its owner, tags and comments.
func (s *SkillService) Get(ctx context.Context, id int64) (*model.Skill, error) {
	skill, err := s.store.GetSkillByID(ctx, id)
	if err != nil {
		return nil, mapStorageErr(err, "get skill", ErrSkillNotFound, nil)
	}
	return skill, nil
}

// List returns skills matching filter, newest first.
func (s *SkillService) List(ctx context.Context, filter repository.SkillFilter) ([]*model.Skill, error) {
	skills, err := s.store.ListSkills(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	return skills, nil
}

// Update applies a partial update to a skill owned by identity.
// An empty update performs no write and returns the current skill.
func (s *SkillService) Update(ctx context.Context, identity *model.Identity, id int64, input UpdateSkillInput) (*model.Skill, error) {
	if identity == nil {
		return nil, ErrAuthRequired
	}

	input.normalize()
	if err := input.Validate(); err != nil {
		return nil, newValidationError(err)
	}

	current, err := s.ensureOwner(ctx, identity, id, "update")
	if err != nil {
		return nil, err
	}

	patch := input.patch()
	if patch.IsEmpty() {
		return current, nil
	}

	if err := s.store.UpdateSkill(ctx, id, patch); err != nil {
		return nil, mapStorageErr(err, "update skill", ErrSkillNotFound, ErrSkillTagMissing)
	}

	s.metrics.IncSkillUpdated()
	if patch.Type != nil || patch.Completed != nil {
		s.invalidateStats(ctx)
	}

	return s.Get(ctx, id)
}

// Delete removes a skill owned by identity, with its comments.
func (s *SkillService) Delete(ctx context.Context, identity *model.Identity, id int64) error {
	if _, err := s.ensureOwner(ctx, identity, id, "delete"); err != nil {
		return err
	}

	if err := s.store.DeleteSkill(ctx, id); err != nil {
		return mapStorageErr(err, "delete skill", ErrSkillNotFound, nil)
	}

	s.metrics.IncSkillDeleted()
	s.invalidateStats(ctx)

	return nil
}

// Stats returns skill counters, served from cache when fresh.
func (s *SkillService) Stats(ctx context.Context) (*model.SkillStats, error) {
	if s.cache != nil {
		cached, err := s.cache.GetSkillStats(ctx)
		if err == nil {
			s.metrics.IncStatsCacheHit()
			return cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("stats_cache_read_failed", "error", err)
		}
		s.metrics.IncStatsCacheMiss()
	}

	start := time.Now()
	stats, err := s.computeStats(ctx)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveStatsDuration(time.Since(start))

	if s.cache != nil {
		if err := s.cache.SetSkillStats(ctx, stats, s.statsTTL); err != nil {
			s.logger.Warn("stats_cache_write_failed", "error", err)
		}
	}

	return stats, nil
}

// computeStats runs the four counts concurrently.
func (s *SkillService) computeStats(ctx context.Context) (*model.SkillStats, error) {
	stats := &model.SkillStats{}

	g, gctx := errgroup.WithContext(ctx)
	counts := []struct {
		skillType model.SkillType
		openOnly  bool
		dst       *int64
	}{
		{model.SkillTypeOffer, false, &stats.TotalOfferings},
		{model.SkillTypeRequest, false, &stats.TotalRequests},
		{model.SkillTypeOffer, true, &stats.OpenOfferings},
		{model.SkillTypeRequest, true, &stats.OpenRequests},
	}

	for _, c := range counts {
		c := c
		g.Go(func() error {
			n, err := s.store.CountSkills(gctx, c.skillType, c.openOnly)
			if err != nil {
				return err
			}
			*c.dst = n
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("compute skill stats: %w", err)
	}

	return stats, nil
}

func (s *SkillService) ensureOwner(ctx context.Context, identity *model.Identity, id int64, action string) (*model.Skill, error) {
	return ensureOwner(ctx, identity, id,
		s.store.GetSkillByID,
		func(sk *model.Skill) int64 { return sk.OwnerID },
		ErrSkillNotFound,
		forbidden(action, "skill"),
		s.metrics,
		"skill",
	)
}

func (s *SkillService) invalidateStats(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateSkillStats(ctx); err != nil {
		s.logger.Warn("stats_cache_invalidate_failed", "error", err)
	}
}
