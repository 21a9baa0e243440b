package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/skillswap/skillswap/internal/metrics"
	"github.com/skillswap/skillswap/internal/model"
	"github.com/skillswap/skillswap/internal/repository"
)

const maxCommentLength = 2000

// CommentService handles comment business logic.
type CommentService struct {
	store   CommentStore
	metrics metrics.Recorder
	logger  *slog.Logger
}

// NewCommentService creates a new CommentService.
func NewCommentService(store CommentStore, recorder metrics.Recorder, logger *slog.Logger) *CommentService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CommentService{store: store, metrics: recorder, logger: logger}
}

// CreateCommentInput defines input for commenting on a skill.
type CreateCommentInput struct {
	Message string `json:"message"`
	SkillID int64  `json:"skill_id"`
}

// Validate checks that message and skill_id are present.
func (in CreateCommentInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Message,
			validation.Required.Error("Message is required"),
			validation.Length(1, maxCommentLength),
		),
		validation.Field(&in.SkillID,
			validation.Required.Error("Skill ID is required"),
			validation.Min(int64(1)).Error("Skill ID must be positive"),
		),
	)
}

// UpdateCommentInput defines input for editing a comment.
type UpdateCommentInput struct {
	Message string `json:"message"`
}

// Validate checks that the message is present.
func (in UpdateCommentInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Message,
			validation.Required.Error("Message is required"),
			validation.Length(1, maxCommentLength),
		),
	)
}

// Create stores a comment by identity on an existing skill.
func (s *CommentService) Create(ctx context.Context, identity *model.Identity, input CreateCommentInput) (*model.Comment, error) {
	if identity == nil {
		return nil, ErrAuthRequired
	}

	input.Message = strings.TrimSpace(input.Message)
	if err := input.Validate(); err != nil {
		return nil, newValidationError(err)
	}

	comment := &model.Comment{
		Message: input.Message,
		SkillID: input.SkillID,
		OwnerID: identity.UserID,
	}

	if err := s.store.CreateComment(ctx, comment); err != nil {
		return nil, mapStorageErr(err, "create comment", nil, ErrCommentSkillMissing)
	}

	s.metrics.IncCommentCreated()

	return s.Get(ctx, comment.ID)
}

// Get returns a comment with its author and skill.
func (s *CommentService) Get(ctx context.Context, id int64) (*model.Comment, error) {
	comment, err := s.store.GetCommentByID(ctx, id)
	if err != nil {
		return nil, mapStorageErr(err, "get comment", ErrCommentNotFound, nil)
	}
	return comment, nil
}

// List returns comments matching filter, oldest first.
func (s *CommentService) List(ctx context.Context, filter repository.CommentFilter) ([]*model.Comment, error) {
	comments, err := s.store.ListComments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

// Update replaces the message of a comment owned by identity.
func (s *CommentService) Update(ctx context.Context, identity *model.Identity, id int64, input UpdateCommentInput) (*model.Comment, error) {
	if identity == nil {
		return nil, ErrAuthRequired
	}

	input.Message = strings.TrimSpace(input.Message)
	if err := input.Validate(); err != nil {
		return nil, newValidationError(err)
	}

	if _, err := s.ensureOwner(ctx, identity, id, "update"); err != nil {
		return nil, err
	}

	if err := s.store.UpdateComment(ctx, id, input.Message); err != nil {
		return nil, mapStorageErr(err, "update comment", ErrCommentNotFound, nil)
	}

	s.metrics.IncCommentUpdated()

	return s.Get(ctx, id)
}

// Delete removes a comment owned by identity.
func (s *CommentService) Delete(ctx context.Context, identity *model.Identity, id int64) error {
	if _, err := s.ensureOwner(ctx, identity, id, "delete"); err != nil {
		return err
	}

	if err := s.store.DeleteComment(ctx, id); err != nil {
		return mapStorageErr(err, "delete comment", ErrCommentNotFound, nil)
	}

	s.metrics.IncCommentDeleted()
	return nil
}

func (s *CommentService) ensureOwner(ctx context.Context, identity *model.Identity, id int64, action string) (*model.Comment, error) {
	return ensureOwner(ctx, identity, id,
		s.store.GetCommentByID,
		func(c *model.Comment) int64 { return c.OwnerID },
		ErrCommentNotFound,
		forbidden(action, "comment"),
		s.metrics,
		"comment",
	)
}
