package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/skillswap/skillswap/internal/model"
	"github.com/skillswap/skillswap/internal/repository"
)

const maxTagTitleLength = 50

// TagService handles tag business logic. Tags are shared vocabulary:
// any authenticated user may create, rename or delete them.
type TagService struct {
	store  TagStore
	logger *slog.Logger
}

// NewTagService creates a new TagService.
func NewTagService(store TagStore, logger *slog.Logger) *TagService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TagService{store: store, logger: logger}
}

// TagInput defines input for creating or renaming a tag.
type TagInput struct {
	Title string `json:"title"`
}

// Validate checks the title.
func (in TagInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title,
			validation.Required.Error("Title is required"),
			validation.Length(1, maxTagTitleLength),
		),
	)
}

func (s *TagService) prepare(identity *model.Identity, input *TagInput) error {
	if identity == nil {
		return ErrAuthRequired
	}
	input.Title = strings.TrimSpace(input.Title)
	return newValidationError(input.Validate())
}

// Create stores a new tag. Duplicate titles are rejected.
func (s *TagService) Create(ctx context.Context, identity *model.Identity, input TagInput) (*model.Tag, error) {
	if err := s.prepare(identity, &input); err != nil {
		return nil, err
	}

	tag := &model.Tag{Title: input.Title}
	if err := s.store.CreateTag(ctx, tag); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, ErrTagExists
		}
		return nil, fmt.Errorf("create tag: %w", err)
	}

	return tag, nil
}

// FindOrCreate returns the tag titled input.Title, creating it if needed.
// created reports whether a new tag was stored.
func (s *TagService) FindOrCreate(ctx context.Context, identity *model.Identity, input TagInput) (tag *model.Tag, created bool, err error) {
	if err := s.prepare(identity, &input); err != nil {
		return nil, false, err
	}

	tag, err = s.store.GetTagByTitle(ctx, input.Title)
	if err == nil {
		return tag, false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, false, fmt.Errorf("find tag: %w", err)
	}

	tag = &model.Tag{Title: input.Title}
	err = s.store.CreateTag(ctx, tag)
	if err == nil {
		return tag, true, nil
	}
	if !errors.Is(err, repository.ErrUniqueViolation) {
		return nil, false, fmt.Errorf("create tag: %w", err)
	}

	s.logger.Debug("tag_create_race", "title", input.Title)
	tag, err = s.store.GetTagByTitle(ctx, input.Title)
	if err != nil {
		return nil, false, fmt.Errorf("find tag after conflict: %w", err)
	}
	return tag, false, nil
}

// Get returns a tag with the skills that carry it.
func (s *TagService) Get(ctx context.Context, id int64) (*model.Tag, error) {
	tag, err := s.store.GetTagByID(ctx, id)
	if err != nil {
		return nil, mapStorageErr(err, "get tag", ErrTagNotFound, nil)
	}
	return tag, nil
}

// List returns all tags ordered by title.
func (s *TagService) List(ctx context.Context) ([]*model.Tag, error) {
	tags, err := s.store.ListTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

// Update renames a tag.
func (s *TagService) Update(ctx context.Context, identity *model.Identity, id int64, input TagInput) (*model.Tag, error) {
	if err := s.prepare(identity, &input); err != nil {
		return nil, err
	}

	if err := s.store.UpdateTag(ctx, id, input.Title); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, ErrTagExists
		}
		return nil, mapStorageErr(err, "update tag", ErrTagNotFound, nil)
	}

	return s.Get(ctx, id)
}

// Delete removes a tag and detaches it from every skill.
func (s *TagService) Delete(ctx context.Context, identity *model.Identity, id int64) error {
	if identity == nil {
		return ErrAuthRequired
	}

	if err := s.store.DeleteTag(ctx, id); err != nil {
		return mapStorageErr(err, "delete tag", ErrTagNotFound, nil)
	}
	return nil
}
