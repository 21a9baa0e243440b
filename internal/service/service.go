// Package service holds the business rules: input validation, ownership
// enforcement and the mapping of storage outcomes to client-facing errors.
package service

import (
	"context"
	"time"

	"github.com/skillswap/skillswap/internal/auth"
	"github.com/skillswap/skillswap/internal/metrics"
	"github.com/skillswap/skillswap/internal/model"
	"github.com/skillswap/skillswap/internal/repository"
)

// UserStore is the user persistence contract.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByName(ctx context.Context, name string) (*model.User, error)
}

// SkillStore is the skill persistence contract.
type SkillStore interface {
	CreateSkill(ctx context.Context, skill *model.Skill, tagIDs []int64) error
	GetSkillByID(ctx context.Context, id int64) (*model.Skill, error)
	ListSkills(ctx context.Context, filter repository.SkillFilter) ([]*model.Skill, error)
	UpdateSkill(ctx context.Context, id int64, patch model.SkillPatch) error
	DeleteSkill(ctx context.Context, id int64) error
	CountSkills(ctx context.Context, skillType model.SkillType, openOnly bool) (int64, error)
}

// CommentStore is the comment persistence contract.
type CommentStore interface {
	CreateComment(ctx context.Context, comment *model.Comment) error
	GetCommentByID(ctx context.Context, id int64) (*model.Comment, error)
	ListComments(ctx context.Context, filter repository.CommentFilter) ([]*model.Comment, error)
	UpdateComment(ctx context.Context, id int64, message string) error
	DeleteComment(ctx context.Context, id int64) error
}

// TagStore is the tag persistence contract.
type TagStore interface {
	CreateTag(ctx context.Context, tag *model.Tag) error
	GetTagByID(ctx context.Context, id int64) (*model.Tag, error)
	GetTagByTitle(ctx context.Context, title string) (*model.Tag, error)
	ListTags(ctx context.Context) ([]*model.Tag, error)
	UpdateTag(ctx context.Context, id int64, title string) error
	DeleteTag(ctx context.Context, id int64) error
}

// StatsCache stores precomputed skill stats.
type StatsCache interface {
	GetSkillStats(ctx context.Context) (*model.SkillStats, error)
	SetSkillStats(ctx context.Context, stats *model.SkillStats, ttl time.Duration) error
	InvalidateSkillStats(ctx context.Context) error
}

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(identity model.Identity) (string, time.Time, error)
}

// ensureOwner loads the resource with id and checks that identity owns it.
// It never mutates anything; callers mutate only on a nil error.
//
//	nil identity       -> ErrAuthRequired
//	missing resource   -> notFound
//	different owner    -> denied
func ensureOwner[T any](
	ctx context.Context,
	identity *model.Identity,
	id int64,
	load func(context.Context, int64) (*T, error),
	ownerOf func(*T) int64,
	notFound, denied error,
	recorder metrics.Recorder,
	resource string,
) (*T, error) {
	if identity == nil {
		return nil, ErrAuthRequired
	}

	res, err := load(ctx, id)
	if err != nil {
		return nil, mapStorageErr(err, "load "+resource, notFound, nil)
	}

	if auth.Authorize(identity.UserID, ownerOf(res)) != auth.Allow {
		recorder.IncOwnershipDenied(resource)
		return nil, denied
	}

	return res, nil
}
