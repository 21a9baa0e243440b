package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/skillswap/skillswap/internal/model"
)

// CommentFilter defines filters for listing comments. Nil fields are ignored.
type CommentFilter struct {
	SkillID *int64
	OwnerID *int64
}

const commentSelect = `
	SELECT c.id, c.message, c.user_id, c.skill_id, c.created_at, c.updated_at,
	       u.id, u.name, u.email,
	       s.id, s.title, s.description, s.type, s.user_id
	FROM comments c
	JOIN users u ON u.id = c.user_id
	JOIN skills s ON s.id = c.skill_id
`

// CreateComment inserts a comment. A missing skill or user surfaces as ErrRelatedMissing.
func (r *Repository) CreateComment(ctx context.Context, comment *model.Comment) error {
	query := `
		INSERT INTO comments (message, user_id, skill_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		comment.Message,
		comment.OwnerID,
		comment.SkillID,
	).Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)

	return classify(err, "create comment")
}

// GetCommentByID retrieves a comment with its author and skill.
func (r *Repository) GetCommentByID(ctx context.Context, id int64) (*model.Comment, error) {
	comment, err := scanComment(r.pool.QueryRow(ctx, commentSelect+` WHERE c.id = $1`, id))
	if err != nil {
		return nil, classify(err, "get comment by ID")
	}
	return comment, nil
}

// ListComments retrieves comments matching the filter, oldest first.
func (r *Repository) ListComments(ctx context.Context, filter CommentFilter) ([]*model.Comment, error) {
	query := commentSelect + ` WHERE 1 = 1`
	args := []any{}
	argIndex := 1

	if filter.SkillID != nil {
		query += fmt.Sprintf(" AND c.skill_id = $%d", argIndex)
		args = append(args, *filter.SkillID)
		argIndex++
	}

	if filter.OwnerID != nil {
		query += fmt.Sprintf(" AND c.user_id = $%d", argIndex)
		args = append(args, *filter.OwnerID)
	}

	query += " ORDER BY c.created_at ASC, c.id ASC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := []*model.Comment{}
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}

	return comments, nil
}

// UpdateComment replaces the message of a comment.
func (r *Repository) UpdateComment(ctx context.Context, id int64, message string) error {
	query := `
		UPDATE comments
		SET message = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, id, message)
	if err != nil {
		return classify(err, "update comment")
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteComment removes a comment.
func (r *Repository) DeleteComment(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return classify(err, "delete comment")
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func scanComment(row pgx.Row) (*model.Comment, error) {
	var comment model.Comment
	var skillType string

	err := row.Scan(
		&comment.ID,
		&comment.Message,
		&comment.OwnerID,
		&comment.SkillID,
		&comment.CreatedAt,
		&comment.UpdatedAt,
		&comment.Owner.ID,
		&comment.Owner.Name,
		&comment.Owner.Email,
		&comment.Skill.ID,
		&comment.Skill.Title,
		&comment.Skill.Description,
		&skillType,
		&comment.Skill.OwnerID,
	)
	if err != nil {
		return nil, err
	}

	comment.Skill.Type = model.SkillType(skillType)
	return &comment, nil
}
