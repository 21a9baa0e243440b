package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/skillswap/skillswap/internal/model"
)

const tagSelect = `
	SELECT t.id, t.title, t.created_at,
	       (SELECT COUNT(*) FROM skill_tags st WHERE st.tag_id = t.id)
	FROM tags t
`

// CreateTag inserts a tag. A duplicate title surfaces as ErrUniqueViolation.
func (r *Repository) CreateTag(ctx context.Context, tag *model.Tag) error {
	query := `
		INSERT INTO tags (title)
		VALUES ($1)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query, tag.Title).Scan(&tag.ID, &tag.CreatedAt)
	return classify(err, "create tag")
}

// GetTagByID retrieves a tag with the skills it is attached to.
func (r *Repository) GetTagByID(ctx context.Context, id int64) (*model.Tag, error) {
	tag, err := scanTag(r.pool.QueryRow(ctx, tagSelect+` WHERE t.id = $1`, id))
	if err != nil {
		return nil, classify(err, "get tag by ID")
	}

	query := `
		SELECT s.id, s.title, s.description, s.type, s.user_id
		FROM skill_tags st
		JOIN skills s ON s.id = st.skill_id
		WHERE st.tag_id = $1
		ORDER BY s.created_at DESC, s.id DESC
	`

	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load tag skills: %w", err)
	}
	defer rows.Close()

	tag.Skills = []model.SkillSummary{}
	for rows.Next() {
		var s model.SkillSummary
		var skillType string
		if err := rows.Scan(&s.ID, &s.Title, &s.Description, &skillType, &s.OwnerID); err != nil {
			return nil, fmt.Errorf("failed to scan tag skill: %w", err)
		}
		s.Type = model.SkillType(skillType)
		tag.Skills = append(tag.Skills, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tag skills: %w", err)
	}

	return tag, nil
}

// GetTagByTitle retrieves a tag by its exact title.
func (r *Repository) GetTagByTitle(ctx context.Context, title string) (*model.Tag, error) {
	tag, err := scanTag(r.pool.QueryRow(ctx, tagSelect+` WHERE t.title = $1`, title))
	if err != nil {
		return nil, classify(err, "get tag by title")
	}
	return tag, nil
}

// ListTags retrieves all tags ordered by title.
func (r *Repository) ListTags(ctx context.Context) ([]*model.Tag, error) {
	rows, err := r.pool.Query(ctx, tagSelect+` ORDER BY t.title ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	tags := []*model.Tag{}
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, tag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tags: %w", err)
	}

	return tags, nil
}

// UpdateTag renames a tag.
func (r *Repository) UpdateTag(ctx context.Context, id int64, title string) error {
	result, err := r.pool.Exec(ctx, `UPDATE tags SET title = $2 WHERE id = $1`, id, title)
	if err != nil {
		return classify(err, "update tag")
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteTag removes a tag and its skill links.
func (r *Repository) DeleteTag(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		return classify(err, "delete tag")
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func scanTag(row pgx.Row) (*model.Tag, error) {
	var tag model.Tag
	if err := row.Scan(&tag.ID, &tag.Title, &tag.CreatedAt, &tag.SkillCount); err != nil {
		return nil, err
	}
	return &tag, nil
}
