package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"github.com/skillswap/skillswap/internal/model"
)

// SkillFilter defines filters for listing skills. Nil or empty fields are ignored.
type SkillFilter struct {
	Type      *model.SkillType
	Completed *bool
	OwnerID   *int64
	TagIDs    []int64
	Search    string
}

const skillSelect = `
	SELECT s.id, s.title, s.description, s.type, s.completed, s.user_id, s.created_at, s.updated_at,
	       u.id, u.name, u.email,
	       (SELECT COUNT(*) FROM comments c WHERE c.skill_id = s.id)
	FROM skills s
	JOIN users u ON u.id = s.user_id
`

// CreateSkill inserts a skill and its tag links in one transaction.
// Unknown tag IDs surface as ErrRelatedMissing.
func (r *Repository) CreateSkill(ctx context.Context, skill *model.Skill, tagIDs []int64) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		query := `
			INSERT INTO skills (title, description, type, completed, user_id)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at, updated_at
		`

		err := tx.QueryRow(ctx, query,
			skill.Title,
			skill.Description,
			string(skill.Type),
			skill.Completed,
			skill.OwnerID,
		).Scan(&skill.ID, &skill.CreatedAt, &skill.UpdatedAt)
		if err != nil {
			return classify(err, "create skill")
		}

		return replaceSkillTags(ctx, tx, skill.ID, tagIDs, false)
	})
}

// GetSkillByID retrieves a skill with its owner, tags and comments.
func (r *Repository) GetSkillByID(ctx context.Context, id int64) (*model.Skill, error) {
	skill, err := scanSkill(r.pool.QueryRow(ctx, skillSelect+` WHERE s.id = $1`, id))
	if err != nil {
		return nil, classify(err, "get skill by ID")
	}

	tags, err := loadSkillTags(ctx, r.pool, []int64{skill.ID})
	if err != nil {
		return nil, err
	}
	if t, ok := tags[skill.ID]; ok {
		skill.Tags = t
	}

	comments, err := r.ListComments(ctx, CommentFilter{SkillID: &skill.ID})
	if err != nil {
		return nil, err
	}
	skill.Comments = make([]model.Comment, 0, len(comments))
	for _, c := range comments {
		skill.Comments = append(skill.Comments, *c)
	}

	return skill, nil
}

// ListSkills retrieves skills matching the filter, newest first.
func (r *Repository) ListSkills(ctx context.Context, filter SkillFilter) ([]*model.Skill, error) {
	query := skillSelect + ` WHERE 1 = 1`
	args := []any{}
	argIndex := 1

	if filter.Type != nil {
		query += fmt.Sprintf(" AND s.type = $%d", argIndex)
		args = append(args, string(*filter.Type))
		argIndex++
	}

	if filter.Completed != nil {
		query += fmt.Sprintf(" AND s.completed = $%d", argIndex)
		args = append(args, *filter.Completed)
		argIndex++
	}

	if filter.OwnerID != nil {
		query += fmt.Sprintf(" AND s.user_id = $%d", argIndex)
		args = append(args, *filter.OwnerID)
		argIndex++
	}

	if len(filter.TagIDs) > 0 {
		query += fmt.Sprintf(" AND EXISTS (SELECT 1 FROM skill_tags st WHERE st.skill_id = s.id AND st.tag_id = ANY($%d))", argIndex)
		args = append(args, pq.Array(filter.TagIDs))
		argIndex++
	}

	if filter.Search != "" {
		query += fmt.Sprintf(" AND (s.title ILIKE $%d OR s.description ILIKE $%d)", argIndex, argIndex)
		args = append(args, "%"+escapeLike(filter.Search)+"%")
	}

	query += " ORDER BY s.created_at DESC, s.id DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	defer rows.Close()

	var skills []*model.Skill
	var ids []int64
	for rows.Next() {
		skill, err := scanSkill(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan skill: %w", err)
		}
		skills = append(skills, skill)
		ids = append(ids, skill.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating skills: %w", err)
	}

	if len(ids) == 0 {
		return []*model.Skill{}, nil
	}

	tags, err := loadSkillTags(ctx, r.pool, ids)
	if err != nil {
		return nil, err
	}
	for _, skill := range skills {
		if t, ok := tags[skill.ID]; ok {
			skill.Tags = t
		}
	}

	return skills, nil
}

// UpdateSkill applies a partial update. The owner column is never written.
func (r *Repository) UpdateSkill(ctx context.Context, id int64, patch model.SkillPatch) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		var skillType *string
		if patch.Type != nil {
			t := string(*patch.Type)
			skillType = &t
		}

		query := `
			UPDATE skills
			SET title = COALESCE($2, title),
			    description = COALESCE($3, description),
			    type = COALESCE($4, type),
			    completed = COALESCE($5, completed),
			    updated_at = NOW()
			WHERE id = $1
		`

		result, err := tx.Exec(ctx, query, id, patch.Title, patch.Description, skillType, patch.Completed)
		if err != nil {
			return classify(err, "update skill")
		}
		if result.RowsAffected() == 0 {
			return ErrNotFound
		}

		if patch.TagIDs == nil {
			return nil
		}
		return replaceSkillTags(ctx, tx, id, *patch.TagIDs, true)
	})
}

// DeleteSkill removes a skill. Comments and tag links cascade.
func (r *Repository) DeleteSkill(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM skills WHERE id = $1`, id)
	if err != nil {
		return classify(err, "delete skill")
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// CountSkills counts skills of a type, optionally restricted to open ones.
func (r *Repository) CountSkills(ctx context.Context, skillType model.SkillType, openOnly bool) (int64, error) {
	query := `SELECT COUNT(*) FROM skills WHERE type = $1`
	if openOnly {
		query += ` AND completed = FALSE`
	}

	var count int64
	if err := r.pool.QueryRow(ctx, query, string(skillType)).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count skills: %w", err)
	}
	return count, nil
}

// replaceSkillTags links tagIDs to a skill, clearing existing links first when clear is set.
func replaceSkillTags(ctx context.Context, q querier, skillID int64, tagIDs []int64, clear bool) error {
	if clear {
		if _, err := q.Exec(ctx, `DELETE FROM skill_tags WHERE skill_id = $1`, skillID); err != nil {
			return classify(err, "clear skill tags")
		}
	}

	if len(tagIDs) == 0 {
		return nil
	}

	query := `
		INSERT INTO skill_tags (skill_id, tag_id)
		SELECT $1, UNNEST($2::bigint[])
		ON CONFLICT DO NOTHING
	`
	if _, err := q.Exec(ctx, query, skillID, pq.Array(tagIDs)); err != nil {
		return classify(err, "link skill tags")
	}
	return nil
}

// loadSkillTags returns the tags of each skill keyed by skill ID.
func loadSkillTags(ctx context.Context, q querier, skillIDs []int64) (map[int64][]model.Tag, error) {
	query := `
		SELECT st.skill_id, t.id, t.title, t.created_at
		FROM skill_tags st
		JOIN tags t ON t.id = st.tag_id
		WHERE st.skill_id = ANY($1)
		ORDER BY t.title ASC
	`

	rows, err := q.Query(ctx, query, pq.Array(skillIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to load skill tags: %w", err)
	}
	defer rows.Close()

	result := make(map[int64][]model.Tag, len(skillIDs))
	for rows.Next() {
		var skillID int64
		var tag model.Tag
		if err := rows.Scan(&skillID, &tag.ID, &tag.Title, &tag.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan skill tag: %w", err)
		}
		result[skillID] = append(result[skillID], tag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating skill tags: %w", err)
	}

	return result, nil
}

// scanSkill scans a row produced by skillSelect.
func scanSkill(row pgx.Row) (*model.Skill, error) {
	var skill model.Skill
	var skillType string

	err := row.Scan(
		&skill.ID,
		&skill.Title,
		&skill.Description,
		&skillType,
		&skill.Completed,
		&skill.OwnerID,
		&skill.CreatedAt,
		&skill.UpdatedAt,
		&skill.Owner.ID,
		&skill.Owner.Name,
		&skill.Owner.Email,
		&skill.CommentCount,
	)
	if err != nil {
		return nil, err
	}

	skill.Type = model.SkillType(skillType)
	skill.Tags = []model.Tag{}
	return &skill, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike escapes LIKE wildcards so search input is matched literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
