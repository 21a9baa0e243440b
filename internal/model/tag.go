package model

import "time"

// Tag is a free-form label attached to skills. Tags have no owner.
type Tag struct {
	ID         int64          `json:"id"`
	Title      string         `json:"title"`
	SkillCount int            `json:"skill_count"`
	Skills     []SkillSummary `json:"skills,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}
