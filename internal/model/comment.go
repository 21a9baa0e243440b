package model

import "time"

// Comment is a message left by a user on a skill.
// OwnerID is set once at creation and never reassigned.
type Comment struct {
	ID        int64        `json:"id"`
	Message   string       `json:"message"`
	OwnerID   int64        `json:"user_id"`
	SkillID   int64        `json:"skill_id"`
	Owner     UserSummary  `json:"user"`
	Skill     SkillSummary `json:"skill"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}
