package model

import "time"

// SkillType distinguishes offered skills from requested ones.
type SkillType string

const (
	SkillTypeOffer   SkillType = "OFFER"
	SkillTypeRequest SkillType = "REQUEST"
)

// IsValid checks if the skill type is one of the known values.
func (t SkillType) IsValid() bool {
	return t == SkillTypeOffer || t == SkillTypeRequest
}

// Skill is an offer or request posted by a user.
// OwnerID is set once at creation and never reassigned.
type Skill struct {
	ID           int64       `json:"id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	Type         SkillType   `json:"type"`
	Completed    bool        `json:"completed"`
	OwnerID      int64       `json:"user_id"`
	Owner        UserSummary `json:"user"`
	Tags         []Tag       `json:"tags"`
	Comments     []Comment   `json:"comments,omitempty"`
	CommentCount int         `json:"comment_count"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// SkillSummary is the projection of a skill embedded in comments and tags.
type SkillSummary struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Type        SkillType `json:"type,omitempty"`
	OwnerID     int64     `json:"user_id,omitempty"`
}

// SkillPatch holds the mutable fields of a skill. Nil fields are left unchanged.
// A non-nil TagIDs replaces the whole tag set.
type SkillPatch struct {
	Title       *string
	Description *string
	Type        *SkillType
	Completed   *bool
	TagIDs      *[]int64
}

// IsEmpty reports whether the patch changes nothing.
func (p SkillPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Type == nil && p.Completed == nil && p.TagIDs == nil
}

// SkillStats aggregates skill counters by type and completion.
type SkillStats struct {
	TotalOfferings int64 `json:"totalOfferings"`
	TotalRequests  int64 `json:"totalRequests"`
	OpenOfferings  int64 `json:"openOfferings"`
	OpenRequests   int64 `json:"openRequests"`
}
