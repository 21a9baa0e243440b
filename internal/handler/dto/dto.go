// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"time"

	"github.com/skillswap/skillswap/internal/model"
)

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields,omitempty"`
}

// RegisterRequest is the body of POST /user/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /user/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// RegisterResponse is returned after a successful registration.
type RegisterResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Message   string       `json:"message"`
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// CreateSkillRequest is the body of POST /skill. It has no owner field.
type CreateSkillRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Type        string  `json:"type"`
	TagIDs      []int64 `json:"tag_ids"`
}

// UpdateSkillRequest is the body of PUT /skill/{id}. Omitted fields are kept.
type UpdateSkillRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Type        *string  `json:"type"`
	Completed   *bool    `json:"completed"`
	TagIDs      *[]int64 `json:"tag_ids"`
}

// CreateCommentRequest is the body of POST /comment.
type CreateCommentRequest struct {
	Message string `json:"message"`
	SkillID int64  `json:"skill_id"`
}

// UpdateCommentRequest is the body of PUT /comment/{id}.
type UpdateCommentRequest struct {
	Message string `json:"message"`
}

// TagRequest is the body of tag create, rename and find-or-create.
type TagRequest struct {
	Title string `json:"title"`
}

// FindOrCreateTagResponse reports whether the tag was created.
type FindOrCreateTagResponse struct {
	Tag     *model.Tag `json:"tag"`
	Created bool       `json:"created"`
}

// ToUserResponse converts a user to its public view.
func ToUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
