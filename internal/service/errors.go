package service

import (
	"errors"
	"fmt"

	"github.com/skillswap/skillswap/internal/repository"
)

// Error kinds. Handlers map these to HTTP status codes; resource specific
// errors below wrap one of them and carry the client-facing message.
var (
	ErrAuthRequired       = errors.New("authentication required")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrRelatedNotFound    = errors.New("related resource not found")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrValidation         = errors.New("validation failed")
)

// Resource specific errors.
var (
	ErrUserNotFound    = newError(ErrNotFound, "User not found")
	ErrSkillNotFound   = newError(ErrNotFound, "Skill not found")
	ErrCommentNotFound = newError(ErrNotFound, "Comment not found")
	ErrTagNotFound     = newError(ErrNotFound, "Tag not found")

	ErrCommentSkillMissing = newError(ErrRelatedNotFound, "Skill not found")
	ErrSkillTagMissing     = newError(ErrRelatedNotFound, "Tag not found")

	ErrEmailTaken = newError(ErrConflict, "User with this email already exists")
	ErrNameTaken  = newError(ErrConflict, "User with this name already exists")
	ErrUserExists = newError(ErrConflict, "User with this email or name already exists")
	ErrTagExists  = newError(ErrConflict, "Tag with this title already exists")
)

// Error pairs an error kind with a message safe to show to clients.
type Error struct {
	kind    error
	message string
}

func newError(kind error, message string) *Error {
	return &Error{kind: kind, message: message}
}

func (e *Error) Error() string { return e.message }

func (e *Error) Unwrap() error { return e.kind }

// forbidden builds the ownership denial for action on resource.
func forbidden(action, resource string) error {
	return newError(ErrForbidden, fmt.Sprintf("You can only %s your own %ss", action, resource))
}

// mapStorageErr converts repository outcome kinds into service errors.
// notFound and related are returned for ErrNotFound and ErrRelatedMissing.
func mapStorageErr(err error, op string, notFound, related error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound) && notFound != nil:
		return notFound
	case errors.Is(err, repository.ErrRelatedMissing) && related != nil:
		return related
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
