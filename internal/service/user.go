package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/skillswap/skillswap/internal/auth"
	"github.com/skillswap/skillswap/internal/metrics"
	"github.com/skillswap/skillswap/internal/model"
	"github.com/skillswap/skillswap/internal/repository"
)

const (
	minPasswordLength = 6
	maxNameLength     = 100
	maxEmailLength    = 254
)

// UserService handles registration, login and profile lookup.
type UserService struct {
	store   UserStore
	tokens  TokenIssuer
	metrics metrics.Recorder
	logger  *slog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(store UserStore, tokens TokenIssuer, recorder metrics.Recorder, logger *slog.Logger) *UserService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{store: store, tokens: tokens, metrics: recorder, logger: logger}
}

// RegisterInput defines input for creating an account.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks presence, email format and password length.
func (in RegisterInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name,
			validation.Required.Error("Name is required"),
			validation.Length(1, maxNameLength),
		),
		validation.Field(&in.Email,
			validation.Required.Error("Email is required"),
			validation.Length(1, maxEmailLength),
			is.Email.Error("Invalid email format"),
		),
		validation.Field(&in.Password,
			validation.Required.Error("Password is required"),
			validation.Length(minPasswordLength, 0).Error("Password must be at least 6 characters long"),
		),
	)
}

// LoginInput defines login credentials.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks that both credentials are present.
func (in LoginInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.Required.Error("Email is required")),
		validation.Field(&in.Password, validation.Required.Error("Password is required")),
	)
}

// LoginResult is a successful login.
type LoginResult struct {
	User      *model.User
	Token     string
	ExpiresAt time.Time
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user with a hashed password.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = normalizeEmail(input.Email)
	if err := input.Validate(); err != nil {
		return nil, newValidationError(err)
	}

	if err := s.checkAvailable(ctx, input.Email, input.Name); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.metrics.IncUserRegistered()
	s.logger.Info("user_registered", "user_id", user.ID)

	return user, nil
}

// checkAvailable rejects a taken email first, then a taken name.
func (s *UserService) checkAvailable(ctx context.Context, email, name string) error {
	_, err := s.store.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return ErrEmailTaken
	case !errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("check email: %w", err)
	}

	_, err = s.store.GetUserByName(ctx, name)
	switch {
	case err == nil:
		return ErrNameTaken
	case !errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("check name: %w", err)
	}

	return nil
}

// Login verifies credentials and issues a session token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	input.Email = normalizeEmail(input.Email)
	if err := input.Validate(); err != nil {
		return nil, newValidationError(err)
	}

	user, err := s.store.GetUserByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			auth.BurnPasswordCheck(input.Password)
			s.metrics.IncLoginFailure()
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	ok, err := auth.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		s.metrics.IncLoginFailure()
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(model.Identity{UserID: user.ID, Email: user.Email})
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &LoginResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// Get returns the public profile of a user.
func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		return nil, mapStorageErr(err, "get user", ErrUserNotFound, nil)
	}
	return user, nil
}
