package service

import (
	"context"
	"errors"
	"testing"

	"github.com/skillswap/skillswap/internal/auth"
	"github.com/skillswap/skillswap/internal/metrics"
	"github.com/skillswap/skillswap/internal/model"
	"github.com/skillswap/skillswap/internal/repository/repotest"
)

func TestUserService_Register(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := repotest.NewMemStore()
	recorder := metrics.NewInMemory()
	svc := NewUserService(store, fakeTokens{}, recorder, nil)

	user, err := svc.Register(ctx, RegisterInput{Name: " Alice ", Email: "Alice@Example.COM", Password: "secret1"})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.ID == 0 {
		t.Error("expected an assigned id")
	}
	if user.Name != "Alice" || user.Email != "alice@example.com" {
		t.Errorf("unexpected user: %+v", user)
	}
	if user.PasswordHash == "" || user.PasswordHash == "secret1" {
		t.Errorf("password should be stored hashed, got %q", user.PasswordHash)
	}
	ok, err := auth.VerifyPassword("secret1", user.PasswordHash)
	if err != nil || !ok {
		t.Errorf("stored hash does not verify: ok=%v err=%v", ok, err)
	}
	if recorder.Snapshot().UsersRegistered != 1 {
		t.Error("UsersRegistered should be counted")
	}
}

func TestUserService_Register_Rejections(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := repotest.NewMemStore()
	svc := NewUserService(store, fakeTokens{}, nil, nil)
	store.AddUser("alice")

	tests := []struct {
		name      string
		input     RegisterInput
		wantErr   error
		wantField string
		wantMsg   string
	}{
		{
			name:      "missing name",
			input:     RegisterInput{Email: "x@example.com", Password: "secret1"},
			wantErr:   ErrValidation,
			wantField: "name",
		},
		{
			name:      "bad email",
			input:     RegisterInput{Name: "x", Email: "not-an-email", Password: "secret1"},
			wantErr:   ErrValidation,
			wantField: "email",
		},
		{
			name:      "short password",
			input:     RegisterInput{Name: "x", Email: "x@example.com", Password: "12345"},
			wantErr:   ErrValidation,
			wantField: "password",
		},
		{
			name:    "email taken",
			input:   RegisterInput{Name: "someone", Email: "alice@example.com", Password: "secret1"},
			wantErr: ErrConflict,
			wantMsg: "User with this email already exists",
		},
		{
			name:    "email taken reported before name",
			input:   RegisterInput{Name: "alice", Email: "ALICE@example.com", Password: "secret1"},
			wantErr: ErrConflict,
			wantMsg: "User with this email already exists",
		},
		{
			name:    "name taken",
			input:   RegisterInput{Name: "alice", Email: "other@example.com", Password: "secret1"},
			wantErr: ErrConflict,
			wantMsg: "User with this name already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if tt.wantField != "" {
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("expected *ValidationError, got %T", err)
				}
				if _, ok := verr.Fields[tt.wantField]; !ok {
					t.Errorf("expected field %q in %v", tt.wantField, verr.Fields)
				}
			}
			if tt.wantMsg != "" && err.Error() != tt.wantMsg {
				t.Errorf("message = %q, want %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

// racingUserStore reports both identifiers free, then loses the insert race.
type racingUserStore struct {
	*repotest.MemStore
}

func (r racingUserStore) CreateUser(context.Context, *model.User) error {
	return errUniqueForTest
}

func TestUserService_Register_InsertRace(t *testing.T) {
	t.Parallel()

	svc := NewUserService(racingUserStore{repotest.NewMemStore()}, fakeTokens{}, nil, nil)

	_, err := svc.Register(context.Background(), RegisterInput{Name: "bob", Email: "bob@example.com", Password: "secret1"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if err.Error() != "User with this email or name already exists" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestUserService_Login(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := repotest.NewMemStore()
	recorder := metrics.NewInMemory()
	svc := NewUserService(store, fakeTokens{}, recorder, nil)

	if _, err := svc.Register(ctx, RegisterInput{Name: "alice", Email: "alice@example.com", Password: "secret1"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	result, err := svc.Login(ctx, LoginInput{Email: " ALICE@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if result.Token != "token-for-alice@example.com" {
		t.Errorf("Token = %q", result.Token)
	}
	if result.User.Name != "alice" || result.ExpiresAt.IsZero() {
		t.Errorf("unexpected result: %+v", result)
	}

	tests := []struct {
		name    string
		input   LoginInput
		wantErr error
	}{
		{"wrong password", LoginInput{Email: "alice@example.com", Password: "wrong-pass"}, ErrInvalidCredentials},
		{"unknown email", LoginInput{Email: "nobody@example.com", Password: "secret1"}, ErrInvalidCredentials},
		{"missing password", LoginInput{Email: "alice@example.com"}, ErrValidation},
		{"missing email", LoginInput{Password: "secret1"}, ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.Login(ctx, tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if result != nil {
				t.Error("expected nil result on failure")
			}
		})
	}

	if got := recorder.Snapshot().LoginFailures; got != 2 {
		t.Errorf("LoginFailures = %d, want 2", got)
	}
}

func TestUserService_Login_TokenFailure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := repotest.NewMemStore()
	svc := NewUserService(store, fakeTokens{err: errors.New("signing failed")}, nil, nil)

	if _, err := svc.Register(ctx, RegisterInput{Name: "alice", Email: "alice@example.com", Password: "secret1"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, err := svc.Login(ctx, LoginInput{Email: "alice@example.com", Password: "secret1"})
	if err == nil {
		t.Fatal("expected an error")
	}
	if errors.Is(err, ErrInvalidCredentials) {
		t.Error("token failure must not look like bad credentials")
	}
}

func TestUserService_Get(t *testing.T) {
	t.Parallel()

	store := repotest.NewMemStore()
	svc := NewUserService(store, fakeTokens{}, nil, nil)
	alice := store.AddUser("alice")

	got, err := svc.Get(context.Background(), alice.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Name != "alice" {
		t.Errorf("Name = %q", got.Name)
	}

	_, err = svc.Get(context.Background(), 404)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err.Error() != "User not found" {
		t.Errorf("message = %q", err.Error())
	}
}
