package auth

import (
	"context"
	"testing"

	"github.com/skillswap/skillswap/internal/model"
)

func TestIdentityContext(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if IdentityFromContext(ctx) != nil {
		t.Fatal("empty context should carry no identity")
	}
	if UserIDFromContext(ctx) != 0 {
		t.Fatal("empty context should report user 0")
	}

	ctx = ContextWithIdentity(ctx, &model.Identity{UserID: 3, Email: "c@example.com"})
	identity := IdentityFromContext(ctx)
	if identity == nil || identity.UserID != 3 {
		t.Fatalf("identity = %+v", identity)
	}
	if UserIDFromContext(ctx) != 3 {
		t.Errorf("UserIDFromContext = %d, want 3", UserIDFromContext(ctx))
	}
}
