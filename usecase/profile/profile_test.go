package profile

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/repository"
	"github.com/fastygo/taskboard/repository/sqlite"
)

func newTestUsers(t *testing.T) repository.UserRepository {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "users.db"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = sqlite.Close(db) })
	return sqlite.NewUserRepository(db)
}

func TestUpdateProfile_CreatesOnFirstUse(t *testing.T) {
	users := newTestUsers(t)
	uc := New(users, nil)
	ctx := context.Background()

	caller := domain.Caller{UserID: "u1", IsAdmin: true}
	user, err := uc.UpdateProfile(ctx, caller, Input{Name: " Ada ", Title: "Engineer"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Name != "Ada" || !user.IsAdmin || user.Status != domain.UserStatusActive {
		t.Fatalf("unexpected user: %#v", user)
	}

	got, err := uc.GetProfile(ctx, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Title != "Engineer" {
		t.Fatalf("title = %q", got.Title)
	}

	// Admin flag is not taken from later callers.
	if _, err := uc.UpdateProfile(ctx, domain.Caller{UserID: "u1"}, Input{Name: "Ada"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ = uc.GetProfile(ctx, "u1")
	if !got.IsAdmin {
		t.Fatalf("admin flag changed by profile update")
	}
}

func TestUpdateProfile_Validation(t *testing.T) {
	users := newTestUsers(t)
	uc := New(users, nil)
	ctx := context.Background()

	if _, err := uc.UpdateProfile(ctx, domain.Caller{}, Input{Name: "x"}); !domain.IsDomainError(err, domain.ErrCodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if _, err := uc.UpdateProfile(ctx, domain.Caller{UserID: "u1"}, Input{Name: "  "}); !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Fatalf("expected invalid, got %v", err)
	}

	if err := users.Upsert(ctx, &domain.User{ID: "u2", Name: "Old", Status: "disabled"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uc.UpdateProfile(ctx, domain.Caller{UserID: "u2"}, Input{Name: "New"}); !domain.IsDomainError(err, domain.ErrCodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if _, err := uc.GetProfile(ctx, "ghost"); !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
