package profile

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/repository"
)

// Input lists the directory fields a user may edit about themselves.
type Input struct {
	Name  string
	Title string
	Role  string
	Email string
}

type UseCase struct {
	users  repository.UserRepository
	logger *zap.Logger
}

func New(users repository.UserRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:  users,
		logger: logger,
	}
}

func (uc *UseCase) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, domain.StoreError("get profile", err)
	}
	return user, nil
}

// UpdateProfile creates the caller's directory entry on first use. Admin and
// status flags are never taken from the request, and inactive users cannot
// edit themselves.
func (uc *UseCase) UpdateProfile(ctx context.Context, caller domain.Caller, in Input) (*domain.User, error) {
	if caller.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "name is required")
	}

	user, err := uc.users.GetByID(ctx, caller.UserID)
	switch {
	case err == nil:
		if !user.IsActive() {
			return nil, domain.NewError(domain.ErrCodeForbidden, "user is not active")
		}
	case domain.IsDomainError(err, domain.ErrCodeNotFound):
		user = &domain.User{ID: caller.UserID, Status: domain.UserStatusActive, IsAdmin: caller.IsAdmin}
	default:
		return nil, domain.StoreError("get profile", err)
	}

	user.Name = strings.TrimSpace(in.Name)
	user.Title = in.Title
	user.Role = in.Role
	user.Email = in.Email

	if err := uc.users.Upsert(ctx, user); err != nil {
		return nil, domain.StoreError("update profile", err)
	}
	uc.logger.Info("profile updated", zap.String("user_id", user.ID))
	return user, nil
}
