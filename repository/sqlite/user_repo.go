package sqlite

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/repository"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a gorm/SQLite-backed user directory.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var rec userRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	user := rec.toDomain()
	return &user, nil
}

func (r *userRepository) GetByIDs(ctx context.Context, ids []string) ([]domain.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var records []userRecord
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&records).Error; err != nil {
		return nil, err
	}
	return toUsers(records), nil
}

func (r *userRepository) ListRecentActive(ctx context.Context, limit int) ([]domain.User, error) {
	q := r.db.WithContext(ctx).Where("status = ?", domain.UserStatusActive).Order("seq DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var records []userRecord
	if err := q.Find(&records).Error; err != nil {
		return nil, err
	}
	return toUsers(records), nil
}

func (r *userRepository) Upsert(ctx context.Context, user *domain.User) error {
	if user == nil || user.ID == "" {
		return domain.ErrInvalidPayload
	}

	rec := userRecord{
		ID:        user.ID,
		Name:      user.Name,
		Title:     user.Title,
		Email:     user.Email,
		Role:      user.Role,
		IsAdmin:   user.IsAdmin,
		Status:    user.Status,
		Metadata:  user.Metadata,
		CreatedAt: user.CreatedAt,
	}

	db := r.db.WithContext(ctx)
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "title", "email", "role", "is_admin", "status", "metadata", "updated_at"}),
	}).Create(&rec).Error; err != nil {
		return err
	}

	stored, err := r.GetByID(ctx, user.ID)
	if err != nil {
		return err
	}
	user.CreatedAt = stored.CreatedAt
	user.UpdatedAt = stored.UpdatedAt
	return nil
}

func toUsers(records []userRecord) []domain.User {
	users := make([]domain.User, 0, len(records))
	for i := range records {
		users = append(users, records[i].toDomain())
	}
	return users
}
