package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/randevu-app/randevu-server/internal/db"
)

// UserRepository provides read-only access to user records. User and
// profile data are owned by the profile surface; this core only ever needs
// existence checks.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new repository bound to the given DB connection.
func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{db: database}
}

// Exists checks whether a user with the given id exists.
func (r *UserRepository) Exists(ctx context.Context, userID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.User{}).
		Where("id = ?", userID).
		Count(&count).Error
	return count > 0, err
}
