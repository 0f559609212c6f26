package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/randevu-app/randevu-server/internal/db"
)

// FavoriteRepository provides data access for favorite bookmarks.
type FavoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository creates a new repository bound to the given DB connection.
func NewFavoriteRepository(database *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: database}
}

// Create inserts a favorite row for user → target. Returns
// gorm.ErrDuplicatedKey if the pair already exists (composite PK); the
// service layer resolves that as "already favorited" when two toggles race.
func (r *FavoriteRepository) Create(ctx context.Context, userID, favoriteID uint64) error {
	fav := db.Favorite{
		UserID:     userID,
		FavoriteID: favoriteID,
	}
	return r.db.WithContext(ctx).Create(&fav).Error
}

// Delete removes the favorite row for user → target. Deleting a row that is
// already gone is not an error.
func (r *FavoriteRepository) Delete(ctx context.Context, userID, favoriteID uint64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND favorite_id = ?", userID, favoriteID).
		Delete(&db.Favorite{}).Error
}

// Exists checks whether user has favorited target.
func (r *FavoriteRepository) Exists(ctx context.Context, userID, favoriteID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.Favorite{}).
		Where("user_id = ? AND favorite_id = ?", userID, favoriteID).
		Count(&count).Error
	return count > 0, err
}

// ListForUser returns all favorites of the given user, newest first.
func (r *FavoriteRepository) ListForUser(ctx context.Context, userID uint64) ([]db.Favorite, error) {
	var favs []db.Favorite
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favs).Error
	return favs, err
}
