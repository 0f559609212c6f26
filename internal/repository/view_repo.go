package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/randevu-app/randevu-server/internal/db"
	"github.com/randevu-app/randevu-server/internal/utils/pagination"
)

// ViewRepository provides data access for profile views.
type ViewRepository struct {
	db *gorm.DB
}

// NewViewRepository creates a new repository bound to the given DB connection.
func NewViewRepository(database *gorm.DB) *ViewRepository {
	return &ViewRepository{db: database}
}

// Upsert records that viewer looked at viewed's profile.
//
// Behavior:
//   - If the (viewer_id, viewed_id) pair exists → created_at is refreshed
//     and is_seen reset to false (a view is a last-contact timestamp, not a
//     count).
//   - If it doesn't exist → a new row is inserted.
func (r *ViewRepository) Upsert(ctx context.Context, viewerID, viewedID uint64) error {
	view := db.ProfileView{
		ViewerID: viewerID,
		ViewedID: viewedID,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "viewer_id"}, {Name: "viewed_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"created_at": time.Now(),
				"is_seen":    false,
			}),
		}).
		Create(&view).Error
}

// ListViewers returns the most recent viewers of the given profile, newest
// first, with cursor-based pagination. The upsert invariant guarantees each
// viewer appears at most once.
func (r *ViewRepository) ListViewers(
	ctx context.Context,
	viewedID uint64,
	paginationToken *string,
	limit int,
) ([]db.ProfileView, *string, error) {
	var views []db.ProfileView

	cursor, err := pagination.Decode(getString(paginationToken))
	if err != nil {
		return nil, nil, err
	}

	query := r.db.WithContext(ctx).
		Model(&db.ProfileView{}).
		Where("viewed_id = ?", viewedID).
		Order("created_at DESC, viewer_id DESC").
		Limit(limit + 1)

	if cursor.UserID > 0 && cursor.CreatedUnix > 0 {
		ts := time.UnixMilli(cursor.CreatedUnix)
		query = query.Where(
			"(created_at < ? OR (created_at = ? AND viewer_id < ?))",
			ts, ts, cursor.UserID,
		)
	}

	if err := query.Find(&views).Error; err != nil {
		return nil, nil, err
	}

	var nextToken *string
	if len(views) > limit {
		last := views[limit-1]
		token, _ := pagination.Encode(pagination.Cursor{
			UserID:      last.ViewerID,
			CreatedUnix: last.CreatedAt.UnixMilli(),
		})
		nextToken = &token
		views = views[:limit]
	}

	return views, nextToken, nil
}

// CountUnseen counts profile views of userID that have not been
// acknowledged yet.
func (r *ViewRepository) CountUnseen(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.ProfileView{}).
		Where("viewed_id = ? AND is_seen = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkSeen acknowledges all currently-unseen views of userID's profile.
func (r *ViewRepository) MarkSeen(ctx context.Context, userID uint64) error {
	return r.db.WithContext(ctx).
		Model(&db.ProfileView{}).
		Where("viewed_id = ? AND is_seen = ?", userID, false).
		Update("is_seen", true).Error
}
