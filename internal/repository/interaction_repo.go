package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/randevu-app/randevu-server/internal/db"
	"github.com/randevu-app/randevu-server/internal/utils/pagination"
)

// InteractionRepository provides data access for likes and matches.
// All mutual exclusion is delegated to the store's uniqueness constraints:
// no read-then-write path here is trusted on its own, the inserts are.
type InteractionRepository struct {
	db *gorm.DB
}

// NewInteractionRepository creates a new repository bound to the given DB connection.
func NewInteractionRepository(database *gorm.DB) *InteractionRepository {
	return &InteractionRepository{db: database}
}

// CreateLike inserts a like row for sender → receiver.
//
// The composite PK (sender_id, receiver_id) makes the insert fail with
// gorm.ErrDuplicatedKey when the pair already exists; callers treat that as
// "already liked". Likes are never upserted — they are permanent signals.
func (r *InteractionRepository) CreateLike(ctx context.Context, senderID, receiverID uint64) error {
	like := db.Like{
		SenderID:   senderID,
		ReceiverID: receiverID,
	}
	return r.db.WithContext(ctx).Create(&like).Error
}

// HasLiked checks whether sender has liked receiver.
func (r *InteractionRepository) HasLiked(ctx context.Context, senderID, receiverID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.Like{}).
		Where("sender_id = ? AND receiver_id = ?", senderID, receiverID).
		Count(&count).Error
	return count > 0, err
}

// CreateMatch inserts the canonical match row for the unordered pair {a, b}.
//
// The pair is stored with user1_id < user2_id so it has exactly one
// representation regardless of which side triggered it. When two reciprocal
// likes race, both callers attempt this insert and the unique index on
// (user1_id, user2_id) lets exactly one through; the loser gets
// gorm.ErrDuplicatedKey and must treat it as already matched.
func (r *InteractionRepository) CreateMatch(ctx context.Context, a, b uint64) error {
	u1, u2 := a, b
	if u2 < u1 {
		u1, u2 = u2, u1
	}
	match := db.Match{
		User1ID: u1,
		User2ID: u2,
	}
	return r.db.WithContext(ctx).Create(&match).Error
}

// ListLikers returns users who liked the given receiver, newest first.
//
// Ordered by created_at DESC, sender_id DESC with cursor-based pagination
// via paginationToken.
func (r *InteractionRepository) ListLikers(
	ctx context.Context,
	receiverID uint64,
	paginationToken *string,
	limit int,
) ([]db.Like, *string, error) {
	var likes []db.Like

	cursor, err := pagination.Decode(getString(paginationToken))
	if err != nil {
		return nil, nil, err
	}

	query := r.db.WithContext(ctx).
		Model(&db.Like{}).
		Where("receiver_id = ?", receiverID).
		Order("created_at DESC, sender_id DESC").
		Limit(limit + 1)

	if cursor.UserID > 0 && cursor.CreatedUnix > 0 {
		ts := time.UnixMilli(cursor.CreatedUnix)
		query = query.Where(
			"(created_at < ? OR (created_at = ? AND sender_id < ?))",
			ts, ts, cursor.UserID,
		)
	}

	if err := query.Find(&likes).Error; err != nil {
		return nil, nil, err
	}

	var nextToken *string
	if len(likes) > limit {
		last := likes[limit-1]
		token, _ := pagination.Encode(pagination.Cursor{
			UserID:      last.SenderID,
			CreatedUnix: last.CreatedAt.UnixMilli(),
		})
		nextToken = &token
		likes = likes[:limit]
	}

	return likes, nextToken, nil
}

// CountUnseenLikes counts likes received by userID that have not been
// acknowledged yet.
func (r *InteractionRepository) CountUnseenLikes(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.Like{}).
		Where("receiver_id = ? AND is_seen = ?", userID, false).
		Count(&count).Error
	return count, err
}

// CountUnseenMatches counts unacknowledged matches involving userID on
// either side of the pair.
func (r *InteractionRepository) CountUnseenMatches(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.Match{}).
		Where("(user1_id = ? OR user2_id = ?) AND is_seen = ?", userID, userID, false).
		Count(&count).Error
	return count, err
}

// MarkLikesSeen acknowledges all currently-unseen likes received by userID.
// Likes created after this statement runs remain unseen.
func (r *InteractionRepository) MarkLikesSeen(ctx context.Context, userID uint64) error {
	return r.db.WithContext(ctx).
		Model(&db.Like{}).
		Where("receiver_id = ? AND is_seen = ?", userID, false).
		Update("is_seen", true).Error
}

// MarkMatchesSeen acknowledges all currently-unseen matches involving userID.
func (r *InteractionRepository) MarkMatchesSeen(ctx context.Context, userID uint64) error {
	return r.db.WithContext(ctx).
		Model(&db.Match{}).
		Where("(user1_id = ? OR user2_id = ?) AND is_seen = ?", userID, userID, false).
		Update("is_seen", true).Error
}

// getString safely dereferences a string pointer for pagination tokens.
func getString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
