package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/randevu-app/randevu-server/internal/db"
)

// MessageRepository reads message state owned by the message transport.
// This core never mutates message rows; read-flag semantics belong to the
// transport.
type MessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new repository bound to the given DB connection.
func NewMessageRepository(database *gorm.DB) *MessageRepository {
	return &MessageRepository{db: database}
}

// CountUnread counts messages addressed to userID that the transport has
// not marked read yet.
func (r *MessageRepository) CountUnread(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.Message{}).
		Where("receiver_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}
