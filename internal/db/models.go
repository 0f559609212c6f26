package db

import (
	"time"
)

// User table. Profile fields are owned by the profile surface; this core
// only ever reads user existence.
type User struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement"`
	Username     string `gorm:"uniqueIndex;size:64;not null"`
	Email        string `gorm:"uniqueIndex;size:128;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Name         string `gorm:"size:64"`
	Bio          string `gorm:"size:512"`
	City         string `gorm:"size:64"`
	Age          int    `gorm:"default:0"`
	Gender       string `gorm:"size:16"`
	LastSeen     time.Time
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// Like is a one-directional like from sender to receiver.
//
// Composite PK: (SenderID, ReceiverID)
//   - At most one like per ordered pair; a second insert fails on the PK,
//     which callers treat as "already liked".
//
// Likes are permanent: rows are never updated except IsSeen, never deleted.
//
// Indexes:
//   - idx_like_receiver_seen(receiver_id, is_seen) for unseen-like counts
//     and "who liked me" listings.
type Like struct {
	SenderID   uint64    `gorm:"primaryKey"`
	ReceiverID uint64    `gorm:"primaryKey;index:idx_like_receiver_seen,priority:1"`
	IsSeen     bool      `gorm:"not null;default:false;index:idx_like_receiver_seen,priority:2"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

// Favorite is a reversible bookmark of another user's profile.
//
// Composite PK: (UserID, FavoriteID) — at most one row per ordered pair.
// This is the only relation with a delete path (toggle-off).
type Favorite struct {
	UserID     uint64    `gorm:"primaryKey"`
	FavoriteID uint64    `gorm:"primaryKey"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

// Match is the canonical record of a mutual like.
//
// Invariant: User1ID < User2ID, so the unordered pair has exactly one
// representation. The unique index on (user1_id, user2_id) is what makes
// concurrent reciprocal likes converge on a single row: the losing insert
// fails with a duplicate key, which callers treat as "already matched".
type Match struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	User1ID   uint64    `gorm:"not null;uniqueIndex:idx_match_pair,priority:1"`
	User2ID   uint64    `gorm:"not null;uniqueIndex:idx_match_pair,priority:2"`
	IsSeen    bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// ProfileView records that viewer looked at viewed's profile.
//
// Composite PK: (ViewerID, ViewedID). Repeated views collapse into the same
// row with CreatedAt refreshed and IsSeen reset, so CreatedAt is a
// last-contact timestamp rather than a count.
type ProfileView struct {
	ViewerID  uint64    `gorm:"primaryKey"`
	ViewedID  uint64    `gorm:"primaryKey;index:idx_view_viewed_seen,priority:1"`
	IsSeen    bool      `gorm:"not null;default:false;index:idx_view_viewed_seen,priority:2"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_view_created,sort:desc"`
}

// Message rows are owned by the message transport. This core migrates the
// table and reads the unread count, nothing else.
type Message struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement"`
	SenderID   uint64    `gorm:"not null;index"`
	ReceiverID uint64    `gorm:"not null;index:idx_msg_receiver_read,priority:1"`
	Text       string    `gorm:"size:2048"`
	ImageURL   string    `gorm:"size:512"`
	IsRead     bool      `gorm:"not null;default:false;index:idx_msg_receiver_read,priority:2"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}
