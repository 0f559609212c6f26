package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/randevu-app/randevu-server/internal/db"
	"github.com/randevu-app/randevu-server/internal/repository"
)

// setup in-memory DB
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NowFunc:        func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := database.AutoMigrate(&db.Like{}, &db.Match{}, &db.Favorite{}, &db.ProfileView{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return database
}

func TestCreateLikeIsUniquePerPair(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewInteractionRepository(dbase)

	require.NoError(t, repo.CreateLike(ctx, 1, 2))

	// second insert for the same pair hits the composite PK
	err := repo.CreateLike(ctx, 1, 2)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// reverse direction is a different pair
	assert.NoError(t, repo.CreateLike(ctx, 2, 1))

	var count int64
	dbase.Model(&db.Like{}).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestCreateMatchCanonicalOrdering(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewInteractionRepository(dbase)

	// arguments in "wrong" order still store user1 < user2
	require.NoError(t, repo.CreateMatch(ctx, 9, 4))

	var m db.Match
	require.NoError(t, dbase.First(&m).Error)
	assert.Equal(t, uint64(4), m.User1ID)
	assert.Equal(t, uint64(9), m.User2ID)
	assert.False(t, m.IsSeen)

	// either argument order collides with the same canonical row
	assert.ErrorIs(t, repo.CreateMatch(ctx, 4, 9), gorm.ErrDuplicatedKey)
	assert.ErrorIs(t, repo.CreateMatch(ctx, 9, 4), gorm.ErrDuplicatedKey)

	var count int64
	dbase.Model(&db.Match{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestHasLiked(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewInteractionRepository(dbase)

	require.NoError(t, repo.CreateLike(ctx, 1, 2))

	liked, err := repo.HasLiked(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = repo.HasLiked(ctx, 2, 1)
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestListLikersAndPagination(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewInteractionRepository(dbase)

	// stagger created_at so ordering is deterministic
	base := time.Now().UTC().Truncate(time.Millisecond).Add(-time.Hour)
	for i := uint64(1); i <= 5; i++ {
		like := db.Like{SenderID: i, ReceiverID: 99, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		require.NoError(t, dbase.Create(&like).Error)
	}

	likes, nextToken, err := repo.ListLikers(ctx, 99, nil, 3)
	require.NoError(t, err)
	require.Len(t, likes, 3)
	require.NotNil(t, nextToken)
	assert.Equal(t, uint64(5), likes[0].SenderID) // newest first
	assert.Equal(t, uint64(3), likes[2].SenderID)

	likes, nextToken, err = repo.ListLikers(ctx, 99, nextToken, 3)
	require.NoError(t, err)
	require.Len(t, likes, 2)
	assert.Nil(t, nextToken)
	assert.Equal(t, uint64(2), likes[0].SenderID)
	assert.Equal(t, uint64(1), likes[1].SenderID)
}

func TestUnseenCountsAndAcknowledge(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewInteractionRepository(dbase)

	require.NoError(t, repo.CreateLike(ctx, 1, 7))
	require.NoError(t, repo.CreateLike(ctx, 2, 7))
	require.NoError(t, repo.CreateMatch(ctx, 7, 2))

	likes, err := repo.CountUnseenLikes(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(2), likes)

	matches, err := repo.CountUnseenMatches(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), matches)

	// the other side of the match sees it too
	matches, err = repo.CountUnseenMatches(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), matches)

	require.NoError(t, repo.MarkLikesSeen(ctx, 7))
	likes, err = repo.CountUnseenLikes(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(0), likes)

	// match stream untouched by the like acknowledgement
	matches, err = repo.CountUnseenMatches(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), matches)

	require.NoError(t, repo.MarkMatchesSeen(ctx, 7))
	matches, err = repo.CountUnseenMatches(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(0), matches)
}
