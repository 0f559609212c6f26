package notifications_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/randevu-app/randevu-server/internal/app"
	"github.com/randevu-app/randevu-server/internal/db"
	svcErr "github.com/randevu-app/randevu-server/internal/errors"
	"github.com/randevu-app/randevu-server/internal/service/notifications"
)

func setupService(t *testing.T) (*notifications.Service, *gorm.DB) {
	t.Helper()

	dbName := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	dbase, err := gorm.Open(sqlite.Open(dbName), &gorm.Config{
		NowFunc:                func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	sqlDB, err := dbase.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, dbase.AutoMigrate(&db.Like{}, &db.Match{}, &db.ProfileView{}, &db.Message{}))

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	appCtx := app.New(dbase, nil, log)
	return notifications.NewService(appCtx), dbase
}

func TestGetCountsAggregatesAllStreams(t *testing.T) {
	ctx := context.Background()
	svc, dbase := setupService(t)

	const me = uint64(7)

	require.NoError(t, dbase.Create(&db.Like{SenderID: 1, ReceiverID: me}).Error)
	require.NoError(t, dbase.Create(&db.Like{SenderID: 2, ReceiverID: me}).Error)
	require.NoError(t, dbase.Create(&db.Like{SenderID: 3, ReceiverID: me}).Error)
	require.NoError(t, dbase.Create(&db.Match{User1ID: 1, User2ID: me}).Error)
	require.NoError(t, dbase.Create(&db.Match{User1ID: 2, User2ID: me}).Error)
	require.NoError(t, dbase.Create(&db.ProfileView{ViewerID: 4, ViewedID: me}).Error)
	require.NoError(t, dbase.Create(&db.Message{SenderID: 1, ReceiverID: me, Text: "hi"}).Error)

	// noise for another user
	require.NoError(t, dbase.Create(&db.Like{SenderID: 1, ReceiverID: 9}).Error)

	counts, err := svc.GetCounts(ctx, me)
	require.NoError(t, err)
	assert.Equal(t, int64(3), counts.Likes)
	assert.Equal(t, int64(2), counts.Matches)
	assert.Equal(t, int64(1), counts.Views)
	assert.Equal(t, int64(1), counts.Messages)
	assert.Equal(t, int64(7), counts.Total)
}

func TestAcknowledgeClearsOnlyItsStream(t *testing.T) {
	ctx := context.Background()
	svc, dbase := setupService(t)

	const me = uint64(7)

	for i := uint64(1); i <= 3; i++ {
		require.NoError(t, dbase.Create(&db.Like{SenderID: i, ReceiverID: me}).Error)
	}
	require.NoError(t, dbase.Create(&db.Match{User1ID: 1, User2ID: me}).Error)
	require.NoError(t, dbase.Create(&db.Match{User1ID: 2, User2ID: me}).Error)

	counts, err := svc.GetCounts(ctx, me)
	require.NoError(t, err)
	assert.Equal(t, int64(3), counts.Likes)
	assert.Equal(t, int64(2), counts.Matches)

	require.NoError(t, svc.Acknowledge(ctx, me, notifications.StreamLike))

	counts, err = svc.GetCounts(ctx, me)
	require.NoError(t, err)
	assert.Equal(t, int64(0), counts.Likes)
	assert.Equal(t, int64(2), counts.Matches)

	// a like arriving after acknowledgement is unseen again
	require.NoError(t, dbase.Create(&db.Like{SenderID: 4, ReceiverID: me}).Error)

	counts, err = svc.GetCounts(ctx, me)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.Likes)
}

func TestAcknowledgeViewStream(t *testing.T) {
	ctx := context.Background()
	svc, dbase := setupService(t)

	require.NoError(t, dbase.Create(&db.ProfileView{ViewerID: 1, ViewedID: 7}).Error)

	require.NoError(t, svc.Acknowledge(ctx, 7, notifications.StreamView))

	counts, err := svc.GetCounts(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(0), counts.Views)
}

func TestAcknowledgeUnknownStream(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	err := svc.Acknowledge(ctx, 7, notifications.Stream("MESSAGE"))
	assert.ErrorIs(t, err, svcErr.ErrInvalidArgument)
}
