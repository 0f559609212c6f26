package notifications

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/randevu-app/randevu-server/internal/app"
	svcErr "github.com/randevu-app/randevu-server/internal/errors"
	"github.com/randevu-app/randevu-server/internal/repository"
)

// Stream identifies an acknowledgeable event stream. The message stream is
// owned by the message transport and cannot be acknowledged here.
type Stream string

const (
	StreamLike  Stream = "LIKE"
	StreamMatch Stream = "MATCH"
	StreamView  Stream = "VIEW"
)

// Counts is a point-in-time snapshot of a user's unseen events. The four
// sub-counts are independent reads with no transactional consistency across
// them; a notification badge is allowed to be approximate.
type Counts struct {
	Messages int64 `json:"messages"`
	Likes    int64 `json:"likes"`
	Matches  int64 `json:"matches"`
	Views    int64 `json:"views"`
	Total    int64 `json:"total"`
}

// Service aggregates unseen-event counts and handles per-stream
// acknowledgement.
type Service struct {
	appCtx          *app.AppContext
	interactionRepo *repository.InteractionRepository
	viewRepo        *repository.ViewRepository
	messageRepo     *repository.MessageRepository
}

// NewService creates the notifications service with dependencies from AppContext.
func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:          appCtx,
		interactionRepo: repository.NewInteractionRepository(appCtx.DB),
		viewRepo:        repository.NewViewRepository(appCtx.DB),
		messageRepo:     repository.NewMessageRepository(appCtx.DB),
	}
}

// GetCounts returns the unseen counts across all four streams. The
// sub-queries are independent and run concurrently; counts are always
// computed from the store, never cached.
func (s *Service) GetCounts(ctx context.Context, userID uint64) (Counts, error) {
	var c Counts

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.messageRepo.CountUnread(gctx, userID)
		c.Messages = n
		return err
	})
	g.Go(func() error {
		n, err := s.interactionRepo.CountUnseenLikes(gctx, userID)
		c.Likes = n
		return err
	})
	g.Go(func() error {
		n, err := s.interactionRepo.CountUnseenMatches(gctx, userID)
		c.Matches = n
		return err
	})
	g.Go(func() error {
		n, err := s.viewRepo.CountUnseen(gctx, userID)
		c.Views = n
		return err
	})

	if err := g.Wait(); err != nil {
		return Counts{}, err
	}

	c.Total = c.Messages + c.Likes + c.Matches + c.Views
	return c, nil
}

// Acknowledge marks all currently-unseen events of the given stream as
// seen. Events created after the update runs remain unseen; there is no
// path back from seen to unseen except a new event of the same kind.
func (s *Service) Acknowledge(ctx context.Context, userID uint64, stream Stream) error {
	s.appCtx.Logger.Debug("Acknowledge called", "user", userID, "stream", stream)

	switch stream {
	case StreamLike:
		return s.interactionRepo.MarkLikesSeen(ctx, userID)
	case StreamMatch:
		return s.interactionRepo.MarkMatchesSeen(ctx, userID)
	case StreamView:
		return s.viewRepo.MarkSeen(ctx, userID)
	default:
		return svcErr.InvalidArgument("unknown notification stream")
	}
}
