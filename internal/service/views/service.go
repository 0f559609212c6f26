package views

import (
	"context"
	"time"

	"github.com/randevu-app/randevu-server/internal/app"
	"github.com/randevu-app/randevu-server/internal/repository"
)

// recordTimeout bounds the detached profile-view write.
const recordTimeout = 5 * time.Second

// Service records profile views and lists recent viewers.
type Service struct {
	appCtx   *app.AppContext
	viewRepo *repository.ViewRepository
}

// NewService creates the views service with dependencies from AppContext.
func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:   appCtx,
		viewRepo: repository.NewViewRepository(appCtx.DB),
	}
}

// RecordView upserts the (viewer, viewed) row, refreshing its timestamp and
// resetting the seen flag. Self-views are a silent no-op.
func (s *Service) RecordView(ctx context.Context, viewerID, viewedID uint64) error {
	if viewerID == viewedID {
		return nil
	}
	return s.viewRepo.Upsert(ctx, viewerID, viewedID)
}

// DispatchRecord records the view on a detached goroutine so the caller's
// response never waits on it. Failures are logged and dropped; the viewer
// must never see them.
func (s *Service) DispatchRecord(viewerID, viewedID uint64) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()

		if err := s.RecordView(ctx, viewerID, viewedID); err != nil {
			s.appCtx.Logger.Warn("profile view dropped", "viewer", viewerID, "viewed", viewedID, "err", err)
		}
	}()
}

// Viewer is one entry of the "who viewed me" listing.
type Viewer struct {
	UserID       uint64 `json:"user_id"`
	LastViewedAt int64  `json:"last_viewed_at"`
}

// ListViewers returns the most recent viewers of userID's profile, newest
// first. The store's upsert invariant guarantees each viewer appears once.
func (s *Service) ListViewers(ctx context.Context, userID uint64, paginationToken *string, limit int) ([]Viewer, *string, error) {
	rows, nextToken, err := s.viewRepo.ListViewers(ctx, userID, paginationToken, limit)
	if err != nil {
		return nil, nil, err
	}

	viewers := make([]Viewer, 0, len(rows))
	for _, v := range rows {
		viewers = append(viewers, Viewer{
			UserID:       v.ViewerID,
			LastViewedAt: v.CreatedAt.UnixMilli(),
		})
	}
	return viewers, nextToken, nil
}
