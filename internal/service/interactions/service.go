package interactions

import (
	"context"

	"github.com/randevu-app/randevu-server/internal/app"
	svcErr "github.com/randevu-app/randevu-server/internal/errors"
	"github.com/randevu-app/randevu-server/internal/repository"
)

// Outcome is the result of a like or favorite operation.
type Outcome string

const (
	OutcomeLiked       Outcome = "LIKED"
	OutcomeMatched     Outcome = "MATCHED"
	OutcomeFavorited   Outcome = "FAVORITED"
	OutcomeUnfavorited Outcome = "UNFAVORITED"
)

// Service implements the interaction operations: recording likes (with
// mutual-match detection) and toggling favorites.
type Service struct {
	appCtx          *app.AppContext
	interactionRepo *repository.InteractionRepository
	favoriteRepo    *repository.FavoriteRepository
	userRepo        *repository.UserRepository
}

// NewService creates the interactions service with dependencies from AppContext.
func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:          appCtx,
		interactionRepo: repository.NewInteractionRepository(appCtx.DB),
		favoriteRepo:    repository.NewFavoriteRepository(appCtx.DB),
		userRepo:        repository.NewUserRepository(appCtx.DB),
	}
}

// RecordLike records sender's like of target and reports whether it
// completed a mutual match.
//
// Behavior:
//   - Liking twice is a no-op returning OutcomeLiked; it never errors and
//     never double-matches.
//   - When the reciprocal like already exists, the canonical match row is
//     created exactly once. Two reciprocal likes racing both reach the
//     match insert; the unique pair index lets one through and the other's
//     duplicate-key error is absorbed as OutcomeMatched.
func (s *Service) RecordLike(ctx context.Context, senderID, targetID uint64) (Outcome, error) {
	s.appCtx.Logger.Debug("RecordLike called", "sender", senderID, "target", targetID)

	if senderID == targetID {
		return "", svcErr.ErrSelfReference
	}

	for _, id := range []uint64{senderID, targetID} {
		exists, err := s.userRepo.Exists(ctx, id)
		if err != nil {
			return "", err
		}
		if !exists {
			return "", svcErr.ErrUserNotFound
		}
	}

	if err := s.interactionRepo.CreateLike(ctx, senderID, targetID); err != nil {
		if svcErr.IsDuplicate(err) {
			// already liked — idempotent replay, no match re-check
			return OutcomeLiked, nil
		}
		return "", err
	}

	reciprocal, err := s.interactionRepo.HasLiked(ctx, targetID, senderID)
	if err != nil {
		return "", err
	}
	if !reciprocal {
		return OutcomeLiked, nil
	}

	if err := s.interactionRepo.CreateMatch(ctx, senderID, targetID); err != nil && !svcErr.IsDuplicate(err) {
		return "", err
	}

	s.appCtx.Logger.Info("mutual match", "user_a", senderID, "user_b", targetID)
	return OutcomeMatched, nil
}

// ToggleFavorite flips the favorite bookmark user → target.
//
// If the favorite exists it is deleted (OutcomeUnfavorited), otherwise it is
// created (OutcomeFavorited). Two toggles racing on the create resolve via
// the composite PK: the losing insert's duplicate-key error is absorbed,
// leaving the store in the favorited state.
func (s *Service) ToggleFavorite(ctx context.Context, userID, targetID uint64) (Outcome, error) {
	s.appCtx.Logger.Debug("ToggleFavorite called", "user", userID, "target", targetID)

	exists, err := s.userRepo.Exists(ctx, targetID)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", svcErr.ErrUserNotFound
	}

	favorited, err := s.favoriteRepo.Exists(ctx, userID, targetID)
	if err != nil {
		return "", err
	}

	if favorited {
		if err := s.favoriteRepo.Delete(ctx, userID, targetID); err != nil {
			return "", err
		}
		return OutcomeUnfavorited, nil
	}

	if err := s.favoriteRepo.Create(ctx, userID, targetID); err != nil && !svcErr.IsDuplicate(err) {
		return "", err
	}
	return OutcomeFavorited, nil
}

// ListLikers returns users who liked the recipient, newest first, with an
// opaque pagination token.
func (s *Service) ListLikers(ctx context.Context, userID uint64, paginationToken *string, limit int) ([]Liker, *string, error) {
	likes, nextToken, err := s.interactionRepo.ListLikers(ctx, userID, paginationToken, limit)
	if err != nil {
		return nil, nil, err
	}

	likers := make([]Liker, 0, len(likes))
	for _, l := range likes {
		likers = append(likers, Liker{
			UserID:  l.SenderID,
			LikedAt: l.CreatedAt.UnixMilli(),
		})
	}
	return likers, nextToken, nil
}

// Liker is one entry of the "who liked me" listing.
type Liker struct {
	UserID  uint64 `json:"user_id"`
	LikedAt int64  `json:"liked_at"`
}
