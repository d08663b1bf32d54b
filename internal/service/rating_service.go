package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/ratehub/ratehub/internal/domain"
	"github.com/ratehub/ratehub/internal/repository"
)

// RatingLedger is the slice of the rating repository the service needs.
type RatingLedger interface {
	Upsert(ctx context.Context, params repository.RatingUpsertParams) (domain.Rating, bool, error)
	AverageByStore(ctx context.Context, storeID string) (float64, error)
	TotalStarsByStore(ctx context.Context, storeID string) (int64, error)
	PlatformTotalStars(ctx context.Context) (int64, error)
	GetUserRating(ctx context.Context, storeID, userID string) (int32, error)
	ListByStore(ctx context.Context, storeID string) ([]domain.StoreRating, error)
}

// RatingService handles rating submissions and aggregate reads.
type RatingService interface {
	SubmitRating(ctx context.Context, storeID, userID string, stars int32) (domain.Rating, bool, error)
	AverageRating(ctx context.Context, storeID string) (float64, error)
	TotalStars(ctx context.Context, storeID string) (int64, error)
	PlatformTotalStars(ctx context.Context) (int64, error)
	UserRatingForStore(ctx context.Context, storeID, userID string) (int32, error)
	StoreRatings(ctx context.Context, storeID string) ([]domain.StoreRating, error)
}

type ratingService struct {
	ledger RatingLedger
	logger *zap.Logger
}

// NewRatingService creates a new rating service.
func NewRatingService(ledger RatingLedger, logger *zap.Logger) RatingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ratingService{ledger: ledger, logger: logger}
}

// SubmitRating records the user's rating for a store, replacing any previous
// one. The ledger guarantees at most one row per (store, user) pair; the
// boolean reports whether the rating was newly created.
func (s *ratingService) SubmitRating(ctx context.Context, storeID, userID string, stars int32) (domain.Rating, bool, error) {
	if stars < 1 || stars > 5 {
		return domain.Rating{}, false, ErrInvalidStars
	}

	rating, inserted, err := s.ledger.Upsert(ctx, repository.RatingUpsertParams{
		StoreID: storeID,
		UserID:  userID,
		Stars:   stars,
	})
	if err != nil {
		return domain.Rating{}, false, err
	}

	s.logger.Info("rating submitted",
		zap.String("store_id", storeID),
		zap.String("user_id", userID),
		zap.Int32("stars", stars),
		zap.Bool("inserted", inserted))
	return rating, inserted, nil
}

// AverageRating returns the store's average rating, 0 when it has none.
// Aggregating over an unknown store id also yields 0; existence checks are
// the caller's concern.
func (s *ratingService) AverageRating(ctx context.Context, storeID string) (float64, error) {
	return s.ledger.AverageByStore(ctx, storeID)
}

// TotalStars returns the sum of stars across the store's ratings.
func (s *ratingService) TotalStars(ctx context.Context, storeID string) (int64, error) {
	return s.ledger.TotalStarsByStore(ctx, storeID)
}

// PlatformTotalStars returns the sum of stars across every rating.
func (s *ratingService) PlatformTotalStars(ctx context.Context) (int64, error) {
	return s.ledger.PlatformTotalStars(ctx)
}

// UserRatingForStore returns the user's star value for the store, with 0
// meaning "not rated". A genuine 0-star rating cannot exist.
func (s *ratingService) UserRatingForStore(ctx context.Context, storeID, userID string) (int32, error) {
	return s.ledger.GetUserRating(ctx, storeID, userID)
}

// StoreRatings returns the store's ratings with each rater's identity.
func (s *ratingService) StoreRatings(ctx context.Context, storeID string) ([]domain.StoreRating, error) {
	return s.ledger.ListByStore(ctx, storeID)
}
