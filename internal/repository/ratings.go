package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ratehub/ratehub/internal/domain"
)

// avgStarsExpr is the single definition of a store's average rating. The
// listing query and the per-store aggregate both use it, so the two read
// paths cannot diverge. Zero ratings yield 0, not NULL and not an error.
const avgStarsExpr = `ROUND(COALESCE(AVG(r.stars), 0)::numeric, 2)::float8`

// RatingsRepository provides helpers for the rating ledger.
type RatingsRepository struct {
	pool *pgxpool.Pool
}

// RatingUpsertParams captures the payload required to upsert a rating.
type RatingUpsertParams struct {
	StoreID string
	UserID  string
	Stars   int32
}

// Upsert inserts or updates a rating and indicates whether it was newly
// created. The conflict target is the (store_id, user_id) primary key, so
// concurrent submissions for the same pair collapse to one row with the
// last-applied value.
func (r *RatingsRepository) Upsert(ctx context.Context, params RatingUpsertParams) (domain.Rating, bool, error) {
	const query = `
        INSERT INTO ratings (store_id, user_id, stars)
        VALUES ($1,$2,$3)
        ON CONFLICT (store_id, user_id)
        DO UPDATE SET stars = EXCLUDED.stars, updated_at = now()
        RETURNING store_id, user_id, stars, created_at, updated_at, (xmax = 0) AS inserted
    `

	var rating domain.Rating
	var inserted bool
	err := r.pool.QueryRow(ctx, query, params.StoreID, params.UserID, params.Stars).Scan(
		&rating.StoreID,
		&rating.UserID,
		&rating.Stars,
		&rating.CreatedAt,
		&rating.UpdatedAt,
		&inserted,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Rating{}, false, ErrNotFound
		}
		return domain.Rating{}, false, err
	}

	return rating, inserted, nil
}

// AverageByStore returns the store's average rating rounded to two decimals.
func (r *RatingsRepository) AverageByStore(ctx context.Context, storeID string) (float64, error) {
	query := fmt.Sprintf(`SELECT %s FROM ratings r WHERE r.store_id = $1`, avgStarsExpr)

	var average float64
	if err := r.pool.QueryRow(ctx, query, storeID).Scan(&average); err != nil {
		return 0, fmt.Errorf("average ratings: %w", err)
	}
	return average, nil
}

// TotalStarsByStore returns the sum of stars across the store's ratings.
func (r *RatingsRepository) TotalStarsByStore(ctx context.Context, storeID string) (int64, error) {
	const query = `SELECT COALESCE(SUM(stars), 0)::int8 FROM ratings WHERE store_id = $1`

	var total int64
	if err := r.pool.QueryRow(ctx, query, storeID).Scan(&total); err != nil {
		return 0, fmt.Errorf("total stars: %w", err)
	}
	return total, nil
}

// PlatformTotalStars returns the sum of stars across every rating on the
// platform.
func (r *RatingsRepository) PlatformTotalStars(ctx context.Context) (int64, error) {
	const query = `SELECT COALESCE(SUM(stars), 0)::int8 FROM ratings`

	var total int64
	if err := r.pool.QueryRow(ctx, query).Scan(&total); err != nil {
		return 0, fmt.Errorf("platform total stars: %w", err)
	}
	return total, nil
}

// GetUserRating returns the user's own star value for a store, or 0 when the
// user has not rated it. 0 is a sentinel, not a valid star value: stored
// ratings are always in [1,5].
func (r *RatingsRepository) GetUserRating(ctx context.Context, storeID, userID string) (int32, error) {
	const query = `SELECT stars FROM ratings WHERE store_id = $1 AND user_id = $2`

	var stars int32
	err := r.pool.QueryRow(ctx, query, storeID, userID).Scan(&stars)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, nil
		}
		return 0, err
	}
	return stars, nil
}

// ListByStore returns the store's ratings joined with each rater's identity,
// newest first.
func (r *RatingsRepository) ListByStore(ctx context.Context, storeID string) ([]domain.StoreRating, error) {
	const query = `
        SELECT r.stars, r.created_at, u.id, u.name, u.email
        FROM ratings r
        JOIN users u ON u.id = r.user_id
        WHERE r.store_id = $1
        ORDER BY r.created_at DESC
    `

	rows, err := r.pool.Query(ctx, query, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ratings := make([]domain.StoreRating, 0)
	for rows.Next() {
		var sr domain.StoreRating
		if err := rows.Scan(&sr.Stars, &sr.CreatedAt, &sr.Rater.ID, &sr.Rater.Name, &sr.Rater.Email); err != nil {
			return nil, err
		}
		ratings = append(ratings, sr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ratings, nil
}

// Count returns the number of ratings on the platform.
func (r *RatingsRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*)::int8 FROM ratings`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count ratings: %w", err)
	}
	return count, nil
}
