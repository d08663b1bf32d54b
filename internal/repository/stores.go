package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ratehub/ratehub/internal/domain"
)

// StoresRepository provides persistence helpers for store entities.
type StoresRepository struct {
	pool *pgxpool.Pool
}

const storeColumns = `
    id,
    store_name,
    email,
    address,
    owner_id,
    created_at,
    updated_at
`

const insertStoreSQL = `
    INSERT INTO stores (store_name, email, address, owner_id)
    VALUES ($1,$2,$3,$4)
    RETURNING ` + storeColumns

// StoreCreateParams bundles the fields required to create a store.
type StoreCreateParams struct {
	StoreName string
	Email     string
	Address   string
	OwnerID   string
}

// StoreListFilters encapsulates the filter, sort, and projection options for
// the store listing. Name and Address are independent case-insensitive
// substring matches; both must hold when both are given. IncludeOwner widens
// the projection with the owning user's identity and never changes which rows
// are returned.
type StoreListFilters struct {
	Name         *string
	Address      *string
	SortField    string
	SortOrder    string
	IncludeOwner bool
}

// Create inserts a new store row and returns the stored entity.
func (r *StoresRepository) Create(ctx context.Context, params StoreCreateParams) (domain.Store, error) {
	row := r.pool.QueryRow(ctx, insertStoreSQL, params.StoreName, params.Email, params.Address, params.OwnerID)
	return scanStore(row)
}

// GetByID fetches a store by its identifier.
func (r *StoresRepository) GetByID(ctx context.Context, id string) (domain.Store, error) {
	query := fmt.Sprintf(`SELECT %s FROM stores WHERE id = $1`, storeColumns)
	row := r.pool.QueryRow(ctx, query, id)
	st, err := scanStore(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Store{}, ErrNotFound
		}
		return domain.Store{}, err
	}
	return st, nil
}

// GetByOwner fetches the store owned by the given user. Each STORE_OWNER has
// exactly one store, guaranteed by the unique owner_id constraint.
func (r *StoresRepository) GetByOwner(ctx context.Context, ownerID string) (domain.Store, error) {
	query := fmt.Sprintf(`SELECT %s FROM stores WHERE owner_id = $1`, storeColumns)
	row := r.pool.QueryRow(ctx, query, ownerID)
	st, err := scanStore(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Store{}, ErrNotFound
		}
		return domain.Store{}, err
	}
	return st, nil
}

// Delete removes a store. Its ratings go with it via the cascade.
func (r *StoresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM stores WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns store listings matching the provided filters. The per-store
// average rating is computed in the same grouped query that produces the
// rows, so a listing of N stores costs one round trip, and the average shown
// is the same value AverageByStore would report.
func (r *StoresRepository) List(ctx context.Context, filters StoreListFilters) ([]domain.StoreListing, error) {
	where := make([]string, 0)
	args := make([]interface{}, 0)
	arg := func(value interface{}) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if filters.Name != nil && strings.TrimSpace(*filters.Name) != "" {
		where = append(where, fmt.Sprintf("s.store_name ILIKE %s", arg("%"+strings.TrimSpace(*filters.Name)+"%")))
	}
	if filters.Address != nil && strings.TrimSpace(*filters.Address) != "" {
		where = append(where, fmt.Sprintf("s.address ILIKE %s", arg("%"+strings.TrimSpace(*filters.Address)+"%")))
	}

	queryBuilder := strings.Builder{}
	queryBuilder.WriteString("SELECT s.id, s.store_name, s.address, s.created_at, ")
	queryBuilder.WriteString(avgStarsExpr)
	queryBuilder.WriteString(" AS average_rating")
	if filters.IncludeOwner {
		queryBuilder.WriteString(", u.id, u.name, u.email")
	}
	queryBuilder.WriteString(" FROM stores s LEFT JOIN ratings r ON r.store_id = s.id")
	if filters.IncludeOwner {
		queryBuilder.WriteString(" JOIN users u ON u.id = s.owner_id")
	}
	if len(where) > 0 {
		queryBuilder.WriteString(" WHERE ")
		queryBuilder.WriteString(strings.Join(where, " AND "))
	}
	queryBuilder.WriteString(" GROUP BY s.id")
	if filters.IncludeOwner {
		queryBuilder.WriteString(", u.id")
	}
	queryBuilder.WriteString(" ORDER BY ")
	queryBuilder.WriteString(sortClause(filters.SortField, filters.SortOrder))
	queryBuilder.WriteString(", s.id ASC")

	rows, err := r.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	listings := make([]domain.StoreListing, 0)
	for rows.Next() {
		var listing domain.StoreListing
		dest := []interface{}{&listing.ID, &listing.StoreName, &listing.Address, &listing.CreatedAt, &listing.AverageRating}
		var owner domain.Owner
		if filters.IncludeOwner {
			dest = append(dest, &owner.ID, &owner.Name, &owner.Email)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		if filters.IncludeOwner {
			listing.Owner = &owner
		}
		listings = append(listings, listing)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return listings, nil
}

// sortClause maps a requested sort field onto a SQL ORDER BY expression.
// Fields outside the allow-list fall back to created_at ASC rather than
// erroring; "ratings" sorts by the computed average from the grouped query.
func sortClause(field, order string) string {
	direction := "ASC"
	if strings.EqualFold(order, "DESC") {
		direction = "DESC"
	}

	switch field {
	case "storeName":
		return "s.store_name " + direction
	case "address":
		return "s.address " + direction
	case "createdAt":
		return "s.created_at " + direction
	case "ratings":
		return "average_rating " + direction
	default:
		return "s.created_at ASC"
	}
}

// Count returns the number of stores on the platform.
func (r *StoresRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*)::int8 FROM stores`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count stores: %w", err)
	}
	return count, nil
}

func scanStore(row pgx.Row) (domain.Store, error) {
	var st domain.Store
	err := row.Scan(
		&st.ID,
		&st.StoreName,
		&st.Email,
		&st.Address,
		&st.OwnerID,
		&st.CreatedAt,
		&st.UpdatedAt,
	)
	if err != nil {
		return domain.Store{}, err
	}
	return st, nil
}
