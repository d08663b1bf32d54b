package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ratehub/ratehub/internal/domain"
)

// UsersRepository provides persistence helpers for user accounts.
type UsersRepository struct {
	pool *pgxpool.Pool
}

const userColumns = `
    id,
    name,
    email,
    password_hash,
    address,
    role,
    created_at,
    updated_at
`

const insertUserSQL = `
    INSERT INTO users (name, email, password_hash, address, role)
    VALUES ($1,$2,$3,$4,$5)
    RETURNING ` + userColumns

// UserCreateParams bundles the fields required to create a user.
type UserCreateParams struct {
	Name         string
	Email        string
	PasswordHash string
	Address      string
	Role         domain.Role
}

// UserListFilters encapsulates the admin user-listing options.
type UserListFilters struct {
	Role        *domain.Role
	NamePrefix  *string
	EmailPrefix *string
	SortField   string
	SortOrder   string
}

// Create inserts a new user row and returns the stored entity. A duplicate
// email surfaces as ErrConflict.
func (r *UsersRepository) Create(ctx context.Context, params UserCreateParams) (domain.User, error) {
	row := r.pool.QueryRow(ctx, insertUserSQL, params.Name, params.Email, params.PasswordHash, params.Address, params.Role)
	user, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, ErrConflict
		}
		return domain.User{}, err
	}
	return user, nil
}

// CreateStoreOwner creates a STORE_OWNER account and its store as one
// transaction, so a failed store insert never leaves an ownerless account.
func (r *UsersRepository) CreateStoreOwner(ctx context.Context, userParams UserCreateParams, storeName string) (domain.User, domain.Store, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.User{}, domain.Store{}, fmt.Errorf("begin signup tx: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, insertUserSQL, userParams.Name, userParams.Email, userParams.PasswordHash, userParams.Address, userParams.Role)
	user, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, domain.Store{}, ErrConflict
		}
		return domain.User{}, domain.Store{}, err
	}

	row = tx.QueryRow(ctx, insertStoreSQL, storeName, user.Email, user.Address, user.ID)
	st, err := scanStore(row)
	if err != nil {
		return domain.User{}, domain.Store{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.User{}, domain.Store{}, fmt.Errorf("commit signup tx: %w", err)
	}
	return user, st, nil
}

// GetByID fetches a user by its identifier.
func (r *UsersRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)
	row := r.pool.QueryRow(ctx, query, id)
	user, err := scanUser(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.User{}, ErrNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

// GetByEmail fetches a user by email.
func (r *UsersRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)
	row := r.pool.QueryRow(ctx, query, email)
	user, err := scanUser(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.User{}, ErrNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

// UpdatePassword replaces the user's password hash.
func (r *UsersRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`, id, passwordHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns users matching the provided filters. Password hashes stay out
// of listings.
func (r *UsersRepository) List(ctx context.Context, filters UserListFilters) ([]domain.User, error) {
	where := make([]string, 0)
	args := make([]interface{}, 0)
	arg := func(value interface{}) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if filters.Role != nil {
		where = append(where, fmt.Sprintf("role = %s", arg(*filters.Role)))
	}
	if filters.NamePrefix != nil && strings.TrimSpace(*filters.NamePrefix) != "" {
		where = append(where, fmt.Sprintf("name ILIKE %s", arg(strings.TrimSpace(*filters.NamePrefix)+"%")))
	}
	if filters.EmailPrefix != nil && strings.TrimSpace(*filters.EmailPrefix) != "" {
		where = append(where, fmt.Sprintf("email ILIKE %s", arg(strings.TrimSpace(*filters.EmailPrefix)+"%")))
	}

	queryBuilder := strings.Builder{}
	queryBuilder.WriteString("SELECT id, name, email, address, role, created_at, updated_at FROM users")
	if len(where) > 0 {
		queryBuilder.WriteString(" WHERE ")
		queryBuilder.WriteString(strings.Join(where, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY ")
	queryBuilder.WriteString(userSortClause(filters.SortField, filters.SortOrder))
	queryBuilder.WriteString(", id ASC")

	rows, err := r.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.Address, &user.Role, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

func userSortClause(field, order string) string {
	direction := "ASC"
	if strings.EqualFold(order, "DESC") {
		direction = "DESC"
	}

	switch field {
	case "name":
		return "name " + direction
	case "email":
		return "email " + direction
	case "role":
		return "role " + direction
	case "createdAt":
		return "created_at " + direction
	default:
		return "created_at ASC"
	}
}

// Count returns the number of users on the platform.
func (r *UsersRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*)::int8 FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func scanUser(row pgx.Row) (domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Address,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}
