package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"seedstore_backend/platform/apperr"
	"seedstore_backend/platform/db"
)

const (
	userNotFoundMsg   = "user not found"
	emailTakenMsg     = "user with this email already exists"
	pgUniqueViolation = "23505"
)

// Repo implements Repository on PostgreSQL.
type Repo struct {
	db db.DB
}

// New creates a new users repository.
func New(pool db.DB) *Repo {
	return &Repo{db: pool}
}

const userColumns = `id, email, hashed_password, full_name, is_active, is_superuser, theme, verified, created_at, updated_at`

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.HashedPassword, &u.FullName, &u.IsActive, &u.IsSuperuser, &u.Theme, &u.Verified, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func one(row pgx.Row, op string) (User, error) {
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, apperr.NotFound(userNotFoundMsg)
	}
	if err != nil {
		return User{}, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetByID retrieves a user.
func (r *Repo) GetByID(ctx context.Context, id int64) (User, error) {
	return one(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id), "get user")
}

// GetByIDs retrieves the users that exist among ids.
func (r *Repo) GetByIDs(ctx context.Context, ids []int64) ([]User, error) {
	if len(ids) == 0 {
		return []User{}, nil
	}
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users WHERE id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return nil, fmt.Errorf("get users by ids: %w", err)
	}
	users, err := pgx.CollectRows(rows, pgx.RowToStructByPos[User])
	if err != nil {
		return nil, fmt.Errorf("scan users: %w", err)
	}
	return users, nil
}

// GetByEmail retrieves a user by case-insensitive email.
func (r *Repo) GetByEmail(ctx context.Context, email string) (User, error) {
	return one(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, strings.TrimSpace(email)), "get user by email")
}

// List returns users ordered by id.
func (r *Repo) List(ctx context.Context, params ListParams) ([]User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id LIMIT $1 OFFSET $2`, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	users, err := pgx.CollectRows(rows, pgx.RowToStructByPos[User])
	if err != nil {
		return nil, fmt.Errorf("scan users: %w", err)
	}
	return users, nil
}

// Create inserts a user.
func (r *Repo) Create(ctx context.Context, params CreateUserParams) (User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `
		INSERT INTO users (email, hashed_password, full_name, is_superuser)
		VALUES ($1, $2, $3, $4)
		RETURNING `+userColumns,
		params.Email, params.HashedPassword, params.FullName, params.IsSuperuser,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return User{}, apperr.Conflict(emailTakenMsg)
		}
		return User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// CreateIfAbsent inserts a user, tolerating a concurrent insert of the same
// email by returning the existing row.
func (r *Repo) CreateIfAbsent(ctx context.Context, params CreateUserParams) (User, bool, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `
		INSERT INTO users (email, hashed_password, full_name, is_superuser)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (lower(email)) DO NOTHING
		RETURNING `+userColumns,
		params.Email, params.HashedPassword, params.FullName, params.IsSuperuser,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		existing, err := r.GetByEmail(ctx, params.Email)
		return existing, false, err
	}
	if err != nil {
		return User{}, false, fmt.Errorf("provision user: %w", err)
	}
	return u, true, nil
}

// SetSuperuser grants administrative rights.
func (r *Repo) SetSuperuser(ctx context.Context, id int64) (User, error) {
	return one(r.db.QueryRow(ctx, `
		UPDATE users SET is_superuser = TRUE, updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns, id), "promote user")
}

// Update applies a partial self-service update.
func (r *Repo) Update(ctx context.Context, id int64, params UpdateUserParams) (User, error) {
	return one(r.db.QueryRow(ctx, `
		UPDATE users SET
			full_name = COALESCE($2, full_name),
			theme = COALESCE($3, theme),
			updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns, id, params.FullName, params.Theme), "update user")
}

// SetActive blocks or unblocks a user.
func (r *Repo) SetActive(ctx context.Context, id int64, active bool) (User, error) {
	return one(r.db.QueryRow(ctx, `
		UPDATE users SET is_active = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns, id, active), "set user active")
}

// SaveProfile upserts the address and updates the verified flag in one
// transaction.
func (r *Repo) SaveProfile(ctx context.Context, userID int64, params ProfileParams) (User, error) {
	var saved User
	err := db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			INSERT INTO user_addresses (user_id, surname, phone, address, city, postal_code)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (user_id) DO UPDATE SET
				surname = EXCLUDED.surname,
				phone = EXCLUDED.phone,
				address = EXCLUDED.address,
				city = EXCLUDED.city,
				postal_code = EXCLUDED.postal_code,
				updated_at = now()`,
			userID, params.Surname, params.Phone, params.Address, params.City, params.PostalCode,
		); err != nil {
			return fmt.Errorf("upsert address: %w", err)
		}

		u, err := one(tx.QueryRow(ctx, `
			UPDATE users SET verified = $2, updated_at = now()
			WHERE id = $1
			RETURNING `+userColumns, userID, params.Verified), "set verified")
		if err != nil {
			return err
		}
		saved = u
		return nil
	})
	return saved, err
}

// GetAddress returns the user's address, or nil when none was saved.
func (r *Repo) GetAddress(ctx context.Context, userID int64) (*Address, error) {
	var a Address
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, surname, phone, address, city, postal_code, created_at, updated_at
		FROM user_addresses WHERE user_id = $1`, userID,
	).Scan(&a.ID, &a.UserID, &a.Surname, &a.Phone, &a.Address, &a.City, &a.PostalCode, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get address: %w", err)
	}
	return &a, nil
}

var _ Repository = (*Repo)(nil)
