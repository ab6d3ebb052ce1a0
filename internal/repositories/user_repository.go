package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"hobbyhive/internal/models"
)

type UserRepository interface {
	// CreateFromPending copies the staged fields of a verified pending
	// registration into a confirmed user row. ErrDuplicate on a unique
	// index hit.
	CreateFromPending(ctx context.Context, p *models.PendingUser) (*models.User, error)
	// GetByEmailOrUsername returns (nil, nil) when no user matches.
	GetByEmailOrUsername(ctx context.Context, identifier string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)

	// refresh mirror helpers
	UpdateRefresh(ctx context.Context, id int64, token string) error
	ClearRefresh(ctx context.Context, id int64) error
}

type userRepository struct {
	DB DBTX
}

func NewUserRepository(db DBTX) UserRepository {
	return &userRepository{DB: db}
}

const userColumns = `id, name, username, email, password_hash, refresh_token, is_verified, created_at, updated_at`

func scanUser(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	var rt sql.NullString
	err := row.Scan(
		&u.ID, &u.Name, &u.Username, &u.Email, &u.PasswordHash,
		&rt, &u.IsVerified, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if rt.Valid {
		s := rt.String
		u.RefreshToken = &s
	}
	return u, nil
}

func (r *userRepository) CreateFromPending(ctx context.Context, p *models.PendingUser) (*models.User, error) {
	const q = `
		INSERT INTO users (name, username, email, password_hash, is_verified)
		VALUES ($1, $2, $3, $4, TRUE)
		RETURNING ` + userColumns
	u, err := scanUser(r.DB.QueryRowContext(ctx, q, p.Name, p.Username, p.Email, p.PasswordHash))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("user create from pending: %w", err)
	}
	return u, nil
}

func (r *userRepository) GetByEmailOrUsername(ctx context.Context, identifier string) (*models.User, error) {
	// emails are stored lowercased; the identifier may arrive in any case
	const q = `SELECT ` + userColumns + ` FROM users WHERE email = LOWER($1) OR username = $1`
	u, err := scanUser(r.DB.QueryRowContext(ctx, q, identifier))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("user get by email or username: %w", err)
	}
	return u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(r.DB.QueryRowContext(ctx, q, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("user get by id: %w", err)
	}
	return u, nil
}

func (r *userRepository) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 OR username = $2)`
	var exists bool
	if err := r.DB.QueryRowContext(ctx, q, email, username).Scan(&exists); err != nil {
		return false, fmt.Errorf("user exists check: %w", err)
	}
	return exists, nil
}

func (r *userRepository) UpdateRefresh(ctx context.Context, id int64, token string) error {
	const q = `UPDATE users SET refresh_token = $2, updated_at = NOW() WHERE id = $1`
	if _, err := r.DB.ExecContext(ctx, q, id, token); err != nil {
		return fmt.Errorf("user update refresh: %w", err)
	}
	return nil
}

func (r *userRepository) ClearRefresh(ctx context.Context, id int64) error {
	const q = `UPDATE users SET refresh_token = NULL, updated_at = NOW() WHERE id = $1`
	if _, err := r.DB.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("user clear refresh: %w", err)
	}
	return nil
}
