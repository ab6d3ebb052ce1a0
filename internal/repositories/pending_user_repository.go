package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"hobbyhive/internal/models"
)

type PendingUserRepository interface {
	// Upsert creates the pending registration, replacing any previous one
	// for the same email (fresh OTP, fresh staged password). A username
	// held by a different pending email yields ErrDuplicate.
	Upsert(ctx context.Context, p *models.PendingUser) error
	// GetByEmail returns (nil, nil) when there is no pending registration.
	GetByEmail(ctx context.Context, email string) (*models.PendingUser, error)
	MarkVerified(ctx context.Context, id int64) error
	// Delete reports how many rows were removed so a caller can detect a
	// promotion that already happened.
	Delete(ctx context.Context, id int64) (int64, error)
}

type pendingUserRepository struct {
	DB DBTX
}

func NewPendingUserRepository(db DBTX) PendingUserRepository {
	return &pendingUserRepository{DB: db}
}

func (r *pendingUserRepository) Upsert(ctx context.Context, p *models.PendingUser) error {
	const q = `
		INSERT INTO pending_users (name, username, email, password_hash, otp, otp_expires_at, verified)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE)
		ON CONFLICT (email) DO UPDATE SET
			name           = EXCLUDED.name,
			username       = EXCLUDED.username,
			password_hash  = EXCLUDED.password_hash,
			otp            = EXCLUDED.otp,
			otp_expires_at = EXCLUDED.otp_expires_at,
			verified       = FALSE,
			updated_at     = NOW()
		RETURNING id, created_at, updated_at
	`
	err := r.DB.QueryRowContext(ctx, q,
		p.Name, p.Username, p.Email, p.PasswordHash, p.OTP, p.OTPExpiresAt,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			// the username index fired: another pending email holds it
			return ErrDuplicate
		}
		return fmt.Errorf("pending_user upsert: %w", err)
	}
	return nil
}

func (r *pendingUserRepository) GetByEmail(ctx context.Context, email string) (*models.PendingUser, error) {
	const q = `
		SELECT id, name, username, email, password_hash, otp, otp_expires_at, verified, created_at, updated_at
		FROM pending_users
		WHERE email = $1
	`
	p := &models.PendingUser{}
	err := r.DB.QueryRowContext(ctx, q, email).Scan(
		&p.ID, &p.Name, &p.Username, &p.Email, &p.PasswordHash,
		&p.OTP, &p.OTPExpiresAt, &p.Verified, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("pending_user get by email: %w", err)
	}
	return p, nil
}

func (r *pendingUserRepository) MarkVerified(ctx context.Context, id int64) error {
	const q = `UPDATE pending_users SET verified = TRUE, updated_at = NOW() WHERE id = $1`
	if _, err := r.DB.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("pending_user mark verified: %w", err)
	}
	return nil
}

func (r *pendingUserRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM pending_users WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("pending_user delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("pending_user delete rows: %w", err)
	}
	return n, nil
}
