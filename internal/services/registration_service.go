package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"hobbyhive/internal/models"
	"hobbyhive/internal/repositories"
	"hobbyhive/internal/utils"
)

const otpTTL = 10 * time.Minute

// RegistrationService is the registration/auth state machine:
// Register -> VerifyOTP -> Login -> Logout.
type RegistrationService interface {
	Register(ctx context.Context, name, username, email, password string) error
	VerifyOTP(ctx context.Context, email, code string) (*models.User, error)
	Login(ctx context.Context, identifier, password string) (*models.User, *TokenPair, error)
	Logout(ctx context.Context, userID int64) error
	GetProfile(ctx context.Context, userID int64) (*models.Profile, error)
}

type registrationService struct {
	store  repositories.Store
	auth   AuthService
	tokens TokenService
	emails EmailService

	now func() time.Time // swappable in tests
}

func NewRegistrationService(store repositories.Store, auth AuthService, tokens TokenService, emails EmailService) RegistrationService {
	return &registrationService{
		store:  store,
		auth:   auth,
		tokens: tokens,
		emails: emails,
		now:    time.Now,
	}
}

// Register stages a pending registration and dispatches its OTP. A repeat
// registration for the same email replaces the previous pending row; an
// email or username held by a confirmed account is a conflict.
func (s *registrationService) Register(ctx context.Context, name, username, email, password string) error {
	name = strings.TrimSpace(name)
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))
	password = strings.TrimSpace(password)
	if name == "" || username == "" || email == "" || password == "" {
		return ErrFieldsRequired
	}

	// hash before anything is persisted; plaintext never reaches a store
	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return err
	}

	code, err := utils.NewOTPCode()
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}

	pending := &models.PendingUser{
		Name:         name,
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		OTP:          code,
		OTPExpiresAt: s.now().Add(otpTTL),
	}

	err = s.store.InTx(ctx, func(users repositories.UserRepository, pendingRepo repositories.PendingUserRepository) error {
		exists, err := users.ExistsByEmailOrUsername(ctx, email, username)
		if err != nil {
			return err
		}
		if exists {
			return ErrUserExists
		}
		if err := pendingRepo.Upsert(ctx, pending); err != nil {
			if errors.Is(err, repositories.ErrDuplicate) {
				return ErrUserExists
			}
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.Printf("[register][request] pending created email=%q otp_expires=%s", email, pending.OTPExpiresAt.Format(time.RFC3339))

	// the pending row stays either way; a failed send is reported, not rolled back
	if err := s.emails.SendOTPEmail(email, code); err != nil {
		log.Printf("[register][request] otp email failed email=%q: %v", email, err)
		return ErrDeliveryFailed
	}
	return nil
}

// VerifyOTP checks the code against the pending registration and, on
// success, promotes it into a confirmed user in one transaction.
func (s *registrationService) VerifyOTP(ctx context.Context, email, code string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	code = strings.TrimSpace(code)
	if email == "" || code == "" {
		return nil, ErrFieldsRequired
	}

	// read and check inside the transaction: a repeat registration that
	// overwrites the pending row must not see its stale predecessor promoted
	var user *models.User
	err := s.store.InTx(ctx, func(users repositories.UserRepository, pendingRepo repositories.PendingUserRepository) error {
		pending, err := pendingRepo.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		if pending == nil {
			return ErrPendingNotFound
		}
		if pending.OTP != code {
			return ErrCodeInvalid
		}
		if s.now().After(pending.OTPExpiresAt) {
			return ErrCodeExpired
		}

		if err := pendingRepo.MarkVerified(ctx, pending.ID); err != nil {
			return err
		}
		u, err := users.CreateFromPending(ctx, pending)
		if err != nil {
			if errors.Is(err, repositories.ErrDuplicate) {
				return ErrUserExists
			}
			return err
		}
		n, err := pendingRepo.Delete(ctx, pending.ID)
		if err != nil {
			return err
		}
		if n == 0 {
			// a concurrent verification won; roll everything back
			return ErrPendingNotFound
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[register][confirm] promoted email=%q user_id=%d", email, user.ID)
	return user, nil
}

// Login verifies credentials, issues a token pair and persists the refresh
// mirror on the user row.
func (s *registrationService) Login(ctx context.Context, identifier, password string) (*models.User, *TokenPair, error) {
	identifier = strings.TrimSpace(identifier)
	password = strings.TrimSpace(password)
	if identifier == "" || password == "" {
		return nil, nil, ErrFieldsRequired
	}

	user, err := s.store.Users().GetByEmailOrUsername(ctx, identifier)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrUserNotFound
	}
	if !s.auth.CheckPassword(password, user.PasswordHash) {
		log.Printf("[auth][login] password mismatch user_id=%d", user.ID)
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.tokens.Issue(user, s.now())
	if err != nil {
		return nil, nil, err
	}
	if err := s.store.Users().UpdateRefresh(ctx, user.ID, pair.RefreshToken); err != nil {
		return nil, nil, err
	}
	rt := pair.RefreshToken
	user.RefreshToken = &rt

	log.Printf("[auth][login] success user_id=%d", user.ID)
	return user, pair, nil
}

// Logout clears the refresh mirror. Calling it again is a no-op.
func (s *registrationService) Logout(ctx context.Context, userID int64) error {
	return s.store.Users().ClearRefresh(ctx, userID)
}

func (s *registrationService) GetProfile(ctx context.Context, userID int64) (*models.Profile, error) {
	user, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return &models.Profile{Name: user.Name}, nil
}
