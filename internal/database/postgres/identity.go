package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/domain"
	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/logger"
)

const uniqueViolationCode = "23505"

// IdentityStore implements the remote identity provider on PostgreSQL.
// It owns the authoritative user records; device-side session state is only a
// cache of what these queries return.
type IdentityStore struct {
	db *pgxpool.Pool
}

// NewIdentityStore creates a new IdentityStore
func NewIdentityStore(db *pgxpool.Pool) *IdentityStore {
	return &IdentityStore{db: db}
}

// CreateUser registers a new account with a bcrypt-hashed password.
// Returns domain.ErrConflict when the email is already registered.
func (s *IdentityStore) CreateUser(ctx context.Context, email, password, name, farmName string) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	query := `
		INSERT INTO users (email, password_hash, name, farm_name, email_verified, created_at, updated_at)
		VALUES (LOWER($1), $2, $3, $4, FALSE, NOW(), NOW())
		RETURNING user_id, email, name, farm_name, email_verified, created_at
	`

	var user domain.User
	err = s.db.QueryRow(ctx, query, email, string(hash), name, farmName).Scan(
		&user.ID, &user.Email, &user.Name, &user.FarmName, &user.EmailVerified, &user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, fmt.Errorf("%w: %s", domain.ErrConflict, email)
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return &user, nil
}

// Authenticate checks credentials against the stored hash.
// Returns domain.ErrAuthentication on unknown email or hash mismatch.
func (s *IdentityStore) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	query := `
		SELECT user_id, email, password_hash, name, farm_name, email_verified, created_at
		FROM users
		WHERE email = LOWER($1)
	`

	var user domain.User
	var hash string
	err := s.db.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.Email, &hash, &user.Name, &user.FarmName, &user.EmailVerified, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAuthentication
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return nil, domain.ErrAuthentication
	}

	return &user, nil
}

// GetUserByID fetches the current user record
func (s *IdentityStore) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `
		SELECT user_id, email, name, farm_name, email_verified, created_at
		FROM users
		WHERE user_id = $1
	`

	var user domain.User
	err := s.db.QueryRow(ctx, query, userID).Scan(
		&user.ID, &user.Email, &user.Name, &user.FarmName, &user.EmailVerified, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// MarkEmailVerified flips a user's verification flag
func (s *IdentityStore) MarkEmailVerified(ctx context.Context, userID string) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE users SET email_verified = TRUE, updated_at = NOW() WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark email verified: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// SendVerificationEmail records the send request. Actual mail delivery is the
// provider's concern; this is fire and forget from the app's perspective.
func (s *IdentityStore) SendVerificationEmail(ctx context.Context, userID string) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE users SET verification_sent_at = NOW() WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to record verification send: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}

	logger.FromContext(ctx).Debug("Verification email requested",
		"user_id", userID, "requested_at", time.Now().UTC())
	return nil
}
