package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"socialfeed/internal/database"
	"socialfeed/internal/models"
)

type accountRepository struct {
	db *database.DB
}

func NewAccountRepository(db *database.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) CreateAccount(ctx context.Context, username, passwordHash, emailAddress string) (int64, error) {
	query := `INSERT INTO account (username, password, email_address) VALUES ($1, $2, $3) RETURNING user_id`

	var userID int64
	err := r.db.GetContext(ctx, &userID, query, username, passwordHash, emailAddress)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrAlreadyExists
		}
		return 0, fmt.Errorf("error creating account: %w", err)
	}

	return userID, nil
}

func (r *accountRepository) GetAccountByID(ctx context.Context, userID int64) (*models.Account, error) {
	query := `SELECT user_id, username, password, email_address FROM account WHERE user_id = $1`

	var account models.Account
	err := r.db.GetContext(ctx, &account, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("error fetching account %d: %w", userID, err)
	}

	return &account, nil
}

func (r *accountRepository) GetAccountByUsername(ctx context.Context, username string) (*models.Account, error) {
	query := `SELECT user_id, username, password, email_address FROM account WHERE username = $1`

	var account models.Account
	err := r.db.GetContext(ctx, &account, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("error fetching account by username: %w", err)
	}

	return &account, nil
}

func (r *accountRepository) GetUserIDByUsername(ctx context.Context, username string) (int64, error) {
	query := `SELECT user_id FROM account WHERE username = $1`

	var userID int64
	err := r.db.GetContext(ctx, &userID, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrAccountNotFound
		}
		return 0, fmt.Errorf("error fetching user id by username: %w", err)
	}

	return userID, nil
}

func (r *accountRepository) CreateProfile(ctx context.Context, userID int64, username, bio, headerImageURL string) error {
	query := `INSERT INTO profile (user_id, username, bio, header_image_url) VALUES ($1, $2, $3, $4)`

	_, err := r.db.ExecContext(ctx, query, userID, username, bio, headerImageURL)
	if err != nil {
		return fmt.Errorf("error creating profile for user %d: %w", userID, err)
	}

	return nil
}

func (r *accountRepository) GetProfileByUserID(ctx context.Context, userID int64) (*models.Profile, error) {
	query := `SELECT user_id, username, bio, header_image_url, following_count, follower_count FROM profile WHERE user_id = $1`

	var profile models.Profile
	err := r.db.GetContext(ctx, &profile, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("error fetching profile %d: %w", userID, err)
	}

	return &profile, nil
}

func (r *accountRepository) GetProfileByUsername(ctx context.Context, username string) (*models.Profile, error) {
	query := `SELECT user_id, username, bio, header_image_url, following_count, follower_count FROM profile WHERE username = $1`

	var profile models.Profile
	err := r.db.GetContext(ctx, &profile, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("error fetching profile by username: %w", err)
	}

	return &profile, nil
}

// GetProfilesByUserIDs batch-loads profiles for a set of authors with a
// single IN query; callers use it to avoid per-row lookups.
func (r *accountRepository) GetProfilesByUserIDs(ctx context.Context, userIDs []int64) (map[int64]models.Profile, error) {
	if len(userIDs) == 0 {
		return map[int64]models.Profile{}, nil
	}

	query, args, err := sqlx.In(
		`SELECT user_id, username, bio, header_image_url, following_count, follower_count FROM profile WHERE user_id IN (?)`,
		userIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("error building profiles query: %w", err)
	}
	query = r.db.Rebind(query)

	var profiles []models.Profile
	err = r.db.SelectContext(ctx, &profiles, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error fetching profiles: %w", err)
	}

	byUserID := make(map[int64]models.Profile, len(profiles))
	for _, profile := range profiles {
		byUserID[profile.UserID] = profile
	}

	return byUserID, nil
}

func (r *accountRepository) UpdateProfile(ctx context.Context, userID int64, username, bio, headerImageURL string) error {
	query := `UPDATE profile SET username = $1, bio = $2, header_image_url = $3 WHERE user_id = $4`

	result, err := r.db.ExecContext(ctx, query, username, bio, headerImageURL, userID)
	if err != nil {
		return fmt.Errorf("error updating profile %d: %w", userID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking updated rows: %w", err)
	}
	if rowsAffected == 0 {
		return ErrProfileNotFound
	}

	return nil
}

func (r *accountRepository) UpdateFollowerCount(ctx context.Context, userID int64, count int) error {
	query := `UPDATE profile SET follower_count = $1 WHERE user_id = $2`

	_, err := r.db.ExecContext(ctx, query, count, userID)
	if err != nil {
		return fmt.Errorf("error updating follower count for user %d: %w", userID, err)
	}

	return nil
}
