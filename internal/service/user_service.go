package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"socialfeed/internal/models"
	"socialfeed/internal/repository"
	"socialfeed/internal/storage"
	"socialfeed/internal/validation"
)

var (
	ErrInvalidBio         = errors.New("invalid bio")
	ErrInvalidDisplayName = errors.New("invalid display name")
	ErrInvalidImageType   = errors.New("invalid image type")
)

type UploadURL struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

type UserService interface {
	GetUser(ctx context.Context, userID int64) (*models.Account, error)
	GetProfile(ctx context.Context, username string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, userID int64, bio, displayName, headerImageURL string) error
	IssueUploadURL(ctx context.Context, imageType string) (*UploadURL, error)
}

type userService struct {
	accountRepo repository.AccountRepository
	storage     storage.Storage
}

func NewUserService(accountRepo repository.AccountRepository, storage storage.Storage) UserService {
	return &userService{
		accountRepo: accountRepo,
		storage:     storage,
	}
}

func (s *userService) GetUser(ctx context.Context, userID int64) (*models.Account, error) {
	return s.accountRepo.GetAccountByID(ctx, userID)
}

func (s *userService) GetProfile(ctx context.Context, username string) (*models.Profile, error) {
	return s.accountRepo.GetProfileByUsername(ctx, username)
}

func (s *userService) UpdateProfile(ctx context.Context, userID int64, bio, displayName, headerImageURL string) error {
	if !validation.IsBioValid(bio) {
		return ErrInvalidBio
	}
	if !validation.IsDisplayNameValid(displayName) {
		return ErrInvalidDisplayName
	}

	return s.accountRepo.UpdateProfile(ctx, userID, displayName, bio, headerImageURL)
}

// IssueUploadURL generates an opaque storage key and asks the object store
// for a time-limited presigned PUT URL. The key is sharded by its first two
// 2-character segments so uploads spread across storage prefixes. The
// uploaded bytes are never validated here.
func (s *userService) IssueUploadURL(ctx context.Context, imageType string) (*UploadURL, error) {
	switch imageType {
	case "png", "jpg", "gif":
	default:
		return nil, ErrInvalidImageType
	}

	random := strings.ReplaceAll(uuid.New().String(), "-", "")
	key := fmt.Sprintf("%s/%s/%s.%s", random[0:2], random[2:4], random, imageType)

	url, err := s.storage.IssueUploadURL(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("error issuing upload url: %w", err)
	}

	return &UploadURL{URL: url, Key: key}, nil
}
