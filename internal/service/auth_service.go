package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"socialfeed/internal/repository"
	"socialfeed/internal/session"
	"socialfeed/internal/validation"
)

// Failure kinds the handlers translate into client-facing messages.
var (
	ErrIncorrectCredentials = errors.New("incorrect username and/or password")
	ErrInvalidUsername      = errors.New("invalid username")
	ErrInvalidEmail         = errors.New("invalid email")
	ErrUsernameTaken        = errors.New("username taken")
)

const defaultBio = "I'm new here!"

type AuthService interface {
	Authenticate(ctx context.Context, username, password string) (*session.Session, error)
	Register(ctx context.Context, username, password, email string) (*session.Session, error)
}

type authService struct {
	accountRepo repository.AccountRepository
}

func NewAuthService(accountRepo repository.AccountRepository) AuthService {
	return &authService{accountRepo: accountRepo}
}

// Authenticate checks the credentials and returns the session identity to
// establish. An unknown username and a wrong password fail identically so
// the response never reveals whether the account exists.
func (s *authService) Authenticate(ctx context.Context, username, password string) (*session.Session, error) {
	account, err := s.accountRepo.GetAccountByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, ErrIncorrectCredentials
		}
		return nil, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password))
	if err != nil {
		return nil, ErrIncorrectCredentials
	}

	return &session.Session{UserID: account.UserID, Username: account.Username}, nil
}

// Register validates the cheap shape constraints before touching the store,
// checks username availability, then creates the account and its profile.
// The two inserts are not transactional: a profile-insert failure strands
// the account row.
func (s *authService) Register(ctx context.Context, username, password, email string) (*session.Session, error) {
	if !validation.IsUsernameValid(username) {
		return nil, ErrInvalidUsername
	}
	if !validation.IsEmailValid(email) {
		return nil, ErrInvalidEmail
	}

	_, err := s.accountRepo.GetUserIDByUsername(ctx, username)
	if err == nil {
		return nil, ErrUsernameTaken
	}
	if !errors.Is(err, repository.ErrAccountNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	userID, err := s.accountRepo.CreateAccount(ctx, username, string(hashedPassword), email)
	if err != nil {
		// Lost the race on the unique constraint between the check
		// and the insert.
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	err = s.accountRepo.CreateProfile(ctx, userID, username, defaultBio, "")
	if err != nil {
		return nil, err
	}

	return &session.Session{UserID: userID, Username: username}, nil
}
