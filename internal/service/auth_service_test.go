package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"socialfeed/internal/models"
	"socialfeed/internal/repository"
)

func TestAuthService_Authenticate(t *testing.T) {
	ctx := context.Background()

	hashed, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)

	account := &models.Account{
		UserID:       1,
		Username:     "alice",
		Password:     string(hashed),
		EmailAddress: "alice@example.com",
	}

	t.Run("valid credentials yield the session identity", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		accountRepo.On("GetAccountByUsername", mock.Anything, "alice").Return(account, nil)

		svc := NewAuthService(accountRepo)
		sess, err := svc.Authenticate(ctx, "alice", "correct horse")

		require.NoError(t, err)
		assert.Equal(t, int64(1), sess.UserID)
		assert.Equal(t, "alice", sess.Username)
	})

	t.Run("wrong password and unknown user fail identically", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		accountRepo.On("GetAccountByUsername", mock.Anything, "alice").Return(account, nil)
		accountRepo.On("GetAccountByUsername", mock.Anything, "nobody").Return(nil, repository.ErrAccountNotFound)

		svc := NewAuthService(accountRepo)

		_, wrongPassErr := svc.Authenticate(ctx, "alice", "wrong")
		_, unknownUserErr := svc.Authenticate(ctx, "nobody", "whatever")

		assert.ErrorIs(t, wrongPassErr, ErrIncorrectCredentials)
		assert.ErrorIs(t, unknownUserErr, ErrIncorrectCredentials)
		// No distinguishing signal between the two failures.
		assert.Equal(t, wrongPassErr, unknownUserErr)
	})
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("register then authenticate round-trips the same user id", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		accountRepo.On("GetUserIDByUsername", mock.Anything, "alice").Return(int64(0), repository.ErrAccountNotFound)

		var storedHash string
		accountRepo.On("CreateAccount", mock.Anything, "alice", mock.Anything, "alice@example.com").
			Run(func(args mock.Arguments) { storedHash = args.String(2) }).
			Return(int64(7), nil)
		accountRepo.On("CreateProfile", mock.Anything, int64(7), "alice", "I'm new here!", "").Return(nil)

		svc := NewAuthService(accountRepo)
		sess, err := svc.Register(ctx, "alice", "correct horse", "alice@example.com")

		require.NoError(t, err)
		assert.Equal(t, int64(7), sess.UserID)
		assert.NotEqual(t, "correct horse", storedHash)
		accountRepo.AssertExpectations(t)

		// The stored hash verifies against the original password.
		accountRepo.On("GetAccountByUsername", mock.Anything, "alice").Return(&models.Account{
			UserID:   7,
			Username: "alice",
			Password: storedHash,
		}, nil)

		authSess, err := svc.Authenticate(ctx, "alice", "correct horse")
		require.NoError(t, err)
		assert.Equal(t, sess.UserID, authSess.UserID)
	})

	t.Run("shape checks run before any store access", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		svc := NewAuthService(accountRepo)

		_, err := svc.Register(ctx, "a", "pw", "alice@example.com")
		assert.ErrorIs(t, err, ErrInvalidUsername)

		_, err = svc.Register(ctx, "alice", "pw", "not-an-email")
		assert.ErrorIs(t, err, ErrInvalidEmail)

		accountRepo.AssertNotCalled(t, "GetUserIDByUsername", mock.Anything, mock.Anything)
	})

	t.Run("taken username", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		accountRepo.On("GetUserIDByUsername", mock.Anything, "alice").Return(int64(1), nil)

		svc := NewAuthService(accountRepo)
		_, err := svc.Register(ctx, "alice", "pw", "alice@example.com")

		assert.ErrorIs(t, err, ErrUsernameTaken)
	})

	t.Run("losing the insert race still reads as taken", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		accountRepo.On("GetUserIDByUsername", mock.Anything, "alice").Return(int64(0), repository.ErrAccountNotFound)
		accountRepo.On("CreateAccount", mock.Anything, "alice", mock.Anything, "alice@example.com").
			Return(int64(0), repository.ErrAlreadyExists)

		svc := NewAuthService(accountRepo)
		_, err := svc.Register(ctx, "alice", "pw", "alice@example.com")

		assert.ErrorIs(t, err, ErrUsernameTaken)
	})
}
