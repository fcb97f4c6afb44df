package service

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"socialfeed/internal/models"
)

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) CreateAccount(ctx context.Context, username, passwordHash, emailAddress string) (int64, error) {
	args := m.Called(ctx, username, passwordHash, emailAddress)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountRepository) GetAccountByID(ctx context.Context, userID int64) (*models.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) GetAccountByUsername(ctx context.Context, username string) (*models.Account, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) GetUserIDByUsername(ctx context.Context, username string) (int64, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountRepository) CreateProfile(ctx context.Context, userID int64, username, bio, headerImageURL string) error {
	args := m.Called(ctx, userID, username, bio, headerImageURL)
	return args.Error(0)
}

func (m *MockAccountRepository) GetProfileByUserID(ctx context.Context, userID int64) (*models.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockAccountRepository) GetProfileByUsername(ctx context.Context, username string) (*models.Profile, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockAccountRepository) GetProfilesByUserIDs(ctx context.Context, userIDs []int64) (map[int64]models.Profile, error) {
	args := m.Called(ctx, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]models.Profile), args.Error(1)
}

func (m *MockAccountRepository) UpdateProfile(ctx context.Context, userID int64, username, bio, headerImageURL string) error {
	args := m.Called(ctx, userID, username, bio, headerImageURL)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateFollowerCount(ctx context.Context, userID int64, count int) error {
	args := m.Called(ctx, userID, count)
	return args.Error(0)
}

type MockFeedRepository struct {
	mock.Mock
}

func (m *MockFeedRepository) CreatePost(ctx context.Context, userID int64, text string, date int64) (int64, error) {
	args := m.Called(ctx, userID, text, date)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFeedRepository) GetPostByID(ctx context.Context, postID int64) (*models.Post, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockFeedRepository) GetPostsByUserID(ctx context.Context, userID int64, limit int) ([]models.Post, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockFeedRepository) LikePost(ctx context.Context, userID, postID int64) error {
	args := m.Called(ctx, userID, postID)
	return args.Error(0)
}

func (m *MockFeedRepository) UnlikePost(ctx context.Context, userID, postID int64) error {
	args := m.Called(ctx, userID, postID)
	return args.Error(0)
}

func (m *MockFeedRepository) IsPostLiked(ctx context.Context, postID, userID int64) (bool, error) {
	args := m.Called(ctx, postID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFeedRepository) ArePostsLiked(ctx context.Context, postIDs []int64, userID int64) (map[int64]bool, error) {
	args := m.Called(ctx, postIDs, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]bool), args.Error(1)
}

func (m *MockFeedRepository) CountPostLikes(ctx context.Context, postID int64) (int, error) {
	args := m.Called(ctx, postID)
	return args.Int(0), args.Error(1)
}

func (m *MockFeedRepository) UpdatePostLikeCount(ctx context.Context, postID int64, count int) error {
	args := m.Called(ctx, postID, count)
	return args.Error(0)
}

func (m *MockFeedRepository) Follow(ctx context.Context, followerID, followingID int64) error {
	args := m.Called(ctx, followerID, followingID)
	return args.Error(0)
}

func (m *MockFeedRepository) Unfollow(ctx context.Context, followerID, followingID int64) error {
	args := m.Called(ctx, followerID, followingID)
	return args.Error(0)
}

func (m *MockFeedRepository) IsFollowing(ctx context.Context, followerID, followingID int64) (bool, error) {
	args := m.Called(ctx, followerID, followingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFeedRepository) CountFollowers(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockFeedRepository) CreateComment(ctx context.Context, postID, userID int64, text string, date int64) (int64, error) {
	args := m.Called(ctx, postID, userID, text, date)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFeedRepository) GetCommentByID(ctx context.Context, commentID int64) (*models.Comment, error) {
	args := m.Called(ctx, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockFeedRepository) GetLatestComment(ctx context.Context, postID int64) ([]models.Comment, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *MockFeedRepository) GetCommentsAfter(ctx context.Context, postID, lastID int64, limit int) ([]models.Comment, error) {
	args := m.Called(ctx, postID, lastID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *MockFeedRepository) SetCommentVisibility(ctx context.Context, commentID int64, visibility string) error {
	args := m.Called(ctx, commentID, visibility)
	return args.Error(0)
}

func (m *MockFeedRepository) CountPostComments(ctx context.Context, postID int64) (int, error) {
	args := m.Called(ctx, postID)
	return args.Int(0), args.Error(1)
}

func (m *MockFeedRepository) UpdatePostCommentCount(ctx context.Context, postID int64, count int) error {
	args := m.Called(ctx, postID, count)
	return args.Error(0)
}

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) IssueUploadURL(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

// recountRecorder captures scheduled recounts so tests can assert on the
// fire-and-forget behavior synchronously.
type recountRecorder struct {
	mu        sync.Mutex
	followers []int64
	likes     []int64
	comments  []int64
}

func (r *recountRecorder) RecountFollowers(userID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.followers = append(r.followers, userID)
}

func (r *recountRecorder) RecountPostLikes(postID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.likes = append(r.likes, postID)
}

func (r *recountRecorder) RecountPostComments(postID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.comments = append(r.comments, postID)
}
