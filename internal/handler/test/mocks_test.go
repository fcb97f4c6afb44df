package test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"socialfeed/internal/config"
	handlers "socialfeed/internal/handler"
	"socialfeed/internal/models"
	"socialfeed/internal/service"
	"socialfeed/internal/session"
)

func newTestHandlers(auth *MockAuthService, user *MockUserService, feed *MockFeedService) (*handlers.Handlers, *session.Codec) {
	codec := session.NewCodec(
		[]byte(strings.Repeat("h", 32)),
		[]byte(strings.Repeat("b", 32)),
	)

	return &handlers.Handlers{
		AuthService: auth,
		UserService: user,
		FeedService: feed,
		Sessions:    codec,
		Cfg:         &config.Config{ServerPort: 8080},
		Validate:    validator.New(),
	}, codec
}

// authCookie encodes a session the way the server would so requests can
// carry a valid identity.
func authCookie(t *testing.T, codec *session.Codec, sess *session.Session) *http.Cookie {
	rr := httptest.NewRecorder()
	require.NoError(t, codec.Write(rr, sess))

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Authenticate(ctx context.Context, username, password string) (*session.Session, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Session), args.Error(1)
}

func (m *MockAuthService) Register(ctx context.Context, username, password, email string) (*session.Session, error) {
	args := m.Called(ctx, username, password, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Session), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUser(ctx context.Context, userID int64) (*models.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockUserService) GetProfile(ctx context.Context, username string) (*models.Profile, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, userID int64, bio, displayName, headerImageURL string) error {
	args := m.Called(ctx, userID, bio, displayName, headerImageURL)
	return args.Error(0)
}

func (m *MockUserService) IssueUploadURL(ctx context.Context, imageType string) (*service.UploadURL, error) {
	args := m.Called(ctx, imageType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UploadURL), args.Error(1)
}

type MockFeedService struct {
	mock.Mock
}

func (m *MockFeedService) GetPost(ctx context.Context, postID int64, viewer *session.Session) (*models.Post, error) {
	args := m.Called(ctx, postID, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockFeedService) GetUserPosts(ctx context.Context, userID int64, viewer *session.Session) ([]models.Post, error) {
	args := m.Called(ctx, userID, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockFeedService) CreatePost(ctx context.Context, userID int64, text string) (int64, error) {
	args := m.Called(ctx, userID, text)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFeedService) LikePost(ctx context.Context, userID, postID int64) (bool, error) {
	args := m.Called(ctx, userID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFeedService) UnlikePost(ctx context.Context, userID, postID int64) error {
	args := m.Called(ctx, userID, postID)
	return args.Error(0)
}

func (m *MockFeedService) FollowUser(ctx context.Context, followerID, followingID int64) (bool, error) {
	args := m.Called(ctx, followerID, followingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFeedService) UnfollowUser(ctx context.Context, followerID, followingID int64) error {
	args := m.Called(ctx, followerID, followingID)
	return args.Error(0)
}

func (m *MockFeedService) IsFollowing(ctx context.Context, followerID, followingID int64) (bool, error) {
	args := m.Called(ctx, followerID, followingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFeedService) GetPostComments(ctx context.Context, postID int64, lastID *int64) ([]models.Comment, error) {
	args := m.Called(ctx, postID, lastID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *MockFeedService) CreateComment(ctx context.Context, postID, userID int64, text string) (int64, error) {
	args := m.Called(ctx, postID, userID, text)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFeedService) DeleteComment(ctx context.Context, commentID, userID int64) error {
	args := m.Called(ctx, commentID, userID)
	return args.Error(0)
}
