package repository

import (
	"context"
	"errors"

	"github.com/lib/pq"

	"socialfeed/internal/database"
	"socialfeed/internal/models"
)

// Sentinel errors returned by the repositories. The service and handler
// layers branch on these instead of inspecting driver errors, so the
// pipeline's status mapping stays exhaustive.
var (
	ErrAccountNotFound = errors.New("account not found")
	ErrProfileNotFound = errors.New("profile not found")
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")

	// ErrAlreadyExists reports a unique-constraint collision (duplicate
	// like, duplicate follow edge, taken username).
	ErrAlreadyExists = errors.New("already exists")
)

type AccountRepository interface {
	CreateAccount(ctx context.Context, username, passwordHash, emailAddress string) (int64, error)
	GetAccountByID(ctx context.Context, userID int64) (*models.Account, error)
	GetAccountByUsername(ctx context.Context, username string) (*models.Account, error)
	GetUserIDByUsername(ctx context.Context, username string) (int64, error)

	CreateProfile(ctx context.Context, userID int64, username, bio, headerImageURL string) error
	GetProfileByUserID(ctx context.Context, userID int64) (*models.Profile, error)
	GetProfileByUsername(ctx context.Context, username string) (*models.Profile, error)
	GetProfilesByUserIDs(ctx context.Context, userIDs []int64) (map[int64]models.Profile, error)
	UpdateProfile(ctx context.Context, userID int64, username, bio, headerImageURL string) error
	UpdateFollowerCount(ctx context.Context, userID int64, count int) error
}

type FeedRepository interface {
	CreatePost(ctx context.Context, userID int64, text string, date int64) (int64, error)
	GetPostByID(ctx context.Context, postID int64) (*models.Post, error)
	GetPostsByUserID(ctx context.Context, userID int64, limit int) ([]models.Post, error)

	LikePost(ctx context.Context, userID, postID int64) error
	UnlikePost(ctx context.Context, userID, postID int64) error
	IsPostLiked(ctx context.Context, postID, userID int64) (bool, error)
	ArePostsLiked(ctx context.Context, postIDs []int64, userID int64) (map[int64]bool, error)
	CountPostLikes(ctx context.Context, postID int64) (int, error)
	UpdatePostLikeCount(ctx context.Context, postID int64, count int) error

	Follow(ctx context.Context, followerID, followingID int64) error
	Unfollow(ctx context.Context, followerID, followingID int64) error
	IsFollowing(ctx context.Context, followerID, followingID int64) (bool, error)
	CountFollowers(ctx context.Context, userID int64) (int, error)

	CreateComment(ctx context.Context, postID, userID int64, text string, date int64) (int64, error)
	GetCommentByID(ctx context.Context, commentID int64) (*models.Comment, error)
	GetLatestComment(ctx context.Context, postID int64) ([]models.Comment, error)
	GetCommentsAfter(ctx context.Context, postID, lastID int64, limit int) ([]models.Comment, error)
	SetCommentVisibility(ctx context.Context, commentID int64, visibility string) error
	CountPostComments(ctx context.Context, postID int64) (int, error)
	UpdatePostCommentCount(ctx context.Context, postID int64, count int) error
}

type Repository struct {
	Account AccountRepository
	Feed    FeedRepository
}

func NewRepository(dbs *database.Databases) *Repository {
	return &Repository{
		Account: NewAccountRepository(dbs.Get(database.StoreUser)),
		Feed:    NewFeedRepository(dbs.Get(database.StoreFeed)),
	}
}

// isUniqueViolation checks for the postgres unique_violation error code.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
