package service

import (
	"context"
	"errors"
	"time"

	"socialfeed/internal/models"
	"socialfeed/internal/repository"
	"socialfeed/internal/session"
	"socialfeed/internal/validation"
)

var (
	ErrSelfFollow         = errors.New("can not follow self")
	ErrInvalidPostText    = errors.New("invalid post text")
	ErrInvalidCommentText = errors.New("invalid comment text")
	ErrNotCommentAuthor   = errors.New("not the comment author")
)

const (
	postFetchLimit  = 10
	commentPageSize = 10
)

type FeedService interface {
	GetPost(ctx context.Context, postID int64, viewer *session.Session) (*models.Post, error)
	GetUserPosts(ctx context.Context, userID int64, viewer *session.Session) ([]models.Post, error)
	CreatePost(ctx context.Context, userID int64, text string) (int64, error)

	LikePost(ctx context.Context, userID, postID int64) (bool, error)
	UnlikePost(ctx context.Context, userID, postID int64) error

	FollowUser(ctx context.Context, followerID, followingID int64) (bool, error)
	UnfollowUser(ctx context.Context, followerID, followingID int64) error
	IsFollowing(ctx context.Context, followerID, followingID int64) (bool, error)

	GetPostComments(ctx context.Context, postID int64, lastID *int64) ([]models.Comment, error)
	CreateComment(ctx context.Context, postID, userID int64, text string) (int64, error)
	DeleteComment(ctx context.Context, commentID, userID int64) error
}

type feedService struct {
	feedRepo    repository.FeedRepository
	accountRepo repository.AccountRepository
	recounts    Recounts
	now         func() time.Time
}

func NewFeedService(feedRepo repository.FeedRepository, accountRepo repository.AccountRepository, recounts Recounts) FeedService {
	return &feedService{
		feedRepo:    feedRepo,
		accountRepo: accountRepo,
		recounts:    recounts,
		now:         time.Now,
	}
}

// GetPost returns the post enriched with the author username and, when a
// viewer is present, the viewer's like state.
func (s *feedService) GetPost(ctx context.Context, postID int64, viewer *session.Session) (*models.Post, error) {
	post, err := s.feedRepo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	profile, err := s.accountRepo.GetProfileByUserID(ctx, post.UserID)
	switch {
	case err == nil:
		post.Username = profile.Username
	case !errors.Is(err, repository.ErrProfileNotFound):
		return nil, err
	}

	if viewer != nil {
		liked, err := s.feedRepo.IsPostLiked(ctx, postID, viewer.UserID)
		if err != nil {
			return nil, err
		}
		post.IsLiked = liked
	}

	return post, nil
}

// GetUserPosts returns the user's recent posts enriched with the author
// username and, when a viewer is present, the viewer's like state. Both
// enrichments are batched: one profile query for the distinct author set
// and one liked-post query for the whole page.
func (s *feedService) GetUserPosts(ctx context.Context, userID int64, viewer *session.Session) ([]models.Post, error) {
	posts, err := s.feedRepo.GetPostsByUserID(ctx, userID, postFetchLimit)
	if err != nil {
		return nil, err
	}

	authorIDs := make([]int64, 0, 1)
	seen := make(map[int64]bool)
	for _, post := range posts {
		if !seen[post.UserID] {
			seen[post.UserID] = true
			authorIDs = append(authorIDs, post.UserID)
		}
	}

	profiles, err := s.accountRepo.GetProfilesByUserIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	liked := map[int64]bool{}
	if viewer != nil {
		postIDs := make([]int64, len(posts))
		for i, post := range posts {
			postIDs[i] = post.PostID
		}
		liked, err = s.feedRepo.ArePostsLiked(ctx, postIDs, viewer.UserID)
		if err != nil {
			return nil, err
		}
	}

	for i := range posts {
		posts[i].IsLiked = liked[posts[i].PostID]
		if profile, ok := profiles[posts[i].UserID]; ok {
			posts[i].Username = profile.Username
		}
	}

	return posts, nil
}

func (s *feedService) CreatePost(ctx context.Context, userID int64, text string) (int64, error) {
	if !validation.IsPostTextValid(text) {
		return 0, ErrInvalidPostText
	}

	return s.feedRepo.CreatePost(ctx, userID, text, s.now().Unix())
}

// LikePost reports false, not an error, when the like already exists; the
// unique constraint on (user_id, post_id) is the concurrency guard.
func (s *feedService) LikePost(ctx context.Context, userID, postID int64) (bool, error) {
	err := s.feedRepo.LikePost(ctx, userID, postID)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return false, nil
		}
		return false, err
	}

	s.recounts.RecountPostLikes(postID)
	return true, nil
}

func (s *feedService) UnlikePost(ctx context.Context, userID, postID int64) error {
	err := s.feedRepo.UnlikePost(ctx, userID, postID)
	if err != nil {
		return err
	}

	s.recounts.RecountPostLikes(postID)
	return nil
}

func (s *feedService) FollowUser(ctx context.Context, followerID, followingID int64) (bool, error) {
	if followerID == followingID {
		return false, ErrSelfFollow
	}

	err := s.feedRepo.Follow(ctx, followerID, followingID)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return false, nil
		}
		return false, err
	}

	s.recounts.RecountFollowers(followingID)
	return true, nil
}

func (s *feedService) UnfollowUser(ctx context.Context, followerID, followingID int64) error {
	if followerID == followingID {
		return ErrSelfFollow
	}

	err := s.feedRepo.Unfollow(ctx, followerID, followingID)
	if err != nil {
		return err
	}

	s.recounts.RecountFollowers(followingID)
	return nil
}

func (s *feedService) IsFollowing(ctx context.Context, followerID, followingID int64) (bool, error) {
	if followerID == followingID {
		return false, ErrSelfFollow
	}

	return s.feedRepo.IsFollowing(ctx, followerID, followingID)
}

// GetPostComments pages through a post's visible comments. The first page
// (no lastID) is the single most recent comment; follow-up pages walk
// forward from lastID in ascending id order. Authors are joined in from
// one batched profile lookup.
func (s *feedService) GetPostComments(ctx context.Context, postID int64, lastID *int64) ([]models.Comment, error) {
	var comments []models.Comment
	var err error

	if lastID == nil {
		comments, err = s.feedRepo.GetLatestComment(ctx, postID)
	} else {
		comments, err = s.feedRepo.GetCommentsAfter(ctx, postID, *lastID, commentPageSize)
	}
	if err != nil {
		return nil, err
	}
	if len(comments) == 0 {
		return []models.Comment{}, nil
	}

	authorIDs := make([]int64, 0, 1)
	seen := make(map[int64]bool)
	for _, comment := range comments {
		if !seen[comment.UserID] {
			seen[comment.UserID] = true
			authorIDs = append(authorIDs, comment.UserID)
		}
	}

	profiles, err := s.accountRepo.GetProfilesByUserIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	for i := range comments {
		if profile, ok := profiles[comments[i].UserID]; ok {
			comments[i].Author = &models.ProfileSummary{
				UserID:         profile.UserID,
				Username:       profile.Username,
				HeaderImageURL: profile.HeaderImageURL,
			}
		}
	}

	return comments, nil
}

func (s *feedService) CreateComment(ctx context.Context, postID, userID int64, text string) (int64, error) {
	if !validation.IsCommentTextValid(text) {
		return 0, ErrInvalidCommentText
	}

	commentID, err := s.feedRepo.CreateComment(ctx, postID, userID, text, s.now().Unix())
	if err != nil {
		return 0, err
	}

	s.recounts.RecountPostComments(postID)
	return commentID, nil
}

// DeleteComment soft-deletes by flipping visibility; the row is never
// removed. Only the comment's author may delete it.
func (s *feedService) DeleteComment(ctx context.Context, commentID, userID int64) error {
	comment, err := s.feedRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return err
	}

	if comment.UserID != userID {
		return ErrNotCommentAuthor
	}

	err = s.feedRepo.SetCommentVisibility(ctx, commentID, models.CommentDeleted)
	if err != nil {
		return err
	}

	s.recounts.RecountPostComments(comment.PostID)
	return nil
}
