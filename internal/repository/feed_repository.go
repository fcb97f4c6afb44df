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

type feedRepository struct {
	db *database.DB
}

func NewFeedRepository(db *database.DB) FeedRepository {
	return &feedRepository{db: db}
}

func (r *feedRepository) CreatePost(ctx context.Context, userID int64, text string, date int64) (int64, error) {
	query := `INSERT INTO post (user_id, text, date) VALUES ($1, $2, $3) RETURNING post_id`

	var postID int64
	err := r.db.GetContext(ctx, &postID, query, userID, text, date)
	if err != nil {
		return 0, fmt.Errorf("error creating post: %w", err)
	}

	return postID, nil
}

func (r *feedRepository) GetPostByID(ctx context.Context, postID int64) (*models.Post, error) {
	query := `SELECT post_id, user_id, date, text, num_likes, num_comments FROM post WHERE post_id = $1`

	var post models.Post
	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("error fetching post %d: %w", postID, err)
	}

	return &post, nil
}

// GetPostsByUserID returns the user's most recent posts. An empty result
// set maps to ErrPostNotFound: callers treat "no posts" the same as a
// missing post.
func (r *feedRepository) GetPostsByUserID(ctx context.Context, userID int64, limit int) ([]models.Post, error) {
	query := `SELECT post_id, user_id, date, text, num_likes, num_comments FROM post WHERE user_id = $1 ORDER BY post_id DESC LIMIT $2`

	var posts []models.Post
	err := r.db.SelectContext(ctx, &posts, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("error fetching posts for user %d: %w", userID, err)
	}
	if len(posts) == 0 {
		return nil, ErrPostNotFound
	}

	return posts, nil
}

func (r *feedRepository) LikePost(ctx context.Context, userID, postID int64) error {
	query := `INSERT INTO post_like (user_id, post_id) VALUES ($1, $2)`

	_, err := r.db.ExecContext(ctx, query, userID, postID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("error liking post %d: %w", postID, err)
	}

	return nil
}

func (r *feedRepository) UnlikePost(ctx context.Context, userID, postID int64) error {
	query := `DELETE FROM post_like WHERE user_id = $1 AND post_id = $2`

	_, err := r.db.ExecContext(ctx, query, userID, postID)
	if err != nil {
		return fmt.Errorf("error unliking post %d: %w", postID, err)
	}

	return nil
}

func (r *feedRepository) IsPostLiked(ctx context.Context, postID, userID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM post_like WHERE post_id = $1 AND user_id = $2)`

	var liked bool
	err := r.db.GetContext(ctx, &liked, query, postID, userID)
	if err != nil {
		return false, fmt.Errorf("error checking like on post %d: %w", postID, err)
	}

	return liked, nil
}

// ArePostsLiked answers "which of these posts has the viewer liked" in a
// single IN query instead of one lookup per post.
func (r *feedRepository) ArePostsLiked(ctx context.Context, postIDs []int64, userID int64) (map[int64]bool, error) {
	if len(postIDs) == 0 {
		return map[int64]bool{}, nil
	}

	query, args, err := sqlx.In(`SELECT post_id FROM post_like WHERE user_id = ? AND post_id IN (?)`, userID, postIDs)
	if err != nil {
		return nil, fmt.Errorf("error building likes query: %w", err)
	}
	query = r.db.Rebind(query)

	var likedIDs []int64
	err = r.db.SelectContext(ctx, &likedIDs, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error fetching likes: %w", err)
	}

	liked := make(map[int64]bool, len(likedIDs))
	for _, postID := range likedIDs {
		liked[postID] = true
	}

	return liked, nil
}

func (r *feedRepository) CountPostLikes(ctx context.Context, postID int64) (int, error) {
	query := `SELECT count(1) FROM post_like WHERE post_id = $1`

	var count int
	err := r.db.GetContext(ctx, &count, query, postID)
	if err != nil {
		return 0, fmt.Errorf("error counting likes for post %d: %w", postID, err)
	}

	return count, nil
}

func (r *feedRepository) UpdatePostLikeCount(ctx context.Context, postID int64, count int) error {
	query := `UPDATE post SET num_likes = $1 WHERE post_id = $2`

	_, err := r.db.ExecContext(ctx, query, count, postID)
	if err != nil {
		return fmt.Errorf("error updating like count for post %d: %w", postID, err)
	}

	return nil
}

func (r *feedRepository) Follow(ctx context.Context, followerID, followingID int64) error {
	query := `INSERT INTO following (follower_id, following_id) VALUES ($1, $2)`

	_, err := r.db.ExecContext(ctx, query, followerID, followingID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("error following user %d: %w", followingID, err)
	}

	return nil
}

func (r *feedRepository) Unfollow(ctx context.Context, followerID, followingID int64) error {
	query := `DELETE FROM following WHERE follower_id = $1 AND following_id = $2`

	_, err := r.db.ExecContext(ctx, query, followerID, followingID)
	if err != nil {
		return fmt.Errorf("error unfollowing user %d: %w", followingID, err)
	}

	return nil
}

func (r *feedRepository) IsFollowing(ctx context.Context, followerID, followingID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM following WHERE follower_id = $1 AND following_id = $2)`

	var following bool
	err := r.db.GetContext(ctx, &following, query, followerID, followingID)
	if err != nil {
		return false, fmt.Errorf("error checking follow edge: %w", err)
	}

	return following, nil
}

func (r *feedRepository) CountFollowers(ctx context.Context, userID int64) (int, error) {
	query := `SELECT count(1) FROM following WHERE following_id = $1`

	var count int
	err := r.db.GetContext(ctx, &count, query, userID)
	if err != nil {
		return 0, fmt.Errorf("error counting followers for user %d: %w", userID, err)
	}

	return count, nil
}

func (r *feedRepository) CreateComment(ctx context.Context, postID, userID int64, text string, date int64) (int64, error) {
	query := `INSERT INTO post_comment (post_id, user_id, text, date, visibility) VALUES ($1, $2, $3, $4, $5) RETURNING comment_id`

	var commentID int64
	err := r.db.GetContext(ctx, &commentID, query, postID, userID, text, date, models.CommentVisible)
	if err != nil {
		return 0, fmt.Errorf("error creating comment on post %d: %w", postID, err)
	}

	return commentID, nil
}

func (r *feedRepository) GetCommentByID(ctx context.Context, commentID int64) (*models.Comment, error) {
	query := `SELECT comment_id, post_id, user_id, text, date, visibility FROM post_comment WHERE comment_id = $1`

	var comment models.Comment
	err := r.db.GetContext(ctx, &comment, query, commentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("error fetching comment %d: %w", commentID, err)
	}

	return &comment, nil
}

// GetLatestComment returns at most the single most recent visible comment;
// it seeds the first page of the comment thread.
func (r *feedRepository) GetLatestComment(ctx context.Context, postID int64) ([]models.Comment, error) {
	query := `SELECT comment_id, post_id, user_id, text, date, visibility FROM post_comment WHERE post_id = $1 AND visibility = $2 ORDER BY comment_id DESC LIMIT 1`

	var comments []models.Comment
	err := r.db.SelectContext(ctx, &comments, query, postID, models.CommentVisible)
	if err != nil {
		return nil, fmt.Errorf("error fetching latest comment for post %d: %w", postID, err)
	}

	return comments, nil
}

func (r *feedRepository) GetCommentsAfter(ctx context.Context, postID, lastID int64, limit int) ([]models.Comment, error) {
	query := `SELECT comment_id, post_id, user_id, text, date, visibility FROM post_comment WHERE post_id = $1 AND comment_id > $2 AND visibility = $3 ORDER BY comment_id ASC LIMIT $4`

	var comments []models.Comment
	err := r.db.SelectContext(ctx, &comments, query, postID, lastID, models.CommentVisible, limit)
	if err != nil {
		return nil, fmt.Errorf("error fetching comments for post %d: %w", postID, err)
	}

	return comments, nil
}

func (r *feedRepository) SetCommentVisibility(ctx context.Context, commentID int64, visibility string) error {
	query := `UPDATE post_comment SET visibility = $1 WHERE comment_id = $2`

	result, err := r.db.ExecContext(ctx, query, visibility, commentID)
	if err != nil {
		return fmt.Errorf("error updating comment %d: %w", commentID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking updated rows: %w", err)
	}
	if rowsAffected == 0 {
		return ErrCommentNotFound
	}

	return nil
}

// CountPostComments only counts visible comments, so soft-deleted rows
// drop out of num_comments on the next recount.
func (r *feedRepository) CountPostComments(ctx context.Context, postID int64) (int, error) {
	query := `SELECT count(1) FROM post_comment WHERE post_id = $1 AND visibility = $2`

	var count int
	err := r.db.GetContext(ctx, &count, query, postID, models.CommentVisible)
	if err != nil {
		return 0, fmt.Errorf("error counting comments for post %d: %w", postID, err)
	}

	return count, nil
}

func (r *feedRepository) UpdatePostCommentCount(ctx context.Context, postID int64, count int) error {
	query := `UPDATE post SET num_comments = $1 WHERE post_id = $2`

	_, err := r.db.ExecContext(ctx, query, count, postID)
	if err != nil {
		return fmt.Errorf("error updating comment count for post %d: %w", postID, err)
	}

	return nil
}
