package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"socialfeed/internal/models"
	"socialfeed/internal/repository"
	"socialfeed/internal/service"
	"socialfeed/internal/session"
	"socialfeed/internal/validation"
)

// Text is a pointer so a missing key fails the decode while an empty
// string reaches the length checks in the service.
type CreatePostRequest struct {
	Text *string `json:"text" validate:"required"`
}

type CreateCommentRequest struct {
	Text *string `json:"text" validate:"required"`
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request, sess *session.Session) (*models.APIResponse, error) {
	postID, err := pathID(r, "id")
	if err != nil {
		return nil, err
	}

	post, err := h.FeedService.GetPost(r.Context(), postID, sess)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return respondError("Post not found"), nil
		}
		return nil, err
	}

	return respond(map[string]interface{}{"post": post}), nil
}

func (h *Handlers) GetUserPosts(w http.ResponseWriter, r *http.Request, sess *session.Session) (*models.APIResponse, error) {
	userID, err := pathID(r, "id")
	if err != nil {
		return nil, err
	}

	posts, err := h.FeedService.GetUserPosts(r.Context(), userID, sess)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return respondError("Posts not found"), nil
		}
		return nil, err
	}

	return respond(map[string]interface{}{"posts": posts}), nil
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request, sess *session.Session) (*models.APIResponse, error) {
	var req CreatePostRequest
	if err := h.decodeBody(r, &req); err != nil {
		return nil, err
	}

	postID, err := h.FeedService.CreatePost(r.Context(), sess.UserID, *req.Text)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPostText) {
			return respondError(postTextConstraintMessage), nil
		}
		return nil, err
	}

	return respond(map[string]interface{}{"post_id": postID}), nil
}

// LikePost reports success=false when the post was already liked; the
// duplicate is not an error.
func (h *Handlers) LikePost(w http.ResponseWriter, r *http.Request, sess *session.Session) (*models.APIResponse, error) {
	postID, err := pathID(r, "id")
	if err != nil {
		return nil, err
	}

	liked, err := h.FeedService.LikePost(r.Context(), sess.UserID, postID)
	if err != nil {
		return nil, err
	}

	return respondWith(struct{}{}, liked), nil
}

func (h *Handlers) UnlikePost(w http.ResponseWriter, r *http.Request, sess *session.Session) (*models.APIResponse, error) {
	postID, err := pathID(r, "id")
	if err != nil {
		return nil, err
	}

	if err := h.FeedService.UnlikePost(r.Context(), sess.UserID, postID); err != nil {
		return nil, err
	}

	return respond(struct{}{}), nil
}

func (h *Handlers) IsFollowing(w http.ResponseWriter, r *http.Request, sess *session.Session) (*models.APIResponse, error) {
	userID, err := pathID(r, "id")
	if err != nil {
		return nil, err
	}

	following, err := h.FeedService.IsFollowing(r.Context(), sess.UserID, userID)
	if err != nil {
		if errors.Is(err, service.ErrSelfFollow) {
			return respondError("Can not follow self"), nil
		}
		return nil, err
	}

	return respond(map[string]interface{}{"following": following}), nil
}

func (h *Handlers) FollowUser(w http.ResponseWriter, r *http.Request, sess *session.Session) (*models.APIResponse, error) {
	userID, err := pathID(r, "id")
	if err != nil {
		return nil, err
	}

	followed, err := h.FeedService.FollowUser(r.Context(), sess.UserID, userID)
	if err != nil {
		if errors.Is(err, service.ErrSelfFollow) {
			return respondError("Can not follow self"), nil
		}
		return nil, err
	}

	return respondWith(struct{}{}, followed), nil
}

func (h *Handlers) UnfollowUser(w http.ResponseWriter, r *http.Request, sess *session.Session) (*models.APIResponse, error) {
	userID, err := pathID(r, "id")
	if err != nil {
		return nil, err
	}

	if err := h.FeedService.UnfollowUser(r.Context(), sess.UserID, userID); err != nil {
		if errors.Is(err, service.ErrSelfFollow) {
			return respondError("Can not follow self"), nil
		}
		return nil, err
	}

	return respond(struct{}{}), nil
}

func (h *Handlers) GetPostComments(w http.ResponseWriter, r *http.Request, sess *session.Session) (*models.APIResponse, error) {
	postID, err := pathID(r, "id")
	if err != nil {
		return nil, err
	}

	var lastID *int64
	if raw := r.URL.Query().Get("last_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, ErrInvalidRequest
		}
		lastID = &parsed
	}

	comments, err := h.FeedService.GetPostComments(r.Context(), postID, lastID)
	if err != nil {
		return nil, err
	}

	return respond(map[string]interface{}{"comments": comments}), nil
}

func (h *Handlers) CreateComment(w http.ResponseWriter, r *http.Request, sess *session.Session) (*models.APIResponse, error) {
	postID, err := pathID(r, "post_id")
	if err != nil {
		return nil, err
	}

	var req CreateCommentRequest
	if err := h.decodeBody(r, &req); err != nil {
		return nil, err
	}

	commentID, err := h.FeedService.CreateComment(r.Context(), postID, sess.UserID, *req.Text)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCommentText) {
			return respondError(commentTextConstraintMessage), nil
		}
		return nil, err
	}

	return respond(map[string]interface{}{"comment_id": commentID}), nil
}

func (h *Handlers) DeleteComment(w http.ResponseWriter, r *http.Request, sess *session.Session) (*models.APIResponse, error) {
	commentID, err := pathID(r, "comment_id")
	if err != nil {
		return nil, err
	}

	err = h.FeedService.DeleteComment(r.Context(), commentID, sess.UserID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrCommentNotFound):
			return respondError("Comment not found"), nil
		case errors.Is(err, service.ErrNotCommentAuthor):
			return respondError("Can not delete another user's comment"), nil
		}
		return nil, err
	}

	return respond(struct{}{}), nil
}

var (
	postTextConstraintMessage    = fmt.Sprintf("Post text must be between 1 and %d characters", validation.PostTextMaxChars)
	commentTextConstraintMessage = fmt.Sprintf("Comment text must be between 1 and %d characters", validation.CommentTextMaxChars)
)
