package models

// APIResponse is the envelope around every JSON response body. Success
// defaults to true; Error is omitted unless a handler flagged a failure.
// When Error is set the pipeline forces Success to false and rewraps
// Response as {"message": <original payload>}.
type APIResponse struct {
	Response interface{} `json:"response"`
	Success  bool        `json:"success"`
	Error    bool        `json:"error,omitempty"`
}

type Account struct {
	UserID       int64  `json:"user_id" db:"user_id"`
	Username     string `json:"username" db:"username"`
	Password     string `json:"-" db:"password"` // bcrypt hash, never serialized
	EmailAddress string `json:"email_address" db:"email_address"`
}

type Profile struct {
	UserID         int64  `json:"user_id" db:"user_id"`
	Username       string `json:"username" db:"username"`
	Bio            string `json:"bio" db:"bio"`
	HeaderImageURL string `json:"header_image_url" db:"header_image_url"`
	FollowingCount int    `json:"following_count" db:"following_count"`
	FollowerCount  int    `json:"follower_count" db:"follower_count"`
}

type ProfileSummary struct {
	UserID         int64  `json:"user_id" db:"user_id"`
	Username       string `json:"username" db:"username"`
	HeaderImageURL string `json:"header_image_url" db:"header_image_url"`
}

type Post struct {
	PostID      int64  `json:"post_id" db:"post_id"`
	UserID      int64  `json:"user_id" db:"user_id"`
	Date        int64  `json:"date" db:"date"`
	Text        string `json:"text" db:"text"`
	NumLikes    int    `json:"num_likes" db:"num_likes"`
	NumComments int    `json:"num_comments" db:"num_comments"`

	// Filled in per request, not stored on the post row.
	IsLiked  bool   `json:"is_liked" db:"-"`
	Username string `json:"username,omitempty" db:"-"`
}

const (
	CommentVisible = "VISIBLE"
	CommentDeleted = "DELETED"
	CommentHidden  = "HIDDEN"
)

type Comment struct {
	CommentID  int64  `json:"comment_id" db:"comment_id"`
	PostID     int64  `json:"-" db:"post_id"`
	UserID     int64  `json:"-" db:"user_id"`
	Text       string `json:"text" db:"text"`
	Date       int64  `json:"date" db:"date"`
	Visibility string `json:"-" db:"visibility"`

	// Author is joined in from the profile store when comments are listed.
	Author *ProfileSummary `json:"author,omitempty" db:"-"`
}
