package session

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
)

const (
	cookieName = "session"
	cookieAge  = 30 * 24 * time.Hour
)

// Session is the authenticated identity carried by the encrypted cookie.
type Session struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

// Codec encodes sessions into an encrypted, authenticated cookie value and
// back. It is stateless; the same instance is shared by every request.
type Codec struct {
	sc *securecookie.SecureCookie
}

func NewCodec(hashKey, blockKey []byte) *Codec {
	sc := securecookie.New(hashKey, blockKey)
	sc.MaxAge(int(cookieAge.Seconds()))
	return &Codec{sc: sc}
}

// FromRequest resolves the session from the request cookie. A missing
// cookie, a tampered value or an expired encoding all resolve to nil;
// decoding never fails the request.
func (c *Codec) FromRequest(r *http.Request) *Session {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return nil
	}

	var sess Session
	if err := c.sc.Decode(cookieName, cookie.Value, &sess); err != nil {
		return nil
	}
	if sess.UserID == 0 {
		return nil
	}

	return &sess
}

// Write establishes a new session on the response.
func (c *Codec) Write(w http.ResponseWriter, sess *Session) error {
	encoded, err := c.sc.Encode(cookieName, sess)
	if err != nil {
		return fmt.Errorf("error encoding session cookie: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    encoded,
		Path:     "/",
		MaxAge:   int(cookieAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}
