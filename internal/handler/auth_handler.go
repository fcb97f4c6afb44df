package handlers

import (
	"errors"
	"net/http"

	"socialfeed/internal/models"
	"socialfeed/internal/service"
	"socialfeed/internal/session"
)

// Required fields are pointers so a missing key fails the decode while a
// present-but-empty value falls through to the domain checks.
type AuthenticateRequest struct {
	Username *string `json:"username" validate:"required"`
	Password *string `json:"password" validate:"required"`
}

type CreateAccountRequest struct {
	Username *string `json:"username" validate:"required"`
	Password *string `json:"password" validate:"required"`
	Email    *string `json:"email" validate:"required"`
}

type SessionUser struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

type AuthenticateResponse struct {
	User SessionUser `json:"user"`
}

func (h *Handlers) Authenticate(w http.ResponseWriter, r *http.Request, _ *session.Session) (*models.APIResponse, error) {
	var req AuthenticateRequest
	if err := h.decodeBody(r, &req); err != nil {
		return nil, err
	}

	sess, err := h.AuthService.Authenticate(r.Context(), *req.Username, *req.Password)
	if err != nil {
		if errors.Is(err, service.ErrIncorrectCredentials) {
			return respondError("Incorrect username and/or password"), nil
		}
		return nil, err
	}

	if err := h.Sessions.Write(w, sess); err != nil {
		return nil, err
	}

	return respond(AuthenticateResponse{
		User: SessionUser{UserID: sess.UserID, Username: sess.Username},
	}), nil
}

func (h *Handlers) CreateAccount(w http.ResponseWriter, r *http.Request, _ *session.Session) (*models.APIResponse, error) {
	var req CreateAccountRequest
	if err := h.decodeBody(r, &req); err != nil {
		return nil, err
	}

	sess, err := h.AuthService.Register(r.Context(), *req.Username, *req.Password, *req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidUsername):
			return respondError("Username is invalid"), nil
		case errors.Is(err, service.ErrInvalidEmail):
			return respondError("Email is invalid"), nil
		case errors.Is(err, service.ErrUsernameTaken):
			return respondError("Username is taken. Please try again."), nil
		}
		return nil, err
	}

	if err := h.Sessions.Write(w, sess); err != nil {
		return nil, err
	}

	return respond(AuthenticateResponse{
		User: SessionUser{UserID: sess.UserID, Username: sess.Username},
	}), nil
}
