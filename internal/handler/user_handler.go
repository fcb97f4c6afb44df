package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"socialfeed/internal/models"
	"socialfeed/internal/repository"
	"socialfeed/internal/service"
	"socialfeed/internal/session"
	"socialfeed/internal/validation"
)

// DisplayName is a pointer so a missing key fails the decode while an
// empty string reaches the length check in the service.
type UpdateProfileRequest struct {
	Bio            string  `json:"bio"`
	DisplayName    *string `json:"display_name" validate:"required"`
	HeaderImageURL string  `json:"header_image_url"`
}

func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request, _ *session.Session) (*models.APIResponse, error) {
	userID, err := pathID(r, "id")
	if err != nil {
		return nil, err
	}

	user, err := h.UserService.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return respondError("User not found"), nil
		}
		return nil, err
	}

	// The Account model never serializes the password hash.
	return respond(map[string]interface{}{"user": user}), nil
}

func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request, _ *session.Session) (*models.APIResponse, error) {
	username := mux.Vars(r)["username"]

	profile, err := h.UserService.GetProfile(r.Context(), username)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return respondError("Profile not found"), nil
		}
		return nil, err
	}

	return respond(map[string]interface{}{"profile": profile}), nil
}

func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request, sess *session.Session) (*models.APIResponse, error) {
	var req UpdateProfileRequest
	if err := h.decodeBody(r, &req); err != nil {
		return nil, err
	}

	err := h.UserService.UpdateProfile(r.Context(), sess.UserID, req.Bio, *req.DisplayName, req.HeaderImageURL)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidBio):
			return respondError(bioConstraintMessage), nil
		case errors.Is(err, service.ErrInvalidDisplayName):
			return respondError(displayNameConstraintMessage), nil
		case errors.Is(err, repository.ErrProfileNotFound):
			return respondError("Profile not found"), nil
		}
		return nil, err
	}

	return respond(struct{}{}), nil
}

var (
	bioConstraintMessage         = fmt.Sprintf("Bio must be at most %d characters", validation.BioMaxChars)
	displayNameConstraintMessage = fmt.Sprintf("Display name must be between 1 and %d characters", validation.DisplayNameMaxChars)
)
