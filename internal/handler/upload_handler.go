package handlers

import (
	"net/http"

	"socialfeed/internal/models"
	"socialfeed/internal/session"
)

type UploadImageRequest struct {
	ImageType string `json:"image_type" validate:"required,oneof=png jpg gif"`
}

// UploadImage issues a presigned upload URL; the client PUTs the image
// bytes straight to the object store using the returned url and key.
func (h *Handlers) UploadImage(w http.ResponseWriter, r *http.Request, sess *session.Session) (*models.APIResponse, error) {
	var req UploadImageRequest
	if err := h.decodeBody(r, &req); err != nil {
		return nil, err
	}

	upload, err := h.UserService.IssueUploadURL(r.Context(), req.ImageType)
	if err != nil {
		return nil, err
	}

	return respond(upload), nil
}
