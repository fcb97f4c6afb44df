package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"socialfeed/internal/models"
	"socialfeed/internal/session"
)

// ErrInvalidRequest marks a request body (or parameter) that failed to
// decode into its declared shape. The pipeline maps it to HTTP 400.
var ErrInvalidRequest = errors.New("invalid request")

// apiHandler is the contract every route handler implements. The
// ResponseWriter is only for setting cookies; the pipeline owns the body.
type apiHandler func(w http.ResponseWriter, r *http.Request, sess *session.Session) (*models.APIResponse, error)

func respond(payload interface{}) *models.APIResponse {
	return &models.APIResponse{Response: payload, Success: true}
}

func respondWith(payload interface{}, success bool) *models.APIResponse {
	return &models.APIResponse{Response: payload, Success: success}
}

func respondError(message string) *models.APIResponse {
	return &models.APIResponse{Response: message, Success: true, Error: true}
}

// route wraps a handler with the request pipeline: resolve the session from
// the cookie, enforce auth, invoke the handler, normalize the envelope and
// map errors to status codes. Every registered route goes through here.
func (h *Handlers) route(handler apiHandler, requireAuth bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := h.Sessions.FromRequest(r)

		// The 401 bypasses the envelope entirely; the handler never runs.
		if requireAuth && sess == nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Not authenticated"})
			return
		}

		status := http.StatusOK
		resp, err := handler(w, r, sess)
		if err != nil {
			if errors.Is(err, ErrInvalidRequest) {
				status = http.StatusBadRequest
				resp = &models.APIResponse{Response: "Invalid request", Error: true}
			} else {
				log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
				status = http.StatusInternalServerError
				resp = &models.APIResponse{Response: err.Error(), Error: true}
			}
		}

		if resp.Error {
			resp.Success = false
			resp.Response = map[string]interface{}{"message": resp.Response}
		}

		writeJSON(w, status, resp)
	}
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// decodeBody parses the JSON body into the declared request struct and runs
// its validate tags. Unknown fields, missing fields and type mismatches all
// fail closed as ErrInvalidRequest; raw parse errors never propagate.
func (h *Handlers) decodeBody(r *http.Request, dst interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return ErrInvalidRequest
	}
	if err := h.Validate.Struct(dst); err != nil {
		return ErrInvalidRequest
	}

	return nil
}

// pathID extracts a numeric path variable.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		return 0, ErrInvalidRequest
	}
	return id, nil
}
