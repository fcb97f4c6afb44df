package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"socialfeed/internal/config"
	"socialfeed/internal/database"
	"socialfeed/internal/service"
	"socialfeed/internal/session"
)

type Handlers struct {
	AuthService service.AuthService
	UserService service.UserService
	FeedService service.FeedService
	Sessions    *session.Codec
	DBs         *database.Databases
	Cfg         *config.Config
	Validate    *validator.Validate
}

func NewHandlers(services *service.Service, sessions *session.Codec, dbs *database.Databases, cfg *config.Config) *Handlers {
	return &Handlers{
		AuthService: services.Auth,
		UserService: services.User,
		FeedService: services.Feed,
		Sessions:    sessions,
		DBs:         dbs,
		Cfg:         cfg,
		Validate:    validator.New(),
	}
}

// Routes builds the route table. Each entry declares its method, path,
// handler and whether a session is required.
func (h *Handlers) Routes() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/authenticate", h.route(h.Authenticate, false)).Methods(http.MethodPut)
	r.HandleFunc("/authenticate/create", h.route(h.CreateAccount, false)).Methods(http.MethodPut)

	r.HandleFunc("/user/{id:[0-9]+}", h.route(h.GetUser, false)).Methods(http.MethodGet)
	r.HandleFunc("/profile/{username}", h.route(h.GetProfile, false)).Methods(http.MethodGet)
	r.HandleFunc("/user/profile", h.route(h.UpdateProfile, true)).Methods(http.MethodPut)

	r.HandleFunc("/post/{id:[0-9]+}", h.route(h.GetPost, false)).Methods(http.MethodGet)
	r.HandleFunc("/user/{id:[0-9]+}/posts", h.route(h.GetUserPosts, false)).Methods(http.MethodGet)
	r.HandleFunc("/post/create", h.route(h.CreatePost, true)).Methods(http.MethodPost)

	r.HandleFunc("/post/{id:[0-9]+}/like", h.route(h.LikePost, true)).Methods(http.MethodPost)
	r.HandleFunc("/post/{id:[0-9]+}/like", h.route(h.UnlikePost, true)).Methods(http.MethodDelete)

	r.HandleFunc("/post/{id:[0-9]+}/comments", h.route(h.GetPostComments, false)).Methods(http.MethodGet)
	r.HandleFunc("/post/{post_id:[0-9]+}/comments", h.route(h.CreateComment, true)).Methods(http.MethodPost)
	r.HandleFunc("/comment/{comment_id:[0-9]+}", h.route(h.DeleteComment, true)).Methods(http.MethodDelete)

	r.HandleFunc("/user/{id:[0-9]+}/follow", h.route(h.IsFollowing, true)).Methods(http.MethodGet)
	r.HandleFunc("/user/{id:[0-9]+}/follow", h.route(h.FollowUser, true)).Methods(http.MethodPost)
	r.HandleFunc("/user/{id:[0-9]+}/follow", h.route(h.UnfollowUser, true)).Methods(http.MethodDelete)

	r.HandleFunc("/upload-image", h.route(h.UploadImage, true)).Methods(http.MethodPost)

	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	return r
}
