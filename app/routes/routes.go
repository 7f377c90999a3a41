package routes

import (
	"net/http"

	"bulletin/app/auth"
	"bulletin/app/controllers"
	"bulletin/app/middleware"
	"bulletin/app/repositories"
	"bulletin/app/response"
	"bulletin/app/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Dependencies are the collaborators the router wires into its controllers.
type Dependencies struct {
	Posts        repositories.PostRepository
	Comments     repositories.CommentRepository
	Hasher       auth.PasswordHasher
	Logger       *zap.Logger
	MaxBodyBytes int64
}

// SetupRoutes defines the application's routes and returns a router.
func SetupRoutes(deps Dependencies) *mux.Router {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.RequestID(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recoverer(logger))
	router.Use(middleware.ContentTypeJSON)
	router.Use(middleware.BodyLimit(deps.MaxBodyBytes))

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.Fail(w, http.StatusNotFound, "not found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.Fail(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	postController := controllers.NewPostController(services.NewPostService(deps.Posts, deps.Hasher), logger)
	commentController := controllers.NewCommentController(services.NewCommentService(deps.Comments, deps.Hasher), logger)

	api := router.PathPrefix("/api").Subrouter()

	// Posts API endpoints
	posts := api.PathPrefix("/posts").Subrouter()
	posts.HandleFunc("", postController.Index).Methods(http.MethodGet)
	posts.HandleFunc("", postController.Create).Methods(http.MethodPost)
	posts.HandleFunc("/{id}", postController.Show).Methods(http.MethodGet)
	posts.HandleFunc("/{id}", postController.Edit).Methods(http.MethodPut)
	posts.HandleFunc("/{id}", postController.Delete).Methods(http.MethodDelete)

	// Comments API endpoints. Listing and creation address the post, edit and
	// delete address the comment.
	comments := api.PathPrefix("/comments").Subrouter()
	comments.HandleFunc("/{postId}", commentController.Index).Methods(http.MethodGet)
	comments.HandleFunc("/{postId}", commentController.Create).Methods(http.MethodPost)
	comments.HandleFunc("/{id}", commentController.Edit).Methods(http.MethodPut)
	comments.HandleFunc("/{id}", commentController.Delete).Methods(http.MethodDelete)

	return router
}
