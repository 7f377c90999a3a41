package controllers

import (
	"net/http"

	"bulletin/app/models"
	"bulletin/app/response"
	"bulletin/app/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// PostController handles HTTP requests for posts
type PostController struct {
	postService *services.PostService
	logger      *zap.Logger
}

// NewPostController creates a new PostController
func NewPostController(postService *services.PostService, logger *zap.Logger) *PostController {
	return &PostController{
		postService: postService,
		logger:      logger,
	}
}

// Index lists posts newest first. page and per_page paginate when per_page is set.
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := pc.postService.ListPosts(r.Context(), queryInt(r, "page"), queryInt(r, "per_page"))
	if err != nil {
		sendError(w, r, pc.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, posts)
}

// Show returns a single post
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	post, err := pc.postService.GetPost(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		sendError(w, r, pc.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, post)
}

// Create stores a new post
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	var in models.CreatePostInput
	if err := bind(r, &in); err != nil {
		sendError(w, r, pc.logger, err)
		return
	}

	post, err := pc.postService.CreatePost(r.Context(), in)
	if err != nil {
		sendError(w, r, pc.logger, err)
		return
	}
	response.Created(w, "post created", post.ID)
}

// Edit updates a post whose password matches
func (pc *PostController) Edit(w http.ResponseWriter, r *http.Request) {
	var in models.UpdatePostInput
	if err := bind(r, &in); err != nil {
		sendError(w, r, pc.logger, err)
		return
	}

	if _, err := pc.postService.UpdatePost(r.Context(), mux.Vars(r)["id"], in); err != nil {
		sendError(w, r, pc.logger, err)
		return
	}
	response.OK(w, "post updated")
}

// Delete removes a post whose password matches
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	var in models.DeleteInput
	if err := bind(r, &in); err != nil {
		sendError(w, r, pc.logger, err)
		return
	}

	if err := pc.postService.DeletePost(r.Context(), mux.Vars(r)["id"], in); err != nil {
		sendError(w, r, pc.logger, err)
		return
	}
	response.OK(w, "post deleted")
}
