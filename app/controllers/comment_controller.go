package controllers

import (
	"net/http"

	"bulletin/app/models"
	"bulletin/app/response"
	"bulletin/app/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// CommentController handles HTTP requests for comments
type CommentController struct {
	commentService *services.CommentService
	logger         *zap.Logger
}

// NewCommentController creates a new CommentController
func NewCommentController(commentService *services.CommentService, logger *zap.Logger) *CommentController {
	return &CommentController{
		commentService: commentService,
		logger:         logger,
	}
}

// Index lists the comments of a post newest first
func (cc *CommentController) Index(w http.ResponseWriter, r *http.Request) {
	comments, err := cc.commentService.ListComments(r.Context(), mux.Vars(r)["postId"])
	if err != nil {
		sendError(w, r, cc.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, comments)
}

// Create adds a comment to a post
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	var in models.CreateCommentInput
	if err := bind(r, &in); err != nil {
		sendError(w, r, cc.logger, err)
		return
	}

	comment, err := cc.commentService.CreateComment(r.Context(), mux.Vars(r)["postId"], in)
	if err != nil {
		sendError(w, r, cc.logger, err)
		return
	}
	response.Created(w, "comment created", comment.ID)
}

// Edit replaces the content of a comment whose password matches
func (cc *CommentController) Edit(w http.ResponseWriter, r *http.Request) {
	var in models.UpdateCommentInput
	if err := bind(r, &in); err != nil {
		sendError(w, r, cc.logger, err)
		return
	}

	if _, err := cc.commentService.UpdateComment(r.Context(), mux.Vars(r)["id"], in); err != nil {
		sendError(w, r, cc.logger, err)
		return
	}
	response.OK(w, "comment updated")
}

// Delete removes a comment whose password matches
func (cc *CommentController) Delete(w http.ResponseWriter, r *http.Request) {
	var in models.DeleteInput
	if err := bind(r, &in); err != nil {
		sendError(w, r, cc.logger, err)
		return
	}

	if err := cc.commentService.DeleteComment(r.Context(), mux.Vars(r)["id"], in); err != nil {
		sendError(w, r, cc.logger, err)
		return
	}
	response.OK(w, "comment deleted")
}
