package services

import (
	"context"

	"bulletin/app/auth"
	apperrors "bulletin/app/errors"
	"bulletin/app/guard"
	"bulletin/app/models"
	"bulletin/app/repositories"
	"bulletin/app/validation"
)

// CommentService handles business logic for comments
type CommentService struct {
	commentRepo repositories.CommentRepository
	hasher      auth.PasswordHasher
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repositories.CommentRepository, hasher auth.PasswordHasher) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		hasher:      hasher,
	}
}

// ListComments returns the comments of a post, newest first, without
// password hashes. The post itself need not exist.
func (s *CommentService) ListComments(ctx context.Context, postID string) ([]*models.Comment, error) {
	if err := checkID(postID, "postId"); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, apperrors.Internal(apperrors.Wrap(err, "list comments"))
	}
	return models.PublicComments(comments), nil
}

// CreateComment validates the input, hashes the password and stores the comment
func (s *CommentService) CreateComment(ctx context.Context, postID string, in models.CreateCommentInput) (*models.Comment, error) {
	if err := checkID(postID, "postId"); err != nil {
		return nil, err
	}
	if err := validation.Check(in); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	comment := &models.Comment{
		PostID:   postID,
		Author:   in.Author,
		Password: hash,
		Content:  in.Content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, storeError(err, "comment", "create")
	}
	return comment.Public(), nil
}

// UpdateComment replaces the content of a comment once its password checks out
func (s *CommentService) UpdateComment(ctx context.Context, id string, in models.UpdateCommentInput) (*models.Comment, error) {
	if err := checkID(id, "commentId"); err != nil {
		return nil, err
	}
	if err := validation.Check(in); err != nil {
		return nil, err
	}

	comment, err := guard.Authorize(ctx, s.hasher, s.loader(id), in.Password, "comment")
	if err != nil {
		return nil, err
	}

	comment.Content = in.Content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, storeError(err, "comment", "update")
	}
	return comment.Public(), nil
}

// DeleteComment permanently removes a comment once its password checks out
func (s *CommentService) DeleteComment(ctx context.Context, id string, in models.DeleteInput) error {
	if err := checkID(id, "commentId"); err != nil {
		return err
	}
	if err := validation.Check(in); err != nil {
		return err
	}

	if _, err := guard.Authorize(ctx, s.hasher, s.loader(id), in.Password, "comment"); err != nil {
		return err
	}

	if err := s.commentRepo.Delete(ctx, id); err != nil {
		return storeError(err, "comment", "delete")
	}
	return nil
}

func (s *CommentService) loader(id string) func(context.Context) (*models.Comment, error) {
	return func(ctx context.Context) (*models.Comment, error) {
		return s.commentRepo.GetByID(ctx, id)
	}
}
