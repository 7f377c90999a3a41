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

// PostService handles business logic for posts
type PostService struct {
	postRepo repositories.PostRepository
	hasher   auth.PasswordHasher
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository, hasher auth.PasswordHasher) *PostService {
	return &PostService{
		postRepo: postRepo,
		hasher:   hasher,
	}
}

// ListPosts returns posts newest first without password hashes. perPage <= 0
// returns every post.
func (s *PostService) ListPosts(ctx context.Context, page, perPage int) ([]*models.Post, error) {
	limit, offset := 0, 0
	if perPage > 0 {
		if page < 1 {
			page = 1
		}
		limit, offset = perPage, (page-1)*perPage
	}

	posts, err := s.postRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, apperrors.Internal(apperrors.Wrap(err, "list posts"))
	}
	return models.PublicPosts(posts), nil
}

// GetPost retrieves a post by ID without its password hash
func (s *PostService) GetPost(ctx context.Context, id string) (*models.Post, error) {
	if err := checkID(id, "postId"); err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "post", "get")
	}
	return post.Public(), nil
}

// CreatePost validates the input, hashes the password and stores the post
func (s *PostService) CreatePost(ctx context.Context, in models.CreatePostInput) (*models.Post, error) {
	if err := validation.Check(in); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	post := &models.Post{
		Title:    in.Title,
		Author:   in.Author,
		Password: hash,
		Content:  in.Content,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, storeError(err, "post", "create")
	}
	return post.Public(), nil
}

// UpdatePost applies the input to a post once its password checks out.
// Omitted title and author keep their stored values; content is always replaced.
func (s *PostService) UpdatePost(ctx context.Context, id string, in models.UpdatePostInput) (*models.Post, error) {
	if err := checkID(id, "postId"); err != nil {
		return nil, err
	}
	if err := validation.Check(in); err != nil {
		return nil, err
	}

	post, err := guard.Authorize(ctx, s.hasher, s.loader(id), in.Password, "post")
	if err != nil {
		return nil, err
	}

	if in.Title != "" {
		post.Title = in.Title
	}
	if in.Author != "" {
		post.Author = in.Author
	}
	post.Content = in.Content

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, storeError(err, "post", "update")
	}
	return post.Public(), nil
}

// DeletePost permanently removes a post once its password checks out.
// Comments on the post are not removed.
func (s *PostService) DeletePost(ctx context.Context, id string, in models.DeleteInput) error {
	if err := checkID(id, "postId"); err != nil {
		return err
	}
	if err := validation.Check(in); err != nil {
		return err
	}

	if _, err := guard.Authorize(ctx, s.hasher, s.loader(id), in.Password, "post"); err != nil {
		return err
	}

	if err := s.postRepo.Delete(ctx, id); err != nil {
		return storeError(err, "post", "delete")
	}
	return nil
}

func (s *PostService) loader(id string) func(context.Context) (*models.Post, error) {
	return func(ctx context.Context) (*models.Post, error) {
		return s.postRepo.GetByID(ctx, id)
	}
}
