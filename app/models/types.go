package models

import "time"

// Post is a top-level authored entry on the board.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Password  string    `json:"password,omitempty"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Comment is an authored entry attached to a post by its id. The reference is
// not enforced; comments outlive their post.
type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	Author    string    `json:"author"`
	Password  string    `json:"password,omitempty"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreatePostInput is the request body for creating a post.
type CreatePostInput struct {
	Title    string `json:"title" validate:"required,max=50"`
	Author   string `json:"author" validate:"required,max=20"`
	Password string `json:"password" validate:"required,min=8,max=72,boardpassword"`
	Content  string `json:"content" validate:"required,max=100000"`
}

// UpdatePostInput is the request body for updating a post. Empty title or
// author keeps the stored value.
type UpdatePostInput struct {
	Password string `json:"password" validate:"required,min=8,max=72,boardpassword"`
	Title    string `json:"title" validate:"omitempty,max=50"`
	Author   string `json:"author" validate:"omitempty,max=20"`
	Content  string `json:"content" validate:"required,max=100000"`
}

// CreateCommentInput is the request body for commenting on a post.
type CreateCommentInput struct {
	Author   string `json:"author" validate:"required,max=20"`
	Password string `json:"password" validate:"required,min=8,max=72,boardpassword"`
	Content  string `json:"content" validate:"required,max=100000"`
}

// UpdateCommentInput is the request body for editing a comment.
type UpdateCommentInput struct {
	Password string `json:"password" validate:"required,min=8,max=72,boardpassword"`
	Content  string `json:"content" validate:"required,max=100000"`
}

// DeleteInput carries the password that authorizes a removal.
type DeleteInput struct {
	Password string `json:"password" validate:"required,min=8,max=72,boardpassword"`
}
