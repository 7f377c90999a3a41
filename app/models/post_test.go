package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostBeforeCreate(t *testing.T) {
	post := &Post{
		Title:   "Test Post",
		Content: "Test Content",
	}
	now := time.Now()

	assert.True(t, post.CreatedAt.IsZero())
	post.BeforeCreate(now)
	assert.Equal(t, now, post.CreatedAt)
	assert.Equal(t, now, post.UpdatedAt)
}

func TestPostBeforeUpdate(t *testing.T) {
	created := time.Now().Add(-time.Hour)
	post := &Post{CreatedAt: created, UpdatedAt: created}

	now := time.Now()
	post.BeforeUpdate(now)
	assert.Equal(t, created, post.CreatedAt)
	assert.Equal(t, now, post.UpdatedAt)
}

func TestPostPublic(t *testing.T) {
	post := &Post{
		ID:       "a",
		Title:    "Test Post",
		Author:   "tester",
		Password: "$2a$10$hash",
		Content:  "Test Content",
	}

	public := post.Public()
	assert.Empty(t, public.Password)
	assert.Equal(t, "$2a$10$hash", post.Password, "original must keep its hash")

	data, err := json.Marshal(public)
	require.NoError(t, err)
	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.NotContains(t, fields, "password")
	assert.Equal(t, "Test Post", fields["title"])
}

func TestPublicPosts(t *testing.T) {
	posts := []*Post{
		{ID: "1", Password: "h1"},
		{ID: "2", Password: "h2"},
	}

	public := PublicPosts(posts)
	assert.Len(t, public, 2)
	for _, p := range public {
		assert.Empty(t, p.Password)
	}
	assert.NotNil(t, PublicPosts(nil))
}
