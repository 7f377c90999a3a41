package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"bulletin/app/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commentBody(content string) map[string]string {
	return map[string]string{
		"author":   "commenter",
		"password": password,
		"content":  content,
	}
}

func (e *testEnv) createComment(t *testing.T, postID, content string) string {
	t.Helper()
	rw := e.do(t, http.MethodPost, "/api/comments/"+postID, commentBody(content))
	require.Equal(t, http.StatusOK, rw.Code, rw.Body.String())
	return decodeEnvelope(t, rw).ID
}

func (e *testEnv) listComments(t *testing.T, postID string) []models.Comment {
	t.Helper()
	rw := e.do(t, http.MethodGet, "/api/comments/"+postID, nil)
	require.Equal(t, http.StatusOK, rw.Code, rw.Body.String())
	var comments []models.Comment
	require.NoError(t, json.Unmarshal(rw.Body.Bytes(), &comments))
	return comments
}

func TestCommentController_CreateAndIndex(t *testing.T) {
	env := setupTestEnv(t)
	postID := env.createPost(t, "With comments")
	otherID := env.createPost(t, "Elsewhere")

	env.createComment(t, postID, "first")
	env.createComment(t, postID, "second")
	env.createComment(t, otherID, "unrelated")

	comments := env.listComments(t, postID)
	require.Len(t, comments, 2)
	assert.Equal(t, "second", comments[0].Content)
	assert.Equal(t, "first", comments[1].Content)
	for _, c := range comments {
		assert.Equal(t, postID, c.PostID)
		assert.Empty(t, c.Password)
	}

	t.Run("raw json has no password", func(t *testing.T) {
		rw := env.do(t, http.MethodGet, "/api/comments/"+postID, nil)
		assert.NotContains(t, rw.Body.String(), "password")
	})

	t.Run("author required", func(t *testing.T) {
		body := commentBody("x")
		delete(body, "author")
		rw := env.do(t, http.MethodPost, "/api/comments/"+postID, body)
		assert.Equal(t, http.StatusBadRequest, rw.Code)
		assert.Equal(t, []string{"author is required"}, decodeEnvelope(t, rw).list(t))
	})

	t.Run("bad post id", func(t *testing.T) {
		rw := env.do(t, http.MethodGet, "/api/comments/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, rw.Code)

		rw = env.do(t, http.MethodPost, "/api/comments/not-a-uuid", commentBody("x"))
		assert.Equal(t, http.StatusBadRequest, rw.Code)
	})

	t.Run("unknown post has no comments", func(t *testing.T) {
		assert.Empty(t, env.listComments(t, uuid.NewString()))
	})
}

func TestCommentController_EditAndDelete(t *testing.T) {
	env := setupTestEnv(t)
	postID := env.createPost(t, "Post")
	id := env.createComment(t, postID, "original")

	rw := env.do(t, http.MethodPut, "/api/comments/"+id, map[string]string{
		"password": "otherpass1",
		"content":  "hijacked",
	})
	assert.Equal(t, http.StatusUnauthorized, rw.Code)

	rw = env.do(t, http.MethodPut, "/api/comments/"+id, map[string]string{
		"password": password,
		"content":  "edited",
	})
	require.Equal(t, http.StatusOK, rw.Code, rw.Body.String())
	assert.Equal(t, "comment updated", decodeEnvelope(t, rw).text(t))
	assert.Equal(t, "edited", env.listComments(t, postID)[0].Content)

	rw = env.do(t, http.MethodPut, "/api/comments/"+uuid.NewString(), map[string]string{
		"password": password,
		"content":  "edited",
	})
	assert.Equal(t, http.StatusNotFound, rw.Code)

	rw = env.do(t, http.MethodDelete, "/api/comments/"+id, map[string]string{"password": "otherpass1"})
	assert.Equal(t, http.StatusUnauthorized, rw.Code)

	rw = env.do(t, http.MethodDelete, "/api/comments/"+id, map[string]string{"password": password})
	require.Equal(t, http.StatusOK, rw.Code)
	assert.Equal(t, "comment deleted", decodeEnvelope(t, rw).text(t))
	assert.Empty(t, env.listComments(t, postID))

	rw = env.do(t, http.MethodDelete, "/api/comments/"+id, map[string]string{"password": password})
	assert.Equal(t, http.StatusNotFound, rw.Code)
}
