package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"bulletin/app/auth"
	"bulletin/app/repositories/mock"
	"bulletin/app/services"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const password = "longpass1!"

type testEnv struct {
	router   *mux.Router
	posts    *mock.PostRepository
	comments *mock.CommentRepository
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	env := &testEnv{
		router:   mux.NewRouter(),
		posts:    mock.NewPostRepository(),
		comments: mock.NewCommentRepository(),
	}

	pc := NewPostController(services.NewPostService(env.posts, hasher), zap.NewNop())
	cc := NewCommentController(services.NewCommentService(env.comments, hasher), zap.NewNop())

	env.router.HandleFunc("/api/posts", pc.Index).Methods(http.MethodGet)
	env.router.HandleFunc("/api/posts", pc.Create).Methods(http.MethodPost)
	env.router.HandleFunc("/api/posts/{id}", pc.Show).Methods(http.MethodGet)
	env.router.HandleFunc("/api/posts/{id}", pc.Edit).Methods(http.MethodPut)
	env.router.HandleFunc("/api/posts/{id}", pc.Delete).Methods(http.MethodDelete)
	env.router.HandleFunc("/api/comments/{postId}", cc.Index).Methods(http.MethodGet)
	env.router.HandleFunc("/api/comments/{postId}", cc.Create).Methods(http.MethodPost)
	env.router.HandleFunc("/api/comments/{id}", cc.Edit).Methods(http.MethodPut)
	env.router.HandleFunc("/api/comments/{id}", cc.Delete).Methods(http.MethodDelete)
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rw := httptest.NewRecorder()
	e.router.ServeHTTP(rw, req)
	return rw
}

func (e *testEnv) doForm(t *testing.T, method, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rw := httptest.NewRecorder()
	e.router.ServeHTTP(rw, req)
	return rw
}

type envelope struct {
	Success bool            `json:"success"`
	Message json.RawMessage `json:"message"`
	ID      string          `json:"id"`
}

func decodeEnvelope(t *testing.T, rw *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rw.Body.Bytes(), &env), rw.Body.String())
	return env
}

func (e envelope) text(t *testing.T) string {
	t.Helper()
	var s string
	require.NoError(t, json.Unmarshal(e.Message, &s))
	return s
}

func (e envelope) list(t *testing.T) []string {
	t.Helper()
	var s []string
	require.NoError(t, json.Unmarshal(e.Message, &s))
	return s
}

func postBody(title string) map[string]string {
	return map[string]string{
		"title":    title,
		"author":   "tester",
		"password": password,
		"content":  "This is a test post content",
	}
}

func (e *testEnv) createPost(t *testing.T, title string) string {
	t.Helper()
	rw := e.do(t, http.MethodPost, "/api/posts", postBody(title))
	require.Equal(t, http.StatusOK, rw.Code, rw.Body.String())
	return decodeEnvelope(t, rw).ID
}
