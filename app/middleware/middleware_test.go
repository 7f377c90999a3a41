package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func observed() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.InfoLevel)
	return zap.New(core), logs
}

func TestLogger(t *testing.T) {
	logger, logs := observed()
	handler := Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest("GET", "/test", nil)
	rw := httptest.NewRecorder()
	handler.ServeHTTP(rw, req)

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/test", fields["path"])
	assert.EqualValues(t, http.StatusTeapot, fields["status"])
	assert.Contains(t, fields, "took")
}

func TestRecoverer(t *testing.T) {
	logger, logs := observed()
	handler := Recoverer(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("test panic")
	}))

	req := httptest.NewRequest("GET", "/api/posts", nil)
	rw := httptest.NewRecorder()
	handler.ServeHTTP(rw, req)

	assert.Equal(t, http.StatusInternalServerError, rw.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rw.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "internal server error", body["message"])
	assert.Equal(t, 1, logs.FilterMessage("panic").Len())
}

func TestContentTypeJSON(t *testing.T) {
	handler := ContentTypeJSON(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		path        string
		contentType string
	}{
		{"/api/posts", "application/json"},
		{"/posts", ""},
		{"/", ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rw := httptest.NewRecorder()
			handler.ServeHTTP(rw, httptest.NewRequest("GET", tt.path, nil))
			assert.Equal(t, tt.contentType, rw.Header().Get("Content-Type"))
		})
	}
}

func TestRequestID(t *testing.T) {
	logger, logs := observed()
	var seen string
	handler := RequestID(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r.Context())
		LoggerFrom(r.Context(), zap.NewNop()).Info("inside")
	}))

	t.Run("generated", func(t *testing.T) {
		rw := httptest.NewRecorder()
		handler.ServeHTTP(rw, httptest.NewRequest("GET", "/api/posts", nil))

		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, rw.Header().Get(HeaderXRequestID))
		entries := logs.TakeAll()
		require.Len(t, entries, 1)
		assert.Equal(t, seen, entries[0].ContextMap()["request_id"])
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/posts", nil)
		req.Header.Set(HeaderXRequestID, "abc-123")
		rw := httptest.NewRecorder()
		handler.ServeHTTP(rw, req)

		assert.Equal(t, "abc-123", seen)
		assert.Equal(t, "abc-123", rw.Header().Get(HeaderXRequestID))
	})
}

func TestLoggerFromFallback(t *testing.T) {
	fallback := zap.NewNop()
	req := httptest.NewRequest("GET", "/", nil)
	assert.Same(t, fallback, LoggerFrom(req.Context(), fallback))
	assert.Empty(t, RequestIDFrom(req.Context()))
}

func TestBodyLimit(t *testing.T) {
	handler := BodyLimit(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.ReadAll(r.Body); err != nil {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	rw := httptest.NewRecorder()
	handler.ServeHTTP(rw, httptest.NewRequest("POST", "/api/posts", strings.NewReader("short")))
	assert.Equal(t, http.StatusOK, rw.Code)

	rw = httptest.NewRecorder()
	handler.ServeHTTP(rw, httptest.NewRequest("POST", "/api/posts", strings.NewReader("much longer than eight")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rw.Code)
}
