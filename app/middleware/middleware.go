package middleware

import (
	"context"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	apperrors "bulletin/app/errors"
	"bulletin/app/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HeaderXRequestID carries the request id in and out.
const HeaderXRequestID = "X-Request-ID"

type contextKey string

const (
	keyRequestID contextKey = "request_id"
	keyLogger    contextKey = "logger"
)

// RequestIDFrom returns the request id stored by RequestID, or "".
func RequestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(keyRequestID).(string); ok {
		return id
	}
	return ""
}

// LoggerFrom returns the request-scoped logger, or fallback if there is none.
func LoggerFrom(ctx context.Context, fallback *zap.Logger) *zap.Logger {
	if logger, ok := ctx.Value(keyLogger).(*zap.Logger); ok {
		return logger
	}
	return fallback
}

// RequestID reuses the caller's X-Request-ID or generates one, echoes it on
// the response and stores a logger tagged with it in the request context.
func RequestID(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(HeaderXRequestID)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set(HeaderXRequestID, requestID)

			ctx := context.WithValue(r.Context(), keyRequestID, requestID)
			ctx = context.WithValue(ctx, keyLogger, logger.With(zap.String("request_id", requestID)))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

// Logger logs method, path, status and duration of each request
func Logger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			LoggerFrom(r.Context(), logger).Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rec.status),
				zap.Duration("took", time.Since(start)),
			)
		})
	}
}

// Recoverer turns a panic into a 500 envelope and logs the stack
func Recoverer(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					LoggerFrom(r.Context(), logger).Error("panic",
						zap.Any("error", err),
						zap.ByteString("stack", debug.Stack()),
					)
					response.Fail(w, http.StatusInternalServerError, apperrors.InternalMessage)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// ContentTypeJSON sets the Content-Type header to application/json for API routes
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api") {
			w.Header().Set("Content-Type", "application/json")
		}
		next.ServeHTTP(w, r)
	})
}

// BodyLimit caps request bodies at n bytes. n <= 0 disables the cap.
func BodyLimit(n int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if n > 0 && r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, n)
			}
			next.ServeHTTP(w, r)
		})
	}
}
