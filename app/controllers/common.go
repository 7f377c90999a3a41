package controllers

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	apperrors "bulletin/app/errors"
	"bulletin/app/middleware"
	"bulletin/app/response"

	"go.uber.org/zap"
)

const maxFormMemory = 1 << 20

// bind decodes a JSON or form-encoded request body into dst. An empty body
// leaves dst zeroed so validation reports the missing fields.
func bind(r *http.Request, dst any) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "application/x-www-form-urlencoded":
		// ParseForm skips DELETE bodies, so the body is parsed directly.
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			return bodyError(err)
		}
		values, err := url.ParseQuery(string(raw))
		return bindForm(values, err, dst)
	case "multipart/form-data":
		err := r.ParseMultipartForm(maxFormMemory)
		return bindForm(r.PostForm, err, dst)
	default:
		err := json.NewDecoder(r.Body).Decode(dst)
		if err == nil || apperrors.Is(err, io.EOF) {
			return nil
		}
		return bodyError(err)
	}
}

// bindForm maps the parsed form onto dst through its json tags.
func bindForm(values url.Values, parseErr error, dst any) error {
	if parseErr != nil {
		return bodyError(parseErr)
	}

	fields := make(map[string]string, len(values))
	for key := range values {
		fields[key] = values.Get(key)
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return apperrors.Internal(err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return bodyError(err)
	}
	return nil
}

func bodyError(err error) error {
	var tooLarge *http.MaxBytesError
	if apperrors.As(err, &tooLarge) {
		return apperrors.Validation([]string{"request body is too large"})
	}
	return apperrors.Validation([]string{"request body is malformed"})
}

// queryInt reads a positive integer query parameter, returning 0 when it is
// absent or unusable.
func queryInt(r *http.Request, name string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// sendError writes the failure envelope and logs internal causes, which never
// reach the caller.
func sendError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	if apperrors.KindOf(err) == apperrors.KindInternal {
		middleware.LoggerFrom(r.Context(), logger).Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
	response.Error(w, err)
}
