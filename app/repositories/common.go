package repositories

import (
	"encoding/json"
	"sort"
	"time"

	apperrors "bulletin/app/errors"
	"bulletin/app/models"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no record has the requested id.
var ErrNotFound = apperrors.New("record not found")

const (
	// Key prefixes for different entity types
	PostKeyPrefix       = "post:"
	CommentKeyPrefix    = "comment:"
	CommentRefKeyPrefix = "comment-ref:"
)

// Now is the clock used to stamp records. Tests may replace it.
var Now = time.Now

// NewID returns a fresh opaque record id.
func NewID() string {
	return uuid.NewString()
}

func postKey(id string) []byte {
	return []byte(PostKeyPrefix + id)
}

// commentKey groups comments under their post so a post's comments share a prefix.
func commentKey(postID, id string) []byte {
	return []byte(CommentKeyPrefix + postID + ":" + id)
}

func commentPrefix(postID string) []byte {
	return []byte(CommentKeyPrefix + postID + ":")
}

// commentRefKey maps a comment id to its post id.
func commentRefKey(id string) []byte {
	return []byte(CommentRefKeyPrefix + id)
}

// marshalEntity marshals an entity to JSON
func marshalEntity(entity any) ([]byte, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal entity")
	}
	return data, nil
}

// unmarshalEntity unmarshals JSON data into an entity
func unmarshalEntity(data []byte, entity any) error {
	if err := json.Unmarshal(data, entity); err != nil {
		return apperrors.Wrap(err, "failed to unmarshal entity")
	}
	return nil
}

// SortPostsNewestFirst orders posts by descending creation time, then id.
func SortPostsNewestFirst(posts []*models.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID > posts[j].ID
	})
}

// SortCommentsNewestFirst orders comments by descending creation time, then id.
func SortCommentsNewestFirst(comments []*models.Comment) {
	sort.SliceStable(comments, func(i, j int) bool {
		if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].CreatedAt.After(comments[j].CreatedAt)
		}
		return comments[i].ID > comments[j].ID
	})
}

// Page slices items for pagination. A limit <= 0 keeps everything after offset.
func Page[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}
