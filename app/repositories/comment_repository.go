package repositories

import (
	"context"

	apperrors "bulletin/app/errors"
	"bulletin/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerCommentRepository implements CommentRepository using BadgerDB.
// Comments are stored under comment:<postId>:<id>, with a comment-ref:<id>
// entry pointing back at the post id.
type BadgerCommentRepository struct {
	db *badger.DB
}

// NewBadgerCommentRepository creates a new BadgerCommentRepository
func NewBadgerCommentRepository(db *badger.DB) *BadgerCommentRepository {
	return &BadgerCommentRepository{db: db}
}

// Create assigns the comment an id and timestamps and saves it
func (r *BadgerCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	comment.ID = NewID()
	comment.BeforeCreate(Now())

	data, err := marshalEntity(comment)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(commentKey(comment.PostID, comment.ID), data); err != nil {
			return err
		}
		return txn.Set(commentRefKey(comment.ID), []byte(comment.PostID))
	})
}

// lookupKey resolves the primary key of a comment through its ref entry
func lookupKey(txn *badger.Txn, id string) ([]byte, error) {
	item, err := txn.Get(commentRefKey(id))
	if apperrors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	postID, err := item.ValueCopy(nil)
	if err != nil {
		return nil, err
	}
	return commentKey(string(postID), id), nil
}

// GetByID retrieves a comment by ID
func (r *BadgerCommentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var comment models.Comment
	err := r.db.View(func(txn *badger.Txn) error {
		key, err := lookupKey(txn, id)
		if err != nil {
			return err
		}
		item, err := txn.Get(key)
		if apperrors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &comment)
		})
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByPost retrieves all comments for a post, newest first
func (r *BadgerCommentRepository) ListByPost(ctx context.Context, postID string) ([]*models.Comment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	comments := []*models.Comment{}
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := commentPrefix(postID)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var comment models.Comment
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &comment)
			})
			if err != nil {
				return apperrors.Wrapf(err, "comment %s", it.Item().Key())
			}
			comments = append(comments, &comment)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	SortCommentsNewestFirst(comments)
	return comments, nil
}

// Update overwrites an existing comment. The post it belongs to never changes.
func (r *BadgerCommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.db.Update(func(txn *badger.Txn) error {
		key, err := lookupKey(txn, comment.ID)
		if err != nil {
			return err
		}
		item, err := txn.Get(key)
		if apperrors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var existing models.Comment
		if err := item.Value(func(val []byte) error {
			return unmarshalEntity(val, &existing)
		}); err != nil {
			return err
		}
		comment.PostID = existing.PostID
		comment.BeforeUpdate(Now())

		data, err := marshalEntity(comment)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
}

// Delete permanently removes a comment and its ref entry
func (r *BadgerCommentRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.db.Update(func(txn *badger.Txn) error {
		key, err := lookupKey(txn, id)
		if err != nil {
			return err
		}
		if err := txn.Delete(key); err != nil {
			return err
		}
		return txn.Delete(commentRefKey(id))
	})
}
