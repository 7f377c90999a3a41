package repositories

import (
	"context"

	apperrors "bulletin/app/errors"
	"bulletin/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerPostRepository implements PostRepository using BadgerDB
type BadgerPostRepository struct {
	db *badger.DB
}

// NewBadgerPostRepository creates a new BadgerPostRepository
func NewBadgerPostRepository(db *badger.DB) *BadgerPostRepository {
	return &BadgerPostRepository{db: db}
}

// Create assigns the post an id and timestamps and saves it
func (r *BadgerPostRepository) Create(ctx context.Context, post *models.Post) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	post.ID = NewID()
	post.BeforeCreate(Now())

	data, err := marshalEntity(post)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(postKey(post.ID), data)
	})
}

// GetByID retrieves a post by ID
func (r *BadgerPostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var post models.Post
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(postKey(id))
		if apperrors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &post)
		})
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// List retrieves posts newest first, optionally paginated
func (r *BadgerPostRepository) List(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	posts := []*models.Post{}
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(PostKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var post models.Post
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &post)
			})
			if err != nil {
				return apperrors.Wrapf(err, "post %s", it.Item().Key())
			}
			posts = append(posts, &post)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	SortPostsNewestFirst(posts)
	return Page(posts, limit, offset), nil
}

// Update overwrites an existing post and stamps its modification time
func (r *BadgerPostRepository) Update(ctx context.Context, post *models.Post) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	post.BeforeUpdate(Now())
	data, err := marshalEntity(post)
	if err != nil {
		return err
	}

	return r.db.Update(func(txn *badger.Txn) error {
		key := postKey(post.ID)

		// Verify post exists
		_, err := txn.Get(key)
		if apperrors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
}

// Delete permanently removes a post. Its comments are left in place.
func (r *BadgerPostRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.db.Update(func(txn *badger.Txn) error {
		key := postKey(id)

		// Verify post exists
		_, err := txn.Get(key)
		if apperrors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return txn.Delete(key)
	})
}
