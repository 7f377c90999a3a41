// Package mock provides in-memory repositories for handler tests.
package mock

import (
	"context"
	"sync"

	"bulletin/app/models"
	"bulletin/app/repositories"
)

// PostRepository keeps posts in a map. Records are copied in and out so
// callers cannot modify stored state without calling Update.
type PostRepository struct {
	posts map[string]*models.Post
	mutex sync.RWMutex

	// Err, when set, is returned by every call.
	Err error
}

// CommentRepository keeps comments in a map.
type CommentRepository struct {
	comments map[string]*models.Comment
	mutex    sync.RWMutex

	// Err, when set, is returned by every call.
	Err error
}

func NewPostRepository() *PostRepository {
	return &PostRepository{
		posts: make(map[string]*models.Post),
	}
}

func (m *PostRepository) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.posts = make(map[string]*models.Post)
}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{
		comments: make(map[string]*models.Comment),
	}
}

// PostRepository implementation
func (m *PostRepository) Create(ctx context.Context, post *models.Post) error {
	if m.Err != nil {
		return m.Err
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()

	post.ID = repositories.NewID()
	post.BeforeCreate(repositories.Now())
	stored := *post
	m.posts[post.ID] = &stored
	return nil
}

func (m *PostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	out := *post
	return &out, nil
}

func (m *PostRepository) Update(ctx context.Context, post *models.Post) error {
	if m.Err != nil {
		return m.Err
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.posts[post.ID]; !exists {
		return repositories.ErrNotFound
	}
	post.BeforeUpdate(repositories.Now())
	stored := *post
	m.posts[post.ID] = &stored
	return nil
}

func (m *PostRepository) Delete(ctx context.Context, id string) error {
	if m.Err != nil {
		return m.Err
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.posts[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.posts, id)
	return nil
}

func (m *PostRepository) List(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	posts := make([]*models.Post, 0, len(m.posts))
	for _, post := range m.posts {
		out := *post
		posts = append(posts, &out)
	}
	repositories.SortPostsNewestFirst(posts)
	return repositories.Page(posts, limit, offset), nil
}

// CommentRepository implementation
func (m *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if m.Err != nil {
		return m.Err
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()

	comment.ID = repositories.NewID()
	comment.BeforeCreate(repositories.Now())
	stored := *comment
	m.comments[comment.ID] = &stored
	return nil
}

func (m *CommentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	comment, exists := m.comments[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	out := *comment
	return &out, nil
}

func (m *CommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	if m.Err != nil {
		return m.Err
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()

	existing, exists := m.comments[comment.ID]
	if !exists {
		return repositories.ErrNotFound
	}
	comment.PostID = existing.PostID
	comment.BeforeUpdate(repositories.Now())
	stored := *comment
	m.comments[comment.ID] = &stored
	return nil
}

func (m *CommentRepository) Delete(ctx context.Context, id string) error {
	if m.Err != nil {
		return m.Err
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.comments[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.comments, id)
	return nil
}

func (m *CommentRepository) ListByPost(ctx context.Context, postID string) ([]*models.Comment, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	comments := []*models.Comment{}
	for _, comment := range m.comments {
		if comment.PostID == postID {
			out := *comment
			comments = append(comments, &out)
		}
	}
	repositories.SortCommentsNewestFirst(comments)
	return comments, nil
}
