package models

import "time"

// BeforeCreate stamps both timestamps on a new post.
func (p *Post) BeforeCreate(now time.Time) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = p.CreatedAt
}

// BeforeUpdate stamps the modification time.
func (p *Post) BeforeUpdate(now time.Time) {
	p.UpdatedAt = now
}

// PasswordHash returns the stored credential hash.
func (p *Post) PasswordHash() string {
	return p.Password
}

// Public returns a copy of the post without its password hash.
func (p *Post) Public() *Post {
	out := *p
	out.Password = ""
	return &out
}

// PublicPosts strips the password hash from every post.
func PublicPosts(posts []*Post) []*Post {
	out := make([]*Post, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.Public())
	}
	return out
}
