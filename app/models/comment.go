package models

import "time"

// BeforeCreate stamps both timestamps on a new comment.
func (c *Comment) BeforeCreate(now time.Time) {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = c.CreatedAt
}

// BeforeUpdate stamps the modification time.
func (c *Comment) BeforeUpdate(now time.Time) {
	c.UpdatedAt = now
}

// PasswordHash returns the stored credential hash.
func (c *Comment) PasswordHash() string {
	return c.Password
}

// Public returns a copy of the comment without its password hash.
func (c *Comment) Public() *Comment {
	out := *c
	out.Password = ""
	return &out
}

// PublicComments strips the password hash from every comment.
func PublicComments(comments []*Comment) []*Comment {
	out := make([]*Comment, 0, len(comments))
	for _, c := range comments {
		out = append(out, c.Public())
	}
	return out
}
