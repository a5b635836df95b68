package models

import "time"

// Comment represents a comment embedded in a post's comment list. ID is the
// creation time in Unix milliseconds. UpdatedAt is nil until the comment is
// edited.
type Comment struct {
	ID        int64      `json:"id"`
	Content   string     `json:"content"`
	Author    string     `json:"author"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
	Likes     int        `json:"likes"`
	Replies   []Reply    `json:"replies"`
}

// Reply represents a reply nested under a comment.
type Reply struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
	Likes     int       `json:"likes"`
}

// CommentInput defines the request body for creating a comment or reply.
type CommentInput struct {
	Content string `json:"content" validate:"required"`
	Author  string `json:"author" validate:"required"`
}

// CloneComments deep-copies a comment list, replies included.
func CloneComments(comments []Comment) []Comment {
	if comments == nil {
		return nil
	}
	out := make([]Comment, len(comments))
	for i, c := range comments {
		out[i] = c
		if c.UpdatedAt != nil {
			ts := *c.UpdatedAt
			out[i].UpdatedAt = &ts
		}
		if c.Replies != nil {
			out[i].Replies = make([]Reply, len(c.Replies))
			copy(out[i].Replies, c.Replies)
		}
	}
	return out
}
