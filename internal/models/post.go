package models

import (
	"time"
)

// ReactionKind identifies one of the four fixed reaction counters on a post.
type ReactionKind string

const (
	ReactionLike     ReactionKind = "like"
	ReactionLove     ReactionKind = "love"
	ReactionWow      ReactionKind = "wow"
	ReactionThinking ReactionKind = "thinking"
)

// ReactionKinds returns every valid reaction kind.
func ReactionKinds() []ReactionKind {
	return []ReactionKind{ReactionLike, ReactionLove, ReactionWow, ReactionThinking}
}

// Reactions holds the per-kind counters. All four keys are always present in
// the serialized form, zero-valued on a fresh post.
type Reactions struct {
	Like     int `json:"like"`
	Love     int `json:"love"`
	Wow      int `json:"wow"`
	Thinking int `json:"thinking"`
}

// Total sums every reaction counter.
func (r Reactions) Total() int {
	return r.Like + r.Love + r.Wow + r.Thinking
}

// Increment bumps the counter for kind. It reports false when kind is not one
// of the four fixed reaction kinds.
func (r *Reactions) Increment(kind ReactionKind) bool {
	switch kind {
	case ReactionLike:
		r.Like++
	case ReactionLove:
		r.Love++
	case ReactionWow:
		r.Wow++
	case ReactionThinking:
		r.Thinking++
	default:
		return false
	}
	return true
}

// Media is the stored reference to an uploaded file. URL is a session-scoped
// blob handle and must be released when the post drops or replaces it.
type Media struct {
	URL  string `json:"url"`
	Type string `json:"type"`
	Name string `json:"name"`
}

// MediaUpload describes an incoming file attachment before a blob handle has
// been issued for it.
type MediaUpload struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}

// Post represents a blog post stored in the key-value store under the
// blog_posts key. ID is the creation time in Unix milliseconds and never
// changes after creation.
type Post struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Reactions Reactions `json:"reactions"`
	Comments  []Comment `json:"comments"`
	Media     *Media    `json:"media,omitempty"`
}

// Clone returns a deep copy of the post. Repositories hand out clones so
// callers never hold a live reference into the stored list.
func (p Post) Clone() Post {
	out := p
	if p.Media != nil {
		m := *p.Media
		out.Media = &m
	}
	out.Comments = CloneComments(p.Comments)
	return out
}

// PostInput defines the caller-supplied fields for creating or updating a
// post. ID, timestamps, reactions and comments are never accepted from the
// caller through this type.
type PostInput struct {
	Title    string       `json:"title"`
	Content  string       `json:"content"`
	Category string       `json:"category"`
	Image    string       `json:"image,omitempty"`
	Media    *MediaUpload `json:"media,omitempty"`
}
