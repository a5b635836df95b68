// Package comments operates on a caller-owned comment list. It is the
// in-memory counterpart of the persisted comment repository: the caller holds
// the list, every function returns a new list, and validation rules are the
// same on both surfaces.
package comments

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pixelforo/gameblog/internal/models"
)

// ErrNotFound is returned when the referenced comment is not in the list.
var ErrNotFound = errors.New("comment not found")

// ValidateContent checks a comment or reply body: non-blank, at least 3
// characters after trimming, at most 500 characters raw.
func ValidateContent(content string) error {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return models.FieldErrors{"content": "comment cannot be empty"}
	}
	if utf8.RuneCountInString(trimmed) < 3 {
		return models.FieldErrors{"content": "comment must be at least 3 characters"}
	}
	if utf8.RuneCountInString(content) > 500 {
		return models.FieldErrors{"content": "comment cannot exceed 500 characters"}
	}
	return nil
}

// Add validates input and returns a new list with the comment prepended,
// newest first. The comment id is the creation time in Unix milliseconds.
func Add(list []models.Comment, input models.CommentInput, now time.Time) ([]models.Comment, error) {
	if err := ValidateContent(input.Content); err != nil {
		return nil, err
	}

	comment := models.Comment{
		ID:        now.UnixMilli(),
		Content:   input.Content,
		Author:    input.Author,
		CreatedAt: now,
		Likes:     0,
		Replies:   []models.Reply{},
	}
	out := make([]models.Comment, 0, len(list)+1)
	out = append(out, comment)
	return append(out, list...), nil
}

// Update validates newContent and returns a new list with the matching
// comment's content replaced and its updatedAt stamped.
func Update(list []models.Comment, commentID int64, newContent string, now time.Time) ([]models.Comment, error) {
	if err := ValidateContent(newContent); err != nil {
		return nil, err
	}

	idx := indexOf(list, commentID)
	if idx < 0 {
		return nil, ErrNotFound
	}

	out := models.CloneComments(list)
	out[idx].Content = newContent
	ts := now
	out[idx].UpdatedAt = &ts
	return out, nil
}

// Delete returns a new list without the matching comment. Deleting an absent
// comment is a no-op.
func Delete(list []models.Comment, commentID int64) []models.Comment {
	out := make([]models.Comment, 0, len(list))
	for _, c := range list {
		if c.ID != commentID {
			out = append(out, c)
		}
	}
	return out
}

// AddReply validates the reply body with the comment rule and returns a new
// list with the reply prepended to the matching comment's reply list.
func AddReply(list []models.Comment, commentID int64, input models.CommentInput, now time.Time) ([]models.Comment, error) {
	if err := ValidateContent(input.Content); err != nil {
		return nil, err
	}

	idx := indexOf(list, commentID)
	if idx < 0 {
		return nil, ErrNotFound
	}

	reply := models.Reply{
		ID:        now.UnixMilli(),
		Content:   input.Content,
		Author:    input.Author,
		CreatedAt: now,
		Likes:     0,
	}

	out := models.CloneComments(list)
	out[idx].Replies = append([]models.Reply{reply}, out[idx].Replies...)
	return out, nil
}

func indexOf(list []models.Comment, commentID int64) int {
	for i, c := range list {
		if c.ID == commentID {
			return i
		}
	}
	return -1
}
