package repositories

import (
	"strings"
	"time"

	"github.com/pixelforo/gameblog/internal/comments"
	"github.com/pixelforo/gameblog/internal/models"
	"github.com/pixelforo/gameblog/internal/storage"
)

// CommentRepository defines the interface for comment data operations. It is
// the persisted counterpart of the comments package: same validation rules,
// but mutations go through the stored post list.
type CommentRepository interface {
	GetComments(postID int64) ([]models.Comment, error)
	GetCommentCount(postID int64) (int, error)
	AddComment(postID int64, input models.CommentInput) (*models.Comment, error)
	UpdateComment(postID, commentID int64, newContent string) (*models.Comment, error)
	DeleteComment(postID, commentID int64) error
	AddReply(postID, commentID int64, input models.CommentInput) (*models.Reply, error)
}

// StoreCommentRepository implements CommentRepository over the key-value
// store, rewriting the owning post's comment list on every mutation.
type StoreCommentRepository struct {
	store *storage.Store
	now   func() time.Time
}

// NewStoreCommentRepository creates a new StoreCommentRepository.
func NewStoreCommentRepository(store *storage.Store) *StoreCommentRepository {
	return &StoreCommentRepository{store: store, now: time.Now}
}

// validateCommentInput applies the shared content rule plus the author
// requirement for the persisted surface.
func validateCommentInput(input models.CommentInput) error {
	if err := comments.ValidateContent(input.Content); err != nil {
		return err
	}
	if strings.TrimSpace(input.Author) == "" {
		return models.FieldErrors{"author": "author is required"}
	}
	return nil
}

// GetComments returns a post's comment list, newest first.
func (r *StoreCommentRepository) GetComments(postID int64) ([]models.Comment, error) {
	posts, err := loadPosts(r.store)
	if err != nil {
		return nil, err
	}
	idx := findPostIndex(posts, postID)
	if idx < 0 {
		return nil, ErrPostNotFound
	}
	list := models.CloneComments(posts[idx].Comments)
	if list == nil {
		list = []models.Comment{}
	}
	return list, nil
}

// GetCommentCount returns how many comments a post has.
func (r *StoreCommentRepository) GetCommentCount(postID int64) (int, error) {
	list, err := r.GetComments(postID)
	if err != nil {
		return 0, err
	}
	return len(list), nil
}

// AddComment validates input and prepends a new comment to the post's list.
func (r *StoreCommentRepository) AddComment(postID int64, input models.CommentInput) (*models.Comment, error) {
	if err := validateCommentInput(input); err != nil {
		return nil, err
	}

	posts, err := loadPosts(r.store)
	if err != nil {
		return nil, err
	}
	idx := findPostIndex(posts, postID)
	if idx < 0 {
		return nil, ErrPostNotFound
	}

	updated, err := comments.Add(posts[idx].Comments, input, r.now())
	if err != nil {
		return nil, err
	}
	posts[idx].Comments = updated

	if err := savePosts(r.store, posts); err != nil {
		return nil, err
	}

	created := updated[0]
	return &created, nil
}

// UpdateComment replaces a comment's content and stamps its updatedAt.
func (r *StoreCommentRepository) UpdateComment(postID, commentID int64, newContent string) (*models.Comment, error) {
	posts, err := loadPosts(r.store)
	if err != nil {
		return nil, err
	}
	idx := findPostIndex(posts, postID)
	if idx < 0 {
		return nil, ErrPostNotFound
	}

	updated, err := comments.Update(posts[idx].Comments, commentID, newContent, r.now())
	if err != nil {
		return nil, err
	}
	posts[idx].Comments = updated

	if err := savePosts(r.store, posts); err != nil {
		return nil, err
	}

	for _, c := range updated {
		if c.ID == commentID {
			out := c
			return &out, nil
		}
	}
	return nil, ErrCommentNotFound
}

// DeleteComment removes a comment from the post's list. Removing an absent
// comment is a no-op; only a missing post is an error.
func (r *StoreCommentRepository) DeleteComment(postID, commentID int64) error {
	posts, err := loadPosts(r.store)
	if err != nil {
		return err
	}
	idx := findPostIndex(posts, postID)
	if idx < 0 {
		return ErrPostNotFound
	}

	posts[idx].Comments = comments.Delete(posts[idx].Comments, commentID)
	return savePosts(r.store, posts)
}

// AddReply validates the reply body with the comment rule and prepends it to
// the matching comment's reply list.
func (r *StoreCommentRepository) AddReply(postID, commentID int64, input models.CommentInput) (*models.Reply, error) {
	if err := validateCommentInput(input); err != nil {
		return nil, err
	}

	posts, err := loadPosts(r.store)
	if err != nil {
		return nil, err
	}
	idx := findPostIndex(posts, postID)
	if idx < 0 {
		return nil, ErrPostNotFound
	}

	updated, err := comments.AddReply(posts[idx].Comments, commentID, input, r.now())
	if err != nil {
		return nil, err
	}
	posts[idx].Comments = updated

	if err := savePosts(r.store, posts); err != nil {
		return nil, err
	}

	for _, c := range updated {
		if c.ID == commentID {
			reply := c.Replies[0]
			return &reply, nil
		}
	}
	return nil, ErrCommentNotFound
}
