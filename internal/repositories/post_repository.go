package repositories

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pixelforo/gameblog/internal/media"
	"github.com/pixelforo/gameblog/internal/models"
	"github.com/pixelforo/gameblog/internal/storage"
)

// PostsKey is the storage key holding the serialized post list.
const PostsKey = "blog_posts"

// maxMediaSize caps attachments at 10 MiB.
const maxMediaSize = 10 << 20

// allowedMediaTypes is the MIME allow-list for post attachments.
var allowedMediaTypes = map[string]bool{
	"image/jpeg":         true,
	"image/png":          true,
	"image/gif":          true,
	"video/mp4":          true,
	"video/webm":         true,
	"audio/mp3":          true,
	"audio/wav":          true,
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// featuredCount is how many posts GetFeaturedPosts returns at most.
const featuredCount = 5

// PostRepository defines the interface for post data operations
type PostRepository interface {
	GetPosts(ctx context.Context) ([]models.Post, error)
	GetPostByID(ctx context.Context, id int64) (*models.Post, error)
	CreatePost(ctx context.Context, input models.PostInput) (*models.Post, error)
	UpdatePost(ctx context.Context, id int64, input models.PostInput) (*models.Post, error)
	DeletePost(ctx context.Context, id int64) error
	AddReaction(ctx context.Context, id int64, kind models.ReactionKind) (*models.Post, error)
	GetFeaturedPosts(ctx context.Context) ([]models.Post, error)
}

// StorePostRepository implements PostRepository over the key-value store.
// The repository owns the serialized list exclusively; every read hands out
// clones, and every mutation rewrites the full list.
type StorePostRepository struct {
	store *storage.Store
	media *media.Registry
	now   func() time.Time
}

// NewStorePostRepository creates a new StorePostRepository.
func NewStorePostRepository(store *storage.Store, registry *media.Registry) *StorePostRepository {
	return &StorePostRepository{
		store: store,
		media: registry,
		now:   time.Now,
	}
}

// validatePost checks the caller-supplied fields, collecting one message per
// failing field.
func validatePost(input models.PostInput) models.FieldErrors {
	errs := models.FieldErrors{}

	if strings.TrimSpace(input.Title) == "" {
		errs["title"] = "title is required"
	}
	if strings.TrimSpace(input.Content) == "" {
		errs["content"] = "content is required"
	}
	if strings.TrimSpace(input.Category) == "" {
		errs["category"] = "category is required"
	}

	if input.Media != nil {
		if !allowedMediaTypes[input.Media.Type] {
			errs["media"] = "unsupported file type"
		}
		if input.Media.Size > maxMediaSize {
			errs["media"] = "file is too large (max 10MB)"
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// loadPosts reads the stored list, newest first. A missing key yields an
// empty list.
func loadPosts(store *storage.Store) ([]models.Post, error) {
	var posts []models.Post
	if _, err := store.Get(PostsKey, &posts); err != nil {
		return nil, fmt.Errorf("failed to load posts: %w", err)
	}
	if posts == nil {
		posts = []models.Post{}
	}
	sortNewestFirst(posts)
	return posts, nil
}

// savePosts rewrites the full stored list.
func savePosts(store *storage.Store, posts []models.Post) error {
	if err := store.Set(PostsKey, posts); err != nil {
		return fmt.Errorf("failed to save posts: %w", err)
	}
	return nil
}

// sortNewestFirst orders posts descending by creation time. The sort is
// stable so identical timestamps keep their relative storage order.
func sortNewestFirst(posts []models.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
}

func findPostIndex(posts []models.Post, id int64) int {
	for i, p := range posts {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func clonePosts(posts []models.Post) []models.Post {
	out := make([]models.Post, len(posts))
	for i, p := range posts {
		out[i] = p.Clone()
	}
	return out
}

// GetPosts returns all posts sorted newest first.
func (r *StorePostRepository) GetPosts(ctx context.Context) ([]models.Post, error) {
	posts, err := loadPosts(r.store)
	if err != nil {
		return nil, err
	}
	return clonePosts(posts), nil
}

// GetPostByID retrieves a single post by id.
func (r *StorePostRepository) GetPostByID(ctx context.Context, id int64) (*models.Post, error) {
	posts, err := loadPosts(r.store)
	if err != nil {
		return nil, err
	}
	idx := findPostIndex(posts, id)
	if idx < 0 {
		return nil, ErrPostNotFound
	}
	post := posts[idx].Clone()
	return &post, nil
}

// CreatePost validates input, assigns id and timestamps, and prepends the
// new post to the stored list. The id is the creation time in Unix
// milliseconds, nudged past the current maximum so ids stay unique even when
// two creates land in the same millisecond.
func (r *StorePostRepository) CreatePost(ctx context.Context, input models.PostInput) (*models.Post, error) {
	if errs := validatePost(input); errs != nil {
		return nil, errs
	}

	posts, err := loadPosts(r.store)
	if err != nil {
		return nil, err
	}

	now := r.now()
	id := now.UnixMilli()
	for _, p := range posts {
		if p.ID >= id {
			id = p.ID + 1
		}
	}

	post := models.Post{
		ID:        id,
		Title:     input.Title,
		Content:   input.Content,
		Category:  input.Category,
		Image:     input.Image,
		CreatedAt: now,
		UpdatedAt: now,
		Comments:  []models.Comment{},
	}
	if input.Media != nil {
		post.Media = &models.Media{
			URL:  r.media.CreateURL(input.Media.Name),
			Type: input.Media.Type,
			Name: input.Media.Name,
		}
	}

	posts = append([]models.Post{post}, posts...)
	if err := savePosts(r.store, posts); err != nil {
		return nil, err
	}

	created := post.Clone()
	return &created, nil
}

// UpdatePost merges input into an existing post. The record's id, reactions
// and comments are preserved no matter what the caller sends; a new
// attachment releases the previous blob handle before taking its place.
func (r *StorePostRepository) UpdatePost(ctx context.Context, id int64, input models.PostInput) (*models.Post, error) {
	if errs := validatePost(input); errs != nil {
		return nil, errs
	}

	posts, err := loadPosts(r.store)
	if err != nil {
		return nil, err
	}
	idx := findPostIndex(posts, id)
	if idx < 0 {
		return nil, ErrPostNotFound
	}

	existing := posts[idx]
	updated := existing
	updated.Title = input.Title
	updated.Content = input.Content
	updated.Category = input.Category
	updated.Image = input.Image
	updated.UpdatedAt = r.now()

	if input.Media != nil {
		if existing.Media != nil {
			r.media.Revoke(existing.Media.URL)
		}
		updated.Media = &models.Media{
			URL:  r.media.CreateURL(input.Media.Name),
			Type: input.Media.Type,
			Name: input.Media.Name,
		}
	}

	posts[idx] = updated
	if err := savePosts(r.store, posts); err != nil {
		return nil, err
	}

	out := updated.Clone()
	return &out, nil
}

// DeletePost removes a post, releasing its blob handle if it had one.
func (r *StorePostRepository) DeletePost(ctx context.Context, id int64) error {
	posts, err := loadPosts(r.store)
	if err != nil {
		return err
	}
	idx := findPostIndex(posts, id)
	if idx < 0 {
		return ErrPostNotFound
	}

	if posts[idx].Media != nil {
		r.media.Revoke(posts[idx].Media.URL)
	}

	posts = append(posts[:idx], posts[idx+1:]...)
	return savePosts(r.store, posts)
}

// AddReaction increments one of the four fixed reaction counters and bumps
// the post's updatedAt.
func (r *StorePostRepository) AddReaction(ctx context.Context, id int64, kind models.ReactionKind) (*models.Post, error) {
	var probe models.Reactions
	if !probe.Increment(kind) {
		return nil, ErrInvalidReaction
	}

	posts, err := loadPosts(r.store)
	if err != nil {
		return nil, err
	}
	idx := findPostIndex(posts, id)
	if idx < 0 {
		return nil, ErrPostNotFound
	}

	posts[idx].Reactions.Increment(kind)
	posts[idx].UpdatedAt = r.now()

	if err := savePosts(r.store, posts); err != nil {
		return nil, err
	}

	out := posts[idx].Clone()
	return &out, nil
}

// GetFeaturedPosts returns up to five posts ordered by total reactions,
// ties keeping their newest-first order.
func (r *StorePostRepository) GetFeaturedPosts(ctx context.Context) ([]models.Post, error) {
	posts, err := loadPosts(r.store)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Reactions.Total() > posts[j].Reactions.Total()
	})
	if len(posts) > featuredCount {
		posts = posts[:featuredCount]
	}
	return clonePosts(posts), nil
}
