package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pixelforo/gameblog/internal/feed"
	"github.com/pixelforo/gameblog/internal/repositories"
)

// FeedHandler handles the derived read-only views over the post list
type FeedHandler struct {
	postRepository repositories.PostRepository
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(postRepo repositories.PostRepository) *FeedHandler {
	return &FeedHandler{postRepository: postRepo}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
	g.GET("/feed/most-commented", h.GetMostCommented)
	g.GET("/feed/most-reacted", h.GetMostReacted)
	g.GET("/feed/featured", h.GetFeaturedPost)
}

// GetFeed returns the post list after applying the search, category and sort
// query parameters in that order
func (h *FeedHandler) GetFeed(c echo.Context) error {
	posts, err := h.postRepository.GetPosts(c.Request().Context())
	if err != nil {
		return httpError(err)
	}

	posts = feed.Search(posts, c.QueryParam("search"))
	posts = feed.FilterByCategory(posts, c.QueryParam("category"))
	posts = feed.Sort(posts, feed.SortMode(c.QueryParam("sort")))

	return c.JSON(http.StatusOK, posts)
}

// GetMostCommented returns the top posts by comment count
func (h *FeedHandler) GetMostCommented(c echo.Context) error {
	posts, err := h.postRepository.GetPosts(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, feed.MostCommented(posts))
}

// GetMostReacted returns the top posts by total reactions
func (h *FeedHandler) GetMostReacted(c echo.Context) error {
	posts, err := h.postRepository.GetPosts(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, feed.MostReacted(posts))
}

// GetFeaturedPost returns a random post among those carrying an image, or
// 204 when none qualify
func (h *FeedHandler) GetFeaturedPost(c echo.Context) error {
	posts, err := h.postRepository.GetPosts(c.Request().Context())
	if err != nil {
		return httpError(err)
	}

	featured := feed.FeaturedPost(posts)
	if featured == nil {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, featured)
}
