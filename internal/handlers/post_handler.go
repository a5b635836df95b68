package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pixelforo/gameblog/internal/models"
	"github.com/pixelforo/gameblog/internal/repositories"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository repositories.PostRepository
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository) *PostHandler {
	return &PostHandler{postRepository: postRepo}
}

// RegisterPostRoutes registers post-related routes. Reads are public;
// mutations go on the authenticated group.
func (h *PostHandler) RegisterPostRoutes(public, protected *echo.Group) {
	public.GET("/posts", h.GetPosts)
	public.GET("/posts/featured", h.GetFeaturedPosts)
	public.GET("/posts/:id", h.GetPost)
	protected.POST("/posts", h.CreatePost)
	protected.PUT("/posts/:id", h.UpdatePost)
	protected.DELETE("/posts/:id", h.DeletePost)
	protected.POST("/posts/:id/reactions", h.AddReaction)
}

func parsePostID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID format")
	}
	return id, nil
}

// GetPosts retrieves all posts, newest first
func (h *PostHandler) GetPosts(c echo.Context) error {
	posts, err := h.postRepository.GetPosts(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, posts)
}

// GetPost retrieves a post by ID
func (h *PostHandler) GetPost(c echo.Context) error {
	id, err := parsePostID(c, "id")
	if err != nil {
		return err
	}

	post, err := h.postRepository.GetPostByID(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, post)
}

// CreatePost creates a new post
func (h *PostHandler) CreatePost(c echo.Context) error {
	var req models.PostInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.postRepository.CreatePost(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, post)
}

// UpdatePost updates an existing post
func (h *PostHandler) UpdatePost(c echo.Context) error {
	id, err := parsePostID(c, "id")
	if err != nil {
		return err
	}

	var req models.PostInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	post, err := h.postRepository.UpdatePost(c.Request().Context(), id, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, post)
}

// DeletePost deletes a post by ID
func (h *PostHandler) DeletePost(c echo.Context) error {
	id, err := parsePostID(c, "id")
	if err != nil {
		return err
	}

	if err := h.postRepository.DeletePost(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// AddReactionRequest defines the request body for reacting to a post
type AddReactionRequest struct {
	Type string `json:"type" validate:"required"`
}

// AddReaction increments one of the post's reaction counters
func (h *PostHandler) AddReaction(c echo.Context) error {
	id, err := parsePostID(c, "id")
	if err != nil {
		return err
	}

	var req AddReactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.postRepository.AddReaction(c.Request().Context(), id, models.ReactionKind(req.Type))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, post)
}

// GetFeaturedPosts retrieves the top posts by total reactions
func (h *PostHandler) GetFeaturedPosts(c echo.Context) error {
	posts, err := h.postRepository.GetFeaturedPosts(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, posts)
}
