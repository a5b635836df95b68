package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pixelforo/gameblog/internal/models"
	"github.com/pixelforo/gameblog/internal/repositories"
)

// CommentHandler handles HTTP requests related to comments and replies
type CommentHandler struct {
	commentRepository repositories.CommentRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository) *CommentHandler {
	return &CommentHandler{commentRepository: commentRepo}
}

// RegisterCommentRoutes registers comment-related routes. Reads are public;
// mutations go on the authenticated group.
func (h *CommentHandler) RegisterCommentRoutes(public, protected *echo.Group) {
	public.GET("/posts/:post_id/comments", h.GetComments)
	public.GET("/posts/:post_id/comments/count", h.GetCommentCount)
	protected.POST("/posts/:post_id/comments", h.CreateComment)
	protected.PUT("/posts/:post_id/comments/:id", h.UpdateComment)
	protected.DELETE("/posts/:post_id/comments/:id", h.DeleteComment)
	protected.POST("/posts/:post_id/comments/:id/replies", h.AddReply)
}

// GetComments retrieves all comments for a specific post
func (h *CommentHandler) GetComments(c echo.Context) error {
	postID, err := parsePostID(c, "post_id")
	if err != nil {
		return err
	}

	list, err := h.commentRepository.GetComments(postID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, list)
}

// GetCommentCount retrieves the number of comments on a post
func (h *CommentHandler) GetCommentCount(c echo.Context) error {
	postID, err := parsePostID(c, "post_id")
	if err != nil {
		return err
	}

	count, err := h.commentRepository.GetCommentCount(postID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]int{"count": count})
}

// CreateComment creates a new comment on a post
func (h *CommentHandler) CreateComment(c echo.Context) error {
	postID, err := parsePostID(c, "post_id")
	if err != nil {
		return err
	}

	var req models.CommentInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.commentRepository.AddComment(postID, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, comment)
}

// UpdateCommentRequest defines the request body for editing a comment
type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

// UpdateComment replaces a comment's content
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	postID, err := parsePostID(c, "post_id")
	if err != nil {
		return err
	}
	commentID, err := parsePostID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	comment, err := h.commentRepository.UpdateComment(postID, commentID, req.Content)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, comment)
}

// DeleteComment removes a comment from a post
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	postID, err := parsePostID(c, "post_id")
	if err != nil {
		return err
	}
	commentID, err := parsePostID(c, "id")
	if err != nil {
		return err
	}

	if err := h.commentRepository.DeleteComment(postID, commentID); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// AddReply adds a reply under an existing comment
func (h *CommentHandler) AddReply(c echo.Context) error {
	postID, err := parsePostID(c, "post_id")
	if err != nil {
		return err
	}
	commentID, err := parsePostID(c, "id")
	if err != nil {
		return err
	}

	var req models.CommentInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	reply, err := h.commentRepository.AddReply(postID, commentID, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, reply)
}
