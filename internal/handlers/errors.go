package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pixelforo/gameblog/internal/models"
	"github.com/pixelforo/gameblog/internal/repositories"
)

// httpError maps repository errors to HTTP errors. Validation failures keep
// their field to message map as the response body; everything unrecognized is a
// storage-level failure and surfaces as a 500.
func httpError(err error) error {
	var fieldErrs models.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string(fieldErrs))
	case errors.Is(err, repositories.ErrPostNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	case errors.Is(err, repositories.ErrCommentNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
	case errors.Is(err, repositories.ErrInvalidReaction):
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid reaction type")
	case errors.Is(err, repositories.ErrEmailTaken):
		return echo.NewHTTPError(http.StatusConflict, "Email is already registered")
	case errors.Is(err, repositories.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, "Incorrect email or password")
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
