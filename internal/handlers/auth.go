package handlers

import (
	"net/http"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/pixelforo/gameblog/internal/models"
	"github.com/pixelforo/gameblog/internal/repositories"
)

// AuthHandler handles authentication-related HTTP requests against the mock
// local user store
type AuthHandler struct {
	userRepository repositories.UserRepository
	jwtSecret      string
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository) *AuthHandler {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "supersecretjwtkey"
	}
	return &AuthHandler{
		userRepository: userRepo,
		jwtSecret:      jwtSecret,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.POST("/logout", h.Logout)
	g.GET("/me", h.Me)
}

// Register handles local user registration, logging the new user in on
// success
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.userRepository.Register(req)
	if err != nil {
		return httpError(err)
	}

	token, err := h.generateJWT(*profile)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token after signup")
	}

	return c.JSON(http.StatusCreated, echo.Map{"token": token, "user": profile})
}

// Login handles local user authentication with email and password
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.userRepository.Login(req)
	if err != nil {
		return httpError(err)
	}

	token, err := h.generateJWT(*profile)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}

	return c.JSON(http.StatusOK, echo.Map{"token": token, "user": profile})
}

// Logout clears the persisted session profile
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.userRepository.Logout(); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Me returns the currently persisted session profile
func (h *AuthHandler) Me(c echo.Context) error {
	profile, err := h.userRepository.CurrentUser()
	if err != nil {
		return httpError(err)
	}
	if profile == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "No active session")
	}
	return c.JSON(http.StatusOK, profile)
}

// generateJWT signs a token carrying the user's id, email and role
func (h *AuthHandler) generateJWT(profile models.Profile) (string, error) {
	claims := &models.JwtCustomClaims{
		UserID: profile.ID,
		Email:  profile.Email,
		Role:   profile.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(72 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}
