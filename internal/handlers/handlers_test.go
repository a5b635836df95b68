package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pixelforo/gameblog/internal/media"
	"github.com/pixelforo/gameblog/internal/middleware"
	"github.com/pixelforo/gameblog/internal/models"
	"github.com/pixelforo/gameblog/internal/repositories"
	"github.com/pixelforo/gameblog/internal/storage"
	"github.com/pixelforo/gameblog/internal/storage/memory"
	"github.com/pixelforo/gameblog/validators"
)

// newTestServer wires the full handler surface over an in-memory store. When
// authenticated is false the mutating routes skip the JWT middleware so tests
// can focus on handler behavior.
func newTestServer(t *testing.T, authenticated bool) *echo.Echo {
	t.Helper()

	e := echo.New()
	e.Validator = validators.NewValidator()

	store := storage.New(memory.New())
	registry := media.NewRegistry()
	postRepo := repositories.NewStorePostRepository(store, registry)
	commentRepo := repositories.NewStoreCommentRepository(store)
	userRepo := repositories.NewStoreUserRepository(store)

	public := e.Group("/api/v1")
	protected := e.Group("/api/v1")
	if authenticated {
		protected.Use(middleware.JWTAuthMiddleware())
	}

	NewAuthHandler(userRepo).RegisterAuthRoutes(e.Group("/api/v1/auth"))
	NewPostHandler(postRepo).RegisterPostRoutes(public, protected)
	NewCommentHandler(commentRepo).RegisterCommentRoutes(public, protected)
	NewFeedHandler(postRepo).RegisterFeedRoutes(public)

	return e
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func createPostViaAPI(t *testing.T, e *echo.Echo) models.Post {
	t.Helper()

	rec := doJSON(e, http.MethodPost, "/api/v1/posts",
		`{"title":"A","content":"B","category":"trajes"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create post: status %d, body %s", rec.Code, rec.Body.String())
	}
	var post models.Post
	if err := json.Unmarshal(rec.Body.Bytes(), &post); err != nil {
		t.Fatalf("decode post: %v", err)
	}
	return post
}

func TestCreateAndGetPost(t *testing.T) {
	t.Parallel()

	e := newTestServer(t, false)
	post := createPostViaAPI(t, e)

	rec := doJSON(e, http.MethodGet, fmt.Sprintf("/api/v1/posts/%d", post.ID), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get post: status %d", rec.Code)
	}

	var got models.Post
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID != post.ID || got.Category != "trajes" || got.Reactions.Total() != 0 {
		t.Fatalf("unexpected post: %+v", got)
	}
}

func TestCreatePostValidationResponse(t *testing.T) {
	t.Parallel()

	e := newTestServer(t, false)

	rec := doJSON(e, http.MethodPost, "/api/v1/posts", `{"title":"  ","content":"B","category":"c"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "title") {
		t.Fatalf("expected a title field message, got %s", rec.Body.String())
	}
}

func TestGetPostNotFound(t *testing.T) {
	t.Parallel()

	e := newTestServer(t, false)

	rec := doJSON(e, http.MethodGet, "/api/v1/posts/42", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", rec.Code)
	}
}

func TestAddReactionEndpoint(t *testing.T) {
	t.Parallel()

	e := newTestServer(t, false)
	post := createPostViaAPI(t, e)

	rec := doJSON(e, http.MethodPost, fmt.Sprintf("/api/v1/posts/%d/reactions", post.ID), `{"type":"love"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", rec.Code, rec.Body.String())
	}
	var got models.Post
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Reactions.Love != 1 || got.Reactions.Like != 0 {
		t.Fatalf("reactions = %+v", got.Reactions)
	}

	rec = doJSON(e, http.MethodPost, fmt.Sprintf("/api/v1/posts/%d/reactions", post.ID), `{"type":"angry"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid reaction: status %d, want 400", rec.Code)
	}
}

func TestCommentEndpoints(t *testing.T) {
	t.Parallel()

	e := newTestServer(t, false)
	post := createPostViaAPI(t, e)
	base := fmt.Sprintf("/api/v1/posts/%d/comments", post.ID)

	rec := doJSON(e, http.MethodPost, base, `{"content":"great post","author":"ana"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create comment: status %d, body %s", rec.Code, rec.Body.String())
	}
	var comment models.Comment
	if err := json.Unmarshal(rec.Body.Bytes(), &comment); err != nil {
		t.Fatalf("decode comment: %v", err)
	}

	rec = doJSON(e, http.MethodPost, base, `{"content":"ab","author":"ana"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("short comment: status %d, want 400", rec.Code)
	}

	rec = doJSON(e, http.MethodPost, fmt.Sprintf("%s/%d/replies", base, comment.ID),
		`{"content":"a reply","author":"bruno"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create reply: status %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(e, http.MethodGet, base+"/count", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"count":1`) {
		t.Fatalf("count: status %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestFeedEndpoint(t *testing.T) {
	t.Parallel()

	e := newTestServer(t, false)
	createPostViaAPI(t, e)

	rec := doJSON(e, http.MethodGet, "/api/v1/feed?category=trajes&sort=oldest", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var posts []models.Post
	if err := json.Unmarshal(rec.Body.Bytes(), &posts); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("got %d posts, want 1", len(posts))
	}

	rec = doJSON(e, http.MethodGet, "/api/v1/feed?category=nope", "")
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("empty filter: status %d, body %q", rec.Code, rec.Body.String())
	}

	// No post carries an image, so there is no featured pick.
	rec = doJSON(e, http.MethodGet, "/api/v1/feed/featured", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("featured: status %d, want 204", rec.Code)
	}
}

func TestAuthEndpoints(t *testing.T) {
	t.Parallel()

	e := newTestServer(t, false)

	rec := doJSON(e, http.MethodPost, "/api/v1/auth/login", `{"email":"admin@blog.com","password":"admin123"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: status %d, body %s", rec.Code, rec.Body.String())
	}
	var loginResp struct {
		Token string         `json:"token"`
		User  models.Profile `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &loginResp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if loginResp.Token == "" || loginResp.User.Role != "admin" {
		t.Fatalf("unexpected login response: %+v", loginResp)
	}

	rec = doJSON(e, http.MethodPost, "/api/v1/auth/login", `{"email":"admin@blog.com","password":"nope"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad login: status %d, want 401", rec.Code)
	}

	rec = doJSON(e, http.MethodPost, "/api/v1/auth/register", `{"name":"Ana","email":"ana@example.com","password":"123"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("short password: status %d, want 400", rec.Code)
	}

	rec = doJSON(e, http.MethodGet, "/api/v1/auth/me", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("me after login: status %d", rec.Code)
	}

	rec = doJSON(e, http.MethodPost, "/api/v1/auth/logout", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("logout: status %d, want 204", rec.Code)
	}
	rec = doJSON(e, http.MethodGet, "/api/v1/auth/me", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("me after logout: status %d, want 401", rec.Code)
	}
}

func TestMutationsRequireToken(t *testing.T) {
	t.Parallel()

	e := newTestServer(t, true)

	// Without a token the mutation is rejected, while reads stay open.
	rec := doJSON(e, http.MethodPost, "/api/v1/posts", `{"title":"A","content":"B","category":"c"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated create: status %d, want 401", rec.Code)
	}
	rec = doJSON(e, http.MethodGet, "/api/v1/posts", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("public read: status %d, want 200", rec.Code)
	}

	// Log in, then retry with the bearer token.
	rec = doJSON(e, http.MethodPost, "/api/v1/auth/login", `{"email":"admin@blog.com","password":"admin123"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: status %d", rec.Code)
	}
	var loginResp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &loginResp); err != nil {
		t.Fatalf("decode: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/posts",
		strings.NewReader(`{"title":"A","content":"B","category":"c"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("Authorization", "Bearer "+loginResp.Token)
	authRec := httptest.NewRecorder()
	e.ServeHTTP(authRec, req)
	if authRec.Code != http.StatusCreated {
		t.Fatalf("authenticated create: status %d, body %s", authRec.Code, authRec.Body.String())
	}
}
