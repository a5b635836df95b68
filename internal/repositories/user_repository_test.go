package repositories

import (
	"errors"
	"testing"

	"github.com/pixelforo/gameblog/internal/models"
)

func newTestUserRepo() *StoreUserRepository {
	repo := NewStoreUserRepository(newTestStore())
	repo.now = testClock(testEpoch)
	return repo
}

func TestLoginWithSeededAdmin(t *testing.T) {
	t.Parallel()

	repo := newTestUserRepo()

	profile, err := repo.Login(models.LoginRequest{Email: "Admin@Blog.com", Password: "admin123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if profile.Role != "admin" || profile.Name != "Administrator" {
		t.Fatalf("unexpected profile: %+v", profile)
	}

	current, err := repo.CurrentUser()
	if err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	if current == nil || current.ID != profile.ID {
		t.Fatalf("session profile not persisted: %+v", current)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	t.Parallel()

	repo := newTestUserRepo()

	if _, err := repo.Login(models.LoginRequest{Email: "admin@blog.com", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := repo.Login(models.LoginRequest{Email: "nobody@blog.com", Password: "admin123"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRegister(t *testing.T) {
	t.Parallel()

	repo := newTestUserRepo()

	profile, err := repo.Register(models.RegisterRequest{
		Name:     "  Ana  ",
		Email:    "Ana@Example.com",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if profile.Name != "Ana" || profile.Email != "ana@example.com" || profile.Role != "user" {
		t.Fatalf("unexpected profile: %+v", profile)
	}

	// Registration logs the new user in.
	current, err := repo.CurrentUser()
	if err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	if current == nil || current.Email != "ana@example.com" {
		t.Fatalf("expected auto-login, got %+v", current)
	}

	// The new credentials work for a later login.
	if _, err := repo.Login(models.LoginRequest{Email: "ana@example.com", Password: "secret1"}); err != nil {
		t.Fatalf("Login after register: %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		req   models.RegisterRequest
		field string
	}{
		{"missing name", models.RegisterRequest{Email: "a@b.co", Password: "secret1"}, "name"},
		{"bad email", models.RegisterRequest{Name: "Ana", Email: "not-an-email", Password: "secret1"}, "email"},
		{"short password", models.RegisterRequest{Name: "Ana", Email: "a@b.co", Password: "12345"}, "password"},
	}

	repo := newTestUserRepo()

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := repo.Register(tc.req)
			var fieldErrs models.FieldErrors
			if !errors.As(err, &fieldErrs) || fieldErrs.Field(tc.field) == "" {
				t.Fatalf("expected %s validation error, got %v", tc.field, err)
			}
		})
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	t.Parallel()

	repo := newTestUserRepo()

	// Case-insensitive against the seeded admin.
	if _, err := repo.Register(models.RegisterRequest{Name: "X", Email: "ADMIN@BLOG.COM", Password: "secret1"}); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	if _, err := repo.Register(models.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "secret1"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := repo.Register(models.RegisterRequest{Name: "Ana2", Email: "Ana@Example.com", Password: "secret2"}); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLogout(t *testing.T) {
	t.Parallel()

	repo := newTestUserRepo()

	if _, err := repo.Login(models.LoginRequest{Email: "admin@blog.com", Password: "admin123"}); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := repo.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	current, err := repo.CurrentUser()
	if err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	if current != nil {
		t.Fatalf("expected no session, got %+v", current)
	}

	// Logging out twice is fine.
	if err := repo.Logout(); err != nil {
		t.Fatalf("second Logout: %v", err)
	}
}

func TestEnsureDefaultsIsIdempotent(t *testing.T) {
	t.Parallel()

	repo := newTestUserRepo()

	if err := repo.EnsureDefaults(); err != nil {
		t.Fatalf("EnsureDefaults: %v", err)
	}
	if _, err := repo.Register(models.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "secret1"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := repo.EnsureDefaults(); err != nil {
		t.Fatalf("EnsureDefaults again: %v", err)
	}

	users, err := repo.loadUsers()
	if err != nil {
		t.Fatalf("loadUsers: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected seeded admin plus one registration, got %d users", len(users))
	}
}
