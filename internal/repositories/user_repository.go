package repositories

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/pixelforo/gameblog/internal/models"
	"github.com/pixelforo/gameblog/internal/storage"
)

// Storage keys for the mock local user store.
const (
	UsersKey       = "users"
	CurrentUserKey = "user"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// UserRepository defines the interface for the mock local user store.
type UserRepository interface {
	Register(req models.RegisterRequest) (*models.Profile, error)
	Login(req models.LoginRequest) (*models.Profile, error)
	Logout() error
	CurrentUser() (*models.Profile, error)
	EnsureDefaults() error
}

// StoreUserRepository implements UserRepository over the key-value store.
// Passwords are compared and persisted as plaintext on purpose; this is the
// mock store the system ships with, not something to put real users in.
type StoreUserRepository struct {
	store *storage.Store
	now   func() time.Time
}

// NewStoreUserRepository creates a new StoreUserRepository.
func NewStoreUserRepository(store *storage.Store) *StoreUserRepository {
	return &StoreUserRepository{store: store, now: time.Now}
}

// defaultUsers is the seeded user set, present whenever the users key holds
// nothing.
func defaultUsers() []models.User {
	return []models.User{
		{
			ID:       1,
			Name:     "Administrator",
			Email:    "admin@blog.com",
			Password: "admin123", // plaintext, mock store only
			Role:     "admin",
		},
	}
}

func (r *StoreUserRepository) loadUsers() ([]models.User, error) {
	var users []models.User
	ok, err := r.store.Get(UsersKey, &users)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	if !ok {
		return defaultUsers(), nil
	}
	return users, nil
}

func (r *StoreUserRepository) saveUsers(users []models.User) error {
	if err := r.store.Set(UsersKey, users); err != nil {
		return fmt.Errorf("failed to save users: %w", err)
	}
	return nil
}

func (r *StoreUserRepository) saveProfile(profile models.Profile) error {
	if err := r.store.Set(CurrentUserKey, profile); err != nil {
		return fmt.Errorf("failed to save session profile: %w", err)
	}
	return nil
}

// EnsureDefaults persists the seeded user set when the users key is empty.
func (r *StoreUserRepository) EnsureDefaults() error {
	var users []models.User
	ok, err := r.store.Get(UsersKey, &users)
	if err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}
	if ok {
		return nil
	}
	return r.saveUsers(defaultUsers())
}

// Register validates the request, rejects duplicate emails and appends the
// new user with role "user". The new user is logged in right away: their
// public profile is persisted under the user key.
func (r *StoreUserRepository) Register(req models.RegisterRequest) (*models.Profile, error) {
	errs := models.FieldErrors{}
	if strings.TrimSpace(req.Name) == "" {
		errs["name"] = "name is required"
	}
	if strings.TrimSpace(req.Email) == "" {
		errs["email"] = "email is required"
	} else if !emailPattern.MatchString(req.Email) {
		errs["email"] = "email format is not valid"
	}
	if req.Password == "" {
		errs["password"] = "password is required"
	} else if len(req.Password) < 6 {
		errs["password"] = "password must be at least 6 characters"
	}
	if len(errs) > 0 {
		return nil, errs
	}

	users, err := r.loadUsers()
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(req.Email)
	for _, u := range users {
		if strings.ToLower(u.Email) == email {
			return nil, ErrEmailTaken
		}
	}

	user := models.User{
		ID:       r.now().UnixMilli(),
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Password: req.Password,
		Role:     "user",
	}
	users = append(users, user)

	if err := r.saveUsers(users); err != nil {
		return nil, err
	}

	profile := user.Profile()
	if err := r.saveProfile(profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Login matches the credentials against the stored users, ignoring email
// case, and persists the matching public profile as the current session.
func (r *StoreUserRepository) Login(req models.LoginRequest) (*models.Profile, error) {
	if req.Email == "" || req.Password == "" {
		return nil, models.FieldErrors{"credentials": "email and password are required"}
	}

	users, err := r.loadUsers()
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(req.Email)
	for _, u := range users {
		if strings.ToLower(u.Email) == email && u.Password == req.Password {
			profile := u.Profile()
			if err := r.saveProfile(profile); err != nil {
				return nil, err
			}
			return &profile, nil
		}
	}
	return nil, ErrInvalidCredentials
}

// Logout drops the persisted session profile.
func (r *StoreUserRepository) Logout() error {
	if err := r.store.Remove(CurrentUserKey); err != nil {
		return fmt.Errorf("failed to clear session profile: %w", err)
	}
	return nil
}

// CurrentUser returns the persisted session profile, or nil when nobody is
// logged in.
func (r *StoreUserRepository) CurrentUser() (*models.Profile, error) {
	var profile models.Profile
	ok, err := r.store.Get(CurrentUserKey, &profile)
	if err != nil {
		return nil, fmt.Errorf("failed to load session profile: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return &profile, nil
}
