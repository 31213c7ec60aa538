package services

import (
	"errors"
	"fmt"

	"inkwell/app/models"
	"inkwell/app/repositories"
)

var (
	// ErrEmailTaken means the email already belongs to an account; the
	// caller should steer the visitor to the login page.
	ErrEmailTaken = errors.New("email already registered")

	// ErrUnknownEmail means no account exists for the email.
	ErrUnknownEmail = errors.New("unknown email")

	// ErrBadCredentials means the password did not match.
	ErrBadCredentials = errors.New("password mismatch")
)

// SessionStore issues and resolves opaque session tokens.
type SessionStore interface {
	Create(userID int) (string, error)
	Get(token string) (int, error)
	Delete(token string) error
}

// AuthService handles registration, login, and session lifecycle.
type AuthService struct {
	userRepo repositories.UserRepository
	sessions SessionStore
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repositories.UserRepository, sessions SessionStore) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		sessions: sessions,
	}
}

// Register creates a new account and logs it in, returning the user and a
// session token. If the email is already registered no second user is
// created and ErrEmailTaken is returned. A concurrent registration racing
// on the same email loses at the unique index and surfaces the same way.
func (s *AuthService) Register(name, email, password string) (*models.User, string, error) {
	user := &models.User{
		Name:  name,
		Email: email,
	}
	if err := user.SetPassword(password); err != nil {
		return nil, "", err
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("failed to create user: %v", err)
	}

	token, err := s.sessions.Create(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create session: %v", err)
	}
	return user, token, nil
}

// Login authenticates an email/password pair and returns the user and a
// fresh session token.
func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, "", ErrUnknownEmail
		}
		return nil, "", err
	}

	if !user.CheckPassword(password) {
		return nil, "", ErrBadCredentials
	}

	token, err := s.sessions.Create(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create session: %v", err)
	}
	return user, token, nil
}

// Logout revokes a session token. Always succeeds; revoking an absent or
// expired token is a no-op.
func (s *AuthService) Logout(token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(token)
}

// UserForToken resolves a session token to its user. Returns
// repositories.ErrNotFound for expired, revoked, or unknown tokens.
func (s *AuthService) UserForToken(token string) (*models.User, error) {
	userID, err := s.sessions.Get(token)
	if err != nil {
		return nil, repositories.ErrNotFound
	}
	return s.userRepo.GetByID(userID)
}
