package auth

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/rohan/workout-buddy/internal/apperrors"
	"github.com/rohan/workout-buddy/internal/models"
	"github.com/rohan/workout-buddy/internal/store"
)

// UserStore defines the interface for user persistence.
type UserStore interface {
	CreateUser(ctx context.Context, email, hashedPassword string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Service implements signup and login against a UserStore, minting a
// session token on success.
type Service struct {
	users  UserStore
	tokens *TokenService
}

func NewService(users UserStore, tokens *TokenService) *Service {
	return &Service{users: users, tokens: tokens}
}

// Signup validates the credentials, stores a hashed password and returns
// the new user's email with a fresh session token. Case-insensitive email
// uniqueness is enforced by the store's index; the duplicate-key error is
// translated here so concurrent signups for the same email can't both win.
func (s *Service) Signup(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	if email == "" || password == "" {
		return nil, apperrors.Validation("All fields must be filled")
	}
	if !validEmail(email) {
		return nil, apperrors.Validation("Email not valid")
	}

	// The taken-email check runs before the strength check: a signup for
	// a registered email reports the conflict regardless of password.
	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return nil, apperrors.Conflict("Email already in use")
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	if !strongPassword(password) {
		return nil, apperrors.Validation("Password not strong enough")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := s.users.CreateUser(ctx, email, string(hashed))
	if errors.Is(err, store.ErrDuplicateEmail) {
		return nil, apperrors.Conflict("Email already in use")
	}
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Mint(user.ID)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Email: user.Email, Token: token}, nil
}

// Login verifies the credentials and returns a fresh session token.
func (s *Service) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	if email == "" || password == "" {
		return nil, apperrors.Validation("All fields must be filled")
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.Validation("Incorrect email")
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperrors.Validation("Incorrect password")
	}

	token, err := s.tokens.Mint(user.ID)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Email: user.Email, Token: token}, nil
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	// require a dotted domain; ParseAddress alone accepts "a@b"
	at := strings.LastIndex(email, "@")
	return strings.Contains(email[at+1:], ".")
}

// strongPassword enforces the signup policy: at least 8 characters with
// one lowercase letter, one uppercase letter, one digit and one symbol.
func strongPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var lower, upper, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		}
	}
	return lower && upper && digit && special
}
