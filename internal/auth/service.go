package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ledgerly/ledgerly/internal/platform/httpx"
)

// Service wraps registration, login and profile rules.
type Service struct {
	repo   Repository
	tokens *TokenIssuer
}

// NewService constructs a new Service.
func NewService(repo Repository, tokens *TokenIssuer) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// Register creates a user, hashes the password and issues a session token.
func (s *Service) Register(ctx context.Context, email, password, name string) (string, PublicUser, error) {
	var missing []string
	if email == "" {
		missing = append(missing, "email")
	}
	if password == "" {
		missing = append(missing, "password")
	}
	if name == "" {
		missing = append(missing, "name")
	}
	if len(missing) > 0 {
		return "", PublicUser{}, httpx.MissingFields(missing...)
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return "", PublicUser{}, httpx.Conflict("User already exists")
	} else if !errors.Is(err, ErrUserNotFound) {
		return "", PublicUser{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", PublicUser{}, err
	}

	user := &User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hashed),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		// The unique index closes the race between concurrent registrations
		// that both pass the existence check.
		if errors.Is(err, ErrEmailTaken) {
			return "", PublicUser{}, httpx.Conflict("User already exists")
		}
		return "", PublicUser{}, err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", PublicUser{}, err
	}
	return token, user.Public(), nil
}

// Login validates credentials and issues a fresh token. Unknown email and
// wrong password produce identical errors so accounts cannot be enumerated.
func (s *Service) Login(ctx context.Context, email, password string) (string, PublicUser, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", PublicUser{}, httpx.Unauthorized("Invalid credentials")
		}
		return "", PublicUser{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", PublicUser{}, httpx.Unauthorized("Invalid credentials")
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", PublicUser{}, err
	}
	return token, user.Public(), nil
}

// Profile resolves a verified identity back to its stored user.
func (s *Service) Profile(ctx context.Context, userID uuid.UUID) (PublicUser, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return PublicUser{}, httpx.NotFound("User not found")
		}
		return PublicUser{}, err
	}
	return user.Public(), nil
}
