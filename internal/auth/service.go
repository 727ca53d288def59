package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/WunderTransportTechnologies/ultimate-todo/internal/model"
	"github.com/WunderTransportTechnologies/ultimate-todo/internal/repository"
)

var (
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
)

// Service implements email/password accounts with stateless bearer
// tokens.
type Service struct {
	users      *repository.UserRepository
	categories *repository.CategoryRepository
	secret     []byte
	tokenTTL   time.Duration
}

func NewService(users *repository.UserRepository, categories *repository.CategoryRepository, secret []byte, tokenTTL time.Duration) *Service {
	return &Service{users: users, categories: categories, secret: secret, tokenTTL: tokenTTL}
}

// SignUp registers a new account and issues a token. The display name
// defaults to the email's local part, and the starter categories are
// seeded best effort: a seeding failure is logged, never surfaced.
func (s *Service) SignUp(ctx context.Context, email, password string) (model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !validEmail(email) {
		return model.User{}, "", ErrInvalidEmail
	}
	if len(password) < 6 {
		return model.User{}, "", ErrPasswordTooShort
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return model.User{}, "", err
	}
	if existing != nil {
		return model.User{}, "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, "", fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, model.User{
		Email:        email,
		DisplayName:  strings.SplitN(email, "@", 2)[0],
		PasswordHash: string(hash),
	})
	if err != nil {
		return model.User{}, "", err
	}

	if err := s.categories.SeedDefaults(ctx, user.ID); err != nil {
		log.Printf("seed default categories for %s: %v", user.ID, err)
	}

	token, err := GenerateToken(s.secret, user.ID, s.tokenTTL)
	if err != nil {
		return model.User{}, "", err
	}
	return user, token, nil
}

// SignIn verifies credentials, stamps the login time, and issues a
// token. Unknown address and wrong password are indistinguishable to
// the caller.
func (s *Service) SignIn(ctx context.Context, email, password string) (model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return model.User{}, "", err
	}
	if user == nil {
		return model.User{}, "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return model.User{}, "", ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		return model.User{}, "", err
	}
	user.LastLoginAt = &now

	token, err := GenerateToken(s.secret, user.ID, s.tokenTTL)
	if err != nil {
		return model.User{}, "", err
	}
	return *user, token, nil
}

func validEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at != strings.LastIndex(email, "@") || at == len(email)-1 {
		return false
	}
	if strings.ContainsAny(email, " \t") {
		return false
	}
	domain := email[at+1:]
	return strings.Contains(domain, ".") && !strings.HasPrefix(domain, ".") && !strings.HasSuffix(domain, ".")
}
