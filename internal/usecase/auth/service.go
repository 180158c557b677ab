package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"skill-matrix/internal/domain/user"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrAccountDisabled        = errors.New("account disabled")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInternal               = errors.New("internal error")
)

type RegisterInput struct {
	Email    string
	Password string
	FullName string
}

type LoginInput struct {
	Email    string
	Password string
}

type Service struct {
	users user.Repository
}

func NewService(users user.Repository) *Service {
	return &Service{users: users}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (user.Profile, error) {
	email := normalizeEmail(in.Email)
	if email == "" {
		return user.Profile{}, ErrInvalidInput
	}
	if !isValidPassword(in.Password) {
		return user.Profile{}, ErrInvalidInput
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return user.Profile{}, ErrInternal
	}
	if exists {
		return user.Profile{}, ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.Profile{}, ErrInternal
	}

	p := user.Profile{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(in.FullName),
		Role:         user.RoleEmployee,
		IsActive:     true,
	}

	if err := s.users.Create(ctx, p); err != nil {
		exists, exErr := s.users.ExistsByEmail(ctx, email)
		if exErr == nil && exists {
			return user.Profile{}, ErrEmailAlreadyRegistered
		}
		return user.Profile{}, ErrInternal
	}

	created, err := s.users.GetByID(ctx, p.ID)
	if err != nil {
		return user.Profile{}, ErrInternal
	}
	return sanitize(created), nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (user.Profile, error) {
	email := normalizeEmail(in.Email)
	if email == "" {
		return user.Profile{}, ErrInvalidCredentials
	}
	if in.Password == "" {
		return user.Profile{}, ErrInvalidCredentials
	}

	p, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.Profile{}, ErrInvalidCredentials
		}
		return user.Profile{}, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(in.Password)); err != nil {
		return user.Profile{}, ErrInvalidCredentials
	}

	// Disabled accounts fail after the password check so the response does
	// not reveal whether the credentials were right.
	if !p.IsActive {
		return user.Profile{}, ErrAccountDisabled
	}

	return sanitize(p), nil
}

func normalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(email, "@") {
		return ""
	}
	return email
}

func isValidPassword(pw string) bool {
	return len(pw) >= 8
}

func sanitize(p user.Profile) user.Profile {
	p.PasswordHash = ""
	return p
}
