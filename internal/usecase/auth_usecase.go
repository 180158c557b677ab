package usecase

import (
	"context"
	"errors"

	"skill-matrix/internal/domain/user"
	"skill-matrix/internal/pkg/jwt"
	ucauth "skill-matrix/internal/usecase/auth"
)

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrInternal            = errors.New("internal error")
)

type AuthUsecase interface {
	Register(ctx context.Context, in ucauth.RegisterInput) (user.Profile, string, string, error)
	Login(ctx context.Context, in ucauth.LoginInput) (user.Profile, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

type Auth struct {
	authSvc *ucauth.Service
	users   user.Repository
	jwt     jwt.Service
}

func NewAuthUsecase(users user.Repository, jwtSvc jwt.Service) *Auth {
	return &Auth{authSvc: ucauth.NewService(users), users: users, jwt: jwtSvc}
}

func (u *Auth) Register(ctx context.Context, in ucauth.RegisterInput) (user.Profile, string, string, error) {
	p, err := u.authSvc.Register(ctx, in)
	if err != nil {
		return user.Profile{}, "", "", err
	}

	access, err := u.jwt.GenerateAccessToken(p.ID, p.Email, string(p.Role))
	if err != nil {
		return user.Profile{}, "", "", ErrInternal
	}
	refresh, err := u.jwt.GenerateRefreshToken(p.ID)
	if err != nil {
		return user.Profile{}, "", "", ErrInternal
	}

	return p, access, refresh, nil
}

func (u *Auth) Login(ctx context.Context, in ucauth.LoginInput) (user.Profile, string, string, error) {
	p, err := u.authSvc.Login(ctx, in)
	if err != nil {
		return user.Profile{}, "", "", err
	}

	access, err := u.jwt.GenerateAccessToken(p.ID, p.Email, string(p.Role))
	if err != nil {
		return user.Profile{}, "", "", ErrInternal
	}
	refresh, err := u.jwt.GenerateRefreshToken(p.ID)
	if err != nil {
		return user.Profile{}, "", "", ErrInternal
	}

	return p, access, refresh, nil
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	if refreshToken == "" {
		return "", "", ErrUnauthorized
	}

	claims, err := u.jwt.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", ErrRefreshTokenExpired
		}
		return "", "", ErrInvalidRefreshToken
	}

	if !u.jwt.IsRefreshToken(claims) {
		return "", "", ErrInvalidRefreshToken
	}

	p, err := u.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", "", ErrInternal
	}
	if !p.IsActive {
		return "", "", ErrUnauthorized
	}

	access, err := u.jwt.GenerateAccessToken(p.ID, p.Email, string(p.Role))
	if err != nil {
		return "", "", ErrInternal
	}
	newRefresh, err := u.jwt.GenerateRefreshToken(p.ID)
	if err != nil {
		return "", "", ErrInternal
	}

	return access, newRefresh, nil
}
