package usecase

import (
	"context"
	"errors"
	"strings"

	"skill-matrix/internal/domain/user"
	"skill-matrix/internal/infrastructure/cache"
	"skill-matrix/internal/ws"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailTaken       = errors.New("email already in use")
	ErrSelfModification = errors.New("cannot modify own account this way")
	ErrWeakPassword     = errors.New("password too short")
)

type CreateUserInput struct {
	Email    string
	Password string
	FullName string
	Role     user.Role
}

type UpdateUserInput struct {
	Email    string
	FullName string
}

type UserAdminUsecase interface {
	List(ctx context.Context) ([]user.Profile, error)
	Get(ctx context.Context, id uuid.UUID) (user.Profile, error)
	Create(ctx context.Context, in CreateUserInput) (user.Profile, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateUserInput) (user.Profile, error)
	UpdateRole(ctx context.Context, actorID, id uuid.UUID, role user.Role) error
	ResetPassword(ctx context.Context, id uuid.UUID, newPassword string) error
	ToggleStatus(ctx context.Context, actorID, id uuid.UUID) (bool, error)
	Delete(ctx context.Context, actorID, id uuid.UUID) error
}

type UserAdmin struct {
	users user.Repository
	cache *cache.Redis
}

func NewUserAdminUsecase(users user.Repository, rc *cache.Redis) *UserAdmin {
	return &UserAdmin{users: users, cache: rc}
}

func (u *UserAdmin) List(ctx context.Context) ([]user.Profile, error) {
	profiles, err := u.users.List(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	for i := range profiles {
		profiles[i].PasswordHash = ""
	}
	return profiles, nil
}

func (u *UserAdmin) Get(ctx context.Context, id uuid.UUID) (user.Profile, error) {
	p, err := u.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.Profile{}, ErrUserNotFound
		}
		return user.Profile{}, ErrInternal
	}
	p.PasswordHash = ""
	return p, nil
}

func (u *UserAdmin) Create(ctx context.Context, in CreateUserInput) (user.Profile, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return user.Profile{}, ErrInvalidInput
	}
	if len(in.Password) < 8 {
		return user.Profile{}, ErrWeakPassword
	}
	role := in.Role
	if role == "" {
		role = user.RoleEmployee
	}
	if !role.Valid() {
		return user.Profile{}, ErrInvalidInput
	}

	exists, err := u.users.ExistsByEmail(ctx, email)
	if err != nil {
		return user.Profile{}, ErrInternal
	}
	if exists {
		return user.Profile{}, ErrEmailTaken
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
		Role:         role,
		IsActive:     true,
	}
	if err := u.users.Create(ctx, p); err != nil {
		if isUniqueViolation(err) {
			return user.Profile{}, ErrEmailTaken
		}
		return user.Profile{}, ErrInternal
	}

	ws.NotifyChanged("profiles", p.ID.String(), ws.OpInsert)
	p.PasswordHash = ""
	return p, nil
}

func (u *UserAdmin) Update(ctx context.Context, id uuid.UUID, in UpdateUserInput) (user.Profile, error) {
	p, err := u.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.Profile{}, ErrUserNotFound
		}
		return user.Profile{}, ErrInternal
	}

	if email := strings.ToLower(strings.TrimSpace(in.Email)); email != "" {
		if !strings.Contains(email, "@") {
			return user.Profile{}, ErrInvalidInput
		}
		p.Email = email
	}
	if name := strings.TrimSpace(in.FullName); name != "" {
		p.FullName = name
	}

	if err := u.users.Update(ctx, p); err != nil {
		if isUniqueViolation(err) {
			return user.Profile{}, ErrEmailTaken
		}
		return user.Profile{}, ErrInternal
	}

	ws.NotifyChanged("profiles", id.String(), ws.OpUpdate)
	p.PasswordHash = ""
	return p, nil
}

// UpdateRole changes a user's role. Admins cannot change their own role, so
// the system never loses its last administrator to a misclick.
func (u *UserAdmin) UpdateRole(ctx context.Context, actorID, id uuid.UUID, role user.Role) error {
	if !role.Valid() {
		return ErrInvalidInput
	}
	if actorID == id {
		return ErrSelfModification
	}

	if err := u.users.UpdateRole(ctx, id, role); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrUserNotFound
		}
		return ErrInternal
	}

	ws.NotifyChanged("profiles", id.String(), ws.OpUpdate)
	return nil
}

func (u *UserAdmin) ResetPassword(ctx context.Context, id uuid.UUID, newPassword string) error {
	if len(newPassword) < 8 {
		return ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return ErrInternal
	}

	if err := u.users.UpdatePasswordHash(ctx, id, string(hash)); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrUserNotFound
		}
		return ErrInternal
	}
	return nil
}

// ToggleStatus flips the account between active and disabled and returns the
// new state. Disabling your own account is refused.
func (u *UserAdmin) ToggleStatus(ctx context.Context, actorID, id uuid.UUID) (bool, error) {
	if actorID == id {
		return false, ErrSelfModification
	}

	p, err := u.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return false, ErrUserNotFound
		}
		return false, ErrInternal
	}

	next := !p.IsActive
	if err := u.users.SetActive(ctx, id, next); err != nil {
		return false, ErrInternal
	}

	ws.NotifyChanged("profiles", id.String(), ws.OpUpdate)
	return next, nil
}

func (u *UserAdmin) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	if actorID == id {
		return ErrSelfModification
	}

	if err := u.users.Delete(ctx, id); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrUserNotFound
		}
		return ErrInternal
	}

	// The user's ratings and assignments cascade away with the profile.
	_ = u.cache.InvalidateUserProgress(ctx, id.String())
	ws.NotifyChanged("profiles", id.String(), ws.OpDelete)
	return nil
}
