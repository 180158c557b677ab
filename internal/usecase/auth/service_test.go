package auth

import (
	"context"
	"errors"
	"testing"

	"skill-matrix/internal/domain/user"

	"github.com/google/uuid"
)

type mockUsers struct {
	byID map[uuid.UUID]user.Profile
	err  error
}

func (m *mockUsers) Create(_ context.Context, p user.Profile) error {
	if m.err != nil {
		return m.err
	}
	if m.byID == nil {
		m.byID = map[uuid.UUID]user.Profile{}
	}
	m.byID[p.ID] = p
	return nil
}

func (m *mockUsers) GetByID(_ context.Context, id uuid.UUID) (user.Profile, error) {
	p, ok := m.byID[id]
	if !ok {
		return user.Profile{}, user.ErrNotFound
	}
	return p, nil
}

func (m *mockUsers) GetByEmail(_ context.Context, email string) (user.Profile, error) {
	for _, p := range m.byID {
		if p.Email == email {
			return p, nil
		}
	}
	return user.Profile{}, user.ErrNotFound
}

func (m *mockUsers) ExistsByEmail(_ context.Context, email string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	for _, p := range m.byID {
		if p.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUsers) List(context.Context) ([]user.Profile, error)                { return nil, nil }
func (m *mockUsers) Update(context.Context, user.Profile) error                  { return nil }
func (m *mockUsers) UpdateRole(context.Context, uuid.UUID, user.Role) error      { return nil }
func (m *mockUsers) UpdatePasswordHash(context.Context, uuid.UUID, string) error { return nil }
func (m *mockUsers) SetActive(context.Context, uuid.UUID, bool) error            { return nil }
func (m *mockUsers) Delete(context.Context, uuid.UUID) error                     { return nil }

func TestService_Register_NormalizesEmail(t *testing.T) {
	users := &mockUsers{}
	svc := NewService(users)

	p, err := svc.Register(context.Background(), RegisterInput{
		Email:    "  Dana@Example.COM ",
		Password: "strongenough",
		FullName: "Dana Reyes",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.Email != "dana@example.com" {
		t.Fatalf("expected lowercased email, got %q", p.Email)
	}
	if p.Role != user.RoleEmployee {
		t.Fatalf("new accounts start as employee, got %s", p.Role)
	}
	if p.PasswordHash != "" {
		t.Fatalf("hash leaked out of service")
	}
}

func TestService_Register_ShortPassword(t *testing.T) {
	svc := NewService(&mockUsers{})
	_, err := svc.Register(context.Background(), RegisterInput{Email: "a@b.c", Password: "short"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestService_Register_Duplicate(t *testing.T) {
	users := &mockUsers{}
	svc := NewService(users)

	in := RegisterInput{Email: "dana@example.com", Password: "strongenough"}
	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestService_Login(t *testing.T) {
	users := &mockUsers{}
	svc := NewService(users)
	if _, err := svc.Register(context.Background(), RegisterInput{Email: "dana@example.com", Password: "strongenough"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := svc.Login(context.Background(), LoginInput{Email: "dana@example.com", Password: "strongenough"}); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if _, err := svc.Login(context.Background(), LoginInput{Email: "dana@example.com", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), LoginInput{Email: "nobody@example.com", Password: "whatever"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestService_Login_DisabledAccount(t *testing.T) {
	users := &mockUsers{}
	svc := NewService(users)
	p, err := svc.Register(context.Background(), RegisterInput{Email: "dana@example.com", Password: "strongenough"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	stored := users.byID[p.ID]
	stored.IsActive = false
	users.byID[p.ID] = stored

	if _, err := svc.Login(context.Background(), LoginInput{Email: "dana@example.com", Password: "strongenough"}); !errors.Is(err, ErrAccountDisabled) {
		t.Fatalf("expected ErrAccountDisabled, got %v", err)
	}
}
