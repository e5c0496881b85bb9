package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/skycast/weather-api/internal/core/domain"
	"github.com/skycast/weather-api/internal/core/token"
)

// ---------------------------------------------------------------------------
// In-memory stub user repository
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users  map[string]*domain.User // keyed by id
	nextID int
	// if set, every call returns this error
	failWith error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailInUse
		}
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = fmt.Sprintf("u%d", r.nextID)
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id, role string) (*domain.User, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Role = role
	return cloneUser(u), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if r.failWith != nil {
		return r.failWith
	}
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func newTestAuthService(repo *stubUserRepo) (*AuthService, *token.Issuer) {
	issuer := token.NewIssuer("secret", time.Hour)
	return NewAuthService(repo, issuer, zerolog.Nop()), issuer
}

// ---------------------------------------------------------------------------

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo)

	pub, err := svc.Register(context.Background(), "alice@example.com", "pass123", domain.RoleUser)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if pub == nil {
		t.Fatalf("expected user, got nil")
	}
	if pub.Role != domain.RoleUser {
		t.Fatalf("unexpected role: %s", pub.Role)
	}

	stored := repo.users[pub.ID]
	if stored == nil {
		t.Fatalf("user not persisted")
	}
	if stored.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_InvalidRole(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo)

	if _, err := svc.Register(context.Background(), "bob@example.com", "pass", "SUPERUSER"); err != domain.ErrInvalidRole {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
	if len(repo.users) != 0 {
		t.Fatalf("no user should be persisted on a rejected role")
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo)

	_, _ = svc.Register(context.Background(), "bob@example.com", "pass", domain.RoleUser)
	if _, err := svc.Register(context.Background(), "bob@example.com", "pass2", domain.RoleUser); err != domain.ErrEmailInUse {
		t.Fatalf("expected ErrEmailInUse, got %v", err)
	}
}

// A store failure unrelated to uniqueness must not masquerade as EmailInUse.
func TestAuthService_Register_StoreFailurePropagates(t *testing.T) {
	repo := newStubUserRepo()
	repo.failWith = fmt.Errorf("store unavailable")
	svc, _ := newTestAuthService(repo)

	_, err := svc.Register(context.Background(), "bob@example.com", "pass", domain.RoleUser)
	if err == nil || err == domain.ErrEmailInUse {
		t.Fatalf("expected raw store error, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, issuer := newTestAuthService(repo)

	if _, err := svc.Register(context.Background(), "carol@example.com", "s3cret", domain.RoleAdmin); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	tok, user, err := svc.Login(context.Background(), "carol@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if tok == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.Email != "carol@example.com" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims, err := issuer.Verify(tok)
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if claims.Role != domain.RoleAdmin {
		t.Fatalf("expected role %s, got %s", domain.RoleAdmin, claims.Role)
	}
	if claims.UserID != user.ID {
		t.Fatalf("token subject %s does not match user id %s", claims.UserID, user.ID)
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo)

	_, _ = svc.Register(context.Background(), "dave@example.com", "goodpass", domain.RoleUser)
	if _, _, err := svc.Login(context.Background(), "dave@example.com", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo)

	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "pass"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_RegisterThenLoginRoundTrip(t *testing.T) {
	repo := newStubUserRepo()
	svc, issuer := newTestAuthService(repo)

	if _, err := svc.Register(context.Background(), "round@example.com", "trip123", domain.RoleUser); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	tok, _, err := svc.Login(context.Background(), "round@example.com", "trip123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	claims, err := issuer.Verify(tok)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if claims.Role != domain.RoleUser {
		t.Fatalf("expected registered role to round-trip, got %s", claims.Role)
	}
}
