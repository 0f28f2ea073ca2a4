package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"

	"github.com/mmttc/workshop-registration/internal/domain"
	"github.com/mmttc/workshop-registration/internal/platform/session"
	"github.com/mmttc/workshop-registration/internal/service"
)

type mockAdminsRepo struct {
	admins  map[string]*domain.AdminUser // keyed by email
	findErr error
}

func (m *mockAdminsRepo) FindByEmail(_ context.Context, email string) (*domain.AdminUser, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.admins[email], nil
}

type mockSessionStore struct {
	sessions  map[string]*session.Session
	deleteErr error
}

func newMockSessionStore() *mockSessionStore {
	return &mockSessionStore{sessions: make(map[string]*session.Session)}
}

func (m *mockSessionStore) Create(_ context.Context, adminID int64, email string, ttl time.Duration) (*session.Session, error) {
	sess := &session.Session{
		Token:     uuid.NewString(),
		AdminID:   adminID,
		Email:     email,
		ExpiresAt: time.Now().Add(ttl),
	}
	m.sessions[sess.Token] = sess
	return sess, nil
}

func (m *mockSessionStore) Get(_ context.Context, token string) (*session.Session, error) {
	return m.sessions[token], nil
}

func (m *mockSessionStore) Delete(_ context.Context, token string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.sessions, token)
	return nil
}

func newAuthFixture(t *testing.T) (service.AuthService, *mockSessionStore) {
	t.Helper()
	hash, err := argon2id.CreateHash("s3cret", argon2id.DefaultParams)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	admins := &mockAdminsRepo{admins: map[string]*domain.AdminUser{
		"admin@mmttc.example": {
			ID:           1,
			Email:        "admin@mmttc.example",
			Name:         "Workshop Admin",
			PasswordHash: hash,
		},
	}}
	store := newMockSessionStore()
	return service.NewAuthService(admins, store, time.Hour), store
}

func TestLoginSuccess(t *testing.T) {
	svc, store := newAuthFixture(t)

	sess, err := svc.Login(context.Background(), "admin@mmttc.example", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if sess.Token == "" || sess.AdminID != 1 {
		t.Fatalf("bad session: %+v", sess)
	}
	if store.sessions[sess.Token] == nil {
		t.Fatal("session not stored")
	}
}

func TestLoginNormalizesEmail(t *testing.T) {
	svc, _ := newAuthFixture(t)

	if _, err := svc.Login(context.Background(), "  Admin@MMTTC.example ", "s3cret"); err != nil {
		t.Fatalf("login with mixed-case email: %v", err)
	}
}

func TestLoginBadPassword(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), "admin@mmttc.example", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), "nobody@mmttc.example", "s3cret")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogoutRemovesSession(t *testing.T) {
	svc, store := newAuthFixture(t)

	sess, err := svc.Login(context.Background(), "admin@mmttc.example", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := svc.Logout(context.Background(), sess.Token); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if store.sessions[sess.Token] != nil {
		t.Fatal("session still present after logout")
	}
}

// Logout reports success even when the remote delete fails; the token still
// expires on its TTL.
func TestLogoutSwallowsStoreError(t *testing.T) {
	svc, store := newAuthFixture(t)
	store.deleteErr = errors.New("redis down")

	if err := svc.Logout(context.Background(), "whatever"); err != nil {
		t.Fatalf("logout must not surface store errors, got %v", err)
	}
}

func TestWhoAmI(t *testing.T) {
	svc, _ := newAuthFixture(t)

	sess, err := svc.Login(context.Background(), "admin@mmttc.example", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	got, err := svc.WhoAmI(context.Background(), sess.Token)
	if err != nil {
		t.Fatalf("whoami: %v", err)
	}
	if got.Email != "admin@mmttc.example" {
		t.Fatalf("email = %q", got.Email)
	}

	if _, err := svc.WhoAmI(context.Background(), "bogus"); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("expected ErrNoSession for unknown token, got %v", err)
	}
	if _, err := svc.WhoAmI(context.Background(), ""); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("expected ErrNoSession for empty token, got %v", err)
	}
}
