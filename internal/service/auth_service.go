package service

import (
	"context"
	"strings"
	"time"

	"github.com/alexedwards/argon2id"

	"github.com/mmttc/workshop-registration/internal/domain"
	"github.com/mmttc/workshop-registration/internal/platform/session"
	"github.com/mmttc/workshop-registration/internal/repo/postgres"
	"github.com/mmttc/workshop-registration/pkg/logger"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (*session.Session, error)
	Logout(ctx context.Context, token string) error
	WhoAmI(ctx context.Context, token string) (*session.Session, error)
}

type authService struct {
	admins     postgres.AdminsRepo
	sessions   session.Store
	sessionTTL time.Duration
}

func NewAuthService(admins postgres.AdminsRepo, sessions session.Store, sessionTTL time.Duration) AuthService {
	return &authService{admins: admins, sessions: sessions, sessionTTL: sessionTTL}
}

func (s *authService) Login(ctx context.Context, email, password string) (*session.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	admin, err := s.admins.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, domain.ErrInvalidCredentials
	}

	ok, err := argon2id.ComparePasswordAndHash(password, admin.PasswordHash)
	if err != nil || !ok {
		return nil, domain.ErrInvalidCredentials
	}

	return s.sessions.Create(ctx, admin.ID, admin.Email, s.sessionTTL)
}

// Logout always succeeds from the caller's point of view; a failed remote
// delete is logged and the session still expires on its TTL.
func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, token); err != nil {
		logger.WarnContext(ctx, "Session delete failed", "error", err)
	}
	return nil
}

func (s *authService) WhoAmI(ctx context.Context, token string) (*session.Session, error) {
	if token == "" {
		return nil, domain.ErrNoSession
	}
	sess, err := s.sessions.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, domain.ErrNoSession
	}
	return sess, nil
}
