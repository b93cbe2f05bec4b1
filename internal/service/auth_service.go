package service

import (
	"context"
	"time"

	"github.com/spec-kit/team-directory/internal/auth"
	"github.com/spec-kit/team-directory/internal/config"
	"github.com/spec-kit/team-directory/internal/domain"
	"github.com/spec-kit/team-directory/internal/repository"
	apperrors "github.com/spec-kit/team-directory/pkg/util"
)

// AuthService coordinates login and logout for directory members.
type AuthService struct {
	members  repository.MemberRepository
	tokenMgr *auth.TokenManager
	denylist *auth.TokenDenylist
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, members repository.MemberRepository, denylist *auth.TokenDenylist) *AuthService {
	return &AuthService{
		members:  members,
		tokenMgr: auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		denylist: denylist,
	}
}

// TokenManager exposes the manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Login authenticates a member by email and password and issues a token
// carrying the member's role. Failures never say which part was wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Member, string, time.Time, error) {
	member, err := s.members.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	if member == nil || !member.IsActive {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	if err := auth.ComparePassword(member.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	token, exp, err := s.tokenMgr.GenerateToken(member.ID, member.Role)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	return member, token, exp, nil
}

// Logout revokes the presented token until its natural expiry.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil {
		return nil
	}
	return s.denylist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}
