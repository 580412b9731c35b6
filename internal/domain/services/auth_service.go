package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"dochub-server/internal/domain/entities"
	"dochub-server/internal/domain/repositories"
	"dochub-server/internal/utils"
	"dochub-server/pkg/errors"
	"dochub-server/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	userRepo  repositories.UserRepository
	tokenRepo repositories.APITokenRepository
	codec     *SessionCodec
}

func NewAuthService(
	userRepo repositories.UserRepository,
	tokenRepo repositories.APITokenRepository,
	codec *SessionCodec,
) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		codec:     codec,
	}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *entities.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, errors.NewBadRequestError("missing credentials")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, errors.NewUnauthorizedError("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, errors.NewUnauthorizedError("invalid credentials")
	}

	token, err := s.codec.Issue(user.ID)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	if err := utils.ValidatePassword(newPassword); err != nil {
		return errors.NewBadRequestError(err.Error())
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return errors.NewUnauthorizedError("user not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return errors.NewBadRequestError("invalid old password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.NewInternalError("failed to hash password")
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, string(hash), false); err != nil {
		return errors.NewInternalError("failed to update password")
	}
	return nil
}

// Resolve classifies a bearer credential and resolves it to a principal.
// API tokens are recognized by their constant prefix, so only one
// verification path ever runs for a given credential.
func (s *AuthService) Resolve(ctx context.Context, bearer string) (*entities.Principal, error) {
	if bearer == "" {
		return nil, errors.NewUnauthorizedError("missing credentials")
	}

	if strings.HasPrefix(bearer, entities.TokenPrefix) {
		return s.resolveAPIToken(ctx, bearer)
	}
	return s.resolveSession(ctx, bearer)
}

func (s *AuthService) resolveSession(ctx context.Context, bearer string) (*entities.Principal, error) {
	userID, err := s.codec.Verify(bearer)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NewUnauthorizedError("user not found")
	}

	return entities.SessionPrincipal(user), nil
}

func (s *AuthService) resolveAPIToken(ctx context.Context, bearer string) (*entities.Principal, error) {
	hash := HashAPIToken(bearer)

	token, err := s.tokenRepo.GetByHash(ctx, hash)
	if err != nil {
		return nil, errors.NewUnauthorizedError("invalid token")
	}

	// Best effort: a failed usage-timestamp update must not fail the request.
	if err := s.tokenRepo.TouchLastUsed(ctx, token.ID); err != nil {
		logger.Warn("failed to update api token last_used",
			zap.String("token_id", token.ID), zap.Error(err))
	}

	return entities.ServicePrincipal(token), nil
}

// RequireAdmin is the role gate. Only admin session principals pass; the
// denial message is deliberately generic.
func (s *AuthService) RequireAdmin(p *entities.Principal) error {
	if !p.IsAdmin() {
		return errors.NewForbiddenError("admin access required")
	}
	return nil
}

// RequirePermission is the permission gate for service principals; session
// principals are exempt. The denial names the missing permission.
func (s *AuthService) RequirePermission(p *entities.Principal, perm entities.Permission) error {
	if p.HasPermission(perm) {
		return nil
	}
	return errors.NewForbiddenError(fmt.Sprintf("API token lacks permission: %s", perm))
}

// HashAPIToken computes the stored commitment of an API token secret. The
// plaintext is never persisted; the prefix stays outside the hashed lookup
// path only in the sense that classification happens before hashing.
func HashAPIToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
