package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"dochub-server/internal/domain/entities"
	"dochub-server/internal/domain/repositories"
	"dochub-server/internal/utils"
	"dochub-server/pkg/errors"

	"github.com/google/uuid"
)

const (
	tokenSecretBytes = 32
	tokenPreviewMask = "****"
	tokenPreviewLen  = 8
)

type APITokenService struct {
	tokenRepo repositories.APITokenRepository
}

func NewAPITokenService(tokenRepo repositories.APITokenRepository) *APITokenService {
	return &APITokenService{tokenRepo: tokenRepo}
}

// Create issues a new API token. The returned secret is shown to the caller
// exactly once; only its sha256 commitment and a short preview are stored.
func (s *APITokenService) Create(
	ctx context.Context,
	createdBy, name, description string,
	permissions []entities.Permission,
) (*entities.APIToken, string, error) {
	name = utils.SanitizeString(name, 100)
	description = utils.SanitizeString(description, 500)

	if len(name) < 3 {
		return nil, "", errors.NewBadRequestError("token name must be at least 3 characters")
	}
	if len(permissions) == 0 {
		return nil, "", errors.NewBadRequestError("at least one permission is required")
	}
	for _, perm := range permissions {
		if !perm.Valid() {
			return nil, "", errors.NewBadRequestError(fmt.Sprintf("unknown permission: %s", perm))
		}
	}

	if _, err := s.tokenRepo.GetByName(ctx, name); err == nil {
		return nil, "", errors.NewConflictError("token name already exists")
	}

	secret := make([]byte, tokenSecretBytes)
	if _, err := rand.Read(secret); err != nil {
		return nil, "", errors.NewInternalError("failed to generate token secret")
	}
	raw := entities.TokenPrefix + hex.EncodeToString(secret)

	token := &entities.APIToken{
		ID:           uuid.NewString(),
		Name:         name,
		TokenHash:    HashAPIToken(raw),
		TokenPreview: tokenPreviewMask + raw[len(raw)-tokenPreviewLen:],
		Permissions:  permissions,
		CreatedBy:    createdBy,
		CreatedAt:    time.Now(),
	}
	if description != "" {
		token.Description = &description
	}

	if err := s.tokenRepo.Create(ctx, token); err != nil {
		return nil, "", errors.NewInternalError("failed to create api token")
	}

	return token, raw, nil
}

func (s *APITokenService) List(ctx context.Context) ([]*entities.APIToken, error) {
	tokens, err := s.tokenRepo.List(ctx)
	if err != nil {
		return nil, errors.NewInternalError("failed to list api tokens")
	}
	return tokens, nil
}

// Update renames or redescribes a token. The permission set is bound at
// creation and never changes; granting different access means issuing a new
// token and revoking the old one.
func (s *APITokenService) Update(
	ctx context.Context,
	id string,
	name, description *string,
) (*entities.APIToken, error) {
	if name == nil && description == nil {
		return nil, errors.NewBadRequestError("no fields to update")
	}

	token, err := s.tokenRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewNotFoundError("api token not found")
	}

	if name != nil {
		clean := utils.SanitizeString(*name, 100)
		if len(clean) < 3 {
			return nil, errors.NewBadRequestError("token name must be at least 3 characters")
		}
		if clean != token.Name {
			if existing, err := s.tokenRepo.GetByName(ctx, clean); err == nil && existing.ID != token.ID {
				return nil, errors.NewConflictError("token name already exists")
			}
		}
		token.Name = clean
	}
	if description != nil {
		clean := utils.SanitizeString(*description, 500)
		if clean == "" {
			token.Description = nil
		} else {
			token.Description = &clean
		}
	}

	if err := s.tokenRepo.Update(ctx, token); err != nil {
		return nil, errors.NewInternalError("failed to update api token")
	}
	return token, nil
}

// Delete revokes the token permanently. The next Resolve of its secret fails;
// there is no grace period.
func (s *APITokenService) Delete(ctx context.Context, id string) error {
	if _, err := s.tokenRepo.GetByID(ctx, id); err != nil {
		return errors.NewNotFoundError("api token not found")
	}
	if err := s.tokenRepo.Delete(ctx, id); err != nil {
		return errors.NewInternalError("failed to delete api token")
	}
	return nil
}
