package repositories

import (
	"context"
	"dochub-server/internal/domain/entities"
)

type APITokenRepository interface {
	Create(ctx context.Context, token *entities.APIToken) error
	GetByID(ctx context.Context, id string) (*entities.APIToken, error)
	GetByName(ctx context.Context, name string) (*entities.APIToken, error)
	// GetByHash looks up a token by the sha256 commitment of its secret.
	// Revocation is a hard delete, so a revoked secret never matches again.
	GetByHash(ctx context.Context, hash string) (*entities.APIToken, error)
	List(ctx context.Context) ([]*entities.APIToken, error)
	Update(ctx context.Context, token *entities.APIToken) error
	TouchLastUsed(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
