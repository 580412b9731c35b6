package repositories

import (
	"context"
	"dochub-server/internal/domain/entities"
)

type MetadataRepository interface {
	Create(ctx context.Context, def *entities.MetadataDefinition) error
	GetByID(ctx context.Context, id string) (*entities.MetadataDefinition, error)
	List(ctx context.Context) ([]*entities.MetadataDefinition, error)
	Update(ctx context.Context, def *entities.MetadataDefinition) error
	// Delete also removes the definition from every workspace's metadata list.
	Delete(ctx context.Context, id string) error
}
