package repositories

import (
	"context"
	"dochub-server/internal/domain/entities"
)

type WorkspaceRepository interface {
	Create(ctx context.Context, ws *entities.Workspace) error
	GetByID(ctx context.Context, id string) (*entities.Workspace, error)
	List(ctx context.Context) ([]*entities.Workspace, error)
	// ListByTeamIDs returns workspaces whose team list intersects teamIDs.
	ListByTeamIDs(ctx context.Context, teamIDs []string) ([]*entities.Workspace, error)
	Update(ctx context.Context, ws *entities.Workspace) error
	SetMetadataIDs(ctx context.Context, workspaceID string, metadataIDs []string) error
	SetTeamIDs(ctx context.Context, workspaceID string, teamIDs []string) error
	// Delete cascades to the workspace's documents and its join rows.
	Delete(ctx context.Context, id string) error
}
