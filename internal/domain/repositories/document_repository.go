package repositories

import (
	"context"
	"dochub-server/internal/domain/entities"
)

type DocumentFilter struct {
	WorkspaceIDs []string
	Query        string
	Limit        int
}

type DocumentRepository interface {
	Create(ctx context.Context, doc *entities.Document) error
	GetByID(ctx context.Context, id string) (*entities.Document, error)
	GetByPublicURL(ctx context.Context, publicURL string) (*entities.Document, error)
	ListByWorkspace(ctx context.Context, workspaceID string) ([]*entities.Document, error)
	// Search matches the query case-insensitively against file name, file
	// path and the metadata text of documents in the given workspaces,
	// newest first, capped at filter.Limit.
	Search(ctx context.Context, filter *DocumentFilter) ([]*entities.Document, error)
	Update(ctx context.Context, doc *entities.Document) error
	Delete(ctx context.Context, id string) error
}
