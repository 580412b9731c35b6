package repositories

import (
	"context"
	"dochub-server/internal/domain/entities"
)

type TeamRepository interface {
	Create(ctx context.Context, team *entities.Team) error
	GetByID(ctx context.Context, id string) (*entities.Team, error)
	List(ctx context.Context) ([]*entities.Team, error)
	Update(ctx context.Context, team *entities.Team) error
	SetUserIDs(ctx context.Context, teamID string, userIDs []string) error
	// Delete removes the team together with its membership rows and its
	// references from workspaces, in one transaction.
	Delete(ctx context.Context, id string) error
}
