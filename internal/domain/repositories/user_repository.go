package repositories

import (
	"context"
	"dochub-server/internal/domain/entities"
)

type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id string) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	List(ctx context.Context) ([]*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	UpdatePassword(ctx context.Context, id, passwordHash string, firstLogin bool) error
	// SetTeamIDs replaces the user's team memberships; the join table keeps
	// team.user_ids and user.team_ids mirrored by construction.
	SetTeamIDs(ctx context.Context, userID string, teamIDs []string) error
	Delete(ctx context.Context, id string) error
}
