package services

import (
	"context"
	"time"

	"dochub-server/internal/domain/entities"
	"dochub-server/internal/domain/repositories"
	"dochub-server/internal/utils"
	"dochub-server/pkg/errors"

	"github.com/google/uuid"
)

type WorkspaceService struct {
	wsRepo repositories.WorkspaceRepository
	cache  CacheService
}

func NewWorkspaceService(wsRepo repositories.WorkspaceRepository, cache CacheService) *WorkspaceService {
	return &WorkspaceService{wsRepo: wsRepo, cache: cache}
}

// List narrows the result to what the principal may see: admins and service
// principals get everything, other users get workspaces reachable through a
// shared team. Service principals carry no team, their only gate is the
// workspaces:read permission checked upstream.
func (s *WorkspaceService) List(ctx context.Context, p *entities.Principal) ([]*entities.Workspace, error) {
	workspaces, err := visibleWorkspaces(ctx, s.wsRepo, p)
	if err != nil {
		return nil, errors.NewInternalError("failed to list workspaces")
	}
	return workspaces, nil
}

func (s *WorkspaceService) GetByID(ctx context.Context, id string) (*entities.Workspace, error) {
	ws, err := s.wsRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewNotFoundError("workspace not found")
	}
	return ws, nil
}

// EnsureAccess enforces workspace visibility for session principals. A
// missing workspace is reported as not found before any access decision.
func (s *WorkspaceService) EnsureAccess(ctx context.Context, p *entities.Principal, workspaceID string) error {
	ws, err := s.wsRepo.GetByID(ctx, workspaceID)
	if err != nil {
		return errors.NewNotFoundError("workspace not found")
	}

	if p.Kind == entities.PrincipalService || p.IsAdmin() {
		return nil
	}

	if intersects(ws.TeamIDs, p.User.TeamIDs) {
		return nil
	}
	return errors.NewForbiddenError("access denied")
}

func (s *WorkspaceService) Create(ctx context.Context, name, description string, metadataIDs, teamIDs []string) (*entities.Workspace, error) {
	name = utils.SanitizeString(name, 200)
	description = utils.SanitizeString(description, 2000)

	if name == "" {
		return nil, errors.NewBadRequestError("name required")
	}

	ws := &entities.Workspace{
		ID:          uuid.NewString(),
		Name:        name,
		MetadataIDs: metadataIDs,
		TeamIDs:     teamIDs,
		CreatedAt:   time.Now(),
	}
	if description != "" {
		ws.Description = &description
	}
	if ws.MetadataIDs == nil {
		ws.MetadataIDs = []string{}
	}
	if ws.TeamIDs == nil {
		ws.TeamIDs = []string{}
	}

	if err := s.wsRepo.Create(ctx, ws); err != nil {
		return nil, errors.NewInternalError("failed to create workspace")
	}
	return ws, nil
}

func (s *WorkspaceService) Update(ctx context.Context, id string, name, description *string, metadataIDs, teamIDs []string) (*entities.Workspace, error) {
	if name == nil && description == nil && metadataIDs == nil && teamIDs == nil {
		return nil, errors.NewBadRequestError("no fields to update")
	}

	ws, err := s.wsRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewNotFoundError("workspace not found")
	}

	if name != nil {
		clean := utils.SanitizeString(*name, 200)
		if clean == "" {
			return nil, errors.NewBadRequestError("name required")
		}
		ws.Name = clean
	}
	if description != nil {
		clean := utils.SanitizeString(*description, 2000)
		if clean == "" {
			ws.Description = nil
		} else {
			ws.Description = &clean
		}
	}

	if err := s.wsRepo.Update(ctx, ws); err != nil {
		return nil, errors.NewInternalError("failed to update workspace")
	}

	if metadataIDs != nil {
		if err := s.wsRepo.SetMetadataIDs(ctx, id, metadataIDs); err != nil {
			return nil, errors.NewInternalError("failed to update workspace metadata")
		}
		ws.MetadataIDs = metadataIDs
	}
	if teamIDs != nil {
		if err := s.wsRepo.SetTeamIDs(ctx, id, teamIDs); err != nil {
			return nil, errors.NewInternalError("failed to update workspace teams")
		}
		ws.TeamIDs = teamIDs
	}

	return ws, nil
}

// Delete cascades to every document in the workspace.
func (s *WorkspaceService) Delete(ctx context.Context, id string) error {
	if _, err := s.wsRepo.GetByID(ctx, id); err != nil {
		return errors.NewNotFoundError("workspace not found")
	}
	if err := s.wsRepo.Delete(ctx, id); err != nil {
		return errors.NewInternalError("failed to delete workspace")
	}

	s.cache.InvalidateWorkspace(ctx, id)
	return nil
}

func visibleWorkspaces(ctx context.Context, wsRepo repositories.WorkspaceRepository, p *entities.Principal) ([]*entities.Workspace, error) {
	if p.Kind == entities.PrincipalService || p.IsAdmin() {
		return wsRepo.List(ctx)
	}
	if len(p.User.TeamIDs) == 0 {
		return []*entities.Workspace{}, nil
	}
	return wsRepo.ListByTeamIDs(ctx, p.User.TeamIDs)
}

func intersects(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}
