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

type TeamService struct {
	teamRepo repositories.TeamRepository
}

func NewTeamService(teamRepo repositories.TeamRepository) *TeamService {
	return &TeamService{teamRepo: teamRepo}
}

func (s *TeamService) List(ctx context.Context) ([]*entities.Team, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, errors.NewInternalError("failed to list teams")
	}
	return teams, nil
}

func (s *TeamService) Create(ctx context.Context, name, description string, userIDs []string) (*entities.Team, error) {
	name = utils.SanitizeString(name, 200)
	description = utils.SanitizeString(description, 2000)

	if name == "" {
		return nil, errors.NewBadRequestError("name required")
	}

	team := &entities.Team{
		ID:        uuid.NewString(),
		Name:      name,
		UserIDs:   userIDs,
		CreatedAt: time.Now(),
	}
	if description != "" {
		team.Description = &description
	}
	if team.UserIDs == nil {
		team.UserIDs = []string{}
	}

	// Membership lives in one join table, so creating the team with members
	// mirrors onto each member's team list in the same write.
	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, errors.NewInternalError("failed to create team")
	}

	return team, nil
}

func (s *TeamService) Update(ctx context.Context, id string, name, description *string, userIDs []string) (*entities.Team, error) {
	if name == nil && description == nil && userIDs == nil {
		return nil, errors.NewBadRequestError("no fields to update")
	}

	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewNotFoundError("team not found")
	}

	if name != nil {
		clean := utils.SanitizeString(*name, 200)
		if clean == "" {
			return nil, errors.NewBadRequestError("name required")
		}
		team.Name = clean
	}
	if description != nil {
		clean := utils.SanitizeString(*description, 2000)
		if clean == "" {
			team.Description = nil
		} else {
			team.Description = &clean
		}
	}

	if err := s.teamRepo.Update(ctx, team); err != nil {
		return nil, errors.NewInternalError("failed to update team")
	}

	if userIDs != nil {
		if err := s.teamRepo.SetUserIDs(ctx, id, userIDs); err != nil {
			return nil, errors.NewInternalError("failed to update team membership")
		}
		team.UserIDs = userIDs
	}

	return team, nil
}

// Delete removes the team, its membership rows and its references from
// workspaces in one pass, so no user or workspace keeps a dangling team id.
func (s *TeamService) Delete(ctx context.Context, id string) error {
	if _, err := s.teamRepo.GetByID(ctx, id); err != nil {
		return errors.NewNotFoundError("team not found")
	}
	if err := s.teamRepo.Delete(ctx, id); err != nil {
		return errors.NewInternalError("failed to delete team")
	}
	return nil
}
