package services

import (
	"context"
	"strings"
	"time"

	"dochub-server/internal/domain/entities"
	"dochub-server/internal/domain/repositories"
	"dochub-server/internal/utils"
	"dochub-server/pkg/errors"
	"dochub-server/pkg/logger"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Bootstrap credentials for the first run. first_login stays true until the
// password is rotated; nothing is blocked on it, it is advisory.
const (
	bootstrapAdminEmail    = "admin"
	bootstrapAdminPassword = "admin"
)

type UserService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) List(ctx context.Context) ([]*entities.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, errors.NewInternalError("failed to list users")
	}
	return users, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*entities.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewNotFoundError("user not found")
	}
	return user, nil
}

func (s *UserService) Create(ctx context.Context, email, password string, role entities.Role, teamIDs []string) (*entities.User, error) {
	email = strings.ToLower(utils.SanitizeString(email, 100))

	if err := utils.ValidateEmail(email); err != nil {
		return nil, errors.NewBadRequestError(err.Error())
	}
	if err := utils.ValidatePassword(password); err != nil {
		return nil, errors.NewBadRequestError(err.Error())
	}
	if !role.Valid() {
		return nil, errors.NewBadRequestError("invalid role")
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, errors.NewConflictError("email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.NewInternalError("failed to hash password")
	}

	user := &entities.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		FirstLogin:   true,
		TeamIDs:      teamIDs,
		CreatedAt:    time.Now(),
	}
	if user.TeamIDs == nil {
		user.TeamIDs = []string{}
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, errors.NewInternalError("failed to create user")
	}

	return user, nil
}

func (s *UserService) Update(ctx context.Context, id string, email *string, role *entities.Role, teamIDs []string) (*entities.User, error) {
	if email == nil && role == nil && teamIDs == nil {
		return nil, errors.NewBadRequestError("no fields to update")
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewNotFoundError("user not found")
	}

	if email != nil {
		clean := strings.ToLower(utils.SanitizeString(*email, 100))
		if err := utils.ValidateEmail(clean); err != nil {
			return nil, errors.NewBadRequestError(err.Error())
		}
		user.Email = clean
	}
	if role != nil {
		if !role.Valid() {
			return nil, errors.NewBadRequestError("invalid role")
		}
		user.Role = *role
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, errors.NewInternalError("failed to update user")
	}

	if teamIDs != nil {
		if err := s.userRepo.SetTeamIDs(ctx, id, teamIDs); err != nil {
			return nil, errors.NewInternalError("failed to update team membership")
		}
		user.TeamIDs = teamIDs
	}

	return user, nil
}

// Delete removes a user. Self-deletion is rejected so an admin cannot lock
// themselves out mid-session.
func (s *UserService) Delete(ctx context.Context, id, actorID string) error {
	if id == actorID {
		return errors.NewBadRequestError("cannot delete yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return errors.NewNotFoundError("user not found")
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return errors.NewInternalError("failed to delete user")
	}
	return nil
}

// BootstrapAdmin creates the default administrator on first startup.
func (s *UserService) BootstrapAdmin(ctx context.Context) error {
	if _, err := s.userRepo.GetByEmail(ctx, bootstrapAdminEmail); err == nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(bootstrapAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &entities.User{
		ID:           uuid.NewString(),
		Email:        bootstrapAdminEmail,
		PasswordHash: string(hash),
		Role:         entities.RoleAdmin,
		FirstLogin:   true,
		TeamIDs:      []string{},
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, admin); err != nil {
		return err
	}

	logger.Info("default admin user created")
	return nil
}
