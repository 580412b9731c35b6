package dto

import "dochub-server/internal/domain/entities"

type UserCreateRequest struct {
	Email    string        `json:"email" binding:"required"`
	Password string        `json:"password" binding:"required"`
	Role     entities.Role `json:"role" binding:"required"`
	TeamIDs  []string      `json:"team_ids"`
}

type UserUpdateRequest struct {
	Email   *string        `json:"email"`
	Role    *entities.Role `json:"role"`
	TeamIDs []string       `json:"team_ids"`
}
