package dto

import "dochub-server/internal/domain/entities"

type TokenCreateRequest struct {
	Name        string                `json:"name" binding:"required"`
	Description string                `json:"description"`
	Permissions []entities.Permission `json:"permissions"`
}

type TokenCreateResponse struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Description *string               `json:"description"`
	Permissions []entities.Permission `json:"permissions"`
	// Token is the full secret, disclosed exactly once.
	Token     string `json:"token"`
	CreatedAt string `json:"created_at"`
}

type TokenUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	// Permissions is accepted only so its presence can be rejected
	// explicitly; the permission set is fixed at creation.
	Permissions []entities.Permission `json:"permissions"`
}

type PermissionOption struct {
	Value entities.Permission `json:"value"`
	Label string              `json:"label"`
}

type PermissionListResponse struct {
	Permissions []PermissionOption `json:"permissions"`
}
