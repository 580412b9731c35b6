package dto

type TeamCreateRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	UserIDs     []string `json:"user_ids"`
}

type TeamUpdateRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	UserIDs     []string `json:"user_ids"`
}
