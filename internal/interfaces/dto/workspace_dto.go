package dto

type WorkspaceCreateRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	MetadataIDs []string `json:"metadata_ids"`
	TeamIDs     []string `json:"team_ids"`
}

type WorkspaceUpdateRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	MetadataIDs []string `json:"metadata_ids"`
	TeamIDs     []string `json:"team_ids"`
}
