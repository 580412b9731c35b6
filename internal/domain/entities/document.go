package entities

import "time"

type Document struct {
	ID          string            `json:"id"`
	WorkspaceID string            `json:"workspace_id"`
	FilePath    string            `json:"file_path"`
	FileName    string            `json:"file_name"`
	PublicURL   string            `json:"public_url"`
	Metadata    map[string]string `json:"metadata"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}
