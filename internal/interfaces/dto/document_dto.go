package dto

type DocumentCreateRequest struct {
	FilePath string         `json:"file_path" binding:"required"`
	FileName string         `json:"file_name" binding:"required"`
	Metadata map[string]any `json:"metadata"`
}

type DocumentUpdateRequest struct {
	FilePath *string        `json:"file_path"`
	FileName *string        `json:"file_name"`
	Metadata map[string]any `json:"metadata"`
}
