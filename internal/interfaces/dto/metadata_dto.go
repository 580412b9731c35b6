package dto

import "dochub-server/internal/domain/entities"

type MetadataCreateRequest struct {
	Name      string             `json:"name" binding:"required"`
	FieldType entities.FieldType `json:"field_type" binding:"required"`
	Visible   *bool              `json:"visible"`
	Options   []string           `json:"options"`
}

type MetadataUpdateRequest struct {
	Name      *string             `json:"name"`
	FieldType *entities.FieldType `json:"field_type"`
	Visible   *bool               `json:"visible"`
	Options   []string            `json:"options"`
}
