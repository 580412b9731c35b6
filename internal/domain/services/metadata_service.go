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

type MetadataService struct {
	metaRepo repositories.MetadataRepository
}

func NewMetadataService(metaRepo repositories.MetadataRepository) *MetadataService {
	return &MetadataService{metaRepo: metaRepo}
}

func (s *MetadataService) List(ctx context.Context) ([]*entities.MetadataDefinition, error) {
	defs, err := s.metaRepo.List(ctx)
	if err != nil {
		return nil, errors.NewInternalError("failed to list metadata definitions")
	}
	return defs, nil
}

func (s *MetadataService) Create(ctx context.Context, name string, fieldType entities.FieldType, visible bool, options []string) (*entities.MetadataDefinition, error) {
	name = utils.SanitizeString(name, 200)
	if name == "" {
		return nil, errors.NewBadRequestError("name required")
	}
	if !fieldType.Valid() {
		return nil, errors.NewBadRequestError("invalid field_type")
	}

	def := &entities.MetadataDefinition{
		ID:        uuid.NewString(),
		Name:      name,
		FieldType: fieldType,
		Visible:   visible,
		Options:   options,
		CreatedAt: time.Now(),
	}

	if err := s.metaRepo.Create(ctx, def); err != nil {
		return nil, errors.NewInternalError("failed to create metadata definition")
	}
	return def, nil
}

func (s *MetadataService) Update(ctx context.Context, id string, name *string, fieldType *entities.FieldType, visible *bool, options []string) (*entities.MetadataDefinition, error) {
	if name == nil && fieldType == nil && visible == nil && options == nil {
		return nil, errors.NewBadRequestError("no fields to update")
	}

	def, err := s.metaRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewNotFoundError("metadata not found")
	}

	if name != nil {
		clean := utils.SanitizeString(*name, 200)
		if clean == "" {
			return nil, errors.NewBadRequestError("name required")
		}
		def.Name = clean
	}
	if fieldType != nil {
		if !fieldType.Valid() {
			return nil, errors.NewBadRequestError("invalid field_type")
		}
		def.FieldType = *fieldType
	}
	if visible != nil {
		def.Visible = *visible
	}
	if options != nil {
		def.Options = options
	}

	if err := s.metaRepo.Update(ctx, def); err != nil {
		return nil, errors.NewInternalError("failed to update metadata definition")
	}
	return def, nil
}

// Delete also drops the definition from every workspace's metadata list.
func (s *MetadataService) Delete(ctx context.Context, id string) error {
	if _, err := s.metaRepo.GetByID(ctx, id); err != nil {
		return errors.NewNotFoundError("metadata not found")
	}
	if err := s.metaRepo.Delete(ctx, id); err != nil {
		return errors.NewInternalError("failed to delete metadata definition")
	}
	return nil
}
