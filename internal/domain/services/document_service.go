package services

import (
	"context"
	"time"

	"dochub-server/internal/domain/entities"
	"dochub-server/internal/domain/repositories"
	"dochub-server/pkg/errors"

	"github.com/google/uuid"
)

const (
	searchResultCap = 100
	minSearchQuery  = 2
)

type DocumentService struct {
	docRepo repositories.DocumentRepository
	wsRepo  repositories.WorkspaceRepository
	cache   CacheService
}

func NewDocumentService(
	docRepo repositories.DocumentRepository,
	wsRepo repositories.WorkspaceRepository,
	cache CacheService,
) *DocumentService {
	return &DocumentService{
		docRepo: docRepo,
		wsRepo:  wsRepo,
		cache:   cache,
	}
}

func (s *DocumentService) ListByWorkspace(ctx context.Context, workspaceID string) ([]*entities.Document, error) {
	if docs, err := s.cache.GetDocumentList(ctx, workspaceID); err == nil {
		return docs, nil
	}

	docs, err := s.docRepo.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, errors.NewInternalError("failed to list documents")
	}

	s.cache.SetDocumentList(ctx, workspaceID, docs)

	return docs, nil
}

func (s *DocumentService) Create(ctx context.Context, workspaceID, filePath, fileName string, metadata map[string]string) (*entities.Document, error) {
	if _, err := s.wsRepo.GetByID(ctx, workspaceID); err != nil {
		return nil, errors.NewNotFoundError("workspace not found")
	}

	if metadata == nil {
		metadata = map[string]string{}
	}

	now := time.Now()
	doc := &entities.Document{
		ID:          uuid.NewString(),
		WorkspaceID: workspaceID,
		FilePath:    filePath,
		FileName:    fileName,
		PublicURL:   uuid.NewString(),
		Metadata:    metadata,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, errors.NewInternalError("failed to create document")
	}

	s.cache.InvalidateWorkspace(ctx, workspaceID)

	return doc, nil
}

func (s *DocumentService) GetByID(ctx context.Context, id string) (*entities.Document, error) {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewNotFoundError("document not found")
	}
	return doc, nil
}

// GetByPublicURL resolves the unauthenticated public link. The public url is
// opaque and independent of the document id.
func (s *DocumentService) GetByPublicURL(ctx context.Context, publicURL string) (*entities.Document, error) {
	doc, err := s.docRepo.GetByPublicURL(ctx, publicURL)
	if err != nil {
		return nil, errors.NewNotFoundError("document not found")
	}
	return doc, nil
}

func (s *DocumentService) Update(ctx context.Context, id string, filePath, fileName *string, metadata map[string]string) (*entities.Document, error) {
	if filePath == nil && fileName == nil && metadata == nil {
		return nil, errors.NewBadRequestError("no fields to update")
	}

	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewNotFoundError("document not found")
	}

	if filePath != nil {
		doc.FilePath = *filePath
	}
	if fileName != nil {
		doc.FileName = *fileName
	}
	if metadata != nil {
		doc.Metadata = metadata
	}
	doc.UpdatedAt = time.Now()

	if err := s.docRepo.Update(ctx, doc); err != nil {
		return nil, errors.NewInternalError("failed to update document")
	}

	s.cache.InvalidateWorkspace(ctx, doc.WorkspaceID)

	return doc, nil
}

func (s *DocumentService) Delete(ctx context.Context, id string) error {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return errors.NewNotFoundError("document not found")
	}

	if err := s.docRepo.Delete(ctx, id); err != nil {
		return errors.NewInternalError("failed to delete document")
	}

	s.cache.InvalidateWorkspace(ctx, doc.WorkspaceID)

	return nil
}

// Search matches case-insensitively over file name, file path and metadata,
// restricted to the principal's visible workspaces, newest first,
// capped to keep responses bounded.
func (s *DocumentService) Search(ctx context.Context, p *entities.Principal, query string) ([]*entities.Document, error) {
	if len(query) < minSearchQuery {
		return []*entities.Document{}, nil
	}

	workspaces, err := visibleWorkspaces(ctx, s.wsRepo, p)
	if err != nil {
		return nil, errors.NewInternalError("failed to resolve visible workspaces")
	}
	if len(workspaces) == 0 {
		return []*entities.Document{}, nil
	}

	workspaceIDs := make([]string, len(workspaces))
	for i, ws := range workspaces {
		workspaceIDs[i] = ws.ID
	}

	docs, err := s.docRepo.Search(ctx, &repositories.DocumentFilter{
		WorkspaceIDs: workspaceIDs,
		Query:        query,
		Limit:        searchResultCap,
	})
	if err != nil {
		return nil, errors.NewInternalError("failed to search documents")
	}
	return docs, nil
}
