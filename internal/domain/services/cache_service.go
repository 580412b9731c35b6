package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"dochub-server/internal/domain/entities"
)

// CacheService caches per-workspace document listings. Invalidation is
// synchronous with every mutation; authentication decisions are never cached.
type CacheService interface {
	GetDocumentList(ctx context.Context, workspaceID string) ([]*entities.Document, error)
	SetDocumentList(ctx context.Context, workspaceID string, docs []*entities.Document) error
	InvalidateWorkspace(ctx context.Context, workspaceID string) error
}

type RedisClient interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, duration time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

type redisCacheService struct {
	client        RedisClient
	cacheDuration time.Duration
}

func NewRedisCacheService(client RedisClient, cacheDuration time.Duration) *redisCacheService {
	return &redisCacheService{
		client:        client,
		cacheDuration: cacheDuration,
	}
}

func documentListKey(workspaceID string) string {
	return fmt.Sprintf("docs:ws:%s", workspaceID)
}

func (s *redisCacheService) GetDocumentList(ctx context.Context, workspaceID string) ([]*entities.Document, error) {
	data, err := s.client.Get(ctx, documentListKey(workspaceID))
	if err != nil {
		return nil, err
	}

	var docs []*entities.Document
	if err := json.Unmarshal([]byte(data), &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *redisCacheService) SetDocumentList(ctx context.Context, workspaceID string, docs []*entities.Document) error {
	data, err := json.Marshal(docs)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, documentListKey(workspaceID), data, s.cacheDuration)
}

func (s *redisCacheService) InvalidateWorkspace(ctx context.Context, workspaceID string) error {
	return s.client.Del(ctx, documentListKey(workspaceID))
}
