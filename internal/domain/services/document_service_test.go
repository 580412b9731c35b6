package services

import (
	"context"
	"testing"
	"time"

	"dochub-server/internal/domain/entities"
	"dochub-server/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDocFixture(t *testing.T) (*DocumentService, *memDocRepo, *memWorkspaceRepo, *memCache) {
	t.Helper()

	docRepo := newMemDocRepo()
	wsRepo := newMemWorkspaceRepo()
	cache := newMemCache()
	return NewDocumentService(docRepo, wsRepo, cache), docRepo, wsRepo, cache
}

func TestDocumentCreate(t *testing.T) {
	svc, docRepo, wsRepo, cache := newDocFixture(t)
	seedWorkspace(t, wsRepo, "ws1", "engineering", []string{"t1"})

	t.Run("workspace must exist", func(t *testing.T) {
		_, err := svc.Create(context.Background(), "nope", "/uploads/a.pdf", "a.pdf", nil)
		var notFound *errors.NotFoundError
		assert.ErrorAs(t, err, &notFound)
	})

	t.Run("assigns id and a distinct public url", func(t *testing.T) {
		doc, err := svc.Create(context.Background(), "ws1", "/uploads/a.pdf", "a.pdf",
			map[string]string{"author": "alice"})
		require.NoError(t, err)

		assert.NotEmpty(t, doc.ID)
		assert.NotEmpty(t, doc.PublicURL)
		assert.NotEqual(t, doc.ID, doc.PublicURL)
		assert.Contains(t, cache.invalidations, "ws1")

		stored, err := docRepo.GetByID(context.Background(), doc.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", stored.Metadata["author"])
	})

	t.Run("nil metadata becomes an empty map", func(t *testing.T) {
		doc, err := svc.Create(context.Background(), "ws1", "/uploads/b.pdf", "b.pdf", nil)
		require.NoError(t, err)
		assert.NotNil(t, doc.Metadata)
		assert.Empty(t, doc.Metadata)
	})
}

func TestDocumentListUsesCache(t *testing.T) {
	svc, docRepo, wsRepo, cache := newDocFixture(t)
	seedWorkspace(t, wsRepo, "ws1", "engineering", nil)

	_, err := svc.Create(context.Background(), "ws1", "/uploads/a.pdf", "a.pdf", nil)
	require.NoError(t, err)

	first, err := svc.ListByWorkspace(context.Background(), "ws1")
	require.NoError(t, err)
	require.Len(t, first, 1)

	// A write that bypasses the service is invisible until invalidation.
	require.NoError(t, docRepo.Create(context.Background(), &entities.Document{
		ID: "rogue", WorkspaceID: "ws1", FilePath: "/uploads/rogue.pdf", FileName: "rogue.pdf",
		PublicURL: "rogue-url", Metadata: map[string]string{}, CreatedAt: time.Now(),
	}))

	cached, err := svc.ListByWorkspace(context.Background(), "ws1")
	require.NoError(t, err)
	assert.Len(t, cached, 1)

	require.NoError(t, cache.InvalidateWorkspace(context.Background(), "ws1"))

	fresh, err := svc.ListByWorkspace(context.Background(), "ws1")
	require.NoError(t, err)
	assert.Len(t, fresh, 2)
}

func TestDocumentUpdate(t *testing.T) {
	svc, _, wsRepo, cache := newDocFixture(t)
	seedWorkspace(t, wsRepo, "ws1", "engineering", nil)

	doc, err := svc.Create(context.Background(), "ws1", "/uploads/a.pdf", "a.pdf", nil)
	require.NoError(t, err)

	t.Run("no fields", func(t *testing.T) {
		_, err := svc.Update(context.Background(), doc.ID, nil, nil, nil)
		var badRequest *errors.BadRequestError
		assert.ErrorAs(t, err, &badRequest)
	})

	t.Run("partial update keeps the rest", func(t *testing.T) {
		name := "renamed.pdf"
		updated, err := svc.Update(context.Background(), doc.ID, nil, &name, nil)
		require.NoError(t, err)
		assert.Equal(t, "renamed.pdf", updated.FileName)
		assert.Equal(t, "/uploads/a.pdf", updated.FilePath)
		assert.Equal(t, doc.PublicURL, updated.PublicURL)
		assert.Contains(t, cache.invalidations, "ws1")
	})

	t.Run("unknown document", func(t *testing.T) {
		name := "x.pdf"
		_, err := svc.Update(context.Background(), "missing", nil, &name, nil)
		var notFound *errors.NotFoundError
		assert.ErrorAs(t, err, &notFound)
	})
}

func TestDocumentDelete(t *testing.T) {
	svc, docRepo, wsRepo, cache := newDocFixture(t)
	seedWorkspace(t, wsRepo, "ws1", "engineering", nil)

	doc, err := svc.Create(context.Background(), "ws1", "/uploads/a.pdf", "a.pdf", nil)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), doc.ID))
	assert.Contains(t, cache.invalidations, "ws1")

	_, err = docRepo.GetByID(context.Background(), doc.ID)
	assert.Error(t, err)

	var notFound *errors.NotFoundError
	assert.ErrorAs(t, svc.Delete(context.Background(), doc.ID), &notFound)
}

func TestDocumentSearch(t *testing.T) {
	svc, docRepo, wsRepo, _ := newDocFixture(t)

	seedWorkspace(t, wsRepo, "ws1", "engineering", []string{"t1"})
	seedWorkspace(t, wsRepo, "ws2", "finance", []string{"t2"})

	member := entities.SessionPrincipal(&entities.User{ID: "u1", Role: entities.RoleUser, TeamIDs: []string{"t1"}})
	admin := entities.SessionPrincipal(&entities.User{ID: "a", Role: entities.RoleAdmin})
	teamless := entities.SessionPrincipal(&entities.User{ID: "u2", Role: entities.RoleUser, TeamIDs: []string{}})

	t.Run("short query returns empty without querying", func(t *testing.T) {
		docs, err := svc.Search(context.Background(), member, "a")
		require.NoError(t, err)
		assert.Empty(t, docs)
		assert.Nil(t, docRepo.lastFilter)
	})

	t.Run("member search is scoped to visible workspaces", func(t *testing.T) {
		_, err := svc.Search(context.Background(), member, "report")
		require.NoError(t, err)
		require.NotNil(t, docRepo.lastFilter)
		assert.Equal(t, []string{"ws1"}, docRepo.lastFilter.WorkspaceIDs)
		assert.Equal(t, "report", docRepo.lastFilter.Query)
		assert.Equal(t, 100, docRepo.lastFilter.Limit)
	})

	t.Run("admin search spans all workspaces", func(t *testing.T) {
		_, err := svc.Search(context.Background(), admin, "report")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"ws1", "ws2"}, docRepo.lastFilter.WorkspaceIDs)
	})

	t.Run("service token search spans all workspaces", func(t *testing.T) {
		service := entities.ServicePrincipal(&entities.APIToken{
			ID:          "tk",
			Permissions: []entities.Permission{entities.PermDocumentsSearch},
		})
		_, err := svc.Search(context.Background(), service, "report")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"ws1", "ws2"}, docRepo.lastFilter.WorkspaceIDs)
	})

	t.Run("no visible workspaces short-circuits", func(t *testing.T) {
		docRepo.lastFilter = nil
		docs, err := svc.Search(context.Background(), teamless, "report")
		require.NoError(t, err)
		assert.Empty(t, docs)
		assert.Nil(t, docRepo.lastFilter)
	})
}
