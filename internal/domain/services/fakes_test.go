package services

import (
	"context"
	stderrors "errors"
	"os"
	"testing"

	"dochub-server/internal/domain/entities"
	"dochub-server/internal/domain/repositories"
	"dochub-server/pkg/logger"

	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger.Logger = zap.NewNop()
	zap.ReplaceGlobals(logger.Logger)
	os.Exit(m.Run())
}

var errNotFound = stderrors.New("not found")

type memUserRepo struct {
	users map[string]*entities.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*entities.User{}}
}

func (r *memUserRepo) Create(_ context.Context, u *entities.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entities.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errNotFound
}

func (r *memUserRepo) List(_ context.Context) ([]*entities.User, error) {
	users := make([]*entities.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		users = append(users, &cp)
	}
	return users, nil
}

func (r *memUserRepo) Update(_ context.Context, u *entities.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return errNotFound
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) UpdatePassword(_ context.Context, id, passwordHash string, firstLogin bool) error {
	u, ok := r.users[id]
	if !ok {
		return errNotFound
	}
	u.PasswordHash = passwordHash
	u.FirstLogin = firstLogin
	return nil
}

func (r *memUserRepo) SetTeamIDs(_ context.Context, userID string, teamIDs []string) error {
	u, ok := r.users[userID]
	if !ok {
		return errNotFound
	}
	u.TeamIDs = teamIDs
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return errNotFound
	}
	delete(r.users, id)
	return nil
}

type memTokenRepo struct {
	tokens   map[string]*entities.APIToken
	touched  []string
	touchErr error
}

func newMemTokenRepo() *memTokenRepo {
	return &memTokenRepo{tokens: map[string]*entities.APIToken{}}
}

func (r *memTokenRepo) Create(_ context.Context, t *entities.APIToken) error {
	cp := *t
	r.tokens[t.ID] = &cp
	return nil
}

func (r *memTokenRepo) GetByID(_ context.Context, id string) (*entities.APIToken, error) {
	t, ok := r.tokens[id]
	if !ok {
		return nil, errNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *memTokenRepo) GetByName(_ context.Context, name string) (*entities.APIToken, error) {
	for _, t := range r.tokens {
		if t.Name == name {
			cp := *t
			return &cp, nil
		}
	}
	return nil, errNotFound
}

func (r *memTokenRepo) GetByHash(_ context.Context, hash string) (*entities.APIToken, error) {
	for _, t := range r.tokens {
		if t.TokenHash == hash {
			cp := *t
			return &cp, nil
		}
	}
	return nil, errNotFound
}

func (r *memTokenRepo) List(_ context.Context) ([]*entities.APIToken, error) {
	tokens := make([]*entities.APIToken, 0, len(r.tokens))
	for _, t := range r.tokens {
		cp := *t
		tokens = append(tokens, &cp)
	}
	return tokens, nil
}

func (r *memTokenRepo) Update(_ context.Context, t *entities.APIToken) error {
	if _, ok := r.tokens[t.ID]; !ok {
		return errNotFound
	}
	cp := *t
	r.tokens[t.ID] = &cp
	return nil
}

func (r *memTokenRepo) TouchLastUsed(_ context.Context, id string) error {
	if r.touchErr != nil {
		return r.touchErr
	}
	r.touched = append(r.touched, id)
	return nil
}

func (r *memTokenRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.tokens[id]; !ok {
		return errNotFound
	}
	delete(r.tokens, id)
	return nil
}

type memWorkspaceRepo struct {
	workspaces map[string]*entities.Workspace
	order      []string
}

func newMemWorkspaceRepo() *memWorkspaceRepo {
	return &memWorkspaceRepo{workspaces: map[string]*entities.Workspace{}}
}

func (r *memWorkspaceRepo) Create(_ context.Context, ws *entities.Workspace) error {
	cp := *ws
	r.workspaces[ws.ID] = &cp
	r.order = append(r.order, ws.ID)
	return nil
}

func (r *memWorkspaceRepo) GetByID(_ context.Context, id string) (*entities.Workspace, error) {
	ws, ok := r.workspaces[id]
	if !ok {
		return nil, errNotFound
	}
	cp := *ws
	return &cp, nil
}

func (r *memWorkspaceRepo) List(_ context.Context) ([]*entities.Workspace, error) {
	workspaces := make([]*entities.Workspace, 0, len(r.order))
	for _, id := range r.order {
		cp := *r.workspaces[id]
		workspaces = append(workspaces, &cp)
	}
	return workspaces, nil
}

func (r *memWorkspaceRepo) ListByTeamIDs(_ context.Context, teamIDs []string) ([]*entities.Workspace, error) {
	var workspaces []*entities.Workspace
	for _, id := range r.order {
		ws := r.workspaces[id]
		if intersects(ws.TeamIDs, teamIDs) {
			cp := *ws
			workspaces = append(workspaces, &cp)
		}
	}
	return workspaces, nil
}

func (r *memWorkspaceRepo) Update(_ context.Context, ws *entities.Workspace) error {
	if _, ok := r.workspaces[ws.ID]; !ok {
		return errNotFound
	}
	cp := *ws
	r.workspaces[ws.ID] = &cp
	return nil
}

func (r *memWorkspaceRepo) SetMetadataIDs(_ context.Context, workspaceID string, metadataIDs []string) error {
	ws, ok := r.workspaces[workspaceID]
	if !ok {
		return errNotFound
	}
	ws.MetadataIDs = metadataIDs
	return nil
}

func (r *memWorkspaceRepo) SetTeamIDs(_ context.Context, workspaceID string, teamIDs []string) error {
	ws, ok := r.workspaces[workspaceID]
	if !ok {
		return errNotFound
	}
	ws.TeamIDs = teamIDs
	return nil
}

func (r *memWorkspaceRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.workspaces[id]; !ok {
		return errNotFound
	}
	delete(r.workspaces, id)
	for i, wsID := range r.order {
		if wsID == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

type memDocRepo struct {
	docs       map[string]*entities.Document
	lastFilter *repositories.DocumentFilter
	searchHits []*entities.Document
}

func newMemDocRepo() *memDocRepo {
	return &memDocRepo{docs: map[string]*entities.Document{}}
}

func (r *memDocRepo) Create(_ context.Context, doc *entities.Document) error {
	cp := *doc
	r.docs[doc.ID] = &cp
	return nil
}

func (r *memDocRepo) GetByID(_ context.Context, id string) (*entities.Document, error) {
	doc, ok := r.docs[id]
	if !ok {
		return nil, errNotFound
	}
	cp := *doc
	return &cp, nil
}

func (r *memDocRepo) GetByPublicURL(_ context.Context, publicURL string) (*entities.Document, error) {
	for _, doc := range r.docs {
		if doc.PublicURL == publicURL {
			cp := *doc
			return &cp, nil
		}
	}
	return nil, errNotFound
}

func (r *memDocRepo) ListByWorkspace(_ context.Context, workspaceID string) ([]*entities.Document, error) {
	var docs []*entities.Document
	for _, doc := range r.docs {
		if doc.WorkspaceID == workspaceID {
			cp := *doc
			docs = append(docs, &cp)
		}
	}
	return docs, nil
}

func (r *memDocRepo) Search(_ context.Context, filter *repositories.DocumentFilter) ([]*entities.Document, error) {
	r.lastFilter = filter
	return r.searchHits, nil
}

func (r *memDocRepo) Update(_ context.Context, doc *entities.Document) error {
	if _, ok := r.docs[doc.ID]; !ok {
		return errNotFound
	}
	cp := *doc
	r.docs[doc.ID] = &cp
	return nil
}

func (r *memDocRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.docs[id]; !ok {
		return errNotFound
	}
	delete(r.docs, id)
	return nil
}

type memCache struct {
	lists         map[string][]*entities.Document
	invalidations []string
}

func newMemCache() *memCache {
	return &memCache{lists: map[string][]*entities.Document{}}
}

func (c *memCache) GetDocumentList(_ context.Context, workspaceID string) ([]*entities.Document, error) {
	docs, ok := c.lists[workspaceID]
	if !ok {
		return nil, errNotFound
	}
	return docs, nil
}

func (c *memCache) SetDocumentList(_ context.Context, workspaceID string, docs []*entities.Document) error {
	c.lists[workspaceID] = docs
	return nil
}

func (c *memCache) InvalidateWorkspace(_ context.Context, workspaceID string) error {
	delete(c.lists, workspaceID)
	c.invalidations = append(c.invalidations, workspaceID)
	return nil
}

var (
	_ repositories.UserRepository      = (*memUserRepo)(nil)
	_ repositories.APITokenRepository  = (*memTokenRepo)(nil)
	_ repositories.WorkspaceRepository = (*memWorkspaceRepo)(nil)
	_ repositories.DocumentRepository  = (*memDocRepo)(nil)
	_ CacheService                     = (*memCache)(nil)
)
