package services

import (
	"context"
	"strings"
	"testing"

	"dochub-server/internal/domain/entities"
	"dochub-server/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPITokenCreate(t *testing.T) {
	tokenRepo := newMemTokenRepo()
	svc := NewAPITokenService(tokenRepo)

	t.Run("secret is disclosed once and only a commitment is stored", func(t *testing.T) {
		token, secret, err := svc.Create(context.Background(), "admin-1", "ci-pipeline", "read-only access for CI",
			[]entities.Permission{entities.PermDocumentsRead, entities.PermDocumentsSearch})
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(secret, entities.TokenPrefix))
		assert.Len(t, secret, len(entities.TokenPrefix)+64)

		assert.Equal(t, HashAPIToken(secret), token.TokenHash)
		assert.NotContains(t, token.TokenHash, secret)
		assert.Equal(t, "****"+secret[len(secret)-8:], token.TokenPreview)
		require.NotNil(t, token.Description)
		assert.Equal(t, "read-only access for CI", *token.Description)
		assert.Nil(t, token.LastUsed)

		stored, err := tokenRepo.GetByHash(context.Background(), HashAPIToken(secret))
		require.NoError(t, err)
		assert.Equal(t, token.ID, stored.ID)
	})

	t.Run("secrets are unique", func(t *testing.T) {
		_, first, err := svc.Create(context.Background(), "admin-1", "token-a", "", []entities.Permission{entities.PermDocumentsRead})
		require.NoError(t, err)
		_, second, err := svc.Create(context.Background(), "admin-1", "token-b", "", []entities.Permission{entities.PermDocumentsRead})
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})

	t.Run("duplicate name", func(t *testing.T) {
		_, _, err := svc.Create(context.Background(), "admin-1", "ci-pipeline", "",
			[]entities.Permission{entities.PermDocumentsRead})
		var conflict *errors.ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, "token name already exists", conflict.Message)
	})

	t.Run("empty permissions", func(t *testing.T) {
		_, _, err := svc.Create(context.Background(), "admin-1", "no-perms", "", nil)
		var badRequest *errors.BadRequestError
		require.ErrorAs(t, err, &badRequest)
		assert.Equal(t, "at least one permission is required", badRequest.Message)
	})

	t.Run("unknown permission", func(t *testing.T) {
		_, _, err := svc.Create(context.Background(), "admin-1", "bad-perm", "",
			[]entities.Permission{"documents:admin"})
		var badRequest *errors.BadRequestError
		require.ErrorAs(t, err, &badRequest)
		assert.Equal(t, "unknown permission: documents:admin", badRequest.Message)
	})

	t.Run("name too short", func(t *testing.T) {
		_, _, err := svc.Create(context.Background(), "admin-1", "ab", "",
			[]entities.Permission{entities.PermDocumentsRead})
		var badRequest *errors.BadRequestError
		assert.ErrorAs(t, err, &badRequest)
	})
}

func TestAPITokenUpdate(t *testing.T) {
	tokenRepo := newMemTokenRepo()
	svc := NewAPITokenService(tokenRepo)

	token, _, err := svc.Create(context.Background(), "admin-1", "ci-pipeline", "",
		[]entities.Permission{entities.PermDocumentsRead})
	require.NoError(t, err)

	t.Run("no fields", func(t *testing.T) {
		_, err := svc.Update(context.Background(), token.ID, nil, nil)
		var badRequest *errors.BadRequestError
		require.ErrorAs(t, err, &badRequest)
		assert.Equal(t, "no fields to update", badRequest.Message)
	})

	t.Run("rename keeps permissions and secret", func(t *testing.T) {
		name := "ci-pipeline-v2"
		updated, err := svc.Update(context.Background(), token.ID, &name, nil)
		require.NoError(t, err)
		assert.Equal(t, "ci-pipeline-v2", updated.Name)

		// Renaming never touches the grant or the secret commitment.
		assert.Equal(t, token.Permissions, updated.Permissions)
		assert.Equal(t, token.TokenHash, updated.TokenHash)
	})

	t.Run("rename to a taken name conflicts", func(t *testing.T) {
		other, _, err := svc.Create(context.Background(), "admin-1", "other-token", "",
			[]entities.Permission{entities.PermDocumentsRead})
		require.NoError(t, err)

		name := "ci-pipeline-v2"
		_, err = svc.Update(context.Background(), other.ID, &name, nil)
		var conflict *errors.ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, "token name already exists", conflict.Message)
	})

	t.Run("rename to the current name is a no-op", func(t *testing.T) {
		name := "ci-pipeline-v2"
		updated, err := svc.Update(context.Background(), token.ID, &name, nil)
		require.NoError(t, err)
		assert.Equal(t, "ci-pipeline-v2", updated.Name)
	})

	t.Run("unknown token", func(t *testing.T) {
		name := "x-y-z"
		_, err := svc.Update(context.Background(), "missing", &name, nil)
		var notFound *errors.NotFoundError
		assert.ErrorAs(t, err, &notFound)
	})
}

func TestAPITokenDelete(t *testing.T) {
	tokenRepo := newMemTokenRepo()
	svc := NewAPITokenService(tokenRepo)

	token, secret, err := svc.Create(context.Background(), "admin-1", "doomed", "",
		[]entities.Permission{entities.PermDocumentsRead})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), token.ID))

	_, err = tokenRepo.GetByHash(context.Background(), HashAPIToken(secret))
	assert.Error(t, err)

	var notFound *errors.NotFoundError
	assert.ErrorAs(t, svc.Delete(context.Background(), token.ID), &notFound)
}
