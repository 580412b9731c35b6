package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dochub-server/internal/domain/entities"
	"dochub-server/internal/interfaces/dto"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermissionsEndpoint(t *testing.T) {
	handler := NewTokenHandler(nil)

	r := gin.New()
	r.GET("/api-tokens/permissions", handler.Permissions)

	w := doRequest(r, http.MethodGet, "/api-tokens/permissions")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data dto.PermissionListResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.Len(t, resp.Data.Permissions, len(entities.AllPermissions))

	byValue := map[entities.Permission]string{}
	for _, opt := range resp.Data.Permissions {
		byValue[opt.Value] = opt.Label
	}
	assert.Equal(t, "Read documents", byValue[entities.PermDocumentsRead])
	assert.Equal(t, "Search documents", byValue[entities.PermDocumentsSearch])
	assert.Equal(t, "Read workspaces", byValue[entities.PermWorkspacesRead])
}

func TestTokenUpdateRejectsPermissionChange(t *testing.T) {
	handler := NewTokenHandler(nil)

	r := gin.New()
	r.PUT("/api-tokens/:id", handler.Update)

	body := `{"name":"renamed","permissions":["documents:read"]}`
	req := httptest.NewRequest(http.MethodPut, "/api-tokens/tk-1", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "permissions are immutable")
}
