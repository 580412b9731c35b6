package handlers

import (
	"net/http"
	"strings"
	"time"

	"dochub-server/internal/domain/entities"
	"dochub-server/internal/domain/services"
	"dochub-server/internal/interfaces/dto"
	"dochub-server/pkg/logger"

	"github.com/gin-gonic/gin"
)

type TokenHandler struct {
	tokenSvc *services.APITokenService
}

func NewTokenHandler(tokenSvc *services.APITokenService) *TokenHandler {
	return &TokenHandler{tokenSvc: tokenSvc}
}

func (h *TokenHandler) List(c *gin.Context) {
	tokens, err := h.tokenSvc.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respondWithSuccess(c, tokens)
}

func (h *TokenHandler) Create(c *gin.Context) {
	var req dto.TokenCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, 400, err.Error())
		return
	}

	actor := sessionUser(c)
	token, secret, err := h.tokenSvc.Create(c.Request.Context(), actor.ID, req.Name, req.Description, req.Permissions)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	logger.AdminAction(actor.ID, "CREATE_API_TOKEN", token.Name, c.ClientIP())
	respondCreated(c, dto.TokenCreateResponse{
		ID:          token.ID,
		Name:        token.Name,
		Description: token.Description,
		Permissions: token.Permissions,
		Token:       secret,
		CreatedAt:   token.CreatedAt.Format(time.RFC3339),
	})
}

func (h *TokenHandler) Update(c *gin.Context) {
	var req dto.TokenUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, 400, err.Error())
		return
	}
	if req.Permissions != nil {
		respondWithError(c, http.StatusBadRequest, 400, "permissions are immutable; issue a new token instead")
		return
	}

	token, err := h.tokenSvc.Update(c.Request.Context(), c.Param("id"), req.Name, req.Description)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	logger.AdminAction(sessionUser(c).ID, "UPDATE_API_TOKEN", token.ID, c.ClientIP())
	respondWithSuccess(c, token)
}

func (h *TokenHandler) Delete(c *gin.Context) {
	tokenID := c.Param("id")

	if err := h.tokenSvc.Delete(c.Request.Context(), tokenID); err != nil {
		handleServiceError(c, err)
		return
	}

	logger.AdminAction(sessionUser(c).ID, "DELETE_API_TOKEN", tokenID, c.ClientIP())
	respondWithSuccess(c, dto.MessageResponse{Message: "API token revoked"})
}

// Permissions lists every grantable permission with a display label, so
// clients never hardcode the enumeration.
func (h *TokenHandler) Permissions(c *gin.Context) {
	options := make([]dto.PermissionOption, 0, len(entities.AllPermissions))
	for _, perm := range entities.AllPermissions {
		options = append(options, dto.PermissionOption{
			Value: perm,
			Label: permissionLabel(perm),
		})
	}
	respondWithSuccess(c, dto.PermissionListResponse{Permissions: options})
}

func permissionLabel(perm entities.Permission) string {
	parts := strings.SplitN(string(perm), ":", 2)
	if len(parts) != 2 {
		return string(perm)
	}
	action := parts[1]
	if action != "" {
		action = strings.ToUpper(action[:1]) + action[1:]
	}
	return action + " " + parts[0]
}
