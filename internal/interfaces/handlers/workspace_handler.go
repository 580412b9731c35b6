package handlers

import (
	"net/http"

	"dochub-server/internal/domain/services"
	"dochub-server/internal/interfaces/dto"
	"dochub-server/pkg/logger"

	"github.com/gin-gonic/gin"
)

type WorkspaceHandler struct {
	wsSvc *services.WorkspaceService
}

func NewWorkspaceHandler(wsSvc *services.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{wsSvc: wsSvc}
}

func (h *WorkspaceHandler) List(c *gin.Context) {
	workspaces, err := h.wsSvc.List(c.Request.Context(), principalFromContext(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respondWithSuccess(c, workspaces)
}

func (h *WorkspaceHandler) Create(c *gin.Context) {
	var req dto.WorkspaceCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, 400, err.Error())
		return
	}

	ws, err := h.wsSvc.Create(c.Request.Context(), req.Name, req.Description, req.MetadataIDs, req.TeamIDs)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	logger.AdminAction(sessionUser(c).ID, "CREATE_WORKSPACE", ws.ID, c.ClientIP())
	respondCreated(c, ws)
}

func (h *WorkspaceHandler) Update(c *gin.Context) {
	var req dto.WorkspaceUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, 400, err.Error())
		return
	}

	ws, err := h.wsSvc.Update(c.Request.Context(), c.Param("id"), req.Name, req.Description, req.MetadataIDs, req.TeamIDs)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	logger.AdminAction(sessionUser(c).ID, "UPDATE_WORKSPACE", ws.ID, c.ClientIP())
	respondWithSuccess(c, ws)
}

func (h *WorkspaceHandler) Delete(c *gin.Context) {
	workspaceID := c.Param("id")

	if err := h.wsSvc.Delete(c.Request.Context(), workspaceID); err != nil {
		handleServiceError(c, err)
		return
	}

	logger.AdminAction(sessionUser(c).ID, "DELETE_WORKSPACE", workspaceID, c.ClientIP())
	respondWithSuccess(c, dto.MessageResponse{Message: "Workspace deleted"})
}
