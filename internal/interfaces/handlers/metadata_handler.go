package handlers

import (
	"net/http"

	"dochub-server/internal/domain/services"
	"dochub-server/internal/interfaces/dto"
	"dochub-server/pkg/logger"

	"github.com/gin-gonic/gin"
)

type MetadataHandler struct {
	metaSvc *services.MetadataService
}

func NewMetadataHandler(metaSvc *services.MetadataService) *MetadataHandler {
	return &MetadataHandler{metaSvc: metaSvc}
}

func (h *MetadataHandler) List(c *gin.Context) {
	defs, err := h.metaSvc.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respondWithSuccess(c, defs)
}

func (h *MetadataHandler) Create(c *gin.Context) {
	var req dto.MetadataCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, 400, err.Error())
		return
	}

	visible := true
	if req.Visible != nil {
		visible = *req.Visible
	}

	def, err := h.metaSvc.Create(c.Request.Context(), req.Name, req.FieldType, visible, req.Options)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	logger.AdminAction(sessionUser(c).ID, "CREATE_METADATA", def.ID, c.ClientIP())
	respondCreated(c, def)
}

func (h *MetadataHandler) Update(c *gin.Context) {
	var req dto.MetadataUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, 400, err.Error())
		return
	}

	def, err := h.metaSvc.Update(c.Request.Context(), c.Param("id"), req.Name, req.FieldType, req.Visible, req.Options)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	logger.AdminAction(sessionUser(c).ID, "UPDATE_METADATA", def.ID, c.ClientIP())
	respondWithSuccess(c, def)
}

func (h *MetadataHandler) Delete(c *gin.Context) {
	metaID := c.Param("id")

	if err := h.metaSvc.Delete(c.Request.Context(), metaID); err != nil {
		handleServiceError(c, err)
		return
	}

	logger.AdminAction(sessionUser(c).ID, "DELETE_METADATA", metaID, c.ClientIP())
	respondWithSuccess(c, dto.MessageResponse{Message: "Metadata deleted"})
}
