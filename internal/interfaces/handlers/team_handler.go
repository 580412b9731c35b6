package handlers

import (
	"net/http"

	"dochub-server/internal/domain/services"
	"dochub-server/internal/interfaces/dto"
	"dochub-server/pkg/logger"

	"github.com/gin-gonic/gin"
)

type TeamHandler struct {
	teamSvc *services.TeamService
}

func NewTeamHandler(teamSvc *services.TeamService) *TeamHandler {
	return &TeamHandler{teamSvc: teamSvc}
}

func (h *TeamHandler) List(c *gin.Context) {
	teams, err := h.teamSvc.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respondWithSuccess(c, teams)
}

func (h *TeamHandler) Create(c *gin.Context) {
	var req dto.TeamCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, 400, err.Error())
		return
	}

	team, err := h.teamSvc.Create(c.Request.Context(), req.Name, req.Description, req.UserIDs)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	logger.AdminAction(sessionUser(c).ID, "CREATE_TEAM", team.ID, c.ClientIP())
	respondCreated(c, team)
}

func (h *TeamHandler) Update(c *gin.Context) {
	var req dto.TeamUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, 400, err.Error())
		return
	}

	team, err := h.teamSvc.Update(c.Request.Context(), c.Param("id"), req.Name, req.Description, req.UserIDs)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	logger.AdminAction(sessionUser(c).ID, "UPDATE_TEAM", team.ID, c.ClientIP())
	respondWithSuccess(c, team)
}

func (h *TeamHandler) Delete(c *gin.Context) {
	teamID := c.Param("id")

	if err := h.teamSvc.Delete(c.Request.Context(), teamID); err != nil {
		handleServiceError(c, err)
		return
	}

	logger.AdminAction(sessionUser(c).ID, "DELETE_TEAM", teamID, c.ClientIP())
	respondWithSuccess(c, dto.MessageResponse{Message: "Team deleted"})
}
