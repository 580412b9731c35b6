package handlers

import (
	"net/http"

	"dochub-server/internal/domain/services"
	"dochub-server/internal/interfaces/dto"
	"dochub-server/pkg/logger"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userSvc *services.UserService
}

func NewUserHandler(userSvc *services.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userSvc.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respondWithSuccess(c, users)
}

func (h *UserHandler) Create(c *gin.Context) {
	var req dto.UserCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, 400, err.Error())
		return
	}

	user, err := h.userSvc.Create(c.Request.Context(), req.Email, req.Password, req.Role, req.TeamIDs)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	logger.AdminAction(sessionUser(c).ID, "CREATE_USER", user.Email, c.ClientIP())
	respondCreated(c, user)
}

func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, 400, err.Error())
		return
	}

	user, err := h.userSvc.Update(c.Request.Context(), c.Param("id"), req.Email, req.Role, req.TeamIDs)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	logger.AdminAction(sessionUser(c).ID, "UPDATE_USER", user.ID, c.ClientIP())
	respondWithSuccess(c, user)
}

func (h *UserHandler) Delete(c *gin.Context) {
	actor := sessionUser(c)
	userID := c.Param("id")

	if err := h.userSvc.Delete(c.Request.Context(), userID, actor.ID); err != nil {
		handleServiceError(c, err)
		return
	}

	logger.AdminAction(actor.ID, "DELETE_USER", userID, c.ClientIP())
	respondWithSuccess(c, dto.MessageResponse{Message: "User deleted"})
}
