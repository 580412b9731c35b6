package handlers

import (
	"net/http"

	"dochub-server/internal/domain/services"
	"dochub-server/internal/interfaces/dto"
	"dochub-server/pkg/logger"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authSvc *services.AuthService
}

func NewAuthHandler(authSvc *services.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, 400, err.Error())
		return
	}

	token, user, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		logger.AuthAttempt(req.Email, false, c.ClientIP())
		handleServiceError(c, err)
		return
	}
	logger.AuthAttempt(user.Email, true, c.ClientIP())

	respondWithSuccess(c, dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user,
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	respondWithSuccess(c, sessionUser(c))
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, 400, err.Error())
		return
	}

	user := sessionUser(c)
	if err := h.authSvc.ChangePassword(c.Request.Context(), user.ID, req.OldPassword, req.NewPassword); err != nil {
		handleServiceError(c, err)
		return
	}

	respondWithSuccess(c, dto.MessageResponse{Message: "Password changed"})
}
