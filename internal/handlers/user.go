package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dice-nft-backend/internal/models"
	"dice-nft-backend/internal/services"
)

type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) Register(c *gin.Context) {
	var req models.UserRequest
	if err := bindQueryAndBody(c, &req); err != nil {
		badRequest(c, err)
		return
	}

	user, created, err := h.users.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	message := "User updated"
	if created {
		message = "User created"
	}

	c.JSON(http.StatusOK, models.UserResponse{
		Success: true,
		Message: message,
		User:    user,
	})
}

func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.users.Get(c.Request.Context(), c.Param("wallet_address"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
