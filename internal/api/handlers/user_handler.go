package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/llvasconcellos/devconnector/internal/services"
	"github.com/llvasconcellos/devconnector/internal/utils"
	"github.com/llvasconcellos/devconnector/internal/validation"
)

type UserHandler struct {
	svc services.UserService
}

func NewUserHandler(svc services.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) Test(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"msg": "Users works"})
}

func (h *UserHandler) Register(c *gin.Context) {
	var in validation.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "UserHandler.Register", "invalid request body", err))
		return
	}

	u, err := h.svc.Register(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, u)
}

type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

func (h *UserHandler) Login(c *gin.Context) {
	var in validation.LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "UserHandler.Login", "invalid request body", err))
		return
	}

	tok, err := h.svc.Authenticate(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Success: true, Token: tok})
}

// Current echoes the identity decoded from the bearer token.
func (h *UserHandler) Current(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     id.ID.Hex(),
		"name":   id.Name,
		"avatar": id.Avatar,
	})
}
