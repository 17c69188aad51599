package controllers

import (
	"time"

	"github.com/gin-gonic/gin"

	"studiocrm/internal/models/request_models"
	"studiocrm/internal/services"
	"studiocrm/pkg/middleware"
	"studiocrm/pkg/utils"
)

type AuthController struct {
	authService services.AuthServiceInterface
}

func NewAuthController(authService services.AuthServiceInterface) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// Login godoc
// @Summary Login
// @Description Authenticate an operator and return a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.LoginRequest true "Login payload"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /auth/login [post]
func (a *AuthController) Login(c *gin.Context) {
	var req request_models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := a.authService.Login(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Login successful")
}

// Logout godoc
// @Summary Logout
// @Description Revoke the bearer token used for this request
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /auth/logout [post]
func (a *AuthController) Logout(c *gin.Context) {
	expiresAt, _ := c.Get(middleware.CtxTokenExpiresAt)
	exp, _ := expiresAt.(time.Time)

	if err := a.authService.Logout(c.Request.Context(), c.GetString(middleware.CtxTokenID), exp); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Logged out")
}

func (a *AuthController) Me(c *gin.Context) {
	utils.RespondSuccess(c, gin.H{
		"id":    c.GetString(middleware.CtxUserID),
		"email": c.GetString(middleware.CtxEmail),
		"role":  c.GetString(middleware.CtxRole),
	}, "Current user")
}

// CreateUser godoc
// @Summary Create user
// @Description Create an operator account (admin only)
// @Tags Users
// @Accept json
// @Produce json
// @Param request body request_models.CreateUserRequest true "User payload"
// @Success 201 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /users [post]
func (a *AuthController) CreateUser(c *gin.Context) {
	var req request_models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := a.authService.CreateUser(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, user, "User created successfully")
}

func (a *AuthController) ListUsers(c *gin.Context) {
	users, err := a.authService.ListUsers(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, users, "Fetched users successfully")
}
