package controllers

import (
	"net/http"

	"itdocsapi/pkg/apperr"
	"itdocsapi/services"
	"itdocsapi/services/dto"
	"itdocsapi/utils"

	"github.com/gin-gonic/gin"
)

var authSrv services.AuthService

// SetAuthService initializes the account and token service instance.
func SetAuthService(s services.AuthService) {
	authSrv = s
}

// postLogin issues a bearer token
// @Summary Log in
// @Description Exchanges account credentials for a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Account credentials"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} StandardErrorResponse "Malformed request"
// @Failure 401 {object} StandardErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func postLogin(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, apperr.Validation("", "invalid request body: %v", err))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	token, err := authSrv.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	utils.JSONResponse(c, http.StatusOK, token)
}

// RegisterAuthRoutes registers the public authentication endpoints.
func RegisterAuthRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/login", postLogin)
	}
}

// AuthMiddleware requires a bearer token issued by the auth service.
func AuthMiddleware() gin.HandlerFunc {
	return utils.AuthMiddleware(authSrv)
}
