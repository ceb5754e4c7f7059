package controllers

import (
	"fmt"
	"net/http"

	"itdocsapi/pkg/apperr"
	"itdocsapi/pkg/logger"
	"itdocsapi/services/dto"
	"itdocsapi/utils"

	"github.com/gin-gonic/gin"
)

// listAccounts lists API accounts
// @Summary List accounts
// @Tags Accounts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.AccountView
// @Router /accounts [get]
func listAccounts(c *gin.Context) {
	accounts, err := authSrv.ListAccounts(c.Request.Context())
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	utils.JSONResponse(c, http.StatusOK, accounts)
}

// createAccount registers an API account
// @Summary Create account
// @Tags Accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param account body dto.AccountCreateRequest true "Account"
// @Success 201 {object} dto.AccountView
// @Failure 400 {object} StandardErrorResponse "Validation error"
// @Failure 409 {object} StandardErrorResponse "Username already used"
// @Failure 422 {object} StandardErrorResponse "Unknown group"
// @Router /accounts [post]
func createAccount(c *gin.Context) {
	var req dto.AccountCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, apperr.Validation("", "invalid request body: %v", err))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	account, err := authSrv.CreateAccount(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	logger.Infof("Account %s created by %s", account.Username, c.GetString(utils.ContextAccountKey))
	utils.JSONResponse(c, http.StatusCreated, account)
}

// getAccount returns one account
// @Summary Get account
// @Tags Accounts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Success 200 {object} dto.AccountView
// @Failure 404 {object} StandardErrorResponse "Account not found"
// @Router /accounts/{id} [get]
func getAccount(c *gin.Context) {
	id, err := utils.ParseID("id", c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	account, err := authSrv.GetAccount(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	utils.JSONResponse(c, http.StatusOK, account)
}

// updateAccount replaces an account
// @Summary Update account
// @Description Replaces username, email, active flag and groups. An empty password keeps the current one.
// @Tags Accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Param account body dto.AccountUpdateRequest true "Account"
// @Success 200 {object} dto.AccountView
// @Failure 400 {object} StandardErrorResponse "Validation error"
// @Failure 404 {object} StandardErrorResponse "Account not found"
// @Failure 409 {object} StandardErrorResponse "Username already used"
// @Failure 422 {object} StandardErrorResponse "Unknown group"
// @Router /accounts/{id} [put]
func updateAccount(c *gin.Context) {
	id, err := utils.ParseID("id", c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	var req dto.AccountUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, apperr.Validation("", "invalid request body: %v", err))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	account, err := authSrv.UpdateAccount(c.Request.Context(), id, req)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	utils.JSONResponse(c, http.StatusOK, account)
}

// deleteAccount removes an account
// @Summary Delete account
// @Tags Accounts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} StandardErrorResponse "Account not found"
// @Router /accounts/{id} [delete]
func deleteAccount(c *gin.Context) {
	id, err := utils.ParseID("id", c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	if err := authSrv.DeleteAccount(c.Request.Context(), id); err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	logger.Infof("Account id=%d deleted by %s", id, c.GetString(utils.ContextAccountKey))
	utils.JSONResponse(c, http.StatusOK, gin.H{
		"message": fmt.Sprintf("account id=%d was deleted successfully", id),
	})
}

// listAccountGroups lists account groups
// @Summary List account groups
// @Tags Accounts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.AccountGroup
// @Router /account-groups [get]
func listAccountGroups(c *gin.Context) {
	groups, err := authSrv.ListGroups(c.Request.Context())
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	utils.JSONResponse(c, http.StatusOK, groups)
}

// createAccountGroup creates an account group
// @Summary Create account group
// @Tags Accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param group body dto.AccountGroupCreateRequest true "Group"
// @Success 201 {object} models.AccountGroup
// @Failure 409 {object} StandardErrorResponse "Name already used"
// @Router /account-groups [post]
func createAccountGroup(c *gin.Context) {
	var req dto.AccountGroupCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, apperr.Validation("", "invalid request body: %v", err))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	group, err := authSrv.CreateGroup(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	utils.JSONResponse(c, http.StatusCreated, group)
}

// getAccountGroup returns one account group
// @Summary Get account group
// @Tags Accounts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Success 200 {object} models.AccountGroup
// @Failure 404 {object} StandardErrorResponse "Group not found"
// @Router /account-groups/{id} [get]
func getAccountGroup(c *gin.Context) {
	id, err := utils.ParseID("id", c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	group, err := authSrv.GetGroup(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	utils.JSONResponse(c, http.StatusOK, group)
}

// updateAccountGroup renames an account group
// @Summary Update account group
// @Tags Accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Param group body dto.AccountGroupCreateRequest true "Group"
// @Success 200 {object} models.AccountGroup
// @Failure 404 {object} StandardErrorResponse "Group not found"
// @Failure 409 {object} StandardErrorResponse "Name already used"
// @Router /account-groups/{id} [put]
func updateAccountGroup(c *gin.Context) {
	id, err := utils.ParseID("id", c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	var req dto.AccountGroupCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, apperr.Validation("", "invalid request body: %v", err))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	group, err := authSrv.UpdateGroup(c.Request.Context(), id, req)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	utils.JSONResponse(c, http.StatusOK, group)
}

// deleteAccountGroup removes an account group. Its members lose the membership.
// @Summary Delete account group
// @Tags Accounts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} StandardErrorResponse "Group not found"
// @Router /account-groups/{id} [delete]
func deleteAccountGroup(c *gin.Context) {
	id, err := utils.ParseID("id", c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	if err := authSrv.DeleteGroup(c.Request.Context(), id); err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	utils.JSONResponse(c, http.StatusOK, gin.H{
		"message": fmt.Sprintf("account group id=%d was deleted successfully", id),
	})
}

// RegisterAccountRoutes registers account management endpoints.
func RegisterAccountRoutes(rg *gin.RouterGroup) {
	accounts := rg.Group("/accounts")
	{
		accounts.GET("", listAccounts)
		accounts.POST("", createAccount)
		accounts.GET("/:id", getAccount)
		accounts.PUT("/:id", updateAccount)
		accounts.DELETE("/:id", deleteAccount)
	}

	groups := rg.Group("/account-groups")
	{
		groups.GET("", listAccountGroups)
		groups.POST("", createAccountGroup)
		groups.GET("/:id", getAccountGroup)
		groups.PUT("/:id", updateAccountGroup)
		groups.DELETE("/:id", deleteAccountGroup)
	}
}
