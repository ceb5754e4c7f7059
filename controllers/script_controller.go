package controllers

import (
	"net/http"

	"itdocsapi/services"
	"itdocsapi/utils"

	"github.com/gin-gonic/gin"
)

var scriptSrv services.ScriptService

// SetScriptService initializes the script service instance.
func SetScriptService(s services.ScriptService) {
	scriptSrv = s
}

// getScriptView returns the flat representation of a script
// @Summary Get script view
// @Tags Scripts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Script ID"
// @Success 200 {object} dto.ScriptView
// @Failure 404 {object} StandardErrorResponse "Script not found"
// @Router /scripts/{id}/view [get]
func getScriptView(c *gin.Context) {
	id, err := utils.ParseID("id", c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	view, err := scriptSrv.View(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	utils.JSONResponse(c, http.StatusOK, view)
}

// getScriptHighlight renders a script as highlighted HTML
// @Summary Highlight script
// @Description Renders the script code as a standalone HTML page with its language and style
// @Tags Scripts
// @Produce html
// @Security BearerAuth
// @Param id path int true "Script ID"
// @Success 200 {string} string "HTML document"
// @Failure 404 {object} StandardErrorResponse "Script not found"
// @Router /scripts/{id}/highlight [get]
func getScriptHighlight(c *gin.Context) {
	id, err := utils.ParseID("id", c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	html, err := scriptSrv.Highlight(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// RegisterScriptRoutes registers the script renderings.
func RegisterScriptRoutes(rg *gin.RouterGroup) {
	scripts := rg.Group("/scripts")
	{
		scripts.GET("/:id/view", getScriptView)
		scripts.GET("/:id/highlight", getScriptHighlight)
	}
}
