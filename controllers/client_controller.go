package controllers

import (
	"net/http"

	"itdocsapi/services"
	"itdocsapi/utils"

	"github.com/gin-gonic/gin"
)

var clientSrv services.ClientService

// SetClientService initializes the client view service instance.
func SetClientService(s services.ClientService) {
	clientSrv = s
}

// getClientTree returns a client with its sites and addresses
// @Summary Get client tree
// @Description Returns a client with its sites, each with its addresses
// @Tags Clients
// @Produce json
// @Security BearerAuth
// @Param id path int true "Client ID"
// @Success 200 {object} dto.ClientView
// @Failure 400 {object} StandardErrorResponse "Invalid client ID"
// @Failure 404 {object} StandardErrorResponse "Client not found"
// @Router /clients/{id}/tree [get]
func getClientTree(c *gin.Context) {
	id, err := utils.ParseID("id", c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	view, err := clientSrv.Tree(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	utils.JSONResponse(c, http.StatusOK, view)
}

// listClientTrees returns every client as a nested view
// @Summary List client trees
// @Tags Clients
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.ClientView
// @Router /clients/tree [get]
func listClientTrees(c *gin.Context) {
	views, err := clientSrv.Trees(c.Request.Context())
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	utils.JSONResponse(c, http.StatusOK, views)
}

// RegisterClientRoutes registers the nested client views.
func RegisterClientRoutes(rg *gin.RouterGroup) {
	clients := rg.Group("/clients")
	{
		clients.GET("/tree", listClientTrees)
		clients.GET("/:id/tree", getClientTree)
	}
}
