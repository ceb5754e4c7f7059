package controllers

import (
	"net/http"

	"itdocsapi/services"
	"itdocsapi/utils"

	"github.com/gin-gonic/gin"
)

var metadataSrv services.MetadataService

// SetMetadataService initializes the metadata service instance.
func SetMetadataService(s services.MetadataService) {
	metadataSrv = s
}

// getChoices returns every enumeration
// @Summary List enumerations
// @Description Returns every choice set with its values and display labels, including script languages and styles
// @Tags Metadata
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string][]models.Choice
// @Router /choices [get]
func getChoices(c *gin.Context) {
	utils.JSONResponse(c, http.StatusOK, metadataSrv.Choices())
}

// getSchema describes the registered entities
// @Summary Describe entities
// @Description Lists every entity with its path, relations, delete policies, natural keys and sensitive fields
// @Tags Metadata
// @Produce json
// @Security BearerAuth
// @Success 200 {array} schema.EntityInfo
// @Router /schema [get]
func getSchema(c *gin.Context) {
	utils.JSONResponse(c, http.StatusOK, metadataSrv.Schema())
}

// RegisterMetadataRoutes registers the metadata endpoints.
func RegisterMetadataRoutes(rg *gin.RouterGroup) {
	rg.GET("/choices", getChoices)
	rg.GET("/schema", getSchema)
}
