package controllers

import (
	"itdocsapi/utils"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter builds the HTTP router. Every service must be set beforehand.
// Only /healthz, /swagger and /api/auth are reachable without a bearer token.
func SetupRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), utils.LoggerMiddleware())
	RegisterHealthRoutes(router)

	api := router.Group("/api")
	{
		RegisterAuthRoutes(api)

		secured := api.Group("", AuthMiddleware())
		{
			RegisterClientRoutes(secured)
			RegisterScriptRoutes(secured)
			RegisterMetadataRoutes(secured)
			RegisterAccountRoutes(secured)
			RegisterEntityRoutes(secured)
		}
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	return router
}
