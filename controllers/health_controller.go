package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"itdocsapi/config"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var errNoDatabase = errors.New("database is not connected")

var healthDB *gorm.DB

// SetHealthDatabase overrides the connection checked by /healthz, which
// defaults to config.DB.
func SetHealthDatabase(db *gorm.DB) {
	healthDB = db
}

// getHealth reports whether the database answers
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /healthz [get]
func getHealth(c *gin.Context) {
	status := http.StatusOK
	body := HealthResponse{Status: "ok", Database: "ok"}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := pingDB(ctx); err != nil {
		status = http.StatusServiceUnavailable
		body = HealthResponse{Status: "degraded", Database: err.Error()}
	}
	c.JSON(status, body)
}

func pingDB(ctx context.Context) error {
	db := healthDB
	if db == nil {
		db = config.DB
	}
	if db == nil {
		return errNoDatabase
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// RegisterHealthRoutes registers the unauthenticated health endpoint.
func RegisterHealthRoutes(r gin.IRoutes) {
	r.GET("/healthz", getHealth)
}
