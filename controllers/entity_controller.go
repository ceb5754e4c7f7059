package controllers

import (
	"fmt"
	"net/http"

	"itdocsapi/pkg/apperr"
	"itdocsapi/pkg/logger"
	"itdocsapi/schema"
	"itdocsapi/services"
	"itdocsapi/utils"

	"github.com/gin-gonic/gin"
)

var entitySrv services.EntityService

// SetEntityService initializes the generic entity service instance.
// Must be called before RegisterEntityRoutes.
func SetEntityService(s services.EntityService) {
	entitySrv = s
}

// RegisterEntityRoutes registers the CRUD endpoints of every registered entity
// under its path. Abstract bases are read-only and also expose /:id/detail.
func RegisterEntityRoutes(rg *gin.RouterGroup) {
	for _, e := range entitySrv.Registry().Entities() {
		g := rg.Group("/" + e.Path)
		g.GET("", listEntities(e))
		g.GET("/:id", getEntity(e))
		g.DELETE("/:id", deleteEntity(e))
		if e.Abstract {
			g.GET("/:id/detail", getEntityDetail(e))
			continue
		}
		g.POST("", createEntity(e))
		g.PUT("/:id", updateEntity(e))
	}
}

// listEntities lists the rows of an entity
// @Summary List entities
// @Description Lists every row of the entity exposed under path. Relation columns can be used as equality filters, e.g. ?site_id=3
// @Tags Entities
// @Produce json
// @Security BearerAuth
// @Param path path string true "Entity path, see /api/schema"
// @Success 200 {array} EntityObject
// @Failure 400 {object} StandardErrorResponse "Unknown filter or invalid id"
// @Failure 401 {object} StandardErrorResponse "Missing or invalid token"
// @Router /{path} [get]
func listEntities(e *schema.Entity) gin.HandlerFunc {
	return func(c *gin.Context) {
		filters := make(map[string]uint)
		for key, values := range c.Request.URL.Query() {
			if len(values) == 0 {
				continue
			}
			id, err := utils.ParseID(key, values[len(values)-1])
			if err != nil {
				utils.ErrorResponse(c, err)
				return
			}
			filters[key] = id
		}

		items, err := entitySrv.List(c.Request.Context(), e, filters)
		if err != nil {
			utils.ErrorResponse(c, err)
			return
		}
		logger.Debugf("Listed %d %s rows", len(items), e.Name)
		utils.JSONResponse(c, http.StatusOK, items)
	}
}

// getEntity returns one row
// @Summary Get entity
// @Tags Entities
// @Produce json
// @Security BearerAuth
// @Param path path string true "Entity path"
// @Param id path int true "Row ID"
// @Success 200 {object} EntityObject
// @Failure 400 {object} StandardErrorResponse "Invalid id"
// @Failure 404 {object} StandardErrorResponse "Row not found"
// @Router /{path}/{id} [get]
func getEntity(e *schema.Entity) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := utils.ParseID("id", c.Param("id"))
		if err != nil {
			utils.ErrorResponse(c, err)
			return
		}
		obj, err := entitySrv.Get(c.Request.Context(), e, id)
		if err != nil {
			utils.ErrorResponse(c, err)
			return
		}
		utils.JSONResponse(c, http.StatusOK, obj)
	}
}

// getEntityDetail resolves an abstract row to its specialization
// @Summary Get concrete specialization
// @Description Returns a service or hardware row as the specialization recorded in its kind
// @Tags Entities
// @Produce json
// @Security BearerAuth
// @Param path path string true "Abstract entity path (services, hardware)"
// @Param id path int true "Row ID"
// @Success 200 {object} ServiceDetailResponse
// @Failure 404 {object} StandardErrorResponse "Row not found"
// @Router /{path}/{id}/detail [get]
func getEntityDetail(e *schema.Entity) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := utils.ParseID("id", c.Param("id"))
		if err != nil {
			utils.ErrorResponse(c, err)
			return
		}
		concrete, obj, err := entitySrv.Detail(c.Request.Context(), e, id)
		if err != nil {
			utils.ErrorResponse(c, err)
			return
		}
		utils.JSONResponse(c, http.StatusOK, gin.H{
			"entity": concrete.Name,
			"data":   obj,
		})
	}
}

// createEntity inserts a row
// @Summary Create entity
// @Description Validates and inserts a row. Specializations also insert their base rows.
// @Tags Entities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param path path string true "Entity path"
// @Param body body EntityObject true "Entity fields"
// @Success 201 {object} EntityObject
// @Failure 400 {object} StandardErrorResponse "Validation error"
// @Failure 409 {object} StandardErrorResponse "Natural key already used"
// @Failure 422 {object} StandardErrorResponse "Referenced row does not exist"
// @Router /{path} [post]
func createEntity(e *schema.Entity) gin.HandlerFunc {
	return func(c *gin.Context) {
		obj := e.New()
		if err := bindEntity(c, obj); err != nil {
			utils.ErrorResponse(c, err)
			return
		}
		created, err := entitySrv.Create(c.Request.Context(), e, obj)
		if err != nil {
			logger.Warnf("Failed to create %s: %v", e.Name, err)
			utils.ErrorResponse(c, err)
			return
		}
		utils.JSONResponse(c, http.StatusCreated, created)
	}
}

// updateEntity replaces a row
// @Summary Update entity
// @Description Replaces every field of a row. Omitted fields are reset to their zero value.
// @Tags Entities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param path path string true "Entity path"
// @Param id path int true "Row ID"
// @Param body body EntityObject true "Entity fields"
// @Success 200 {object} EntityObject
// @Failure 400 {object} StandardErrorResponse "Validation error"
// @Failure 404 {object} StandardErrorResponse "Row not found"
// @Failure 409 {object} StandardErrorResponse "Natural key already used"
// @Failure 422 {object} StandardErrorResponse "Referenced row does not exist"
// @Router /{path}/{id} [put]
func updateEntity(e *schema.Entity) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := utils.ParseID("id", c.Param("id"))
		if err != nil {
			utils.ErrorResponse(c, err)
			return
		}
		obj := e.New()
		if err := bindEntity(c, obj); err != nil {
			utils.ErrorResponse(c, err)
			return
		}
		updated, err := entitySrv.Update(c.Request.Context(), e, id, obj)
		if err != nil {
			utils.ErrorResponse(c, err)
			return
		}
		utils.JSONResponse(c, http.StatusOK, updated)
	}
}

// deleteEntity deletes a row and its dependents
// @Summary Delete entity
// @Description Deletes a row. Dependent rows are deleted or have their reference cleared, per relation.
// @Tags Entities
// @Produce json
// @Security BearerAuth
// @Param path path string true "Entity path"
// @Param id path int true "Row ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} StandardErrorResponse "Row not found"
// @Failure 409 {object} StandardErrorResponse "Row is still referenced"
// @Router /{path}/{id} [delete]
func deleteEntity(e *schema.Entity) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := utils.ParseID("id", c.Param("id"))
		if err != nil {
			utils.ErrorResponse(c, err)
			return
		}
		if err := entitySrv.Delete(c.Request.Context(), e, id); err != nil {
			logger.Errorf("Failed to delete %s id=%d: %v", e.Name, id, err)
			utils.ErrorResponse(c, err)
			return
		}
		utils.JSONResponse(c, http.StatusOK, gin.H{
			"message": fmt.Sprintf("%s id=%d was deleted successfully", e.Name, id),
		})
	}
}

func bindEntity(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		return apperr.Validation("", "invalid request body: %v", err)
	}
	return nil
}
