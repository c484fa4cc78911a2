package v1

import (
	"net/http"

	"github.com/estatehub-api/dto"
	"github.com/estatehub-api/services"
	"github.com/gin-gonic/gin"
)

// PropertyController handles property listing endpoints
type PropertyController struct {
	propertyService *services.PropertyService
}

// NewPropertyController creates a new property controller
func NewPropertyController(propertyService *services.PropertyService) *PropertyController {
	return &PropertyController{propertyService: propertyService}
}

// RegisterRoutes registers the public and admin property routes
func (ctl *PropertyController) RegisterRoutes(public, admin *gin.RouterGroup) {
	properties := public.Group("/properties")
	{
		properties.GET("", ctl.ListProperties)
		properties.GET("/:id", ctl.GetProperty)
	}

	adminProperties := admin.Group("/properties")
	{
		adminProperties.POST("", ctl.CreateProperty)
		adminProperties.PUT("/:id", ctl.UpdateProperty)
		adminProperties.PATCH("/:id/status", ctl.UpdatePropertyStatus)
		adminProperties.DELETE("/:id", ctl.DeleteProperty)
	}
}

// ListProperties returns a page of properties, newest first
func (ctl *PropertyController) ListProperties(c *gin.Context) {
	var query dto.PropertyListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := ctl.propertyService.List(c.Request.Context(), query.Status, query.Page, query.Limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, resp)
}

// GetProperty returns one property
func (ctl *PropertyController) GetProperty(c *gin.Context) {
	property, err := ctl.propertyService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, property)
}

// CreateProperty adds a listing
func (ctl *PropertyController) CreateProperty(c *gin.Context) {
	var req dto.PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	property, err := ctl.propertyService.Create(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, property)
}

// UpdateProperty replaces a listing
func (ctl *PropertyController) UpdateProperty(c *gin.Context) {
	var req dto.PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	property, err := ctl.propertyService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, property)
}

// UpdatePropertyStatus marks a listing available or sold
func (ctl *PropertyController) UpdatePropertyStatus(c *gin.Context) {
	var req dto.PropertyStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	property, err := ctl.propertyService.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, property)
}

// DeleteProperty removes a listing and its images
func (ctl *PropertyController) DeleteProperty(c *gin.Context) {
	if err := ctl.propertyService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"id": c.Param("id")})
}
