package v1

import (
	"net/http"

	"github.com/estatehub-api/dto"
	"github.com/estatehub-api/services"
	"github.com/gin-gonic/gin"
)

// GalleryController serves the services portfolio and its admin
type GalleryController struct {
	galleryService *services.GalleryService
}

// NewGalleryController creates a new gallery controller
func NewGalleryController(galleryService *services.GalleryService) *GalleryController {
	return &GalleryController{galleryService: galleryService}
}

// RegisterRoutes registers the public services pages and the admin
// category, item and project routes
func (ctl *GalleryController) RegisterRoutes(public, admin *gin.RouterGroup) {
	servicesGroup := public.Group("/services")
	{
		servicesGroup.GET("", ctl.ListServices)
		servicesGroup.GET("/:slug", ctl.GetService)
	}

	categories := admin.Group("/service-categories")
	{
		categories.GET("", ctl.ListCategories)
		categories.POST("", ctl.CreateCategory)
		categories.GET("/:id", ctl.GetCategory)
		categories.PUT("/:id", ctl.UpdateCategory)
		categories.DELETE("/:id", ctl.DeleteCategory)

		categories.GET("/:id/projects", ctl.ListProjects)
		categories.GET("/:id/projects/suggest", ctl.SuggestProjects)
		categories.PUT("/:id/projects/rename", ctl.RenameProject)
		categories.DELETE("/:id/projects", ctl.DeleteProject)
	}

	items := admin.Group("/gallery-items")
	{
		items.GET("", ctl.ListItems)
		items.POST("", ctl.CreateItem)
		items.PUT("/:id", ctl.UpdateItem)
		items.DELETE("/:id", ctl.DeleteItem)
	}
}

// ListServices returns the active categories
func (ctl *GalleryController) ListServices(c *gin.Context) {
	categories, err := ctl.galleryService.ListCategories(c.Request.Context(), true)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, categories)
}

// GetService returns an active category with its items and projects
func (ctl *GalleryController) GetService(c *gin.Context) {
	detail, err := ctl.galleryService.ServiceBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, detail)
}

// ListCategories returns every category, active or not
func (ctl *GalleryController) ListCategories(c *gin.Context) {
	categories, err := ctl.galleryService.ListCategories(c.Request.Context(), false)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, categories)
}

// GetCategory returns one category
func (ctl *GalleryController) GetCategory(c *gin.Context) {
	category, err := ctl.galleryService.GetCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, category)
}

// CreateCategory adds a category
func (ctl *GalleryController) CreateCategory(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	category, err := ctl.galleryService.CreateCategory(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, category)
}

// UpdateCategory replaces a category
func (ctl *GalleryController) UpdateCategory(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	category, err := ctl.galleryService.UpdateCategory(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, category)
}

// DeleteCategory removes a category and everything in it
func (ctl *GalleryController) DeleteCategory(c *gin.Context) {
	if err := ctl.galleryService.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"id": c.Param("id")})
}

// ListProjects returns the projects derived from a category's items
func (ctl *GalleryController) ListProjects(c *gin.Context) {
	projects, err := ctl.galleryService.Projects(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, projects)
}

// SuggestProjects returns existing project names matching ?q
func (ctl *GalleryController) SuggestProjects(c *gin.Context) {
	names, err := ctl.galleryService.SuggestProjects(c.Request.Context(), c.Param("id"), c.Query("q"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, names)
}

// RenameProject renames every item of a project
func (ctl *GalleryController) RenameProject(c *gin.Context) {
	var req dto.RenameProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	renamed, err := ctl.galleryService.RenameProject(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"updated": renamed})
}

// DeleteProject removes every item of the project in ?name
func (ctl *GalleryController) DeleteProject(c *gin.Context) {
	deleted, err := ctl.galleryService.DeleteProject(c.Request.Context(), c.Param("id"), c.Query("name"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"deleted": deleted})
}

// ListItems returns the items of the category in ?categoryId
func (ctl *GalleryController) ListItems(c *gin.Context) {
	categoryID := c.Query("categoryId")
	if categoryID == "" {
		respondError(c, http.StatusBadRequest, dto.ErrorCodeInvalidParameter, "categoryId is required", "categoryId")
		return
	}
	items, err := ctl.galleryService.ListItems(c.Request.Context(), categoryID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, items)
}

// CreateItem adds a gallery item
func (ctl *GalleryController) CreateItem(c *gin.Context) {
	var req dto.GalleryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	item, err := ctl.galleryService.CreateItem(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, item)
}

// UpdateItem replaces a gallery item
func (ctl *GalleryController) UpdateItem(c *gin.Context) {
	var req dto.GalleryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	item, err := ctl.galleryService.UpdateItem(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, item)
}

// DeleteItem removes a gallery item and its images
func (ctl *GalleryController) DeleteItem(c *gin.Context) {
	if err := ctl.galleryService.DeleteItem(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"id": c.Param("id")})
}
