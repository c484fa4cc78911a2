package v1

import (
	"net/http"

	"github.com/estatehub-api/services"
	"github.com/gin-gonic/gin"
)

// SearchController serves the public property search
type SearchController struct {
	searchService *services.SearchService
}

// NewSearchController creates a new search controller
func NewSearchController(searchService *services.SearchService) *SearchController {
	return &SearchController{searchService: searchService}
}

// RegisterRoutes registers search routes
func (ctl *SearchController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/search", ctl.Search)
}

// Search handles GET /search
func (ctl *SearchController) Search(c *gin.Context) {
	req, err := services.ParseSearchRequest(c.Request.URL.Query())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp, err := ctl.searchService.Search(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, http.StatusOK, resp)
}
