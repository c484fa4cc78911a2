package v1

import (
	"net/http"

	"github.com/estatehub-api/dto"
	"github.com/estatehub-api/services"
	"github.com/gin-gonic/gin"
)

// LeadController handles inquiries from the public site and the admin
// lead pipeline
type LeadController struct {
	leadService *services.LeadService
}

// NewLeadController creates a new lead controller
func NewLeadController(leadService *services.LeadService) *LeadController {
	return &LeadController{leadService: leadService}
}

// RegisterRoutes registers lead routes. limiter guards the public form.
func (ctl *LeadController) RegisterRoutes(public, admin *gin.RouterGroup, limiter gin.HandlerFunc) {
	public.POST("/leads", limiter, ctl.CreateLead)

	leads := admin.Group("/leads")
	{
		leads.GET("", ctl.ListLeads)
		leads.GET("/:id", ctl.GetLead)
		leads.PATCH("/:id/status", ctl.UpdateLeadStatus)
		leads.DELETE("/:id", ctl.DeleteLead)
	}
}

// CreateLead records an inquiry
func (ctl *LeadController) CreateLead(c *gin.Context) {
	var req dto.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	lead, err := ctl.leadService.Create(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, lead)
}

// ListLeads returns a page of leads
func (ctl *LeadController) ListLeads(c *gin.Context) {
	var query dto.LeadListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := ctl.leadService.List(c.Request.Context(), query.Status, query.Page, query.Limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, resp)
}

// GetLead returns a lead with its property and reminder
func (ctl *LeadController) GetLead(c *gin.Context) {
	lead, err := ctl.leadService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, lead)
}

// UpdateLeadStatus moves a lead through the pipeline
func (ctl *LeadController) UpdateLeadStatus(c *gin.Context) {
	var req dto.LeadStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	lead, err := ctl.leadService.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, lead)
}

// DeleteLead removes a lead and its reminder
func (ctl *LeadController) DeleteLead(c *gin.Context) {
	if err := ctl.leadService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"id": c.Param("id")})
}
