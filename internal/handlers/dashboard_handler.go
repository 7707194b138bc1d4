package handlers

import (
	"net/http"

	"artbook_backend/internal/middleware"
	"artbook_backend/internal/models"
	"artbook_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	*BaseHandler
	dashboardService services.DashboardService
}

func NewDashboardHandler(base *BaseHandler, dashboardService services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler:      base,
		dashboardService: dashboardService,
	}
}

func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	dashboard := rg.Group("/dashboard")
	dashboard.Use(middleware.AuthMiddleware())
	{
		client := dashboard.Group("/client")
		client.Use(middleware.RequireRoles(models.UserRoleClient))
		{
			client.GET("", h.ClientDashboard)
			client.GET("/trends", h.ClientTrends)
		}

		artist := dashboard.Group("/artist")
		artist.Use(middleware.RequireRoles(models.UserRoleArtist))
		{
			artist.GET("", h.ArtistDashboard)
			artist.GET("/trends", h.ArtistTrends)
		}
	}
}

func (h *DashboardHandler) ClientDashboard(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	result, err := h.dashboardService.ClientDashboard(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *DashboardHandler) ArtistDashboard(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	result, err := h.dashboardService.ArtistDashboard(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *DashboardHandler) ClientTrends(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	result, err := h.dashboardService.ClientTrends(userID, ParseQueryInt(c, "months", 6))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *DashboardHandler) ArtistTrends(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	result, err := h.dashboardService.ArtistTrends(userID, ParseQueryInt(c, "months", 6))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
