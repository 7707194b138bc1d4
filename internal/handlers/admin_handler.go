package handlers

import (
	"net/http"

	"artbook_backend/internal/middleware"
	"artbook_backend/internal/models"
	"artbook_backend/internal/repositories"
	"artbook_backend/internal/services"
	"artbook_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// AdminHandler - модерация отзывов и сводка по платформе
type AdminHandler struct {
	*BaseHandler
	reviewService    services.ReviewService
	dashboardService services.DashboardService
}

func NewAdminHandler(base *BaseHandler, reviewService services.ReviewService, dashboardService services.DashboardService) *AdminHandler {
	return &AdminHandler{
		BaseHandler:      base,
		reviewService:    reviewService,
		dashboardService: dashboardService,
	}
}

func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.RequireRoles(models.UserRoleAdmin))
	{
		admin.GET("/reviews", h.ListReviews)
		admin.POST("/reviews/:id/approve", h.ApproveReview)
		admin.POST("/reviews/:id/reject", h.RejectReview)

		admin.GET("/dashboard", h.Dashboard)
		admin.GET("/dashboard/trends", h.Trends)
	}
}

func (h *AdminHandler) ListReviews(c *gin.Context) {
	criteria := repositories.ReviewCriteria{Status: c.Query("status")}
	criteria.Page, criteria.PageSize = ParsePagination(c)

	result, err := h.reviewService.ListAllReviews(criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *AdminHandler) ApproveReview(c *gin.Context) {
	h.moderate(c, h.reviewService.ApproveReview, "Review approved")
}

func (h *AdminHandler) RejectReview(c *gin.Context) {
	h.moderate(c, h.reviewService.RejectReview, "Review rejected")
}

func (h *AdminHandler) moderate(c *gin.Context, fn func(reviewID string, req *dto.ModerateReviewRequest) error, message string) {
	reviewID, ok := h.ParseParamUUID(c, "id")
	if !ok {
		return
	}

	// Тело опционально: вердикт можно вынести без пометок
	var req dto.ModerateReviewRequest
	if c.Request.ContentLength > 0 {
		if !h.BindAndValidate_JSON(c, &req) {
			return
		}
	}

	if err := fn(reviewID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	result, err := h.dashboardService.AdminDashboard()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *AdminHandler) Trends(c *gin.Context) {
	months := ParseQueryInt(c, "months", 6)

	result, err := h.dashboardService.AdminTrends(months)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
