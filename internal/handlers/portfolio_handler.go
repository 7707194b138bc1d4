package handlers

import (
	"net/http"

	"artbook_backend/internal/middleware"
	"artbook_backend/internal/models"
	"artbook_backend/internal/services"
	"artbook_backend/internal/services/dto"
	"artbook_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type PortfolioHandler struct {
	*BaseHandler
	portfolioService services.PortfolioService
}

func NewPortfolioHandler(base *BaseHandler, portfolioService services.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		BaseHandler:      base,
		portfolioService: portfolioService,
	}
}

func (h *PortfolioHandler) RegisterRoutes(rg *gin.RouterGroup) {
	// Публичный просмотр портфолио артиста
	rg.GET("/artists/:id/portfolio", h.ListArtistPortfolio)

	portfolio := rg.Group("/portfolio")
	portfolio.Use(middleware.AuthMiddleware())
	portfolio.Use(middleware.RequireRoles(models.UserRoleArtist))
	{
		portfolio.POST("", h.UploadImage)
		portfolio.PUT("/:id", h.UpdateImage)
		portfolio.DELETE("/:id", h.DeleteImage)
	}
}

func (h *PortfolioHandler) ListArtistPortfolio(c *gin.Context) {
	artistID, ok := h.ParseParamUUID(c, "id")
	if !ok {
		return
	}

	images, err := h.portfolioService.ListImages(artistID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"images": images})
}

// UploadImage принимает multipart-форму: file + опциональные title/description
func (h *PortfolioHandler) UploadImage(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Missing file in form field 'file'"))
		return
	}

	title := c.PostForm("title")
	description := c.PostForm("description")

	image, err := h.portfolioService.UploadImage(c.Request.Context(), userID, file, title, description)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, image)
}

func (h *PortfolioHandler) UpdateImage(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	imageID, ok := h.ParseParamUUID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdatePortfolioImageRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	image, err := h.portfolioService.UpdateImage(userID, imageID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, image)
}

func (h *PortfolioHandler) DeleteImage(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	imageID, ok := h.ParseParamUUID(c, "id")
	if !ok {
		return
	}

	if err := h.portfolioService.DeleteImage(c.Request.Context(), userID, imageID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Image deleted"})
}
