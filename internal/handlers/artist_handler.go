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

type ArtistHandler struct {
	*BaseHandler
	artistService services.ArtistService
	reviewService services.ReviewService
}

func NewArtistHandler(base *BaseHandler, artistService services.ArtistService, reviewService services.ReviewService) *ArtistHandler {
	return &ArtistHandler{
		BaseHandler:   base,
		artistService: artistService,
		reviewService: reviewService,
	}
}

func (h *ArtistHandler) RegisterRoutes(rg *gin.RouterGroup) {
	// Публичная витрина: каталог и карточки артистов
	artists := rg.Group("/artists")
	{
		artists.GET("", h.Search)
		artists.GET("/:id", h.GetArtist)
		artists.GET("/:id/reviews", h.GetArtistReviews)
		artists.GET("/:id/rating", h.GetArtistRating)
	}

	// Кабинет артиста
	own := rg.Group("/artist/profile")
	own.Use(middleware.AuthMiddleware())
	own.Use(middleware.RequireRoles(models.UserRoleArtist))
	{
		own.GET("", h.GetOwnProfile)
		own.PUT("", h.UpdateOwnProfile)
	}
}

func (h *ArtistHandler) Search(c *gin.Context) {
	var criteria repositories.ArtistSearchCriteria
	if err := c.ShouldBindQuery(&criteria); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	criteria.Page, criteria.PageSize = ParsePagination(c)

	result, err := h.artistService.Search(criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ArtistHandler) GetArtist(c *gin.Context) {
	artistID, ok := h.ParseParamUUID(c, "id")
	if !ok {
		return
	}

	result, err := h.artistService.GetArtist(artistID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ArtistHandler) GetArtistReviews(c *gin.Context) {
	artistID, ok := h.ParseParamUUID(c, "id")
	if !ok {
		return
	}

	criteria := repositories.ReviewCriteria{}
	criteria.Page, criteria.PageSize = ParsePagination(c)

	result, err := h.reviewService.ListArtistReviews(artistID, criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ArtistHandler) GetArtistRating(c *gin.Context) {
	artistID, ok := h.ParseParamUUID(c, "id")
	if !ok {
		return
	}

	result, err := h.reviewService.GetArtistRating(artistID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ArtistHandler) GetOwnProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	result, err := h.artistService.GetOwnProfile(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ArtistHandler) UpdateOwnProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateArtistProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	result, err := h.artistService.UpdateOwnProfile(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
