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

type BookingHandler struct {
	*BaseHandler
	bookingService services.BookingService
}

func NewBookingHandler(base *BaseHandler, bookingService services.BookingService) *BookingHandler {
	return &BookingHandler{
		BaseHandler:    base,
		bookingService: bookingService,
	}
}

func (h *BookingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	bookings := rg.Group("/bookings")
	bookings.Use(middleware.AuthMiddleware())
	{
		bookings.GET("/:id", h.GetBooking)

		// Клиентская сторона
		client := bookings.Group("")
		client.Use(middleware.RequireRoles(models.UserRoleClient))
		{
			client.POST("", h.CreateBooking)
			client.GET("/my", h.ListMyBookings)
			client.POST("/:id/cancel", h.CancelBooking)
		}

		// Сторона артиста
		artist := bookings.Group("")
		artist.Use(middleware.RequireRoles(models.UserRoleArtist))
		{
			artist.GET("/assigned", h.ListAssignedBookings)
			artist.POST("/:id/accept", h.AcceptBooking)
			artist.POST("/:id/decline", h.DeclineBooking)
			artist.POST("/:id/complete", h.CompleteBooking)
		}
	}
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateBookingRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	booking, err := h.bookingService.CreateBooking(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, booking)
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	bookingID, ok := h.ParseParamUUID(c, "id")
	if !ok {
		return
	}

	booking, err := h.bookingService.GetBooking(userID, h.GetUserRole(c), bookingID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) ListMyBookings(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	criteria := repositories.BookingCriteria{Status: c.Query("status")}
	criteria.Page, criteria.PageSize = ParsePagination(c)

	result, err := h.bookingService.ListClientBookings(userID, criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *BookingHandler) ListAssignedBookings(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	criteria := repositories.BookingCriteria{Status: c.Query("status")}
	criteria.Page, criteria.PageSize = ParsePagination(c)

	result, err := h.bookingService.ListArtistBookings(userID, criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *BookingHandler) AcceptBooking(c *gin.Context) {
	h.transition(c, h.bookingService.AcceptBooking, "Booking accepted")
}

func (h *BookingHandler) DeclineBooking(c *gin.Context) {
	h.transition(c, h.bookingService.DeclineBooking, "Booking declined")
}

func (h *BookingHandler) CompleteBooking(c *gin.Context) {
	h.transition(c, h.bookingService.CompleteBooking, "Booking completed")
}

func (h *BookingHandler) CancelBooking(c *gin.Context) {
	h.transition(c, h.bookingService.CancelBooking, "Booking cancelled")
}

func (h *BookingHandler) transition(c *gin.Context, fn func(userID, bookingID string) error, message string) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	bookingID, ok := h.ParseParamUUID(c, "id")
	if !ok {
		return
	}

	if err := fn(userID, bookingID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}
