package dto

import "time"

// ======================
// Request DTOs
// ======================

type CreateBookingRequest struct {
	ArtistID      string    `json:"artist_id" validate:"required,uuid"`
	BookingDate   time.Time `json:"booking_date" validate:"required"`
	ServiceType   string    `json:"service_type" validate:"required,min=2,max=100"`
	DurationHours int       `json:"duration_hours" validate:"omitempty,min=1,max=24"`
	Location      string    `json:"location" validate:"omitempty,max=300"`
	Description   string    `json:"description" validate:"omitempty,max=2000"`
}

// ======================
// Response DTOs
// ======================

type BookingResponse struct {
	ID            string       `json:"id"`
	ArtistID      string       `json:"artist_id"`
	ClientID      string       `json:"client_id"`
	BookingDate   time.Time    `json:"booking_date"`
	ServiceType   string       `json:"service_type"`
	DurationHours int          `json:"duration_hours"`
	Location      string       `json:"location,omitempty"`
	Description   string       `json:"description,omitempty"`
	TotalAmount   float64      `json:"total_amount"`
	Status        string       `json:"status"`
	CreatedAt     time.Time    `json:"created_at"`

	Artist *ArtistInfo  `json:"artist,omitempty"`
	Client *ProfileInfo `json:"client,omitempty"`
}

type BookingListResponse struct {
	Bookings   []*BookingResponse `json:"bookings"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalPages int                `json:"total_pages"`
}

// ======================
// Info DTOs
// ======================

type ArtistInfo struct {
	ID         string  `json:"id"`
	FullName   string  `json:"full_name"`
	HourlyRate float64 `json:"hourly_rate"`
	Rating     float64 `json:"rating"`
}
