package dto

import "time"

// ======================
// Request DTOs
// ======================

type CreateReviewRequest struct {
	BookingID string `json:"booking_id" validate:"required,uuid"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment" validate:"omitempty,max=2000"`
}

type ModerateReviewRequest struct {
	AdminNotes string `json:"admin_notes" validate:"omitempty,max=1000"`
}

// ======================
// Response DTOs
// ======================

type ReviewResponse struct {
	ID         string    `json:"id"`
	BookingID  string    `json:"booking_id"`
	ArtistID   string    `json:"artist_id"`
	ClientID   string    `json:"client_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	AdminNotes string    `json:"admin_notes,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`

	Client *ProfileInfo `json:"client,omitempty"`
	Artist *ArtistInfo  `json:"artist,omitempty"`
}

type ReviewListResponse struct {
	Reviews    []*ReviewResponse `json:"reviews"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}

type RatingResponse struct {
	AverageRating float64 `json:"average_rating"`
	TotalReviews  int64   `json:"total_reviews"`
}
