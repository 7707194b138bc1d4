package dto

import "time"

// ======================
// Request DTOs
// ======================

type UpdatePortfolioImageRequest struct {
	Title        *string `json:"title,omitempty" validate:"omitempty,max=200"`
	Description  *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	DisplayOrder *int    `json:"display_order,omitempty" validate:"omitempty,min=0"`
}

// ======================
// Response DTOs
// ======================

type PortfolioResponse struct {
	ID           string    `json:"id"`
	ArtistID     string    `json:"artist_id"`
	ImageURL     string    `json:"image_url"`
	Title        string    `json:"title,omitempty"`
	Description  string    `json:"description,omitempty"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}
