package dto

import "time"

// ======================
// Request DTOs
// ======================

type UpdateArtistProfileRequest struct {
	Bio                  *string  `json:"bio,omitempty" validate:"omitempty,max=2000"`
	HourlyRate           *float64 `json:"hourly_rate,omitempty" validate:"omitempty,min=0"`
	Specialties          []string `json:"specialties,omitempty" validate:"omitempty,max=20,dive,min=1,max=50"`
	YearsExperience      *int     `json:"years_experience,omitempty" validate:"omitempty,min=0,max=80"`
	Availability         *string  `json:"availability,omitempty" validate:"omitempty,max=500"`
	PortfolioDescription *string  `json:"portfolio_description,omitempty" validate:"omitempty,max=2000"`
}

// ======================
// Response DTOs
// ======================

type ArtistResponse struct {
	ID                   string    `json:"id"`
	UserID               string    `json:"user_id"`
	Bio                  string    `json:"bio"`
	HourlyRate           float64   `json:"hourly_rate"`
	Specialties          []string  `json:"specialties"`
	YearsExperience      int       `json:"years_experience"`
	Availability         string    `json:"availability,omitempty"`
	PortfolioDescription string    `json:"portfolio_description,omitempty"`
	Rating               float64   `json:"rating"`
	TotalReviews         int       `json:"total_reviews"`
	TotalBookings        int       `json:"total_bookings"`
	IsVerified           bool      `json:"is_verified"`
	CreatedAt            time.Time `json:"created_at"`

	Profile *ProfileInfo `json:"profile,omitempty"`
}

type ArtistListResponse struct {
	Artists    []*ArtistResponse `json:"artists"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}

// ArtistDetailResponse - публичная страница артиста
type ArtistDetailResponse struct {
	Artist    *ArtistResponse      `json:"artist"`
	Portfolio []*PortfolioResponse `json:"portfolio"`
	Reviews   []*ReviewResponse    `json:"reviews"`
}
