package dto

import "time"

// ======================
// Client dashboard
// ======================

type ClientDashboardResponse struct {
	TotalBookings     int64              `json:"total_bookings"`
	PendingBookings   int64              `json:"pending_bookings"`
	CompletedBookings int64              `json:"completed_bookings"`
	ReviewsGiven      int64              `json:"reviews_given"`
	RecentBookings    []*BookingResponse `json:"recent_bookings"`
}

// ======================
// Artist dashboard
// ======================

type ArtistDashboardResponse struct {
	TotalBookings     int64              `json:"total_bookings"`
	PendingBookings   int64              `json:"pending_bookings"`
	CompletedBookings int64              `json:"completed_bookings"`
	Rating            float64            `json:"rating"`
	TotalReviews      int                `json:"total_reviews"`
	RecentBookings    []*BookingResponse `json:"recent_bookings"`
}

// ======================
// Admin dashboard
// ======================

type AdminDashboardResponse struct {
	TotalUsers     int64             `json:"total_users"`
	TotalArtists   int64             `json:"total_artists"`
	TotalBookings  int64             `json:"total_bookings"`
	PendingReviews int64             `json:"pending_reviews"`
	RecentPending  []*ReviewResponse `json:"recent_pending_reviews"`
}

// ======================
// Trends (помесячные агрегаты по реальным броням)
// ======================

type MonthlyTrendPoint struct {
	Month     time.Time `json:"month"`
	Bookings  int64     `json:"bookings"`
	Completed int64     `json:"completed"`
	Revenue   float64   `json:"revenue"`
}

type TrendsResponse struct {
	Months []*MonthlyTrendPoint `json:"months"`
}
