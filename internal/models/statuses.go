package models

type UserRole string
type BookingStatus string
type ReviewStatus string

const (
	UserRoleAdmin  UserRole = "admin"
	UserRoleArtist UserRole = "artist"
	UserRoleClient UserRole = "client"

	BookingStatusPending   BookingStatus = "pending"
	BookingStatusAccepted  BookingStatus = "accepted"
	BookingStatusDeclined  BookingStatus = "declined"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"

	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusApproved ReviewStatus = "approved"
	ReviewStatusRejected ReviewStatus = "rejected"
)

// Типы уведомлений
const (
	NotificationTypeBooking = "booking"
	NotificationTypeReview  = "review"
	NotificationTypeSystem  = "system"
)

// CanTransition проверяет допустимость перехода статуса брони.
// Терминальные статусы (declined, completed, cancelled) переходов не имеют.
func (s BookingStatus) CanTransition(to BookingStatus) bool {
	switch s {
	case BookingStatusPending:
		return to == BookingStatusAccepted || to == BookingStatusDeclined || to == BookingStatusCancelled
	case BookingStatusAccepted:
		return to == BookingStatusCompleted
	default:
		return false
	}
}
