package models

// Review привязан к конкретной брони (одна бронь - один отзыв).
// Публично видны только отзывы в статусе approved.
type Review struct {
	BaseModel
	BookingID  string       `gorm:"uniqueIndex;not null"`
	ArtistID   string       `gorm:"not null;index"` // artist_profiles.id
	ClientID   string       `gorm:"not null;index"` // users.id
	Rating     int          `gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment    string
	AdminNotes string
	Status     ReviewStatus `gorm:"type:varchar(20);default:'pending'"`

	// Relations
	Booking Booking       `gorm:"foreignKey:BookingID"`
	Artist  ArtistProfile `gorm:"foreignKey:ArtistID"`
	Client  User          `gorm:"foreignKey:ClientID"`
}
