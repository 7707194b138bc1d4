package models

import "time"

type Booking struct {
	BaseModel
	ArtistID      string        `gorm:"not null;index"` // artist_profiles.id
	ClientID      string        `gorm:"not null;index"` // users.id
	BookingDate   time.Time     `gorm:"not null"`
	ServiceType   string        `gorm:"not null"`
	DurationHours int           `gorm:"not null;default:1;check:duration_hours >= 1"`
	Location      string
	Description   string
	TotalAmount   float64       `gorm:"not null"` // фиксируется при создании
	Status        BookingStatus `gorm:"type:varchar(20);default:'pending'"`

	// Relations
	Artist ArtistProfile `gorm:"foreignKey:ArtistID"`
	Client User          `gorm:"foreignKey:ClientID"`
}
