package models

import "gorm.io/datatypes"

// Profile - публичные данные пользователя любой роли
type Profile struct {
	BaseModel
	UserID    string `gorm:"uniqueIndex;not null"`
	FullName  string `gorm:"not null"`
	Email     string `gorm:"not null"`
	AvatarURL string
	Location  string
	Phone     string
}

// ArtistProfile - витрина артиста. Rating и TotalReviews считаются
// только по одобренным отзывам; TotalBookings - по завершенным броням.
type ArtistProfile struct {
	BaseModel
	UserID               string                      `gorm:"uniqueIndex;not null"`
	Bio                  string
	HourlyRate           float64                     `gorm:"not null;default:0"`
	Specialties          datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	YearsExperience      int                         `gorm:"default:0"`
	Availability         string
	PortfolioDescription string
	Rating               float64 `gorm:"default:0"`
	TotalReviews         int     `gorm:"default:0"`
	TotalBookings        int     `gorm:"default:0"`
	IsVerified           bool    `gorm:"default:false"`

	// Relations
	PortfolioImages []PortfolioImage `gorm:"foreignKey:ArtistID"`
	Reviews         []Review         `gorm:"foreignKey:ArtistID"`
}
