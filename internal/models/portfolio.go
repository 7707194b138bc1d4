package models

type PortfolioImage struct {
	BaseModel
	ArtistID     string `gorm:"not null;index"` // artist_profiles.id
	ImageURL     string `gorm:"not null"`
	StoragePath  string `gorm:"not null"`
	Title        string
	Description  string
	DisplayOrder int `gorm:"default:0"`
}
