package models

import "time"

type User struct {
	BaseModel
	Email         string `gorm:"uniqueIndex;not null"`
	PasswordHash  string `gorm:"not null"`
	ResetToken    string
	ResetTokenExp *time.Time

	// Relations
	Profile       *Profile        `gorm:"foreignKey:UserID"`
	RoleEntry     *RoleAssignment `gorm:"foreignKey:UserID"`
	ArtistProfile *ArtistProfile  `gorm:"foreignKey:UserID"`
	RefreshTokens []RefreshToken  `gorm:"foreignKey:UserID"`
}

// RoleAssignment хранит роль пользователя отдельно от учетной записи.
// Роль назначается один раз при регистрации; привилегированные операции
// перепроверяют ее по этой таблице, а не по claims токена.
type RoleAssignment struct {
	BaseModel
	UserID string   `gorm:"uniqueIndex;not null"`
	Role   UserRole `gorm:"type:varchar(20);not null"`
}

type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"not null;index"`
	Token     string    `gorm:"not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
}
