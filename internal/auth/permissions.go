package auth

import "artbook_backend/internal/models"

// SelfRegistrableRole проверяет, доступна ли роль при регистрации через
// API. Администратор создается только сидом при старте приложения.
func SelfRegistrableRole(role string) bool {
	switch models.UserRole(role) {
	case models.UserRoleClient, models.UserRoleArtist:
		return true
	default:
		return false
	}
}
