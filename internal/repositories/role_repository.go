package repositories

import (
	"errors"

	"artbook_backend/internal/models"

	"gorm.io/gorm"
)

var ErrRoleNotFound = errors.New("role assignment not found")

// RoleRepository - источник истины о роли пользователя.
// Привилегированные операции сверяются с этой таблицей, а не с токеном.
type RoleRepository interface {
	Assign(userID string, role models.UserRole) error
	FindByUserID(userID string) (*models.RoleAssignment, error)
	CountByRole(role models.UserRole) (int64, error)

	WithTx(tx *gorm.DB) RoleRepository
}

type RoleRepositoryImpl struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &RoleRepositoryImpl{db: db}
}

func (r *RoleRepositoryImpl) WithTx(tx *gorm.DB) RoleRepository {
	return &RoleRepositoryImpl{db: tx}
}

func (r *RoleRepositoryImpl) Assign(userID string, role models.UserRole) error {
	return r.db.Create(&models.RoleAssignment{UserID: userID, Role: role}).Error
}

func (r *RoleRepositoryImpl) FindByUserID(userID string) (*models.RoleAssignment, error) {
	var entry models.RoleAssignment
	if err := r.db.Where("user_id = ?", userID).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (r *RoleRepositoryImpl) CountByRole(role models.UserRole) (int64, error) {
	var count int64
	err := r.db.Model(&models.RoleAssignment{}).Where("role = ?", role).Count(&count).Error
	return count, err
}
