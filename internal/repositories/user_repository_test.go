package repositories

import (
	"testing"

	"artbook_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUserCreate_DuplicateEmailIsDuplicatedKey(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	require.NoError(t, repo.Create(&models.User{
		Email:        "dup@example.com",
		PasswordHash: "hash-one",
	}))

	err := repo.Create(&models.User{
		Email:        "dup@example.com",
		PasswordHash: "hash-two",
	})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
