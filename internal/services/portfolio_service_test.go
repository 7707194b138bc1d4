package services

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"

	"artbook_backend/internal/models"
	"artbook_backend/internal/repositories"
	"artbook_backend/internal/services/dto"
	"artbook_backend/internal/storage"
	"artbook_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPortfolioServiceForTest(t *testing.T, db *gorm.DB) (PortfolioService, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewLocalStorage(storage.Config{BasePath: dir, BaseURL: "http://localhost/files"})
	require.NoError(t, err)
	svc := NewPortfolioService(
		repositories.NewPortfolioRepository(db),
		repositories.NewArtistRepository(db),
		store,
		newTestConfig(),
	)
	return svc, dir
}

// makeFileHeader собирает multipart.FileHeader так же, как его видит gin
func makeFileHeader(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/portfolio", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	files := req.MultipartForm.File["file"]
	require.Len(t, files, 1)
	return files[0]
}

func TestUploadImage(t *testing.T) {
	db := newTestDB(t)
	svc, dir := newPortfolioServiceForTest(t, db)
	artistUser, artist := seedArtist(t, db, "artist@example.com", "Artist", 3000)

	file := makeFileHeader(t, "work.jpg", "image/jpeg", []byte("fake jpeg bytes"))
	image, err := svc.UploadImage(context.Background(), artistUser.ID, file, "Portrait", "Oil on canvas")
	require.NoError(t, err)
	assert.Equal(t, "Portrait", image.Title)
	assert.Equal(t, 0, image.DisplayOrder)

	// Файл реально лежит в хранилище
	var stored models.PortfolioImage
	require.NoError(t, db.First(&stored, "id = ?", image.ID).Error)
	assert.Equal(t, artist.ID, stored.ArtistID)
	_, err = os.Stat(filepath.Join(dir, stored.StoragePath))
	require.NoError(t, err)

	// Следующая картинка встает в конец
	second, err := svc.UploadImage(context.Background(), artistUser.ID, file, "Second", "")
	require.NoError(t, err)
	assert.Equal(t, 1, second.DisplayOrder)
}

func TestUploadImage_RejectsOversized(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newPortfolioServiceForTest(t, db)
	artistUser, _ := seedArtist(t, db, "artist@example.com", "Artist", 3000)

	file := makeFileHeader(t, "huge.jpg", "image/jpeg", bytes.Repeat([]byte("x"), 5*1024*1024+1))
	_, err := svc.UploadImage(context.Background(), artistUser.ID, file, "", "")
	assert.ErrorIs(t, err, apperrors.ErrFileTooLarge)
}

func TestUploadImage_RejectsBadType(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newPortfolioServiceForTest(t, db)
	artistUser, _ := seedArtist(t, db, "artist@example.com", "Artist", 3000)

	file := makeFileHeader(t, "script.sh", "application/x-sh", []byte("#!/bin/sh"))
	_, err := svc.UploadImage(context.Background(), artistUser.ID, file, "", "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidFileType)
}

func TestUpdateImage_OwnerOnly(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newPortfolioServiceForTest(t, db)
	owner, _ := seedArtist(t, db, "owner@example.com", "Owner", 3000)
	other, _ := seedArtist(t, db, "other@example.com", "Other", 3000)

	file := makeFileHeader(t, "work.png", "image/png", []byte("png"))
	image, err := svc.UploadImage(context.Background(), owner.ID, file, "Before", "")
	require.NoError(t, err)

	title := "After"
	order := 3
	updated, err := svc.UpdateImage(owner.ID, image.ID, &dto.UpdatePortfolioImageRequest{Title: &title, DisplayOrder: &order})
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Title)
	assert.Equal(t, 3, updated.DisplayOrder)

	_, err = svc.UpdateImage(other.ID, image.ID, &dto.UpdatePortfolioImageRequest{Title: &title})
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)
}

func TestDeleteImage_RemovesFile(t *testing.T) {
	db := newTestDB(t)
	svc, dir := newPortfolioServiceForTest(t, db)
	artistUser, artist := seedArtist(t, db, "artist@example.com", "Artist", 3000)

	file := makeFileHeader(t, "work.webp", "image/webp", []byte("webp"))
	image, err := svc.UploadImage(context.Background(), artistUser.ID, file, "", "")
	require.NoError(t, err)

	var stored models.PortfolioImage
	require.NoError(t, db.First(&stored, "id = ?", image.ID).Error)

	require.NoError(t, svc.DeleteImage(context.Background(), artistUser.ID, image.ID))

	_, err = os.Stat(filepath.Join(dir, stored.StoragePath))
	assert.True(t, os.IsNotExist(err))

	images, err := svc.ListImages(artist.ID)
	require.NoError(t, err)
	assert.Empty(t, images)
}
