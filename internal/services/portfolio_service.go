package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"artbook_backend/internal/config"
	"artbook_backend/internal/logger"
	"artbook_backend/internal/models"
	"artbook_backend/internal/repositories"
	"artbook_backend/internal/services/dto"
	"artbook_backend/internal/storage"
	"artbook_backend/pkg/apperrors"
)

type PortfolioService interface {
	UploadImage(ctx context.Context, artistUserID string, file *multipart.FileHeader, title, description string) (*dto.PortfolioResponse, error)
	ListImages(artistID string) ([]*dto.PortfolioResponse, error)
	UpdateImage(artistUserID, imageID string, req *dto.UpdatePortfolioImageRequest) (*dto.PortfolioResponse, error)
	DeleteImage(ctx context.Context, artistUserID, imageID string) error
}

type portfolioService struct {
	portfolioRepo repositories.PortfolioRepository
	artistRepo    repositories.ArtistRepository
	store         storage.Storage
	cfg           *config.Config
}

func NewPortfolioService(
	portfolioRepo repositories.PortfolioRepository,
	artistRepo repositories.ArtistRepository,
	store storage.Storage,
	cfg *config.Config,
) PortfolioService {
	return &portfolioService{
		portfolioRepo: portfolioRepo,
		artistRepo:    artistRepo,
		store:         store,
		cfg:           cfg,
	}
}

// UploadImage сохраняет файл в хранилище и запись в портфолио.
// Путь строится от user_id артиста, чтобы файлы лежали по владельцам.
func (s *portfolioService) UploadImage(ctx context.Context, artistUserID string, file *multipart.FileHeader, title, description string) (*dto.PortfolioResponse, error) {
	artist, err := s.artistRepo.FindByUserID(artistUserID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	if file.Size > s.cfg.Upload.MaxSize {
		return nil, apperrors.ErrFileTooLarge
	}
	contentType := file.Header.Get("Content-Type")
	if !s.isAllowedType(contentType) {
		return nil, apperrors.ErrInvalidFileType
	}

	src, err := file.Open()
	if err != nil {
		return nil, apperrors.ErrInvalidOperation("portfolio", "Cannot read uploaded file")
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext == "" {
		ext = extensionForType(contentType)
	}
	path := fmt.Sprintf("portfolios/%s/%d%s", artistUserID, time.Now().UnixNano(), ext)

	if err := s.store.Save(ctx, path, src, contentType); err != nil {
		return nil, apperrors.New(apperrors.CodeExternalServiceError, "storage", "Failed to store image", 502).WithDetails(err.Error())
	}

	url, err := s.store.GetURL(ctx, path)
	if err != nil {
		url = path
	}

	// Новая картинка встает в конец портфолио
	count, err := s.portfolioRepo.CountByArtist(artist.ID)
	if err != nil {
		count = 0
	}

	image := &models.PortfolioImage{
		ArtistID:     artist.ID,
		ImageURL:     url,
		StoragePath:  path,
		Title:        title,
		Description:  description,
		DisplayOrder: int(count),
	}
	if err := s.portfolioRepo.Create(image); err != nil {
		// Запись не создалась - файл-сирота нам не нужен
		if delErr := s.store.Delete(ctx, path); delErr != nil {
			logger.Warn("failed to clean up orphaned upload", "error", delErr, "path", path)
		}
		return nil, apperrors.DatabaseError(err)
	}

	return buildPortfolioResponse(image), nil
}

func (s *portfolioService) ListImages(artistID string) ([]*dto.PortfolioResponse, error) {
	images, err := s.portfolioRepo.FindByArtist(artistID)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	items := make([]*dto.PortfolioResponse, 0, len(images))
	for i := range images {
		items = append(items, buildPortfolioResponse(&images[i]))
	}
	return items, nil
}

func (s *portfolioService) UpdateImage(artistUserID, imageID string, req *dto.UpdatePortfolioImageRequest) (*dto.PortfolioResponse, error) {
	image, err := s.authorizeOwner(artistUserID, imageID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		image.Title = *req.Title
	}
	if req.Description != nil {
		image.Description = *req.Description
	}
	if req.DisplayOrder != nil {
		image.DisplayOrder = *req.DisplayOrder
	}

	if err := s.portfolioRepo.Update(image); err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return buildPortfolioResponse(image), nil
}

// DeleteImage удаляет запись, затем файл. Ошибка удаления файла
// не откатывает операцию - хранилище чистится по мере возможности.
func (s *portfolioService) DeleteImage(ctx context.Context, artistUserID, imageID string) error {
	image, err := s.authorizeOwner(artistUserID, imageID)
	if err != nil {
		return err
	}

	if err := s.portfolioRepo.Delete(imageID); err != nil {
		if err == repositories.ErrPortfolioImageNotFound {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.DatabaseError(err)
	}

	if image.StoragePath != "" {
		if err := s.store.Delete(ctx, image.StoragePath); err != nil {
			logger.Warn("failed to delete portfolio file", "error", err, "path", image.StoragePath)
		}
	}
	return nil
}

func (s *portfolioService) authorizeOwner(artistUserID, imageID string) (*models.PortfolioImage, error) {
	image, err := s.portfolioRepo.FindByID(imageID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	artist, err := s.artistRepo.FindByUserID(artistUserID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	if image.ArtistID != artist.ID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	return image, nil
}

func (s *portfolioService) isAllowedType(contentType string) bool {
	for _, allowed := range s.cfg.Upload.AllowedTypes {
		if contentType == allowed {
			return true
		}
	}
	return false
}

func extensionForType(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".bin"
	}
}

func buildPortfolioResponse(image *models.PortfolioImage) *dto.PortfolioResponse {
	return &dto.PortfolioResponse{
		ID:           image.ID,
		ArtistID:     image.ArtistID,
		ImageURL:     image.ImageURL,
		Title:        image.Title,
		Description:  image.Description,
		DisplayOrder: image.DisplayOrder,
		CreatedAt:    image.CreatedAt,
	}
}
