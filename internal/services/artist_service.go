package services

import (
	"artbook_backend/internal/models"
	"artbook_backend/internal/repositories"
	"artbook_backend/internal/services/dto"
	"artbook_backend/pkg/apperrors"
)

type ArtistService interface {
	Search(criteria repositories.ArtistSearchCriteria) (*dto.ArtistListResponse, error)
	GetArtist(artistID string) (*dto.ArtistDetailResponse, error)
	GetOwnProfile(userID string) (*dto.ArtistResponse, error)
	UpdateOwnProfile(userID string, req *dto.UpdateArtistProfileRequest) (*dto.ArtistResponse, error)
}

type artistService struct {
	artistRepo    repositories.ArtistRepository
	profileRepo   repositories.ProfileRepository
	portfolioRepo repositories.PortfolioRepository
	reviewRepo    repositories.ReviewRepository
}

func NewArtistService(
	artistRepo repositories.ArtistRepository,
	profileRepo repositories.ProfileRepository,
	portfolioRepo repositories.PortfolioRepository,
	reviewRepo repositories.ReviewRepository,
) ArtistService {
	return &artistService{
		artistRepo:    artistRepo,
		profileRepo:   profileRepo,
		portfolioRepo: portfolioRepo,
		reviewRepo:    reviewRepo,
	}
}

func (s *artistService) Search(criteria repositories.ArtistSearchCriteria) (*dto.ArtistListResponse, error) {
	normalizePagination(&criteria.Page, &criteria.PageSize)

	artists, total, err := s.artistRepo.Search(criteria)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	userIDs := make([]string, 0, len(artists))
	for _, a := range artists {
		userIDs = append(userIDs, a.UserID)
	}
	profiles, err := s.profileRepo.FindByUserIDs(userIDs)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	items := make([]*dto.ArtistResponse, 0, len(artists))
	for i := range artists {
		var info *dto.ProfileInfo
		if p, ok := profiles[artists[i].UserID]; ok {
			info = buildProfileInfo(&p)
		}
		items = append(items, buildArtistResponse(&artists[i], info))
	}

	return &dto.ArtistListResponse{
		Artists:    items,
		Total:      total,
		Page:       criteria.Page,
		PageSize:   criteria.PageSize,
		TotalPages: totalPages(total, criteria.PageSize),
	}, nil
}

// GetArtist - публичная страница: витрина, портфолио и только одобренные отзывы
func (s *artistService) GetArtist(artistID string) (*dto.ArtistDetailResponse, error) {
	artist, err := s.artistRepo.FindByID(artistID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	profile, err := s.profileRepo.FindByUserID(artist.UserID)
	if err != nil && err != repositories.ErrProfileNotFound {
		return nil, apperrors.DatabaseError(err)
	}

	var info *dto.ProfileInfo
	if profile != nil {
		info = buildProfileInfo(profile)
	}

	images, err := s.portfolioRepo.FindByArtist(artistID)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	portfolio := make([]*dto.PortfolioResponse, 0, len(images))
	for i := range images {
		portfolio = append(portfolio, buildPortfolioResponse(&images[i]))
	}

	reviews, _, err := s.reviewRepo.FindApprovedByArtist(artistID, repositories.ReviewCriteria{Page: 1, PageSize: 50})
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	clientIDs := make([]string, 0, len(reviews))
	for _, r := range reviews {
		clientIDs = append(clientIDs, r.ClientID)
	}
	clientProfiles, err := s.profileRepo.FindByUserIDs(clientIDs)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	reviewItems := make([]*dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		item := buildReviewResponse(&reviews[i])
		if p, ok := clientProfiles[reviews[i].ClientID]; ok {
			item.Client = buildProfileInfo(&p)
		}
		reviewItems = append(reviewItems, item)
	}

	return &dto.ArtistDetailResponse{
		Artist:    buildArtistResponse(artist, info),
		Portfolio: portfolio,
		Reviews:   reviewItems,
	}, nil
}

func (s *artistService) GetOwnProfile(userID string) (*dto.ArtistResponse, error) {
	artist, err := s.artistRepo.FindByUserID(userID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	return buildArtistResponse(artist, nil), nil
}

func (s *artistService) UpdateOwnProfile(userID string, req *dto.UpdateArtistProfileRequest) (*dto.ArtistResponse, error) {
	artist, err := s.artistRepo.FindByUserID(userID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	if req.Bio != nil {
		artist.Bio = *req.Bio
	}
	if req.HourlyRate != nil {
		// Суммы уже созданных броней не пересчитываются
		artist.HourlyRate = *req.HourlyRate
	}
	if req.Specialties != nil {
		artist.Specialties = req.Specialties
	}
	if req.YearsExperience != nil {
		artist.YearsExperience = *req.YearsExperience
	}
	if req.Availability != nil {
		artist.Availability = *req.Availability
	}
	if req.PortfolioDescription != nil {
		artist.PortfolioDescription = *req.PortfolioDescription
	}

	if err := s.artistRepo.Update(artist); err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	return buildArtistResponse(artist, nil), nil
}

// --- builders ---

func buildArtistResponse(artist *models.ArtistProfile, profile *dto.ProfileInfo) *dto.ArtistResponse {
	return &dto.ArtistResponse{
		ID:                   artist.ID,
		UserID:               artist.UserID,
		Bio:                  artist.Bio,
		HourlyRate:           artist.HourlyRate,
		Specialties:          artist.Specialties,
		YearsExperience:      artist.YearsExperience,
		Availability:         artist.Availability,
		PortfolioDescription: artist.PortfolioDescription,
		Rating:               artist.Rating,
		TotalReviews:         artist.TotalReviews,
		TotalBookings:        artist.TotalBookings,
		IsVerified:           artist.IsVerified,
		CreatedAt:            artist.CreatedAt,
		Profile:              profile,
	}
}

func buildProfileInfo(profile *models.Profile) *dto.ProfileInfo {
	return &dto.ProfileInfo{
		FullName:  profile.FullName,
		Email:     profile.Email,
		AvatarURL: profile.AvatarURL,
		Location:  profile.Location,
		Phone:     profile.Phone,
	}
}

// --- pagination helpers ---

func normalizePagination(page, pageSize *int) {
	if *page < 1 {
		*page = 1
	}
	if *pageSize < 1 {
		*pageSize = 20
	}
	if *pageSize > 100 {
		*pageSize = 100
	}
}

func totalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	pages := int(total) / pageSize
	if int(total)%pageSize != 0 {
		pages++
	}
	return pages
}
