package services

import (
	"artbook_backend/internal/repositories"
	"artbook_backend/internal/services/dto"
	"artbook_backend/pkg/apperrors"
)

type ProfileService interface {
	GetProfile(userID string) (*dto.ProfileInfo, error)
	UpdateProfile(userID string, req *dto.UpdateProfileRequest) (*dto.ProfileInfo, error)
}

type profileService struct {
	profileRepo repositories.ProfileRepository
}

func NewProfileService(profileRepo repositories.ProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo}
}

func (s *profileService) GetProfile(userID string) (*dto.ProfileInfo, error) {
	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	return buildProfileInfo(profile), nil
}

func (s *profileService) UpdateProfile(userID string, req *dto.UpdateProfileRequest) (*dto.ProfileInfo, error) {
	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	if req.FullName != nil {
		profile.FullName = *req.FullName
	}
	if req.AvatarURL != nil {
		profile.AvatarURL = *req.AvatarURL
	}
	if req.Location != nil {
		profile.Location = *req.Location
	}
	if req.Phone != nil {
		profile.Phone = *req.Phone
	}

	if err := s.profileRepo.Update(profile); err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	return buildProfileInfo(profile), nil
}
