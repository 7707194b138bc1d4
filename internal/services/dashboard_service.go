package services

import (
	"time"

	"artbook_backend/internal/models"
	"artbook_backend/internal/repositories"
	"artbook_backend/internal/services/dto"
	"artbook_backend/pkg/apperrors"
)

const (
	recentItemsLimit   = 5
	defaultTrendMonths = 6
)

type DashboardService interface {
	ClientDashboard(clientID string) (*dto.ClientDashboardResponse, error)
	ArtistDashboard(artistUserID string) (*dto.ArtistDashboardResponse, error)
	AdminDashboard() (*dto.AdminDashboardResponse, error)

	ClientTrends(clientID string, months int) (*dto.TrendsResponse, error)
	ArtistTrends(artistUserID string, months int) (*dto.TrendsResponse, error)
	AdminTrends(months int) (*dto.TrendsResponse, error)
}

type dashboardService struct {
	bookingRepo repositories.BookingRepository
	reviewRepo  repositories.ReviewRepository
	artistRepo  repositories.ArtistRepository
	profileRepo repositories.ProfileRepository
	userRepo    repositories.UserRepository
	roleRepo    repositories.RoleRepository
}

func NewDashboardService(
	bookingRepo repositories.BookingRepository,
	reviewRepo repositories.ReviewRepository,
	artistRepo repositories.ArtistRepository,
	profileRepo repositories.ProfileRepository,
	userRepo repositories.UserRepository,
	roleRepo repositories.RoleRepository,
) DashboardService {
	return &dashboardService{
		bookingRepo: bookingRepo,
		reviewRepo:  reviewRepo,
		artistRepo:  artistRepo,
		profileRepo: profileRepo,
		userRepo:    userRepo,
		roleRepo:    roleRepo,
	}
}

func (s *dashboardService) ClientDashboard(clientID string) (*dto.ClientDashboardResponse, error) {
	total, err := s.bookingRepo.CountByClient(clientID)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	pending, err := s.bookingRepo.CountByClientAndStatus(clientID, models.BookingStatusPending)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	completed, err := s.bookingRepo.CountByClientAndStatus(clientID, models.BookingStatusCompleted)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	_, reviewsGiven, err := s.reviewRepo.FindByClient(clientID, repositories.ReviewCriteria{Page: 1, PageSize: 1})
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	recent, _, err := s.bookingRepo.FindByClient(clientID, repositories.BookingCriteria{Page: 1, PageSize: recentItemsLimit})
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	return &dto.ClientDashboardResponse{
		TotalBookings:     total,
		PendingBookings:   pending,
		CompletedBookings: completed,
		ReviewsGiven:      reviewsGiven,
		RecentBookings:    s.buildRecentBookings(recent),
	}, nil
}

func (s *dashboardService) ArtistDashboard(artistUserID string) (*dto.ArtistDashboardResponse, error) {
	artist, err := s.artistRepo.FindByUserID(artistUserID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	total, err := s.bookingRepo.CountByArtist(artist.ID)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	pending, err := s.bookingRepo.CountByArtistAndStatus(artist.ID, models.BookingStatusPending)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	completed, err := s.bookingRepo.CountByArtistAndStatus(artist.ID, models.BookingStatusCompleted)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	recent, _, err := s.bookingRepo.FindByArtist(artist.ID, repositories.BookingCriteria{Page: 1, PageSize: recentItemsLimit})
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	return &dto.ArtistDashboardResponse{
		TotalBookings:     total,
		PendingBookings:   pending,
		CompletedBookings: completed,
		Rating:            artist.Rating,
		TotalReviews:      artist.TotalReviews,
		RecentBookings:    s.buildRecentBookings(recent),
	}, nil
}

func (s *dashboardService) AdminDashboard() (*dto.AdminDashboardResponse, error) {
	totalUsers, err := s.userRepo.CountAll()
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	totalArtists, err := s.roleRepo.CountByRole(models.UserRoleArtist)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	totalBookings, err := s.bookingRepo.CountAll()
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	pendingReviews, err := s.reviewRepo.CountByStatus(models.ReviewStatusPending)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	pending, err := s.reviewRepo.FindRecentPending(recentItemsLimit)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	clientIDs := make([]string, 0, len(pending))
	for i := range pending {
		clientIDs = append(clientIDs, pending[i].ClientID)
	}
	clientProfiles, err := s.profileRepo.FindByUserIDs(clientIDs)
	if err != nil {
		clientProfiles = nil
	}

	recentPending := make([]*dto.ReviewResponse, 0, len(pending))
	for i := range pending {
		item := buildReviewResponse(&pending[i])
		if p, ok := clientProfiles[pending[i].ClientID]; ok {
			item.Client = buildProfileInfo(&p)
		}
		recentPending = append(recentPending, item)
	}

	return &dto.AdminDashboardResponse{
		TotalUsers:     totalUsers,
		TotalArtists:   totalArtists,
		TotalBookings:  totalBookings,
		PendingReviews: pendingReviews,
		RecentPending:  recentPending,
	}, nil
}

func (s *dashboardService) ClientTrends(clientID string, months int) (*dto.TrendsResponse, error) {
	return s.monthlyTrends("", clientID, months)
}

func (s *dashboardService) ArtistTrends(artistUserID string, months int) (*dto.TrendsResponse, error) {
	artist, err := s.artistRepo.FindByUserID(artistUserID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	return s.monthlyTrends(artist.ID, "", months)
}

func (s *dashboardService) AdminTrends(months int) (*dto.TrendsResponse, error) {
	return s.monthlyTrends("", "", months)
}

// monthlyTrends считает агрегаты по календарным месяцам, от старых к
// новым; текущий неполный месяц входит последней точкой.
func (s *dashboardService) monthlyTrends(artistID, clientID string, months int) (*dto.TrendsResponse, error) {
	if months < 1 || months > 24 {
		months = defaultTrendMonths
	}

	now := time.Now()
	currentMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	points := make([]*dto.MonthlyTrendPoint, 0, months)
	for i := months - 1; i >= 0; i-- {
		from := currentMonth.AddDate(0, -i, 0)
		to := from.AddDate(0, 1, 0)

		stat, err := s.bookingRepo.MonthlyStats(artistID, clientID, from, to)
		if err != nil {
			return nil, apperrors.DatabaseError(err)
		}
		points = append(points, &dto.MonthlyTrendPoint{
			Month:     stat.Month,
			Bookings:  stat.Count,
			Completed: stat.Completed,
			Revenue:   stat.Revenue,
		})
	}

	return &dto.TrendsResponse{Months: points}, nil
}

func (s *dashboardService) buildRecentBookings(bookings []models.Booking) []*dto.BookingResponse {
	items := make([]*dto.BookingResponse, 0, len(bookings))
	for i := range bookings {
		resp := newBookingResponse(&bookings[i])
		if p, err := s.profileRepo.FindByUserID(bookings[i].ClientID); err == nil {
			resp.Client = buildProfileInfo(p)
		}
		items = append(items, resp)
	}
	return items
}
