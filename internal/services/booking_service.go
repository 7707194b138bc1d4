package services

import (
	"artbook_backend/internal/logger"
	"artbook_backend/internal/models"
	"artbook_backend/internal/repositories"
	"artbook_backend/internal/services/dto"
	"artbook_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type BookingService interface {
	CreateBooking(clientID string, req *dto.CreateBookingRequest) (*dto.BookingResponse, error)
	GetBooking(userID, role, bookingID string) (*dto.BookingResponse, error)
	ListClientBookings(clientID string, criteria repositories.BookingCriteria) (*dto.BookingListResponse, error)
	ListArtistBookings(artistUserID string, criteria repositories.BookingCriteria) (*dto.BookingListResponse, error)

	AcceptBooking(artistUserID, bookingID string) error
	DeclineBooking(artistUserID, bookingID string) error
	CompleteBooking(artistUserID, bookingID string) error
	CancelBooking(clientID, bookingID string) error
}

type bookingService struct {
	db               *gorm.DB
	bookingRepo      repositories.BookingRepository
	artistRepo       repositories.ArtistRepository
	profileRepo      repositories.ProfileRepository
	roleRepo         repositories.RoleRepository
	notificationRepo repositories.NotificationRepository
}

func NewBookingService(
	db *gorm.DB,
	bookingRepo repositories.BookingRepository,
	artistRepo repositories.ArtistRepository,
	profileRepo repositories.ProfileRepository,
	roleRepo repositories.RoleRepository,
	notificationRepo repositories.NotificationRepository,
) BookingService {
	return &bookingService{
		db:               db,
		bookingRepo:      bookingRepo,
		artistRepo:       artistRepo,
		profileRepo:      profileRepo,
		roleRepo:         roleRepo,
		notificationRepo: notificationRepo,
	}
}

// CreateBooking создает бронь со стоимостью, зафиксированной на момент
// создания: изменения ставки артиста прошлых броней не касаются.
func (s *bookingService) CreateBooking(clientID string, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	if err := s.requireRole(clientID, models.UserRoleClient); err != nil {
		return nil, err
	}

	artist, err := s.artistRepo.FindByID(req.ArtistID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	if artist.UserID == clientID {
		return nil, apperrors.ErrInvalidOperation("booking", "You cannot book yourself")
	}

	duration := req.DurationHours
	if duration < 1 {
		duration = 1
	}

	booking := &models.Booking{
		ArtistID:      artist.ID,
		ClientID:      clientID,
		BookingDate:   req.BookingDate,
		ServiceType:   req.ServiceType,
		DurationHours: duration,
		Location:      req.Location,
		Description:   req.Description,
		TotalAmount:   artist.HourlyRate * float64(duration),
		Status:        models.BookingStatusPending,
	}

	if err := s.bookingRepo.Create(booking); err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	// Уведомление не участвует в транзакции: его потеря не ломает бронь
	go func(artistUserID, bookingID, clientID, serviceType string) {
		clientName := "A client"
		if p, err := s.profileRepo.FindByUserID(clientID); err == nil {
			clientName = p.FullName
		}
		if err := s.notificationRepo.CreateBookingRequestNotification(artistUserID, bookingID, clientName, serviceType); err != nil {
			logger.Warn("failed to create booking notification", "error", err, "booking_id", bookingID)
		}
	}(artist.UserID, booking.ID, clientID, req.ServiceType)

	return s.buildBookingResponse(booking, artist), nil
}

func (s *bookingService) GetBooking(userID, role, bookingID string) (*dto.BookingResponse, error) {
	booking, err := s.bookingRepo.FindByID(bookingID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	// Бронь видят только ее клиент, ее артист и админ
	if role != string(models.UserRoleAdmin) &&
		booking.ClientID != userID &&
		booking.Artist.UserID != userID {
		return nil, apperrors.ErrNotBookingParticipant
	}

	return s.buildBookingResponse(booking, &booking.Artist), nil
}

func (s *bookingService) ListClientBookings(clientID string, criteria repositories.BookingCriteria) (*dto.BookingListResponse, error) {
	normalizePagination(&criteria.Page, &criteria.PageSize)

	bookings, total, err := s.bookingRepo.FindByClient(clientID, criteria)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return s.buildBookingList(bookings, total, criteria), nil
}

func (s *bookingService) ListArtistBookings(artistUserID string, criteria repositories.BookingCriteria) (*dto.BookingListResponse, error) {
	normalizePagination(&criteria.Page, &criteria.PageSize)

	artist, err := s.artistRepo.FindByUserID(artistUserID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	bookings, total, err := s.bookingRepo.FindByArtist(artist.ID, criteria)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return s.buildBookingList(bookings, total, criteria), nil
}

// --- transitions ---

func (s *bookingService) AcceptBooking(artistUserID, bookingID string) error {
	return s.artistTransition(artistUserID, bookingID, models.BookingStatusPending, models.BookingStatusAccepted)
}

func (s *bookingService) DeclineBooking(artistUserID, bookingID string) error {
	return s.artistTransition(artistUserID, bookingID, models.BookingStatusPending, models.BookingStatusDeclined)
}

// CompleteBooking переводит accepted в completed и в той же транзакции
// пересчитывает total_bookings артиста.
func (s *bookingService) CompleteBooking(artistUserID, bookingID string) error {
	booking, err := s.authorizeArtist(artistUserID, bookingID)
	if err != nil {
		return err
	}
	if !booking.Status.CanTransition(models.BookingStatusCompleted) {
		return apperrors.ErrInvalidBookingTransition
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.bookingRepo.WithTx(tx).UpdateStatusIf(bookingID, models.BookingStatusAccepted, models.BookingStatusCompleted); err != nil {
			return err
		}
		return s.artistRepo.WithTx(tx).RecalculateTotalBookings(booking.ArtistID)
	})
	if err != nil {
		return s.mapTransitionError(err)
	}

	s.notifyClient(booking, models.BookingStatusCompleted)
	return nil
}

// CancelBooking доступен только клиенту брони и только из pending
func (s *bookingService) CancelBooking(clientID, bookingID string) error {
	booking, err := s.bookingRepo.FindByID(bookingID)
	if err != nil {
		return apperrors.ErrNotFound(err)
	}
	if booking.ClientID != clientID {
		return apperrors.ErrNotBookingParticipant
	}
	if !booking.Status.CanTransition(models.BookingStatusCancelled) {
		return apperrors.ErrInvalidBookingTransition
	}

	if err := s.bookingRepo.UpdateStatusIf(bookingID, models.BookingStatusPending, models.BookingStatusCancelled); err != nil {
		return s.mapTransitionError(err)
	}

	// Артисту сообщаем об отмене
	go func(artistUserID, bookingID string) {
		if err := s.notificationRepo.CreateBookingStatusNotification(artistUserID, bookingID, models.BookingStatusCancelled); err != nil {
			logger.Warn("failed to create cancellation notification", "error", err, "booking_id", bookingID)
		}
	}(booking.Artist.UserID, bookingID)

	return nil
}

// --- helpers ---

func (s *bookingService) artistTransition(artistUserID, bookingID string, from, to models.BookingStatus) error {
	booking, err := s.authorizeArtist(artistUserID, bookingID)
	if err != nil {
		return err
	}
	if !booking.Status.CanTransition(to) {
		return apperrors.ErrInvalidBookingTransition
	}

	if err := s.bookingRepo.UpdateStatusIf(bookingID, from, to); err != nil {
		return s.mapTransitionError(err)
	}

	s.notifyClient(booking, to)
	return nil
}

// authorizeArtist проверяет, что бронь принадлежит артисту этого пользователя
func (s *bookingService) authorizeArtist(artistUserID, bookingID string) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(bookingID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	if booking.Artist.UserID != artistUserID {
		return nil, apperrors.ErrNotBookingParticipant
	}
	return booking, nil
}

func (s *bookingService) requireRole(userID string, role models.UserRole) error {
	entry, err := s.roleRepo.FindByUserID(userID)
	if err != nil || entry.Role != role {
		return apperrors.ErrInsufficientPermissions
	}
	return nil
}

func (s *bookingService) mapTransitionError(err error) error {
	switch err {
	case repositories.ErrBookingNotFound:
		return apperrors.ErrNotFound(err)
	case repositories.ErrBookingStatusConflict:
		return apperrors.ErrInvalidBookingTransition
	default:
		return apperrors.DatabaseError(err)
	}
}

func (s *bookingService) notifyClient(booking *models.Booking, status models.BookingStatus) {
	go func(clientID, bookingID string) {
		if err := s.notificationRepo.CreateBookingStatusNotification(clientID, bookingID, status); err != nil {
			logger.Warn("failed to create booking status notification", "error", err, "booking_id", bookingID)
		}
	}(booking.ClientID, booking.ID)
}

func (s *bookingService) buildBookingList(bookings []models.Booking, total int64, criteria repositories.BookingCriteria) *dto.BookingListResponse {
	items := make([]*dto.BookingResponse, 0, len(bookings))
	for i := range bookings {
		items = append(items, s.buildBookingResponse(&bookings[i], &bookings[i].Artist))
	}
	return &dto.BookingListResponse{
		Bookings:   items,
		Total:      total,
		Page:       criteria.Page,
		PageSize:   criteria.PageSize,
		TotalPages: totalPages(total, criteria.PageSize),
	}
}

func (s *bookingService) buildBookingResponse(booking *models.Booking, artist *models.ArtistProfile) *dto.BookingResponse {
	resp := newBookingResponse(booking)

	if artist != nil && artist.ID != "" {
		info := &dto.ArtistInfo{
			ID:         artist.ID,
			HourlyRate: artist.HourlyRate,
			Rating:     artist.Rating,
		}
		if p, err := s.profileRepo.FindByUserID(artist.UserID); err == nil {
			info.FullName = p.FullName
		}
		resp.Artist = info
	}

	if p, err := s.profileRepo.FindByUserID(booking.ClientID); err == nil {
		resp.Client = buildProfileInfo(p)
	}

	return resp
}

func newBookingResponse(booking *models.Booking) *dto.BookingResponse {
	return &dto.BookingResponse{
		ID:            booking.ID,
		ArtistID:      booking.ArtistID,
		ClientID:      booking.ClientID,
		BookingDate:   booking.BookingDate,
		ServiceType:   booking.ServiceType,
		DurationHours: booking.DurationHours,
		Location:      booking.Location,
		Description:   booking.Description,
		TotalAmount:   booking.TotalAmount,
		Status:        string(booking.Status),
		CreatedAt:     booking.CreatedAt,
	}
}
