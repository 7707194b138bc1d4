package services

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService         AuthService
	ProfileService      ProfileService
	ArtistService       ArtistService
	BookingService      BookingService
	ReviewService       ReviewService
	PortfolioService    PortfolioService
	NotificationService NotificationService
	DashboardService    DashboardService
	EmailService        *EmailService
}
