package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	ProfileHandler      *ProfileHandler
	ArtistHandler       *ArtistHandler
	BookingHandler      *BookingHandler
	ReviewHandler       *ReviewHandler
	AdminHandler        *AdminHandler
	PortfolioHandler    *PortfolioHandler
	NotificationHandler *NotificationHandler
	DashboardHandler    *DashboardHandler
	FileHandler         *FileHandler
}
