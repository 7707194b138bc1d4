package app

import (
	"errors"
	"fmt"

	"artbook_backend/database"
	"artbook_backend/internal/config"
	"artbook_backend/internal/email"
	"artbook_backend/internal/handlers"
	"artbook_backend/internal/logger"
	"artbook_backend/internal/middleware"
	"artbook_backend/internal/models"
	"artbook_backend/internal/repositories"
	"artbook_backend/internal/routes"
	"artbook_backend/internal/services"
	"artbook_backend/internal/storage"
	"artbook_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		// Без админа модерация не работает - не запускаем сервер
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	storageInstance, err := storage.NewStorage(storage.Config{
		BasePath: cfg.Storage.BasePath,
		BaseURL:  cfg.Storage.BaseURL,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "base_path", cfg.Storage.BasePath)

	serviceContainer := initializeServices(cfg, gormDB, storageInstance)
	appHandlers := initializeHandlers(serviceContainer, storageInstance)

	ginRouter := initializeGinRouter()
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB, storageInstance storage.Storage) *services.ServiceContainer {
	// --- Email: без настроенного SMTP письма просто логируются ---
	smtpConfig := &email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
	}
	var provider email.Provider
	if smtpConfig.Enabled() {
		provider = email.NewSMTPProvider(smtpConfig, email.NewTemplateManager())
	} else {
		logger.Warn("SMTP is not configured, outgoing email is disabled")
		provider = email.NewNoopProvider()
	}
	emailService := services.NewEmailService(provider)

	// --- Репозитории ---
	userRepo := repositories.NewUserRepository(gormDB)
	roleRepo := repositories.NewRoleRepository(gormDB)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(gormDB)
	profileRepo := repositories.NewProfileRepository(gormDB)
	artistRepo := repositories.NewArtistRepository(gormDB)
	bookingRepo := repositories.NewBookingRepository(gormDB)
	reviewRepo := repositories.NewReviewRepository(gormDB)
	portfolioRepo := repositories.NewPortfolioRepository(gormDB)
	notificationRepo := repositories.NewNotificationRepository(gormDB)

	// --- Сервисы ---
	authService := services.NewAuthService(gormDB, userRepo, roleRepo, profileRepo, artistRepo, refreshTokenRepo, emailService, cfg)
	profileService := services.NewProfileService(profileRepo)
	artistService := services.NewArtistService(artistRepo, profileRepo, portfolioRepo, reviewRepo)
	bookingService := services.NewBookingService(gormDB, bookingRepo, artistRepo, profileRepo, roleRepo, notificationRepo)
	reviewService := services.NewReviewService(gormDB, reviewRepo, bookingRepo, artistRepo, profileRepo, notificationRepo)
	portfolioService := services.NewPortfolioService(portfolioRepo, artistRepo, storageInstance, cfg)
	notificationService := services.NewNotificationService(notificationRepo)
	dashboardService := services.NewDashboardService(bookingRepo, reviewRepo, artistRepo, profileRepo, userRepo, roleRepo)

	return &services.ServiceContainer{
		AuthService:         authService,
		ProfileService:      profileService,
		ArtistService:       artistService,
		BookingService:      bookingService,
		ReviewService:       reviewService,
		PortfolioService:    portfolioService,
		NotificationService: notificationService,
		DashboardService:    dashboardService,
		EmailService:        emailService,
	}
}

func initializeHandlers(sc *services.ServiceContainer, storageInstance storage.Storage) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:         handlers.NewAuthHandler(baseHandler, sc.AuthService),
		ProfileHandler:      handlers.NewProfileHandler(baseHandler, sc.ProfileService),
		ArtistHandler:       handlers.NewArtistHandler(baseHandler, sc.ArtistService, sc.ReviewService),
		BookingHandler:      handlers.NewBookingHandler(baseHandler, sc.BookingService),
		ReviewHandler:       handlers.NewReviewHandler(baseHandler, sc.ReviewService),
		AdminHandler:        handlers.NewAdminHandler(baseHandler, sc.ReviewService, sc.DashboardService),
		PortfolioHandler:    handlers.NewPortfolioHandler(baseHandler, sc.PortfolioService),
		NotificationHandler: handlers.NewNotificationHandler(baseHandler, sc.NotificationService),
		DashboardHandler:    handlers.NewDashboardHandler(baseHandler, sc.DashboardService),
		FileHandler:         handlers.NewFileHandler(baseHandler, storageInstance),
	}
}

func initializeGinRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	return router
}

// seedFirstAdmin создает админа из конфигурации, если его еще нет.
// Регистрация с ролью admin через API закрыта, это единственный путь.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.Admin.Email
	adminPassword := cfg.Admin.Password

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("Admin email or password is not configured. Skipping admin seeding.")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var existing models.User
		result := tx.Where("email = ?", adminEmail).First(&existing)
		if result.Error == nil {
			logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
			return nil
		}
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check for admin user: %w", result.Error)
		}

		logger.Warn("No admin user found. Creating first admin...", "email", adminEmail)

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}

		admin := &models.User{
			Email:        adminEmail,
			PasswordHash: string(hashedPassword),
		}
		if err := tx.Create(admin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		fullName := cfg.Admin.FullName
		if fullName == "" {
			fullName = "Platform Administrator"
		}
		profile := &models.Profile{
			UserID:   admin.ID,
			FullName: fullName,
			Email:    adminEmail,
		}
		if err := tx.Create(profile).Error; err != nil {
			return fmt.Errorf("failed to create admin profile: %w", err)
		}

		role := &models.RoleAssignment{
			UserID: admin.ID,
			Role:   models.UserRoleAdmin,
		}
		if err := tx.Create(role).Error; err != nil {
			return fmt.Errorf("failed to assign admin role: %w", err)
		}

		logger.Info("Successfully created first admin user", "email", adminEmail)
		return nil
	})
}
