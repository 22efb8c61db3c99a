package app

import (
	"context"
	"errors"
	"fmt"

	"giglink_backend/internal/auth"
	"giglink_backend/internal/config"
	"giglink_backend/internal/email"
	"giglink_backend/internal/handlers"
	"giglink_backend/internal/identity"
	"giglink_backend/internal/logger"
	"giglink_backend/internal/middleware"
	"giglink_backend/internal/models"
	"giglink_backend/internal/notification"
	"giglink_backend/internal/routes"
	"giglink_backend/internal/services"
	"giglink_backend/internal/sms"
	"giglink_backend/internal/validator"
	"giglink_backend/internal/workers"
	"giglink_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var defaultJobCategories = []string{
	"Hospitality",
	"Retail",
	"Events",
	"Logistics",
	"Construction",
	"Healthcare",
	"IT & Software",
	"Marketing",
}

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	apperrors.SetDebug(cfg.Server.Env != "production")

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		TranslateError: true,
	})
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

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	otpWorker := workers.NewOTPWorker(gormDB)
	otpWorker.Start(context.Background())

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter assembles the full engine. Tests call it directly against
// their own database handle.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	serviceContainer := initializeServices(cfg)

	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter(gormDB)

	routes.RegisterRoutes(ginRouter, appHandlers)

	if err := seedJobCategories(gormDB, serviceContainer.MasterService); err != nil {
		logger.Fatal("Failed to seed job categories", "error", err)
	}

	return ginRouter
}

func initializeServices(cfg *config.Config) *services.ServiceContainer {
	var emailProvider email.Provider
	if cfg.Email.SMTPUsername == "" {
		logger.Warn("SMTP credentials missing, using mock email provider")
		emailProvider = &MockEmailProvider{}
	} else {
		smtpCfg := email.DefaultConfig()
		if cfg.Email.SMTPHost != "" {
			smtpCfg.Host = cfg.Email.SMTPHost
		}
		if cfg.Email.SMTPPort != 0 {
			smtpCfg.Port = cfg.Email.SMTPPort
		}
		smtpCfg.Username = cfg.Email.SMTPUsername
		smtpCfg.Password = cfg.Email.SMTPPassword
		smtpCfg.FromEmail = cfg.Email.FromEmail
		smtpCfg.FromName = cfg.Email.FromName
		emailProvider = email.NewSMTPProvider(smtpCfg, email.NewTemplateManager())
	}

	var verifier identity.Verifier
	if cfg.Google.ClientID == "" {
		logger.Warn("Google client id missing, federated sign-in disabled")
		verifier = &DisabledVerifier{}
	} else {
		verifier = identity.NewGoogleVerifier(cfg.Google.ClientID)
	}

	smsProvider := &sms.LogProvider{}
	pusher := &notification.LogPusher{}

	return services.NewServiceContainer(emailProvider, smsProvider, verifier, pusher)
}

func initializeHandlers(container *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	return handlers.NewAppHandlers(container, customValidator)
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}

func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.FirstAdminEmail
	adminPassword := cfg.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("First admin credentials not configured, skipping admin seeding")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var adminUser models.User
		result := tx.Where("email = ?", adminEmail).First(&adminUser)
		if result.Error == nil {
			logger.Info("Admin user already exists, skipping creation", "email", adminEmail)
			return nil
		}
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check for admin user: %w", result.Error)
		}

		logger.Warn("No admin user found, creating first admin", "email", adminEmail)

		hash, err := auth.HashPassword(adminPassword)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}

		newAdmin := &models.User{
			Email:        &adminEmail,
			Name:         "Administrator",
			PasswordHash: hash,
			Role:         models.UserRoleAdmin,
			IsActive:     true,
		}
		if err := tx.Create(newAdmin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}
		return nil
	})
}

func seedJobCategories(db *gorm.DB, masterService services.MasterService) error {
	return masterService.SeedCategories(db, defaultJobCategories)
}
