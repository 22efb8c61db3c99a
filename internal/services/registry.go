package services

import (
	"giglink_backend/internal/email"
	"giglink_backend/internal/identity"
	"giglink_backend/internal/notification"
	"giglink_backend/internal/repositories"
	"giglink_backend/internal/sms"
)

// ServiceContainer holds every application service.
type ServiceContainer struct {
	AuthService        AuthService
	UserService        UserService
	PostService        PostService
	ApplicationService ApplicationService
	MasterService      MasterService
}

func NewServiceContainer(
	emailProvider email.Provider,
	smsProvider sms.Provider,
	verifier identity.Verifier,
	pusher notification.Pusher,
) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	postRepo := repositories.NewPostRepository()
	applicationRepo := repositories.NewApplicationRepository()
	savedPostRepo := repositories.NewSavedPostRepository()
	categoryRepo := repositories.NewCategoryRepository()

	return &ServiceContainer{
		AuthService: NewAuthService(
			userRepo, postRepo, applicationRepo, savedPostRepo,
			emailProvider, smsProvider, verifier,
		),
		UserService:        NewUserService(userRepo),
		PostService:        NewPostService(postRepo, applicationRepo, savedPostRepo),
		ApplicationService: NewApplicationService(applicationRepo, postRepo, userRepo, emailProvider, pusher),
		MasterService:      NewMasterService(categoryRepo),
	}
}
