package handlers

import (
	"giglink_backend/internal/services"
	"giglink_backend/internal/validator"
)

// AppHandlers groups every HTTP handler behind one constructor.
type AppHandlers struct {
	Auth   *AuthHandler
	User   *UserHandler
	Post   *PostHandler
	Master *MasterHandler
}

func NewAppHandlers(container *services.ServiceContainer, v *validator.Validator) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		Auth:   NewAuthHandler(base, container.AuthService),
		User:   NewUserHandler(base, container.UserService),
		Post:   NewPostHandler(base, container.PostService, container.ApplicationService),
		Master: NewMasterHandler(base, container.MasterService),
	}
}
