package services

import (
	"context"
	"time"

	"giglink_backend/internal/auth"
	"giglink_backend/internal/config"
	"giglink_backend/internal/email"
	"giglink_backend/internal/identity"
	"giglink_backend/internal/logger"
	"giglink_backend/internal/models"
	"giglink_backend/internal/otp"
	"giglink_backend/internal/repositories"
	"giglink_backend/internal/services/dto"
	"giglink_backend/internal/sms"
	"giglink_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AuthService interface {
	RequestOTP(ctx context.Context, db *gorm.DB, req *dto.RequestOTPRequest) (*dto.RequestOTPResponse, error)
	VerifyOTP(db *gorm.DB, req *dto.VerifyOTPRequest) (*dto.AuthResponse, error)
	FirebaseSignIn(ctx context.Context, db *gorm.DB, req *dto.FirebaseSignInRequest) (*dto.AuthResponse, error)
	Logout(db *gorm.DB, userID string) error
	DeleteProfile(db *gorm.DB, userID string) error
}

type AuthServiceImpl struct {
	userRepo        repositories.UserRepository
	postRepo        repositories.PostRepository
	applicationRepo repositories.ApplicationRepository
	savedPostRepo   repositories.SavedPostRepository
	emailProvider   email.Provider
	smsProvider     sms.Provider
	verifier        identity.Verifier
}

func NewAuthService(
	userRepo repositories.UserRepository,
	postRepo repositories.PostRepository,
	applicationRepo repositories.ApplicationRepository,
	savedPostRepo repositories.SavedPostRepository,
	emailProvider email.Provider,
	smsProvider sms.Provider,
	verifier identity.Verifier,
) AuthService {
	return &AuthServiceImpl{
		userRepo:        userRepo,
		postRepo:        postRepo,
		applicationRepo: applicationRepo,
		savedPostRepo:   savedPostRepo,
		emailProvider:   emailProvider,
		smsProvider:     smsProvider,
		verifier:        verifier,
	}
}

// RequestOTP finds or provisions the account for the given identifier,
// stores a fresh code and dispatches it over the matching channel. A new
// request always overwrites the previous code, so only one OTP is ever
// outstanding per user. Dispatch failure fails the whole request.
func (s *AuthServiceImpl) RequestOTP(ctx context.Context, db *gorm.DB, req *dto.RequestOTPRequest) (*dto.RequestOTPResponse, error) {
	if req.Email == "" && req.PhoneNumber == "" {
		return nil, apperrors.ErrIdentifierRequired
	}

	role := req.Role
	if role == "" {
		role = models.UserRoleUser
	}

	user, err := s.resolveOrProvision(db, req.Email, req.PhoneNumber, role)
	if err != nil {
		return nil, err
	}

	code := otp.Generate()
	ttl := time.Duration(config.GetConfig().OTP.TTLMinutes) * time.Minute
	if err := s.userRepo.SetOTP(db, user.ID, code, otp.Expiry(ttl)); err != nil {
		return nil, apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "OTP issued", "user_id", user.ID, "identifier", user.Identifier())

	ttlMinutes := int(ttl.Minutes())
	if req.Email != "" {
		err = s.emailProvider.SendOTP(req.Email, code, ttlMinutes)
	} else {
		err = s.smsProvider.SendOTP(req.PhoneNumber, code, ttlMinutes)
	}
	if err != nil {
		logger.CtxWithError(ctx, "OTP dispatch failed", err, "user_id", user.ID)
		return nil, apperrors.ErrOTPDispatchFailed(err)
	}

	profile := dto.NewUserSummary(user)
	return &dto.RequestOTPResponse{
		UserID:    user.ID,
		Profile:   profile,
		IsNewUser: user.IsProvisional(),
	}, nil
}

func (s *AuthServiceImpl) resolveOrProvision(db *gorm.DB, emailAddr, phone string, role models.UserRole) (*models.User, error) {
	var user *models.User
	var err error
	if emailAddr != "" {
		user, err = s.userRepo.FindByEmail(db, emailAddr)
	} else {
		user, err = s.userRepo.FindByPhone(db, phone)
	}
	if err == nil {
		return user, nil
	}
	if !apperrors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.InternalError(err)
	}

	user = &models.User{Role: role}
	if emailAddr != "" {
		user.Email = &emailAddr
	} else {
		user.PhoneNumber = &phone
	}
	if err := s.userRepo.Create(db, user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrAlreadyExists(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

// VerifyOTP checks the submitted code and, on success, consumes it and mints
// the session. First-time registrants must supply both name and password in
// the same call.
func (s *AuthServiceImpl) VerifyOTP(db *gorm.DB, req *dto.VerifyOTPRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByID(db, req.UserID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if user.OTP == nil || user.OTPExpiry == nil {
		return nil, apperrors.ErrOTPNotIssued
	}
	if otp.IsExpired(*user.OTPExpiry) {
		return nil, apperrors.ErrOTPExpired
	}
	if !otp.Match(*user.OTP, req.OTP) {
		return nil, apperrors.ErrOTPMismatch
	}

	isNewUser := user.IsProvisional()
	if isNewUser {
		if req.Name == "" || req.Password == "" {
			return nil, apperrors.ValidationError(map[string]string{
				"name":     "name is required to complete signup",
				"password": "password is required to complete signup",
			})
		}
		if err := auth.ValidatePassword(req.Password); err != nil {
			return nil, apperrors.ErrWeakPassword
		}
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		user.Name = req.Name
		user.PasswordHash = hash
	}

	var tokenEmail string
	if user.Email != nil {
		tokenEmail = *user.Email
	}
	token, err := auth.GenerateToken(user.ID, tokenEmail)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	// The code is single use: clearing it and persisting the session are one
	// atomic step.
	user.OTP = nil
	user.OTPExpiry = nil
	user.SessionToken = &token
	if err := s.userRepo.Update(db, user); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		User:      dto.NewUserSummary(user),
		Token:     token,
		IsNewUser: isNewUser,
	}, nil
}

// FirebaseSignIn exchanges a verified identity assertion for a local session.
// Unknown emails get a fresh account with a locally generated id.
func (s *AuthServiceImpl) FirebaseSignIn(ctx context.Context, db *gorm.DB, req *dto.FirebaseSignInRequest) (*dto.AuthResponse, error) {
	claims, err := s.verifier.Verify(ctx, req.IDToken)
	if err != nil {
		logger.CtxWithError(ctx, "identity assertion rejected", err)
		return nil, apperrors.ErrInvalidToken
	}

	isNewUser := false
	user, err := s.userRepo.FindByEmail(db, claims.Email)
	if err != nil {
		if !apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.InternalError(err)
		}
		emailAddr := claims.Email
		user = &models.User{
			Email: &emailAddr,
			Name:  claims.Name,
			Role:  models.UserRoleUser,
		}
		if err := s.userRepo.Create(db, user); err != nil {
			// A deactivated account still holds the unique email.
			if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
				return nil, apperrors.ErrAlreadyExists(err)
			}
			return nil, apperrors.InternalError(err)
		}
		isNewUser = true
	}

	token, err := auth.GenerateToken(user.ID, claims.Email)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.userRepo.SetSessionToken(db, user.ID, token); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := s.userRepo.SetPushToken(db, user.ID, req.FCMToken); err != nil {
		return nil, apperrors.InternalError(err)
	}
	user.SessionToken = &token
	user.PushToken = req.FCMToken

	return &dto.AuthResponse{
		User:      dto.NewUserSummary(user),
		Token:     token,
		IsNewUser: isNewUser,
	}, nil
}

// Logout revokes the session: the stored token is cleared, so any copy of it
// stops authenticating immediately.
func (s *AuthServiceImpl) Logout(db *gorm.DB, userID string) error {
	if err := s.userRepo.ClearSession(db, userID); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// DeleteProfile removes the account and its footprint in one transaction:
// applications and bookmarks go away, owned posts are retired, the session is
// revoked and the row is soft-deleted.
func (s *AuthServiceImpl) DeleteProfile(db *gorm.DB, userID string) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := s.applicationRepo.DeleteByUser(tx, userID); err != nil {
			return err
		}
		if err := s.savedPostRepo.DeleteByUser(tx, userID); err != nil {
			return err
		}
		if err := s.postRepo.SoftDeleteByOwner(tx, userID); err != nil {
			return err
		}
		return s.userRepo.Deactivate(tx, userID)
	})
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}
