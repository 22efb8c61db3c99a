package repositories

import (
	"errors"
	"time"

	"giglink_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

type UserRepository interface {
	FindByID(db *gorm.DB, id string) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	FindByPhone(db *gorm.DB, phone string) (*models.User, error)
	Create(db *gorm.DB, user *models.User) error
	Update(db *gorm.DB, user *models.User) error

	SetOTP(db *gorm.DB, userID string, code string, expiry time.Time) error
	SetSessionToken(db *gorm.DB, userID string, token string) error
	SetPushToken(db *gorm.DB, userID string, pushToken string) error
	ClearSession(db *gorm.DB, userID string) error
	Deactivate(db *gorm.DB, userID string) error

	FindAll(db *gorm.DB, limit, offset int) ([]models.User, int64, error)
}

type UserRepositoryImpl struct{}

func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{}
}

// FindByID resolves an active user. Soft-deleted accounts behave as absent
// everywhere.
func (r *UserRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "id = ? AND is_active = ?", id, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "email = ? AND is_active = ?", email, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByPhone(db *gorm.DB, phone string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "phone_number = ? AND is_active = ?", phone, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Create(db *gorm.DB, user *models.User) error {
	if err := db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *UserRepositoryImpl) Update(db *gorm.DB, user *models.User) error {
	result := db.Save(user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrUserAlreadyExists
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// SetOTP overwrites the outstanding code: at most one OTP per user exists at
// a time, and issuing a new one invalidates any prior unverified code.
func (r *UserRepositoryImpl) SetOTP(db *gorm.DB, userID string, code string, expiry time.Time) error {
	return r.updateColumns(db, userID, map[string]interface{}{
		"otp":        code,
		"otp_expiry": expiry,
	})
}

func (r *UserRepositoryImpl) SetSessionToken(db *gorm.DB, userID string, token string) error {
	return r.updateColumns(db, userID, map[string]interface{}{
		"session_token": token,
	})
}

func (r *UserRepositoryImpl) SetPushToken(db *gorm.DB, userID string, pushToken string) error {
	return r.updateColumns(db, userID, map[string]interface{}{
		"push_token": pushToken,
	})
}

// ClearSession is the logout contract: drops the stored credential and the
// push token so no previously issued token authenticates again.
func (r *UserRepositoryImpl) ClearSession(db *gorm.DB, userID string) error {
	return r.updateColumns(db, userID, map[string]interface{}{
		"session_token": nil,
		"push_token":    "",
	})
}

func (r *UserRepositoryImpl) Deactivate(db *gorm.DB, userID string) error {
	return r.updateColumns(db, userID, map[string]interface{}{
		"session_token": nil,
		"push_token":    "",
		"is_active":     false,
	})
}

func (r *UserRepositoryImpl) FindAll(db *gorm.DB, limit, offset int) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	query := db.Model(&models.User{}).Where("is_active = ?", true)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *UserRepositoryImpl) updateColumns(db *gorm.DB, userID string, values map[string]interface{}) error {
	values["updated_at"] = time.Now()
	result := db.Model(&models.User{}).Where("id = ?", userID).Updates(values)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
