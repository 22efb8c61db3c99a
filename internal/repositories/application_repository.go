package repositories

import (
	"errors"
	"time"

	"giglink_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrApplicationNotFound  = errors.New("application not found")
	ErrDuplicateApplication = errors.New("application already exists")
)

type ApplicationRepository interface {
	Create(db *gorm.DB, application *models.Application) error
	FindByID(db *gorm.DB, id string) (*models.Application, error)
	FindByUserAndPost(db *gorm.DB, userID, postID string) (*models.Application, error)
	UpdateStatus(db *gorm.DB, id string, status models.ApplicationStatus) error

	ListByPost(db *gorm.DB, postID string, status models.ApplicationStatus, limit, offset int) ([]models.Application, int64, error)
	ListByUser(db *gorm.DB, userID string, limit, offset int) ([]models.Application, int64, error)
	AppliedPostIDs(db *gorm.DB, userID string, postIDs []string) (map[string]bool, error)

	DeleteByUser(db *gorm.DB, userID string) error
}

type ApplicationRepositoryImpl struct{}

func NewApplicationRepository() ApplicationRepository {
	return &ApplicationRepositoryImpl{}
}

// Create relies on the unique (user_id, post_id) index, so two concurrent
// applies resolve to one row and one ErrDuplicateApplication.
func (r *ApplicationRepositoryImpl) Create(db *gorm.DB, application *models.Application) error {
	if err := db.Create(application).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateApplication
		}
		return err
	}
	return nil
}

func (r *ApplicationRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Application, error) {
	var application models.Application
	err := db.Preload("Post").First(&application, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &application, nil
}

func (r *ApplicationRepositoryImpl) FindByUserAndPost(db *gorm.DB, userID, postID string) (*models.Application, error) {
	var application models.Application
	err := db.First(&application, "user_id = ? AND post_id = ?", userID, postID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &application, nil
}

func (r *ApplicationRepositoryImpl) UpdateStatus(db *gorm.DB, id string, status models.ApplicationStatus) error {
	result := db.Model(&models.Application{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

// ListByPost returns applications for a post together with their applicants.
// Rows whose applicant was soft-deleted are filtered out.
func (r *ApplicationRepositoryImpl) ListByPost(db *gorm.DB, postID string, status models.ApplicationStatus, limit, offset int) ([]models.Application, int64, error) {
	var applications []models.Application
	var total int64

	query := db.Model(&models.Application{}).
		Joins("JOIN users ON users.id = applications.user_id").
		Where("applications.post_id = ? AND users.is_active = ?", postID, true)
	if status != "" {
		query = query.Where("applications.status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("User").
		Order("applications.created_at DESC").
		Limit(limit).Offset(offset).
		Find(&applications).Error
	if err != nil {
		return nil, 0, err
	}
	return applications, total, nil
}

// ListByUser returns the user's applications with their posts, including
// posts that have since closed. Soft-deleted posts drop out.
func (r *ApplicationRepositoryImpl) ListByUser(db *gorm.DB, userID string, limit, offset int) ([]models.Application, int64, error) {
	var applications []models.Application
	var total int64

	query := db.Model(&models.Application{}).
		Joins("JOIN posts ON posts.id = applications.post_id").
		Where("applications.user_id = ? AND posts.is_active = ?", userID, true)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Post").
		Order("applications.created_at DESC").
		Limit(limit).Offset(offset).
		Find(&applications).Error
	if err != nil {
		return nil, 0, err
	}
	return applications, total, nil
}

// AppliedPostIDs reports which of the given posts the user has applied to.
func (r *ApplicationRepositoryImpl) AppliedPostIDs(db *gorm.DB, userID string, postIDs []string) (map[string]bool, error) {
	applied := make(map[string]bool, len(postIDs))
	if len(postIDs) == 0 {
		return applied, nil
	}

	var ids []string
	err := db.Model(&models.Application{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &ids).Error
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		applied[id] = true
	}
	return applied, nil
}

func (r *ApplicationRepositoryImpl) DeleteByUser(db *gorm.DB, userID string) error {
	return db.Where("user_id = ?", userID).Delete(&models.Application{}).Error
}
