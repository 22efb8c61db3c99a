package repositories

import (
	"errors"

	"giglink_backend/internal/models"

	"gorm.io/gorm"
)

var ErrCategoryAlreadyExists = errors.New("job category already exists")

type CategoryRepository interface {
	Create(db *gorm.DB, category *models.JobCategory) error
	FindAll(db *gorm.DB) ([]models.JobCategory, error)
	Count(db *gorm.DB) (int64, error)
}

type CategoryRepositoryImpl struct{}

func NewCategoryRepository() CategoryRepository {
	return &CategoryRepositoryImpl{}
}

func (r *CategoryRepositoryImpl) Create(db *gorm.DB, category *models.JobCategory) error {
	if err := db.Create(category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrCategoryAlreadyExists
		}
		return err
	}
	return nil
}

func (r *CategoryRepositoryImpl) FindAll(db *gorm.DB) ([]models.JobCategory, error) {
	var categories []models.JobCategory
	if err := db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CategoryRepositoryImpl) Count(db *gorm.DB) (int64, error) {
	var total int64
	if err := db.Model(&models.JobCategory{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
