package services

import (
	"giglink_backend/internal/models"
	"giglink_backend/internal/repositories"
	"giglink_backend/internal/services/dto"
	"giglink_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type MasterService interface {
	ListCategories(db *gorm.DB) ([]dto.CategoryResponse, error)
	SeedCategories(db *gorm.DB, names []string) error
}

type MasterServiceImpl struct {
	categoryRepo repositories.CategoryRepository
}

func NewMasterService(categoryRepo repositories.CategoryRepository) MasterService {
	return &MasterServiceImpl{categoryRepo: categoryRepo}
}

func (s *MasterServiceImpl) ListCategories(db *gorm.DB) ([]dto.CategoryResponse, error) {
	categories, err := s.categoryRepo.FindAll(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.CategoryResponse, len(categories))
	for i := range categories {
		items[i] = dto.NewCategoryResponse(&categories[i])
	}
	return items, nil
}

// SeedCategories inserts the default category list once. A non-empty table
// means a previous boot already seeded it.
func (s *MasterServiceImpl) SeedCategories(db *gorm.DB, names []string) error {
	count, err := s.categoryRepo.Count(db)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, name := range names {
		if err := s.categoryRepo.Create(db, &models.JobCategory{Name: name}); err != nil {
			if apperrors.Is(err, repositories.ErrCategoryAlreadyExists) {
				continue
			}
			return err
		}
	}
	return nil
}
