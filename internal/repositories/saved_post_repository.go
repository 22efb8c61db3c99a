package repositories

import (
	"errors"

	"giglink_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrSavedPostNotFound = errors.New("saved post not found")
	ErrPostAlreadySaved  = errors.New("post already saved")
)

type SavedPostRepository interface {
	Create(db *gorm.DB, saved *models.SavedPost) error
	Delete(db *gorm.DB, userID, postID string) error
	ListByUser(db *gorm.DB, userID string, limit, offset int) ([]models.SavedPost, int64, error)
	SavedPostIDs(db *gorm.DB, userID string, postIDs []string) (map[string]bool, error)
	DeleteByUser(db *gorm.DB, userID string) error
}

type SavedPostRepositoryImpl struct{}

func NewSavedPostRepository() SavedPostRepository {
	return &SavedPostRepositoryImpl{}
}

func (r *SavedPostRepositoryImpl) Create(db *gorm.DB, saved *models.SavedPost) error {
	if err := db.Create(saved).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrPostAlreadySaved
		}
		return err
	}
	return nil
}

func (r *SavedPostRepositoryImpl) Delete(db *gorm.DB, userID, postID string) error {
	result := db.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.SavedPost{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSavedPostNotFound
	}
	return nil
}

// ListByUser returns the user's bookmarks with posts attached, newest save
// first. Bookmarks pointing at soft-deleted posts are excluded.
func (r *SavedPostRepositoryImpl) ListByUser(db *gorm.DB, userID string, limit, offset int) ([]models.SavedPost, int64, error) {
	var saved []models.SavedPost
	var total int64

	query := db.Model(&models.SavedPost{}).
		Joins("JOIN posts ON posts.id = saved_posts.post_id").
		Where("saved_posts.user_id = ? AND posts.is_active = ?", userID, true)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Post").
		Order("saved_posts.created_at DESC").
		Limit(limit).Offset(offset).
		Find(&saved).Error
	if err != nil {
		return nil, 0, err
	}
	return saved, total, nil
}

func (r *SavedPostRepositoryImpl) SavedPostIDs(db *gorm.DB, userID string, postIDs []string) (map[string]bool, error) {
	savedSet := make(map[string]bool, len(postIDs))
	if len(postIDs) == 0 {
		return savedSet, nil
	}

	var ids []string
	err := db.Model(&models.SavedPost{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &ids).Error
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		savedSet[id] = true
	}
	return savedSet, nil
}

func (r *SavedPostRepositoryImpl) DeleteByUser(db *gorm.DB, userID string) error {
	return db.Where("user_id = ?", userID).Delete(&models.SavedPost{}).Error
}
