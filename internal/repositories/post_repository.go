package repositories

import (
	"errors"
	"time"

	"giglink_backend/internal/models"

	"gorm.io/gorm"
)

var ErrPostNotFound = errors.New("post not found")

type PostRepository interface {
	Create(db *gorm.DB, post *models.Post) error
	FindByID(db *gorm.DB, id string) (*models.Post, error)
	Update(db *gorm.DB, post *models.Post) error
	SoftDelete(db *gorm.DB, id string) error
	SoftDeleteByOwner(db *gorm.DB, ownerID string) error

	FindActive(db *gorm.DB, location string, now time.Time, limit, offset int) ([]models.Post, int64, error)
	FindByOwner(db *gorm.DB, ownerID string, filter models.PostFilter, now time.Time, limit, offset int) ([]models.Post, int64, error)

	CountApplicantsByPost(db *gorm.DB, postIDs []string) (map[string]int64, error)
	StatusTallyForOwner(db *gorm.DB, ownerID string, filter models.PostFilter, now time.Time) (map[models.ApplicationStatus]int64, error)
}

type PostRepositoryImpl struct{}

func NewPostRepository() PostRepository {
	return &PostRepositoryImpl{}
}

func (r *PostRepositoryImpl) Create(db *gorm.DB, post *models.Post) error {
	return db.Create(post).Error
}

func (r *PostRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Post, error) {
	var post models.Post
	err := db.First(&post, "id = ? AND is_active = ?", id, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *PostRepositoryImpl) Update(db *gorm.DB, post *models.Post) error {
	result := db.Save(post)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}

func (r *PostRepositoryImpl) SoftDelete(db *gorm.DB, id string) error {
	result := db.Model(&models.Post{}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}

// SoftDeleteByOwner retires every live post of a user. Used when the account
// itself is deleted.
func (r *PostRepositoryImpl) SoftDeleteByOwner(db *gorm.DB, ownerID string) error {
	return db.Model(&models.Post{}).
		Where("user_id = ? AND is_active = ?", ownerID, true).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now(),
		}).Error
}

// FindActive lists the public feed: live posts whose end date has not passed,
// newest first. Location, when present, narrows by exact match.
func (r *PostRepositoryImpl) FindActive(db *gorm.DB, location string, now time.Time, limit, offset int) ([]models.Post, int64, error) {
	var posts []models.Post
	var total int64

	query := db.Model(&models.Post{}).
		Where("is_active = ? AND end_date > ?", true, now)
	if location != "" {
		query = query.Where("location = ?", location)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *PostRepositoryImpl) FindByOwner(db *gorm.DB, ownerID string, filter models.PostFilter, now time.Time, limit, offset int) ([]models.Post, int64, error) {
	var posts []models.Post
	var total int64

	query := db.Model(&models.Post{}).
		Where("user_id = ? AND is_active = ?", ownerID, true)
	query = applyPostFilter(query, filter, now)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

type applicantCountRow struct {
	PostID string
	Count  int64
}

// CountApplicantsByPost returns applicant totals keyed by post id. Posts with
// no applications are absent from the map.
func (r *PostRepositoryImpl) CountApplicantsByPost(db *gorm.DB, postIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}

	var rows []applicantCountRow
	err := db.Model(&models.Application{}).
		Select("post_id, COUNT(*) AS count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.PostID] = row.Count
	}
	return counts, nil
}

type statusTallyRow struct {
	Status models.ApplicationStatus
	Count  int64
}

// StatusTallyForOwner aggregates application statuses across the owner's
// posts, partitioned by whether those posts are still running.
func (r *PostRepositoryImpl) StatusTallyForOwner(db *gorm.DB, ownerID string, filter models.PostFilter, now time.Time) (map[models.ApplicationStatus]int64, error) {
	query := db.Model(&models.Application{}).
		Select("applications.status, COUNT(*) AS count").
		Joins("JOIN posts ON posts.id = applications.post_id").
		Where("posts.user_id = ? AND posts.is_active = ?", ownerID, true)
	query = applyPostFilter(query, filter, now)

	var rows []statusTallyRow
	if err := query.Group("applications.status").Scan(&rows).Error; err != nil {
		return nil, err
	}

	tally := make(map[models.ApplicationStatus]int64, len(rows))
	for _, row := range rows {
		tally[row.Status] = row.Count
	}
	return tally, nil
}

func applyPostFilter(query *gorm.DB, filter models.PostFilter, now time.Time) *gorm.DB {
	switch filter {
	case models.PostFilterCompleted:
		return query.Where("posts.end_date <= ?", now)
	default:
		return query.Where("posts.end_date > ?", now)
	}
}
