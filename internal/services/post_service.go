package services

import (
	"time"

	"giglink_backend/internal/models"
	"giglink_backend/internal/repositories"
	"giglink_backend/internal/services/dto"
	"giglink_backend/pkg/apperrors"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type PostService interface {
	CreatePost(db *gorm.DB, ownerID string, req *dto.CreatePostRequest) (*dto.PostResponse, error)
	UpdatePost(db *gorm.DB, callerID, postID string, req *dto.UpdatePostRequest) (*dto.PostResponse, error)
	DeletePost(db *gorm.DB, callerID, postID string) error
	GetPostByID(db *gorm.DB, postID string) (*dto.PostResponse, error)
	GetAllPosts(db *gorm.DB, callerID, location string, page, limit int) (*dto.PostListResponse, error)

	SavePost(db *gorm.DB, userID, postID string) error
	UnsavePost(db *gorm.DB, userID, postID string) error
	GetSavedPosts(db *gorm.DB, userID string, page, limit int) (*dto.PostListResponse, error)

	GetOwnerDashboard(db *gorm.DB, ownerID string, filter models.PostFilter, page, limit int) (*dto.DashboardResponse, error)
}

type PostServiceImpl struct {
	postRepo        repositories.PostRepository
	applicationRepo repositories.ApplicationRepository
	savedPostRepo   repositories.SavedPostRepository
}

func NewPostService(
	postRepo repositories.PostRepository,
	applicationRepo repositories.ApplicationRepository,
	savedPostRepo repositories.SavedPostRepository,
) PostService {
	return &PostServiceImpl{
		postRepo:        postRepo,
		applicationRepo: applicationRepo,
		savedPostRepo:   savedPostRepo,
	}
}

func (s *PostServiceImpl) CreatePost(db *gorm.DB, ownerID string, req *dto.CreatePostRequest) (*dto.PostResponse, error) {
	if !req.EndDate.After(req.StartDate) {
		return nil, apperrors.ValidationError(map[string]string{
			"end_date": "end_date must be after start_date",
		})
	}

	post := &models.Post{
		UserID:         ownerID,
		Title:          req.Title,
		Content:        req.Content,
		Designation:    req.Designation,
		Requirement:    req.Requirement,
		TotalSlots:     req.TotalSlots,
		Location:       req.Location,
		Responsibility: req.Responsibility,
		PaymentAmount:  req.PaymentAmount,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		PaymentDate:    req.PaymentDate,
		CompanyName:    req.CompanyName,
		Tags:           pq.StringArray(req.Tags),
		IsActive:       true,
	}
	if err := s.postRepo.Create(db, post); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewPostResponse(post, time.Now())
	return &resp, nil
}

func (s *PostServiceImpl) UpdatePost(db *gorm.DB, callerID, postID string, req *dto.UpdatePostRequest) (*dto.PostResponse, error) {
	post, err := s.loadOwnedPost(db, callerID, postID)
	if err != nil {
		return nil, err
	}

	applyPostPatch(post, req)
	if !post.EndDate.After(post.StartDate) {
		return nil, apperrors.ValidationError(map[string]string{
			"end_date": "end_date must be after start_date",
		})
	}

	if err := s.postRepo.Update(db, post); err != nil {
		if apperrors.Is(err, repositories.ErrPostNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewPostResponse(post, time.Now())
	return &resp, nil
}

func (s *PostServiceImpl) DeletePost(db *gorm.DB, callerID, postID string) error {
	if _, err := s.loadOwnedPost(db, callerID, postID); err != nil {
		return err
	}
	if err := s.postRepo.SoftDelete(db, postID); err != nil {
		if apperrors.Is(err, repositories.ErrPostNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// GetPostByID resolves live posts only. A soft-deleted post is not found for
// anyone, owner included.
func (s *PostServiceImpl) GetPostByID(db *gorm.DB, postID string) (*dto.PostResponse, error) {
	post, err := s.postRepo.FindByID(db, postID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPostNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	resp := dto.NewPostResponse(post, time.Now())
	return &resp, nil
}

// GetAllPosts is the job-seeker feed: live, unexpired posts annotated with
// the caller's own applied and saved flags.
func (s *PostServiceImpl) GetAllPosts(db *gorm.DB, callerID, location string, page, limit int) (*dto.PostListResponse, error) {
	now := time.Now()
	posts, total, err := s.postRepo.FindActive(db, location, now, limit, (page-1)*limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	postIDs := make([]string, len(posts))
	for i := range posts {
		postIDs[i] = posts[i].ID
	}
	applied, err := s.applicationRepo.AppliedPostIDs(db, callerID, postIDs)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	saved, err := s.savedPostRepo.SavedPostIDs(db, callerID, postIDs)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.PostResponse, len(posts))
	for i := range posts {
		item := dto.NewPostResponse(&posts[i], now)
		isApplied := applied[posts[i].ID]
		isSaved := saved[posts[i].ID]
		item.IsApplied = &isApplied
		item.IsSaved = &isSaved
		items[i] = item
	}

	return &dto.PostListResponse{
		Posts:      items,
		Pagination: dto.NewPagination(page, limit, total),
	}, nil
}

func (s *PostServiceImpl) SavePost(db *gorm.DB, userID, postID string) error {
	post, err := s.postRepo.FindByID(db, postID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPostNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	saved := &models.SavedPost{UserID: userID, PostID: post.ID}
	if err := s.savedPostRepo.Create(db, saved); err != nil {
		if apperrors.Is(err, repositories.ErrPostAlreadySaved) {
			return apperrors.ErrAlreadyExists(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *PostServiceImpl) UnsavePost(db *gorm.DB, userID, postID string) error {
	if err := s.savedPostRepo.Delete(db, userID, postID); err != nil {
		if apperrors.Is(err, repositories.ErrSavedPostNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *PostServiceImpl) GetSavedPosts(db *gorm.DB, userID string, page, limit int) (*dto.PostListResponse, error) {
	now := time.Now()
	saved, total, err := s.savedPostRepo.ListByUser(db, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.PostResponse, 0, len(saved))
	for i := range saved {
		items = append(items, dto.NewPostResponse(&saved[i].Post, now))
	}

	return &dto.PostListResponse{
		Posts:      items,
		Pagination: dto.NewPagination(page, limit, total),
	}, nil
}

// GetOwnerDashboard lists the recruiter's posts for the chosen window
// (running vs completed) with per-post applicant counts and an overall
// status tally.
func (s *PostServiceImpl) GetOwnerDashboard(db *gorm.DB, ownerID string, filter models.PostFilter, page, limit int) (*dto.DashboardResponse, error) {
	now := time.Now()
	if filter == "" {
		filter = models.PostFilterActive
	}

	posts, total, err := s.postRepo.FindByOwner(db, ownerID, filter, now, limit, (page-1)*limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	postIDs := make([]string, len(posts))
	for i := range posts {
		postIDs[i] = posts[i].ID
	}
	counts, err := s.postRepo.CountApplicantsByPost(db, postIDs)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	tally, err := s.postRepo.StatusTallyForOwner(db, ownerID, filter, now)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	statusTally := make(map[string]int64, len(tally))
	for status, count := range tally {
		statusTally[string(status)] = count
	}

	rows := make([]dto.DashboardPost, len(posts))
	for i := range posts {
		rows[i] = dto.DashboardPost{
			PostResponse:   dto.NewPostResponse(&posts[i], now),
			ApplicantCount: counts[posts[i].ID],
		}
	}

	return &dto.DashboardResponse{
		Posts:       rows,
		StatusTally: statusTally,
		Pagination:  dto.NewPagination(page, limit, total),
	}, nil
}

func (s *PostServiceImpl) loadOwnedPost(db *gorm.DB, callerID, postID string) (*models.Post, error) {
	post, err := s.postRepo.FindByID(db, postID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPostNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if post.UserID != callerID {
		return nil, apperrors.ErrNotPostOwner
	}
	return post, nil
}

func applyPostPatch(post *models.Post, req *dto.UpdatePostRequest) {
	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.Designation != nil {
		post.Designation = *req.Designation
	}
	if req.Requirement != nil {
		post.Requirement = *req.Requirement
	}
	if req.TotalSlots != nil {
		post.TotalSlots = *req.TotalSlots
	}
	if req.Location != nil {
		post.Location = *req.Location
	}
	if req.Responsibility != nil {
		post.Responsibility = *req.Responsibility
	}
	if req.PaymentAmount != nil {
		post.PaymentAmount = *req.PaymentAmount
	}
	if req.StartDate != nil {
		post.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		post.EndDate = *req.EndDate
	}
	if req.PaymentDate != nil {
		post.PaymentDate = req.PaymentDate
	}
	if req.CompanyName != nil {
		post.CompanyName = *req.CompanyName
	}
	if req.Tags != nil {
		post.Tags = pq.StringArray(req.Tags)
	}
}
