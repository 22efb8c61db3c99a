package services

import (
	"fmt"
	"time"

	"giglink_backend/internal/email"
	"giglink_backend/internal/logger"
	"giglink_backend/internal/models"
	"giglink_backend/internal/notification"
	"giglink_backend/internal/repositories"
	"giglink_backend/internal/services/dto"
	"giglink_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ApplicationService interface {
	Apply(db *gorm.DB, userID, postID string, req *dto.ApplyRequest) (*dto.ApplicationResponse, error)
	SetStatus(db *gorm.DB, callerID, applicationID string, status models.ApplicationStatus) (*dto.ApplicationResponse, error)
	ListForPost(db *gorm.DB, callerID, postID string, status models.ApplicationStatus, page, limit int) (*dto.ApplicationListResponse, error)
	GetAppliedPosts(db *gorm.DB, userID string, page, limit int) (*dto.ApplicationListResponse, error)
}

type ApplicationServiceImpl struct {
	applicationRepo repositories.ApplicationRepository
	postRepo        repositories.PostRepository
	userRepo        repositories.UserRepository
	emailProvider   email.Provider
	pusher          notification.Pusher
}

func NewApplicationService(
	applicationRepo repositories.ApplicationRepository,
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	emailProvider email.Provider,
	pusher notification.Pusher,
) ApplicationService {
	return &ApplicationServiceImpl{
		applicationRepo: applicationRepo,
		postRepo:        postRepo,
		userRepo:        userRepo,
		emailProvider:   emailProvider,
		pusher:          pusher,
	}
}

// Apply creates a pending application. The pre-checks give friendly errors;
// the unique (user_id, post_id) index is the real guard, so concurrent
// duplicates surface as a conflict rather than a second row.
func (s *ApplicationServiceImpl) Apply(db *gorm.DB, userID, postID string, req *dto.ApplyRequest) (*dto.ApplicationResponse, error) {
	post, err := s.postRepo.FindByID(db, postID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPostNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	now := time.Now()
	if post.IsExpired(now) {
		return nil, apperrors.ErrPostClosed
	}
	if post.UserID == userID {
		return nil, apperrors.ErrSelfApplication
	}

	if _, err := s.applicationRepo.FindByUserAndPost(db, userID, postID); err == nil {
		return nil, apperrors.ErrAlreadyApplied
	} else if !apperrors.Is(err, repositories.ErrApplicationNotFound) {
		return nil, apperrors.InternalError(err)
	}

	application := &models.Application{
		UserID:  userID,
		PostID:  postID,
		Content: req.Content,
		Status:  models.ApplicationStatusPending,
	}
	if err := s.applicationRepo.Create(db, application); err != nil {
		if apperrors.Is(err, repositories.ErrDuplicateApplication) {
			return nil, apperrors.ErrConflict(err, "application", "Application already submitted")
		}
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewApplicationResponse(application, post, now)
	return &resp, nil
}

// SetStatus overwrites the stored status unconditionally; there is no
// transition table. Only the post owner may call it. The applicant is
// notified over push and email, both best effort.
func (s *ApplicationServiceImpl) SetStatus(db *gorm.DB, callerID, applicationID string, status models.ApplicationStatus) (*dto.ApplicationResponse, error) {
	application, err := s.applicationRepo.FindByID(db, applicationID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if application.Post.UserID != callerID {
		return nil, apperrors.ErrNotPostOwner
	}

	if err := s.applicationRepo.UpdateStatus(db, applicationID, status); err != nil {
		if apperrors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	application.Status = status

	if applicant, err := s.userRepo.FindByID(db, application.UserID); err == nil {
		if applicant.PushToken != "" {
			body := fmt.Sprintf("Your application for %q is now %s", application.Post.Title, status)
			notification.Notify(s.pusher, applicant.PushToken, "Application update", body)
		}
		if applicant.Email != nil && *applicant.Email != "" {
			err := s.emailProvider.SendTemplate(
				[]string{*applicant.Email},
				"Application update",
				"application_status",
				email.TemplateData{"PostTitle": application.Post.Title, "Status": string(status)},
			)
			if err != nil {
				logger.Warn("status email failed", "application_id", applicationID, "error", err.Error())
			}
		}
	}

	resp := dto.NewApplicationResponse(application, &application.Post, time.Now())
	// Owner view keeps the stored status even for ended posts.
	resp.Status = status
	return &resp, nil
}

// ListForPost is the owner's applicant pipeline for one post, filtered by
// exact status (default pending).
func (s *ApplicationServiceImpl) ListForPost(db *gorm.DB, callerID, postID string, status models.ApplicationStatus, page, limit int) (*dto.ApplicationListResponse, error) {
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

	if status == "" {
		status = models.ApplicationStatusPending
	}

	applications, total, err := s.applicationRepo.ListByPost(db, postID, status, limit, (page-1)*limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.ApplicationResponse, len(applications))
	for i := range applications {
		item := dto.NewApplicationResponse(&applications[i], nil, time.Now())
		applicant := dto.NewUserSummary(&applications[i].User)
		item.Applicant = &applicant
		items[i] = item
	}

	return &dto.ApplicationListResponse{
		Applications: items,
		Pagination:   dto.NewPagination(page, limit, total),
	}, nil
}

// GetAppliedPosts lists the user's applications with the effective status:
// once a post's end date passes, the applicant sees "closed".
func (s *ApplicationServiceImpl) GetAppliedPosts(db *gorm.DB, userID string, page, limit int) (*dto.ApplicationListResponse, error) {
	applications, total, err := s.applicationRepo.ListByUser(db, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	now := time.Now()
	items := make([]dto.ApplicationResponse, len(applications))
	for i := range applications {
		items[i] = dto.NewApplicationResponse(&applications[i], &applications[i].Post, now)
	}

	return &dto.ApplicationListResponse{
		Applications: items,
		Pagination:   dto.NewPagination(page, limit, total),
	}, nil
}
