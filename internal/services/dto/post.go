package dto

import (
	"time"

	"giglink_backend/internal/models"
)

type CreatePostRequest struct {
	Title          string     `json:"title" validate:"required,min=3,max=200"`
	Content        string     `json:"content" validate:"required"`
	Designation    string     `json:"designation"`
	Requirement    string     `json:"requirement"`
	TotalSlots     int        `json:"total_slots" validate:"omitempty,gte=0"`
	Location       string     `json:"location"`
	Responsibility string     `json:"responsibility"`
	PaymentAmount  float64    `json:"payment_amount" validate:"omitempty,gte=0"`
	StartDate      time.Time  `json:"start_date" validate:"required"`
	EndDate        time.Time  `json:"end_date" validate:"required"`
	PaymentDate    *time.Time `json:"payment_date"`
	CompanyName    string     `json:"company_name"`
	Tags           []string   `json:"tags" validate:"omitempty,max=20,dive,min=1,max=50"`
}

// UpdatePostRequest patches a post. Nil fields stay untouched.
type UpdatePostRequest struct {
	Title          *string    `json:"title" validate:"omitempty,min=3,max=200"`
	Content        *string    `json:"content" validate:"omitempty,min=1"`
	Designation    *string    `json:"designation"`
	Requirement    *string    `json:"requirement"`
	TotalSlots     *int       `json:"total_slots" validate:"omitempty,gte=0"`
	Location       *string    `json:"location"`
	Responsibility *string    `json:"responsibility"`
	PaymentAmount  *float64   `json:"payment_amount" validate:"omitempty,gte=0"`
	StartDate      *time.Time `json:"start_date"`
	EndDate        *time.Time `json:"end_date"`
	PaymentDate    *time.Time `json:"payment_date"`
	CompanyName    *string    `json:"company_name"`
	Tags           []string   `json:"tags" validate:"omitempty,max=20,dive,min=1,max=50"`
}

type ApplyRequest struct {
	Content string `json:"content" validate:"omitempty,max=5000"`
}

type UpdateApplicationStatusRequest struct {
	Status models.ApplicationStatus `json:"status" validate:"required,is-application-status"`
}

type PostResponse struct {
	ID             string     `json:"id"`
	UserID         string     `json:"user_id"`
	Title          string     `json:"title"`
	Content        string     `json:"content"`
	Designation    string     `json:"designation,omitempty"`
	Requirement    string     `json:"requirement,omitempty"`
	TotalSlots     int        `json:"total_slots"`
	Location       string     `json:"location,omitempty"`
	Responsibility string     `json:"responsibility,omitempty"`
	PaymentAmount  float64    `json:"payment_amount"`
	StartDate      time.Time  `json:"start_date"`
	EndDate        time.Time  `json:"end_date"`
	PaymentDate    *time.Time `json:"payment_date,omitempty"`
	CompanyName    string     `json:"company_name,omitempty"`
	Tags           []string   `json:"tags"`
	IsClosed       bool       `json:"is_closed"`
	CreatedAt      time.Time  `json:"created_at"`

	// Feed annotations, present on the browse listing only and always scoped
	// to the requesting user.
	IsApplied *bool `json:"is_applied,omitempty"`
	IsSaved   *bool `json:"is_saved,omitempty"`
}

func NewPostResponse(post *models.Post, now time.Time) PostResponse {
	tags := []string(post.Tags)
	if tags == nil {
		tags = []string{}
	}
	return PostResponse{
		ID:             post.ID,
		UserID:         post.UserID,
		Title:          post.Title,
		Content:        post.Content,
		Designation:    post.Designation,
		Requirement:    post.Requirement,
		TotalSlots:     post.TotalSlots,
		Location:       post.Location,
		Responsibility: post.Responsibility,
		PaymentAmount:  post.PaymentAmount,
		StartDate:      post.StartDate,
		EndDate:        post.EndDate,
		PaymentDate:    post.PaymentDate,
		CompanyName:    post.CompanyName,
		Tags:           tags,
		IsClosed:       post.IsExpired(now),
		CreatedAt:      post.CreatedAt,
	}
}

type PostListResponse struct {
	Posts      []PostResponse `json:"posts"`
	Pagination Pagination     `json:"pagination"`
}

type ApplicationResponse struct {
	ID        string                   `json:"id"`
	PostID    string                   `json:"post_id"`
	UserID    string                   `json:"user_id"`
	Content   string                   `json:"content,omitempty"`
	Status    models.ApplicationStatus `json:"status"`
	CreatedAt time.Time                `json:"created_at"`

	Applicant *UserSummary  `json:"applicant,omitempty"`
	Post      *PostResponse `json:"post,omitempty"`
}

// NewApplicationResponse reports the effective status: once the post's end
// date passes, applicants see "closed" regardless of the stored value.
func NewApplicationResponse(app *models.Application, post *models.Post, now time.Time) ApplicationResponse {
	resp := ApplicationResponse{
		ID:        app.ID,
		PostID:    app.PostID,
		UserID:    app.UserID,
		Content:   app.Content,
		Status:    app.Status,
		CreatedAt: app.CreatedAt,
	}
	if post != nil {
		if post.IsExpired(now) {
			resp.Status = models.ApplicationStatusClosed
		}
		pr := NewPostResponse(post, now)
		resp.Post = &pr
	}
	return resp
}

type ApplicationListResponse struct {
	Applications []ApplicationResponse `json:"applications"`
	Pagination   Pagination            `json:"pagination"`
}

// DashboardPost is a recruiter's post row with its applicant total.
type DashboardPost struct {
	PostResponse
	ApplicantCount int64 `json:"applicant_count"`
}

type DashboardResponse struct {
	Posts       []DashboardPost  `json:"posts"`
	StatusTally map[string]int64 `json:"status_tally"`
	Pagination  Pagination       `json:"pagination"`
}
