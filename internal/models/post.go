package models

import (
	"time"

	"github.com/lib/pq"
)

// Post is a gig listing. Soft-deleted via IsActive; a past EndDate makes it
// "closed" for display even while IsActive stays true.
type Post struct {
	BaseModel
	UserID         string         `gorm:"type:uuid;not null;index" json:"user_id"`
	Title          string         `gorm:"not null" json:"title"`
	Content        string         `gorm:"not null" json:"content"`
	Designation    string         `json:"designation"`
	Requirement    string         `json:"requirement"`
	TotalSlots     int            `json:"total_slots"`
	Location       string         `gorm:"index" json:"location"`
	Responsibility string         `json:"responsibility"`
	PaymentAmount  float64        `json:"payment_amount"`
	StartDate      time.Time      `gorm:"not null" json:"start_date"`
	EndDate        time.Time      `gorm:"not null;index" json:"end_date"`
	PaymentDate    *time.Time     `json:"payment_date"`
	CompanyName    string         `json:"company_name"`
	Tags           pq.StringArray `gorm:"type:text[]" json:"tags"`
	IsActive       bool           `gorm:"default:true" json:"is_active"`

	Applications []Application `gorm:"foreignKey:PostID" json:"-"`
}

// IsExpired reports whether the listing's end date has passed.
func (p *Post) IsExpired(now time.Time) bool {
	return now.After(p.EndDate)
}
