package models

type UserRole string
type ApplicationStatus string
type PostFilter string

const (
	UserRoleUser      UserRole = "user"
	UserRoleRecruiter UserRole = "recruiter"
	UserRoleAdmin     UserRole = "admin"

	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"

	// ApplicationStatusClosed is never stored: it is the effective status
	// reported to applicants once the post's end date has passed.
	ApplicationStatusClosed ApplicationStatus = "closed"

	PostFilterActive    PostFilter = "ACTIVE"
	PostFilterCompleted PostFilter = "COMPLETED"
)
