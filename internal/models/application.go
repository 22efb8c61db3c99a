package models

// Application tracks a user's application to a post. The composite unique
// index enforces at-most-one application per (user, post) at the store
// layer, so concurrent duplicate applies cannot both commit.
type Application struct {
	BaseModel
	UserID  string            `gorm:"type:uuid;not null;uniqueIndex:idx_applications_user_post" json:"user_id"`
	PostID  string            `gorm:"type:uuid;not null;uniqueIndex:idx_applications_user_post" json:"post_id"`
	Content string            `json:"content"`
	Status  ApplicationStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Post Post `gorm:"foreignKey:PostID" json:"post,omitempty"`
}

// SavedPost is a bookmark join row between a user and a post.
type SavedPost struct {
	BaseModel
	UserID string `gorm:"type:uuid;not null;uniqueIndex:idx_saved_posts_user_post" json:"user_id"`
	PostID string `gorm:"type:uuid;not null;uniqueIndex:idx_saved_posts_user_post" json:"post_id"`

	Post Post `gorm:"foreignKey:PostID" json:"post,omitempty"`
}
