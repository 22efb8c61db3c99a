package models

// JobCategory is master data for classifying gigs; seeded at startup and
// listed publicly.
type JobCategory struct {
	BaseModel
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Description string `json:"description"`
}
