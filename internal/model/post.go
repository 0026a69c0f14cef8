package model

import "time"

// Post type tags.
const (
	PostAnnouncement = "announcement"
	PostJob          = "job"
	PostRequirement  = "requirement"
	PostRecruitment  = "recruitment"
	PostGeneral      = "general"
)

// Post is a feed entry authored by one user. UniversityID is denormalized
// from the author at creation time and never re-derived.
type Post struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	UserID       int64     `gorm:"index;not null" json:"userId"`
	UniversityID int64     `gorm:"index;not null" json:"universityId"`
	Type         string    `gorm:"size:32;not null;default:general" json:"type"`
	Content      string    `gorm:"type:text;not null" json:"content"`
	ImageURL     string    `gorm:"size:512" json:"imageUrl"`
	CreatedAt    time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"not null" json:"updatedAt"`

	// Associations
	User  User    `json:"author"`
	Likes []*User `gorm:"many2many:post_likes;" json:"likes"`
}
