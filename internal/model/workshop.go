package model

import "time"

// Workshop delivery modes.
const (
	ModeInPerson = "in-person"
	ModeOnline   = "online"
)

// Workshop is an event scheduled by a member. UniversityID is denormalized
// from the creator at creation time.
type Workshop struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	UserID       int64     `gorm:"index;not null" json:"userId"`
	UniversityID int64     `gorm:"index;not null" json:"universityId"`
	Title        string    `gorm:"size:256;not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	Date         string    `gorm:"size:32;not null" json:"date"`
	Time         string    `gorm:"size:32;not null" json:"time"`
	Mode         string    `gorm:"size:32;not null;default:in-person" json:"mode"`
	Location     string    `gorm:"size:256" json:"location"`
	MeetingLink  string    `gorm:"size:512" json:"meetingLink"`
	CreatedAt    time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"not null" json:"updatedAt"`

	// Associations
	User      User    `json:"creator"`
	Attendees []*User `gorm:"many2many:workshop_attendees;" json:"attendees"`
}
