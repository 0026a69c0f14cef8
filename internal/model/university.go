package model

import "time"

// University represents an institution tenant. Members, posts, and workshops
// are all scoped to one university.
type University struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:256;not null" json:"name"`
	Slug         string    `gorm:"uniqueIndex;size:256;not null" json:"slug"`
	Email        string    `gorm:"uniqueIndex;size:256;not null" json:"email"`
	PasswordHash string    `gorm:"size:128;not null" json:"-"`
	Logo         string    `gorm:"size:512" json:"logo"`
	Description  string    `gorm:"type:text" json:"description"`
	CreatedAt    time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"not null" json:"updatedAt"`
}
