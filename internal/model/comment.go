package model

import "time"

// Comment is an append-only reply to a post. No update or delete is exposed.
type Comment struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"index;not null" json:"userId"`
	PostID    int64     `gorm:"index;not null" json:"postId"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`

	// Associations
	User User `json:"author"`
}
