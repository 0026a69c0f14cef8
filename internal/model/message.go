package model

import "time"

// Message is a direct message between two users.
type Message struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	SenderID   int64     `gorm:"index;not null" json:"senderId"`
	ReceiverID int64     `gorm:"index;not null" json:"receiverId"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	Read       bool      `gorm:"not null;default:false" json:"read"`
	CreatedAt  time.Time `gorm:"not null" json:"createdAt"`
}
