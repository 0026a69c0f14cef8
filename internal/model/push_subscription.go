package model

import "time"

// PushSubscription holds a browser push subscription owned by one user.
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey" json:"endpoint"`
	P256DH    string    `gorm:"column:p256dh;not null" json:"-"`
	Auth      string    `gorm:"not null" json:"-"`
	UserID    int64     `gorm:"index;not null" json:"userId"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
}
