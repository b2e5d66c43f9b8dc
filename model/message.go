package model

import "time"

// Message is one direct message between a user and the platform owner.
type Message struct {
	ID          string     `json:"id" gorm:"primaryKey"`
	SenderID    string     `json:"sender_id" gorm:"not null;index"`
	RecipientID string     `json:"recipient_id" gorm:"not null;index"`
	Content     string     `json:"content" gorm:"type:text;not null"`
	ReadAt      *time.Time `json:"read_at"`
	CreatedAt   time.Time  `json:"created_at"`
}
