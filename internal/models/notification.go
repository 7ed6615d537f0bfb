package models

import "time"

type Notification struct {
	ID uint `gorm:"primaryKey" json:"id"`

	RecipientID uint `gorm:"index" json:"recipient_id"`

	Kind    string `gorm:"size:50;not null" json:"kind"`
	Message string `gorm:"size:500" json:"message"`

	ReadAt    *time.Time `json:"read_at"`
	CreatedAt time.Time  `json:"created_at"`
}
