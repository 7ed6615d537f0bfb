package models

import "time"

type GlucoseReading struct {
	ID uint `gorm:"primaryKey" json:"id"`

	PatientID uint `gorm:"index" json:"patient_id"`
	Patient   User `gorm:"foreignKey:PatientID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ReadingType string  `gorm:"size:20;not null" json:"reading_type"`
	ValueMgDl   float64 `gorm:"not null" json:"value_mg_dl"`
	Status      string  `gorm:"size:20" json:"status"`

	ReadingTime time.Time `gorm:"index" json:"reading_time"`
	Notes       string    `gorm:"size:255" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
}
