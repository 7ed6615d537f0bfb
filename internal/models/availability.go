package models

import "time"

// RecurringAvailability is a doctor's weekly-repeating serving window.
// One logical rule per (doctor, weekday); edits replace the prior rule.
type RecurringAvailability struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	DoctorID uint `gorm:"index:idx_doctor_weekday" json:"doctor_id"`

	Weekday int `gorm:"index:idx_doctor_weekday" json:"weekday"`

	StartTime   string `gorm:"size:5" json:"start_time"`
	EndTime     string `gorm:"size:5" json:"end_time"`
	IsAvailable bool   `json:"is_available"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DateOverride blocks a single calendar date regardless of the
// recurring rule. At most one per (doctor, date).
type DateOverride struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	DoctorID uint `gorm:"uniqueIndex:idx_doctor_date" json:"doctor_id"`

	SpecificDate time.Time `gorm:"type:date;uniqueIndex:idx_doctor_date" json:"specific_date"`
	IsAvailable  bool      `json:"is_available"`
	Notes        string    `gorm:"size:255" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
}
