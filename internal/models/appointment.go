package models

import "time"

type Appointment struct {
	ID  uint   `gorm:"primaryKey" json:"id"`
	Ref string `gorm:"size:36;uniqueIndex" json:"ref"`

	PatientID uint `json:"patient_id"`
	Patient   User `gorm:"foreignKey:PatientID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"patient"`

	DoctorID uint `json:"doctor_id"`
	Doctor   User `gorm:"foreignKey:DoctorID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"doctor"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	DurationMin int    `gorm:"default:50" json:"duration_min"`
	Status      string `gorm:"size:20;default:'scheduled'" json:"status"`
	Type        string `gorm:"size:50" json:"type"`

	ReasonForVisit string `gorm:"size:255" json:"reason_for_visit"`
	DoctorNotes    string `gorm:"size:1000" json:"doctor_notes"`

	CancelReason string     `gorm:"size:255" json:"cancel_reason"`
	CancelledAt  *time.Time `json:"cancelled_at"`
	CompletedAt  *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
