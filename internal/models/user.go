package models

import "time"

const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
)

// User covers both sides of the portal. Role decides which profile
// fields are meaningful.
type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Role         string `gorm:"size:20;not null" json:"role"`

	// Doctor profile
	Specialty        string `gorm:"size:100" json:"specialty,omitempty"`
	VisitDurationMin int    `gorm:"default:50" json:"visit_duration_min,omitempty"`
	BufferMin        int    `gorm:"default:10" json:"buffer_min,omitempty"`

	// Patient profile
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
