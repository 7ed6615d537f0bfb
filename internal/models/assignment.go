package models

import "time"

// PatientAssignment is the authorization relation: a patient may only
// book with doctors they are assigned to.
type PatientAssignment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	DoctorID uint `gorm:"uniqueIndex:idx_doctor_patient" json:"doctor_id"`
	Doctor   User `gorm:"foreignKey:DoctorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"doctor"`

	PatientID uint `gorm:"uniqueIndex:idx_doctor_patient" json:"patient_id"`
	Patient   User `gorm:"foreignKey:PatientID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"patient"`

	CreatedAt time.Time `json:"created_at"`
}
