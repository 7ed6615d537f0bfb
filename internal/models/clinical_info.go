package models

import "time"

// ClinicalInfo is the per-patient feature sheet the risk predictor
// consumes. One current row per patient, maintained by the assigned
// doctor.
type ClinicalInfo struct {
	ID uint `gorm:"primaryKey" json:"id"`

	PatientID uint `gorm:"uniqueIndex" json:"patient_id"`
	Patient   User `gorm:"foreignKey:PatientID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	UpdatedByDoctorID uint `json:"updated_by_doctor_id"`

	AgeYears              int     `json:"age_years"`
	HeightCm              float64 `json:"height_cm"`
	WeightKg              float64 `json:"weight_kg"`
	BMIBaseline           float64 `json:"bmi_baseline"`
	WeightGainKg          float64 `json:"weight_gain_kg"`
	BPSystolic            int     `json:"bp_systolic"`
	BPDiastolic           int     `json:"bp_diastolic"`
	PulseHeartRate        int     `json:"pulse_heart_rate"`
	FastingBloodGlucose   float64 `json:"fasting_blood_glucose"`
	OneHourGlucose        float64 `json:"one_hour_glucose"`
	TwoHourGlucose        float64 `json:"two_hour_glucose"`
	HypertensiveDisorders string  `gorm:"size:20" json:"hypertensive_disorders"`
	TypeOfTreatment       string  `gorm:"size:50" json:"type_of_treatment"`
	Nationality           string  `gorm:"size:50" json:"nationality"`

	// Last prediction returned by the risk service.
	RiskPrediction  string     `gorm:"size:30" json:"risk_prediction"`
	RiskProbability float64    `json:"risk_probability"`
	RiskCheckedAt   *time.Time `json:"risk_checked_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
