package dto

import "time"

type PatientAppointmentDTO struct {
	ID             uint      `json:"id"`
	Ref            string    `json:"ref"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	Status         string    `json:"status"`
	Type           string    `json:"type"`
	ReasonForVisit string    `json:"reason_for_visit"`
	CancelReason   string    `json:"cancel_reason,omitempty"`
	DoctorName     string    `json:"doctor_name"`
	Specialty      string    `json:"specialty"`
}

type PatientAppointmentsDTO struct {
	Upcoming []PatientAppointmentDTO `json:"upcoming"`
	Past     []PatientAppointmentDTO `json:"past"`
}

type DoctorAppointmentDTO struct {
	ID             uint      `json:"id"`
	Ref            string    `json:"ref"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	Status         string    `json:"status"`
	Type           string    `json:"type"`
	ReasonForVisit string    `json:"reason_for_visit"`
	PatientID      uint      `json:"patient_id"`
	PatientName    string    `json:"patient_name"`
	PatientPhone   string    `json:"patient_phone"`
}
