package scheduling

import (
	"context"
	"time"

	domain "github.com/gdmcare/portal-api/internal/domain/scheduling"
	"github.com/gdmcare/portal-api/internal/dto"
	"github.com/gdmcare/portal-api/internal/models"
)

type ListPatientAppointments struct {
	repo domain.Repository
}

func NewListPatientAppointments(repo domain.Repository) *ListPatientAppointments {
	return &ListPatientAppointments{repo: repo}
}

// Execute splits the patient's appointments into upcoming (active and
// in the future) and past (everything else).
func (uc *ListPatientAppointments) Execute(
	ctx context.Context,
	patientID uint,
	now time.Time,
) (*dto.PatientAppointmentsDTO, error) {

	aps, err := uc.repo.ListPatientAppointments(ctx, patientID)
	if err != nil {
		return nil, err
	}

	out := &dto.PatientAppointmentsDTO{
		Upcoming: []dto.PatientAppointmentDTO{},
		Past:     []dto.PatientAppointmentDTO{},
	}

	for _, ap := range aps {
		item := toPatientDTO(ap)

		if domain.IsActive(domain.Status(ap.Status)) && ap.StartTime.After(now) {
			out.Upcoming = append(out.Upcoming, item)
		} else {
			out.Past = append(out.Past, item)
		}
	}

	return out, nil
}

func toPatientDTO(ap models.Appointment) dto.PatientAppointmentDTO {
	return dto.PatientAppointmentDTO{
		ID:             ap.ID,
		Ref:            ap.Ref,
		StartTime:      ap.StartTime,
		EndTime:        ap.EndTime,
		Status:         ap.Status,
		Type:           ap.Type,
		ReasonForVisit: ap.ReasonForVisit,
		CancelReason:   ap.CancelReason,
		DoctorName:     ap.Doctor.Name,
		Specialty:      ap.Doctor.Specialty,
	}
}
