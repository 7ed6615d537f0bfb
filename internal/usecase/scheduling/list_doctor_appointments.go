package scheduling

import (
	"context"
	"time"

	domain "github.com/gdmcare/portal-api/internal/domain/scheduling"
	"github.com/gdmcare/portal-api/internal/dto"
)

type ListDoctorAppointments struct {
	repo domain.Repository
}

func NewListDoctorAppointments(repo domain.Repository) *ListDoctorAppointments {
	return &ListDoctorAppointments{repo: repo}
}

func (uc *ListDoctorAppointments) Execute(
	ctx context.Context,
	doctorID uint,
	from time.Time,
	to time.Time,
) ([]dto.DoctorAppointmentDTO, error) {

	aps, err := uc.repo.ListDoctorAppointments(ctx, doctorID, from, to)
	if err != nil {
		return nil, err
	}

	out := make([]dto.DoctorAppointmentDTO, 0, len(aps))
	for _, ap := range aps {
		out = append(out, dto.DoctorAppointmentDTO{
			ID:             ap.ID,
			Ref:            ap.Ref,
			StartTime:      ap.StartTime,
			EndTime:        ap.EndTime,
			Status:         ap.Status,
			Type:           ap.Type,
			ReasonForVisit: ap.ReasonForVisit,
			PatientID:      ap.PatientID,
			PatientName:    ap.Patient.Name,
			PatientPhone:   ap.Patient.Phone,
		})
	}

	return out, nil
}
