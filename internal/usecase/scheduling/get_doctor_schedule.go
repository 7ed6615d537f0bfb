package scheduling

import (
	"context"
	"time"

	domain "github.com/gdmcare/portal-api/internal/domain/scheduling"
	"github.com/gdmcare/portal-api/internal/models"
)

// DoctorScheduleDTO bundles everything the doctor's schedule view
// needs for one week: the weekly rules, the date overrides in range
// and the booked appointments.
type DoctorScheduleDTO struct {
	RecurringAvailability []models.RecurringAvailability `json:"recurring_availability"`
	DateOverrides         []models.DateOverride          `json:"date_overrides"`
	Appointments          []models.Appointment           `json:"appointments"`
}

type GetDoctorSchedule struct {
	repo domain.Repository
}

func NewGetDoctorSchedule(repo domain.Repository) *GetDoctorSchedule {
	return &GetDoctorSchedule{repo: repo}
}

func (uc *GetDoctorSchedule) Execute(
	ctx context.Context,
	doctorID uint,
	weekStart time.Time,
) (*DoctorScheduleDTO, error) {

	weekEnd := weekStart.AddDate(0, 0, 7)

	rules, err := uc.repo.ListRecurringRules(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	overrides, err := uc.repo.ListDateOverrides(ctx, doctorID, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}

	aps, err := uc.repo.ListDoctorAppointments(ctx, doctorID, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}

	return &DoctorScheduleDTO{
		RecurringAvailability: rules,
		DateOverrides:         overrides,
		Appointments:          aps,
	}, nil
}
