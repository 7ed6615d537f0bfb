package scheduling

import (
	"context"
	"time"

	domain "github.com/gdmcare/portal-api/internal/domain/scheduling"
	"github.com/gdmcare/portal-api/internal/httperr"
)

type AvailabilityInput struct {
	PatientID uint
	DoctorID  uint

	// Date is midnight of the requested day in the clinic location.
	Date time.Time
	Now  time.Time
}

type GetAvailability struct {
	repo  domain.Repository
	cache AvailabilityCache
}

func NewGetAvailability(repo domain.Repository, cache AvailabilityCache) *GetAvailability {
	return &GetAvailability{repo: repo, cache: cache}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) ([]domain.Slot, error) {

	assigned, err := uc.repo.AssignmentExists(ctx, in.DoctorID, in.PatientID)
	if err != nil {
		return nil, err
	}
	if !assigned {
		return nil, httperr.ErrBusiness("not_assigned")
	}

	// Cached slots were generated against an earlier "now"; the lead
	// window only ever shrinks forward, and the TTL is short enough
	// that a stale availability flag at the window's edge is tolerable.
	if uc.cache != nil {
		if slots, ok := uc.cache.GetDay(ctx, in.DoctorID, in.Date); ok {
			return slots, nil
		}
	}

	doctor, err := uc.repo.GetDoctorByID(ctx, in.DoctorID)
	if err != nil {
		return nil, httperr.ErrBusiness("doctor_not_found")
	}

	override, err := uc.repo.GetDateOverride(ctx, in.DoctorID, in.Date)
	if err != nil {
		return nil, err
	}

	rule, err := uc.repo.GetRecurringRule(ctx, in.DoctorID, int(in.Date.Weekday()))
	if err != nil {
		return nil, err
	}

	dayStart := in.Date
	dayEnd := dayStart.Add(24 * time.Hour)

	booked, err := uc.repo.ListBookedStarts(ctx, in.DoctorID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	slots := domain.GenerateSlots(domain.SlotRequest{
		Date:          in.Date,
		Rule:          rule,
		Override:      override,
		BookedStarts:  booked,
		VisitMinutes:  doctor.VisitDurationMin,
		BufferMinutes: doctor.BufferMin,
		Now:           in.Now,
	})

	if uc.cache != nil {
		uc.cache.SetDay(ctx, in.DoctorID, in.Date, slots)
	}

	return slots, nil
}
