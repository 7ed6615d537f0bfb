package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gdmcare/portal-api/internal/audit"
	domain "github.com/gdmcare/portal-api/internal/domain/scheduling"
	"github.com/gdmcare/portal-api/internal/httperr"
	"github.com/gdmcare/portal-api/internal/models"
	"github.com/gdmcare/portal-api/internal/notify"
)

// ======================================================
// INPUT
// ======================================================

type BookAppointmentInput struct {
	PatientID uint
	DoctorID  uint

	StartTime      time.Time
	DurationMin    int
	Type           string
	ReasonForVisit string

	Now time.Time
}

// ======================================================
// USE CASE
// ======================================================

type BookAppointment struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	notify *notify.Dispatcher
	cache  CacheInvalidator
}

func NewBookAppointment(
	repo domain.Repository,
	auditDisp *audit.Dispatcher,
	notifyDisp *notify.Dispatcher,
	cache CacheInvalidator,
) *BookAppointment {
	return &BookAppointment{
		repo:   repo,
		audit:  auditDisp,
		notify: notifyDisp,
		cache:  cache,
	}
}

// Execute runs the full acceptance sequence; the first failing check
// wins and nothing is written on failure.
func (uc *BookAppointment) Execute(
	ctx context.Context,
	in BookAppointmentInput,
) (*models.Appointment, error) {

	// 1. Authorization: the assignment relation must exist.
	assigned, err := uc.repo.AssignmentExists(ctx, in.DoctorID, in.PatientID)
	if err != nil {
		return nil, err
	}
	if !assigned {
		return nil, httperr.ErrBusiness("not_assigned")
	}

	// 2. Slot availability at the exact requested timestamp.
	taken, err := uc.repo.HasActiveBookingAt(ctx, in.DoctorID, in.StartTime)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, httperr.ErrBusiness("slot_taken")
	}

	// 3. Lead time.
	if in.StartTime.Before(in.Now.Add(domain.BookingLeadTime)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	// 4. Horizon.
	if in.StartTime.After(domain.HorizonEnd(in.Now)) {
		return nil, httperr.ErrBusiness("beyond_horizon")
	}

	// 5. Active-appointment cap.
	active, err := uc.repo.CountActiveAppointments(ctx, in.PatientID, in.Now)
	if err != nil {
		return nil, err
	}
	if active >= domain.ActiveAppointmentCap {
		return nil, httperr.ErrBusiness("active_limit_reached")
	}

	// 6. Create. The repository re-checks the slot inside the insert
	// transaction; the unique index settles any race.
	duration := in.DurationMin
	if duration <= 0 {
		duration = domain.DefaultVisitMinutes
	}

	ap := &models.Appointment{
		Ref:            uuid.NewString(),
		PatientID:      in.PatientID,
		DoctorID:       in.DoctorID,
		StartTime:      in.StartTime,
		EndTime:        in.StartTime.Add(time.Duration(duration) * time.Minute),
		DurationMin:    duration,
		Status:         string(domain.InitialStatus()),
		Type:           in.Type,
		ReasonForVisit: in.ReasonForVisit,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		uc.cache.InvalidateDay(ctx, in.DoctorID, dayOf(in.StartTime))
	}

	if uc.notify != nil {
		uc.notify.Dispatch(notify.Message{
			RecipientID: in.DoctorID,
			Kind:        notify.KindAppointmentBooked,
			Text: fmt.Sprintf(
				"New appointment booked for %s",
				in.StartTime.Format("2006-01-02 15:04"),
			),
		})
	}

	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			ActorID:   &in.PatientID,
			ActorRole: models.RolePatient,
			Action:    "appointment_booked",
			Entity:    "appointment",
			EntityID:  &ap.ID,
		})
	}

	return ap, nil
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
