package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/gdmcare/portal-api/internal/audit"
	domain "github.com/gdmcare/portal-api/internal/domain/scheduling"
	"github.com/gdmcare/portal-api/internal/httperr"
	"github.com/gdmcare/portal-api/internal/models"
	"github.com/gdmcare/portal-api/internal/notify"
)

type RescheduleAppointmentInput struct {
	AppointmentID uint
	RequesterID   uint
	RequesterRole string

	NewStart time.Time
	Now      time.Time
}

type RescheduleAppointment struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	notify *notify.Dispatcher
	cache  CacheInvalidator
}

func NewRescheduleAppointment(
	repo domain.Repository,
	auditDisp *audit.Dispatcher,
	notifyDisp *notify.Dispatcher,
	cache CacheInvalidator,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:   repo,
		audit:  auditDisp,
		notify: notifyDisp,
		cache:  cache,
	}
}

// Execute moves an active appointment to a new validated slot. The
// booking lead-time and horizon rules apply to the new time; the
// active-appointment cap does not, since the count is unchanged.
func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	in RescheduleAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentByID(ctx, in.AppointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	var notifyRecipient uint

	switch in.RequesterRole {
	case models.RolePatient:
		if ap.PatientID != in.RequesterID {
			return nil, httperr.ErrBusiness("not_owner")
		}
		notifyRecipient = ap.DoctorID
	case models.RoleDoctor:
		if ap.DoctorID != in.RequesterID {
			return nil, httperr.ErrBusiness("not_owner")
		}
		notifyRecipient = ap.PatientID
	default:
		return nil, httperr.ErrBusiness("not_owner")
	}

	taken, err := uc.repo.HasActiveBookingAt(ctx, ap.DoctorID, in.NewStart)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, httperr.ErrBusiness("slot_taken")
	}

	if in.NewStart.Before(in.Now.Add(domain.BookingLeadTime)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	if in.NewStart.After(domain.HorizonEnd(in.Now)) {
		return nil, httperr.ErrBusiness("beyond_horizon")
	}

	oldStart := ap.StartTime

	if err := domain.Reschedule(ap, in.NewStart); err != nil {
		return nil, err
	}

	if err := uc.repo.MoveAppointment(ctx, ap); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		uc.cache.InvalidateDay(ctx, ap.DoctorID, dayOf(oldStart))
		uc.cache.InvalidateDay(ctx, ap.DoctorID, dayOf(in.NewStart))
	}

	if uc.notify != nil {
		uc.notify.Dispatch(notify.Message{
			RecipientID: notifyRecipient,
			Kind:        notify.KindAppointmentRescheduled,
			Text: fmt.Sprintf(
				"Appointment moved from %s to %s",
				oldStart.Format("2006-01-02 15:04"),
				in.NewStart.Format("2006-01-02 15:04"),
			),
		})
	}

	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			ActorID:   &in.RequesterID,
			ActorRole: in.RequesterRole,
			Action:    "appointment_rescheduled",
			Entity:    "appointment",
			EntityID:  &ap.ID,
		})
	}

	return ap, nil
}
