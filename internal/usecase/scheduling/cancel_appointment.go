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

type CancelAppointmentInput struct {
	AppointmentID uint
	RequesterID   uint
	RequesterRole string
	Reason        string

	Now time.Time
}

type CancelAppointment struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	notify *notify.Dispatcher
	cache  CacheInvalidator
}

func NewCancelAppointment(
	repo domain.Repository,
	auditDisp *audit.Dispatcher,
	notifyDisp *notify.Dispatcher,
	cache CacheInvalidator,
) *CancelAppointment {
	return &CancelAppointment{
		repo:   repo,
		audit:  auditDisp,
		notify: notifyDisp,
		cache:  cache,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	in CancelAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentByID(ctx, in.AppointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	reason := in.Reason
	var notifyRecipient uint

	switch in.RequesterRole {
	case models.RolePatient:
		if ap.PatientID != in.RequesterID {
			return nil, httperr.ErrBusiness("not_owner")
		}
		// Patients need advance notice; doctors may cancel any time.
		if ap.StartTime.Before(in.Now.Add(domain.CancelNotice)) {
			return nil, httperr.ErrBusiness("cancel_too_late")
		}
		notifyRecipient = ap.DoctorID

	case models.RoleDoctor:
		if ap.DoctorID != in.RequesterID {
			return nil, httperr.ErrBusiness("not_owner")
		}
		if reason == "" {
			reason = "cancelled by doctor"
		}
		notifyRecipient = ap.PatientID

	default:
		return nil, httperr.ErrBusiness("not_owner")
	}

	if err := domain.Cancel(ap, in.Now, reason); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		uc.cache.InvalidateDay(ctx, ap.DoctorID, dayOf(ap.StartTime))
	}

	if uc.notify != nil {
		uc.notify.Dispatch(notify.Message{
			RecipientID: notifyRecipient,
			Kind:        notify.KindAppointmentCancelled,
			Text: fmt.Sprintf(
				"Appointment on %s was cancelled",
				ap.StartTime.Format("2006-01-02 15:04"),
			),
		})
	}

	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			ActorID:   &in.RequesterID,
			ActorRole: in.RequesterRole,
			Action:    "appointment_cancelled",
			Entity:    "appointment",
			EntityID:  &ap.ID,
		})
	}

	return ap, nil
}
