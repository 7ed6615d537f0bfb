package scheduling

import (
	"context"
	"time"

	"github.com/gdmcare/portal-api/internal/audit"
	domain "github.com/gdmcare/portal-api/internal/domain/scheduling"
	"github.com/gdmcare/portal-api/internal/httperr"
	"github.com/gdmcare/portal-api/internal/models"
)

type UpdateStatusInput struct {
	AppointmentID uint
	DoctorID      uint

	// Target status: completed or no_show.
	Status string
	Notes  string

	Now time.Time
}

// UpdateStatus is the doctor-only mutation that closes out an
// appointment as completed or no-show.
type UpdateStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateStatus(repo domain.Repository, auditDisp *audit.Dispatcher) *UpdateStatus {
	return &UpdateStatus{repo: repo, audit: auditDisp}
}

func (uc *UpdateStatus) Execute(
	ctx context.Context,
	in UpdateStatusInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentByID(ctx, in.AppointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if ap.DoctorID != in.DoctorID {
		return nil, httperr.ErrBusiness("not_owner")
	}

	switch domain.Status(in.Status) {
	case domain.StatusCompleted:
		if err := domain.Complete(ap, in.Now, in.Notes); err != nil {
			return nil, err
		}
	case domain.StatusNoShow:
		if err := domain.MarkNoShow(ap, in.Notes); err != nil {
			return nil, err
		}
	default:
		return nil, httperr.ErrBusiness("invalid_status")
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			ActorID:   &in.DoctorID,
			ActorRole: models.RoleDoctor,
			Action:    "appointment_" + in.Status,
			Entity:    "appointment",
			EntityID:  &ap.ID,
		})
	}

	return ap, nil
}
