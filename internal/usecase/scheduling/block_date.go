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

type BlockDateInput struct {
	DoctorID uint
	Date     time.Time
	Notes    string
}

type BlockDate struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	notify *notify.Dispatcher
	cache  CacheInvalidator
}

func NewBlockDate(
	repo domain.Repository,
	auditDisp *audit.Dispatcher,
	notifyDisp *notify.Dispatcher,
	cache CacheInvalidator,
) *BlockDate {
	return &BlockDate{
		repo:   repo,
		audit:  auditDisp,
		notify: notifyDisp,
		cache:  cache,
	}
}

func (uc *BlockDate) Execute(
	ctx context.Context,
	in BlockDateInput,
) (*models.DateOverride, error) {

	existing, err := uc.repo.GetDateOverride(ctx, in.DoctorID, in.Date)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, httperr.ErrBusiness("date_already_blocked")
	}

	override := &models.DateOverride{
		DoctorID:     in.DoctorID,
		SpecificDate: in.Date,
		IsAvailable:  false,
		Notes:        in.Notes,
	}

	if err := uc.repo.CreateDateOverride(ctx, override); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		uc.cache.InvalidateDay(ctx, in.DoctorID, in.Date)
	}

	// Patients already holding an active appointment on the blocked
	// date are told; their appointments are not auto-cancelled.
	if uc.notify != nil {
		dayEnd := in.Date.Add(24 * time.Hour)
		if aps, err := uc.repo.ListDoctorAppointments(ctx, in.DoctorID, in.Date, dayEnd); err == nil {
			for _, ap := range aps {
				if !domain.IsActive(domain.Status(ap.Status)) {
					continue
				}
				uc.notify.Dispatch(notify.Message{
					RecipientID: ap.PatientID,
					Kind:        notify.KindDateBlocked,
					Text: fmt.Sprintf(
						"Your doctor is unavailable on %s; please contact the clinic about your appointment",
						in.Date.Format("2006-01-02"),
					),
				})
			}
		}
	}

	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			ActorID:   &in.DoctorID,
			ActorRole: models.RoleDoctor,
			Action:    "date_blocked",
			Entity:    "date_override",
			EntityID:  &override.ID,
			Metadata:  map[string]any{"date": in.Date.Format("2006-01-02")},
		})
	}

	return override, nil
}
