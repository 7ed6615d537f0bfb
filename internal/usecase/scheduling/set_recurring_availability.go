package scheduling

import (
	"context"
	"time"

	"github.com/gdmcare/portal-api/internal/audit"
	domain "github.com/gdmcare/portal-api/internal/domain/scheduling"
	"github.com/gdmcare/portal-api/internal/httperr"
	"github.com/gdmcare/portal-api/internal/models"
)

type SetRecurringAvailabilityInput struct {
	DoctorID    uint
	Weekday     int
	StartTime   string
	EndTime     string
	IsAvailable bool
}

type SetRecurringAvailability struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache CacheInvalidator
}

func NewSetRecurringAvailability(
	repo domain.Repository,
	auditDisp *audit.Dispatcher,
	cache CacheInvalidator,
) *SetRecurringAvailability {
	return &SetRecurringAvailability{
		repo:  repo,
		audit: auditDisp,
		cache: cache,
	}
}

// Execute replaces the doctor's rule for one weekday. Delete-then-create:
// the rule carries no identity patients depend on across edits.
func (uc *SetRecurringAvailability) Execute(
	ctx context.Context,
	in SetRecurringAvailabilityInput,
) (*models.RecurringAvailability, error) {

	if in.Weekday < 0 || in.Weekday > 6 {
		return nil, httperr.ErrBusiness("invalid_weekday")
	}

	if in.IsAvailable {
		start, err := time.Parse("15:04", in.StartTime)
		if err != nil {
			return nil, httperr.ErrBusiness("invalid_window")
		}
		end, err := time.Parse("15:04", in.EndTime)
		if err != nil {
			return nil, httperr.ErrBusiness("invalid_window")
		}
		if !start.Before(end) {
			return nil, httperr.ErrBusiness("invalid_window")
		}
	}

	rule := &models.RecurringAvailability{
		DoctorID:    in.DoctorID,
		Weekday:     in.Weekday,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		IsAvailable: in.IsAvailable,
	}

	if err := uc.repo.ReplaceRecurringRule(ctx, rule); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		uc.cache.InvalidateDoctor(ctx, in.DoctorID)
	}

	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			ActorID:   &in.DoctorID,
			ActorRole: models.RoleDoctor,
			Action:    "availability_updated",
			Entity:    "recurring_availability",
			EntityID:  &rule.ID,
			Metadata: map[string]any{
				"weekday":   in.Weekday,
				"available": in.IsAvailable,
			},
		})
	}

	return rule, nil
}
