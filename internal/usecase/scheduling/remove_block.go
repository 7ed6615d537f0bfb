package scheduling

import (
	"context"

	"github.com/gdmcare/portal-api/internal/audit"
	domain "github.com/gdmcare/portal-api/internal/domain/scheduling"
	"github.com/gdmcare/portal-api/internal/httperr"
	"github.com/gdmcare/portal-api/internal/models"
)

type RemoveBlock struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache CacheInvalidator
}

func NewRemoveBlock(
	repo domain.Repository,
	auditDisp *audit.Dispatcher,
	cache CacheInvalidator,
) *RemoveBlock {
	return &RemoveBlock{
		repo:  repo,
		audit: auditDisp,
		cache: cache,
	}
}

func (uc *RemoveBlock) Execute(
	ctx context.Context,
	doctorID uint,
	overrideID uint,
) error {

	override, err := uc.repo.GetDateOverrideByID(ctx, overrideID)
	if err != nil {
		return httperr.ErrBusiness("block_not_found")
	}

	if override.DoctorID != doctorID {
		return httperr.ErrBusiness("not_owner")
	}

	if err := uc.repo.DeleteDateOverride(ctx, overrideID); err != nil {
		return err
	}

	if uc.cache != nil {
		uc.cache.InvalidateDay(ctx, doctorID, override.SpecificDate)
	}

	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			ActorID:   &doctorID,
			ActorRole: models.RoleDoctor,
			Action:    "date_block_removed",
			Entity:    "date_override",
			EntityID:  &overrideID,
		})
	}

	return nil
}
