package scheduling

import (
	"context"

	domain "github.com/gdmcare/portal-api/internal/domain/scheduling"
	"github.com/gdmcare/portal-api/internal/models"
)

type AssignedDoctors struct {
	repo domain.Repository
}

func NewAssignedDoctors(repo domain.Repository) *AssignedDoctors {
	return &AssignedDoctors{repo: repo}
}

func (uc *AssignedDoctors) Execute(
	ctx context.Context,
	patientID uint,
) ([]models.User, error) {
	return uc.repo.ListAssignedDoctors(ctx, patientID)
}
