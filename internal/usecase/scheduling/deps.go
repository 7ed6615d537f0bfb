package scheduling

import (
	"context"
	"time"

	domain "github.com/gdmcare/portal-api/internal/domain/scheduling"
)

// AvailabilityCache is the read side of the day-slot cache.
type AvailabilityCache interface {
	GetDay(ctx context.Context, doctorID uint, date time.Time) ([]domain.Slot, bool)
	SetDay(ctx context.Context, doctorID uint, date time.Time, slots []domain.Slot)
}

// CacheInvalidator drops cached availability after mutations.
type CacheInvalidator interface {
	InvalidateDay(ctx context.Context, doctorID uint, date time.Time)
	InvalidateDoctor(ctx context.Context, doctorID uint)
}
