package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/gdmcare/portal-api/internal/domain/scheduling"
)

const availabilityTTL = 60 * time.Second

// Availability caches generated day slots per doctor and invalidates
// them after any mutation that could change the day. Redis outages
// degrade to cache misses; requests never fail because of the cache.
type Availability struct {
	rdb *redis.Client
	log *zap.Logger
}

func NewAvailability(addr, password string, log *zap.Logger) *Availability {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	return &Availability{rdb: rdb, log: log}
}

func dayKey(doctorID uint, date time.Time) string {
	return fmt.Sprintf("avail:%d:%s", doctorID, date.Format("2006-01-02"))
}

func (a *Availability) GetDay(
	ctx context.Context,
	doctorID uint,
	date time.Time,
) ([]scheduling.Slot, bool) {

	raw, err := a.rdb.Get(ctx, dayKey(doctorID, date)).Bytes()
	if err != nil {
		if err != redis.Nil {
			a.log.Warn("availability cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var slots []scheduling.Slot
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (a *Availability) SetDay(
	ctx context.Context,
	doctorID uint,
	date time.Time,
	slots []scheduling.Slot,
) {

	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}

	if err := a.rdb.Set(ctx, dayKey(doctorID, date), raw, availabilityTTL).Err(); err != nil {
		a.log.Warn("availability cache write failed", zap.Error(err))
	}
}

// InvalidateDay drops the cached slots for one doctor-day. Called after
// bookings, cancellations, reschedules and schedule edits.
func (a *Availability) InvalidateDay(
	ctx context.Context,
	doctorID uint,
	date time.Time,
) {

	if err := a.rdb.Del(ctx, dayKey(doctorID, date)).Err(); err != nil {
		a.log.Warn("availability cache invalidation failed", zap.Error(err))
	}
}

// InvalidateDoctor drops every cached day for a doctor. Used after
// recurring-rule edits, which touch all future days of a weekday.
func (a *Availability) InvalidateDoctor(ctx context.Context, doctorID uint) {
	pattern := fmt.Sprintf("avail:%d:*", doctorID)

	iter := a.rdb.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := a.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			a.log.Warn("availability cache invalidation failed", zap.Error(err))
		}
	}
	if err := iter.Err(); err != nil {
		a.log.Warn("availability cache scan failed", zap.Error(err))
	}
}
