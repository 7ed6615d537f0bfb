package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domain "github.com/gdmcare/portal-api/internal/domain/scheduling"
	"github.com/gdmcare/portal-api/internal/httperr"
	"github.com/gdmcare/portal-api/internal/models"
)

// Midnight of testNow's day.
var testDate = time.Date(2026, time.September, 14, 0, 0, 0, 0, time.UTC)

func TestGetAvailabilityGeneratesDay(t *testing.T) {
	repo := bookingFixture()
	uc := NewGetAvailability(repo, nil)

	slots, err := uc.Execute(context.Background(), AvailabilityInput{
		PatientID: patientID,
		DoctorID:  doctorID,
		Date:      testDate,
		Now:       testNow,
	})
	require.NoError(t, err)

	// 09:00-17:00 with 60-minute steps.
	require.Len(t, slots, 8)
	require.True(t, slots[0].Start.Equal(testDate.Add(9*time.Hour)))

	// now 08:00 + 2h lead: 09:00 gone, 10:00 is the first bookable slot.
	require.False(t, slots[0].Available)
	require.True(t, slots[1].Available)
}

func TestGetAvailabilityMarksBookedSlots(t *testing.T) {
	repo := bookingFixture()
	seedAppointment(repo, testDate.Add(11*time.Hour))
	uc := NewGetAvailability(repo, nil)

	slots, err := uc.Execute(context.Background(), AvailabilityInput{
		PatientID: patientID,
		DoctorID:  doctorID,
		Date:      testDate,
		Now:       testNow,
	})
	require.NoError(t, err)

	for _, s := range slots {
		if s.Start.Equal(testDate.Add(11 * time.Hour)) {
			require.False(t, s.Available)
			return
		}
	}
	t.Fatal("11:00 slot missing")
}

func TestGetAvailabilityOverrideWinsOverRule(t *testing.T) {
	repo := bookingFixture()
	require.NoError(t, repo.CreateDateOverride(context.Background(), &models.DateOverride{
		DoctorID:     doctorID,
		SpecificDate: testDate,
		IsAvailable:  false,
	}))
	uc := NewGetAvailability(repo, nil)

	slots, err := uc.Execute(context.Background(), AvailabilityInput{
		PatientID: patientID,
		DoctorID:  doctorID,
		Date:      testDate,
		Now:       testNow,
	})
	require.NoError(t, err)
	require.Empty(t, slots)
}

func TestGetAvailabilityNoRuleDay(t *testing.T) {
	repo := bookingFixture()
	uc := NewGetAvailability(repo, nil)

	// Sunday: no recurring rule seeded.
	sunday := testDate.AddDate(0, 0, -1)
	slots, err := uc.Execute(context.Background(), AvailabilityInput{
		PatientID: patientID,
		DoctorID:  doctorID,
		Date:      sunday,
		Now:       testNow,
	})
	require.NoError(t, err)
	require.NotNil(t, slots)
	require.Empty(t, slots)
}

func TestGetAvailabilityRequiresAssignment(t *testing.T) {
	repo := bookingFixture()
	uc := NewGetAvailability(repo, nil)

	_, err := uc.Execute(context.Background(), AvailabilityInput{
		PatientID: 999,
		DoctorID:  doctorID,
		Date:      testDate,
		Now:       testNow,
	})
	require.Equal(t, "not_assigned", httperr.BusinessCode(err))
}

func TestGetAvailabilityServesCachedDay(t *testing.T) {
	repo := bookingFixture()
	cache := newFakeCache()
	cached := []domain.Slot{{Start: testDate.Add(9 * time.Hour), Available: true}}
	cache.days[cacheKey(doctorID, testDate)] = cached

	uc := NewGetAvailability(repo, cache)

	slots, err := uc.Execute(context.Background(), AvailabilityInput{
		PatientID: patientID,
		DoctorID:  doctorID,
		Date:      testDate,
		Now:       testNow,
	})
	require.NoError(t, err)
	require.Len(t, slots, 1)
	require.Zero(t, cache.setCalls)
}

func TestGetAvailabilityPopulatesCacheOnMiss(t *testing.T) {
	repo := bookingFixture()
	cache := newFakeCache()
	uc := NewGetAvailability(repo, cache)

	_, err := uc.Execute(context.Background(), AvailabilityInput{
		PatientID: patientID,
		DoctorID:  doctorID,
		Date:      testDate,
		Now:       testNow,
	})
	require.NoError(t, err)
	require.Equal(t, 1, cache.setCalls)
}
