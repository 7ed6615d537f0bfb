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

const (
	doctorID  = uint(1)
	patientID = uint(100)
)

// Monday 2026-09-14, 08:00 UTC.
var testNow = time.Date(2026, time.September, 14, 8, 0, 0, 0, time.UTC)

func bookingFixture() *fakeRepo {
	repo := newFakeRepo()
	repo.addDoctor(doctorID, 50, 10)
	repo.assign(doctorID, patientID)
	repo.addRule(doctorID, int(time.Monday), "09:00", "17:00")
	return repo
}

func bookInput(start time.Time) BookAppointmentInput {
	return BookAppointmentInput{
		PatientID:      patientID,
		DoctorID:       doctorID,
		StartTime:      start,
		DurationMin:    50,
		Type:           "consultation",
		ReasonForVisit: "routine check",
		Now:            testNow,
	}
}

func TestBookAppointmentHappyPath(t *testing.T) {
	repo := bookingFixture()
	uc := NewBookAppointment(repo, nil, nil, nil)

	start := testNow.Add(26 * time.Hour)
	ap, err := uc.Execute(context.Background(), bookInput(start))
	require.NoError(t, err)

	require.NotEmpty(t, ap.Ref)
	require.Equal(t, string(domain.StatusScheduled), ap.Status)
	require.True(t, ap.EndTime.Equal(start.Add(50*time.Minute)))
	require.Len(t, repo.appointments, 1)
}

func TestBookAppointmentRequiresAssignment(t *testing.T) {
	repo := bookingFixture()
	uc := NewBookAppointment(repo, nil, nil, nil)

	in := bookInput(testNow.Add(26 * time.Hour))
	in.PatientID = 999

	_, err := uc.Execute(context.Background(), in)
	require.Equal(t, "not_assigned", httperr.BusinessCode(err))
	require.Empty(t, repo.appointments)
}

func TestBookAppointmentLeadTimeBoundary(t *testing.T) {
	repo := bookingFixture()
	uc := NewBookAppointment(repo, nil, nil, nil)

	// 1h59m ahead: inside the 2-hour lead window.
	_, err := uc.Execute(context.Background(), bookInput(testNow.Add(119*time.Minute)))
	require.Equal(t, "too_soon", httperr.BusinessCode(err))

	// Exactly 2h ahead is allowed.
	_, err = uc.Execute(context.Background(), bookInput(testNow.Add(2*time.Hour)))
	require.NoError(t, err)
}

func TestBookAppointmentHorizonBoundary(t *testing.T) {
	repo := bookingFixture()
	uc := NewBookAppointment(repo, nil, nil, nil)

	horizon := domain.HorizonEnd(testNow)

	_, err := uc.Execute(context.Background(), bookInput(horizon.Add(time.Minute)))
	require.Equal(t, "beyond_horizon", httperr.BusinessCode(err))

	// Exactly at the horizon is allowed.
	_, err = uc.Execute(context.Background(), bookInput(horizon))
	require.NoError(t, err)
}

func TestBookAppointmentSlotConflict(t *testing.T) {
	repo := bookingFixture()
	uc := NewBookAppointment(repo, nil, nil, nil)

	start := testNow.Add(26 * time.Hour)
	_, err := uc.Execute(context.Background(), bookInput(start))
	require.NoError(t, err)

	// Second patient, same doctor, same exact start.
	repo.assign(doctorID, 101)
	in := bookInput(start)
	in.PatientID = 101

	_, err = uc.Execute(context.Background(), in)
	require.Equal(t, "slot_taken", httperr.BusinessCode(err))
}

func TestBookAppointmentActiveCap(t *testing.T) {
	repo := bookingFixture()
	uc := NewBookAppointment(repo, nil, nil, nil)

	for i := 0; i < domain.ActiveAppointmentCap; i++ {
		start := testNow.Add(time.Duration(26+24*i) * time.Hour)
		_, err := uc.Execute(context.Background(), bookInput(start))
		require.NoError(t, err)
	}

	_, err := uc.Execute(context.Background(), bookInput(testNow.Add(200*time.Hour)))
	require.Equal(t, "active_limit_reached", httperr.BusinessCode(err))
}

func TestBookAppointmentCancelFreesCapSlot(t *testing.T) {
	repo := bookingFixture()
	book := NewBookAppointment(repo, nil, nil, nil)
	cancel := NewCancelAppointment(repo, nil, nil, nil)

	var first *models.Appointment
	for i := 0; i < domain.ActiveAppointmentCap; i++ {
		start := testNow.Add(time.Duration(26+24*i) * time.Hour)
		ap, err := book.Execute(context.Background(), bookInput(start))
		require.NoError(t, err)
		if first == nil {
			first = ap
		}
	}

	_, err := cancel.Execute(context.Background(), CancelAppointmentInput{
		AppointmentID: first.ID,
		RequesterID:   patientID,
		RequesterRole: models.RolePatient,
		Now:           testNow,
	})
	require.NoError(t, err)

	// The freed slot lets a new booking through.
	_, err = book.Execute(context.Background(), bookInput(testNow.Add(200*time.Hour)))
	require.NoError(t, err)
}

func TestBookAppointmentValidationOrder(t *testing.T) {
	repo := bookingFixture()
	uc := NewBookAppointment(repo, nil, nil, nil)

	// Occupy a slot inside the lead window: the conflict check runs
	// before the lead-time check, so slot_taken wins.
	taken := testNow.Add(30 * time.Minute)
	repo.addAppointment(models.Appointment{
		PatientID: 101,
		DoctorID:  doctorID,
		StartTime: taken,
		Status:    string(domain.StatusScheduled),
	})

	_, err := uc.Execute(context.Background(), bookInput(taken))
	require.Equal(t, "slot_taken", httperr.BusinessCode(err))
}

func TestBookAppointmentInvalidatesAvailabilityCache(t *testing.T) {
	repo := bookingFixture()
	cache := newFakeCache()
	uc := NewBookAppointment(repo, nil, nil, cache)

	start := testNow.Add(26 * time.Hour)
	_, err := uc.Execute(context.Background(), bookInput(start))
	require.NoError(t, err)

	require.Contains(t, cache.invalidated, cacheKey(doctorID, start))
}

func TestBookAppointmentDefaultsDuration(t *testing.T) {
	repo := bookingFixture()
	uc := NewBookAppointment(repo, nil, nil, nil)

	in := bookInput(testNow.Add(26 * time.Hour))
	in.DurationMin = 0

	ap, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, domain.DefaultVisitMinutes, ap.DurationMin)
}
