package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domain "github.com/gdmcare/portal-api/internal/domain/scheduling"
	"github.com/gdmcare/portal-api/internal/models"
)

func TestListPatientAppointmentsSplitsUpcomingAndPast(t *testing.T) {
	repo := bookingFixture()

	upcoming := seedAppointment(repo, testNow.Add(48*time.Hour))

	past := seedAppointment(repo, testNow.Add(-48*time.Hour))
	past.Status = string(domain.StatusCompleted)

	// Future but cancelled: belongs in past.
	cancelledFuture := seedAppointment(repo, testNow.Add(72*time.Hour))
	cancelledFuture.Status = string(domain.StatusCancelled)

	uc := NewListPatientAppointments(repo)
	out, err := uc.Execute(context.Background(), patientID, testNow)
	require.NoError(t, err)

	require.Len(t, out.Upcoming, 1)
	require.Equal(t, upcoming.ID, out.Upcoming[0].ID)
	require.Len(t, out.Past, 2)
}

func TestListPatientAppointmentsEmpty(t *testing.T) {
	repo := bookingFixture()
	uc := NewListPatientAppointments(repo)

	out, err := uc.Execute(context.Background(), patientID, testNow)
	require.NoError(t, err)
	require.NotNil(t, out.Upcoming)
	require.NotNil(t, out.Past)
	require.Empty(t, out.Upcoming)
	require.Empty(t, out.Past)
}

func TestListDoctorAppointmentsRange(t *testing.T) {
	repo := bookingFixture()
	inRange := seedAppointment(repo, testNow.Add(24*time.Hour))
	seedAppointment(repo, testNow.Add(30*24*time.Hour))

	uc := NewListDoctorAppointments(repo)
	out, err := uc.Execute(context.Background(), doctorID, testNow, testNow.Add(7*24*time.Hour))
	require.NoError(t, err)

	require.Len(t, out, 1)
	require.Equal(t, inRange.ID, out[0].ID)
}

func TestAssignedDoctors(t *testing.T) {
	repo := bookingFixture()
	repo.addDoctor(2, 30, 0)
	repo.doctors[2].Name = "Dr. Second"
	repo.assign(2, patientID)

	// Another patient's assignment must not leak in.
	repo.addDoctor(3, 50, 10)
	repo.assign(3, 999)

	uc := NewAssignedDoctors(repo)
	doctors, err := uc.Execute(context.Background(), patientID)
	require.NoError(t, err)
	require.Len(t, doctors, 2)

	ids := map[uint]bool{}
	for _, d := range doctors {
		ids[d.ID] = true
	}
	require.True(t, ids[doctorID])
	require.True(t, ids[2])
	require.False(t, ids[3])
}

func TestGetDoctorScheduleWeek(t *testing.T) {
	repo := bookingFixture()
	seedAppointment(repo, testDate.Add(34*time.Hour))
	require.NoError(t, repo.CreateDateOverride(context.Background(), &models.DateOverride{
		DoctorID:     doctorID,
		SpecificDate: testDate.AddDate(0, 0, 2),
	}))

	uc := NewGetDoctorSchedule(repo)
	schedule, err := uc.Execute(context.Background(), doctorID, testDate)
	require.NoError(t, err)

	require.Len(t, schedule.RecurringAvailability, 1)
	require.Len(t, schedule.DateOverrides, 1)
	require.Len(t, schedule.Appointments, 1)
}
