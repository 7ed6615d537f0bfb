package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domain "github.com/gdmcare/portal-api/internal/domain/scheduling"
	"github.com/gdmcare/portal-api/internal/httperr"
)

func TestUpdateStatusCompleted(t *testing.T) {
	repo := bookingFixture()
	ap := seedAppointment(repo, testNow.Add(-time.Hour))
	uc := NewUpdateStatus(repo, nil)

	out, err := uc.Execute(context.Background(), UpdateStatusInput{
		AppointmentID: ap.ID,
		DoctorID:      doctorID,
		Status:        string(domain.StatusCompleted),
		Notes:         "reviewed glucose log",
		Now:           testNow,
	})
	require.NoError(t, err)
	require.Equal(t, string(domain.StatusCompleted), out.Status)
	require.NotNil(t, out.CompletedAt)
	require.Equal(t, "reviewed glucose log", out.DoctorNotes)
}

func TestUpdateStatusNoShow(t *testing.T) {
	repo := bookingFixture()
	ap := seedAppointment(repo, testNow.Add(-time.Hour))
	uc := NewUpdateStatus(repo, nil)

	out, err := uc.Execute(context.Background(), UpdateStatusInput{
		AppointmentID: ap.ID,
		DoctorID:      doctorID,
		Status:        string(domain.StatusNoShow),
		Now:           testNow,
	})
	require.NoError(t, err)
	require.Equal(t, string(domain.StatusNoShow), out.Status)
	require.Nil(t, out.CompletedAt)
}

func TestUpdateStatusRejectsUnknownTarget(t *testing.T) {
	repo := bookingFixture()
	ap := seedAppointment(repo, testNow.Add(-time.Hour))
	uc := NewUpdateStatus(repo, nil)

	_, err := uc.Execute(context.Background(), UpdateStatusInput{
		AppointmentID: ap.ID,
		DoctorID:      doctorID,
		Status:        "cancelled",
		Now:           testNow,
	})
	require.Equal(t, "invalid_status", httperr.BusinessCode(err))
}

func TestUpdateStatusRejectsForeignDoctor(t *testing.T) {
	repo := bookingFixture()
	ap := seedAppointment(repo, testNow.Add(-time.Hour))
	uc := NewUpdateStatus(repo, nil)

	_, err := uc.Execute(context.Background(), UpdateStatusInput{
		AppointmentID: ap.ID,
		DoctorID:      999,
		Status:        string(domain.StatusCompleted),
		Now:           testNow,
	})
	require.Equal(t, "not_owner", httperr.BusinessCode(err))
}

func TestUpdateStatusTerminalState(t *testing.T) {
	repo := bookingFixture()
	ap := seedAppointment(repo, testNow.Add(-time.Hour))
	ap.Status = string(domain.StatusCancelled)
	uc := NewUpdateStatus(repo, nil)

	_, err := uc.Execute(context.Background(), UpdateStatusInput{
		AppointmentID: ap.ID,
		DoctorID:      doctorID,
		Status:        string(domain.StatusCompleted),
		Now:           testNow,
	})
	require.Equal(t, "invalid_state", httperr.BusinessCode(err))
}
