package scheduling

import (
	"context"
	"time"

	"github.com/gdmcare/portal-api/internal/models"
)

type Repository interface {
	// -------- Users / assignment --------
	GetDoctorByID(
		ctx context.Context,
		doctorID uint,
	) (*models.User, error)

	AssignmentExists(
		ctx context.Context,
		doctorID uint,
		patientID uint,
	) (bool, error)

	ListAssignedDoctors(
		ctx context.Context,
		patientID uint,
	) ([]models.User, error)

	// -------- Availability --------
	GetRecurringRule(
		ctx context.Context,
		doctorID uint,
		weekday int,
	) (*models.RecurringAvailability, error)

	ListRecurringRules(
		ctx context.Context,
		doctorID uint,
	) ([]models.RecurringAvailability, error)

	ReplaceRecurringRule(
		ctx context.Context,
		rule *models.RecurringAvailability,
	) error

	GetDateOverride(
		ctx context.Context,
		doctorID uint,
		date time.Time,
	) (*models.DateOverride, error)

	GetDateOverrideByID(
		ctx context.Context,
		overrideID uint,
	) (*models.DateOverride, error)

	ListDateOverrides(
		ctx context.Context,
		doctorID uint,
		from time.Time,
		to time.Time,
	) ([]models.DateOverride, error)

	CreateDateOverride(
		ctx context.Context,
		override *models.DateOverride,
	) error

	DeleteDateOverride(
		ctx context.Context,
		overrideID uint,
	) error

	// -------- Appointment (create / conflict) --------

	// CreateAppointment runs the slot-free check and the insert in one
	// transaction. A lost race surfaces as the slot_taken business error.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	HasActiveBookingAt(
		ctx context.Context,
		doctorID uint,
		start time.Time,
	) (bool, error)

	CountActiveAppointments(
		ctx context.Context,
		patientID uint,
		after time.Time,
	) (int64, error)

	ListBookedStarts(
		ctx context.Context,
		doctorID uint,
		dayStart time.Time,
		dayEnd time.Time,
	) ([]time.Time, error)

	// -------- Appointment (state change) --------
	GetAppointmentByID(
		ctx context.Context,
		appointmentID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// MoveAppointment persists a reschedule; the new slot is re-checked
	// inside the same transaction as the write.
	MoveAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (listing) --------
	ListPatientAppointments(
		ctx context.Context,
		patientID uint,
	) ([]models.Appointment, error)

	ListDoctorAppointments(
		ctx context.Context,
		doctorID uint,
		from time.Time,
		to time.Time,
	) ([]models.Appointment, error)
}
