package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/gdmcare/portal-api/internal/domain/scheduling"
	"github.com/gdmcare/portal-api/internal/httperr"
	"github.com/gdmcare/portal-api/internal/models"
)

type SchedulingGormRepository struct {
	db *gorm.DB
}

func NewSchedulingGormRepository(db *gorm.DB) *SchedulingGormRepository {
	return &SchedulingGormRepository{db: db}
}

// isUniqueViolation reports whether err is the Postgres duplicate-key
// error raised by the active-booking index.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// --------------------------------------------------
// Users / assignment
// --------------------------------------------------

func (r *SchedulingGormRepository) GetDoctorByID(
	ctx context.Context,
	doctorID uint,
) (*models.User, error) {

	var doctor models.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND role = ?", doctorID, models.RoleDoctor).
		First(&doctor).Error; err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (r *SchedulingGormRepository) AssignmentExists(
	ctx context.Context,
	doctorID uint,
	patientID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.PatientAssignment{}).
		Where("doctor_id = ? AND patient_id = ?", doctorID, patientID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *SchedulingGormRepository) ListAssignedDoctors(
	ctx context.Context,
	patientID uint,
) ([]models.User, error) {

	var doctors []models.User
	if err := r.db.WithContext(ctx).
		Joins(
			"JOIN patient_assignments ON patient_assignments.doctor_id = users.id",
		).
		Where("patient_assignments.patient_id = ?", patientID).
		Order("users.name ASC").
		Find(&doctors).Error; err != nil {
		return nil, err
	}
	return doctors, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *SchedulingGormRepository) GetRecurringRule(
	ctx context.Context,
	doctorID uint,
	weekday int,
) (*models.RecurringAvailability, error) {

	var rule models.RecurringAvailability
	err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND weekday = ?", doctorID, weekday).
		First(&rule).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *SchedulingGormRepository) ListRecurringRules(
	ctx context.Context,
	doctorID uint,
) ([]models.RecurringAvailability, error) {

	var rules []models.RecurringAvailability
	if err := r.db.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Order("weekday ASC").
		Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

// ReplaceRecurringRule applies delete-then-create semantics for the
// rule's weekday.
func (r *SchedulingGormRepository) ReplaceRecurringRule(
	ctx context.Context,
	rule *models.RecurringAvailability,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("doctor_id = ? AND weekday = ?", rule.DoctorID, rule.Weekday).
			Delete(&models.RecurringAvailability{}).Error; err != nil {
			return err
		}
		return tx.Create(rule).Error
	})
}

func (r *SchedulingGormRepository) GetDateOverride(
	ctx context.Context,
	doctorID uint,
	date time.Time,
) (*models.DateOverride, error) {

	var override models.DateOverride
	err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND specific_date = ?", doctorID, date.Format("2006-01-02")).
		First(&override).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &override, nil
}

func (r *SchedulingGormRepository) GetDateOverrideByID(
	ctx context.Context,
	overrideID uint,
) (*models.DateOverride, error) {

	var override models.DateOverride
	if err := r.db.WithContext(ctx).
		First(&override, overrideID).Error; err != nil {
		return nil, err
	}
	return &override, nil
}

func (r *SchedulingGormRepository) ListDateOverrides(
	ctx context.Context,
	doctorID uint,
	from time.Time,
	to time.Time,
) ([]models.DateOverride, error) {

	var overrides []models.DateOverride
	if err := r.db.WithContext(ctx).
		Where(
			"doctor_id = ? AND specific_date >= ? AND specific_date < ?",
			doctorID, from.Format("2006-01-02"), to.Format("2006-01-02"),
		).
		Order("specific_date ASC").
		Find(&overrides).Error; err != nil {
		return nil, err
	}
	return overrides, nil
}

func (r *SchedulingGormRepository) CreateDateOverride(
	ctx context.Context,
	override *models.DateOverride,
) error {

	if err := r.db.WithContext(ctx).Create(override).Error; err != nil {
		if isUniqueViolation(err) {
			return httperr.ErrBusiness("date_already_blocked")
		}
		return err
	}
	return nil
}

func (r *SchedulingGormRepository) DeleteDateOverride(
	ctx context.Context,
	overrideID uint,
) error {
	return r.db.WithContext(ctx).
		Delete(&models.DateOverride{}, overrideID).Error
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

// CreateAppointment re-checks the slot under a row lock and inserts in
// one transaction. The partial unique index on (doctor_id, start_time)
// is the last line of defense; its violation also maps to slot_taken.
func (r *SchedulingGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var count int64
		if err := tx.
			Model(&models.Appointment{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"doctor_id = ? AND start_time = ? AND status IN ?",
				ap.DoctorID, ap.StartTime, domain.ActiveStatuses,
			).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return httperr.ErrBusiness("slot_taken")
		}

		return tx.Create(ap).Error
	})

	if err != nil && isUniqueViolation(err) {
		return httperr.ErrBusiness("slot_taken")
	}
	return err
}

func (r *SchedulingGormRepository) HasActiveBookingAt(
	ctx context.Context,
	doctorID uint,
	start time.Time,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"doctor_id = ? AND start_time = ? AND status IN ?",
			doctorID, start, domain.ActiveStatuses,
		).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *SchedulingGormRepository) CountActiveAppointments(
	ctx context.Context,
	patientID uint,
	after time.Time,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"patient_id = ? AND start_time > ? AND status IN ?",
			patientID, after, domain.ActiveStatuses,
		).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *SchedulingGormRepository) ListBookedStarts(
	ctx context.Context,
	doctorID uint,
	dayStart time.Time,
	dayEnd time.Time,
) ([]time.Time, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("start_time").
		Where(
			"doctor_id = ? AND status IN ? AND start_time >= ? AND start_time < ?",
			doctorID, domain.ActiveStatuses, dayStart, dayEnd,
		).
		Order("start_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}

	starts := make([]time.Time, 0, len(aps))
	for _, ap := range aps {
		starts = append(starts, ap.StartTime)
	}
	return starts, nil
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *SchedulingGormRepository) GetAppointmentByID(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		First(&ap, appointmentID).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *SchedulingGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *SchedulingGormRepository) MoveAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var count int64
		if err := tx.
			Model(&models.Appointment{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"doctor_id = ? AND start_time = ? AND status IN ? AND id <> ?",
				ap.DoctorID, ap.StartTime, domain.ActiveStatuses, ap.ID,
			).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return httperr.ErrBusiness("slot_taken")
		}

		return tx.Save(ap).Error
	})

	if err != nil && isUniqueViolation(err) {
		return httperr.ErrBusiness("slot_taken")
	}
	return err
}

// --------------------------------------------------
// Appointment (listing)
// --------------------------------------------------

func (r *SchedulingGormRepository) ListPatientAppointments(
	ctx context.Context,
	patientID uint,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Doctor").
		Where("patient_id = ?", patientID).
		Order("start_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *SchedulingGormRepository) ListDoctorAppointments(
	ctx context.Context,
	doctorID uint,
	from time.Time,
	to time.Time,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Patient").
		Where(
			"doctor_id = ? AND start_time >= ? AND start_time < ?",
			doctorID, from, to,
		).
		Order("start_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

// Compile-time check
var _ domain.Repository = (*SchedulingGormRepository)(nil)
