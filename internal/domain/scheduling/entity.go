package scheduling

import (
	"time"

	"github.com/gdmcare/portal-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(ap *models.Appointment, now time.Time, reason string) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	if reason == "" {
		reason = DefaultCancelReason
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	ap.CancelReason = reason
	return nil
}

func Complete(ap *models.Appointment, now time.Time, notes string) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	if notes != "" {
		ap.DoctorNotes = notes
	}
	return nil
}

func MarkNoShow(ap *models.Appointment, notes string) error {
	if err := CanMarkNoShow(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusNoShow)
	if notes != "" {
		ap.DoctorNotes = notes
	}
	return nil
}

func Reschedule(ap *models.Appointment, newStart time.Time) error {
	if err := CanReschedule(Status(ap.Status)); err != nil {
		return err
	}

	duration := ap.DurationMin
	if duration <= 0 {
		duration = DefaultVisitMinutes
	}

	ap.StartTime = newStart
	ap.EndTime = newStart.Add(time.Duration(duration) * time.Minute)
	ap.Status = string(StatusRescheduled)
	return nil
}
