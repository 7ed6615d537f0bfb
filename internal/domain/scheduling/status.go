package scheduling

import "github.com/gdmcare/portal-api/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled   Status = "scheduled"
	StatusRescheduled Status = "rescheduled"
	StatusCompleted   Status = "completed"
	StatusCancelled   Status = "cancelled"
	StatusNoShow      Status = "no_show"
)

// ActiveStatuses are the statuses that hold a slot and count against
// the per-patient cap.
var ActiveStatuses = []string{
	string(StatusScheduled),
	string(StatusRescheduled),
}

func IsActive(s Status) bool {
	return s == StatusScheduled || s == StatusRescheduled
}

// ===============================
// Validations
// ===============================

func CanCancel(current Status) error {
	if !IsActive(current) {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanComplete(current Status) error {
	if !IsActive(current) {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanMarkNoShow(current Status) error {
	if !IsActive(current) {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanReschedule(current Status) error {
	if !IsActive(current) {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusScheduled
}
