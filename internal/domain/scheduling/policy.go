package scheduling

import "time"

// Booking policy. Clinic-wide; the visit/buffer pair is per doctor.
const (
	// Slots are never offered before this local hour, whatever the
	// configured window says.
	SlotFloorHour = 7

	// Patients must book at least this far ahead.
	BookingLeadTime = 2 * time.Hour

	// Bookings may not be placed further out than this many months.
	BookingHorizonMonths = 3

	// A patient may hold at most this many future active appointments.
	ActiveAppointmentCap = 3

	// Patient-initiated cancellations need at least this much notice.
	// Doctor-initiated cancellations are not subject to it.
	CancelNotice = 4 * time.Hour

	DefaultVisitMinutes  = 50
	DefaultBufferMinutes = 10

	DefaultCancelReason = "cancelled by patient"
)

// HorizonEnd returns the last admissible booking instant relative to now.
func HorizonEnd(now time.Time) time.Time {
	return now.AddDate(0, BookingHorizonMonths, 0)
}
