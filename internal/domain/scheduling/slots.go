package scheduling

import (
	"time"

	"github.com/gdmcare/portal-api/internal/models"
)

type Slot struct {
	Start     time.Time `json:"start"`
	Available bool      `json:"available"`
}

// SlotRequest carries everything GenerateSlots needs, pre-fetched.
type SlotRequest struct {
	// Date is midnight of the target day in the clinic location.
	Date time.Time

	// Rule is the doctor's recurring rule for Date's weekday, nil if none.
	Rule *models.RecurringAvailability

	// Override is the doctor's override for Date, nil if none. Any
	// override row blocks the date.
	Override *models.DateOverride

	// BookedStarts are start times of the doctor's active appointments
	// on Date.
	BookedStarts []time.Time

	VisitMinutes  int
	BufferMinutes int

	Now time.Time
}

// GenerateSlots derives the ordered candidate slots for one doctor and
// one day. Unavailable candidates are returned with Available=false
// rather than omitted, so callers can render them as taken.
func GenerateSlots(req SlotRequest) []Slot {
	if req.Override != nil {
		return []Slot{}
	}

	rule := req.Rule
	if rule == nil || !rule.IsAvailable {
		return []Slot{}
	}

	loc := req.Date.Location()

	parseHM := func(hm string) (time.Time, bool) {
		t, err := time.Parse("15:04", hm)
		if err != nil {
			return time.Time{}, false
		}
		return time.Date(
			req.Date.Year(), req.Date.Month(), req.Date.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		), true
	}

	dayStart, ok := parseHM(rule.StartTime)
	if !ok {
		return []Slot{}
	}
	dayEnd, ok := parseHM(rule.EndTime)
	if !ok {
		return []Slot{}
	}

	floor := time.Date(
		req.Date.Year(), req.Date.Month(), req.Date.Day(),
		SlotFloorHour, 0, 0, 0,
		loc,
	)
	if dayStart.Before(floor) {
		dayStart = floor
	}

	visit := req.VisitMinutes
	if visit <= 0 {
		visit = DefaultVisitMinutes
	}
	buffer := req.BufferMinutes
	if buffer < 0 {
		buffer = DefaultBufferMinutes
	}
	step := time.Duration(visit+buffer) * time.Minute

	earliest := req.Now.Add(BookingLeadTime)

	var slots []Slot

	for cur := dayStart; cur.Add(step).Before(dayEnd) || cur.Add(step).Equal(dayEnd); cur = cur.Add(step) {

		available := !cur.Before(earliest)

		if available {
			for _, booked := range req.BookedStarts {
				if booked.Equal(cur) {
					available = false
					break
				}
			}
		}

		slots = append(slots, Slot{Start: cur, Available: available})
	}

	if slots == nil {
		return []Slot{}
	}
	return slots
}
