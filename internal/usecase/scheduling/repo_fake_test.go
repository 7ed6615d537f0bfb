package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/gdmcare/portal-api/internal/domain/scheduling"
	"github.com/gdmcare/portal-api/internal/httperr"
	"github.com/gdmcare/portal-api/internal/models"
)

// fakeRepo is an in-memory domain.Repository for use-case tests.
type fakeRepo struct {
	doctors      map[uint]*models.User
	assignments  map[uint][]uint // doctorID -> patientIDs
	rules        map[uint]map[int]*models.RecurringAvailability
	overrides    map[uint]*models.DateOverride
	appointments map[uint]*models.Appointment

	nextID uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		doctors:      map[uint]*models.User{},
		assignments:  map[uint][]uint{},
		rules:        map[uint]map[int]*models.RecurringAvailability{},
		overrides:    map[uint]*models.DateOverride{},
		appointments: map[uint]*models.Appointment{},
	}
}

func (f *fakeRepo) id() uint {
	f.nextID++
	return f.nextID
}

func (f *fakeRepo) addDoctor(id uint, visitMin, bufferMin int) {
	f.doctors[id] = &models.User{
		ID:               id,
		Role:             models.RoleDoctor,
		VisitDurationMin: visitMin,
		BufferMin:        bufferMin,
	}
}

func (f *fakeRepo) assign(doctorID, patientID uint) {
	f.assignments[doctorID] = append(f.assignments[doctorID], patientID)
}

func (f *fakeRepo) addRule(doctorID uint, weekday int, start, end string) {
	if f.rules[doctorID] == nil {
		f.rules[doctorID] = map[int]*models.RecurringAvailability{}
	}
	f.rules[doctorID][weekday] = &models.RecurringAvailability{
		ID:          f.id(),
		DoctorID:    doctorID,
		Weekday:     weekday,
		StartTime:   start,
		EndTime:     end,
		IsAvailable: true,
	}
}

func (f *fakeRepo) addAppointment(ap models.Appointment) *models.Appointment {
	ap.ID = f.id()
	f.appointments[ap.ID] = &ap
	return f.appointments[ap.ID]
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// -------- Users / assignment --------

func (f *fakeRepo) GetDoctorByID(_ context.Context, doctorID uint) (*models.User, error) {
	doc, ok := f.doctors[doctorID]
	if !ok {
		return nil, errors.New("record not found")
	}
	return doc, nil
}

func (f *fakeRepo) AssignmentExists(_ context.Context, doctorID, patientID uint) (bool, error) {
	for _, pid := range f.assignments[doctorID] {
		if pid == patientID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) ListAssignedDoctors(_ context.Context, patientID uint) ([]models.User, error) {
	var out []models.User
	for doctorID, pids := range f.assignments {
		for _, pid := range pids {
			if pid == patientID {
				out = append(out, *f.doctors[doctorID])
			}
		}
	}
	return out, nil
}

// -------- Availability --------

func (f *fakeRepo) GetRecurringRule(_ context.Context, doctorID uint, weekday int) (*models.RecurringAvailability, error) {
	return f.rules[doctorID][weekday], nil
}

func (f *fakeRepo) ListRecurringRules(_ context.Context, doctorID uint) ([]models.RecurringAvailability, error) {
	var out []models.RecurringAvailability
	for _, r := range f.rules[doctorID] {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeRepo) ReplaceRecurringRule(_ context.Context, rule *models.RecurringAvailability) error {
	if f.rules[rule.DoctorID] == nil {
		f.rules[rule.DoctorID] = map[int]*models.RecurringAvailability{}
	}
	rule.ID = f.id()
	f.rules[rule.DoctorID][rule.Weekday] = rule
	return nil
}

func (f *fakeRepo) GetDateOverride(_ context.Context, doctorID uint, date time.Time) (*models.DateOverride, error) {
	for _, o := range f.overrides {
		if o.DoctorID == doctorID && sameDate(o.SpecificDate, date) {
			return o, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) GetDateOverrideByID(_ context.Context, overrideID uint) (*models.DateOverride, error) {
	o, ok := f.overrides[overrideID]
	if !ok {
		return nil, errors.New("record not found")
	}
	return o, nil
}

func (f *fakeRepo) ListDateOverrides(_ context.Context, doctorID uint, from, to time.Time) ([]models.DateOverride, error) {
	var out []models.DateOverride
	for _, o := range f.overrides {
		if o.DoctorID == doctorID && !o.SpecificDate.Before(from) && o.SpecificDate.Before(to) {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeRepo) CreateDateOverride(_ context.Context, override *models.DateOverride) error {
	override.ID = f.id()
	f.overrides[override.ID] = override
	return nil
}

func (f *fakeRepo) DeleteDateOverride(_ context.Context, overrideID uint) error {
	delete(f.overrides, overrideID)
	return nil
}

// -------- Appointment (create / conflict) --------

func (f *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	for _, existing := range f.appointments {
		if existing.DoctorID == ap.DoctorID &&
			existing.StartTime.Equal(ap.StartTime) &&
			domain.IsActive(domain.Status(existing.Status)) {
			return httperr.ErrBusiness("slot_taken")
		}
	}
	ap.ID = f.id()
	f.appointments[ap.ID] = ap
	return nil
}

func (f *fakeRepo) HasActiveBookingAt(_ context.Context, doctorID uint, start time.Time) (bool, error) {
	for _, ap := range f.appointments {
		if ap.DoctorID == doctorID &&
			ap.StartTime.Equal(start) &&
			domain.IsActive(domain.Status(ap.Status)) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) CountActiveAppointments(_ context.Context, patientID uint, after time.Time) (int64, error) {
	var n int64
	for _, ap := range f.appointments {
		if ap.PatientID == patientID &&
			ap.StartTime.After(after) &&
			domain.IsActive(domain.Status(ap.Status)) {
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) ListBookedStarts(_ context.Context, doctorID uint, dayStart, dayEnd time.Time) ([]time.Time, error) {
	var out []time.Time
	for _, ap := range f.appointments {
		if ap.DoctorID == doctorID &&
			!ap.StartTime.Before(dayStart) && ap.StartTime.Before(dayEnd) &&
			domain.IsActive(domain.Status(ap.Status)) {
			out = append(out, ap.StartTime)
		}
	}
	return out, nil
}

// -------- Appointment (state change) --------

func (f *fakeRepo) GetAppointmentByID(_ context.Context, appointmentID uint) (*models.Appointment, error) {
	ap, ok := f.appointments[appointmentID]
	if !ok {
		return nil, errors.New("record not found")
	}
	cp := *ap
	return &cp, nil
}

func (f *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	f.appointments[ap.ID] = ap
	return nil
}

func (f *fakeRepo) MoveAppointment(_ context.Context, ap *models.Appointment) error {
	for _, existing := range f.appointments {
		if existing.ID != ap.ID &&
			existing.DoctorID == ap.DoctorID &&
			existing.StartTime.Equal(ap.StartTime) &&
			domain.IsActive(domain.Status(existing.Status)) {
			return httperr.ErrBusiness("slot_taken")
		}
	}
	f.appointments[ap.ID] = ap
	return nil
}

// -------- Appointment (listing) --------

func (f *fakeRepo) ListPatientAppointments(_ context.Context, patientID uint) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.PatientID == patientID {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListDoctorAppointments(_ context.Context, doctorID uint, from, to time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.DoctorID == doctorID &&
			!ap.StartTime.Before(from) && ap.StartTime.Before(to) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// fakeCache records invalidations and serves a seeded day.
type fakeCache struct {
	days        map[string][]domain.Slot
	invalidated []string
	setCalls    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{days: map[string][]domain.Slot{}}
}

func cacheKey(doctorID uint, date time.Time) string {
	return fmt.Sprintf("%d:%s", doctorID, date.Format("2006-01-02"))
}

func (c *fakeCache) GetDay(_ context.Context, doctorID uint, date time.Time) ([]domain.Slot, bool) {
	slots, ok := c.days[cacheKey(doctorID, date)]
	return slots, ok
}

func (c *fakeCache) SetDay(_ context.Context, doctorID uint, date time.Time, slots []domain.Slot) {
	c.setCalls++
	c.days[cacheKey(doctorID, date)] = slots
}

func (c *fakeCache) InvalidateDay(_ context.Context, doctorID uint, date time.Time) {
	key := cacheKey(doctorID, date)
	delete(c.days, key)
	c.invalidated = append(c.invalidated, key)
}

func (c *fakeCache) InvalidateDoctor(_ context.Context, doctorID uint) {
	c.days = map[string][]domain.Slot{}
	c.invalidated = append(c.invalidated, "doctor")
}
