package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gdmcare/portal-api/internal/config"
	"github.com/gdmcare/portal-api/internal/httperr"
	"github.com/gdmcare/portal-api/internal/httpresp"
	"github.com/gdmcare/portal-api/internal/middleware"
	ucScheduling "github.com/gdmcare/portal-api/internal/usecase/scheduling"
)

// ======================================================
// HANDLER (patient surface)
// ======================================================

type BookingHandler struct {
	cfg *config.Config
	log *zap.Logger

	assignedDoctors *ucScheduling.AssignedDoctors
	getAvailability *ucScheduling.GetAvailability
	book            *ucScheduling.BookAppointment
	cancel          *ucScheduling.CancelAppointment
	reschedule      *ucScheduling.RescheduleAppointment
	list            *ucScheduling.ListPatientAppointments
}

func NewBookingHandler(
	cfg *config.Config,
	log *zap.Logger,
	assignedDoctors *ucScheduling.AssignedDoctors,
	getAvailability *ucScheduling.GetAvailability,
	book *ucScheduling.BookAppointment,
	cancel *ucScheduling.CancelAppointment,
	reschedule *ucScheduling.RescheduleAppointment,
	list *ucScheduling.ListPatientAppointments,
) *BookingHandler {
	return &BookingHandler{
		cfg:             cfg,
		log:             log,
		assignedDoctors: assignedDoctors,
		getAvailability: getAvailability,
		book:            book,
		cancel:          cancel,
		reschedule:      reschedule,
		list:            list,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type BookAppointmentRequest struct {
	DoctorID       uint   `json:"doctor_id" binding:"required"`
	Date           string `json:"date" binding:"required"`
	Time           string `json:"time" binding:"required"`
	DurationMin    int    `json:"duration_min"`
	Type           string `json:"type" binding:"required"`
	ReasonForVisit string `json:"reason_for_visit"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason"`
}

type RescheduleAppointmentRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

// ======================================================
// DOCTORS
// ======================================================

func (h *BookingHandler) ListDoctors(c *gin.Context) {
	patientID := c.MustGet(middleware.ContextUserID).(uint)

	doctors, err := h.assignedDoctors.Execute(c.Request.Context(), patientID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.List(c, doctors)
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *BookingHandler) Availability(c *gin.Context) {
	patientID := c.MustGet(middleware.ContextUserID).(uint)

	doctorID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_doctor_id", "Invalid doctor id.")
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	date, err := parseDateInClinic(h.cfg.ClinicTimezone, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	slots, err := h.getAvailability.Execute(c.Request.Context(), ucScheduling.AvailabilityInput{
		PatientID: patientID,
		DoctorID:  uint(doctorID),
		Date:      date,
		Now:       nowInClinic(h.cfg.ClinicTimezone),
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

// ======================================================
// BOOK
// ======================================================

func (h *BookingHandler) Book(c *gin.Context) {
	patientID := c.MustGet(middleware.ContextUserID).(uint)

	var req BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	start, err := parseDateTimeInClinic(h.cfg.ClinicTimezone, req.Date+" "+req.Time)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Invalid date or time.")
		return
	}

	ap, err := h.book.Execute(c.Request.Context(), ucScheduling.BookAppointmentInput{
		PatientID:      patientID,
		DoctorID:       req.DoctorID,
		StartTime:      start,
		DurationMin:    req.DurationMin,
		Type:           req.Type,
		ReasonForVisit: req.ReasonForVisit,
		Now:            nowInClinic(h.cfg.ClinicTimezone),
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *BookingHandler) List(c *gin.Context) {
	patientID := c.MustGet(middleware.ContextUserID).(uint)

	out, err := h.list.Execute(
		c.Request.Context(),
		patientID,
		nowInClinic(h.cfg.ClinicTimezone),
	)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.OK(c, out)
}

// ======================================================
// CANCEL
// ======================================================

func (h *BookingHandler) Cancel(c *gin.Context) {
	patientID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "Invalid appointment id.")
		return
	}

	var req CancelAppointmentRequest
	_ = c.ShouldBindJSON(&req)

	ap, err := h.cancel.Execute(c.Request.Context(), ucScheduling.CancelAppointmentInput{
		AppointmentID: uint(id),
		RequesterID:   patientID,
		RequesterRole: role,
		Reason:        req.Reason,
		Now:           nowInClinic(h.cfg.ClinicTimezone),
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// RESCHEDULE
// ======================================================

func (h *BookingHandler) Reschedule(c *gin.Context) {
	patientID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "Invalid appointment id.")
		return
	}

	var req RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	newStart, err := parseDateTimeInClinic(h.cfg.ClinicTimezone, req.Date+" "+req.Time)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Invalid date or time.")
		return
	}

	ap, err := h.reschedule.Execute(c.Request.Context(), ucScheduling.RescheduleAppointmentInput{
		AppointmentID: uint(id),
		RequesterID:   patientID,
		RequesterRole: role,
		NewStart:      newStart,
		Now:           nowInClinic(h.cfg.ClinicTimezone),
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.OK(c, ap)
}
