package handlers

import (
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
// HANDLER (doctor surface)
// ======================================================

type DoctorAppointmentHandler struct {
	cfg *config.Config
	log *zap.Logger

	list         *ucScheduling.ListDoctorAppointments
	cancel       *ucScheduling.CancelAppointment
	reschedule   *ucScheduling.RescheduleAppointment
	updateStatus *ucScheduling.UpdateStatus
}

func NewDoctorAppointmentHandler(
	cfg *config.Config,
	log *zap.Logger,
	list *ucScheduling.ListDoctorAppointments,
	cancel *ucScheduling.CancelAppointment,
	reschedule *ucScheduling.RescheduleAppointment,
	updateStatus *ucScheduling.UpdateStatus,
) *DoctorAppointmentHandler {
	return &DoctorAppointmentHandler{
		cfg:          cfg,
		log:          log,
		list:         list,
		cancel:       cancel,
		reschedule:   reschedule,
		updateStatus: updateStatus,
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=completed no_show"`
	Notes  string `json:"notes"`
}

// ======================================================
// LIST (date range)
// ======================================================

func (h *DoctorAppointmentHandler) List(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextUserID).(uint)

	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		httperr.BadRequest(c, "missing_range", "from and to dates are required.")
		return
	}

	from, err := parseDateInClinic(h.cfg.ClinicTimezone, fromStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid from date.")
		return
	}
	to, err := parseDateInClinic(h.cfg.ClinicTimezone, toStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid to date.")
		return
	}

	out, err := h.list.Execute(c.Request.Context(), doctorID, from, to.AddDate(0, 0, 1))
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.List(c, out)
}

// ======================================================
// CANCEL
// ======================================================

func (h *DoctorAppointmentHandler) Cancel(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextUserID).(uint)
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
		RequesterID:   doctorID,
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

func (h *DoctorAppointmentHandler) Reschedule(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextUserID).(uint)
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
		RequesterID:   doctorID,
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

// ======================================================
// STATUS (complete / no-show)
// ======================================================

func (h *DoctorAppointmentHandler) UpdateStatus(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "Invalid appointment id.")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	ap, err := h.updateStatus.Execute(c.Request.Context(), ucScheduling.UpdateStatusInput{
		AppointmentID: uint(id),
		DoctorID:      doctorID,
		Status:        req.Status,
		Notes:         req.Notes,
		Now:           nowInClinic(h.cfg.ClinicTimezone),
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.OK(c, ap)
}
