package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gdmcare/portal-api/internal/httperr"
)

// businessHTTP maps business-error codes to a status and an actionable
// message. Every rejection a caller can act on goes through here;
// anything unmapped is an unknown failure.
var businessHTTP = map[string]struct {
	status  int
	message string
}{
	"not_assigned":             {http.StatusForbidden, "You are not assigned to this doctor."},
	"not_owner":                {http.StatusForbidden, "You cannot act on this record."},
	"slot_taken":               {http.StatusConflict, "This time slot is already booked."},
	"too_soon":                 {http.StatusBadRequest, "Appointments must be booked at least 2 hours in advance."},
	"beyond_horizon":           {http.StatusBadRequest, "Appointments cannot be booked more than 3 months ahead."},
	"active_limit_reached":     {http.StatusBadRequest, "You already have the maximum of 3 active appointments."},
	"cancel_too_late":          {http.StatusBadRequest, "Appointments must be cancelled at least 4 hours in advance."},
	"invalid_state":            {http.StatusBadRequest, "This appointment can no longer be changed."},
	"invalid_status":           {http.StatusBadRequest, "Unsupported status."},
	"invalid_weekday":          {http.StatusBadRequest, "Weekday must be between 0 and 6."},
	"invalid_window":           {http.StatusBadRequest, "Start time must be before end time."},
	"date_already_blocked":     {http.StatusConflict, "This date is already blocked."},
	"appointment_not_found":    {http.StatusNotFound, "Appointment not found."},
	"doctor_not_found":         {http.StatusNotFound, "Doctor not found."},
	"block_not_found":          {http.StatusNotFound, "Date block not found."},
	"risk_service_unavailable": {http.StatusServiceUnavailable, "Risk prediction service is unavailable; try again later."},
}

// writeError translates a use-case error. Business errors become their
// mapped rejection; everything else is logged in full and surfaced as
// a generic failure.
func writeError(c *gin.Context, log *zap.Logger, err error) {
	if code := httperr.BusinessCode(err); code != "" {
		if m, ok := businessHTTP[code]; ok {
			httperr.Write(c, m.status, code, m.message)
			return
		}
		httperr.BadRequest(c, code, "Request rejected.")
		return
	}

	log.Error("operation failed",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	httperr.Internal(c, "operation_failed", "Operation failed.")
}
