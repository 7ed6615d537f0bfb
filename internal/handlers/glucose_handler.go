package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gdmcare/portal-api/internal/domain/glucose"
	"github.com/gdmcare/portal-api/internal/httperr"
	"github.com/gdmcare/portal-api/internal/httpresp"
	"github.com/gdmcare/portal-api/internal/middleware"
	"github.com/gdmcare/portal-api/internal/models"
	"github.com/gdmcare/portal-api/internal/notify"
)

type GlucoseHandler struct {
	db     *gorm.DB
	notify *notify.Dispatcher
}

func NewGlucoseHandler(db *gorm.DB, notifyDisp *notify.Dispatcher) *GlucoseHandler {
	return &GlucoseHandler{db: db, notify: notifyDisp}
}

type CreateReadingRequest struct {
	ReadingType string    `json:"reading_type" binding:"required"`
	ValueMgDl   float64   `json:"value_mg_dl" binding:"required,gt=0"`
	ReadingTime time.Time `json:"reading_time" binding:"required"`
	Notes       string    `json:"notes"`
}

// Create logs one reading for the authenticated patient. The status
// classification happens at write time so lists never recompute it.
func (h *GlucoseHandler) Create(c *gin.Context) {
	patientID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if !glucose.ValidType(req.ReadingType) {
		httperr.BadRequest(c, "invalid_reading_type", "Unknown reading type.")
		return
	}

	reading := models.GlucoseReading{
		PatientID:   patientID,
		ReadingType: req.ReadingType,
		ValueMgDl:   req.ValueMgDl,
		Status:      glucose.Classify(req.ReadingType, req.ValueMgDl),
		ReadingTime: req.ReadingTime,
		Notes:       req.Notes,
	}

	if err := h.db.Create(&reading).Error; err != nil {
		httperr.Internal(c, "failed_to_create_reading", "Failed to save reading.")
		return
	}

	// A high reading pings every assigned doctor.
	if reading.Status == glucose.StatusHigh && h.notify != nil {
		var assignments []models.PatientAssignment
		if err := h.db.Where("patient_id = ?", patientID).Find(&assignments).Error; err == nil {
			for _, a := range assignments {
				h.notify.Dispatch(notify.Message{
					RecipientID: a.DoctorID,
					Kind:        notify.KindGlucoseHigh,
					Text:        "A patient logged a high glucose reading.",
				})
			}
		}
	}

	c.JSON(http.StatusCreated, reading)
}

func (h *GlucoseHandler) List(c *gin.Context) {
	patientID := c.MustGet(middleware.ContextUserID).(uint)
	h.listFor(c, patientID)
}

// ListForPatient is the doctor view; it requires the assignment
// relation before exposing another patient's readings.
func (h *GlucoseHandler) ListForPatient(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextUserID).(uint)

	patientID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_patient_id", "Invalid patient id.")
		return
	}

	var count int64
	h.db.Model(&models.PatientAssignment{}).
		Where("doctor_id = ? AND patient_id = ?", doctorID, patientID).
		Count(&count)
	if count == 0 {
		httperr.Forbidden(c, "not_assigned", "You are not assigned to this patient.")
		return
	}

	h.listFor(c, uint(patientID))
}

func (h *GlucoseHandler) listFor(c *gin.Context, patientID uint) {
	var readings []models.GlucoseReading
	if err := h.db.
		Where("patient_id = ?", patientID).
		Order("reading_time DESC").
		Limit(200).
		Find(&readings).Error; err != nil {
		httperr.Internal(c, "failed_to_list_readings", "Failed to list readings.")
		return
	}

	httpresp.List(c, readings)
}
