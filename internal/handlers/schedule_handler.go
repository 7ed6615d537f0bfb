package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gdmcare/portal-api/internal/config"
	"github.com/gdmcare/portal-api/internal/httperr"
	"github.com/gdmcare/portal-api/internal/middleware"
	ucScheduling "github.com/gdmcare/portal-api/internal/usecase/scheduling"
)

// ScheduleHandler covers the doctor's availability management: the
// weekly rules, the date blocks and the combined week view.
type ScheduleHandler struct {
	cfg *config.Config
	log *zap.Logger

	getSchedule  *ucScheduling.GetDoctorSchedule
	setRecurring *ucScheduling.SetRecurringAvailability
	blockDate    *ucScheduling.BlockDate
	removeBlock  *ucScheduling.RemoveBlock
}

func NewScheduleHandler(
	cfg *config.Config,
	log *zap.Logger,
	getSchedule *ucScheduling.GetDoctorSchedule,
	setRecurring *ucScheduling.SetRecurringAvailability,
	blockDate *ucScheduling.BlockDate,
	removeBlock *ucScheduling.RemoveBlock,
) *ScheduleHandler {
	return &ScheduleHandler{
		cfg:          cfg,
		log:          log,
		getSchedule:  getSchedule,
		setRecurring: setRecurring,
		blockDate:    blockDate,
		removeBlock:  removeBlock,
	}
}

type SetRecurringRequest struct {
	Weekday     int    `json:"weekday" binding:"min=0,max=6"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	IsAvailable bool   `json:"is_available"`
}

type BlockDateRequest struct {
	Date  string `json:"date" binding:"required"`
	Notes string `json:"notes"`
}

// ======================================================
// WEEK VIEW
// ======================================================

func (h *ScheduleHandler) Get(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextUserID).(uint)

	weekStartStr := c.Query("week_start")
	if weekStartStr == "" {
		httperr.BadRequest(c, "missing_week_start", "week_start date is required.")
		return
	}

	weekStart, err := parseDateInClinic(h.cfg.ClinicTimezone, weekStartStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid week_start date.")
		return
	}

	out, err := h.getSchedule.Execute(c.Request.Context(), doctorID, weekStart)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, out)
}

// ======================================================
// RECURRING RULES
// ======================================================

func (h *ScheduleHandler) SetRecurring(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextUserID).(uint)

	var req SetRecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	rule, err := h.setRecurring.Execute(c.Request.Context(), ucScheduling.SetRecurringAvailabilityInput{
		DoctorID:    doctorID,
		Weekday:     req.Weekday,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		IsAvailable: req.IsAvailable,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, rule)
}

// ======================================================
// DATE BLOCKS
// ======================================================

func (h *ScheduleHandler) BlockDate(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextUserID).(uint)

	var req BlockDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	date, err := parseDateInClinic(h.cfg.ClinicTimezone, req.Date)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	override, err := h.blockDate.Execute(c.Request.Context(), ucScheduling.BlockDateInput{
		DoctorID: doctorID,
		Date:     date,
		Notes:    req.Notes,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, override)
}

func (h *ScheduleHandler) RemoveBlock(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_block_id", "Invalid block id.")
		return
	}

	if err := h.removeBlock.Execute(c.Request.Context(), doctorID, uint(id)); err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
