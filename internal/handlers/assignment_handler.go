package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gdmcare/portal-api/internal/httperr"
	"github.com/gdmcare/portal-api/internal/httpresp"
	"github.com/gdmcare/portal-api/internal/middleware"
	"github.com/gdmcare/portal-api/internal/models"
)

// AssignmentHandler manages the doctor-patient authorization relation.
type AssignmentHandler struct {
	db *gorm.DB
}

func NewAssignmentHandler(db *gorm.DB) *AssignmentHandler {
	return &AssignmentHandler{db: db}
}

type AssignPatientRequest struct {
	PatientID uint `json:"patient_id" binding:"required"`
}

func (h *AssignmentHandler) ListPatients(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextUserID).(uint)

	var patients []models.User
	if err := h.db.
		Joins("JOIN patient_assignments ON patient_assignments.patient_id = users.id").
		Where("patient_assignments.doctor_id = ?", doctorID).
		Order("users.name ASC").
		Find(&patients).Error; err != nil {
		httperr.Internal(c, "failed_to_list_patients", "Failed to list patients.")
		return
	}

	httpresp.List(c, patients)
}

func (h *AssignmentHandler) Assign(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextUserID).(uint)

	var req AssignPatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	var patient models.User
	if err := h.db.
		Where("id = ? AND role = ?", req.PatientID, models.RolePatient).
		First(&patient).Error; err != nil {
		httperr.NotFound(c, "patient_not_found", "Patient not found.")
		return
	}

	var count int64
	h.db.Model(&models.PatientAssignment{}).
		Where("doctor_id = ? AND patient_id = ?", doctorID, req.PatientID).
		Count(&count)
	if count > 0 {
		httperr.Conflict(c, "already_assigned", "Patient is already assigned to you.")
		return
	}

	assignment := models.PatientAssignment{
		DoctorID:  doctorID,
		PatientID: req.PatientID,
	}
	if err := h.db.Create(&assignment).Error; err != nil {
		httperr.Internal(c, "failed_to_assign_patient", "Failed to assign patient.")
		return
	}

	c.JSON(http.StatusCreated, assignment)
}

func (h *AssignmentHandler) Unassign(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextUserID).(uint)

	patientID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_patient_id", "Invalid patient id.")
		return
	}

	res := h.db.
		Where("doctor_id = ? AND patient_id = ?", doctorID, patientID).
		Delete(&models.PatientAssignment{})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_unassign_patient", "Failed to unassign patient.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "assignment_not_found", "Assignment not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
