package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gdmcare/portal-api/internal/httperr"
	"github.com/gdmcare/portal-api/internal/middleware"
	"github.com/gdmcare/portal-api/internal/models"
	"github.com/gdmcare/portal-api/internal/predictor"
)

// ClinicalHandler is the doctor's view of a patient's clinical feature
// sheet and its risk prediction.
type ClinicalHandler struct {
	db        *gorm.DB
	predictor *predictor.Client
	log       *zap.Logger
}

func NewClinicalHandler(db *gorm.DB, pred *predictor.Client, log *zap.Logger) *ClinicalHandler {
	return &ClinicalHandler{db: db, predictor: pred, log: log}
}

type UpsertClinicalRequest struct {
	AgeYears              int     `json:"age_years" binding:"required,min=12,max=60"`
	HeightCm              float64 `json:"height_cm" binding:"required,gt=0"`
	WeightKg              float64 `json:"weight_kg" binding:"required,gt=0"`
	BMIBaseline           float64 `json:"bmi_baseline" binding:"required,gt=0"`
	WeightGainKg          float64 `json:"weight_gain_kg"`
	BPSystolic            int     `json:"bp_systolic" binding:"required,gt=0"`
	BPDiastolic           int     `json:"bp_diastolic" binding:"required,gt=0"`
	PulseHeartRate        int     `json:"pulse_heart_rate" binding:"required,gt=0"`
	FastingBloodGlucose   float64 `json:"fasting_blood_glucose"`
	OneHourGlucose        float64 `json:"one_hour_glucose"`
	TwoHourGlucose        float64 `json:"two_hour_glucose"`
	HypertensiveDisorders string  `json:"hypertensive_disorders"`
	TypeOfTreatment       string  `json:"type_of_treatment"`
	Nationality           string  `json:"nationality"`
}

func (h *ClinicalHandler) assigned(doctorID, patientID uint) bool {
	var count int64
	h.db.Model(&models.PatientAssignment{}).
		Where("doctor_id = ? AND patient_id = ?", doctorID, patientID).
		Count(&count)
	return count > 0
}

func (h *ClinicalHandler) Get(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextUserID).(uint)

	patientID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_patient_id", "Invalid patient id.")
		return
	}

	if !h.assigned(doctorID, uint(patientID)) {
		httperr.Forbidden(c, "not_assigned", "You are not assigned to this patient.")
		return
	}

	var info models.ClinicalInfo
	if err := h.db.Where("patient_id = ?", patientID).First(&info).Error; err != nil {
		httperr.NotFound(c, "clinical_info_not_found", "No clinical info recorded yet.")
		return
	}

	c.JSON(http.StatusOK, info)
}

// Upsert keeps one current sheet per patient.
func (h *ClinicalHandler) Upsert(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextUserID).(uint)

	patientID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_patient_id", "Invalid patient id.")
		return
	}

	if !h.assigned(doctorID, uint(patientID)) {
		httperr.Forbidden(c, "not_assigned", "You are not assigned to this patient.")
		return
	}

	var req UpsertClinicalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	var info models.ClinicalInfo
	err = h.db.Where("patient_id = ?", patientID).First(&info).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		httperr.Internal(c, "failed_to_load_clinical_info", "Failed to load clinical info.")
		return
	}

	info.PatientID = uint(patientID)
	info.UpdatedByDoctorID = doctorID
	info.AgeYears = req.AgeYears
	info.HeightCm = req.HeightCm
	info.WeightKg = req.WeightKg
	info.BMIBaseline = req.BMIBaseline
	info.WeightGainKg = req.WeightGainKg
	info.BPSystolic = req.BPSystolic
	info.BPDiastolic = req.BPDiastolic
	info.PulseHeartRate = req.PulseHeartRate
	info.FastingBloodGlucose = req.FastingBloodGlucose
	info.OneHourGlucose = req.OneHourGlucose
	info.TwoHourGlucose = req.TwoHourGlucose
	info.HypertensiveDisorders = req.HypertensiveDisorders
	info.TypeOfTreatment = req.TypeOfTreatment
	info.Nationality = req.Nationality

	if err := h.db.Save(&info).Error; err != nil {
		httperr.Internal(c, "failed_to_save_clinical_info", "Failed to save clinical info.")
		return
	}

	c.JSON(http.StatusOK, info)
}

// Predict forwards the sheet to the risk service and stores the
// verdict on the sheet.
func (h *ClinicalHandler) Predict(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextUserID).(uint)

	patientID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_patient_id", "Invalid patient id.")
		return
	}

	if !h.assigned(doctorID, uint(patientID)) {
		httperr.Forbidden(c, "not_assigned", "You are not assigned to this patient.")
		return
	}

	var info models.ClinicalInfo
	if err := h.db.Where("patient_id = ?", patientID).First(&info).Error; err != nil {
		httperr.NotFound(c, "clinical_info_not_found", "Record clinical info before predicting.")
		return
	}

	result, err := h.predictor.Predict(c.Request.Context(), &info)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	now := time.Now()
	info.RiskPrediction = result.Prediction
	info.RiskProbability = result.GDMProbability
	info.RiskCheckedAt = &now

	if err := h.db.Save(&info).Error; err != nil {
		httperr.Internal(c, "failed_to_save_prediction", "Failed to save prediction.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"prediction":      result.Prediction,
		"confidence":      result.Confidence,
		"gdm_probability": result.GDMProbability,
		"factors":         result.Factors,
		"badge":           predictor.Badge(result.GDMProbability),
	})
}
