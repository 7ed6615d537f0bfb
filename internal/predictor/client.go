package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gdmcare/portal-api/internal/httperr"
	"github.com/gdmcare/portal-api/internal/models"
)

// Risk badges derived from the service's GDM probability.
const (
	BadgeLow      = "low"
	BadgeModerate = "moderate"
	BadgeHigh     = "high"
)

// Client talks to the external GDM risk-prediction service. The model
// itself is opaque; only the request/response contract is known here.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type Result struct {
	Prediction     string   `json:"prediction"`
	Confidence     float64  `json:"confidence"`
	GDMProbability float64  `json:"gdm_probability"`
	Factors        []string `json:"factors"`
	ModelVersion   string   `json:"model_version"`
}

// featuresFrom maps the clinical sheet to the service's field names.
func featuresFrom(info *models.ClinicalInfo) map[string]any {
	return map[string]any{
		"ageYears":                  info.AgeYears,
		"height":                    info.HeightCm,
		"weightKg":                  info.WeightKg,
		"bmiBaseline":               info.BMIBaseline,
		"weightGainDuringPregnancy": info.WeightGainKg,
		"bpSystolic":                info.BPSystolic,
		"bpDiastolic":               info.BPDiastolic,
		"pulseHeartRate":            info.PulseHeartRate,
		"fastingBloodGlucose":       info.FastingBloodGlucose,
		"oneHourGlucose":            info.OneHourGlucose,
		"twoHourGlucose":            info.TwoHourGlucose,
		"hypertensiveDisorders":     info.HypertensiveDisorders,
		"typeOfTreatment":           info.TypeOfTreatment,
		"nationality":               info.Nationality,
	}
}

// Predict posts the patient's clinical sheet and returns the service's
// verdict. Unreachable or misbehaving service maps to a business error
// so callers can degrade instead of failing the whole request chain.
func (c *Client) Predict(ctx context.Context, info *models.ClinicalInfo) (*Result, error) {
	payload := map[string]any{
		"patientData": featuresFrom(info),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/predict",
		bytes.NewReader(body),
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, httperr.ErrBusiness("risk_service_unavailable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, httperr.ErrBusiness("risk_service_unavailable")
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode prediction: %w", err)
	}

	return &result, nil
}

// Healthy reports whether the service answers its health endpoint.
func (c *Client) Healthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}

// Badge collapses the probability into the portal's three-level badge.
func Badge(gdmProbability float64) string {
	switch {
	case gdmProbability >= 70:
		return BadgeHigh
	case gdmProbability >= 40:
		return BadgeModerate
	default:
		return BadgeLow
	}
}
