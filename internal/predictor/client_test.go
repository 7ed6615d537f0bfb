package predictor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gdmcare/portal-api/internal/httperr"
	"github.com/gdmcare/portal-api/internal/models"
)

func sampleInfo() *models.ClinicalInfo {
	return &models.ClinicalInfo{
		AgeYears:            32,
		HeightCm:            162,
		WeightKg:            74,
		BMIBaseline:         28.2,
		FastingBloodGlucose: 96,
	}
}

func TestPredictPostsPatientData(t *testing.T) {
	var gotPath string
	var gotPayload map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))

		json.NewEncoder(w).Encode(Result{
			Prediction:     "GDM",
			Confidence:     0.91,
			GDMProbability: 78.5,
			Factors:        []string{"fastingBloodGlucose", "bmiBaseline"},
			ModelVersion:   "1.2.0",
		})
	}))
	defer srv.Close()

	client := New(srv.URL)
	result, err := client.Predict(context.Background(), sampleInfo())
	require.NoError(t, err)

	require.Equal(t, "/predict", gotPath)
	require.Contains(t, gotPayload, "patientData")

	features := gotPayload["patientData"].(map[string]any)
	require.Equal(t, float64(32), features["ageYears"])
	require.Equal(t, float64(96), features["fastingBloodGlucose"])

	require.Equal(t, "GDM", result.Prediction)
	require.InDelta(t, 78.5, result.GDMProbability, 0.001)
	require.Len(t, result.Factors, 2)
}

func TestPredictServiceErrorMapsToBusinessError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := New(srv.URL)
	_, err := client.Predict(context.Background(), sampleInfo())
	require.Equal(t, "risk_service_unavailable", httperr.BusinessCode(err))
}

func TestPredictUnreachableService(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := New(srv.URL)
	_, err := client.Predict(context.Background(), sampleInfo())
	require.Equal(t, "risk_service_unavailable", httperr.BusinessCode(err))
}

func TestHealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := New(srv.URL)
	require.True(t, client.Healthy(context.Background()))

	srv.Close()
	require.False(t, client.Healthy(context.Background()))
}

func TestBadge(t *testing.T) {
	cases := []struct {
		probability float64
		want        string
	}{
		{10, BadgeLow},
		{39.9, BadgeLow},
		{40, BadgeModerate},
		{69.9, BadgeModerate},
		{70, BadgeHigh},
		{95, BadgeHigh},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, Badge(tc.probability), "probability %v", tc.probability)
	}
}
