package get_patient_appointments

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/requests"
	"github.com/m04kA/SMC-AppointmentService/internal/service/requests/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type fakeService struct {
	got  *models.GetPatientRequestsRequest
	resp *models.RequestListResponse
	err  error
}

func (f *fakeService) GetPatientRequests(_ context.Context, req *models.GetPatientRequestsRequest) (*models.RequestListResponse, error) {
	f.got = req
	return f.resp, f.err
}

func get(svc RequestService, target string, userID int64) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if userID != 0 {
		req = req.WithContext(middleware.WithUser(req.Context(), userID, domain.RolePatient))
	}

	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandle_PassesFilters(t *testing.T) {
	created := time.Date(2030, 1, 2, 8, 0, 0, 0, time.UTC)
	svc := &fakeService{resp: &models.RequestListResponse{Requests: []models.RequestResponse{{
		ID: 1, PatientID: 8, DoctorID: 2, Date: "2030-01-10", Time: "09:30",
		Reason: "осмотр", Status: "pending", CreatedAt: created, UpdatedAt: created,
	}}}}

	rec := get(svc, "/appointments?time=upcoming&status=pending&doctorId=2", 8)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(8), svc.got.PatientID)
	require.NotNil(t, svc.got.Time)
	assert.Equal(t, "upcoming", *svc.got.Time)
	require.NotNil(t, svc.got.Status)
	assert.Equal(t, "pending", *svc.got.Status)
	require.NotNil(t, svc.got.DoctorID)
	assert.Equal(t, int64(2), *svc.got.DoctorID)

	assert.JSONEq(t, `[{
		"id": 1, "patientId": 8, "doctorId": 2, "date": "2030-01-10", "time": "09:30",
		"reason": "осмотр", "status": "pending",
		"createdAt": "2030-01-02T08:00:00Z", "updatedAt": "2030-01-02T08:00:00Z"
	}]`, rec.Body.String())
}

func TestHandle_NoFilters(t *testing.T) {
	svc := &fakeService{resp: &models.RequestListResponse{Requests: []models.RequestResponse{}}}

	rec := get(svc, "/appointments", 8)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.got.Time)
	assert.Nil(t, svc.got.Status)
	assert.Nil(t, svc.got.DoctorID)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		userID int64
		err    error
		want   int
	}{
		{name: "без пользователя", target: "/appointments", want: http.StatusUnauthorized},
		{name: "кривой doctorId", target: "/appointments?doctorId=abc", userID: 8, want: http.StatusBadRequest},
		{name: "невалидный фильтр", target: "/appointments?time=tomorrow", userID: 8, err: requests.ErrInvalidInput, want: http.StatusBadRequest},
		{name: "сбой", target: "/appointments", userID: 8, err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(&fakeService{err: tt.err}, tt.target, tt.userID)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
