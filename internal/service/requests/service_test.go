package requests

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	requestRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/request"
	"github.com/m04kA/SMC-AppointmentService/internal/service/requests/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type fakeRequestRepo struct {
	requests   map[int64]*domain.AppointmentRequest
	lastFilter domain.RequestsFilter
	updateErr  error
	listErr    error
}

func (f *fakeRequestRepo) GetByID(_ context.Context, id int64) (*domain.AppointmentRequest, error) {
	r, ok := f.requests[id]
	if !ok {
		return nil, requestRepo.ErrRequestNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakeRequestRepo) List(_ context.Context, filter domain.RequestsFilter) ([]*domain.AppointmentRequest, error) {
	f.lastFilter = filter
	if f.listErr != nil {
		return nil, f.listErr
	}
	result := make([]*domain.AppointmentRequest, 0)
	for _, r := range f.requests {
		result = append(result, r)
	}
	return result, nil
}

func (f *fakeRequestRepo) UpdateStatus(_ context.Context, id int64, from, to domain.RequestStatus) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	r := f.requests[id]
	if r.Status != from {
		return requestRepo.ErrStatusChanged
	}
	r.Status = to
	return nil
}

type fakeNotifier struct {
	recipients []int64
	events     []domain.Event
}

func (f *fakeNotifier) Notify(_ context.Context, recipientID int64, event domain.Event) {
	f.recipients = append(f.recipients, recipientID)
	f.events = append(f.events, event)
}

type fixedTime struct{ now time.Time }

func (p fixedTime) Now() time.Time { return p.now }

var now = time.Date(2025, 10, 13, 12, 0, 0, 0, time.UTC)

func newService() (*Service, *fakeRequestRepo, *fakeNotifier) {
	repo := &fakeRequestRepo{requests: map[int64]*domain.AppointmentRequest{
		1: {ID: 1, PatientID: 100, DoctorID: 10, Date: now, Time: "10:00", Status: domain.RequestPending},
		2: {ID: 2, PatientID: 100, DoctorID: 10, Date: now, Time: "11:00", Status: domain.RequestAccepted},
	}}
	notifier := &fakeNotifier{}
	svc := NewService(repo, notifier, logger.NewNop())
	svc.timeProvider = fixedTime{now: now}
	return svc, repo, notifier
}

func TestReject(t *testing.T) {
	svc, repo, notifier := newService()

	require.NoError(t, svc.Reject(context.Background(), 1, 10))

	assert.Equal(t, domain.RequestRejected, repo.requests[1].Status)
	require.Len(t, notifier.events, 1)
	assert.Equal(t, int64(100), notifier.recipients[0])
	assert.Equal(t, domain.EventRequestRejected, notifier.events[0].Type)
	assert.Equal(t, domain.RequestRejected, notifier.events[0].Status)
}

func TestReject_Errors(t *testing.T) {
	tests := []struct {
		name      string
		requestID int64
		doctorID  int64
		updateErr error
		wantErr   error
	}{
		{name: "невалидный id", requestID: 0, doctorID: 10, wantErr: ErrInvalidInput},
		{name: "не найдена", requestID: 404, doctorID: 10, wantErr: ErrRequestNotFound},
		{name: "чужая заявка", requestID: 1, doctorID: 11, wantErr: ErrNotOwner},
		{name: "уже принята", requestID: 2, doctorID: 10, wantErr: ErrAlreadyResolved},
		{name: "гонка с подтверждением", requestID: 1, doctorID: 10, updateErr: requestRepo.ErrStatusChanged, wantErr: ErrAlreadyResolved},
		{name: "ошибка хранилища", requestID: 1, doctorID: 10, updateErr: errors.New("timeout"), wantErr: ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, notifier := newService()
			repo.updateErr = tt.updateErr

			err := svc.Reject(context.Background(), tt.requestID, tt.doctorID)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, notifier.events)
		})
	}
}

func TestGetPatientRequests_BuildsFilter(t *testing.T) {
	svc, repo, _ := newService()
	period, status, doctorID := "upcoming", "pending", int64(10)

	resp, err := svc.GetPatientRequests(context.Background(), &models.GetPatientRequestsRequest{
		PatientID: 100,
		Time:      &period,
		Status:    &status,
		DoctorID:  &doctorID,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Requests, 2)

	filter := repo.lastFilter
	require.NotNil(t, filter.PatientID)
	assert.Equal(t, int64(100), *filter.PatientID)
	require.NotNil(t, filter.DoctorID)
	assert.Equal(t, doctorID, *filter.DoctorID)
	require.NotNil(t, filter.Status)
	assert.Equal(t, domain.RequestPending, *filter.Status)
	require.NotNil(t, filter.Period)
	assert.Equal(t, domain.PeriodUpcoming, *filter.Period)
	assert.Equal(t, now, filter.Now)
}

func TestGetPatientRequests_InvalidFilters(t *testing.T) {
	svc, _, _ := newService()
	badStatus, badPeriod, badDoctor := "cancelled", "tomorrow", int64(-1)

	_, err := svc.GetPatientRequests(context.Background(), &models.GetPatientRequestsRequest{PatientID: 100, Status: &badStatus})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.GetPatientRequests(context.Background(), &models.GetPatientRequestsRequest{PatientID: 100, Time: &badPeriod})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.GetPatientRequests(context.Background(), &models.GetPatientRequestsRequest{PatientID: 100, DoctorID: &badDoctor})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetDoctorRequests(t *testing.T) {
	svc, repo, _ := newService()
	status := "pending"
	date := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

	resp, err := svc.GetDoctorRequests(context.Background(), &models.GetDoctorRequestsRequest{
		DoctorID: 10,
		Status:   &status,
		Date:     &date,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Requests, 2)

	require.NotNil(t, repo.lastFilter.DoctorID)
	assert.Equal(t, int64(10), *repo.lastFilter.DoctorID)
	assert.Nil(t, repo.lastFilter.PatientID)
	assert.Equal(t, &date, repo.lastFilter.Date)
}

func TestGetDoctorRequests_RepositoryError(t *testing.T) {
	svc, repo, _ := newService()
	repo.listErr = errors.New("db down")

	_, err := svc.GetDoctorRequests(context.Background(), &models.GetDoctorRequestsRequest{DoctorID: 10})
	require.ErrorIs(t, err, ErrInternal)
}

func TestFromDomainRequest(t *testing.T) {
	r := &domain.AppointmentRequest{
		ID:        7,
		PatientID: 1,
		DoctorID:  2,
		Date:      time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC),
		Time:      "09:30",
		Reason:    "консультация",
		Status:    domain.RequestPending,
	}

	resp := models.FromDomainRequest(r)

	assert.Equal(t, "2025-10-13", resp.Date)
	assert.Equal(t, "09:30", resp.Time)
	assert.Equal(t, "pending", resp.Status)
}
