package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	userRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/user"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type fakeUserRepo struct {
	users        map[int64]*domain.User
	availability map[int64]*domain.Availability
	err          error
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetAvailability(_ context.Context, doctorID int64) (*domain.Availability, error) {
	a, ok := f.availability[doctorID]
	if !ok {
		return nil, userRepo.ErrAvailabilityNotFound
	}
	return a, nil
}

type fakeAppointmentRepo struct {
	booked map[string][]types.TimeString
	err    error
}

func (f *fakeAppointmentRepo) GetBookedTimes(_ context.Context, _ int64, date time.Time) ([]types.TimeString, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.booked[date.Format(domain.DateFormat)], nil
}

type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (p fixedTime) Now() time.Time {
	return p.now
}

const doctorID = int64(10)

// 2025-10-13: понедельник
var monday = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

func newTestUseCase(appointments *fakeAppointmentRepo, now time.Time) (*UseCase, *fakeTxManager) {
	users := &fakeUserRepo{
		users: map[int64]*domain.User{
			doctorID: {ID: doctorID, Role: domain.RoleDoctor, FullName: "Dr. House"},
			20:       {ID: 20, Role: domain.RolePatient, FullName: "Patient"},
			30:       {ID: 30, Role: domain.RoleDoctor, FullName: "Dr. Idle"},
		},
		availability: map[int64]*domain.Availability{
			doctorID: {
				DoctorID:   doctorID,
				DaysOfWeek: []time.Weekday{time.Monday, time.Tuesday},
				StartTime:  "09:00",
				EndTime:    "11:00",
			},
		},
	}
	tx := &fakeTxManager{}

	uc := NewUseCase(users, appointments, tx, logger.NewNop())
	uc.timeProvider = fixedTime{now: now}
	return uc, tx
}

func startTimes(slots []Slot) []types.TimeString {
	result := make([]types.TimeString, len(slots))
	for i, s := range slots {
		result[i] = s.Start
	}
	return result
}

func TestExecute_ReturnsFreeSlots(t *testing.T) {
	appointments := &fakeAppointmentRepo{booked: map[string][]types.TimeString{
		"2025-10-13": {"09:30"},
	}}
	uc, tx := newTestUseCase(appointments, monday.AddDate(0, 0, -3))

	resp, err := uc.Execute(context.Background(), &Request{DoctorID: doctorID, Date: monday})
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"09:00", "10:00", "10:30"}, startTimes(resp.Slots))
	assert.Equal(t, Slot{Start: "09:00", End: "09:30"}, resp.Slots[0])
	assert.Equal(t, 1, tx.calls)
}

func TestExecute_NotWorkingDayIsEmpty(t *testing.T) {
	uc, _ := newTestUseCase(&fakeAppointmentRepo{}, monday.AddDate(0, 0, -3))

	resp, err := uc.Execute(context.Background(), &Request{DoctorID: doctorID, Date: monday.AddDate(0, 0, 2)})
	require.NoError(t, err)

	assert.NotNil(t, resp.Slots)
	assert.Empty(t, resp.Slots)
}

func TestExecute_NoAvailabilityIsEmpty(t *testing.T) {
	uc, _ := newTestUseCase(&fakeAppointmentRepo{}, monday.AddDate(0, 0, -3))

	resp, err := uc.Execute(context.Background(), &Request{DoctorID: 30, Date: monday})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_BrokenAvailabilityIsEmpty(t *testing.T) {
	uc, tx := newTestUseCase(&fakeAppointmentRepo{err: errors.New("must not be called")}, monday.AddDate(0, 0, -3))
	uc.userRepo.(*fakeUserRepo).availability[30] = &domain.Availability{
		DoctorID:   30,
		DaysOfWeek: []time.Weekday{time.Monday},
		StartTime:  "17:00",
		EndTime:    "09:00",
	}

	resp, err := uc.Execute(context.Background(), &Request{DoctorID: 30, Date: monday})
	require.NoError(t, err)

	assert.NotNil(t, resp.Slots)
	assert.Empty(t, resp.Slots)
	assert.Equal(t, 1, tx.calls)
}

func TestExecute_TodayDropsStartedSlots(t *testing.T) {
	uc, _ := newTestUseCase(&fakeAppointmentRepo{}, monday.Add(9*time.Hour+40*time.Minute))

	resp, err := uc.Execute(context.Background(), &Request{DoctorID: doctorID, Date: monday})
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"10:00", "10:30"}, startTimes(resp.Slots))
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		now     time.Time
		repoErr error
		wantErr error
	}{
		{
			name:    "невалидный id",
			req:     &Request{DoctorID: 0, Date: monday},
			now:     monday,
			wantErr: ErrInvalidInput,
		},
		{
			name:    "нет даты",
			req:     &Request{DoctorID: doctorID},
			now:     monday,
			wantErr: ErrInvalidInput,
		},
		{
			name:    "дата в прошлом",
			req:     &Request{DoctorID: doctorID, Date: monday},
			now:     monday.AddDate(0, 0, 1),
			wantErr: ErrDateInPast,
		},
		{
			name:    "врач не найден",
			req:     &Request{DoctorID: 404, Date: monday},
			now:     monday,
			wantErr: ErrDoctorNotFound,
		},
		{
			name:    "пользователь не врач",
			req:     &Request{DoctorID: 20, Date: monday},
			now:     monday,
			wantErr: ErrDoctorNotFound,
		},
		{
			name:    "ошибка хранилища",
			req:     &Request{DoctorID: doctorID, Date: monday},
			now:     monday,
			repoErr: errors.New("connection refused"),
			wantErr: ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := newTestUseCase(&fakeAppointmentRepo{err: tt.repoErr}, tt.now)

			_, err := uc.Execute(context.Background(), tt.req)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}
