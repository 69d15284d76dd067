package get_available_slots

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	getAvailableSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type fakeUseCase struct {
	got  *getAvailableSlots.Request
	resp *getAvailableSlots.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	f.got = req
	return f.resp, f.err
}

func serve(h *Handler, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/doctors/{doctorId}/slots", h.Handle).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_ReturnsSlots(t *testing.T) {
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{
		DoctorID: 4,
		Date:     time.Date(2030, 3, 4, 0, 0, 0, 0, time.UTC),
		Slots: []getAvailableSlots.Slot{
			{Start: "09:00", End: "09:30"},
			{Start: "10:00", End: "10:30"},
		},
	}}

	rec := serve(NewHandler(uc, logger.NewNop()), "/doctors/4/slots?date=2030-03-04")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(4), uc.got.DoctorID)
	assert.Equal(t, time.Date(2030, 3, 4, 0, 0, 0, 0, time.UTC), uc.got.Date)

	var body []SlotResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []SlotResponse{{Start: "09:00", End: "09:30"}, {Start: "10:00", End: "10:30"}}, body)
}

func TestHandle_EmptyListIsArray(t *testing.T) {
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{DoctorID: 4}}

	rec := serve(NewHandler(uc, logger.NewNop()), "/doctors/4/slots?date=2030-03-09")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		ucErr  error
		want   int
	}{
		{name: "нечисловой ID", target: "/doctors/abc/slots?date=2030-03-04", want: http.StatusBadRequest},
		{name: "нулевой ID", target: "/doctors/0/slots?date=2030-03-04", want: http.StatusBadRequest},
		{name: "без даты", target: "/doctors/4/slots", want: http.StatusBadRequest},
		{name: "кривая дата", target: "/doctors/4/slots?date=04.03.2030", want: http.StatusBadRequest},
		{name: "несуществующая дата", target: "/doctors/4/slots?date=2030-02-30", want: http.StatusBadRequest},
		{name: "врач не найден", target: "/doctors/4/slots?date=2030-03-04", ucErr: getAvailableSlots.ErrDoctorNotFound, want: http.StatusNotFound},
		{name: "прошедшая дата", target: "/doctors/4/slots?date=2030-03-04", ucErr: getAvailableSlots.ErrDateInPast, want: http.StatusBadRequest},
		{name: "внутренняя ошибка", target: "/doctors/4/slots?date=2030-03-04", ucErr: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{err: tt.ucErr}
			rec := serve(NewHandler(uc, logger.NewNop()), tt.target)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
