package request

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

func TestPeriodCondition(t *testing.T) {
	now := time.Date(2025, 10, 13, 14, 7, 0, 0, time.UTC)
	today := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		period  domain.Period
		wantSQL string
	}{
		{
			name:    "upcoming",
			period:  domain.PeriodUpcoming,
			wantSQL: "(appointment_date > ? OR (appointment_date = ? AND appointment_time >= ?))",
		},
		{
			name:    "past",
			period:  domain.PeriodPast,
			wantSQL: "(appointment_date < ? OR (appointment_date = ? AND appointment_time < ?))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cond, err := periodCondition(tt.period, now)
			require.NoError(t, err)

			sql, args, err := cond.ToSql()
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, sql)

			// squirrel приводит TimeString через driver.Valuer
			clock, err := types.TimeString("14:07").Value()
			require.NoError(t, err)
			assert.Equal(t, []interface{}{today, today, clock}, args)
			assert.Equal(t, "14:07", args[2])
		})
	}
}

func TestPeriodCondition_Unknown(t *testing.T) {
	_, err := periodCondition(domain.Period("someday"), time.Now())
	require.Error(t, err)
}
