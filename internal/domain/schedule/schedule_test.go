package schedule

import (
	"errors"
	"testing"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"09:00", 540, false},
		{"17:30:45", 1050, false},
		{" 00:00 ", 0, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"9", 0, true},
		{"12:60", 0, true},
		{"aa:bb", 0, true},
		{"10:00:99", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClockTime(tt.in)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidClockTime))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Minutes())
		})
	}
}

func TestClockTime_String(t *testing.T) {
	assert.Equal(t, "09:05", MustClockTime("9:05").String())
	assert.Equal(t, 9, MustClockTime("09:05").Hour())
	assert.Equal(t, 5, MustClockTime("09:05").Minute())
}

func TestWorkSchedule_Overnight(t *testing.T) {
	day := WorkSchedule{StartTime: MustClockTime("09:00"), EndTime: MustClockTime("17:00")}
	night := WorkSchedule{StartTime: MustClockTime("22:00"), EndTime: MustClockTime("06:00")}

	assert.False(t, day.CrossesMidnight())
	assert.Equal(t, 1020, day.ScheduledEndMinutes())
	assert.True(t, night.CrossesMidnight())
	assert.Equal(t, 1800, night.ScheduledEndMinutes())
}

func TestWorkSchedule_GraceAndBreak(t *testing.T) {
	bs, be := MustClockTime("12:00"), MustClockTime("13:00")
	ws := WorkSchedule{GracePeriodMinutes: -5, BreakStart: &bs, BreakEnd: &be}

	assert.Equal(t, 0, ws.Grace())
	assert.Equal(t, 60, ws.BreakMinutes())
	assert.Equal(t, 0, WorkSchedule{}.BreakMinutes())
}

func TestCreateWorkScheduleRequest_Validate(t *testing.T) {
	grace := 300
	brk := "12:00"
	req := CreateWorkScheduleRequest{
		Name:               " ",
		StartTime:          "9am",
		EndTime:            "17:00",
		BreakStart:         &brk,
		GracePeriodMinutes: &grace,
	}

	err := req.Validate()

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "start_time")
	assert.Contains(t, fields, "break_end")
	assert.Contains(t, fields, "grace_period_minutes")
	assert.NotContains(t, fields, "end_time")
}

func TestCreateWorkScheduleRequest_ToEntity(t *testing.T) {
	grace := 10
	bs, be := "23:30", "00:30"
	req := CreateWorkScheduleRequest{
		Name:               "Night",
		StartTime:          "22:00",
		EndTime:            "06:00",
		BreakStart:         &bs,
		BreakEnd:           &be,
		GracePeriodMinutes: &grace,
	}
	require.NoError(t, req.Validate())

	ws, err := req.ToEntity("company-1")
	require.NoError(t, err)
	assert.Equal(t, "company-1", ws.CompanyID)
	assert.Equal(t, 10, ws.Grace())
	assert.Equal(t, 60, ws.BreakMinutes())

	outside := "07:00"
	req.BreakEnd = &outside
	_, err = req.ToEntity("company-1")
	assert.ErrorIs(t, err, ErrBreakOutsideShift)
}
