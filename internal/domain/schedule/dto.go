package schedule

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type CreateWorkScheduleRequest struct {
	Name               string  `json:"name"`
	StartTime          string  `json:"start_time"` // HH:MM
	EndTime            string  `json:"end_time"`   // HH:MM
	BreakStart         *string `json:"break_start,omitempty"`
	BreakEnd           *string `json:"break_end,omitempty"`
	GracePeriodMinutes *int    `json:"grace_period_minutes,omitempty"`
}

func (r *CreateWorkScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if !validator.IsValidClock(r.StartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be in HH:MM format",
		})
	}
	if !validator.IsValidClock(r.EndTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be in HH:MM format",
		})
	}

	if (r.BreakStart == nil) != (r.BreakEnd == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "break_end",
			Message: "break_start and break_end must be provided together",
		})
	}
	if r.BreakStart != nil && !validator.IsValidClock(*r.BreakStart) {
		errs = append(errs, validator.ValidationError{
			Field:   "break_start",
			Message: "break_start must be in HH:MM format",
		})
	}
	if r.BreakEnd != nil && !validator.IsValidClock(*r.BreakEnd) {
		errs = append(errs, validator.ValidationError{
			Field:   "break_end",
			Message: "break_end must be in HH:MM format",
		})
	}

	if r.GracePeriodMinutes != nil && (*r.GracePeriodMinutes < 0 || *r.GracePeriodMinutes > 240) {
		errs = append(errs, validator.ValidationError{
			Field:   "grace_period_minutes",
			Message: "grace_period_minutes must be between 0 and 240",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ToEntity converts a validated request into a WorkSchedule.
func (r *CreateWorkScheduleRequest) ToEntity(companyID string) (WorkSchedule, error) {
	start, err := ParseClockTime(r.StartTime)
	if err != nil {
		return WorkSchedule{}, err
	}
	end, err := ParseClockTime(r.EndTime)
	if err != nil {
		return WorkSchedule{}, err
	}

	ws := WorkSchedule{
		CompanyID: companyID,
		Name:      r.Name,
		StartTime: start,
		EndTime:   end,
	}
	if r.GracePeriodMinutes != nil {
		ws.GracePeriodMinutes = *r.GracePeriodMinutes
	}

	if r.BreakStart != nil && r.BreakEnd != nil {
		bs, err := ParseClockTime(*r.BreakStart)
		if err != nil {
			return WorkSchedule{}, err
		}
		be, err := ParseClockTime(*r.BreakEnd)
		if err != nil {
			return WorkSchedule{}, err
		}
		if !withinShift(ws, bs) || !withinShift(ws, be) {
			return WorkSchedule{}, ErrBreakOutsideShift
		}
		ws.BreakStart = &bs
		ws.BreakEnd = &be
	}

	return ws, nil
}

func withinShift(ws WorkSchedule, c ClockTime) bool {
	m := c.Minutes()
	if ws.CrossesMidnight() && m < ws.StartTime.Minutes() {
		m += MinutesPerDay
	}
	return m >= ws.StartTime.Minutes() && m <= ws.ScheduledEndMinutes()
}

type WorkScheduleResponse struct {
	ID                 string  `json:"id"`
	CompanyID          string  `json:"company_id"`
	Name               string  `json:"name"`
	StartTime          string  `json:"start_time"`
	EndTime            string  `json:"end_time"`
	BreakStart         *string `json:"break_start,omitempty"`
	BreakEnd           *string `json:"break_end,omitempty"`
	GracePeriodMinutes int     `json:"grace_period_minutes"`
	CrossesMidnight    bool    `json:"crosses_midnight"`
	CreatedAt          string  `json:"created_at"`
	UpdatedAt          string  `json:"updated_at"`
}

func NewWorkScheduleResponse(ws WorkSchedule) WorkScheduleResponse {
	resp := WorkScheduleResponse{
		ID:                 ws.ID,
		CompanyID:          ws.CompanyID,
		Name:               ws.Name,
		StartTime:          ws.StartTime.String(),
		EndTime:            ws.EndTime.String(),
		GracePeriodMinutes: ws.GracePeriodMinutes,
		CrossesMidnight:    ws.CrossesMidnight(),
		CreatedAt:          ws.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          ws.UpdatedAt.Format(time.RFC3339),
	}
	if ws.BreakStart != nil {
		s := ws.BreakStart.String()
		resp.BreakStart = &s
	}
	if ws.BreakEnd != nil {
		s := ws.BreakEnd.String()
		resp.BreakEnd = &s
	}
	return resp
}
