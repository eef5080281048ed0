package attendance

import (
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// EVENT INGESTION DTOs
// ========================================

const MaxIngestBatch = 5000

// RawEvent is a producer event as received on the wire. Key fields vary by producer.
type RawEvent struct {
	ID          *string     `json:"id,omitempty"`
	EmployeeID  *string     `json:"employee_id,omitempty"`
	User        *RawUserRef `json:"user,omitempty"`
	ExternalRef string      `json:"external_ref,omitempty"`
	Date        string      `json:"date,omitempty"`      // YYYY-MM-DD
	ClockIn     string      `json:"clock_in,omitempty"`  // RFC3339 or "YYYY-MM-DD HH:MM:SS" local
	ClockOut    string      `json:"clock_out,omitempty"` // RFC3339 or "YYYY-MM-DD HH:MM:SS" local
	Status      string      `json:"status,omitempty"`
}

type RawUserRef struct {
	ID         string `json:"id,omitempty"`
	EmployeeID string `json:"employee_id,omitempty"`
}

type IngestEventsRequest struct {
	Events []RawEvent `json:"events"`
}

func (r *IngestEventsRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Events) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "events",
			Message: ErrEmptyBatch.Error(),
		})
	}
	if len(r.Events) > MaxIngestBatch {
		errs = append(errs, validator.ValidationError{
			Field:   "events",
			Message: fmt.Sprintf("%s: max %d", ErrBatchTooLarge.Error(), MaxIngestBatch),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToEntity converts a raw event. Malformed timestamps become nil and are counted in malformed.
func (e RawEvent) ToEntity(companyID string, loc *time.Location) (event AttendanceEvent, malformed int) {
	event = AttendanceEvent{
		CompanyID:      companyID,
		ExternalRef:    strings.TrimSpace(e.ExternalRef),
		RawStatusLabel: e.Status,
		Label:          ParseStatusLabel(e.Status),
	}
	if e.ID != nil {
		event.ID = strings.TrimSpace(*e.ID)
	}
	if e.EmployeeID != nil && strings.TrimSpace(*e.EmployeeID) != "" {
		id := strings.TrimSpace(*e.EmployeeID)
		event.EmployeeID = &id
	}
	if e.User != nil {
		event.User = &UserRef{
			ID:         strings.TrimSpace(e.User.ID),
			EmployeeID: strings.TrimSpace(e.User.EmployeeID),
		}
	}

	event.ClockInAt = ParseTimestamp(e.ClockIn, loc)
	if event.ClockInAt == nil && strings.TrimSpace(e.ClockIn) != "" {
		malformed++
	}
	event.ClockOutAt = ParseTimestamp(e.ClockOut, loc)
	if event.ClockOutAt == nil && strings.TrimSpace(e.ClockOut) != "" {
		malformed++
	}
	event.WorkDate = ParseWorkDate(e.Date, loc)
	if event.WorkDate == nil && strings.TrimSpace(e.Date) != "" {
		malformed++
	}

	return event, malformed
}

type IngestEventsResponse struct {
	Received            int   `json:"received"`
	Stored              int64 `json:"stored"`
	MalformedTimestamps int   `json:"malformed_timestamps"`
}

type EventFilter struct {
	From string `json:"from"` // YYYY-MM-DD or RFC3339
	To   string `json:"to"`   // YYYY-MM-DD or RFC3339, exclusive
}

// Range validates the filter and resolves it to instants. Plain dates start at midnight in loc.
func (f *EventFilter) Range(loc *time.Location) (time.Time, time.Time, error) {
	var errs validator.ValidationErrors

	from, ok := parseBound(f.From, loc)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "from",
			Message: "from must be YYYY-MM-DD or an RFC3339 timestamp",
		})
	}
	to, ok := parseBound(f.To, loc)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must be YYYY-MM-DD or an RFC3339 timestamp",
		})
	}
	if len(errs) > 0 {
		return time.Time{}, time.Time{}, errs
	}

	if !to.After(from) {
		return time.Time{}, time.Time{}, validator.ValidationErrors{{
			Field:   "to",
			Message: ErrInvalidTimeRange.Error(),
		}}
	}
	return from, to, nil
}

func parseBound(raw string, loc *time.Location) (time.Time, bool) {
	if d, ok := validator.IsValidDate(raw); ok {
		return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc), true
	}
	return validator.IsValidDateTime(raw)
}

type EventResponse struct {
	ID             string  `json:"id"`
	EmployeeID     *string `json:"employee_id,omitempty"`
	UserID         *string `json:"user_id,omitempty"`
	UserEmployeeID *string `json:"user_employee_id,omitempty"`
	ExternalRef    *string `json:"external_ref,omitempty"`
	Date           *string `json:"date,omitempty"`
	ClockIn        *string `json:"clock_in,omitempty"`
	ClockOut       *string `json:"clock_out,omitempty"`
	RawStatus      string  `json:"raw_status"`
	Label          string  `json:"label"`
	CreatedAt      string  `json:"created_at"`
}

func NewEventResponse(e AttendanceEvent) EventResponse {
	resp := EventResponse{
		ID:         e.ID,
		EmployeeID: e.EmployeeID,
		RawStatus:  e.RawStatusLabel,
		Label:      string(e.Label),
		CreatedAt:  e.CreatedAt.Format(time.RFC3339),
		ClockIn:    timePtrToString(e.ClockInAt),
		ClockOut:   timePtrToString(e.ClockOutAt),
	}
	if e.User != nil {
		if e.User.ID != "" {
			resp.UserID = &e.User.ID
		}
		if e.User.EmployeeID != "" {
			resp.UserEmployeeID = &e.User.EmployeeID
		}
	}
	if e.ExternalRef != "" {
		resp.ExternalRef = &e.ExternalRef
	}
	if e.WorkDate != nil {
		d := e.WorkDate.Format("2006-01-02")
		resp.Date = &d
	}
	return resp
}

// timePtrToString safely converts a *time.Time to an RFC3339 string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format(time.RFC3339)
	return &format
}

// ========================================
// ROLLUP DTOs
// ========================================

type PeriodStatsResponse struct {
	PresentDays       int     `json:"present_days"`
	LateDays          int     `json:"late_days"`
	AbsentDays        int     `json:"absent_days"`
	AverageDailyHours float64 `json:"average_daily_hours"`
	TotalHours        float64 `json:"total_hours"`
	OvertimeHours     float64 `json:"overtime_hours"`
}

func NewPeriodStatsResponse(s PeriodStats) PeriodStatsResponse {
	return PeriodStatsResponse{
		PresentDays:       s.PresentDays,
		LateDays:          s.LateDays,
		AbsentDays:        s.AbsentDays,
		AverageDailyHours: RoundHours(s.AverageDailyHours),
		TotalHours:        RoundHours(s.TotalHours),
		OvertimeHours:     RoundHours(s.OvertimeHours),
	}
}

// RoundHours rounds to two decimals, half away from zero.
func RoundHours(h float64) float64 {
	return decimal.NewFromFloat(h).Round(2).InexactFloat64()
}

// SecondsToHours converts a worked duration to rounded hours.
func SecondsToHours(seconds int64) float64 {
	return decimal.NewFromInt(seconds).Div(decimal.NewFromInt(3600)).Round(2).InexactFloat64()
}
