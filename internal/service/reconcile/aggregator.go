package reconcile

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
)

// KeyExtractor derives an employee join key from an event.
type KeyExtractor func(e attendance.AttendanceEvent) (string, bool)

// DefaultKeyExtractors is the priority order for heterogeneous producers; first success wins.
var DefaultKeyExtractors = []KeyExtractor{
	ByEmployeeID,
	ByUserEmployeeID,
	ByUserID,
	ByExternalRef,
}

func ByEmployeeID(e attendance.AttendanceEvent) (string, bool) {
	if e.EmployeeID == nil {
		return "", false
	}
	return nonBlank(*e.EmployeeID)
}

func ByUserEmployeeID(e attendance.AttendanceEvent) (string, bool) {
	if e.User == nil {
		return "", false
	}
	return nonBlank(e.User.EmployeeID)
}

func ByUserID(e attendance.AttendanceEvent) (string, bool) {
	if e.User == nil {
		return "", false
	}
	return nonBlank(e.User.ID)
}

func ByExternalRef(e attendance.AttendanceEvent) (string, bool) {
	return nonBlank(e.ExternalRef)
}

func nonBlank(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != ""
}

// JoinKey evaluates extractors in order and returns the first key found.
func JoinKey(e attendance.AttendanceEvent, extractors []KeyExtractor) (string, bool) {
	for _, extract := range extractors {
		if key, ok := extract(e); ok {
			return key, true
		}
	}
	return "", false
}

// Aggregation is the result of folding events into presence pairs.
type Aggregation struct {
	Pairs map[string]attendance.PresencePair

	// MissingKey counts events that could not be attributed to anyone.
	MissingKey int
	// Empty counts events with neither clock-in nor clock-out.
	Empty int
}

// Aggregate folds events into one presence pair per join key using DefaultKeyExtractors.
func Aggregate(events []attendance.AttendanceEvent) map[string]attendance.PresencePair {
	return Fold(events, DefaultKeyExtractors).Pairs
}

// AggregateWith is Aggregate with a custom extractor priority list.
func AggregateWith(events []attendance.AttendanceEvent, extractors ...KeyExtractor) map[string]attendance.PresencePair {
	return Fold(events, extractors).Pairs
}

// Fold is a single pass min/max fold: the result does not depend on event order or duplicates.
func Fold(events []attendance.AttendanceEvent, extractors []KeyExtractor) Aggregation {
	agg := Aggregation{Pairs: make(map[string]attendance.PresencePair)}

	for _, e := range events {
		if !e.HasTimestamp() {
			agg.Empty++
			continue
		}
		key, ok := JoinKey(e, extractors)
		if !ok {
			agg.MissingKey++
			continue
		}

		pair := agg.Pairs[key]
		pair.EmployeeID = key
		agg.Pairs[key] = absorb(pair, e)
	}

	return agg
}

// absorb widens pair with the event's timestamps.
func absorb(pair attendance.PresencePair, e attendance.AttendanceEvent) attendance.PresencePair {
	pair.ClockInAt = earliest(pair.ClockInAt, e.ClockInAt)
	pair.ClockOutAt = latest(pair.ClockOutAt, e.ClockOutAt)
	return pair
}

// merge combines two pairs of the same employee.
func merge(a, b attendance.PresencePair) attendance.PresencePair {
	a.ClockInAt = earliest(a.ClockInAt, b.ClockInAt)
	a.ClockOutAt = latest(a.ClockOutAt, b.ClockOutAt)
	return a
}

func earliest(current, candidate *time.Time) *time.Time {
	if candidate == nil {
		return current
	}
	if current == nil || candidate.Before(*current) {
		t := *candidate
		return &t
	}
	return current
}

func latest(current, candidate *time.Time) *time.Time {
	if candidate == nil {
		return current
	}
	if current == nil || candidate.After(*current) {
		t := *candidate
		return &t
	}
	return current
}
