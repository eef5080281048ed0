package reconcile

import (
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
)

// ScheduleIndex resolves schedule ids in constant time. The zero value resolves nothing.
type ScheduleIndex struct {
	byID map[string]schedule.WorkSchedule
}

func NewScheduleIndex(schedules []schedule.WorkSchedule) ScheduleIndex {
	idx := ScheduleIndex{byID: make(map[string]schedule.WorkSchedule, len(schedules))}
	for _, s := range schedules {
		if s.ID == "" {
			continue
		}
		// first occurrence wins
		if _, ok := idx.byID[s.ID]; ok {
			continue
		}
		idx.byID[s.ID] = s
	}
	return idx
}

// Resolve returns the schedule for id, or nil when id is empty or unknown.
// A nil result means "no schedule assigned"; lateness and variance are skipped for that employee.
func (i ScheduleIndex) Resolve(id *string) *schedule.WorkSchedule {
	if id == nil || *id == "" {
		return nil
	}
	s, ok := i.byID[*id]
	if !ok {
		return nil
	}
	return &s
}

func (i ScheduleIndex) Len() int {
	return len(i.byID)
}
