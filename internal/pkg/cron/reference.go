package cron

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/service/reference"
)

const PurgeReferenceCachesJob = "purge_reference_caches"

// RegisterReferenceJobs drops cached rosters and schedules every interval so
// changes made outside the API are picked up.
func RegisterReferenceJobs(scheduler *Scheduler, store *reference.Store, interval time.Duration) {
	scheduler.AddJob(Job{
		Name:     PurgeReferenceCachesJob,
		Interval: interval,
		Fn:       store.Purge,
	})
}
