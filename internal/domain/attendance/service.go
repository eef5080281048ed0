package attendance

import (
	"context"
)

// EventService handles raw attendance events for the caller's company.
type EventService interface {
	// IngestEvents normalises and stores a batch of producer events (manager+ only)
	IngestEvents(ctx context.Context, req IngestEventsRequest) (IngestEventsResponse, error)

	// ListEvents returns the raw events attributed to the filter's range
	ListEvents(ctx context.Context, filter EventFilter) ([]EventResponse, error)
}
