package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
)

type EventServiceImpl struct {
	eventRepo attendance.EventRepository
	location  *time.Location
}

// NewEventService reads naive producer timestamps in loc.
func NewEventService(eventRepo attendance.EventRepository, loc *time.Location) attendance.EventService {
	return &EventServiceImpl{
		eventRepo: eventRepo,
		location:  loc,
	}
}

// IngestEvents implements attendance.EventService.
func (s *EventServiceImpl) IngestEvents(ctx context.Context, req attendance.IngestEventsRequest) (attendance.IngestEventsResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.IngestEventsResponse{}, err
	}

	companyID, err := jwt.CompanyIDFromContext(ctx)
	if err != nil {
		return attendance.IngestEventsResponse{}, err
	}

	events := make([]attendance.AttendanceEvent, 0, len(req.Events))
	malformed := 0
	for _, raw := range req.Events {
		event, bad := raw.ToEntity(companyID, s.location)
		malformed += bad
		events = append(events, event)
	}

	stored, err := s.eventRepo.CreateBatch(ctx, events)
	if err != nil {
		return attendance.IngestEventsResponse{}, fmt.Errorf("failed to store attendance events: %w", err)
	}

	if malformed > 0 {
		slog.WarnContext(ctx, "ingested events with malformed timestamps",
			"company_id", companyID,
			"received", len(req.Events),
			"malformed", malformed,
		)
	}

	return attendance.IngestEventsResponse{
		Received:            len(req.Events),
		Stored:              stored,
		MalformedTimestamps: malformed,
	}, nil
}

// ListEvents implements attendance.EventService.
func (s *EventServiceImpl) ListEvents(ctx context.Context, filter attendance.EventFilter) ([]attendance.EventResponse, error) {
	from, to, err := filter.Range(s.location)
	if err != nil {
		return nil, err
	}

	companyID, err := jwt.CompanyIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	events, err := s.eventRepo.ListByRange(ctx, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance events: %w", err)
	}

	resp := make([]attendance.EventResponse, 0, len(events))
	for _, e := range events {
		resp = append(resp, attendance.NewEventResponse(e))
	}
	return resp, nil
}
