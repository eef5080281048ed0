package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	Ingest(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	eventService attendance.EventService
}

func NewAttendanceHandler(eventService attendance.EventService) AttendanceHandler {
	return &attendanceHandlerImpl{
		eventService: eventService,
	}
}

// Ingest handles POST /attendance/events
func (h *attendanceHandlerImpl) Ingest(w http.ResponseWriter, r *http.Request) {
	var req attendance.IngestEventsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.eventService.IngestEvents(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance events ingested", result)
}

// List handles GET /attendance/events?from=...&to=...
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := attendance.EventFilter{
		From: r.URL.Query().Get("from"),
		To:   r.URL.Query().Get("to"),
	}

	events, err := h.eventService.ListEvents(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, events)
}
