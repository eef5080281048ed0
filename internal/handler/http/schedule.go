package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ScheduleHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type scheduleHandlerImpl struct {
	scheduleService schedule.ScheduleService
}

func NewScheduleHandler(scheduleService schedule.ScheduleService) ScheduleHandler {
	return &scheduleHandlerImpl{
		scheduleService: scheduleService,
	}
}

// Create handles POST /schedules
func (h *scheduleHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req schedule.CreateWorkScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.scheduleService.CreateWorkSchedule(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Work schedule created", created)
}

// Get handles GET /schedules/{id}
func (h *scheduleHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	ws, err := h.scheduleService.GetWorkSchedule(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, ws)
}

// List handles GET /schedules
func (h *scheduleHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.scheduleService.ListWorkSchedules(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, schedules)
}
