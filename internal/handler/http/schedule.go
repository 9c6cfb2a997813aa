package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/shiftline/timeclock-backend-go/internal/domain/schedule"
	"github.com/shiftline/timeclock-backend-go/internal/handler/http/response"
)

type ScheduleHandler interface {
	Save(w http.ResponseWriter, r *http.Request)
	ListUpcoming(w http.ResponseWriter, r *http.Request)
}

type scheduleHandlerImpl struct {
	scheduleService schedule.ScheduleService
}

func NewScheduleHandler(scheduleService schedule.ScheduleService) ScheduleHandler {
	return &scheduleHandlerImpl{scheduleService: scheduleService}
}

// Save implements ScheduleHandler.
func (h *scheduleHandlerImpl) Save(w http.ResponseWriter, r *http.Request) {
	var req schedule.SaveScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	saved, err := h.scheduleService.Save(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Schedule saved", saved)
}

// ListUpcoming implements ScheduleHandler.
func (h *scheduleHandlerImpl) ListUpcoming(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := schedule.ListUpcomingRequest{
		From: query.Get("from"),
	}
	if employeeID := query.Get("employee_id"); employeeID != "" {
		req.EmployeeID = &employeeID
	}
	if l := query.Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil {
			req.Limit = parsed
		}
	}

	schedules, err := h.scheduleService.ListUpcoming(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, schedules)
}
