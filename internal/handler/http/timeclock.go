package http

import (
	"net/http"

	"github.com/shiftline/timeclock-backend-go/internal/domain/shift"
	"github.com/shiftline/timeclock-backend-go/internal/handler/http/middleware"
	"github.com/shiftline/timeclock-backend-go/internal/handler/http/response"
)

type TimeclockHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	StartMealBreak(w http.ResponseWriter, r *http.Request)
	EndMealBreak(w http.ResponseWriter, r *http.Request)
	Status(w http.ResponseWriter, r *http.Request)
	MyShifts(w http.ResponseWriter, r *http.Request)
}

type timeclockHandlerImpl struct {
	timeclockService shift.TimeclockService
}

func NewTimeclockHandler(timeclockService shift.TimeclockService) TimeclockHandler {
	return &timeclockHandlerImpl{timeclockService: timeclockService}
}

// ClockIn implements TimeclockHandler.
func (h *timeclockHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	employeeID, err := middleware.EmployeeID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.timeclockService.ClockIn(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	writeResult(w, result)
}

// ClockOut implements TimeclockHandler.
func (h *timeclockHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	employeeID, err := middleware.EmployeeID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.timeclockService.ClockOut(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	writeResult(w, result)
}

// StartMealBreak implements TimeclockHandler.
func (h *timeclockHandlerImpl) StartMealBreak(w http.ResponseWriter, r *http.Request) {
	employeeID, err := middleware.EmployeeID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.timeclockService.StartMealBreak(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	writeResult(w, result)
}

// EndMealBreak implements TimeclockHandler.
func (h *timeclockHandlerImpl) EndMealBreak(w http.ResponseWriter, r *http.Request) {
	employeeID, err := middleware.EmployeeID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.timeclockService.EndMealBreak(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	writeResult(w, result)
}

// Status implements TimeclockHandler.
func (h *timeclockHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	employeeID, err := middleware.EmployeeID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	status, err := h.timeclockService.Status(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, status)
}

// MyShifts implements TimeclockHandler.
func (h *timeclockHandlerImpl) MyShifts(w http.ResponseWriter, r *http.Request) {
	employeeID, err := middleware.EmployeeID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter, err := parseShiftFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	list, err := h.timeclockService.MyShifts(r.Context(), employeeID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, list.Shifts, &response.Meta{
		Page:       list.Page,
		Limit:      list.Limit,
		TotalItems: list.TotalCount,
		TotalPages: list.TotalPages,
	})
}

// writeResult renders a lifecycle outcome. A rejection is a well-formed
// request that policy said no to, so it stays a 200 with accepted=false.
func writeResult(w http.ResponseWriter, result shift.Result) {
	response.SuccessWithMessage(w, result.Message, result)
}
