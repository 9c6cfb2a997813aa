package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shiftline/timeclock-backend-go/internal/domain/shift"
	"github.com/shiftline/timeclock-backend-go/internal/handler/http/middleware"
	"github.com/shiftline/timeclock-backend-go/internal/handler/http/response"
	"github.com/shiftline/timeclock-backend-go/internal/pkg/validator"
	"github.com/shiftline/timeclock-backend-go/internal/service/report"
)

type ShiftHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	EditTimes(w http.ResponseWriter, r *http.Request)
	ListEditLogs(w http.ResponseWriter, r *http.Request)
	ExportTimesheets(w http.ResponseWriter, r *http.Request)
}

type shiftHandlerImpl struct {
	queryService  shift.ShiftQueryService
	editService   shift.ShiftEditService
	reportService report.ReportService
}

func NewShiftHandler(
	queryService shift.ShiftQueryService,
	editService shift.ShiftEditService,
	reportService report.ReportService,
) ShiftHandler {
	return &shiftHandlerImpl{
		queryService:  queryService,
		editService:   editService,
		reportService: reportService,
	}
}

// Get implements ShiftHandler.
func (h *shiftHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	found, err := h.queryService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// List implements ShiftHandler.
func (h *shiftHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseShiftFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	list, err := h.queryService.List(r.Context(), filter)
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

// EditTimes implements ShiftHandler.
func (h *shiftHandlerImpl) EditTimes(w http.ResponseWriter, r *http.Request) {
	editorID, err := middleware.EmployeeID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req shift.EditTimesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ShiftID = chi.URLParam(r, "id")
	req.EditorID = editorID

	result, err := h.editService.EditTimes(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	writeResult(w, result)
}

// ListEditLogs implements ShiftHandler.
func (h *shiftHandlerImpl) ListEditLogs(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	logs, err := h.editService.ListEditLogs(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, logs)
}

// ExportTimesheets implements ShiftHandler.
func (h *shiftHandlerImpl) ExportTimesheets(w http.ResponseWriter, r *http.Request) {
	filter, err := parseShiftFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	f, err := h.reportService.TimesheetXLSX(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="timesheets.xlsx"`)
	if err := f.Write(w); err != nil {
		// Headers are already out; nothing useful left to send.
		return
	}
}

func parseShiftFilter(r *http.Request) (shift.Filter, error) {
	filter := shift.Filter{}
	var errs validator.ValidationErrors

	query := r.URL.Query()

	if employeeID := query.Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}

	if startDate := query.Get("start_date"); startDate != "" {
		parsed, ok := validator.IsValidDate(startDate)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		} else {
			filter.StartDate = &parsed
		}
	}

	if endDate := query.Get("end_date"); endDate != "" {
		parsed, ok := validator.IsValidDate(endDate)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		} else {
			filter.EndDate = &parsed
		}
	}

	if status := query.Get("status"); status != "" {
		filter.Status = &status
	}

	if p := query.Get("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil {
			filter.Page = parsed
		}
	}
	if l := query.Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil {
			filter.Limit = parsed
		}
	}

	if len(errs) > 0 {
		return shift.Filter{}, errs
	}

	return filter, nil
}
