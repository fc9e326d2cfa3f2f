package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/campus-hub/campus-schedule-hub/internal/application/command"
	"github.com/campus-hub/campus-schedule-hub/internal/application/query"
	"github.com/campus-hub/campus-schedule-hub/internal/domain/attendance"
	"github.com/campus-hub/campus-schedule-hub/internal/domain/shared"
	"github.com/campus-hub/campus-schedule-hub/pkg/logger"
)

// validate checks request DTOs before they reach the application layer.
var validate = validator.New()

// maxBodyBytes bounds request bodies; grids for a whole week fit well
// under this.
const maxBodyBytes = 4 << 20

// ══════════════════════════════════════════════════════════════════════════════
// HEALTH & STATUS HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleRoot serves the root endpoint with basic API information.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	info := map[string]interface{}{
		"name":        "Campus Schedule Hub API",
		"version":     "v1",
		"description": "REST API for the course catalog, class schedule and attendance tracker",
		"endpoints": map[string]string{
			"health":     "/health",
			"sections":   "/api/v1/catalog/sections",
			"schedule":   "/api/v1/schedule",
			"courses":    "/api/v1/courses",
			"attendance": "/api/v1/attendance",
		},
	}

	writeJSON(w, http.StatusOK, info)
}

// handleHealth handles the health check endpoint.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.deps.HealthChecker != nil {
		status := s.deps.HealthChecker.Check(r.Context())
		if !status.Healthy {
			writeJSON(w, http.StatusServiceUnavailable, status)
			return
		}
		writeJSON(w, http.StatusOK, status)
		return
	}

	// Default health response
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"uptime":  s.Uptime().String(),
		"version": "v1",
	})
}

// handleReady handles the readiness probe endpoint (for Kubernetes).
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.deps.HealthChecker != nil {
		status := s.deps.HealthChecker.Check(r.Context())
		if !status.Ready {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not_ready",
				"reason": status.Message,
			})
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleLive handles the liveness probe endpoint (for Kubernetes).
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// handleMetrics handles the metrics endpoint.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	metrics := map[string]interface{}{
		"uptime_seconds": s.Uptime().Seconds(),
		"running":        s.IsRunning(),
	}

	writeJSON(w, http.StatusOK, metrics)
}

// ══════════════════════════════════════════════════════════════════════════════
// CATALOG HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleGetSections handles GET /api/v1/catalog/sections
func (s *Server) handleGetSections(w http.ResponseWriter, r *http.Request) {
	if s.deps.GetSectionsHandler == nil {
		writeJSONError(w, http.StatusNotImplemented, "not_implemented", "Catalog handler not configured")
		return
	}

	result, err := s.deps.GetSectionsHandler.Handle(r.Context())
	if err != nil {
		s.writeDomainError(w, err, "Failed to list sections")
		return
	}

	meta := &ResponseMeta{
		TotalCount: len(result.Sections),
		Stale:      result.Stale,
	}

	writeJSONWithMeta(w, r, http.StatusOK, result, meta)
}

// handleGetCatalog handles GET /api/v1/catalog/sections/{section}
func (s *Server) handleGetCatalog(w http.ResponseWriter, r *http.Request) {
	section := r.PathValue("section")
	if section == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Section is required")
		return
	}

	if s.deps.GetCatalogHandler == nil {
		writeJSONError(w, http.StatusNotImplemented, "not_implemented", "Catalog handler not configured")
		return
	}

	result, err := s.deps.GetCatalogHandler.Handle(r.Context(), query.GetCatalogQuery{Section: section})
	if err != nil {
		s.writeDomainError(w, err, "Failed to get catalog")
		return
	}

	meta := &ResponseMeta{
		TotalCount: len(result.Offerings),
		Stale:      result.Stale,
	}

	writeJSONWithMeta(w, r, http.StatusOK, result, meta)
}

// importTimetableRequest is the body for POST /api/v1/catalog/import.
// Grids may be omitted to download from the configured source instead.
type importTimetableRequest struct {
	Grids  map[string]string `json:"grids"`
	Source string            `json:"source" validate:"omitempty,max=64"`
}

// handleImportTimetable handles POST /api/v1/catalog/import
func (s *Server) handleImportTimetable(w http.ResponseWriter, r *http.Request) {
	if !s.requireAPIKey(r) {
		writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Valid API key required")
		return
	}

	if s.deps.ImportTimetableHandler == nil {
		writeJSONError(w, http.StatusNotImplemented, "not_implemented", "Import handler not configured")
		return
	}

	var req importTimetableRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	source := req.Source
	if source == "" {
		source = "upload"
	}

	result, err := s.deps.ImportTimetableHandler.Handle(r.Context(), command.ImportTimetableCommand{
		Grids:         req.Grids,
		Source:        source,
		CorrelationID: getRequestID(r.Context()),
	})
	if err != nil {
		s.writeDomainError(w, err, "Failed to import timetable")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ══════════════════════════════════════════════════════════════════════════════
// SCHEDULE & ENROLLMENT HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleGetSchedule handles GET /api/v1/schedule
func (s *Server) handleGetSchedule(w http.ResponseWriter, r *http.Request) {
	if s.deps.GetScheduleHandler == nil {
		writeJSONError(w, http.StatusNotImplemented, "not_implemented", "Schedule handler not configured")
		return
	}

	q := query.GetScheduleQuery{
		Day: getQueryParam(r, "day", ""),
	}

	result, err := s.deps.GetScheduleHandler.Handle(r.Context(), q)
	if err != nil {
		s.writeDomainError(w, err, "Failed to get schedule")
		return
	}

	meta := &ResponseMeta{TotalCount: len(result.Courses)}
	writeJSONWithMeta(w, r, http.StatusOK, result, meta)
}

// enrollCourseRequest is the body for POST /api/v1/courses.
type enrollCourseRequest struct {
	CourseCode      string   `json:"courseCode" validate:"required,max=64"`
	Section         string   `json:"section" validate:"required,max=64"`
	Name            string   `json:"name" validate:"omitempty,max=256"`
	Days            []string `json:"days" validate:"omitempty,dive,required"`
	StartTime       string   `json:"startTime" validate:"omitempty,max=16"`
	EndTime         string   `json:"endTime" validate:"omitempty,max=16"`
	CreditHours     int      `json:"creditHours" validate:"gte=0,lte=10"`
	StartDate       string   `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate         string   `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	InitialAbsences int      `json:"initialAbsences" validate:"gte=0"`
	AllowedAbsences int      `json:"allowedAbsences" validate:"gte=0"`
	Force           bool     `json:"force"`
}

// handleEnrollCourse handles POST /api/v1/courses
func (s *Server) handleEnrollCourse(w http.ResponseWriter, r *http.Request) {
	if s.deps.EnrollCourseHandler == nil {
		writeJSONError(w, http.StatusNotImplemented, "not_implemented", "Enroll handler not configured")
		return
	}

	var req enrollCourseRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	result, err := s.deps.EnrollCourseHandler.Handle(r.Context(), command.EnrollCourseCommand{
		CourseCode:      req.CourseCode,
		Section:         req.Section,
		Name:            req.Name,
		Days:            req.Days,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		CreditHours:     req.CreditHours,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		InitialAbsences: req.InitialAbsences,
		AllowedAbsences: req.AllowedAbsences,
		Force:           req.Force,
		CorrelationID:   getRequestID(r.Context()),
	})
	if err != nil {
		s.writeDomainError(w, err, "Failed to enroll course")
		return
	}

	// A blocked conflict is not an error: the classification comes back
	// so the client can re-submit with force.
	status := http.StatusCreated
	if !result.Enrolled {
		status = http.StatusConflict
	}
	writeJSON(w, status, result)
}

// handleDropCourse handles DELETE /api/v1/courses/{id}
func (s *Server) handleDropCourse(w http.ResponseWriter, r *http.Request) {
	courseID := r.PathValue("id")
	if courseID == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Course ID is required")
		return
	}

	if s.deps.DropCourseHandler == nil {
		writeJSONError(w, http.StatusNotImplemented, "not_implemented", "Drop handler not configured")
		return
	}

	result, err := s.deps.DropCourseHandler.Handle(r.Context(), command.DropCourseCommand{
		CourseID:      courseID,
		CorrelationID: getRequestID(r.Context()),
	})
	if err != nil {
		s.writeDomainError(w, err, "Failed to drop course")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// checkConflictsRequest is the body for POST /api/v1/courses/check.
type checkConflictsRequest struct {
	CourseCode  string   `json:"courseCode" validate:"required,max=64"`
	Section     string   `json:"section" validate:"required,max=64"`
	Name        string   `json:"name" validate:"omitempty,max=256"`
	Days        []string `json:"days" validate:"omitempty,dive,required"`
	StartTime   string   `json:"startTime" validate:"omitempty,max=16"`
	EndTime     string   `json:"endTime" validate:"omitempty,max=16"`
	CreditHours int      `json:"creditHours" validate:"gte=0,lte=10"`
}

// handleCheckConflicts handles POST /api/v1/courses/check
func (s *Server) handleCheckConflicts(w http.ResponseWriter, r *http.Request) {
	if s.deps.CheckConflictsHandler == nil {
		writeJSONError(w, http.StatusNotImplemented, "not_implemented", "Conflict handler not configured")
		return
	}

	var req checkConflictsRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	result, err := s.deps.CheckConflictsHandler.Handle(r.Context(), query.CheckConflictsQuery{
		CourseCode:  req.CourseCode,
		Section:     req.Section,
		Name:        req.Name,
		Days:        req.Days,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		CreditHours: req.CreditHours,
	})
	if err != nil {
		s.writeDomainError(w, err, "Failed to check conflicts")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ══════════════════════════════════════════════════════════════════════════════
// ATTENDANCE HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// recordAttendanceRequest is the body for POST /api/v1/attendance.
type recordAttendanceRequest struct {
	CourseID string `json:"courseId" validate:"required,uuid4"`
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	Status   string `json:"status" validate:"required,oneof=present absent cancelled proxy"`
}

// handleRecordAttendance handles POST /api/v1/attendance
func (s *Server) handleRecordAttendance(w http.ResponseWriter, r *http.Request) {
	if s.deps.RecordAttendanceHandler == nil {
		writeJSONError(w, http.StatusNotImplemented, "not_implemented", "Attendance handler not configured")
		return
	}

	var req recordAttendanceRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	result, err := s.deps.RecordAttendanceHandler.Handle(r.Context(), command.RecordAttendanceCommand{
		CourseID:      req.CourseID,
		Date:          req.Date,
		Status:        attendance.Status(req.Status),
		CorrelationID: getRequestID(r.Context()),
	})
	if err != nil {
		s.writeDomainError(w, err, "Failed to record attendance")
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

// handleGetAttendanceStats handles GET /api/v1/courses/{id}/attendance
func (s *Server) handleGetAttendanceStats(w http.ResponseWriter, r *http.Request) {
	courseID := r.PathValue("id")
	if courseID == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Course ID is required")
		return
	}

	if s.deps.GetAttendanceStatsHandler == nil {
		writeJSONError(w, http.StatusNotImplemented, "not_implemented", "Stats handler not configured")
		return
	}

	result, err := s.deps.GetAttendanceStatsHandler.Handle(r.Context(), query.GetAttendanceStatsQuery{CourseID: courseID})
	if err != nil {
		s.writeDomainError(w, err, "Failed to get attendance stats")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// simulateAttendanceRequest is the body for POST /api/v1/courses/{id}/attendance/simulate.
type simulateAttendanceRequest struct {
	Dates []string `json:"dates" validate:"required,min=1,dive,datetime=2006-01-02"`
}

// handleSimulateAttendance handles POST /api/v1/courses/{id}/attendance/simulate
func (s *Server) handleSimulateAttendance(w http.ResponseWriter, r *http.Request) {
	courseID := r.PathValue("id")
	if courseID == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Course ID is required")
		return
	}

	if s.deps.SimulateAttendanceHandler == nil {
		writeJSONError(w, http.StatusNotImplemented, "not_implemented", "Simulate handler not configured")
		return
	}

	var req simulateAttendanceRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	result, err := s.deps.SimulateAttendanceHandler.Handle(r.Context(), query.SimulateAttendanceQuery{
		CourseID: courseID,
		Dates:    req.Dates,
	})
	if err != nil {
		s.writeDomainError(w, err, "Failed to simulate attendance")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleGetAttendanceSummary handles GET /api/v1/attendance/summary
func (s *Server) handleGetAttendanceSummary(w http.ResponseWriter, r *http.Request) {
	if s.deps.GetAttendanceSummaryHandler == nil {
		writeJSONError(w, http.StatusNotImplemented, "not_implemented", "Summary handler not configured")
		return
	}

	result, err := s.deps.GetAttendanceSummaryHandler.Handle(r.Context())
	if err != nil {
		s.writeDomainError(w, err, "Failed to get attendance summary")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleGetDayStatus handles GET /api/v1/attendance/day/{date}
func (s *Server) handleGetDayStatus(w http.ResponseWriter, r *http.Request) {
	date := r.PathValue("date")
	if date == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Date is required")
		return
	}

	if s.deps.GetDayStatusHandler == nil {
		writeJSONError(w, http.StatusNotImplemented, "not_implemented", "Day status handler not configured")
		return
	}

	result, err := s.deps.GetDayStatusHandler.Handle(r.Context(), query.GetDayStatusQuery{Date: date})
	if err != nil {
		s.writeDomainError(w, err, "Failed to get day status")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ══════════════════════════════════════════════════════════════════════════════
// REQUEST DECODING & ERROR MAPPING
// ══════════════════════════════════════════════════════════════════════════════

// decodeBody reads, decodes and validates a JSON request body. It writes
// the error response itself and reports whether the handler may proceed.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	defer r.Body.Close()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to read request body")
		return false
	}

	if err := json.Unmarshal(body, dst); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload")
		return false
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			field := verrs[0]
			writeJSONErrorWithDetails(w, http.StatusBadRequest, "validation_failed",
				"Request validation failed", field.Field()+" failed on "+field.Tag())
			return false
		}
		writeJSONError(w, http.StatusBadRequest, "validation_failed", "Request validation failed")
		return false
	}

	return true
}

// writeDomainError maps application errors onto HTTP statuses. The
// fallback message hides internals; the log line keeps them.
func (s *Server) writeDomainError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, shared.ErrCatalogNotBuilt):
		writeJSONError(w, http.StatusNotFound, "catalog_not_built", "No catalog has been imported yet")
	case shared.IsNotFound(err):
		writeJSONError(w, http.StatusNotFound, "not_found", err.Error())
	case shared.IsAlreadyExists(err):
		writeJSONError(w, http.StatusConflict, "already_exists", err.Error())
	case errors.Is(err, shared.ErrInvalidInput),
		errors.Is(err, shared.ErrInvalidFormat),
		errors.Is(err, shared.ErrEmptyValue),
		errors.Is(err, shared.ErrValidation),
		errors.Is(err, shared.ErrNegativeValue):
		writeJSONError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, shared.ErrServiceUnavailable),
		errors.Is(err, shared.ErrTimeout):
		s.logger.Error(fallback, logger.Err(err))
		writeJSONError(w, http.StatusServiceUnavailable, "service_unavailable", fallback)
	default:
		s.logger.Error(fallback, logger.Err(err))
		writeJSONError(w, http.StatusInternalServerError, "internal_error", fallback)
	}
}
