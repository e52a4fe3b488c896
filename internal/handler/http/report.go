package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/attendly/ems-backend-go/internal/domain/report"
	"github.com/attendly/ems-backend-go/internal/handler/http/response"
	"github.com/attendly/ems-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type ReportHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	DownloadPDF(w http.ResponseWriter, r *http.Request)
	DownloadExcel(w http.ResponseWriter, r *http.Request)
	EmployeeReport(w http.ResponseWriter, r *http.Request)
	Dashboard(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &ReportHandlerImpl{
		reportService: reportService,
	}
}

// Generate implements ReportHandler.
func (h *ReportHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var generateReq report.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&generateReq); err != nil {
		slog.Error("Generate report decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	h.respondWithArtifact(w, r, generateReq)
}

// DownloadPDF implements ReportHandler. Query-parameter shortcut for
// the generic generate endpoint.
func (h *ReportHandlerImpl) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	h.respondWithArtifact(w, r, generateRequestFromQuery(r, string(report.FormatPDF)))
}

// DownloadExcel implements ReportHandler.
func (h *ReportHandlerImpl) DownloadExcel(w http.ResponseWriter, r *http.Request) {
	h.respondWithArtifact(w, r, generateRequestFromQuery(r, string(report.FormatExcel)))
}

func (h *ReportHandlerImpl) respondWithArtifact(w http.ResponseWriter, r *http.Request, generateReq report.GenerateRequest) {
	if err := generateReq.Validate(); err != nil {
		slog.Error("Generate report validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	artifact, err := h.reportService.GenerateAttendanceReport(r.Context(), generateReq)
	if err != nil {
		slog.Error("Generate report service error", "error", err, "format", generateReq.Format)
		response.HandleError(w, err)
		return
	}

	slog.Info("Report generated", "format", generateReq.Format, "filename", artifact.Filename, "size", artifact.Size)
	response.File(w, artifact.Filename, artifact.MIMEType, artifact.Buffer)
}

// EmployeeReport implements ReportHandler. Year and month come from
// the URL path; the query-parameter alias falls back to the current
// month.
func (h *ReportHandlerImpl) EmployeeReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Invalid employee id", nil)
		return
	}

	year, month := yearMonthFromQuery(r)
	if y := chi.URLParam(r, "year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil || parsed <= 0 {
			response.BadRequest(w, "Invalid year", nil)
			return
		}
		year = parsed
	}
	if m := chi.URLParam(r, "month"); m != "" {
		parsed, err := strconv.Atoi(m)
		if err != nil || parsed < 1 || parsed > 12 {
			response.BadRequest(w, "Invalid month", nil)
			return
		}
		month = time.Month(parsed)
	}

	result, err := h.reportService.GetEmployeeReport(r.Context(), id, year, month)
	if err != nil {
		slog.Error("Employee report service error", "error", err, "employee_id", id)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Dashboard implements ReportHandler.
func (h *ReportHandlerImpl) Dashboard(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.GetDashboard(r.Context())
	if err != nil {
		slog.Error("Dashboard service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func generateRequestFromQuery(r *http.Request, format string) report.GenerateRequest {
	q := r.URL.Query()
	return report.GenerateRequest{
		Format:    format,
		Type:      q.Get("type"),
		Date:      q.Get("date"),
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
	}
}
