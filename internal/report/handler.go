package report

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/brandingpioneers/hr-management/internal/task"
	"github.com/brandingpioneers/hr-management/internal/transport"
	"github.com/brandingpioneers/hr-management/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service *Service
}

func NewHandler(svc *Service) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

func (h *Handler) EmployeesPDF(w http.ResponseWriter, r *http.Request) {
	data, err := h.Service.EmployeesPDF(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	writeAttachment(w, data, "application/pdf", fmt.Sprintf("employee_report_%s.pdf", time.Now().Format("20060102")))
}

func (h *Handler) TasksPDF(w http.ResponseWriter, r *http.Request) {
	filter := task.ListFilter{
		EmployeeID: r.URL.Query().Get("employee_id"),
		TaskType:   task.Type(r.URL.Query().Get("task_type")),
	}

	data, err := h.Service.TasksPDF(r.Context(), filter)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	writeAttachment(w, data, "application/pdf", fmt.Sprintf("task_report_%s.pdf", time.Now().Format("20060102")))
}

func (h *Handler) EmployeesExcel(w http.ResponseWriter, r *http.Request) {
	data, err := h.Service.EmployeesExcel(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	writeAttachment(w, data,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		fmt.Sprintf("employee_export_%s.xlsx", time.Now().Format("20060102")))
}

func writeAttachment(w http.ResponseWriter, data []byte, contentType, filename string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
