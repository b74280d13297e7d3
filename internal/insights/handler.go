package insights

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/brandingpioneers/hr-management/internal/employee"
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

func (h *Handler) EmployeeInsights(w http.ResponseWriter, r *http.Request) {
	insight, err := h.Service.EmployeeInsights(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, insight)
}

func (h *Handler) TaskSuggestions(w http.ResponseWriter, r *http.Request) {
	insight, err := h.Service.TaskSuggestions(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, insight)
}

func (h *Handler) ValidateEmployee(w http.ResponseWriter, r *http.Request) {
	var dto employee.CreateEmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	insight, err := h.Service.ValidateEmployee(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, insight)
}
