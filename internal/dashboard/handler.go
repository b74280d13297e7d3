package dashboard

import (
	"log/slog"
	"net/http"
	"strconv"

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

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.Stats(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, stats)
}

// RecentActivities surfaces the newest employees and the most recently
// updated tasks.
func (h *Handler) RecentActivities(w http.ResponseWriter, r *http.Request) {
	activity, err := h.Service.RecentActivities(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, activity)
}

func (h *Handler) UpcomingEvents(w http.ResponseWriter, r *http.Request) {
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))

	events, err := h.Service.UpcomingEvents(r.Context(), days)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, events)
}

func (h *Handler) UpcomingTasks(w http.ResponseWriter, r *http.Request) {
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	tasks, err := h.Service.UpcomingTasks(r.Context(), days, limit)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, tasks)
}
