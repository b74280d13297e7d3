package notification

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/brandingpioneers/hr-management/internal"
	"github.com/brandingpioneers/hr-management/internal/core/events"
	"github.com/brandingpioneers/hr-management/internal/transport"
	"github.com/brandingpioneers/hr-management/pkg/logger"
)

// RecipientSource resolves "send to everyone" into concrete addresses.
// Implemented by the employee service.
type RecipientSource interface {
	ActiveEmails(ctx context.Context) ([]string, error)
}

type BulkNotificationDTO struct {
	Subject    string   `json:"subject"`
	Message    string   `json:"message"`
	Recipients []string `json:"recipients"`
}

func (d BulkNotificationDTO) Validate() error {
	if d.Subject == "" {
		return internal.NewValidationError("subject is required", internal.ErrCodeValidationFailed)
	}
	if d.Message == "" {
		return internal.NewValidationError("message is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

type Handler struct {
	*transport.BaseHandler
	bus        *events.EventBus
	recipients RecipientSource
}

func NewHandler(bus *events.EventBus, recipients RecipientSource) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		bus:         bus,
		recipients:  recipients,
	}
}

// SendBulk queues an announcement for every listed recipient, or for all
// active employees when the list is empty. The response returns before any
// mail is sent; delivery is fire-and-forget.
func (h *Handler) SendBulk(w http.ResponseWriter, r *http.Request) {
	var dto BulkNotificationDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	recipients := dto.Recipients
	if len(recipients) == 0 {
		all, err := h.recipients.ActiveEmails(r.Context())
		if err != nil {
			h.HandleServiceError(w, internal.NewInternalError("failed to resolve recipients", err))
			return
		}
		recipients = all
	}
	if len(recipients) == 0 {
		h.WriteError(w, http.StatusBadRequest, "no recipients to notify")
		return
	}

	h.bus.Publish(context.WithoutCancel(r.Context()), events.NewBulkAnnouncementEvent(dto.Subject, dto.Message, recipients))

	h.WriteJSON(w, http.StatusAccepted, map[string]any{
		"message":         "Notification queued",
		"recipient_count": len(recipients),
	})
}
