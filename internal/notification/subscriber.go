package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/brandingpioneers/hr-management/internal/core/events"
)

// Subscriber connects the event bus triggers to the mailer. Every handler
// only returns an error for the bus to log; nothing propagates back to the
// operation that published the event.
type Subscriber struct {
	mailer *Mailer
	logger *slog.Logger
}

func NewSubscriber(mailer *Mailer, logger *slog.Logger) *Subscriber {
	return &Subscriber{mailer: mailer, logger: logger}
}

// Register subscribes every notification trigger on the bus.
func (s *Subscriber) Register(bus *events.EventBus) {
	bus.Subscribe(events.EventTypeUserInvited, s.onUserInvited)
	bus.Subscribe(events.EventTypePasswordReset, s.onPasswordReset)
	bus.Subscribe(events.EventTypePasswordChanged, s.onPasswordChanged)
	bus.Subscribe(events.EventTypeEmailVerifySent, s.onEmailVerification)
	bus.Subscribe(events.EventTypeUserLoggedIn, s.onUserLoggedIn)
	bus.Subscribe(events.EventTypeRoleChanged, s.onRoleChanged)
	bus.Subscribe(events.EventTypeBulkAnnounce, s.onBulkAnnouncement)
}

func (s *Subscriber) onUserInvited(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.UserInvitedEvent)
	if !ok {
		return fmt.Errorf("unexpected payload for %s", event.EventType())
	}
	return s.mailer.SendInvitation(e.Email, e.Role, e.InviterName, e.Token)
}

func (s *Subscriber) onPasswordReset(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.PasswordResetEvent)
	if !ok {
		return fmt.Errorf("unexpected payload for %s", event.EventType())
	}
	return s.mailer.SendPasswordReset(e.Email, e.Name, e.Token)
}

func (s *Subscriber) onPasswordChanged(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.PasswordChangedEvent)
	if !ok {
		return fmt.Errorf("unexpected payload for %s", event.EventType())
	}
	return s.mailer.SendPasswordChanged(e.Email, e.Name)
}

func (s *Subscriber) onEmailVerification(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.EmailVerificationEvent)
	if !ok {
		return fmt.Errorf("unexpected payload for %s", event.EventType())
	}
	return s.mailer.SendEmailVerification(e.Email, e.Name, e.Token)
}

func (s *Subscriber) onUserLoggedIn(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.UserLoggedInEvent)
	if !ok {
		return fmt.Errorf("unexpected payload for %s", event.EventType())
	}
	return s.mailer.SendLoginAlert(e.Email, e.Name, e.IPAddress)
}

func (s *Subscriber) onRoleChanged(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.RoleChangedEvent)
	if !ok {
		return fmt.Errorf("unexpected payload for %s", event.EventType())
	}
	return s.mailer.SendRoleChanged(e.Email, e.Name, e.OldRole, e.NewRole)
}

// onBulkAnnouncement fans one announcement out to every recipient. Failed
// recipients are logged individually; the batch keeps going.
func (s *Subscriber) onBulkAnnouncement(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.BulkAnnouncementEvent)
	if !ok {
		return fmt.Errorf("unexpected payload for %s", event.EventType())
	}

	var failed int
	for _, recipient := range e.Recipients {
		if err := s.mailer.SendAnnouncement(recipient, e.Subject, e.Message); err != nil {
			failed++
			s.logger.Error("announcement send failed", "to", recipient, "error", err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d announcement sends failed", failed, len(e.Recipients))
	}
	return nil
}
