package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Entry is one appended audit record. Details is stored as serialized JSON.
type Entry struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"index"`
	Action    string    `json:"action" gorm:"not null"`
	Resource  string    `json:"resource"`
	Details   string    `json:"details,omitempty"`
	IPAddress string    `json:"ip_address,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
	Timestamp time.Time `json:"timestamp" gorm:"index"`
}

func (Entry) TableName() string { return "audit_logs" }

type Repository interface {
	Append(e *Entry) error
	ListRecent(limit, offset int) ([]*Entry, error)
}

// Recorder appends audit entries. Record never returns an error: a failed
// append is logged and swallowed so it can never abort the operation that
// triggered it.
type Recorder struct {
	repo   Repository
	logger *slog.Logger
}

func NewRecorder(repo Repository, logger *slog.Logger) *Recorder {
	return &Recorder{repo: repo, logger: logger}
}

func (r *Recorder) Record(ctx context.Context, userID, action, resource string, details map[string]any, ip, ua string) {
	entry := &Entry{
		ID:        uuid.NewString(),
		UserID:    userID,
		Action:    action,
		Resource:  resource,
		IPAddress: ip,
		UserAgent: ua,
		Timestamp: time.Now().UTC(),
	}

	if len(details) > 0 {
		if raw, err := json.Marshal(details); err == nil {
			entry.Details = string(raw)
		} else {
			r.logger.Warn("failed to serialize audit details", "action", action, "error", err)
		}
	}

	if err := r.repo.Append(entry); err != nil {
		r.logger.Error("failed to append audit entry", "action", action, "user_id", userID, "error", err)
	}
}

// ListRecent returns entries newest first.
func (r *Recorder) ListRecent(ctx context.Context, limit, offset int) ([]*Entry, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return r.repo.ListRecent(limit, offset)
}
