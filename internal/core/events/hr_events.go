package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeUserInvited     = "user.invited"
	EventTypeUserLoggedIn    = "user.logged_in"
	EventTypeRoleChanged     = "user.role_changed"
	EventTypePasswordReset   = "user.password_reset_requested"
	EventTypePasswordChanged = "user.password_changed"
	EventTypeEmailVerifySent = "user.email_verification_sent"
	EventTypeEmailVerified   = "user.email_verified"
	EventTypeStatusChanged   = "employee.status_changed"
	EventTypeBulkAnnounce    = "notification.bulk_announcement"
)

type UserInvitedEvent struct {
	BaseEvent
	Email       string `json:"email"`
	Role        string `json:"role"`
	InviterName string `json:"inviter_name"`
	Token       string `json:"token"`
}

func NewUserInvitedEvent(email, role, inviterName, token string) *UserInvitedEvent {
	return &UserInvitedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.NewString(),
			Type:      EventTypeUserInvited,
			Timestamp: time.Now(),
			Data: map[string]any{
				"email":        email,
				"role":         role,
				"inviter_name": inviterName,
			},
		},
		Email:       email,
		Role:        role,
		InviterName: inviterName,
		Token:       token,
	}
}

type UserLoggedInEvent struct {
	BaseEvent
	Email     string `json:"email"`
	Name      string `json:"name"`
	IPAddress string `json:"ip_address"`
	UserAgent string `json:"user_agent"`
}

func NewUserLoggedInEvent(email, name, ip, ua string) *UserLoggedInEvent {
	return &UserLoggedInEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.NewString(),
			Type:      EventTypeUserLoggedIn,
			Timestamp: time.Now(),
			Data: map[string]any{
				"email":      email,
				"ip_address": ip,
			},
		},
		Email:     email,
		Name:      name,
		IPAddress: ip,
		UserAgent: ua,
	}
}

type RoleChangedEvent struct {
	BaseEvent
	Email     string `json:"email"`
	Name      string `json:"name"`
	OldRole   string `json:"old_role"`
	NewRole   string `json:"new_role"`
	ChangedBy string `json:"changed_by"`
}

func NewRoleChangedEvent(email, name, oldRole, newRole, changedBy string) *RoleChangedEvent {
	return &RoleChangedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.NewString(),
			Type:      EventTypeRoleChanged,
			Timestamp: time.Now(),
			Data: map[string]any{
				"email":    email,
				"old_role": oldRole,
				"new_role": newRole,
			},
		},
		Email:     email,
		Name:      name,
		OldRole:   oldRole,
		NewRole:   newRole,
		ChangedBy: changedBy,
	}
}

type PasswordResetEvent struct {
	BaseEvent
	Email string `json:"email"`
	Name  string `json:"name"`
	Token string `json:"token"`
}

func NewPasswordResetEvent(email, name, token string) *PasswordResetEvent {
	return &PasswordResetEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.NewString(),
			Type:      EventTypePasswordReset,
			Timestamp: time.Now(),
			Data:      map[string]any{"email": email},
		},
		Email: email,
		Name:  name,
		Token: token,
	}
}

type PasswordChangedEvent struct {
	BaseEvent
	Email string `json:"email"`
	Name  string `json:"name"`
}

func NewPasswordChangedEvent(email, name string) *PasswordChangedEvent {
	return &PasswordChangedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.NewString(),
			Type:      EventTypePasswordChanged,
			Timestamp: time.Now(),
			Data:      map[string]any{"email": email},
		},
		Email: email,
		Name:  name,
	}
}

type EmailVerificationEvent struct {
	BaseEvent
	Email string `json:"email"`
	Name  string `json:"name"`
	Token string `json:"token"`
}

func NewEmailVerificationEvent(email, name, token string) *EmailVerificationEvent {
	return &EmailVerificationEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.NewString(),
			Type:      EventTypeEmailVerifySent,
			Timestamp: time.Now(),
			Data:      map[string]any{"email": email},
		},
		Email: email,
		Name:  name,
		Token: token,
	}
}

type EmployeeStatusChangedEvent struct {
	BaseEvent
	EmployeeID string `json:"employee_id"`
	OldStatus  string `json:"old_status"`
	NewStatus  string `json:"new_status"`
	ChangedBy  string `json:"changed_by"`
}

func NewEmployeeStatusChangedEvent(employeeID, oldStatus, newStatus, changedBy string) *EmployeeStatusChangedEvent {
	return &EmployeeStatusChangedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.NewString(),
			Type:      EventTypeStatusChanged,
			Timestamp: time.Now(),
			Data: map[string]any{
				"employee_id": employeeID,
				"old_status":  oldStatus,
				"new_status":  newStatus,
			},
		},
		EmployeeID: employeeID,
		OldStatus:  oldStatus,
		NewStatus:  newStatus,
		ChangedBy:  changedBy,
	}
}

type BulkAnnouncementEvent struct {
	BaseEvent
	Subject    string   `json:"subject"`
	Message    string   `json:"message"`
	Recipients []string `json:"recipients"`
}

func NewBulkAnnouncementEvent(subject, message string, recipients []string) *BulkAnnouncementEvent {
	return &BulkAnnouncementEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.NewString(),
			Type:      EventTypeBulkAnnounce,
			Timestamp: time.Now(),
			Data: map[string]any{
				"subject":    subject,
				"recipients": len(recipients),
			},
		},
		Subject:    subject,
		Message:    message,
		Recipients: recipients,
	}
}
