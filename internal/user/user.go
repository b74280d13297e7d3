package user

import (
	"context"
	"log/slog"

	"github.com/brandingpioneers/hr-management/internal"
	"github.com/brandingpioneers/hr-management/internal/auth"
	"github.com/brandingpioneers/hr-management/internal/core/events"
)

type Repository interface {
	List(limit, offset int) ([]*auth.User, int64, error)
	GetByID(id string) (*auth.User, error)
	UpdateRole(userID string, role auth.Role) error
	Delete(userID string) error
}

type AuditRecorder interface {
	Record(ctx context.Context, userID, action, resource string, details map[string]any, ip, ua string)
}

type ChangeRoleDTO struct {
	Role auth.Role `json:"role"`
}

func (d ChangeRoleDTO) Validate() error {
	if !d.Role.Valid() {
		return internal.NewValidationError("invalid role", internal.ErrCodeInvalidRole)
	}
	return nil
}

type UserList struct {
	Users []*auth.User `json:"users"`
	Total int64        `json:"total"`
}

// Service covers account administration: listing accounts, role changes and
// account removal. Login and credential flows live in the auth package.
type Service struct {
	repo   Repository
	bus    *events.EventBus
	audit  AuditRecorder
	logger *slog.Logger
}

func NewService(repo Repository, bus *events.EventBus, audit AuditRecorder, logger *slog.Logger) *Service {
	return &Service{repo: repo, bus: bus, audit: audit, logger: logger}
}

func (s *Service) ListUsers(ctx context.Context, limit, offset int) (*UserList, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	users, total, err := s.repo.List(limit, offset)
	if err != nil {
		return nil, internal.NewInternalError("failed to list users", err)
	}
	return &UserList{Users: users, Total: total}, nil
}

// ChangeRole reassigns an account's role. Only a super admin may grant the
// super_admin role.
func (s *Service) ChangeRole(ctx context.Context, actor *auth.User, userID string, dto ChangeRoleDTO) (*auth.User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if dto.Role == auth.RoleSuperAdmin && actor.Role != auth.RoleSuperAdmin {
		return nil, internal.NewForbiddenError("Only a super admin can grant the super admin role", internal.ErrCodeInsufficientPerms)
	}

	target, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	oldRole := target.Role
	if err := s.repo.UpdateRole(userID, dto.Role); err != nil {
		return nil, internal.NewInternalError("failed to update role", err)
	}
	target.Role = dto.Role

	s.bus.Publish(ctx, events.NewRoleChangedEvent(target.Email, target.Name, string(oldRole), string(dto.Role), actor.Email))
	s.audit.Record(ctx, actor.ID, "change_role", "users",
		map[string]any{"target_user_id": userID, "old_role": oldRole, "new_role": dto.Role}, "", "")

	s.logger.Info("user role changed", "target", userID, "old_role", oldRole, "new_role", dto.Role, "actor", actor.ID)
	return target, nil
}

// DeleteUser removes an account. Actors cannot delete themselves; that path
// is rejected before any lookup happens.
func (s *Service) DeleteUser(ctx context.Context, actor *auth.User, userID string) error {
	if actor.ID == userID {
		return internal.NewForbiddenError("You cannot delete your own account", internal.ErrCodeSelfDeletion)
	}

	target, err := s.repo.GetByID(userID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(userID); err != nil {
		return internal.NewInternalError("failed to delete user", err)
	}

	s.audit.Record(ctx, actor.ID, "delete_user", "users",
		map[string]any{"target_user_id": userID, "email": target.Email}, "", "")

	s.logger.Info("user deleted", "target", userID, "actor", actor.ID)
	return nil
}
