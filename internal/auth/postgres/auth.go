package postgres

import (
	"time"

	"gorm.io/gorm"

	"github.com/brandingpioneers/hr-management/internal"
	"github.com/brandingpioneers/hr-management/internal/auth"
)

// AuthRepository implements the auth.Repository interface using GORM
type AuthRepository struct {
	db *gorm.DB
}

// NewAuthRepository creates a new auth repository
func NewAuthRepository(db *gorm.DB) auth.Repository {
	return &AuthRepository{db: db}
}

func (r *AuthRepository) GetUserByEmail(email string) (*auth.User, error) {
	var user auth.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *AuthRepository) GetUserByID(id string) (*auth.User, error) {
	var user auth.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *AuthRepository) CreateUser(u *auth.User) error {
	return r.db.Create(u).Error
}

func (r *AuthRepository) UpdateUserPassword(userID, passwordHash string) error {
	return r.db.Model(&auth.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"password_hash": passwordHash,
			"updated_at":    time.Now(),
		}).Error
}

func (r *AuthRepository) UpdateLastLogin(userID string, at time.Time) error {
	return r.db.Model(&auth.User{}).
		Where("id = ?", userID).
		Update("last_login", at).Error
}

func (r *AuthRepository) MarkEmailVerified(userID string) error {
	return r.db.Model(&auth.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"email_verified": true,
			"updated_at":     time.Now(),
		}).Error
}

func (r *AuthRepository) CreateInvitation(inv *auth.Invitation) error {
	return r.db.Create(inv).Error
}

// GetPendingInvitation returns the unaccepted, unexpired invitation for an
// email, if any. Expired rows are never returned; they stay in place as an
// audit trail.
func (r *AuthRepository) GetPendingInvitation(email string, now time.Time) (*auth.Invitation, error) {
	var inv auth.Invitation
	err := r.db.Where("email = ? AND accepted = ? AND expires_at > ?", email, false, now).
		First(&inv).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &inv, nil
}

func (r *AuthRepository) GetInvitationByToken(token string, now time.Time) (*auth.Invitation, error) {
	var inv auth.Invitation
	err := r.db.Where("token = ? AND accepted = ? AND expires_at > ?", token, false, now).
		First(&inv).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &inv, nil
}

func (r *AuthRepository) MarkInvitationAccepted(id string) error {
	return r.db.Model(&auth.Invitation{}).
		Where("id = ?", id).
		Update("accepted", true).Error
}

func (r *AuthRepository) CreatePasswordReset(t *auth.PasswordResetToken) error {
	return r.db.Create(t).Error
}

func (r *AuthRepository) GetActivePasswordReset(token string, now time.Time) (*auth.PasswordResetToken, error) {
	var reset auth.PasswordResetToken
	err := r.db.Where("token = ? AND used = ? AND expires_at > ?", token, false, now).
		First(&reset).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &reset, nil
}

func (r *AuthRepository) InvalidatePasswordResets(userID string) error {
	return r.db.Model(&auth.PasswordResetToken{}).
		Where("user_id = ? AND used = ?", userID, false).
		Update("used", true).Error
}

func (r *AuthRepository) CreateEmailVerification(v *auth.EmailVerification) error {
	return r.db.Create(v).Error
}

func (r *AuthRepository) GetActiveEmailVerification(token string, now time.Time) (*auth.EmailVerification, error) {
	var verification auth.EmailVerification
	err := r.db.Where("token = ? AND verified = ? AND expires_at > ?", token, false, now).
		First(&verification).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &verification, nil
}

func (r *AuthRepository) MarkEmailVerificationVerified(id string) error {
	return r.db.Model(&auth.EmailVerification{}).
		Where("id = ?", id).
		Update("verified", true).Error
}
