package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// User is the account record behind every authenticated request. Employees
// (the HR records) live in the employee package; this is login identity.
type User struct {
	ID            string     `json:"id" gorm:"primaryKey"`
	Email         string     `json:"email" gorm:"uniqueIndex;not null"`
	Name          string     `json:"name"`
	PasswordHash  string     `json:"-" gorm:"column:password_hash;not null"`
	Role          Role       `json:"role" gorm:"not null"`
	EmailVerified bool       `json:"email_verified"`
	LastLogin     *time.Time `json:"last_login,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (User) TableName() string { return "users" }

func (u *User) HasPermission(p Permission) bool {
	return RoleHasPermission(u.Role, p)
}

// Invitation state machine: created -> accepted, or created -> expired.
// Expiry is enforced at read time against expires_at; nothing sweeps rows.
type Invitation struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"index;not null"`
	Role      Role      `json:"role" gorm:"not null"`
	InvitedBy string    `json:"invited_by"`
	Token     string    `json:"-" gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time `json:"expires_at"`
	Accepted  bool      `json:"accepted"`
	CreatedAt time.Time `json:"created_at"`
}

func (Invitation) TableName() string { return "user_invitations" }

type PasswordResetToken struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"index;not null"`
	Token     string    `json:"-" gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time `json:"expires_at"`
	Used      bool      `json:"used"`
	CreatedAt time.Time `json:"created_at"`
}

func (PasswordResetToken) TableName() string { return "password_resets" }

type EmailVerification struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"index;not null"`
	Token     string    `json:"-" gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time `json:"expires_at"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"created_at"`
}

func (EmailVerification) TableName() string { return "email_verifications" }

// Token is the login response payload.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        *User  `json:"user"`
}

// Claims carries the authenticated subject email, matching the wire format
// the frontend already depends on.
type Claims struct {
	jwt.RegisteredClaims
}

type TokenGenerator interface {
	GenerateAccessToken(email string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type ctxKey string

const ContextUserKey ctxKey = "user"

func UserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(ContextUserKey).(*User)
	return u, ok
}

func ContextWithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, ContextUserKey, u)
}
