package domain

import (
	"context"
	"time"
)

// Role is an application role carried in bearer tokens.
type Role string

const (
	RoleUser     Role = "user"
	RoleOperator Role = "operator"
	RoleAuditor  Role = "auditor"
	RoleAdmin    Role = "admin"
	// RoleService identifies internal service-to-service callers.
	RoleService Role = "service"
)

// IsStaff reports whether the role may see inactive events and every ledger row.
func (r Role) IsStaff() bool {
	return r == RoleOperator || r == RoleAuditor || r == RoleAdmin
}

// Assignable reports whether r can be stored on a user record.
func (r Role) Assignable() bool {
	return r == RoleUser || r.IsStaff()
}

// User is the identity service's record of a user's reward-relevant counters.
type User struct {
	ID              string   `json:"id"`
	Email           string   `json:"email"`
	Role            Role     `json:"role"`
	Point           int      `json:"point"`
	DrawCount       int      `json:"draw_count"`
	AttendanceCount int      `json:"attendance_count"`
	InviteList      []string `json:"invite_list"`
	// TokenVersion is bumped on every role change so older tokens can be told apart.
	TokenVersion int       `json:"token_version"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Stats returns the achievement counters of u.
func (u *User) Stats() UserAchievementStats {
	return UserAchievementStats{
		AttendanceCount: u.AttendanceCount,
		InviteCount:     len(u.InviteList),
		Point:           u.Point,
		DrawCount:       u.DrawCount,
	}
}

// UserProfile is what a user sees about themselves.
type UserProfile struct {
	ID              string `json:"id"`
	Email           string `json:"email"`
	Role            Role   `json:"role"`
	Point           int    `json:"point"`
	DrawCount       int    `json:"draw_count"`
	AttendanceCount int    `json:"attendance_count"`
	InviteCount     int    `json:"invite_count"`
}

func (u *User) Profile() *UserProfile {
	return &UserProfile{
		ID:              u.ID,
		Email:           u.Email,
		Role:            u.Role,
		Point:           u.Point,
		DrawCount:       u.DrawCount,
		AttendanceCount: u.AttendanceCount,
		InviteCount:     len(u.InviteList),
	}
}

// Claims is the authenticated principal extracted from a bearer token.
type Claims struct {
	Subject string
	Role    Role
}

// TokenIssuer issues signed bearer tokens.
type TokenIssuer interface {
	Issue(subject string, role Role, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*Claims, error)
}

// UserRepository defines the identity service's user storage.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*User, error)
	// IncrementPoint and IncrementDrawCount are separate statements; they do not share a transaction.
	IncrementPoint(ctx context.Context, id string, delta int) error
	IncrementDrawCount(ctx context.Context, id string, delta int) error
	// UpdateRole sets the role and increments token_version in one statement.
	UpdateRole(ctx context.Context, id string, role Role) error
}

// CreditService is the identity service's stats and credit API.
type CreditService interface {
	GetStats(ctx context.Context, userID string) (*UserAchievementStats, error)
	ApplyCredit(ctx context.Context, userID string, credit Credit) (*UserAchievementStats, error)
}

// UserService is the identity service's user-facing account API.
type UserService interface {
	GetProfile(ctx context.Context, userID string) (*UserProfile, error)
	UpdateRole(ctx context.Context, userID string, role Role) (*UserProfile, error)
}
