package domain

import "context"

// UserAchievementStats are the counters the identity service tracks for a user.
type UserAchievementStats struct {
	AttendanceCount int `json:"attendance_count"`
	InviteCount     int `json:"invite_count"`
	Point           int `json:"point"`
	DrawCount       int `json:"draw_count"`
}

// Credit is an increment of a user's point and draw-count balances.
// Each non-zero field is applied as its own increment.
type Credit struct {
	Point     int `json:"point,omitempty"`
	DrawCount int `json:"draw_count,omitempty"`
}

// IsZero reports whether the credit changes nothing.
func (c Credit) IsZero() bool {
	return c.Point == 0 && c.DrawCount == 0
}

// Add returns the sum of both credits.
func (c Credit) Add(o Credit) Credit {
	return Credit{Point: c.Point + o.Point, DrawCount: c.DrawCount + o.DrawCount}
}

// IdentityGateway is the event service's view of the identity service.
// Transport failures and timeouts are reported as ErrIdentityUnavailable.
type IdentityGateway interface {
	// FetchStats returns ErrUserNotFound when the identity service has no such user.
	FetchStats(ctx context.Context, userID string) (*UserAchievementStats, error)
	ApplyCredit(ctx context.Context, userID string, credit Credit) error
}
