package domain

import "fmt"

// GoalKind is the wire name of a goal variant.
type GoalKind string

const (
	GoalKindAttendance GoalKind = "attendance"
	GoalKindInvite     GoalKind = "invite"
)

// Goal is the condition a user must meet to receive an event's rewards.
// The set of variants is closed: only types in this package implement it.
type Goal interface {
	Kind() GoalKind
	Threshold() int
	Description() string
	achievedBy(stats UserAchievementStats) bool
}

// AttendanceGoal is met once the user's attendance count reaches the threshold.
type AttendanceGoal struct {
	threshold   int
	description string
}

func (g AttendanceGoal) Kind() GoalKind      { return GoalKindAttendance }
func (g AttendanceGoal) Threshold() int      { return g.threshold }
func (g AttendanceGoal) Description() string { return g.description }

func (g AttendanceGoal) achievedBy(stats UserAchievementStats) bool {
	return stats.AttendanceCount >= g.threshold
}

// InviteGoal is met once the user has invited at least threshold users.
type InviteGoal struct {
	threshold   int
	description string
}

func (g InviteGoal) Kind() GoalKind      { return GoalKindInvite }
func (g InviteGoal) Threshold() int      { return g.threshold }
func (g InviteGoal) Description() string { return g.description }

func (g InviteGoal) achievedBy(stats UserAchievementStats) bool {
	return stats.InviteCount >= g.threshold
}

// NewGoal builds a goal variant. Unknown kinds and thresholds below 1 are rejected here,
// so every Goal value in the system is valid.
func NewGoal(kind GoalKind, threshold int, description string) (Goal, error) {
	if threshold < 1 {
		return nil, fmt.Errorf("%w: goal count must be at least 1", ErrInvalidInput)
	}
	switch kind {
	case GoalKindAttendance:
		return AttendanceGoal{threshold: threshold, description: description}, nil
	case GoalKindInvite:
		return InviteGoal{threshold: threshold, description: description}, nil
	default:
		return nil, fmt.Errorf("%w: unknown goal type %q", ErrInvalidInput, kind)
	}
}

// Evaluate reports whether stats satisfy goal. It has no side effects.
func Evaluate(goal Goal, stats UserAchievementStats) bool {
	return goal.achievedBy(stats)
}

// GoalSpec is the serialized form of a Goal.
type GoalSpec struct {
	Type        GoalKind `json:"type"`
	Count       int      `json:"count"`
	Description string   `json:"description,omitempty"`
}

// SpecOf returns the serialized form of g.
func SpecOf(g Goal) GoalSpec {
	return GoalSpec{Type: g.Kind(), Count: g.Threshold(), Description: g.Description()}
}

// Goal converts the spec back into a validated Goal.
func (s GoalSpec) Goal() (Goal, error) {
	return NewGoal(s.Type, s.Count, s.Description)
}
