package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across services.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")

	// ErrDuplicateReward is returned when an event already has a reward of the same kind.
	ErrDuplicateReward = errors.New("reward of this type already exists for event")

	ErrRoleAlreadySet = errors.New("user already has this role")
)

// Reward issuance errors. Callers match them with errors.Is.
var (
	// ErrEventNotFound covers both an absent event and an inactive one.
	ErrEventNotFound       = errors.New("event not found")
	ErrNoRewardConfigured  = errors.New("no reward configured for event")
	ErrIdentityUnavailable = errors.New("identity service unavailable")
	ErrUserNotFound        = errors.New("user not found")

	// ErrDuplicateSuccess is returned by the ledger when a success row already
	// exists for the same (event, user, reward).
	ErrDuplicateSuccess = errors.New("reward already issued")

	// ErrCreditNotApplied means the ledger recorded success but crediting the user failed.
	ErrCreditNotApplied = errors.New("reward recorded but credit not applied")
)

// IssuancePhase classifies how a reward issuance attempt stopped.
type IssuancePhase string

const (
	// PhaseRejected is a business rule failure; nothing was written.
	PhaseRejected IssuancePhase = "rejected"
	// PhaseAborted is a dependency failure before the outcome was recorded.
	PhaseAborted IssuancePhase = "aborted"
	// PhaseCreditFailed means the success row is persisted but the credit did not land.
	PhaseCreditFailed IssuancePhase = "credit_failed"
)

// IssuanceStep names a step of the reward issuance flow.
type IssuanceStep string

const (
	StepEventLookup    IssuanceStep = "event_lookup"
	StepRewardLookup   IssuanceStep = "reward_lookup"
	StepStatsFetch     IssuanceStep = "stats_fetch"
	StepGoalCheck      IssuanceStep = "goal_check"
	StepDuplicateCheck IssuanceStep = "duplicate_check"
	StepLedgerWrite    IssuanceStep = "ledger_write"
	StepCreditApply    IssuanceStep = "credit_apply"
	StepDone           IssuanceStep = "done"
)

// IssuanceError reports where and why a reward issuance attempt stopped.
type IssuanceError struct {
	Phase IssuancePhase
	Step  IssuanceStep
	Err   error
}

func (e *IssuanceError) Error() string {
	return fmt.Sprintf("reward issuance %s at %s: %v", e.Phase, e.Step, e.Err)
}

func (e *IssuanceError) Unwrap() error {
	return e.Err
}

// IssuancePhaseOf returns the phase of err if it is an IssuanceError.
func IssuancePhaseOf(err error) (IssuancePhase, bool) {
	var ie *IssuanceError
	if errors.As(err, &ie) {
		return ie.Phase, true
	}
	return "", false
}
