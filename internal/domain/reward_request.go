package domain

import (
	"context"
	"time"
)

// RequestStatus is the recorded outcome of one reward issuance attempt.
type RequestStatus string

const (
	RequestStatusSuccess   RequestStatus = "success"
	RequestStatusFailed    RequestStatus = "failed"
	RequestStatusDuplicate RequestStatus = "duplicate"
)

// Valid reports whether s is a known outcome.
func (s RequestStatus) Valid() bool {
	switch s {
	case RequestStatusSuccess, RequestStatusFailed, RequestStatusDuplicate:
		return true
	}
	return false
}

// RewardRequest is an immutable ledger row: one per reward per issuance attempt.
// UserID references a user owned by the identity service and is never joined.
type RewardRequest struct {
	ID        string        `json:"id"`
	EventID   string        `json:"event_id"`
	RewardID  string        `json:"reward_id"`
	UserID    string        `json:"user_id"`
	Status    RequestStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

// NewRewardRequest returns a ledger row for a single reward of an attempt.
func NewRewardRequest(id, eventID, rewardID, userID string, status RequestStatus, createdAt time.Time) *RewardRequest {
	return &RewardRequest{
		ID:        id,
		EventID:   eventID,
		RewardID:  rewardID,
		UserID:    userID,
		Status:    status,
		CreatedAt: createdAt,
	}
}

// RewardRequestFilter selects ledger rows. EventID takes precedence over Status.
type RewardRequestFilter struct {
	EventID string
	Status  RequestStatus
}

// RewardRequestRepository is the append-only reward request ledger.
// List methods return rows newest first; a zero PageSize means no limit.
type RewardRequestRepository interface {
	Append(ctx context.Context, req *RewardRequest) error
	// AppendAll writes every row of one attempt atomically. It returns ErrDuplicateSuccess,
	// and writes nothing, when a success row for the same (event, user, reward) exists.
	AppendAll(ctx context.Context, reqs []*RewardRequest) error
	HasSuccess(ctx context.Context, eventID, userID string) (bool, error)
	ListByEventID(ctx context.Context, eventID string, page PaginationParams) ([]*RewardRequest, error)
	ListByUserID(ctx context.Context, userID string, page PaginationParams) ([]*RewardRequest, error)
	ListByStatus(ctx context.Context, status RequestStatus, page PaginationParams) ([]*RewardRequest, error)
	ListAll(ctx context.Context, page PaginationParams) ([]*RewardRequest, error)
}

// RewardService runs the reward issuance flow for a user.
type RewardService interface {
	// RequestReward returns the recorded outcome. A non-nil error with RequestStatusSuccess
	// means the success row is persisted but the credit was not applied.
	RequestReward(ctx context.Context, eventID, userID string) (RequestStatus, error)
}
