package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// EventStatus is the lifecycle status of an event.
type EventStatus string

const (
	EventStatusActive   EventStatus = "active"
	EventStatusInactive EventStatus = "inactive"
)

// Valid reports whether s is a known status.
func (s EventStatus) Valid() bool {
	return s == EventStatusActive || s == EventStatusInactive
}

// Event is a reward campaign with a goal and a set of rewards.
type Event struct {
	ID        string
	Title     string
	StartTime time.Time
	EndTime   time.Time
	Status    EventStatus
	Goal      Goal
	Rewards   []*Reward
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewEvent returns a new Event with the given fields. ID is typically set by the repository on create.
func NewEvent(title string, startTime, endTime time.Time, status EventStatus, goal Goal, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Title:     title,
		StartTime: startTime,
		EndTime:   endTime,
		Status:    status,
		Goal:      goal,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// IsActive reports whether the event accepts reward requests.
func (e *Event) IsActive() bool {
	return e.Status == EventStatusActive
}

type eventJSON struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	StartTime time.Time   `json:"start_time"`
	EndTime   time.Time   `json:"end_time"`
	Status    EventStatus `json:"status"`
	Goal      *GoalSpec   `json:"goal"`
	Rewards   []*Reward   `json:"rewards"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// MarshalJSON encodes the goal in its serialized form.
func (e Event) MarshalJSON() ([]byte, error) {
	out := eventJSON{
		ID:        e.ID,
		Title:     e.Title,
		StartTime: e.StartTime,
		EndTime:   e.EndTime,
		Status:    e.Status,
		Rewards:   e.Rewards,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
	if e.Goal != nil {
		spec := SpecOf(e.Goal)
		out.Goal = &spec
	}
	if out.Rewards == nil {
		out.Rewards = []*Reward{}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes an event and validates its goal.
func (e *Event) UnmarshalJSON(data []byte) error {
	var in eventJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*e = Event{
		ID:        in.ID,
		Title:     in.Title,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
		Status:    in.Status,
		Rewards:   in.Rewards,
		CreatedAt: in.CreatedAt,
		UpdatedAt: in.UpdatedAt,
	}
	if in.Goal != nil {
		g, err := in.Goal.Goal()
		if err != nil {
			return fmt.Errorf("decode event goal: %w", err)
		}
		e.Goal = g
	}
	return nil
}

// EventUpdate holds optional event changes. Nil fields are left unchanged.
type EventUpdate struct {
	Title     *string
	StartTime *time.Time
	EndTime   *time.Time
	Status    *EventStatus
	Goal      Goal
}

// IsEmpty reports whether the update changes nothing.
func (u EventUpdate) IsEmpty() bool {
	return u.Title == nil && u.StartTime == nil && u.EndTime == nil && u.Status == nil && u.Goal == nil
}

// RewardKind is what a reward credits to the user.
type RewardKind string

const (
	RewardKindPoint     RewardKind = "point"
	RewardKindDrawCount RewardKind = "drawCount"
)

// Valid reports whether k is a known reward kind.
func (k RewardKind) Valid() bool {
	return k == RewardKindPoint || k == RewardKindDrawCount
}

// Reward is a quantity of points or draw counts attached to an event.
type Reward struct {
	ID        string     `json:"id"`
	EventID   string     `json:"event_id"`
	Kind      RewardKind `json:"type"`
	Quantity  int        `json:"quantity"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewReward returns a new Reward. ID is typically set by the repository on create.
func NewReward(eventID string, kind RewardKind, quantity int, createdAt, updatedAt time.Time) *Reward {
	return &Reward{
		EventID:   eventID,
		Kind:      kind,
		Quantity:  quantity,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	// List returns events newest first; a nil status lists every event.
	List(ctx context.Context, status *EventStatus) ([]*Event, error)
	Update(ctx context.Context, id string, upd EventUpdate) (*Event, error)
}

// RewardRepository defines the interface for reward storage.
type RewardRepository interface {
	Create(ctx context.Context, reward *Reward) error
	GetByID(ctx context.Context, id string) (*Reward, error)
	// ListByEventID returns the event's rewards in creation order.
	ListByEventID(ctx context.Context, eventID string) ([]*Reward, error)
	UpdateQuantity(ctx context.Context, id string, quantity int) (*Reward, error)
	Delete(ctx context.Context, id string) error
}

// EventService defines event and reward administration plus ledger queries.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event) error
	// ListEvents returns all events for staff roles and only active events for users.
	ListEvents(ctx context.Context, role Role) ([]*Event, error)
	GetEvent(ctx context.Context, eventID string) (*Event, error)
	UpdateEvent(ctx context.Context, eventID string, upd EventUpdate) (*Event, error)
	AddReward(ctx context.Context, eventID string, kind RewardKind, quantity int) (*Reward, error)
	UpdateReward(ctx context.Context, eventID, rewardID string, quantity int) (*Reward, error)
	RemoveReward(ctx context.Context, eventID, rewardID string) error
	ListRewardRequests(ctx context.Context, filter RewardRequestFilter, page PaginationParams) ([]*RewardRequest, error)
	ListUserRewardRequests(ctx context.Context, userID string, page PaginationParams) ([]*RewardRequest, error)
}
