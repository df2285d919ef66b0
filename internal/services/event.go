package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventrewards/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	rewardRepo     domain.RewardRepository
	ledger         domain.RewardRequestRepository
	contextTimeout time.Duration
}

func NewEventService(eventRepo domain.EventRepository,
	rewardRepo domain.RewardRepository,
	ledger domain.RewardRequestRepository,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		rewardRepo:     rewardRepo,
		ledger:         ledger,
		contextTimeout: timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event.Title = strings.TrimSpace(event.Title)
	if event.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if event.Goal == nil {
		return fmt.Errorf("%w: goal is required", domain.ErrInvalidInput)
	}
	if !event.EndTime.After(event.StartTime) {
		return fmt.Errorf("%w: end_time must be after start_time", domain.ErrInvalidInput)
	}
	if event.Status == "" {
		event.Status = domain.EventStatusInactive
	}
	if !event.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, event.Status)
	}

	event.CreatedAt = time.Now()
	event.UpdatedAt = time.Now()
	event.Rewards = []*domain.Reward{}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (s *eventService) ListEvents(ctx context.Context, role domain.Role) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var status *domain.EventStatus
	if !role.IsStaff() {
		active := domain.EventStatusActive
		status = &active
	}
	events, err := s.eventRepo.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *eventService) GetEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	rewards, err := s.rewardRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list rewards: %w", err)
	}
	if rewards == nil {
		rewards = []*domain.Reward{}
	}
	event.Rewards = rewards
	return event, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, eventID string, upd domain.EventUpdate) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if upd.Title != nil {
		title := strings.TrimSpace(*upd.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", domain.ErrInvalidInput)
		}
		upd.Title = &title
	}
	if upd.Status != nil && !upd.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, *upd.Status)
	}

	current, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	start, end := current.StartTime, current.EndTime
	if upd.StartTime != nil {
		start = *upd.StartTime
	}
	if upd.EndTime != nil {
		end = *upd.EndTime
	}
	if !end.After(start) {
		return nil, fmt.Errorf("%w: end_time must be after start_time", domain.ErrInvalidInput)
	}

	event, err := s.eventRepo.Update(ctx, eventID, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	rewards, err := s.rewardRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list rewards: %w", err)
	}
	event.Rewards = rewards
	return event, nil
}

func (s *eventService) AddReward(ctx context.Context, eventID string, kind domain.RewardKind, quantity int) (*domain.Reward, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown reward type %q", domain.ErrInvalidInput, kind)
	}
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidInput)
	}
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	now := time.Now()
	reward := domain.NewReward(eventID, kind, quantity, now, now)
	if err := s.rewardRepo.Create(ctx, reward); err != nil {
		if errors.Is(err, domain.ErrDuplicateReward) {
			return nil, domain.ErrDuplicateReward
		}
		return nil, fmt.Errorf("create reward: %w", err)
	}
	return reward, nil
}

// rewardOfEvent loads a reward and hides rewards that belong to another event.
func (s *eventService) rewardOfEvent(ctx context.Context, eventID, rewardID string) (*domain.Reward, error) {
	reward, err := s.rewardRepo.GetByID(ctx, rewardID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get reward: %w", err)
	}
	if reward.EventID != eventID {
		return nil, domain.ErrNotFound
	}
	return reward, nil
}

func (s *eventService) UpdateReward(ctx context.Context, eventID, rewardID string, quantity int) (*domain.Reward, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidInput)
	}
	if _, err := s.rewardOfEvent(ctx, eventID, rewardID); err != nil {
		return nil, err
	}
	reward, err := s.rewardRepo.UpdateQuantity(ctx, rewardID, quantity)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update reward: %w", err)
	}
	return reward, nil
}

func (s *eventService) RemoveReward(ctx context.Context, eventID, rewardID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.rewardOfEvent(ctx, eventID, rewardID); err != nil {
		return err
	}
	if err := s.rewardRepo.Delete(ctx, rewardID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete reward: %w", err)
	}
	return nil
}

func (s *eventService) ListRewardRequests(ctx context.Context, filter domain.RewardRequestFilter, page domain.PaginationParams) ([]*domain.RewardRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var (
		reqs []*domain.RewardRequest
		err  error
	)
	switch {
	case filter.EventID != "":
		reqs, err = s.ledger.ListByEventID(ctx, filter.EventID, page)
	case filter.Status != "":
		if !filter.Status.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, filter.Status)
		}
		reqs, err = s.ledger.ListByStatus(ctx, filter.Status, page)
	default:
		reqs, err = s.ledger.ListAll(ctx, page)
	}
	if err != nil {
		return nil, fmt.Errorf("list reward requests: %w", err)
	}
	if reqs == nil {
		reqs = []*domain.RewardRequest{}
	}
	return reqs, nil
}

func (s *eventService) ListUserRewardRequests(ctx context.Context, userID string, page domain.PaginationParams) ([]*domain.RewardRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	reqs, err := s.ledger.ListByUserID(ctx, userID, page)
	if err != nil {
		return nil, fmt.Errorf("list user reward requests: %w", err)
	}
	if reqs == nil {
		reqs = []*domain.RewardRequest{}
	}
	return reqs, nil
}
