package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"eventrewards/internal/domain"

	"github.com/google/uuid"
)

// creditOrder is the order in which per-kind credits are applied.
var creditOrder = []domain.RewardKind{domain.RewardKindPoint, domain.RewardKindDrawCount}

type rewardService struct {
	eventRepo  domain.EventRepository
	rewardRepo domain.RewardRepository
	ledger     domain.RewardRequestRepository
	identity   domain.IdentityGateway
	logger     *slog.Logger
	now        func() time.Time
	newID      func() string
}

// NewRewardService returns the reward issuance flow. It sets no deadline of its own;
// the identity gateway's transport bounds every remote call.
func NewRewardService(eventRepo domain.EventRepository,
	rewardRepo domain.RewardRepository,
	ledger domain.RewardRequestRepository,
	identity domain.IdentityGateway,
	logger *slog.Logger,
) domain.RewardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &rewardService{
		eventRepo:  eventRepo,
		rewardRepo: rewardRepo,
		ledger:     ledger,
		identity:   identity,
		logger:     logger,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

func (s *rewardService) RequestReward(ctx context.Context, eventID, userID string) (domain.RequestStatus, error) {
	log := s.logger.With("event_id", eventID, "user_id", userID)

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", s.stop(ctx, log, domain.PhaseRejected, domain.StepEventLookup, domain.ErrEventNotFound)
		}
		return "", s.stop(ctx, log, domain.PhaseAborted, domain.StepEventLookup, fmt.Errorf("get event: %w", err))
	}
	if !event.IsActive() {
		return "", s.stop(ctx, log, domain.PhaseRejected, domain.StepEventLookup,
			fmt.Errorf("%w: event is %s", domain.ErrEventNotFound, event.Status))
	}

	rewards, err := s.rewardRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return "", s.stop(ctx, log, domain.PhaseAborted, domain.StepRewardLookup, fmt.Errorf("list rewards: %w", err))
	}
	if len(rewards) == 0 {
		return "", s.stop(ctx, log, domain.PhaseRejected, domain.StepRewardLookup, domain.ErrNoRewardConfigured)
	}

	stats, err := s.identity.FetchStats(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", s.stop(ctx, log, domain.PhaseRejected, domain.StepStatsFetch, err)
		}
		if !errors.Is(err, domain.ErrIdentityUnavailable) {
			err = fmt.Errorf("%w: %w", domain.ErrIdentityUnavailable, err)
		}
		return "", s.stop(ctx, log, domain.PhaseAborted, domain.StepStatsFetch, err)
	}

	status := domain.RequestStatusFailed
	if domain.Evaluate(event.Goal, *stats) {
		dup, err := s.ledger.HasSuccess(ctx, eventID, userID)
		if err != nil {
			return "", s.stop(ctx, log, domain.PhaseAborted, domain.StepDuplicateCheck, fmt.Errorf("check prior success: %w", err))
		}
		status = domain.RequestStatusSuccess
		if dup {
			status = domain.RequestStatusDuplicate
		}
	}

	err = s.ledger.AppendAll(ctx, s.ledgerRows(eventID, userID, rewards, status))
	if errors.Is(err, domain.ErrDuplicateSuccess) && status == domain.RequestStatusSuccess {
		// A concurrent attempt committed its success rows after our duplicate check.
		log.InfoContext(ctx, "success write conflicted, recording duplicate")
		status = domain.RequestStatusDuplicate
		err = s.ledger.AppendAll(ctx, s.ledgerRows(eventID, userID, rewards, status))
	}
	if err != nil {
		return "", s.stop(ctx, log, domain.PhaseAborted, domain.StepLedgerWrite, fmt.Errorf("write ledger: %w", err))
	}

	if status != domain.RequestStatusSuccess {
		log.InfoContext(ctx, "reward request recorded", "step", domain.StepDone, "status", status, "rows", len(rewards))
		return status, nil
	}

	totals := sumByKind(rewards)
	for _, kind := range creditOrder {
		qty := totals[kind]
		if qty == 0 {
			continue
		}
		credit := domain.Credit{}
		switch kind {
		case domain.RewardKindPoint:
			credit.Point = qty
		case domain.RewardKindDrawCount:
			credit.DrawCount = qty
		}
		if err := s.identity.ApplyCredit(ctx, userID, credit); err != nil {
			return status, s.stop(ctx, log, domain.PhaseCreditFailed, domain.StepCreditApply,
				fmt.Errorf("%w: %s: %w", domain.ErrCreditNotApplied, kind, err))
		}
	}

	log.InfoContext(ctx, "reward issued", "step", domain.StepDone, "status", status,
		"point", totals[domain.RewardKindPoint], "draw_count", totals[domain.RewardKindDrawCount])
	return status, nil
}

func (s *rewardService) ledgerRows(eventID, userID string, rewards []*domain.Reward, status domain.RequestStatus) []*domain.RewardRequest {
	createdAt := s.now()
	rows := make([]*domain.RewardRequest, 0, len(rewards))
	for _, rw := range rewards {
		rows = append(rows, domain.NewRewardRequest(s.newID(), eventID, rw.ID, userID, status, createdAt))
	}
	return rows
}

func (s *rewardService) stop(ctx context.Context, log *slog.Logger, phase domain.IssuancePhase, step domain.IssuanceStep, err error) error {
	level := slog.LevelInfo
	if phase != domain.PhaseRejected {
		level = slog.LevelError
	}
	log.Log(ctx, level, "reward request stopped", "phase", phase, "step", step, "error", err)
	return &domain.IssuanceError{Phase: phase, Step: step, Err: err}
}

func sumByKind(rewards []*domain.Reward) map[domain.RewardKind]int {
	totals := make(map[domain.RewardKind]int, len(creditOrder))
	for _, rw := range rewards {
		totals[rw.Kind] += rw.Quantity
	}
	return totals
}
