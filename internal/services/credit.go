package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"eventrewards/internal/domain"
)

type creditService struct {
	userRepo       domain.UserRepository
	emailService   domain.EmailService
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewCreditService returns the identity service's stats and credit API.
// emailService may be nil, in which case no notification is sent.
func NewCreditService(userRepo domain.UserRepository, emailService domain.EmailService, logger *slog.Logger, timeout time.Duration) domain.CreditService {
	if logger == nil {
		logger = slog.Default()
	}
	return &creditService{
		userRepo:       userRepo,
		emailService:   emailService,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *creditService) GetStats(ctx context.Context, userID string) (*domain.UserAchievementStats, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	stats := user.Stats()
	return &stats, nil
}

func (s *creditService) ApplyCredit(ctx context.Context, userID string, credit domain.Credit) (*domain.UserAchievementStats, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if credit.Point < 0 || credit.DrawCount < 0 {
		return nil, fmt.Errorf("%w: credit deltas must not be negative", domain.ErrInvalidInput)
	}
	if credit.IsZero() {
		return nil, fmt.Errorf("%w: credit must change point or draw_count", domain.ErrInvalidInput)
	}

	// Point and draw count are two independent increments.
	if credit.Point > 0 {
		if err := s.userRepo.IncrementPoint(ctx, userID, credit.Point); err != nil {
			return nil, wrapUserErr("increment point", err)
		}
	}
	if credit.DrawCount > 0 {
		if err := s.userRepo.IncrementDrawCount(ctx, userID, credit.DrawCount); err != nil {
			return nil, wrapUserErr("increment draw count", err)
		}
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, wrapUserErr("reload user", err)
	}
	stats := user.Stats()
	s.logger.InfoContext(ctx, "credit applied", "user_id", userID, "point", credit.Point, "draw_count", credit.DrawCount)

	if s.emailService != nil && user.Email != "" {
		data := &domain.RewardCreditedEmailData{
			Email:          user.Email,
			Point:          credit.Point,
			DrawCount:      credit.DrawCount,
			TotalPoint:     stats.Point,
			TotalDrawCount: stats.DrawCount,
		}
		if err := s.emailService.SendRewardCredited(ctx, data); err != nil {
			s.logger.WarnContext(ctx, "reward credited email not sent", "user_id", userID, "error", err)
		}
	}
	return &stats, nil
}

func wrapUserErr(op string, err error) error {
	if errors.Is(err, domain.ErrUserNotFound) {
		return domain.ErrUserNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
