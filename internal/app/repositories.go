package app

import (
	"database/sql"
	"log/slog"
	"time"

	"eventrewards/internal/domain"
	"eventrewards/internal/repository/postgres"
	rediscache "eventrewards/internal/repository/redis"

	"github.com/redis/go-redis/v9"
)

// EventRepositories groups the event service's stores.
//
// Events and Rewards serve the read API and may sit behind the Redis cache.
// SagaEvents and SagaRewards always read Postgres: the eligibility check in the
// issuance saga must see a deactivation or stock change as soon as it commits.
type EventRepositories struct {
	Events      domain.EventRepository
	Rewards     domain.RewardRepository
	SagaEvents  domain.EventRepository
	SagaRewards domain.RewardRepository
	Ledger      domain.RewardRequestRepository
}

// NewEventRepositories builds the stores. A nil client disables caching.
func NewEventRepositories(db *sql.DB, client redis.Cmdable, ttl time.Duration, logger *slog.Logger) EventRepositories {
	repos := EventRepositories{
		SagaEvents:  postgres.NewEventRepository(db),
		SagaRewards: postgres.NewRewardRepository(db),
		Ledger:      postgres.NewRewardRequestRepository(db),
	}
	repos.Events, repos.Rewards = repos.SagaEvents, repos.SagaRewards
	if client != nil {
		repos.Events = rediscache.NewEventCache(repos.SagaEvents, client, ttl, logger)
		repos.Rewards = rediscache.NewRewardCache(repos.SagaRewards, client, ttl, logger)
	}
	return repos
}
