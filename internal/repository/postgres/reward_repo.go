package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventrewards/internal/domain"
)

type rewardRepository struct {
	DB *sql.DB
}

// NewRewardRepository returns a domain.RewardRepository implemented with Postgres.
func NewRewardRepository(db *sql.DB) domain.RewardRepository {
	return &rewardRepository{DB: db}
}

func scanReward(row rowScanner) (*domain.Reward, error) {
	rw := &domain.Reward{}
	if err := row.Scan(&rw.ID, &rw.EventID, &rw.Kind, &rw.Quantity, &rw.CreatedAt, &rw.UpdatedAt); err != nil {
		return nil, err
	}
	return rw, nil
}

func (r *rewardRepository) Create(ctx context.Context, rw *domain.Reward) error {
	query := `
		INSERT INTO rewards (event_id, type, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, rw.EventID, rw.Kind, rw.Quantity, rw.CreatedAt, rw.UpdatedAt).Scan(&rw.ID)
	if isUniqueViolation(err) {
		return domain.ErrDuplicateReward
	}
	return err
}

func (r *rewardRepository) GetByID(ctx context.Context, id string) (*domain.Reward, error) {
	query := `
		SELECT id, event_id, type, quantity, created_at, updated_at
		FROM rewards
		WHERE id = $1
	`
	rw, err := scanReward(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) || isMalformedID(err) {
		return nil, domain.ErrNotFound
	}
	return rw, err
}

func (r *rewardRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Reward, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, event_id, type, quantity, created_at, updated_at
		FROM rewards
		WHERE event_id = $1
		ORDER BY created_at ASC, id ASC
	`, eventID)
	if isMalformedID(err) {
		return []*domain.Reward{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rewards := make([]*domain.Reward, 0)
	for rows.Next() {
		rw, err := scanReward(rows)
		if err != nil {
			return nil, err
		}
		rewards = append(rewards, rw)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rewards, nil
}

func (r *rewardRepository) UpdateQuantity(ctx context.Context, id string, quantity int) (*domain.Reward, error) {
	query := `
		UPDATE rewards SET quantity = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id, event_id, type, quantity, created_at, updated_at
	`
	rw, err := scanReward(r.DB.QueryRowContext(ctx, query, quantity, id))
	if errors.Is(err, sql.ErrNoRows) || isMalformedID(err) {
		return nil, domain.ErrNotFound
	}
	return rw, err
}

func (r *rewardRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM rewards WHERE id = $1`, id)
	if isMalformedID(err) {
		return domain.ErrNotFound
	}
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
