package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"eventrewards/internal/domain"
)

const rewardRequestColumns = `id, event_id, reward_id, user_id, status, created_at`

const insertRewardRequest = `
	INSERT INTO reward_requests (id, event_id, reward_id, user_id, status, created_at)
	VALUES ($1, $2, $3, $4, $5, $6)
`

type rewardRequestRepository struct {
	DB *sql.DB
}

// NewRewardRequestRepository returns the Postgres reward request ledger.
func NewRewardRequestRepository(db *sql.DB) domain.RewardRequestRepository {
	return &rewardRequestRepository{DB: db}
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func appendRow(ctx context.Context, db execer, req *domain.RewardRequest) error {
	_, err := db.ExecContext(ctx, insertRewardRequest,
		req.ID, req.EventID, req.RewardID, req.UserID, req.Status, req.CreatedAt)
	if isUniqueViolation(err) {
		return domain.ErrDuplicateSuccess
	}
	return err
}

func (r *rewardRequestRepository) Append(ctx context.Context, req *domain.RewardRequest) error {
	return appendRow(ctx, r.DB, req)
}

func (r *rewardRequestRepository) AppendAll(ctx context.Context, reqs []*domain.RewardRequest) error {
	if len(reqs) == 0 {
		return nil
	}
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin ledger write: %w", err)
	}
	for _, req := range reqs {
		if err := appendRow(ctx, tx, req); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (r *rewardRequestRepository) HasSuccess(ctx context.Context, eventID, userID string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM reward_requests
			WHERE event_id = $1 AND user_id = $2 AND status = 'success'
		)
	`, eventID, userID).Scan(&exists)
	if isMalformedID(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *rewardRequestRepository) ListByEventID(ctx context.Context, eventID string, page domain.PaginationParams) ([]*domain.RewardRequest, error) {
	return r.list(ctx, `WHERE event_id = $1`, page, eventID)
}

func (r *rewardRequestRepository) ListByUserID(ctx context.Context, userID string, page domain.PaginationParams) ([]*domain.RewardRequest, error) {
	return r.list(ctx, `WHERE user_id = $1`, page, userID)
}

func (r *rewardRequestRepository) ListByStatus(ctx context.Context, status domain.RequestStatus, page domain.PaginationParams) ([]*domain.RewardRequest, error) {
	return r.list(ctx, `WHERE status = $1`, page, status)
}

func (r *rewardRequestRepository) ListAll(ctx context.Context, page domain.PaginationParams) ([]*domain.RewardRequest, error) {
	return r.list(ctx, ``, page)
}

func (r *rewardRequestRepository) list(ctx context.Context, where string, page domain.PaginationParams, args ...any) ([]*domain.RewardRequest, error) {
	query := `SELECT ` + rewardRequestColumns + ` FROM reward_requests ` + where + ` ORDER BY created_at DESC, id DESC`
	if !page.Unbounded() {
		n := len(args)
		query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, n+1, n+2)
		args = append(args, page.PageSize, page.Offset())
	}
	reqs := make([]*domain.RewardRequest, 0)
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if isMalformedID(err) {
		return reqs, nil
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var req domain.RewardRequest
		if err := rows.Scan(&req.ID, &req.EventID, &req.RewardID, &req.UserID, &req.Status, &req.CreatedAt); err != nil {
			return nil, err
		}
		reqs = append(reqs, &req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reqs, nil
}
