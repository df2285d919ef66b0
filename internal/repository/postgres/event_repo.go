package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"eventrewards/internal/domain"
)

const eventColumns = `id, title, start_time, end_time, status, goal_type, goal_count, goal_description, created_at, updated_at`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var spec domain.GoalSpec
	var goalType string
	if err := row.Scan(
		&e.ID, &e.Title, &e.StartTime, &e.EndTime, &e.Status,
		&goalType, &spec.Count, &spec.Description, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}
	spec.Type = domain.GoalKind(goalType)
	goal, err := spec.Goal()
	if err != nil {
		return nil, fmt.Errorf("event %s: %w", e.ID, err)
	}
	e.Goal = goal
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	if e.Goal == nil {
		return fmt.Errorf("%w: event goal is required", domain.ErrInvalidInput)
	}
	query := `
		INSERT INTO events (title, start_time, end_time, status, goal_type, goal_count, goal_description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		e.Title, e.StartTime, e.EndTime, e.Status,
		e.Goal.Kind(), e.Goal.Threshold(), e.Goal.Description(),
		e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isMalformedID(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) List(ctx context.Context, status *domain.EventStatus) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events`
	var args []any
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, *status)
	}
	query += ` ORDER BY start_time DESC, created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, id string, upd domain.EventUpdate) (*domain.Event, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []any{}
	n := 1
	if upd.Title != nil {
		setClauses = append(setClauses, fmt.Sprintf("title = $%d", n))
		args = append(args, *upd.Title)
		n++
	}
	if upd.StartTime != nil {
		setClauses = append(setClauses, fmt.Sprintf("start_time = $%d", n))
		args = append(args, *upd.StartTime)
		n++
	}
	if upd.EndTime != nil {
		setClauses = append(setClauses, fmt.Sprintf("end_time = $%d", n))
		args = append(args, *upd.EndTime)
		n++
	}
	if upd.Status != nil {
		setClauses = append(setClauses, fmt.Sprintf("status = $%d", n))
		args = append(args, *upd.Status)
		n++
	}
	if upd.Goal != nil {
		setClauses = append(setClauses,
			fmt.Sprintf("goal_type = $%d", n),
			fmt.Sprintf("goal_count = $%d", n+1),
			fmt.Sprintf("goal_description = $%d", n+2),
		)
		args = append(args, upd.Goal.Kind(), upd.Goal.Threshold(), upd.Goal.Description())
		n += 3
	}
	if n == 1 {
		// No fields to update; just fetch current row
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE events SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), n, eventColumns)
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isMalformedID(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}
