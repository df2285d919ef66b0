package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventrewards/internal/domain"

	"github.com/lib/pq"
)

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT id, email, role, point, draw_count, attendance_count, invite_list, token_version, created_at, updated_at
		FROM users
		WHERE id = $1 AND deleted_at IS NULL
	`
	u := &domain.User{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&u.ID, &u.Email, &u.Role, &u.Point, &u.DrawCount, &u.AttendanceCount,
		pq.Array(&u.InviteList), &u.TokenVersion, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isMalformedID(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepository) IncrementPoint(ctx context.Context, id string, delta int) error {
	return r.increment(ctx, `UPDATE users SET point = point + $1, updated_at = NOW() WHERE id = $2 AND deleted_at IS NULL`, id, delta)
}

func (r *userRepository) IncrementDrawCount(ctx context.Context, id string, delta int) error {
	return r.increment(ctx, `UPDATE users SET draw_count = draw_count + $1, updated_at = NOW() WHERE id = $2 AND deleted_at IS NULL`, id, delta)
}

func (r *userRepository) UpdateRole(ctx context.Context, id string, role domain.Role) error {
	return r.exec(ctx, `
		UPDATE users SET role = $1, token_version = token_version + 1, updated_at = NOW()
		WHERE id = $2 AND deleted_at IS NULL
	`, role, id)
}

func (r *userRepository) increment(ctx context.Context, query, id string, delta int) error {
	return r.exec(ctx, query, delta, id)
}

// exec runs a single-row update keyed by user id; zero rows means the user is gone.
func (r *userRepository) exec(ctx context.Context, query string, args ...any) error {
	result, err := r.DB.ExecContext(ctx, query, args...)
	if isMalformedID(err) {
		return domain.ErrUserNotFound
	}
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
